// export/qgc.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package export is the §6 QGC waypoint text and JSON exporters: the only
// two typed contracts the core hands to the external file-exporter
// collaborator. Neither the HTTP façade nor on-disk storage lives here.
package export

import (
	"fmt"
	"strings"

	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

const qgcHeader = "QGC WPL 110"

// Command codes from the MAVLink mission-item vocabulary the QGC format
// borrows from.
const (
	cmdTakeoff      = 22
	cmdLand         = 21
	cmdWaypoint     = 16
	cmdChangeSpeed  = 178
	cmdConditionYaw = 115
)

// approachSpeedFraction is the fraction of max_speed a landing-phase
// waypoint flies at, used to derive the DO_CHANGE_SPEED rows the richer
// QGC exporter inserts; the data model carries no per-waypoint speed of
// its own (spec.md §3's Waypoint has none), so this is the one place the
// exporter infers it rather than reading it back.
const approachSpeedFraction = 0.3

// QGCWaypoints renders route as QGC waypoint text, tab-delimited with LF
// line endings, per spec.md §6: a DO_CHANGE_SPEED row whenever the
// inferred cruise speed changes by more than 0.1 m/s, and a
// CONDITION_YAW row before every non-first waypoint row.
func QGCWaypoints(route *mission.Route, aircraft mission.AircraftSpec) string {
	var b strings.Builder
	b.WriteString(qgcHeader)
	b.WriteByte('\n')

	wps := route.Waypoints
	if len(wps) == 0 {
		return b.String()
	}

	index := 0
	lastSpeed := -1.0

	writeRow := func(current int, command int, p1, p2, p3, p4, x, y, z float64) {
		fmt.Fprintf(&b, "%d\t%d\t0\t%d\t%s\t%s\t%s\t%s\t%.10f\t%.10f\t%.2f\t1\n",
			index, current, command,
			trimFloat(p1), trimFloat(p2), trimFloat(p3), trimFloat(p4), x, y, z)
		index++
	}

	for i, wp := range wps {
		current := 0
		if i == 0 {
			current = 1
		}

		speed := waypointSpeed(wp, aircraft)
		if i > 0 && absDiff(speed, lastSpeed) > 0.1 {
			writeRow(0, cmdChangeSpeed, 1, speed, -1, 0, 0, 0, 0)
		}
		lastSpeed = speed

		if i > 0 {
			bearing := 0.0
			if i+1 < len(wps) {
				bearing = geo.Bearing(wp.Lat, wp.Lon, wps[i+1].Lat, wps[i+1].Lon)
			}
			writeRow(0, cmdConditionYaw, bearing, 45, -1, 0, 0, 0, 0)
		}

		writeRow(current, commandFor(i, len(wps), wp.Type), 0, 0, 0, 0, wp.Lat, wp.Lon, wp.Alt)
	}

	return b.String()
}

func commandFor(i, n int, wt mission.WaypointType) int {
	if i == 0 {
		return cmdTakeoff
	}
	if i == n-1 || wt == mission.Finish || wt.IsLandingPhase() {
		return cmdLand
	}
	return cmdWaypoint
}

func waypointSpeed(wp mission.Waypoint, aircraft mission.AircraftSpec) float64 {
	if wp.Type.IsLandingPhase() {
		return aircraft.MaxSpeed * approachSpeedFraction
	}
	return aircraft.MaxSpeed
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
