// mission/waypoint.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mission holds the data model shared by every other package: the
// immutable Waypoint, AircraftSpec, NoFlyZone, Constraints, Mission, and
// Route types described in spec.md §3. None of these types import the cost
// model, the planners, or the orchestrator, so there's no cyclic
// import-through-back-reference the way the original Python had between its
// cost model, weather manager, and planner modules (spec.md §9).
package mission

import (
	"fmt"

	"github.com/aerie-sh/aerie/aeerr"
)

// WaypointType tags the role a waypoint plays in a route. Several
// validators and the landing synthesizer key off this tag to decide which
// checks to skip (ground points are exempt from the minimum-altitude check;
// landing-typed waypoints are exempt from descent-rate checks).
type WaypointType string

const (
	Depot             WaypointType = "depot"
	Target            WaypointType = "target"
	Finish            WaypointType = "finish"
	Intermediate      WaypointType = "intermediate"
	LandingSegment    WaypointType = "landing_segment"
	LandingApproach   WaypointType = "landing_approach"
)

// IsGround reports whether wt is one of the two ground-point types exempt
// from the minimum-altitude check (depot and finish).
func (wt WaypointType) IsGround() bool {
	return wt == Depot || wt == Finish
}

// IsLandingPhase reports whether wt is exempt from the descent-rate check
// (landing_segment and landing_approach), per spec.md §4.11.
func (wt WaypointType) IsLandingPhase() bool {
	return wt == LandingSegment || wt == LandingApproach
}

// Waypoint is an immutable 3D point: once constructed, its fields are never
// mutated in place. Callers that need a modified copy (e.g. the landing
// synthesizer retyping the tail of a route) construct a new Waypoint value.
type Waypoint struct {
	Lat, Lon, Alt float64
	Name          string
	Type          WaypointType
}

// NewWaypoint validates the coordinate ranges required by spec.md §3's
// invariant ("the coordinate ranges hold for every waypoint stored
// anywhere") and returns a constructed Waypoint or a wrapped sentinel
// error. This is the only place that invariant needs to be checked, since
// Waypoint is immutable afterward.
func NewWaypoint(lat, lon, alt float64, name string, typ WaypointType) (Waypoint, error) {
	if lat < -90 || lat > 90 {
		return Waypoint{}, fmt.Errorf("%w: %v", aeerr.ErrInvalidLatitude, lat)
	}
	if lon < -180 || lon > 180 {
		return Waypoint{}, fmt.Errorf("%w: %v", aeerr.ErrInvalidLongitude, lon)
	}
	if alt < 0 {
		return Waypoint{}, fmt.Errorf("%w: %v", aeerr.ErrInvalidAltitude, alt)
	}
	return Waypoint{Lat: lat, Lon: lon, Alt: alt, Name: name, Type: typ}, nil
}

// WithType returns a copy of w with its type changed; used by the landing
// synthesizer (landing/) to retag the tail of a waypoint sequence without
// mutating the original slice elements in place.
func (w Waypoint) WithType(t WaypointType) Waypoint {
	w.Type = t
	return w
}

// WithAltitude returns a copy of w with its altitude changed.
func (w Waypoint) WithAltitude(alt float64) Waypoint {
	w.Alt = alt
	return w
}
