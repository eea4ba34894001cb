// orchestrator/precheck.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/aerie-sh/aerie/mission"
)

// precheck returns a non-empty human-readable message if the depot or any
// target lies in a no-fly zone, per spec.md §4.12: the orchestrator must
// abort before invoking any planner.
func (o *Orchestrator) precheck(m *mission.Mission) string {
	var offenses []string

	check := func(label string, wp mission.Waypoint) {
		if in, zone := m.Constraints.InAnyNoFlyZone(wp.Lat, wp.Lon, wp.Alt); in {
			offenses = append(offenses, fmt.Sprintf("%s lies in no-fly zone %q", label, zone.Name))
		}
	}

	if m.Depot != nil {
		check("Depot", *m.Depot)
	}
	for i, t := range m.TargetPoints {
		check(fmt.Sprintf("Target point %d", i+1), t)
	}

	if len(offenses) == 0 {
		return ""
	}
	return strings.Join(offenses, "; ")
}
