// landing/landing_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package landing

import (
	"testing"

	"github.com/aerie-sh/aerie/mission"
)

func mustWP(t *testing.T, lat, lon, alt float64, wt mission.WaypointType) mission.Waypoint {
	t.Helper()
	w, err := mission.NewWaypoint(lat, lon, alt, "", wt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w
}

func TestVerticalLandingInsertsApproachWaypoint(t *testing.T) {
	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.03, 30.03, 30, mission.Intermediate),
		mustWP(t, 50.03, 30.03, 0, mission.Finish),
	}

	out := Synthesize(route, mission.LandingVertical, mission.FinishCustom, 10)

	approachIdx := -1
	for i, wp := range out {
		if wp.Type == mission.LandingApproach {
			approachIdx = i
		}
	}
	if approachIdx == -1 {
		t.Fatal("expected a landing_approach waypoint")
	}
	if out[approachIdx].Alt != 10 {
		t.Errorf("expected landing_approach at min altitude 10, got %v", out[approachIdx].Alt)
	}
	if approachIdx+1 != len(out)-1 {
		t.Fatalf("expected landing_approach immediately before the final waypoint")
	}
	final := out[len(out)-1]
	if final.Type != mission.Finish || final.Alt != 0 {
		t.Errorf("expected finalized finish waypoint at ground altitude, got %+v", final)
	}
}

func TestGradualLandingPreservesAltitudes(t *testing.T) {
	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.03, 30.03, 30, mission.Intermediate),
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
	}

	out := Synthesize(route, mission.LandingGradual, mission.FinishDepot, 10)

	if out[2].Type != mission.LandingSegment {
		t.Errorf("expected intermediate waypoint tagged landing_segment, got %v", out[2].Type)
	}
	if out[2].Alt != 30 {
		t.Errorf("expected gradual landing to preserve altitude, got %v", out[2].Alt)
	}
}
