// vrp/vrp_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vrp

import (
	"testing"
	"time"

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

func mustAircraft(t *testing.T, name string) mission.AircraftSpec {
	t.Helper()
	a, err := mission.NewAircraftSpec(name, 15, 10, 120, 100, 50, 50, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func TestAssignCoversAllTargetsExactlyOnce(t *testing.T) {
	depot := mustWP(t, 49.99, 29.99, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.01, 30.01, 60, mission.Target),
		mustWP(t, 50.02, 30.00, 55, mission.Target),
		mustWP(t, 50.01, 29.98, 50, mission.Target),
	}
	fleet := []mission.AircraftSpec{mustAircraft(t, "a1"), mustAircraft(t, "a2")}

	result := Assign(depot, targets, fleet, 0)

	seen := make(map[int]bool)
	for _, a := range fleet {
		for _, idx := range result[a.Name] {
			if seen[idx] {
				t.Errorf("target %d assigned more than once", idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != len(targets) {
		t.Errorf("expected all %d targets covered, got %d", len(targets), len(seen))
	}
}

func TestAssignFallsBackToRoundRobinWithNoSearchBudget(t *testing.T) {
	depot := mustWP(t, 49.99, 29.99, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.01, 30.01, 60, mission.Target),
		mustWP(t, 50.02, 30.00, 55, mission.Target),
	}
	fleet := []mission.AircraftSpec{mustAircraft(t, "a1"), mustAircraft(t, "a2")}

	// An already-expired budget forces the constructive search's first
	// context check to fail, exercising the greedy round-robin fallback.
	result := Assign(depot, targets, fleet, 1*time.Nanosecond)

	seen := make(map[int]bool)
	for _, a := range fleet {
		for _, idx := range result[a.Name] {
			seen[idx] = true
		}
	}
	if len(seen) != len(targets) {
		t.Errorf("expected the round-robin fallback to still cover all %d targets, got %d", len(targets), len(seen))
	}
}

func TestAssignRedistributesWhenFewerTargetsThanAircraft(t *testing.T) {
	depot := mustWP(t, 49.99, 29.99, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.00, 30.00, 50, mission.Target),
	}
	fleet := []mission.AircraftSpec{mustAircraft(t, "a1"), mustAircraft(t, "a2"), mustAircraft(t, "a3")}

	result := Assign(depot, targets, fleet, 0)

	total := 0
	for _, a := range fleet {
		total += len(result[a.Name])
	}
	if total != 1 {
		t.Errorf("expected exactly 1 target assigned total, got %d", total)
	}
}
