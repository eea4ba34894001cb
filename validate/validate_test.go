// validate/validate_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validate

import (
	"testing"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
)

func mustAircraft(t *testing.T) mission.AircraftSpec {
	t.Helper()
	a, err := mission.NewAircraftSpec("test", 15, 10, 120, 100, 50, 50, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func mustWP(t *testing.T, lat, lon, alt float64, wt mission.WaypointType) mission.Waypoint {
	t.Helper()
	w, err := mission.NewWaypoint(lat, lon, alt, "", wt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w
}

func TestValidRouteHasNoViolations(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
	}

	verdict := v.Validate(route)
	if !verdict.IsValid {
		t.Errorf("expected valid route, got violations: %+v", verdict.Violations)
	}
}

func TestAltitudeViolationBelowMinimum(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.00, 30.00, 2, mission.Target), // below min altitude of 10
	}

	verdict := v.Validate(route)
	if verdict.IsValid {
		t.Error("expected invalid route for below-minimum altitude target")
	}
}

func TestLandingSegmentExemptFromMinAltitude(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.001, 30.001, 2, mission.LandingSegment),
		mustWP(t, 50.002, 30.002, 0, mission.Finish),
	}

	verdict := v.Validate(route)
	for _, f := range verdict.Violations {
		if f.Kind == mission.FindingAltitude && f.WaypointIndex == 2 {
			t.Errorf("landing_segment waypoint should be exempt from the min-altitude check, got %+v", f)
		}
	}
}

func TestEnergyViolationExceedsCapacity(t *testing.T) {
	// A tiny battery guarantees the energy checker fires.
	a, err := mission.NewAircraftSpec("tiny-battery", 15, 10, 120, 0.001, 50, 50, 5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.05, 30.05, 80, mission.Target),
	}

	verdict := v.Validate(route)
	foundEnergy := false
	for _, f := range verdict.Violations {
		if f.Kind == mission.FindingEnergy {
			foundEnergy = true
		}
	}
	if !foundEnergy {
		t.Error("expected an energy violation for a route exceeding a tiny battery capacity")
	}
}

func TestKinematicViolationAppliesToLandingSegment(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	// A steep climb over a landing_segment pair: the checker must still
	// fire here, since spec.md §4.11 gives the kinematic check no
	// ground/landing exemption (unlike the altitude checker's minimum-
	// altitude exemption).
	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 49.990050, 29.99, 50, mission.LandingSegment),
	}

	verdict := v.Validate(route)
	foundKinematic := false
	for _, f := range verdict.Violations {
		if f.Kind == mission.FindingKinematic {
			foundKinematic = true
		}
	}
	if !foundKinematic {
		t.Error("expected a kinematic violation on a steep landing_segment segment")
	}
}

func TestKinematicViolationAppliesLeavingDepot(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	v := New(model, a, nil)

	// A steep climb leaving the depot: ground waypoints are exempt from
	// the minimum-altitude check, not from the kinematic rate check.
	route := []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 49.990050, 29.99, 50, mission.Target),
	}

	verdict := v.Validate(route)
	foundKinematic := false
	for _, f := range verdict.Violations {
		if f.Kind == mission.FindingKinematic {
			foundKinematic = true
		}
	}
	if !foundKinematic {
		t.Error("expected a kinematic violation on a steep segment leaving the depot")
	}
}

func TestZoneViolationWarnsOnDegenerateRing(t *testing.T) {
	a := mustAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)

	// A ring whose three vertices are nearly collinear/coincident
	// triangulates to a near-zero area.
	zone, err := mission.NewNoFlyZone("sliver", [][][2]float64{{
		{50.00, 30.00}, {50.00, 30.0000001}, {50.00, 30.0000002},
	}}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	constraints := &mission.Constraints{NoFlyZones: []*mission.NoFlyZone{zone}}
	v := New(model, a, constraints)

	route := []mission.Waypoint{
		mustWP(t, 50.00, 30.00, 50, mission.Target),
	}

	verdict := v.Validate(route)
	foundDegenerateWarning := false
	for _, f := range verdict.Warnings {
		if f.Kind == mission.FindingZone {
			foundDegenerateWarning = true
		}
	}
	if !foundDegenerateWarning {
		t.Error("expected a degenerate-zone warning for a near-zero-area ring")
	}
}
