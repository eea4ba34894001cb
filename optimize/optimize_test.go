// optimize/optimize_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"testing"

	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
)

func testAircraft(t *testing.T) mission.AircraftSpec {
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

func testRoute(t *testing.T) []mission.Waypoint {
	t.Helper()
	return []mission.Waypoint{
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
		mustWP(t, 50.02, 30.00, 55, mission.Target),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.01, 30.01, 60, mission.Target),
		mustWP(t, 49.99, 29.99, 0, mission.Depot),
	}
}

func TestOrderOptimizerGreedyNearestNeighbour(t *testing.T) {
	a := testAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	opt := NewOrderOptimizer(model)

	start := mustWP(t, 49.99, 29.99, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.02, 30.00, 55, mission.Target),
		mustWP(t, 50.00, 30.00, 50, mission.Target),
		mustWP(t, 50.01, 30.01, 60, mission.Target),
	}

	ordered := opt.Optimize(start, targets, MetricDistance)
	if len(ordered) != len(targets) {
		t.Fatalf("expected %d waypoints, got %d", len(targets), len(ordered))
	}
	// The nearest target to the depot (49.99, 29.99) is (50.00, 30.00).
	if ordered[0].Lat != 50.00 {
		t.Errorf("expected nearest target first, got %+v", ordered[0])
	}
}

func TestGeneticRefineKeepsEndpointsFixed(t *testing.T) {
	a := testAircraft(t)
	model := costmodel.NewModel(a, nil, nil, nil)
	ga := NewGenetic(model, nil, aerand.NewSeeded(42))

	route := testRoute(t)
	refined := ga.Refine(route)

	if refined[0] != route[0] || refined[len(refined)-1] != route[len(route)-1] {
		t.Error("genetic refinement should keep first and last waypoints fixed")
	}
	if len(refined) != len(route) {
		t.Errorf("expected same waypoint count, got %d want %d", len(refined), len(route))
	}
}

func TestACORefineKeepsEndpointsFixed(t *testing.T) {
	aco := NewACO(nil, aerand.NewSeeded(7))
	route := testRoute(t)
	refined := aco.Refine(route)

	if refined[0] != route[0] || refined[len(refined)-1] != route[len(route)-1] {
		t.Error("ACO refinement should keep first and last waypoints fixed")
	}
}

func TestPSORefineKeepsEndpointsFixed(t *testing.T) {
	pso := NewPSO(nil, aerand.NewSeeded(99))
	route := testRoute(t)
	refined := pso.Refine(route)

	if refined[0] != route[0] || refined[len(refined)-1] != route[len(route)-1] {
		t.Error("PSO refinement should keep first and last waypoints fixed")
	}
}

func TestMetaheuristicsReturnOriginalOnTotalNoFlyViolation(t *testing.T) {
	zone, err := mission.NewNoFlyZone("blocks-everything", [][][2]float64{{
		{40, 20}, {60, 20}, {60, 40}, {40, 40},
	}}, 0, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	constraints := &mission.Constraints{NoFlyZones: []*mission.NoFlyZone{zone}}

	route := testRoute(t)
	ga := NewGenetic(costmodel.NewModel(testAircraft(t), nil, nil, nil), constraints, aerand.NewSeeded(1))
	refined := ga.Refine(route)

	if len(refined) != len(route) {
		t.Fatalf("expected the original route back, got length %d", len(refined))
	}
}
