// orchestrator/orchestrator_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"errors"
	"strings"
	"testing"

	"github.com/aerie-sh/aerie/aeerr"
	"github.com/aerie-sh/aerie/mission"
)

func mustAircraft(t *testing.T, name string) mission.AircraftSpec {
	t.Helper()
	a, err := mission.NewAircraftSpec(name, 15, 10, 150, 200, 100, 30, 5, 5)
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

func TestPlanMissionSingleAircraftProducesValidRoute(t *testing.T) {
	depot := mustWP(t, 50.000, 30.000, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.010, 30.010, 60, mission.Target),
		mustWP(t, 50.020, 30.000, 60, mission.Target),
		mustWP(t, 50.005, 29.990, 60, mission.Target),
	}

	m := &mission.Mission{
		Name:         "survey",
		Fleet:        []mission.AircraftSpec{mustAircraft(t, "uav-1")},
		TargetPoints: targets,
		Depot:        &depot,
		FinishType:   mission.FinishDepot,
		LandingMode:  mission.LandingVertical,
	}

	o := New(nil)
	routes, err := o.PlanMission(m, Options{Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route, ok := routes["uav-1"]
	if !ok {
		t.Fatal("expected a route for uav-1")
	}
	if len(route.Waypoints) < len(targets)+2 {
		t.Errorf("expected at least %d waypoints, got %d", len(targets)+2, len(route.Waypoints))
	}
	if route.Metrics == nil {
		t.Fatal("expected route metrics to be populated")
	}
	if route.Verdict == nil {
		t.Fatal("expected a validation verdict to be attached")
	}
	last := route.Waypoints[len(route.Waypoints)-1]
	if last.Alt != 0 {
		t.Errorf("expected the vertical landing to finish at ground altitude, got %.1f", last.Alt)
	}
}

func TestPlanMissionAbortsOnNoFlyPreCheck(t *testing.T) {
	depot := mustWP(t, 50.000, 30.000, 0, mission.Depot)
	target := mustWP(t, 50.001, 30.001, 60, mission.Target)

	zone, err := mission.NewNoFlyZone("z1", [][][2]float64{{
		{49.999, 30.000}, {50.003, 30.000}, {50.003, 30.003}, {49.999, 30.003},
	}}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := &mission.Mission{
		Fleet:        []mission.AircraftSpec{mustAircraft(t, "uav-1")},
		TargetPoints: []mission.Waypoint{target},
		Depot:        &depot,
		FinishType:   mission.FinishDepot,
		Constraints:  mission.Constraints{NoFlyZones: []*mission.NoFlyZone{zone}},
	}

	o := New(nil)
	routes, err := o.PlanMission(m, Options{})
	if err == nil {
		t.Fatal("expected a pre-check error")
	}
	if !errors.Is(err, aeerr.ErrNoFlyZonePreCheck) {
		t.Errorf("expected ErrNoFlyZonePreCheck, got %v", err)
	}
	if !strings.Contains(err.Error(), "Target point 1") {
		t.Errorf("expected error to name the offending target, got %q", err.Error())
	}
	if len(routes) != 0 {
		t.Errorf("expected no routes on pre-check abort, got %d", len(routes))
	}
}

func TestPlanMissionMultiAircraftAssignsEveryTarget(t *testing.T) {
	depot := mustWP(t, 50.000, 30.000, 0, mission.Depot)
	targets := []mission.Waypoint{
		mustWP(t, 50.010, 30.010, 60, mission.Target),
		mustWP(t, 50.020, 30.020, 60, mission.Target),
		mustWP(t, 49.990, 29.990, 60, mission.Target),
		mustWP(t, 49.980, 29.980, 60, mission.Target),
	}

	m := &mission.Mission{
		Fleet: []mission.AircraftSpec{
			mustAircraft(t, "uav-1"),
			mustAircraft(t, "uav-2"),
		},
		TargetPoints: targets,
		Depot:        &depot,
		FinishType:   mission.FinishDepot,
		LandingMode:  mission.LandingGradual,
	}

	o := New(nil)
	routes, err := o.PlanMission(m, Options{Algorithm: AlgorithmThetaStar})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected a route for each aircraft, got %d", len(routes))
	}

	seenTargets := 0
	for _, r := range routes {
		for _, wp := range r.Waypoints {
			if wp.Type == mission.Target {
				seenTargets++
			}
		}
	}
	if seenTargets != len(targets) {
		t.Errorf("expected all %d targets covered exactly once across the fleet, got %d", len(targets), seenTargets)
	}
}

func TestPlanMissionRejectsEmptyFleet(t *testing.T) {
	m := &mission.Mission{}
	o := New(nil)
	if _, err := o.PlanMission(m, Options{}); !errors.Is(err, aeerr.ErrEmptyFleet) {
		t.Errorf("expected ErrEmptyFleet, got %v", err)
	}
}
