// costmodel/costmodel_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package costmodel

import (
	"testing"

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

func TestCostIsPositiveAndMonotoneInDistance(t *testing.T) {
	a := testAircraft(t)
	m := NewModel(a, nil, nil, nil)

	near, _ := mission.NewWaypoint(50.00, 30.00, 50, "", mission.Target)
	far, _ := mission.NewWaypoint(50.02, 30.00, 50, "", mission.Target)
	mid, _ := mission.NewWaypoint(50.01, 30.00, 50, "", mission.Target)

	short := m.Cost(Segment{Start: near, End: mid}, 0)
	long := m.Cost(Segment{Start: near, End: far}, 0)

	if short <= 0 || long <= 0 {
		t.Fatalf("expected positive costs, got short=%v long=%v", short, long)
	}
	if long <= short {
		t.Errorf("expected longer segment to cost more: short=%v long=%v", short, long)
	}
}

func TestFeasibleRejectsAltitudeViolation(t *testing.T) {
	a := testAircraft(t)
	m := NewModel(a, nil, nil, nil)

	lo, _ := mission.NewWaypoint(50.00, 30.00, 5, "", mission.Target) // below min altitude
	hi, _ := mission.NewWaypoint(50.01, 30.00, 50, "", mission.Target)

	ok, reason := m.Feasible(Segment{Start: lo, End: hi}, false, false)
	if ok {
		t.Errorf("expected infeasible segment below min altitude, reason=%q", reason)
	}
}

func TestFeasibleExemptsGroundPoints(t *testing.T) {
	a := testAircraft(t)
	m := NewModel(a, nil, nil, nil)

	depot, _ := mission.NewWaypoint(50.00, 30.00, 0, "", mission.Depot)
	target, _ := mission.NewWaypoint(50.01, 30.00, 50, "", mission.Target)

	ok, reason := m.Feasible(Segment{Start: depot, End: target}, true, false)
	if !ok {
		t.Errorf("expected feasible ground-point segment, got reason=%q", reason)
	}
}

func TestFeasibleRejectsNoFlyZone(t *testing.T) {
	a := testAircraft(t)
	zone, err := mission.NewNoFlyZone("z1", [][][2]float64{{
		{49.999, 29.999}, {50.001, 29.999}, {50.001, 30.001}, {49.999, 30.001},
	}}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cons := &mission.Constraints{NoFlyZones: []*mission.NoFlyZone{zone}}
	m := NewModel(a, cons, nil, nil)

	inside, _ := mission.NewWaypoint(50.00, 30.00, 50, "", mission.Target)
	outside, _ := mission.NewWaypoint(50.05, 30.05, 50, "", mission.Target)

	ok, reason := m.Feasible(Segment{Start: outside, End: inside}, false, false)
	if ok {
		t.Errorf("expected segment ending inside zone to be infeasible, reason=%q", reason)
	}
}

func TestBaseEnergyPositive(t *testing.T) {
	a := testAircraft(t)
	m := NewModel(a, nil, nil, nil)
	start, _ := mission.NewWaypoint(50.00, 30.00, 50, "", mission.Target)
	end, _ := mission.NewWaypoint(50.01, 30.01, 60, "", mission.Target)

	if e := m.BaseEnergy(Segment{Start: start, End: end}); e <= 0 {
		t.Errorf("expected positive base energy, got %v", e)
	}
}
