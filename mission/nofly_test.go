// mission/nofly_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import "testing"

func TestNoFlyZoneAreaOfSquareRing(t *testing.T) {
	// A roughly 0.01 x 0.01 degree square.
	zone, err := NewNoFlyZone("square", [][][2]float64{{
		{50.00, 30.00}, {50.00, 30.01}, {50.01, 30.01}, {50.01, 30.00},
	}}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	area := zone.Area()
	want := 0.0001 // 0.01 * 0.01 square degrees
	if diff := area - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected area near %v, got %v", want, area)
	}
}

func TestNoFlyZoneAreaOfDegenerateRingIsNearZero(t *testing.T) {
	zone, err := NewNoFlyZone("sliver", [][][2]float64{{
		{50.00, 30.00}, {50.00, 30.0000001}, {50.00, 30.0000002},
	}}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if area := zone.Area(); area > 1e-9 {
		t.Errorf("expected a near-zero area for a collinear ring, got %v", area)
	}
}
