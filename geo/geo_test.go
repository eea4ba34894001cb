// geo/geo_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"math"
	"testing"
)

func TestHaversineSymmetric(t *testing.T) {
	a := [2]float64{50.00, 30.00}
	b := [2]float64{50.02, 30.01}

	d1 := Haversine(a[0], a[1], b[0], b[1])
	d2 := Haversine(b[0], b[1], a[0], a[1])
	if math.Abs(d1-d2) > 1 {
		t.Errorf("Haversine not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineZero(t *testing.T) {
	if d := Haversine(50, 30, 50, 30); d != 0 {
		t.Errorf("expected 0 distance for identical points, got %v", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Roughly 111.19 km between one degree of latitude.
	d := Haversine(50.0, 30.0, 51.0, 30.0)
	if d < 110000 || d > 112000 {
		t.Errorf("got %v meters for 1 degree of latitude, expected ~111100", d)
	}
}

func TestBearingCardinal(t *testing.T) {
	// Due north.
	b := Bearing(50.0, 30.0, 51.0, 30.0)
	if math.Abs(b-0) > 1 {
		t.Errorf("expected bearing ~0 (north), got %v", b)
	}

	// Due east.
	b = Bearing(50.0, 30.0, 50.0, 31.0)
	if math.Abs(b-90) > 1 {
		t.Errorf("expected bearing ~90 (east), got %v", b)
	}
}

func TestEuclidean3D(t *testing.T) {
	a := Position{Lat: 50, Lon: 30, Alt: 0}
	b := Position{Lat: 50, Lon: 30, Alt: 100}
	if d := Euclidean3D(a, b); math.Abs(d-100) > 0.01 {
		t.Errorf("expected pure-vertical distance of 100m, got %v", d)
	}
}

func TestGridSnapStability(t *testing.T) {
	lat1, lon1 := GridSnap(50.0001, 30.0001, 1000)
	lat2, lon2 := GridSnap(50.0002, 30.0002, 1000)
	if lat1 != lat2 || lon1 != lon2 {
		t.Errorf("nearby points should snap to same cell: (%v,%v) vs (%v,%v)", lat1, lon1, lat2, lon2)
	}
}

func TestHeadingDifference(t *testing.T) {
	cases := []struct{ a, b, want float64 }{
		{0, 180, 180},
		{350, 10, 20},
		{10, 350, 20},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := HeadingDifference(c.a, c.b); math.Abs(got-c.want) > 0.001 {
			t.Errorf("HeadingDifference(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
