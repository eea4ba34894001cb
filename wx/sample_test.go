// wx/sample_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestWindAtAltitudePowerLaw(t *testing.T) {
	s := Sample{WindSpeed10m: 5}

	if got := s.WindAtAltitude(10); !approxEqual(got, 5, 1e-9) {
		t.Errorf("at reference height: got %v, want 5", got)
	}
	if got := s.WindAtAltitude(5); !approxEqual(got, 5, 1e-9) {
		t.Errorf("below reference height should clamp: got %v, want 5", got)
	}

	got := s.WindAtAltitude(100)
	want := 5 * math.Pow(100.0/10.0, 0.15)
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("at 100m: got %v, want %v", got, want)
	}
}

func TestWindAtAltitudeUses80mSample(t *testing.T) {
	v80 := 8.0
	dir80 := 270.0
	s := Sample{WindSpeed10m: 5, WindDirection10m: 90, WindSpeed80m: &v80, WindDirection80m: &dir80}

	got := s.WindAtAltitude(80)
	if !approxEqual(got, 8, 1e-9) {
		t.Errorf("at 80m with 80m sample present: got %v, want 8", got)
	}
}

func TestEffectiveWindHeadwindTailwind(t *testing.T) {
	s := Sample{WindSpeed10m: 10, WindDirection10m: 0} // wind FROM north

	// Flying due north (0) directly into a north wind is a pure headwind.
	if got := s.EffectiveWind(0, 10); !approxEqual(got, 10, 1e-6) {
		t.Errorf("headwind: got %v, want 10", got)
	}
	// Flying due south (180) with a north wind is a pure tailwind.
	if got := s.EffectiveWind(180, 10); !approxEqual(got, -10, 1e-6) {
		t.Errorf("tailwind: got %v, want -10", got)
	}
	// Flying due east (90) is a pure crosswind.
	if got := s.EffectiveWind(90, 10); !approxEqual(got, 0, 1e-6) {
		t.Errorf("crosswind: got %v, want 0", got)
	}
}

func TestIsSafeForFlight(t *testing.T) {
	vis := 0.5
	cases := []struct {
		name   string
		sample Sample
		want   bool
	}{
		{"calm", Sample{WindSpeed10m: 3, Precipitation: 0, CloudCover: 10}, true},
		{"too windy", Sample{WindSpeed10m: 20, Precipitation: 0}, false},
		{"too wet", Sample{WindSpeed10m: 3, Precipitation: 10}, false},
		{"low visibility", Sample{WindSpeed10m: 3, Precipitation: 0, Visibility: &vis}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := c.sample.IsSafeForFlight(0, 0, 0)
			if ok != c.want {
				t.Errorf("got safe=%v (%q), want %v", ok, reason, c.want)
			}
		})
	}
}
