// mission/waypoint_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aerie-sh/aerie/aeerr"
)

func TestNewWaypointRejectsOutOfRangeCoordinates(t *testing.T) {
	cases := []struct {
		name         string
		lat, lon, alt float64
		wantErr      error
	}{
		{"lat too high", 91, 0, 0, aeerr.ErrInvalidLatitude},
		{"lat too low", -91, 0, 0, aeerr.ErrInvalidLatitude},
		{"lon too high", 0, 181, 0, aeerr.ErrInvalidLongitude},
		{"lon too low", 0, -181, 0, aeerr.ErrInvalidLongitude},
		{"negative alt", 0, 0, -1, aeerr.ErrInvalidAltitude},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewWaypoint(c.lat, c.lon, c.alt, "", Target)
			if !errors.Is(err, c.wantErr) {
				t.Errorf("got %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestWaypointJSONRoundTrip(t *testing.T) {
	w, err := NewWaypoint(50.01, 30.02, 55, "t1", Target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Waypoint
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got != w {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, w)
	}
}

func TestWaypointTypeExemptions(t *testing.T) {
	if !Depot.IsGround() || !Finish.IsGround() {
		t.Error("depot and finish should be ground types")
	}
	if Target.IsGround() || Intermediate.IsGround() {
		t.Error("target and intermediate should not be ground types")
	}
	if !LandingSegment.IsLandingPhase() || !LandingApproach.IsLandingPhase() {
		t.Error("landing_segment and landing_approach should be landing-phase types")
	}
}
