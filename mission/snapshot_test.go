// mission/snapshot_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"path/filepath"
	"testing"
)

func TestRouteSnapshotRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.bin")
	wp, err := NewWaypoint(50.00, 30.00, 50, "", Target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	routes := map[string]*Route{
		"uav-1": {AircraftName: "uav-1", Waypoints: []Waypoint{wp}},
	}

	if err := SaveRouteSnapshot(path, "mission-a", routes); err != nil {
		t.Fatalf("unexpected error saving snapshot: %v", err)
	}

	got, ok, err := LoadRouteSnapshot(path, "mission-a")
	if err != nil {
		t.Fatalf("unexpected error loading snapshot: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit for a matching mission name")
	}
	if len(got["uav-1"].Waypoints) != 1 {
		t.Errorf("expected one waypoint to round trip, got %+v", got["uav-1"])
	}
}

func TestRouteSnapshotMissNameMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.bin")
	if err := SaveRouteSnapshot(path, "mission-a", map[string]*Route{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok, err := LoadRouteSnapshot(path, "mission-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected a cache miss for a mismatched mission name")
	}
}

func TestRouteSnapshotMissingFile(t *testing.T) {
	_, ok, err := LoadRouteSnapshot(filepath.Join(t.TempDir(), "missing.bin"), "mission-a")
	if err != nil {
		t.Fatalf("unexpected error for a missing snapshot: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a missing snapshot file")
	}
}
