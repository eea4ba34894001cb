// mission/geojsonimport_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleZoneGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "restricted-1", "max_altitude": 200},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[29.998,49.998],[30.002,49.998],[30.002,50.002],[29.998,50.002],[29.998,49.998]]]
			}
		}
	]
}`

const samplePointGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"name": "target-1"}, "geometry": {"type": "Point", "coordinates": [30.00, 50.00, 50]}}
	]
}`

func TestLoadNoFlyZonesFromGeoJSONParsesPolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.geojson")
	if err := os.WriteFile(path, []byte(sampleZoneGeoJSON), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	zones, err := LoadNoFlyZonesFromGeoJSON(path, 0, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	if zones[0].Name != "restricted-1" {
		t.Errorf("unexpected zone name: %q", zones[0].Name)
	}
	if zones[0].MaxAltitude != 200 {
		t.Errorf("expected property override of max_altitude, got %v", zones[0].MaxAltitude)
	}
	// GeoJSON coordinates are [lon,lat]; the stored ring must be (lat,lon).
	if zones[0].Rings[0][0] != [2]float64{49.998, 29.998} {
		t.Errorf("unexpected ring[0][0]: %v", zones[0].Rings[0][0])
	}
}

func TestLoadNoFlyZonesFromGeoJSONDefaultsAltitudeBand(t *testing.T) {
	const noProps = `{"type":"Polygon","coordinates":[[[29.998,49.998],[30.002,49.998],[30.002,50.002],[29.998,50.002],[29.998,49.998]]]}`
	path := filepath.Join(t.TempDir(), "zone.geojson")
	if err := os.WriteFile(path, []byte(noProps), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	zones, err := LoadNoFlyZonesFromGeoJSON(path, 10, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 1 || zones[0].MinAltitude != 10 || zones[0].MaxAltitude != 300 {
		t.Fatalf("expected default altitude band to apply, got %+v", zones[0])
	}
}

func TestLoadWaypointsFromGeoJSONParsesPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.geojson")
	if err := os.WriteFile(path, []byte(samplePointGeoJSON), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	waypoints, err := LoadWaypointsFromGeoJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 1 {
		t.Fatalf("expected 1 waypoint, got %d", len(waypoints))
	}
	wp := waypoints[0]
	if wp.Lat != 50.00 || wp.Lon != 30.00 || wp.Alt != 50 || wp.Name != "target-1" {
		t.Errorf("unexpected waypoint: %+v", wp)
	}
}
