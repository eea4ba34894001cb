// mission/geojsonimport.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"encoding/json"
	"fmt"
	"os"
)

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type geojsonFeature struct {
	Type       string          `json:"type"`
	Geometry   geojsonGeometry `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

type geojsonDocument struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
	// Geometry/Properties are present when Type is "Feature"; Coordinates
	// when the document is a raw geometry. Both are handled below.
	Geometry    geojsonGeometry `json:"geometry"`
	Properties  json.RawMessage `json:"properties"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type zoneProperties struct {
	Name        string   `json:"name"`
	MinAltitude *float64 `json:"min_altitude"`
	MaxAltitude *float64 `json:"max_altitude"`
}

// featuresOf normalizes a FeatureCollection, a single Feature, or a raw
// geometry document into a feature slice, the way the original GeoJSON
// loader's three-way type dispatch does.
func featuresOf(doc geojsonDocument) ([]geojsonFeature, error) {
	switch doc.Type {
	case "FeatureCollection":
		return doc.Features, nil
	case "Feature":
		return []geojsonFeature{{Type: doc.Type, Geometry: doc.Geometry, Properties: doc.Properties}}, nil
	case "Polygon", "MultiPolygon", "Point", "LineString", "MultiLineString":
		return []geojsonFeature{{Geometry: geojsonGeometry{Type: doc.Type, Coordinates: doc.Coordinates}}}, nil
	default:
		return nil, fmt.Errorf("unsupported GeoJSON type: %q", doc.Type)
	}
}

// LoadNoFlyZonesFromGeoJSON reads Polygon/MultiPolygon features from a
// GeoJSON file into NoFlyZones, defaulting each zone's altitude band to
// [minAltitude, maxAltitude] unless its properties override it. Rings are
// converted from GeoJSON's [lon,lat] coordinate order to the (lat,lon)
// order NewNoFlyZone expects.
func LoadNoFlyZonesFromGeoJSON(path string, minAltitude, maxAltitude float64) ([]*NoFlyZone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc geojsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}
	features, err := featuresOf(doc)
	if err != nil {
		return nil, err
	}

	var zones []*NoFlyZone
	for idx, feature := range features {
		if feature.Geometry.Type != "Polygon" && feature.Geometry.Type != "MultiPolygon" {
			continue
		}

		var props zoneProperties
		if len(feature.Properties) > 0 {
			if err := json.Unmarshal(feature.Properties, &props); err != nil {
				return nil, fmt.Errorf("feature %d: parsing properties: %w", idx+1, err)
			}
		}
		name := props.Name
		if name == "" {
			name = fmt.Sprintf("Zone_%d", idx+1)
		}
		zoneMin, zoneMax := minAltitude, maxAltitude
		if props.MinAltitude != nil {
			zoneMin = *props.MinAltitude
		}
		if props.MaxAltitude != nil {
			zoneMax = *props.MaxAltitude
		}

		rings, err := polygonRings(feature.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", idx+1, err)
		}

		zone, err := NewNoFlyZone(name, rings, zoneMin, zoneMax)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", idx+1, err)
		}
		zones = append(zones, zone)
	}
	return zones, nil
}

// polygonRings flattens a Polygon's rings, or a MultiPolygon's polygons'
// rings, into the [][][2]float64 (lat,lon) shape NewNoFlyZone takes. Only
// each polygon's exterior ring (index 0) is kept; holes aren't modeled by
// NoFlyZone, matching the original loader's whole-geometry containment
// check rather than a hole-aware one.
func polygonRings(geom geojsonGeometry) ([][][2]float64, error) {
	switch geom.Type {
	case "Polygon":
		var coords [][][2]float64
		if err := json.Unmarshal(geom.Coordinates, &coords); err != nil {
			return nil, err
		}
		if len(coords) == 0 {
			return nil, fmt.Errorf("polygon has no rings")
		}
		return [][][2]float64{latLonOf(coords[0])}, nil
	case "MultiPolygon":
		var polys [][][][2]float64
		if err := json.Unmarshal(geom.Coordinates, &polys); err != nil {
			return nil, err
		}
		rings := make([][][2]float64, 0, len(polys))
		for _, poly := range polys {
			if len(poly) == 0 {
				continue
			}
			rings = append(rings, latLonOf(poly[0]))
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type: %q", geom.Type)
	}
}

// latLonOf swaps each [lon,lat] coordinate pair into (lat,lon) order.
func latLonOf(lonLat [][2]float64) [][2]float64 {
	out := make([][2]float64, len(lonLat))
	for i, c := range lonLat {
		out[i] = [2]float64{c[1], c[0]}
	}
	return out
}

// LoadWaypointsFromGeoJSON reads Point features from a GeoJSON file into
// Waypoints, mirroring the original loader's load_waypoints_from_geojson.
func LoadWaypointsFromGeoJSON(path string) ([]Waypoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc geojsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}
	features, err := featuresOf(doc)
	if err != nil {
		return nil, err
	}

	var waypoints []Waypoint
	for idx, feature := range features {
		if feature.Geometry.Type != "Point" {
			continue
		}
		var coords []float64
		if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("feature %d: parsing coordinates: %w", idx+1, err)
		}
		if len(coords) < 2 {
			continue
		}
		var alt float64
		if len(coords) > 2 {
			alt = coords[2]
		}

		var props struct {
			Name string `json:"name"`
		}
		if len(feature.Properties) > 0 {
			if err := json.Unmarshal(feature.Properties, &props); err != nil {
				return nil, fmt.Errorf("feature %d: parsing properties: %w", idx+1, err)
			}
		}

		wp, err := NewWaypoint(coords[1], coords[0], alt, props.Name, Intermediate)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", idx+1, err)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}
