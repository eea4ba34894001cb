// mission/json.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import "encoding/json"

// waypointJSON is the wire representation of a Waypoint; Waypoint itself
// stays a plain immutable struct so that constructing one always goes
// through NewWaypoint's validation, the way the teacher keeps its wire
// structs (e.g. aviation.AirspaceVolume) distinct from in-memory
// invariants enforced by constructors.
type waypointJSON struct {
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
	Alt  float64      `json:"alt"`
	Name string       `json:"name,omitempty"`
	Type WaypointType `json:"waypoint_type"`
}

func (w Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(waypointJSON{Lat: w.Lat, Lon: w.Lon, Alt: w.Alt, Name: w.Name, Type: w.Type})
}

func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var wj waypointJSON
	if err := json.Unmarshal(data, &wj); err != nil {
		return err
	}
	built, err := NewWaypoint(wj.Lat, wj.Lon, wj.Alt, wj.Name, wj.Type)
	if err != nil {
		return err
	}
	*w = built
	return nil
}

// routeJSON mirrors Route's exported fields for marshaling; RouteMetrics
// and ValidationVerdict are plain structs so they round-trip without a
// custom marshaler.
type routeJSON struct {
	AircraftName string            `json:"aircraft_name"`
	Waypoints    []Waypoint        `json:"waypoints"`
	Metrics      *RouteMetrics     `json:"metrics,omitempty"`
	Verdict      *ValidationVerdict `json:"verdict,omitempty"`
}

func (r Route) MarshalJSON() ([]byte, error) {
	return json.Marshal(routeJSON{
		AircraftName: r.AircraftName,
		Waypoints:    r.Waypoints,
		Metrics:      r.Metrics,
		Verdict:      r.Verdict,
	})
}

func (r *Route) UnmarshalJSON(data []byte) error {
	var rj routeJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	r.AircraftName = rj.AircraftName
	r.Waypoints = rj.Waypoints
	r.Metrics = rj.Metrics
	r.Verdict = rj.Verdict
	return nil
}
