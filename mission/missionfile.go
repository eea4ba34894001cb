// mission/missionfile.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"encoding/json"
	"fmt"
	"os"
)

// aircraftJSON is the on-disk representation of a fleet member; the
// constructed AircraftSpec always goes through NewAircraftSpec so a
// mission file can never smuggle in an invalid envelope.
type aircraftJSON struct {
	Name             string  `json:"name"`
	MaxSpeed         float64 `json:"max_speed"`
	MinAltitude      float64 `json:"min_altitude"`
	MaxAltitude      float64 `json:"max_altitude"`
	BatteryCapacity  float64 `json:"battery_capacity"`
	PowerConsumption float64 `json:"power_consumption"`
	TurnRadius       float64 `json:"turn_radius"`
	ClimbRate        float64 `json:"climb_rate"`
	DescentRate      float64 `json:"descent_rate"`
}

type noFlyZoneJSON struct {
	Name        string         `json:"name"`
	Rings       [][][2]float64 `json:"rings"`
	MinAltitude float64        `json:"min_altitude"`
	MaxAltitude float64        `json:"max_altitude"`
}

type constraintsJSON struct {
	NoFlyZones           []noFlyZoneJSON `json:"no_fly_zones,omitempty"`
	MinAltitude          *float64        `json:"min_altitude,omitempty"`
	MaxAltitude          *float64        `json:"max_altitude,omitempty"`
	MaxDistance          *float64        `json:"max_distance,omitempty"`
	MaxFlightTime        *float64        `json:"max_flight_time,omitempty"`
	RequireReturnToDepot bool            `json:"require_return_to_depot,omitempty"`
}

// missionJSON mirrors Mission's fields for file-based loading, per
// spec.md §6's "a re-implementation MAY expose a single command producing
// plan_mission from a mission JSON on disk".
type missionJSON struct {
	Name string `json:"name"`

	Fleet        []aircraftJSON  `json:"fleet"`
	TargetPoints []Waypoint      `json:"target_points"`
	Depot        *Waypoint       `json:"depot,omitempty"`
	FinishPoint  *Waypoint       `json:"finish_point,omitempty"`
	FinishType   FinishPointType `json:"finish_point_type"`
	LandingMode  LandingMode     `json:"landing_mode"`

	Constraints constraintsJSON `json:"constraints"`
}

// LoadMissionFile reads and validates a Mission from path, constructing
// every nested value (aircraft, no-fly zones, waypoints) through its
// validating constructor so a malformed mission file fails fast with a
// wrapped sentinel error rather than producing a half-valid Mission.
func LoadMissionFile(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mission file: %w", err)
	}

	var mj missionJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return nil, fmt.Errorf("parsing mission file: %w", err)
	}

	fleet := make([]AircraftSpec, 0, len(mj.Fleet))
	for i, a := range mj.Fleet {
		spec, err := NewAircraftSpec(a.Name, a.MaxSpeed, a.MinAltitude, a.MaxAltitude,
			a.BatteryCapacity, a.PowerConsumption, a.TurnRadius, a.ClimbRate, a.DescentRate)
		if err != nil {
			return nil, fmt.Errorf("fleet[%d]: %w", i, err)
		}
		fleet = append(fleet, spec)
	}

	zones := make([]*NoFlyZone, 0, len(mj.Constraints.NoFlyZones))
	for i, z := range mj.Constraints.NoFlyZones {
		zone, err := NewNoFlyZone(z.Name, z.Rings, z.MinAltitude, z.MaxAltitude)
		if err != nil {
			return nil, fmt.Errorf("no_fly_zones[%d]: %w", i, err)
		}
		zones = append(zones, zone)
	}

	m := &Mission{
		Name:         mj.Name,
		Fleet:        fleet,
		TargetPoints: mj.TargetPoints,
		Depot:        mj.Depot,
		FinishPoint:  mj.FinishPoint,
		FinishType:   mj.FinishType,
		LandingMode:  mj.LandingMode,
		Constraints: Constraints{
			NoFlyZones:           zones,
			MinAltitude:          mj.Constraints.MinAltitude,
			MaxAltitude:          mj.Constraints.MaxAltitude,
			MaxDistance:          mj.Constraints.MaxDistance,
			MaxFlightTime:        mj.Constraints.MaxFlightTime,
			RequireReturnToDepot: mj.Constraints.RequireReturnToDepot,
		},
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
