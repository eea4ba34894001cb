// mission/aircraft.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"fmt"

	"github.com/aerie-sh/aerie/aeerr"
)

// AircraftSpec describes one aircraft's kinematic and energy envelope.
// MaxFlightTime and MaxRange are derived at construction time rather than
// recomputed on every query.
type AircraftSpec struct {
	Name string

	MaxSpeed         float64 // m/s
	MinAltitude      float64
	MaxAltitude      float64
	BatteryCapacity  float64 // Wh
	PowerConsumption float64 // W
	TurnRadius       float64 // m
	ClimbRate        float64 // m/s
	DescentRate      float64 // m/s

	// Derived.
	MaxFlightTime float64 // seconds
	MaxRange      float64 // meters
}

// NewAircraftSpec validates and constructs an AircraftSpec, deriving
// MaxFlightTime and MaxRange per spec.md §3: "max_flight_time =
// battery_capacity / power_consumption * 3600s; max_range = max_speed *
// max_flight_time".
func NewAircraftSpec(name string, maxSpeed, minAlt, maxAlt, batteryCapacity, powerConsumption,
	turnRadius, climbRate, descentRate float64) (AircraftSpec, error) {
	if maxSpeed <= 0 || batteryCapacity <= 0 || powerConsumption <= 0 ||
		turnRadius <= 0 || climbRate <= 0 || descentRate <= 0 {
		return AircraftSpec{}, fmt.Errorf("%w: max_speed, battery_capacity, power_consumption, "+
			"turn_radius, climb_rate, and descent_rate must all be > 0", aeerr.ErrNonPositiveParameter)
	}
	if minAlt < 0 {
		return AircraftSpec{}, fmt.Errorf("%w: min_altitude", aeerr.ErrInvalidAltitude)
	}
	if maxAlt <= minAlt {
		return AircraftSpec{}, fmt.Errorf("%w: max_altitude %v must exceed min_altitude %v",
			aeerr.ErrInvalidAltitudeBand, maxAlt, minAlt)
	}

	maxFlightTime := batteryCapacity / powerConsumption * 3600
	return AircraftSpec{
		Name:             name,
		MaxSpeed:         maxSpeed,
		MinAltitude:      minAlt,
		MaxAltitude:      maxAlt,
		BatteryCapacity:  batteryCapacity,
		PowerConsumption: powerConsumption,
		TurnRadius:       turnRadius,
		ClimbRate:        climbRate,
		DescentRate:      descentRate,
		MaxFlightTime:    maxFlightTime,
		MaxRange:         maxSpeed * maxFlightTime,
	}, nil
}
