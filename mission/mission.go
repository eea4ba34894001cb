// mission/mission.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import "github.com/aerie-sh/aerie/aeerr"

// FinishPointType selects how a route's finish point is determined.
type FinishPointType string

const (
	FinishDepot       FinishPointType = "depot"
	FinishLastTarget  FinishPointType = "last_target"
	FinishCustom      FinishPointType = "custom"
)

// LandingMode selects the landing synthesizer's (C11) behavior.
type LandingMode string

const (
	LandingVertical LandingMode = "vertical"
	LandingGradual  LandingMode = "gradual"
)

// Mission is the top-level planning input: a fleet, its targets, an
// optional depot/finish point, a finish policy, a landing mode, and the
// constraints every route must respect. Routes is populated by the
// orchestrator (C13) once planning completes.
type Mission struct {
	Name string

	Fleet         []AircraftSpec
	TargetPoints  []Waypoint
	Depot         *Waypoint
	FinishPoint   *Waypoint
	FinishType    FinishPointType
	LandingMode   LandingMode

	Constraints Constraints

	Routes map[string]*Route // aircraft name -> route, filled in by the orchestrator
}

// Validate checks the structural invariants of spec.md §3 that aren't
// already enforced by the individual constructors (e.g. NewWaypoint,
// NewAircraftSpec): a mission needs at least one aircraft, and the finish
// policy must be internally consistent.
func (m *Mission) Validate() error {
	if len(m.Fleet) == 0 {
		return aeerr.ErrEmptyFleet
	}
	if m.FinishType == FinishCustom && m.FinishPoint == nil {
		return aeerr.ErrMissingFinishPoint
	}
	return nil
}

// AircraftByName looks up a fleet member, for the orchestrator's
// per-aircraft pipeline.
func (m *Mission) AircraftByName(name string) (AircraftSpec, bool) {
	for _, a := range m.Fleet {
		if a.Name == name {
			return a, true
		}
	}
	return AircraftSpec{}, false
}
