// aeerr/aeerr.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aeerr collects the sentinel errors raised by constructors across
// the mission planner, plus the aggregated per-aircraft error type the
// orchestrator returns from plan_mission. Geodesy and cost-model routines
// never return error; per spec.md §7 they use sentinels in their own result
// values ("+Inf" for cost, "(false, reason)" for feasibility) instead.
package aeerr

import (
	"errors"
	"fmt"
	"strings"
)

// Input validation
var (
	ErrInvalidLatitude      = errors.New("latitude out of range [-90, 90]")
	ErrInvalidLongitude     = errors.New("longitude out of range [-180, 180]")
	ErrInvalidAltitude      = errors.New("altitude must be >= 0")
	ErrNonPositiveParameter = errors.New("parameter must be > 0")
	ErrInvalidAltitudeBand  = errors.New("min_altitude must be < max_altitude")
	ErrEmptyFleet           = errors.New("mission requires at least one aircraft")
	ErrEmptyPolygon         = errors.New("no-fly zone polygon requires at least 3 vertices")
	ErrMissingFinishPoint   = errors.New("custom finish policy requires a finish point")
)

// Pre-check / planning
var (
	ErrNoFlyZonePreCheck = errors.New("point lies within a no-fly zone")
	ErrNoRouteFound      = errors.New("no feasible route found")
)

// PlanningError aggregates per-aircraft planning failures into a single
// error without aborting the aircraft that did succeed, per spec.md §7's
// propagation policy ("the orchestrator assembles a single aggregated error
// string and never raises").
type PlanningError struct {
	Failures map[string]string // aircraft name -> reason
}

func NewPlanningError() *PlanningError {
	return &PlanningError{Failures: make(map[string]string)}
}

func (p *PlanningError) Add(aircraft, reason string) {
	p.Failures[aircraft] = reason
}

func (p *PlanningError) Empty() bool {
	return len(p.Failures) == 0
}

func (p *PlanningError) Error() string {
	if p.Empty() {
		return ""
	}
	lines := make([]string, 0, len(p.Failures))
	for name, reason := range p.Failures {
		lines = append(lines, fmt.Sprintf("%s: %s", name, reason))
	}
	return strings.Join(lines, "\n")
}

// AsError returns nil if p has no failures, so callers can write
// `return routes, err.AsError()` without a manual emptiness check.
func (p *PlanningError) AsError() error {
	if p == nil || p.Empty() {
		return nil
	}
	return p
}
