// orchestrator/multi.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"github.com/aerie-sh/aerie/aeerr"
	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/vrp"
)

// planMultiFleet runs spec.md §4.12's multi-aircraft pipeline: assign
// targets to aircraft via vrp.Assign, then run the single-aircraft
// pipeline per aircraft over its own sub-mission. An aircraft assigned
// no targets still gets a route: [depot, finish] if the mission finish
// policy resolves to a point other than the depot itself, or just
// [depot] otherwise. Per-aircraft failures are aggregated without
// aborting the others.
func (o *Orchestrator) planMultiFleet(m *mission.Mission, opts Options, rng *aerand.Rand) (map[string]*mission.Route, *aeerr.PlanningError) {
	routes := make(map[string]*mission.Route)
	planErr := aeerr.NewPlanningError()

	if m.Depot == nil {
		for _, a := range m.Fleet {
			planErr.Add(a.Name, "multi-aircraft missions require a depot")
		}
		return routes, planErr
	}

	finishType, finishPoint, landingMode := effectiveFinish(m, opts)

	assignment := vrp.Assign(*m.Depot, m.TargetPoints, m.Fleet, opts.VRPSearchBudget)

	for _, aircraft := range m.Fleet {
		indices := assignment[aircraft.Name]

		if len(indices) == 0 {
			routes[aircraft.Name] = noTargetRoute(aircraft, m.Depot, finishType, finishPoint)
			continue
		}

		targets := make([]mission.Waypoint, len(indices))
		for i, idx := range indices {
			targets[i] = m.TargetPoints[idx]
		}

		sub := subMission{
			aircraft:    aircraft,
			targets:     targets,
			depot:       m.Depot,
			finishType:  finishType,
			finishPoint: finishPoint,
			landingMode: landingMode,
			constraints: &m.Constraints,
		}

		route, err := o.planSingleAircraft(sub, opts, rng)
		if err != nil {
			planErr.Add(aircraft.Name, err.Error())
			continue
		}
		routes[aircraft.Name] = route
	}

	return routes, planErr
}

// noTargetRoute builds the degenerate route for an aircraft assigned no
// targets, per spec.md §4.12.
func noTargetRoute(aircraft mission.AircraftSpec, depot *mission.Waypoint, finishType mission.FinishPointType, finishPoint *mission.Waypoint) *mission.Route {
	waypoints := []mission.Waypoint{*depot}

	switch finishType {
	case mission.FinishDepot:
		// Finish coincides with the depot: a single waypoint suffices.
	case mission.FinishCustom:
		if finishPoint != nil {
			waypoints = append(waypoints, finishPoint.WithType(mission.Finish))
		}
	default: // FinishLastTarget with no targets: nothing to append.
	}

	return &mission.Route{AircraftName: aircraft.Name, Waypoints: waypoints}
}
