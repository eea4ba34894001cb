// orchestrator/single.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"fmt"

	"github.com/aerie-sh/aerie/aeerr"
	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/navgraph"
	"github.com/aerie-sh/aerie/optimize"
	"github.com/aerie-sh/aerie/planner"

	"github.com/aerie-sh/aerie/landing"
)

// subMission is the per-aircraft view of a mission the single-aircraft
// pipeline plans over.
type subMission struct {
	aircraft    mission.AircraftSpec
	targets     []mission.Waypoint
	depot       *mission.Waypoint
	finishType  mission.FinishPointType
	finishPoint *mission.Waypoint
	landingMode mission.LandingMode
	constraints *mission.Constraints
}

func (o *Orchestrator) planSingleFleet(m *mission.Mission, opts Options, rng *aerand.Rand) (map[string]*mission.Route, *aeerr.PlanningError) {
	finishType, finishPoint, landingMode := effectiveFinish(m, opts)

	sub := subMission{
		aircraft:    m.Fleet[0],
		targets:     m.TargetPoints,
		depot:       m.Depot,
		finishType:  finishType,
		finishPoint: finishPoint,
		landingMode: landingMode,
		constraints: &m.Constraints,
	}

	routes := make(map[string]*mission.Route)
	planErr := aeerr.NewPlanningError()

	route, err := o.planSingleAircraft(sub, opts, rng)
	if err != nil {
		planErr.Add(sub.aircraft.Name, err.Error())
	} else {
		routes[sub.aircraft.Name] = route
	}

	return routes, planErr
}

// planSingleAircraft runs spec.md §4.12's single-aircraft pipeline:
// build the waypoint graph, optimize target order, append the finish
// node, run the chosen planner, synthesize the landing, and compute
// metrics.
func (o *Orchestrator) planSingleAircraft(sub subMission, opts Options, rng *aerand.Rand) (*mission.Route, error) {
	model := costmodel.NewModel(sub.aircraft, sub.constraints, o.Weather, opts.At)

	start := sub.depot
	if start == nil && len(sub.targets) > 0 {
		start = &sub.targets[0]
	}
	if start == nil {
		return nil, fmt.Errorf("%w: no depot or targets to plan from", aeerr.ErrNoRouteFound)
	}

	orderOpt := optimize.NewOrderOptimizer(model)
	orderedTargets := orderOpt.Optimize(*start, sub.targets, opts.OptimizationMetric)

	nodeList := make([]mission.Waypoint, 0, len(orderedTargets)+2)
	if sub.depot != nil {
		nodeList = append(nodeList, *sub.depot)
	}
	nodeList = append(nodeList, orderedTargets...)

	appendsFinishNode := sub.finishType == mission.FinishDepot || sub.finishType == mission.FinishCustom
	if appendsFinishNode {
		finish := resolveFinishWaypoint(sub)
		nodeList = append(nodeList, finish)
	}

	if len(nodeList) < 2 {
		return &mission.Route{AircraftName: sub.aircraft.Name, Waypoints: nodeList}, nil
	}

	gr := navgraph.Build(nodeList, model)

	p := buildPlanner(opts.Algorithm, gr, model)

	via := make([]string, 0, len(nodeList)-1)
	for i := 1; i < len(nodeList); i++ {
		via = append(via, navgraph.NodeID(i))
	}

	sequence, ok := p.FindPathVia(navgraph.NodeID(0), via)
	if !ok {
		return nil, aeerr.ErrNoRouteFound
	}

	waypoints := p.ToWaypoints(sequence)
	waypoints = landing.Synthesize(waypoints, sub.landingMode, sub.finishType, sub.aircraft.MinAltitude)

	route := &mission.Route{AircraftName: sub.aircraft.Name, Waypoints: waypoints}
	return route, nil
}

// resolveFinishWaypoint returns the waypoint to append for depot/custom
// finish policies: a depot-typed copy of the depot for FinishDepot, or
// the supplied custom point (typed Finish) for FinishCustom.
func resolveFinishWaypoint(sub subMission) mission.Waypoint {
	if sub.finishType == mission.FinishDepot && sub.depot != nil {
		return sub.depot.WithType(mission.Depot)
	}
	if sub.finishPoint != nil {
		return sub.finishPoint.WithType(mission.Finish)
	}
	// Falls back to the depot if present; the orchestrator's Validate
	// already rejects FinishCustom with no finish point set.
	if sub.depot != nil {
		return sub.depot.WithType(mission.Finish)
	}
	return mission.Waypoint{}
}

func buildPlanner(algo Algorithm, gr *navgraph.Graph, model *costmodel.Model) planner.Planner {
	switch algo {
	case AlgorithmThetaStar:
		return planner.NewThetaStar(gr, model)
	case AlgorithmDStar:
		return planner.NewDStarLite(gr, model)
	default:
		return planner.NewAStar(gr, model)
	}
}
