// orchestrator/refine.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/optimize"
	"github.com/aerie-sh/aerie/validate"
)

// refineRoutes runs the requested metaheuristic over every planned
// route's waypoints, per spec.md §4.8, then recomputes each route's
// metrics against the refined waypoints. A route missing from routes
// (an aircraft that failed to plan) is simply skipped.
func (o *Orchestrator) refineRoutes(m *mission.Mission, routes map[string]*mission.Route, opts Options, rng *aerand.Rand) {
	for _, aircraft := range m.Fleet {
		route, ok := routes[aircraft.Name]
		if !ok || len(route.Waypoints) < 4 {
			continue
		}

		model := costmodel.NewModel(aircraft, &m.Constraints, o.Weather, opts.At)

		refined, stats := refine(opts.OptimizationAlgorithm, model, &m.Constraints, rng, route.Waypoints)
		if refined == nil {
			continue // optimized result missing: keep the pre-optimization route
		}

		o.Log.Info("metaheuristic refinement converged", "aircraft", aircraft.Name,
			"algorithm", opts.OptimizationAlgorithm, "mean", stats.Mean, "stddev", stats.StdDev,
			"best", stats.Best, "n", stats.N)

		route.Waypoints = refined
		route.Metrics = computeMetrics(model, route.Waypoints)
	}
}

func refine(algo OptimizationAlgorithm, model *costmodel.Model, constraints *mission.Constraints,
	rng *aerand.Rand, waypoints []mission.Waypoint) ([]mission.Waypoint, optimize.RefinementStats) {

	switch algo {
	case OptimizationGenetic:
		ga := optimize.NewGenetic(model, constraints, rng)
		return ga.Refine(waypoints), ga.LastStats
	case OptimizationACO:
		aco := optimize.NewACO(constraints, rng)
		return aco.Refine(waypoints), aco.LastStats
	case OptimizationPSO:
		pso := optimize.NewPSO(constraints, rng)
		return pso.Refine(waypoints), pso.LastStats
	default:
		return nil, optimize.RefinementStats{}
	}
}

// attachVerdicts runs the validators over every planned route and
// attaches the resulting verdict, plus the route's metrics if refineRoutes
// hasn't already computed them (e.g. no optimization algorithm requested).
func (o *Orchestrator) attachVerdicts(m *mission.Mission, routes map[string]*mission.Route) {
	for _, aircraft := range m.Fleet {
		route, ok := routes[aircraft.Name]
		if !ok {
			continue
		}

		model := costmodel.NewModel(aircraft, &m.Constraints, o.Weather, nil)

		if route.Metrics == nil {
			route.Metrics = computeMetrics(model, route.Waypoints)
		}

		v := validate.New(model, aircraft, &m.Constraints)
		route.Verdict = v.Validate(route.Waypoints)
	}
}
