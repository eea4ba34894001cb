// optimize/order.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package optimize is C8 (the greedy order optimizer) and C9 (the
// genetic/ACO/PSO metaheuristic refiners). Both operate on a waypoint
// ordering rather than the nav graph; they borrow a costmodel.Model for
// distance/energy/time metrics and mission.Constraints for the no-fly
// penalty rule.
package optimize

import (
	"math"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// Metric selects the greedy order optimizer's distance function, per
// spec.md §4.7.
type Metric string

const (
	MetricDistance Metric = "distance"
	MetricEnergy   Metric = "energy"
	MetricTime     Metric = "time"
)

// OrderOptimizer is C8: greedy nearest-neighbour reordering of target
// waypoints under a chosen metric.
type OrderOptimizer struct {
	Model *costmodel.Model
}

func NewOrderOptimizer(model *costmodel.Model) *OrderOptimizer {
	return &OrderOptimizer{Model: model}
}

func (o *OrderOptimizer) metricValue(metric Metric, from, to mission.Waypoint) float64 {
	switch metric {
	case MetricEnergy:
		return o.Model.BaseEnergy(costmodel.Segment{Start: from, End: to})
	case MetricTime:
		return geo.Euclidean3D(toPosition(from), toPosition(to)) / o.Model.Aircraft.MaxSpeed
	default:
		return geo.Euclidean3D(toPosition(from), toPosition(to))
	}
}

func toPosition(w mission.Waypoint) geo.Position {
	return geo.Position{Lat: w.Lat, Lon: w.Lon, Alt: w.Alt}
}

// Optimize greedily reorders targets starting from start, repeatedly
// picking the unvisited target minimizing metric from the current node.
// Deterministic: ties are broken by input order. The finish node is not
// part of targets and is appended by the caller afterward, per spec.md
// §4.7.
func (o *OrderOptimizer) Optimize(start mission.Waypoint, targets []mission.Waypoint, metric Metric) []mission.Waypoint {
	remaining := make([]mission.Waypoint, len(targets))
	copy(remaining, targets)

	ordered := make([]mission.Waypoint, 0, len(targets))
	current := start

	for len(remaining) > 0 {
		bestIdx := -1
		bestValue := math.Inf(1)
		for i, t := range remaining {
			v := o.metricValue(metric, current, t)
			if v < bestValue {
				bestValue, bestIdx = v, i
			}
		}
		ordered = append(ordered, remaining[bestIdx])
		current = remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}
