// vrp/vrp.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package vrp is C10: fleet assignment. Partitions target points among a
// fleet of aircraft subject to one per-vehicle distance bound, with a
// capacitated construction heuristic as the primary solve and a greedy
// round-robin fallback when that search runs out of budget or cannot fit a
// target within the bound. The corpus has no
// constraint-programming solver (the kind an OR-tools binding would
// provide) so the primary solve is a parallel-cheapest-insertion
// construction bounded by the same 30-second budget spec.md §4.9
// prescribes for the CP formulation, rather than a literal CP-SAT call —
// see DESIGN.md.
package vrp

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// defaultSearchBudget is the 30-second search budget of spec.md §4.9,
// used when Assign is called with a zero budget.
const defaultSearchBudget = 30 * time.Second

// Result maps each aircraft's name to the ordered indices (into the
// original targets slice) assigned to it.
type Result map[string][]int

// Assign partitions targets among fleet, bounding every aircraft's
// depot-to-depot route distance by the same maxPerVehicleDistance value
// (not by that aircraft's own range). budget bounds the
// constructive search (e.g. config.MissionPlannerConfig.VRPSearchBudget());
// a zero or negative budget falls back to defaultSearchBudget.
func Assign(depot mission.Waypoint, targets []mission.Waypoint, fleet []mission.AircraftSpec, budget time.Duration) Result {
	if budget <= 0 {
		budget = defaultSearchBudget
	}
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	matrix := distanceMatrix(depot, targets)
	maxDistance := maxPerVehicleDistance(fleet, matrix)

	if result, ok := constructiveSolve(ctx, targets, fleet, matrix, maxDistance); ok {
		return postProcess(result, len(targets), fleet)
	}

	return postProcess(greedyRoundRobin(targets, matrix, fleet), len(targets), fleet)
}

// distanceMatrix returns an (n+1)x(n+1) matrix of integer-meter haversine
// distances, depot at index 0, per spec.md §4.9.
func distanceMatrix(depot mission.Waypoint, targets []mission.Waypoint) [][]int {
	n := len(targets) + 1
	points := make([]mission.Waypoint, 0, n)
	points = append(points, depot)
	points = append(points, targets...)

	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = int(math.Round(geo.Haversine(points[i].Lat, points[i].Lon, points[j].Lat, points[j].Lon)))
			}
		}
	}
	return m
}

// maxPerVehicleDistance is max(max range over fleet, 2 * max round-trip
// from depot to any target), per spec.md §4.9.
func maxPerVehicleDistance(fleet []mission.AircraftSpec, matrix [][]int) float64 {
	maxRange := 0.0
	for _, a := range fleet {
		if a.MaxRange > maxRange {
			maxRange = a.MaxRange
		}
	}
	maxRoundTrip := 0.0
	for i := 1; i < len(matrix); i++ {
		rt := float64(matrix[0][i]) * 2
		if rt > maxRoundTrip {
			maxRoundTrip = rt
		}
	}
	return math.Max(maxRange, maxRoundTrip)
}

// constructiveSolve builds routes via cheapest insertion, one target at a
// time, always inserting into whichever vehicle's route grows least,
// subject to the per-vehicle distance budget. Returns ok=false if any
// target cannot be inserted into any vehicle without violating the
// budget.
func constructiveSolve(ctx context.Context, targets []mission.Waypoint, fleet []mission.AircraftSpec,
	matrix [][]int, maxDistance float64) (Result, bool) {

	routes := make([][]int, len(fleet)) // depot-relative indices (1-based into targets)
	routeDistances := make([]float64, len(fleet))

	remaining := make([]int, len(targets))
	for i := range remaining {
		remaining[i] = i + 1 // matrix index (0 is depot)
	}

	for len(remaining) > 0 {
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}

		bestVehicle, bestPos, bestRemainingIdx := -1, -1, -1
		bestDelta := math.Inf(1)

		for ri, matIdx := range remaining {
			for v := range fleet {
				route := routes[v]
				for pos := 0; pos <= len(route); pos++ {
					delta := insertionDelta(route, pos, matIdx, matrix)
					if routeDistances[v]+delta > maxDistance {
						continue
					}
					if delta < bestDelta {
						bestDelta = delta
						bestVehicle, bestPos, bestRemainingIdx = v, pos, ri
					}
				}
			}
		}

		if bestVehicle == -1 {
			return nil, false
		}

		matIdx := remaining[bestRemainingIdx]
		route := routes[bestVehicle]
		newRoute := make([]int, 0, len(route)+1)
		newRoute = append(newRoute, route[:bestPos]...)
		newRoute = append(newRoute, matIdx)
		newRoute = append(newRoute, route[bestPos:]...)
		routes[bestVehicle] = newRoute
		routeDistances[bestVehicle] += bestDelta

		remaining = append(remaining[:bestRemainingIdx], remaining[bestRemainingIdx+1:]...)
	}

	result := make(Result, len(fleet))
	for v, route := range routes {
		indices := make([]int, len(route))
		for i, matIdx := range route {
			indices[i] = matIdx - 1 // back to targets-slice index
		}
		result[fleet[v].Name] = indices
	}
	return result, true
}

// insertionDelta is the added round-trip distance from inserting matIdx
// at position pos in route (distances relative to the depot at 0).
func insertionDelta(route []int, pos, matIdx int, matrix [][]int) float64 {
	prev := 0
	if pos > 0 {
		prev = route[pos-1]
	}
	next := 0
	if pos < len(route) {
		next = route[pos]
	}
	return float64(matrix[prev][matIdx] + matrix[matIdx][next] - matrix[prev][next])
}

// greedyRoundRobin is the spec.md §4.9 fallback: targets sorted by
// distance-from-depot, distributed round-robin over the fleet.
func greedyRoundRobin(targets []mission.Waypoint, matrix [][]int, fleet []mission.AircraftSpec) Result {
	order := make([]int, len(targets))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return matrix[0][order[i]+1] < matrix[0][order[j]+1]
	})

	result := make(Result, len(fleet))
	for _, a := range fleet {
		result[a.Name] = []int{}
	}
	if len(fleet) == 0 {
		return result
	}
	for i, idx := range order {
		name := fleet[i%len(fleet)].Name
		result[name] = append(result[name], idx)
	}
	return result
}

// postProcess redistributes targets round-robin by input order if fewer
// targets than aircraft and at least one aircraft has none, so every
// aircraft ends up with floor(n/k) or ceil(n/k) targets, per spec.md
// §4.9.
func postProcess(result Result, targetCount int, fleet []mission.AircraftSpec) Result {
	if len(fleet) == 0 || targetCount >= len(fleet) {
		return result
	}

	empty := false
	for _, a := range fleet {
		if len(result[a.Name]) == 0 {
			empty = true
			break
		}
	}
	if !empty {
		return result
	}

	all := make([]int, 0, targetCount)
	for _, a := range fleet {
		all = append(all, result[a.Name]...)
	}
	sort.Ints(all)

	redistributed := make(Result, len(fleet))
	for _, a := range fleet {
		redistributed[a.Name] = []int{}
	}
	for i, idx := range all {
		name := fleet[i%len(fleet)].Name
		redistributed[name] = append(redistributed[name], idx)
	}
	return redistributed
}
