// optimize/aco.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"math"

	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

const (
	acoAnts        = 30
	acoIterations  = 100
	acoAlpha       = 1.0
	acoBeta        = 2.0
	acoEvaporation = 0.1
	acoQ           = 100.0
)

// ACO is spec.md §4.8's ant-colony refinement.
type ACO struct {
	Constraints *mission.Constraints
	Rand        *aerand.Rand

	// LastStats summarizes the final iteration's ant-tour cost
	// distribution, populated by Refine.
	LastStats RefinementStats
}

func NewACO(constraints *mission.Constraints, rng *aerand.Rand) *ACO {
	return &ACO{Constraints: constraints, Rand: rng}
}

// Refine runs the ant-colony algorithm over route[1:len-1]. Cost is
// horizontal-only distance, per spec.md §4.8.
func (aco *ACO) Refine(route []mission.Waypoint) []mission.Waypoint {
	if len(route) < 4 {
		return route
	}
	first, last := route[0], route[len(route)-1]
	middle := route[1 : len(route)-1]
	n := len(middle)

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = geo.Haversine(middle[i].Lat, middle[i].Lon, middle[j].Lat, middle[j].Lon)
			}
		}
	}

	pheromone := make([][]float64, n)
	for i := range pheromone {
		pheromone[i] = make([]float64, n)
		for j := range pheromone[i] {
			pheromone[i][j] = 1.0
		}
	}

	bestOrder := identityOrder(n)
	bestCost := math.Inf(1)
	if c := aco.orderCost(first, middle, bestOrder, last); c < bestCost {
		bestCost = c
	}

	var costs []float64
	for iter := 0; iter < acoIterations; iter++ {
		tours := make([][]int, acoAnts)
		costs = make([]float64, acoAnts)

		for a := 0; a < acoAnts; a++ {
			tour := aco.buildTour(n, dist, pheromone)
			tours[a] = tour
			costs[a] = aco.orderCost(first, middle, tour, last)
			if costs[a] < bestCost {
				bestCost = costs[a]
				bestOrder = append([]int(nil), tour...)
			}
		}

		for i := range pheromone {
			for j := range pheromone[i] {
				pheromone[i][j] *= 1 - acoEvaporation
			}
		}
		for a, tour := range tours {
			if costs[a] <= 0 || math.IsInf(costs[a], 1) {
				continue
			}
			deposit := acoQ / costs[a]
			for k := 1; k < len(tour); k++ {
				u, v := tour[k-1], tour[k]
				pheromone[u][v] += deposit
				pheromone[v][u] += deposit
			}
		}
	}

	aco.LastStats = computeStats(costs)
	if math.IsInf(bestCost, 1) {
		return route
	}
	return fullRoute(first, applyOrder(middle, bestOrder), last)
}

func (aco *ACO) buildTour(n int, dist, pheromone [][]float64) []int {
	visited := make([]bool, n)
	tour := make([]int, 0, n)

	current := aco.Rand.IntN(n)
	tour = append(tour, current)
	visited[current] = true

	for len(tour) < n {
		weights := make([]float64, n)
		total := 0.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			eta := 1.0
			if dist[current][j] > 0 {
				eta = 1.0 / dist[current][j]
			}
			w := math.Pow(pheromone[current][j], acoAlpha) * math.Pow(eta, acoBeta)
			weights[j] = w
			total += w
		}

		next := -1
		if total <= 0 {
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
		} else {
			r := aco.Rand.Float64() * total
			acc := 0.0
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				acc += weights[j]
				if acc >= r {
					next = j
					break
				}
			}
			if next == -1 {
				for j := 0; j < n; j++ {
					if !visited[j] {
						next = j
						break
					}
				}
			}
		}

		tour = append(tour, next)
		visited[next] = true
		current = next
	}

	return tour
}

func (aco *ACO) orderCost(first mission.Waypoint, middle []mission.Waypoint, order []int, last mission.Waypoint) float64 {
	candidate := fullRoute(first, applyOrder(middle, order), last)
	if violatesNoFlyZones(candidate, aco.Constraints) {
		return math.Inf(1)
	}
	return horizontalDistance(candidate)
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func applyOrder(middle []mission.Waypoint, order []int) []mission.Waypoint {
	out := make([]mission.Waypoint, len(order))
	for i, idx := range order {
		out[i] = middle[idx]
	}
	return out
}
