// optimize/pso.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"math"

	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/mission"
)

const (
	psoParticles  = 30
	psoIterations = 100
	psoW          = 0.5
	psoC1         = 1.5
	psoC2         = 1.5
)

// PSO is spec.md §4.8's particle-swarm refinement: each particle is a
// permutation of the middle slice; velocity is a swap-distance magnitude
// that, above 0.5, triggers a best-single-swap local search move.
type PSO struct {
	Constraints *mission.Constraints
	Rand        *aerand.Rand

	// LastStats summarizes the final iteration's swarm-cost
	// distribution, populated by Refine.
	LastStats RefinementStats
}

func NewPSO(constraints *mission.Constraints, rng *aerand.Rand) *PSO {
	return &PSO{Constraints: constraints, Rand: rng}
}

type psoParticle struct {
	order       []int
	velocity    float64
	bestOrder   []int
	bestCost    float64
}

// Refine runs the particle-swarm algorithm over route[1:len-1]. Cost is
// horizontal-only distance, per spec.md §4.8.
func (pso *PSO) Refine(route []mission.Waypoint) []mission.Waypoint {
	if len(route) < 4 {
		return route
	}
	first, last := route[0], route[len(route)-1]
	middle := route[1 : len(route)-1]
	n := len(middle)

	cost := func(order []int) float64 {
		candidate := fullRoute(first, applyOrder(middle, order), last)
		if violatesNoFlyZones(candidate, pso.Constraints) {
			return math.Inf(1)
		}
		return horizontalDistance(candidate)
	}

	particles := make([]*psoParticle, psoParticles)
	globalBestOrder := identityOrder(n)
	globalBestCost := cost(globalBestOrder)

	for i := range particles {
		order := identityOrder(n)
		pso.Rand.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })
		c := cost(order)
		particles[i] = &psoParticle{order: order, velocity: 0, bestOrder: append([]int(nil), order...), bestCost: c}
		if c < globalBestCost {
			globalBestCost = c
			globalBestOrder = append([]int(nil), order...)
		}
	}

	var iterCosts []float64
	for iter := 0; iter < psoIterations; iter++ {
		iterCosts = make([]float64, 0, len(particles))
		for _, p := range particles {
			swapToPersonal := swapDistance(p.order, p.bestOrder)
			swapToGlobal := swapDistance(p.order, globalBestOrder)

			p.velocity = psoW*p.velocity + psoC1*pso.Rand.Float64()*float64(swapToPersonal) +
				psoC2*pso.Rand.Float64()*float64(swapToGlobal)

			if math.Abs(p.velocity) > 0.5 {
				pso.applyBestSwap(p.order, cost)
			}

			c := cost(p.order)
			iterCosts = append(iterCosts, c)
			if c < p.bestCost {
				p.bestCost = c
				p.bestOrder = append([]int(nil), p.order...)
			}
			if c < globalBestCost {
				globalBestCost = c
				globalBestOrder = append([]int(nil), p.order...)
			}
		}
	}

	pso.LastStats = computeStats(iterCosts)
	if math.IsInf(globalBestCost, 1) {
		return route
	}
	return fullRoute(first, applyOrder(middle, globalBestOrder), last)
}

// applyBestSwap scans every pair in order for the single swap that most
// improves cost, and applies it if any improves.
func (pso *PSO) applyBestSwap(order []int, cost func([]int) float64) {
	n := len(order)
	if n < 2 {
		return
	}
	base := cost(order)
	bestI, bestJ := -1, -1
	bestCost := base

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			order[i], order[j] = order[j], order[i]
			c := cost(order)
			if c < bestCost {
				bestCost, bestI, bestJ = c, i, j
			}
			order[i], order[j] = order[j], order[i]
		}
	}

	if bestI >= 0 {
		order[bestI], order[bestJ] = order[bestJ], order[bestI]
	}
}

// swapDistance counts positions where a and b disagree, as a proxy for
// the minimum number of swaps needed to turn one permutation into the
// other.
func swapDistance(a, b []int) int {
	n := 0
	for i := range a {
		if i < len(b) && a[i] != b[i] {
			n++
		}
	}
	return n
}
