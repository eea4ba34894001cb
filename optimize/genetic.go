// optimize/genetic.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"github.com/brunoga/deep"

	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
)

const (
	geneticPopulation  = 50
	geneticGenerations = 100
	tournamentSize     = 3
)

// Genetic is spec.md §4.8's genetic refinement: tournament-3 selection,
// order crossover, swap mutation, elitism-1 over 100 generations.
type Genetic struct {
	Model       *costmodel.Model
	Constraints *mission.Constraints
	Rand        *aerand.Rand

	// LastStats summarizes the final generation's fitness distribution,
	// populated by Refine.
	LastStats RefinementStats
}

func NewGenetic(model *costmodel.Model, constraints *mission.Constraints, rng *aerand.Rand) *Genetic {
	return &Genetic{Model: model, Constraints: constraints, Rand: rng}
}

// Refine runs the genetic algorithm over route[1:len-1], keeping the
// first and last waypoints fixed, and returns the best route found. If
// every candidate is infinite-cost (no-fly violation), the original
// route is returned unchanged.
func (ga *Genetic) Refine(route []mission.Waypoint) []mission.Waypoint {
	if len(route) < 4 {
		return route
	}
	first, last := route[0], route[len(route)-1]
	middle := route[1 : len(route)-1]

	population := make([][]mission.Waypoint, geneticPopulation)
	for i := range population {
		population[i] = ga.shuffledCopy(middle)
	}

	bestMiddle := cloneMiddle(middle)
	bestFitness := ga.fitness(first, middle, last)

	var fitnesses []float64
	for gen := 0; gen < geneticGenerations; gen++ {
		fitnesses = make([]float64, len(population))
		for i, candidate := range population {
			fitnesses[i] = ga.fitness(first, candidate, last)
			if fitnesses[i] > bestFitness {
				bestFitness = fitnesses[i]
				bestMiddle = cloneMiddle(candidate)
			}
		}

		next := make([][]mission.Waypoint, 0, geneticPopulation)

		// Elitism-1: carry the generation's best candidate forward
		// untouched.
		eliteIdx := argmax(fitnesses)
		elite, err := deep.Copy(population[eliteIdx])
		if err != nil {
			elite = cloneMiddle(population[eliteIdx])
		}
		next = append(next, elite)

		for len(next) < geneticPopulation {
			p1 := ga.tournamentSelect(population, fitnesses)
			p2 := ga.tournamentSelect(population, fitnesses)
			child := ga.orderCrossover(p1, p2)
			ga.swapMutate(child)
			next = append(next, child)
		}

		population = next
	}

	ga.LastStats = computeStats(fitnesses)
	// Fitness is higher-is-better, unlike the cost scores computeStats
	// takes its minimum of.
	ga.LastStats.Best = fitnesses[argmax(fitnesses)]
	if bestFitness <= 0 {
		return route
	}
	return fullRoute(first, bestMiddle, last)
}

// fitness is spec.md §4.8's genetic fitness: 1 / (1 + dist/10000 +
// energy/100 + turns/1000), or 0 for an infinite-cost (no-fly-violating)
// candidate.
func (ga *Genetic) fitness(first mission.Waypoint, middle []mission.Waypoint, last mission.Waypoint) float64 {
	route := fullRoute(first, middle, last)
	if violatesNoFlyZones(route, ga.Constraints) {
		return 0
	}

	dist := distance3D(route)
	energy := 0.0
	for i := 1; i < len(route); i++ {
		energy += ga.Model.BaseEnergy(costmodel.Segment{Start: route[i-1], End: route[i]})
	}
	turns := turnPenalty(route)

	return 1 / (1 + dist/10000 + energy/100 + turns/1000)
}

func (ga *Genetic) shuffledCopy(middle []mission.Waypoint) []mission.Waypoint {
	out := cloneMiddle(middle)
	ga.Rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (ga *Genetic) tournamentSelect(population [][]mission.Waypoint, fitnesses []float64) []mission.Waypoint {
	bestIdx := ga.Rand.IntN(len(population))
	for i := 1; i < tournamentSize; i++ {
		idx := ga.Rand.IntN(len(population))
		if fitnesses[idx] > fitnesses[bestIdx] {
			bestIdx = idx
		}
	}
	return population[bestIdx]
}

// orderCrossover implements OX: copies a random slice from p1, fills the
// rest from p2 in order, skipping duplicates.
func (ga *Genetic) orderCrossover(p1, p2 []mission.Waypoint) []mission.Waypoint {
	n := len(p1)
	child := make([]mission.Waypoint, n)
	used := make(map[int]bool, n)

	a := ga.Rand.IntN(n)
	b := ga.Rand.IntN(n)
	if a > b {
		a, b = b, a
	}

	for i := a; i <= b; i++ {
		child[i] = p1[i]
		used[waypointKey(p1[i])] = true
	}

	idx := (b + 1) % n
	for _, wp := range p2 {
		if used[waypointKey(wp)] {
			continue
		}
		child[idx] = wp
		used[waypointKey(wp)] = true
		idx = (idx + 1) % n
	}

	return child
}

func (ga *Genetic) swapMutate(route []mission.Waypoint) {
	if len(route) < 2 {
		return
	}
	i := ga.Rand.IntN(len(route))
	j := ga.Rand.IntN(len(route))
	route[i], route[j] = route[j], route[i]
}

func waypointKey(w mission.Waypoint) int {
	// Waypoints in a permutation are distinct by coordinates; a cheap
	// hash of lat/lon/alt is enough to detect "already used" without an
	// O(n) equality scan.
	h := 1469598103934665603 // FNV offset basis
	mix := func(v float64) {
		bits := int64(v * 1e7)
		h = (h ^ int(bits)) * 1099511628211
	}
	mix(w.Lat)
	mix(w.Lon)
	mix(w.Alt)
	return h
}

func cloneMiddle(middle []mission.Waypoint) []mission.Waypoint {
	out := make([]mission.Waypoint, len(middle))
	copy(out, middle)
	return out
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
