// optimize/stats.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RefinementStats summarizes one metaheuristic's final population/swarm/
// colony scores, so the orchestrator can log how converged a refinement
// run was without every caller re-deriving mean/stddev by hand.
type RefinementStats struct {
	Mean   float64
	StdDev float64
	Best   float64
	N      int
}

// computeStats filters out infinite (no-fly-violating) scores before
// calling into gonum/stat, since stat.MeanStdDev over an Inf poisons the
// whole statistic.
func computeStats(scores []float64) RefinementStats {
	finite := make([]float64, 0, len(scores))
	best := math.Inf(1)
	for _, s := range scores {
		if math.IsInf(s, 0) {
			continue
		}
		finite = append(finite, s)
		if s < best {
			best = s
		}
	}
	if len(finite) == 0 {
		return RefinementStats{Best: best, N: 0}
	}
	mean, stddev := stat.MeanStdDev(finite, nil)
	return RefinementStats{Mean: mean, StdDev: stddev, Best: best, N: len(finite)}
}
