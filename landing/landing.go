// landing/landing.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package landing is C11: mutates the tail of a waypoint sequence to
// encode a vertical or gradual landing approach, run after pathfinding
// produces the raw waypoint list.
package landing

import (
	"github.com/brunoga/deep"

	"github.com/aerie-sh/aerie/mission"
)

// Synthesize rewrites the tail of route to encode the landing mode, per
// spec.md §4.10. finishType selects which segment the landing applies to:
// for depot/custom finishes, the segment runs from the last target to the
// route's final waypoint; for last_target, it runs between the second-to-
// last and last target instead. minAltitude is the aircraft's minimum
// flight altitude.
func Synthesize(route []mission.Waypoint, mode mission.LandingMode, finishType mission.FinishPointType, minAltitude float64) []mission.Waypoint {
	targetIndices := targetIndicesOf(route)
	if len(targetIndices) == 0 {
		return route
	}

	var startIdx, endIdx int
	if finishType == mission.FinishLastTarget {
		if len(targetIndices) < 2 {
			return route
		}
		startIdx = targetIndices[len(targetIndices)-2]
		endIdx = targetIndices[len(targetIndices)-1]
	} else {
		startIdx = targetIndices[len(targetIndices)-1]
		endIdx = len(route) - 1
	}
	if endIdx <= startIdx {
		return route
	}

	out, err := deep.Copy(route)
	if err != nil {
		out = append([]mission.Waypoint(nil), route...)
	}

	lastTarget := out[startIdx]

	switch mode {
	case mission.LandingVertical:
		return synthesizeVertical(out, startIdx, endIdx, lastTarget, minAltitude, finishType)
	default: // LandingGradual
		return synthesizeGradual(out, startIdx, endIdx, finishType)
	}
}

func targetIndicesOf(route []mission.Waypoint) []int {
	var indices []int
	for i, wp := range route {
		if wp.Type == mission.Target {
			indices = append(indices, i)
		}
	}
	return indices
}

func finalType(finishType mission.FinishPointType) mission.WaypointType {
	if finishType == mission.FinishDepot {
		return mission.Depot
	}
	return mission.Finish
}

// synthesizeVertical sets every intermediate waypoint between startIdx
// and endIdx to max(min_altitude, last_target.altitude), tags them
// landing_segment, inserts one landing_approach waypoint directly above
// the finish at min_altitude, and finalizes the tail waypoint to ground
// altitude with its resolved type.
func synthesizeVertical(route []mission.Waypoint, startIdx, endIdx int, lastTarget mission.Waypoint,
	minAltitude float64, finishType mission.FinishPointType) []mission.Waypoint {

	landingAlt := minAltitude
	if lastTarget.Alt > landingAlt {
		landingAlt = lastTarget.Alt
	}

	for i := startIdx + 1; i < endIdx; i++ {
		route[i] = route[i].WithAltitude(landingAlt).WithType(mission.LandingSegment)
	}

	final := route[endIdx]
	approach := mission.Waypoint{Lat: final.Lat, Lon: final.Lon, Alt: minAltitude, Type: mission.LandingApproach}
	ground := final.WithAltitude(0).WithType(finalType(finishType))

	out := make([]mission.Waypoint, 0, len(route)+1)
	out = append(out, route[:endIdx]...)
	out = append(out, approach, ground)
	if endIdx+1 < len(route) {
		out = append(out, route[endIdx+1:]...)
	}
	return out
}

// synthesizeGradual tags every intermediate waypoint between startIdx and
// endIdx landing_segment without altering altitude, and finalizes the
// tail waypoint's type, per spec.md §4.10.
func synthesizeGradual(route []mission.Waypoint, startIdx, endIdx int, finishType mission.FinishPointType) []mission.Waypoint {
	for i := startIdx + 1; i < endIdx; i++ {
		route[i] = route[i].WithType(mission.LandingSegment)
	}
	route[endIdx] = route[endIdx].WithType(finalType(finishType))
	return route
}
