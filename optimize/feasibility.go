// optimize/feasibility.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package optimize

import (
	"math"

	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// violatesNoFlyZones is the shared no-fly penalty rule of spec.md §4.8:
// a candidate ordering is penalized to +Inf if any of its waypoints lies
// inside a no-fly zone, or any consecutive 2D segment crosses a zone
// whose altitude band overlaps the segment.
func violatesNoFlyZones(route []mission.Waypoint, constraints *mission.Constraints) bool {
	if constraints == nil {
		return false
	}
	for _, wp := range route {
		if in, _ := constraints.InAnyNoFlyZone(wp.Lat, wp.Lon, wp.Alt); in {
			return true
		}
	}
	for i := 1; i < len(route); i++ {
		if crosses, _ := constraints.SegmentCrossesAnyNoFlyZone(route[i-1], route[i]); crosses {
			return true
		}
	}
	return false
}

// horizontalDistance sums the 2D haversine distance along a route, used
// by ACO and PSO's cost function (spec.md §4.8: "cost is path
// horizontal-only distance").
func horizontalDistance(route []mission.Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += geo.Haversine(route[i-1].Lat, route[i-1].Lon, route[i].Lat, route[i].Lon)
	}
	return total
}

// distance3D sums the 3D distance along a route, used by the genetic
// fitness function.
func distance3D(route []mission.Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		a := geo.Position{Lat: route[i-1].Lat, Lon: route[i-1].Lon, Alt: route[i-1].Alt}
		b := geo.Position{Lat: route[i].Lat, Lon: route[i].Lon, Alt: route[i].Alt}
		total += geo.Euclidean3D(a, b)
	}
	return total
}

// turnPenalty sums, for every interior vertex, (angle-45)*10 whenever the
// bearing change at that vertex exceeds 45 degrees, per spec.md §4.8's
// genetic fitness function.
func turnPenalty(route []mission.Waypoint) float64 {
	if len(route) < 3 {
		return 0
	}
	penalty := 0.0
	for i := 1; i < len(route)-1; i++ {
		b1 := geo.Bearing(route[i-1].Lat, route[i-1].Lon, route[i].Lat, route[i].Lon)
		b2 := geo.Bearing(route[i].Lat, route[i].Lon, route[i+1].Lat, route[i+1].Lon)
		angle := geo.HeadingDifference(b1, b2)
		if angle > 45 {
			penalty += (angle - 45) * 10
		}
	}
	return penalty
}

// fullRoute reassembles first + middle + last into one sequence, for
// evaluating a candidate middle permutation.
func fullRoute(first mission.Waypoint, middle []mission.Waypoint, last mission.Waypoint) []mission.Waypoint {
	out := make([]mission.Waypoint, 0, len(middle)+2)
	out = append(out, first)
	out = append(out, middle...)
	out = append(out, last)
	return out
}

const infiniteCost = math.MaxFloat64
