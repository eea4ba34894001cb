// planner/thetastar.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"
	"math"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/navgraph"
)

// losMaxHorizontalMeters bounds the line-of-sight shortcut attempt, per
// spec.md §4.6.2 and the glossary's "line of sight (Theta*)" entry.
const losMaxHorizontalMeters = 5000.0

// intermediateSegmentThreshold is the length above which ToWaypoints
// inserts smooth-interpolated intermediate waypoints.
const intermediateSegmentThreshold = 300.0

// intermediateSpacing and intermediateCap bound how many intermediate
// points get inserted per segment.
const (
	intermediateSpacing = 250.0
	intermediateCap     = 5
)

// ThetaStar is spec.md §4.6.2: any-angle search sharing A*'s frontier but
// attempting a line-of-sight shortcut from the current node's parent to
// each neighbour before falling back to the graph edge.
type ThetaStar struct {
	Graph *navgraph.Graph
	Model *costmodel.Model
}

func NewThetaStar(gr *navgraph.Graph, model *costmodel.Model) *ThetaStar {
	return &ThetaStar{Graph: gr, Model: model}
}

func (th *ThetaStar) heuristic(id, goal string) float64 {
	ni, _ := th.Graph.Info(id)
	gi, _ := th.Graph.Info(goal)
	return geo.Euclidean3D(ni.Position(), gi.Position())
}

// lineOfSight reports whether a direct hop from a to b is admissible: the
// horizontal distance is within the 5km bound and the segment is
// feasible under the cost model.
func (th *ThetaStar) lineOfSight(a, b navgraph.NodeInfo) bool {
	horiz := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
	if horiz > losMaxHorizontalMeters {
		return false
	}
	seg := costmodel.Segment{
		Start: mission.Waypoint{Lat: a.Lat, Lon: a.Lon, Alt: a.Alt, Type: a.Type},
		End:   mission.Waypoint{Lat: b.Lat, Lon: b.Lon, Alt: b.Alt, Type: b.Type},
	}
	ok, _ := th.Model.Feasible(seg, a.Type.IsGround(), b.Type.IsGround())
	return ok
}

func (th *ThetaStar) directCost(a, b navgraph.NodeInfo, currentSpeed float64) float64 {
	seg := costmodel.Segment{
		Start: mission.Waypoint{Lat: a.Lat, Lon: a.Lon, Alt: a.Alt, Type: a.Type},
		End:   mission.Waypoint{Lat: b.Lat, Lon: b.Lon, Alt: b.Alt, Type: b.Type},
	}
	return th.Model.Cost(seg, currentSpeed)
}

// FindPath runs Theta* from start to goal.
func (th *ThetaStar) FindPath(start, goal string) ([]string, bool) {
	if !th.Graph.HasNode(start) || !th.Graph.HasNode(goal) {
		return nil, false
	}

	gScore := map[string]float64{start: 0}
	nodeSpeed := map[string]float64{start: 0}
	cameFrom := map[string]string{}
	visited := map[string]bool{}

	pq := &aStarQueue{}
	heap.Init(pq)
	heap.Push(pq, &aStarItem{id: start, priority: th.heuristic(start, goal)})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*aStarItem)
		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		if current.id == goal {
			return reconstructPath(cameFrom, start, goal), true
		}

		curInfo, _ := th.Graph.Info(current.id)
		parentID, hasParent := cameFrom[current.id]
		var parentInfo navgraph.NodeInfo
		if hasParent {
			parentInfo, _ = th.Graph.Info(parentID)
		}

		for _, next := range th.Graph.Neighbors(current.id) {
			if visited[next] {
				continue
			}
			nextInfo, _ := th.Graph.Info(next)

			// Attempt the line-of-sight shortcut from the current
			// parent to the neighbour first.
			if hasParent && th.lineOfSight(parentInfo, nextInfo) {
				speed := nodeSpeed[parentID]
				tentative := gScore[parentID] + th.directCost(parentInfo, nextInfo, speed)
				if existing, has := gScore[next]; !has || tentative < existing {
					gScore[next] = tentative
					cameFrom[next] = parentID
					nodeSpeed[next] = arrivalSpeed(th.Model, speed, parentInfo, nextInfo)
					heap.Push(pq, &aStarItem{id: next, priority: tentative + th.heuristic(next, goal)})
					continue
				}
			}

			// Fall back to the graph edge, exactly like A*.
			seg := costmodel.Segment{
				Start: mission.Waypoint{Lat: curInfo.Lat, Lon: curInfo.Lon, Alt: curInfo.Alt, Type: curInfo.Type},
				End:   mission.Waypoint{Lat: nextInfo.Lat, Lon: nextInfo.Lon, Alt: nextInfo.Alt, Type: nextInfo.Type},
			}
			if ok, _ := th.Model.Feasible(seg, curInfo.Type.IsGround(), nextInfo.Type.IsGround()); !ok {
				continue
			}
			speed := nodeSpeed[current.id]
			weight, ok := th.Graph.EdgeWeight(current.id, next, speed, th.Model)
			if !ok {
				continue
			}
			tentative := gScore[current.id] + weight
			if existing, has := gScore[next]; has && tentative >= existing {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.id
			nodeSpeed[next] = arrivalSpeed(th.Model, speed, curInfo, nextInfo)
			heap.Push(pq, &aStarItem{id: next, priority: tentative + th.heuristic(next, goal)})
		}
	}

	return nil, false
}

// FindPathVia concatenates single-pair Theta* paths.
func (th *ThetaStar) FindPathVia(start string, via []string) ([]string, bool) {
	return findPathVia(th.FindPath, start, via)
}

// ToWaypoints converts a node-id sequence to waypoints, inserting
// smoothstep-interpolated intermediate waypoints on segments longer than
// 300m, per spec.md §4.6.2.
func (th *ThetaStar) ToWaypoints(sequence []string) []mission.Waypoint {
	base := toWaypoints(th.Graph, sequence)
	if len(base) < 2 {
		return base
	}

	out := make([]mission.Waypoint, 0, len(base)*2)
	out = append(out, base[0])
	for i := 1; i < len(base); i++ {
		prev, cur := base[i-1], base[i]
		out = append(out, interpolateSegment(prev, cur, th.Model.Aircraft.MinAltitude)...)
		out = append(out, cur)
	}
	return out
}

// interpolateSegment returns the intermediate waypoints (excluding both
// endpoints) for a segment longer than the threshold, spaced roughly
// every intermediateSpacing meters along a smoothstep curve, capped at
// intermediateCap points.
func interpolateSegment(a, b mission.Waypoint, minAltitude float64) []mission.Waypoint {
	horiz := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
	if horiz <= intermediateSegmentThreshold {
		return nil
	}

	n := int(math.Ceil(horiz / intermediateSpacing))
	if n > intermediateCap {
		n = intermediateCap
	}
	if n < 1 {
		return nil
	}

	clampAlt := !a.Type.IsGround() && !b.Type.IsGround()

	points := make([]mission.Waypoint, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		s := smoothstep(t)

		lat := a.Lat + (b.Lat-a.Lat)*s
		lon := a.Lon + (b.Lon-a.Lon)*s
		alt := a.Alt + (b.Alt-a.Alt)*s
		if clampAlt && alt < minAltitude {
			alt = minAltitude
		}
		points = append(points, mission.Waypoint{Lat: lat, Lon: lon, Alt: alt, Type: mission.Intermediate})
	}
	return points
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
