// planner/astar.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/navgraph"
)

// AStar is spec.md §4.6.1: A* with the 3D great-circle distance as an
// admissible heuristic, carrying a per-node estimated arrival speed for
// inertia-aware edge weighting.
type AStar struct {
	Graph *navgraph.Graph
	Model *costmodel.Model
}

func NewAStar(gr *navgraph.Graph, model *costmodel.Model) *AStar {
	return &AStar{Graph: gr, Model: model}
}

type aStarItem struct {
	id       string
	priority float64
	index    int
}

type aStarQueue []*aStarItem

func (q aStarQueue) Len() int            { return len(q) }
func (q aStarQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q aStarQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *aStarQueue) Push(x any) {
	item := x.(*aStarItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *aStarQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func (a *AStar) heuristic(id, goal string) float64 {
	ni, _ := a.Graph.Info(id)
	gi, _ := a.Graph.Info(goal)
	return geo.Euclidean3D(ni.Position(), gi.Position())
}

// FindPath runs A* from start to goal, returning the node-id sequence or
// false if no path exists.
func (a *AStar) FindPath(start, goal string) ([]string, bool) {
	if !a.Graph.HasNode(start) || !a.Graph.HasNode(goal) {
		return nil, false
	}

	gScore := map[string]float64{start: 0}
	nodeSpeed := map[string]float64{start: 0}
	cameFrom := map[string]string{}
	visited := map[string]bool{}

	pq := &aStarQueue{}
	heap.Init(pq)
	heap.Push(pq, &aStarItem{id: start, priority: a.heuristic(start, goal)})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*aStarItem)
		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		if current.id == goal {
			return reconstructPath(cameFrom, start, goal), true
		}

		for _, next := range a.Graph.Neighbors(current.id) {
			if visited[next] {
				continue
			}

			curInfo, _ := a.Graph.Info(current.id)
			nextInfo, _ := a.Graph.Info(next)
			seg := costmodel.Segment{
				Start: mission.Waypoint{Lat: curInfo.Lat, Lon: curInfo.Lon, Alt: curInfo.Alt, Type: curInfo.Type},
				End:   mission.Waypoint{Lat: nextInfo.Lat, Lon: nextInfo.Lon, Alt: nextInfo.Alt, Type: nextInfo.Type},
			}
			if ok, _ := a.Model.Feasible(seg, curInfo.Type.IsGround(), nextInfo.Type.IsGround()); !ok {
				continue
			}

			speed := nodeSpeed[current.id]
			weight, ok := a.Graph.EdgeWeight(current.id, next, speed, a.Model)
			if !ok {
				continue
			}

			tentative := gScore[current.id] + weight
			if existing, has := gScore[next]; has && tentative >= existing {
				continue
			}

			gScore[next] = tentative
			cameFrom[next] = current.id
			nodeSpeed[next] = arrivalSpeed(a.Model, speed, curInfo, nextInfo)
			heap.Push(pq, &aStarItem{id: next, priority: tentative + a.heuristic(next, goal)})
		}
	}

	return nil, false
}

// arrivalSpeed estimates the speed reached after accelerating from
// current over the horizontal distance of the segment, per spec.md
// §4.6.1: min(max_speed, current + acc * horiz/max_speed).
func arrivalSpeed(model *costmodel.Model, current float64, from, to navgraph.NodeInfo) float64 {
	acc := model.Aircraft.MaxSpeed / 5
	horiz := geo.Haversine(from.Lat, from.Lon, to.Lat, to.Lon)
	estimated := current + acc*horiz/model.Aircraft.MaxSpeed
	if estimated > model.Aircraft.MaxSpeed {
		return model.Aircraft.MaxSpeed
	}
	return estimated
}

func reconstructPath(cameFrom map[string]string, start, goal string) []string {
	path := []string{goal}
	current := goal
	for current != start {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append([]string{prev}, path...)
		current = prev
	}
	return path
}

// FindPathVia concatenates single-pair A* paths, de-duplicating the join
// node between legs.
func (a *AStar) FindPathVia(start string, via []string) ([]string, bool) {
	return findPathVia(a.FindPath, start, via)
}

// ToWaypoints converts a node-id sequence into plain waypoints.
func (a *AStar) ToWaypoints(sequence []string) []mission.Waypoint {
	return toWaypoints(a.Graph, sequence)
}
