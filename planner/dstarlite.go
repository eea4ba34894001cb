// planner/dstarlite.go
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

const infinity = math.MaxFloat64

// dKey is the D* Lite priority-queue key: (min(g,rhs)+h+km, min(g,rhs)),
// compared lexicographically.
type dKey struct {
	k1, k2 float64
}

func (a dKey) less(b dKey) bool {
	if a.k1 != b.k1 {
		return a.k1 < b.k1
	}
	return a.k2 < b.k2
}

func (a dKey) geq(b dKey) bool { return !a.less(b) }

type dItem struct {
	id    string
	key   dKey
	index int
}

type dQueue []*dItem

func (q dQueue) Len() int           { return len(q) }
func (q dQueue) Less(i, j int) bool { return q[i].key.less(q[j].key) }
func (q dQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *dQueue) Push(x any) {
	item := x.(*dItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *dQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// DStarLite is spec.md §4.6.3: an incremental search that reuses its g/rhs
// state across replans when edge weights change along the already-found
// path.
type DStarLite struct {
	Graph *navgraph.Graph
	Model *costmodel.Model

	goal  string
	start string
	km    float64

	g   map[string]float64
	rhs map[string]float64

	queue   dQueue
	inQueue map[string]*dItem
}

func NewDStarLite(gr *navgraph.Graph, model *costmodel.Model) *DStarLite {
	return &DStarLite{Graph: gr, Model: model}
}

func (d *DStarLite) gOf(id string) float64 {
	if v, ok := d.g[id]; ok {
		return v
	}
	return infinity
}

func (d *DStarLite) rhsOf(id string) float64 {
	if v, ok := d.rhs[id]; ok {
		return v
	}
	return infinity
}

func (d *DStarLite) heuristic(a, b string) float64 {
	ai, _ := d.Graph.Info(a)
	bi, _ := d.Graph.Info(b)
	return geo.Euclidean3D(ai.Position(), bi.Position())
}

func (d *DStarLite) calcKey(id string) dKey {
	m := math.Min(d.gOf(id), d.rhsOf(id))
	return dKey{k1: m + d.heuristic(d.start, id) + d.km, k2: m}
}

func (d *DStarLite) edgeWeight(u, v string) (float64, bool) {
	return d.Graph.EdgeWeight(u, v, 0, d.Model)
}

func (d *DStarLite) segmentFeasible(u, v string) bool {
	ui, _ := d.Graph.Info(u)
	vi, _ := d.Graph.Info(v)
	seg := costmodel.Segment{
		Start: mission.Waypoint{Lat: ui.Lat, Lon: ui.Lon, Alt: ui.Alt, Type: ui.Type},
		End:   mission.Waypoint{Lat: vi.Lat, Lon: vi.Lon, Alt: vi.Alt, Type: vi.Type},
	}
	ok, _ := d.Model.Feasible(seg, ui.Type.IsGround(), vi.Type.IsGround())
	return ok
}

func (d *DStarLite) insertOrUpdate(id string) {
	key := d.calcKey(id)
	if item, ok := d.inQueue[id]; ok {
		item.key = key
		heap.Fix(&d.queue, item.index)
		return
	}
	item := &dItem{id: id, key: key}
	heap.Push(&d.queue, item)
	d.inQueue[id] = item
}

func (d *DStarLite) remove(id string) {
	if item, ok := d.inQueue[id]; ok {
		heap.Remove(&d.queue, item.index)
		delete(d.inQueue, id)
	}
}

func (d *DStarLite) topKey() (dKey, bool) {
	if d.queue.Len() == 0 {
		return dKey{}, false
	}
	return d.queue[0].key, true
}

// updateVertex recomputes rhs for id (unless it's the goal) from its
// neighbours and re-inserts or removes it from the queue accordingly.
func (d *DStarLite) updateVertex(id string) {
	if id != d.goal {
		best := infinity
		for _, n := range d.Graph.Neighbors(id) {
			if !d.segmentFeasible(id, n) {
				continue
			}
			w, ok := d.edgeWeight(id, n)
			if !ok {
				continue
			}
			if cand := d.gOf(n) + w; cand < best {
				best = cand
			}
		}
		d.rhs[id] = best
	}

	d.remove(id)
	if d.gOf(id) != d.rhsOf(id) {
		d.insertOrUpdate(id)
	}
}

func (d *DStarLite) computeShortestPath() {
	for {
		top, ok := d.topKey()
		startKey := d.calcKey(d.start)
		if !ok || (top.geq(startKey) && d.rhsOf(d.start) == d.gOf(d.start)) {
			break
		}

		item := heap.Pop(&d.queue).(*dItem)
		delete(d.inQueue, item.id)
		u := item.id

		newKey := d.calcKey(u)
		if item.key.less(newKey) {
			d.insertOrUpdate(u)
			continue
		}

		if d.gOf(u) > d.rhsOf(u) {
			d.g[u] = d.rhsOf(u)
			for _, n := range d.Graph.Neighbors(u) {
				d.updateVertex(n)
			}
		} else {
			d.g[u] = infinity
			d.updateVertex(u)
			for _, n := range d.Graph.Neighbors(u) {
				d.updateVertex(n)
			}
		}
	}
}

// FindPath runs D* Lite from start to goal, initializing fresh g/rhs
// state. Subsequent Replan calls reuse this state.
func (d *DStarLite) FindPath(start, goal string) ([]string, bool) {
	if !d.Graph.HasNode(start) || !d.Graph.HasNode(goal) {
		return nil, false
	}

	d.start = start
	d.goal = goal
	d.km = 0
	d.g = make(map[string]float64)
	d.rhs = make(map[string]float64)
	d.queue = nil
	d.inQueue = make(map[string]*dItem)

	d.rhs[goal] = 0
	d.insertOrUpdate(goal)
	d.computeShortestPath()

	if d.gOf(start) == infinity {
		return nil, false
	}
	return d.greedyReconstruct(start, goal), true
}

// greedyReconstruct walks from start to goal, at each step choosing the
// feasible neighbour minimizing g[n] + edge_weight(current, n), per
// spec.md §4.6.3.
func (d *DStarLite) greedyReconstruct(start, goal string) []string {
	path := []string{start}
	visited := map[string]bool{start: true}
	current := start

	for current != goal {
		var best string
		bestCost := infinity
		for _, n := range d.Graph.Neighbors(current) {
			if visited[n] || !d.segmentFeasible(current, n) {
				continue
			}
			w, ok := d.edgeWeight(current, n)
			if !ok {
				continue
			}
			if cand := d.gOf(n) + w; cand < bestCost {
				bestCost, best = cand, n
			}
		}
		if best == "" {
			break
		}
		path = append(path, best)
		visited[best] = true
		current = best
	}
	return path
}

// Replan applies changed edge weights in place and resumes
// compute_shortest_path from the current start, per spec.md §4.6.3. Each
// change is (u, v, newWeight).
func (d *DStarLite) Replan(changedEdges [][3]any) []string {
	prevStart := d.start
	d.km += d.heuristic(prevStart, d.start)

	for _, change := range changedEdges {
		u, uOK := change[0].(string)
		v, vOK := change[1].(string)
		w, wOK := change[2].(float64)
		if !uOK || !vOK || !wOK {
			continue
		}
		d.Graph.SetWeight(u, v, w)
		d.updateVertex(u)
		d.updateVertex(v)
	}

	d.computeShortestPath()
	if d.gOf(d.start) == infinity {
		return nil
	}
	return d.greedyReconstruct(d.start, d.goal)
}

// FindPathVia concatenates single-pair D* Lite paths.
func (d *DStarLite) FindPathVia(start string, via []string) ([]string, bool) {
	return findPathVia(d.FindPath, start, via)
}

// ToWaypoints converts a node-id sequence to waypoints.
func (d *DStarLite) ToWaypoints(sequence []string) []mission.Waypoint {
	return toWaypoints(d.Graph, sequence)
}
