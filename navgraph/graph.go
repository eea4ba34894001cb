// navgraph/graph.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package navgraph is C5 (the navigation graph) and C6 (the waypoint-graph
// builder). The graph structure itself is a gonum weighted undirected
// graph; node metadata (position, waypoint type, stable string id) lives
// in a side table keyed by the gonum int64 node id, since graph.Node only
// guarantees an ID() accessor. Planners (planner/) layer their own
// traversal state (node_speed, g/rhs, priority queues) on top rather than
// using gonum's built-in search, because none of A*/Theta*/D* Lite's
// feasibility re-checks or inertia-aware weighting fit gonum's generic
// path package.
package navgraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// NodeInfo is the metadata attached to a nav node: position, waypoint type,
// and its stable string id (spec.md §3's "Nav node").
type NodeInfo struct {
	ID       string
	Lat, Lon, Alt float64
	Type     mission.WaypointType
}

func (n NodeInfo) Position() geo.Position { return geo.Position{Lat: n.Lat, Lon: n.Lon, Alt: n.Alt} }

// Graph is the undirected weighted graph of waypoint nodes (C5). Edge
// weights are cached at build time with current_speed = 0, per spec.md
// §4.5; EdgeWeight recomputes through a cost model when a live
// current_speed is supplied.
type Graph struct {
	g       *simple.WeightedUndirectedGraph
	byID    map[string]int64
	infoOf  map[int64]NodeInfo
	nextID  int64
}

// New constructs an empty nav graph.
func New() *Graph {
	return &Graph{
		g:      simple.NewWeightedUndirectedGraph(0, 0),
		byID:   make(map[string]int64),
		infoOf: make(map[int64]NodeInfo),
	}
}

// AddNode records a node (lon, lat, alt, waypoint_type) under a stable
// string id, per spec.md §4.5. Re-adding an existing id overwrites its
// metadata but keeps the same internal gonum id.
func (gr *Graph) AddNode(id string, lat, lon, alt float64, wt mission.WaypointType) {
	gid, exists := gr.byID[id]
	if !exists {
		gid = gr.nextID
		gr.nextID++
		gr.byID[id] = gid
		gr.g.AddNode(simple.Node(gid))
	}
	gr.infoOf[gid] = NodeInfo{ID: id, Lat: lat, Lon: lon, Alt: alt, Type: wt}
}

// AddEdge stores an undirected edge with its cached (current_speed = 0)
// weight.
func (gr *Graph) AddEdge(u, v string, weight float64) error {
	uid, ok := gr.byID[u]
	if !ok {
		return fmt.Errorf("navgraph: unknown node %q", u)
	}
	vid, ok := gr.byID[v]
	if !ok {
		return fmt.Errorf("navgraph: unknown node %q", v)
	}
	gr.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: weight})
	return nil
}

// Info returns the metadata for a node id.
func (gr *Graph) Info(id string) (NodeInfo, bool) {
	gid, ok := gr.byID[id]
	if !ok {
		return NodeInfo{}, false
	}
	info, ok := gr.infoOf[gid]
	return info, ok
}

// HasNode reports whether id is present in the graph.
func (gr *Graph) HasNode(id string) bool {
	_, ok := gr.byID[id]
	return ok
}

// CachedWeight returns the build-time (current_speed = 0) weight of the
// edge between u and v, if one exists.
func (gr *Graph) CachedWeight(u, v string) (float64, bool) {
	uid, ok1 := gr.byID[u]
	vid, ok2 := gr.byID[v]
	if !ok1 || !ok2 {
		return 0, false
	}
	return gr.g.Weight(uid, vid)
}

// HasEdge reports whether an edge exists between u and v.
func (gr *Graph) HasEdge(u, v string) bool {
	uid, ok1 := gr.byID[u]
	vid, ok2 := gr.byID[v]
	if !ok1 || !ok2 {
		return false
	}
	return gr.g.HasEdgeBetween(uid, vid)
}

// Neighbors returns the string ids of every node adjacent to id.
func (gr *Graph) Neighbors(id string) []string {
	gid, ok := gr.byID[id]
	if !ok {
		return nil
	}
	var out []string
	nodes := gr.g.From(gid)
	for nodes.Next() {
		n := nodes.Node()
		if info, ok := gr.infoOf[n.ID()]; ok {
			out = append(out, info.ID)
		}
	}
	return out
}

// Nodes returns the string ids of every node in the graph.
func (gr *Graph) Nodes() []string {
	out := make([]string, 0, len(gr.infoOf))
	nodes := gr.g.Nodes()
	for nodes.Next() {
		n := nodes.Node()
		out = append(out, gr.infoOf[n.ID()].ID)
	}
	return out
}

// SetWeight overwrites the cached weight of an existing edge, used by D*
// Lite's replan to apply changed_edges in place.
func (gr *Graph) SetWeight(u, v string, weight float64) error {
	uid, ok := gr.byID[u]
	if !ok {
		return fmt.Errorf("navgraph: unknown node %q", u)
	}
	vid, ok := gr.byID[v]
	if !ok {
		return fmt.Errorf("navgraph: unknown node %q", v)
	}
	if !gr.g.HasEdgeBetween(uid, vid) {
		return fmt.Errorf("navgraph: no edge between %q and %q", u, v)
	}
	gr.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: weight})
	return nil
}

var _ graph.Weighted = (*simple.WeightedUndirectedGraph)(nil)
