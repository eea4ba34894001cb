// navgraph/builder.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navgraph

import (
	"fmt"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// Build constructs a fully-connected, range-bounded waypoint graph (C6):
// one node per waypoint (ids "wp_0", "wp_1", ...), and an edge between
// every unordered pair whose segment is feasible under model and whose
// horizontal distance doesn't exceed the aircraft's max range.
func Build(waypoints []mission.Waypoint, model *costmodel.Model) *Graph {
	gr := New()

	for i, wp := range waypoints {
		gr.AddNode(nodeID(i), wp.Lat, wp.Lon, wp.Alt, wp.Type)
	}

	for i := 0; i < len(waypoints); i++ {
		for j := i + 1; j < len(waypoints); j++ {
			a, b := waypoints[i], waypoints[j]
			seg := costmodel.Segment{Start: a, End: b}

			horiz := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
			if horiz > model.Aircraft.MaxRange {
				continue
			}

			ok, _ := model.Feasible(seg, a.Type.IsGround(), b.Type.IsGround())
			if !ok {
				continue
			}

			weight := model.Cost(seg, 0)
			gr.AddEdge(nodeID(i), nodeID(j), weight)
		}
	}

	return gr
}

// nodeID is the stable string id for the i-th waypoint in a build list.
func nodeID(i int) string { return fmt.Sprintf("wp_%d", i) }

// NodeID exposes nodeID to callers (planners) that need to address nodes
// by waypoint index.
func NodeID(i int) string { return nodeID(i) }
