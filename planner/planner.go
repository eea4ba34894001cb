// planner/planner.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package planner is C7: A*, Theta*, and D* Lite over a navgraph.Graph
// driven by a costmodel.Model. All three share the Planner interface;
// each additionally exposes its own constructor and (for D* Lite) a
// Replan method not part of the shared interface.
package planner

import (
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/navgraph"
)

// Planner is the interface shared by A*, Theta*, and D* Lite (spec.md
// §4.6): find a path between two nodes, or via a sequence of waypoints,
// and convert a node-id sequence to waypoints.
type Planner interface {
	FindPath(start, goal string) ([]string, bool)
	FindPathVia(start string, via []string) ([]string, bool)
	ToWaypoints(sequence []string) []mission.Waypoint
}

// findPathVia concatenates single-pair paths produced by find, de-
// duplicating the join node between consecutive legs, per spec.md §4.6's
// shared find_path_via semantics.
func findPathVia(find func(a, b string) ([]string, bool), start string, via []string) ([]string, bool) {
	if len(via) == 0 {
		return []string{start}, true
	}

	full := []string{}
	current := start
	for _, next := range via {
		leg, ok := find(current, next)
		if !ok {
			return nil, false
		}
		if len(full) > 0 && len(leg) > 0 {
			leg = leg[1:] // drop the join node, already the tail of full
		}
		full = append(full, leg...)
		current = next
	}
	return full, true
}

// toWaypoints is the shared sequence-to-waypoints conversion: every node
// becomes a plain waypoint at the graph's recorded position and type.
func toWaypoints(gr *navgraph.Graph, sequence []string) []mission.Waypoint {
	out := make([]mission.Waypoint, 0, len(sequence))
	for _, id := range sequence {
		info, ok := gr.Info(id)
		if !ok {
			continue
		}
		out = append(out, mission.Waypoint{Lat: info.Lat, Lon: info.Lon, Alt: info.Alt, Type: info.Type})
	}
	return out
}
