// navgraph/weight.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navgraph

import (
	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/mission"
)

// EdgeWeight returns the cached build-time weight when currentSpeed is 0;
// otherwise it recomputes through model, per spec.md §4.5. Returns
// (0, false) if no edge exists between u and v.
func (gr *Graph) EdgeWeight(u, v string, currentSpeed float64, model *costmodel.Model) (float64, bool) {
	if currentSpeed == 0 {
		return gr.CachedWeight(u, v)
	}
	uInfo, ok1 := gr.Info(u)
	vInfo, ok2 := gr.Info(v)
	if !ok1 || !ok2 || !gr.HasEdge(u, v) {
		return 0, false
	}
	seg := costmodel.Segment{Start: infoToWaypoint(uInfo), End: infoToWaypoint(vInfo)}
	return model.Cost(seg, currentSpeed), true
}

func infoToWaypoint(n NodeInfo) mission.Waypoint {
	return mission.Waypoint{Lat: n.Lat, Lon: n.Lon, Alt: n.Alt, Name: n.ID, Type: n.Type}
}
