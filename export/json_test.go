// export/json_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"encoding/json"
	"testing"

	"github.com/aerie-sh/aerie/mission"
)

func TestRouteJSONRoundTrips(t *testing.T) {
	route := &mission.Route{
		AircraftName: "uav-1",
		Waypoints: []mission.Waypoint{
			mustWP(t, 49.99, 29.99, 0, mission.Depot),
			mustWP(t, 50.00, 30.00, 50, mission.Target),
		},
		Metrics: &mission.RouteMetrics{TotalDistance: 1234.5, WaypointCount: 2},
	}

	data, err := RouteJSON(route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got mission.Route
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.AircraftName != route.AircraftName || len(got.Waypoints) != len(route.Waypoints) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Metrics == nil || got.Metrics.TotalDistance != route.Metrics.TotalDistance {
		t.Errorf("expected metrics to round trip, got %+v", got.Metrics)
	}
}
