// export/json.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"encoding/json"

	"github.com/aerie-sh/aerie/mission"
)

// RouteJSON pretty-prints route as UTF-8 JSON, per spec.md §6; the
// importer side of the round trip lives in mission/json.go.
func RouteJSON(route *mission.Route) ([]byte, error) {
	return json.MarshalIndent(route, "", "  ")
}

// MissionJSON pretty-prints the full mission, including any routes the
// orchestrator has already attached.
func MissionJSON(m *mission.Mission) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
