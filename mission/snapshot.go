// mission/snapshot.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"compress/flate"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// routeSnapshot is the on-disk binary form of a plan_mission result: the
// per-aircraft routes plus the mission name they were planned against, so
// a stale snapshot (planned against a different mission) is easy to
// detect at load time.
type routeSnapshot struct {
	MissionName string
	Routes      map[string]*Route
}

// SaveRouteSnapshot msgpack-encodes routes (deflate-compressed) to path,
// the way util/cache.go's CacheStoreObject caches decoded map/terrain
// data: a VRP warm start or a CLI re-run can skip planning entirely if a
// snapshot for the same mission is already on disk.
func SaveRouteSnapshot(path, missionName string, routes map[string]*Route) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fw).Encode(routeSnapshot{MissionName: missionName, Routes: routes}); err != nil {
		return err
	}
	return fw.Close()
}

// LoadRouteSnapshot decodes a snapshot written by SaveRouteSnapshot. ok is
// false (with no error) when the file exists but was snapshotted against
// a different mission name, so callers fall back to planning from
// scratch instead of serving a mismatched cache hit.
func LoadRouteSnapshot(path, missionName string) (routes map[string]*Route, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	var snap routeSnapshot
	if err := msgpack.NewDecoder(fr).Decode(&snap); err != nil {
		return nil, false, err
	}
	if snap.MissionName != missionName {
		return nil, false, nil
	}
	return snap.Routes, true, nil
}
