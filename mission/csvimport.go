// mission/csvimport.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadWaypointsFromCSV reads a header-led CSV of waypoints ("name",
// "latitude", "longitude", "altitude", "type" columns, any order) and
// returns them as validated Waypoints. A row failing NewWaypoint's
// coordinate checks aborts the load with its 1-based row number, matching
// the original CSV loader's per-row error reporting.
func LoadWaypointsFromCSV(path string) ([]Waypoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	latIdx, ok := col["latitude"]
	if !ok {
		return nil, fmt.Errorf("CSV missing required column %q", "latitude")
	}
	lonIdx, ok := col["longitude"]
	if !ok {
		return nil, fmt.Errorf("CSV missing required column %q", "longitude")
	}
	altIdx, hasAlt := col["altitude"]
	nameIdx, hasName := col["name"]
	typeIdx, hasType := col["type"]

	var waypoints []Waypoint
	for rowNum := 2; ; rowNum++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		lat, err := strconv.ParseFloat(row[latIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing latitude: %w", rowNum, err)
		}
		lon, err := strconv.ParseFloat(row[lonIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing longitude: %w", rowNum, err)
		}
		var alt float64
		if hasAlt && row[altIdx] != "" {
			if alt, err = strconv.ParseFloat(row[altIdx], 64); err != nil {
				return nil, fmt.Errorf("row %d: parsing altitude: %w", rowNum, err)
			}
		}
		var name string
		if hasName {
			name = row[nameIdx]
		}
		typ := Intermediate
		if hasType && row[typeIdx] != "" {
			typ = WaypointType(row[typeIdx])
		}

		wp, err := NewWaypoint(lat, lon, alt, name, typ)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

// SaveWaypointsToCSV writes waypoints in the same column layout
// LoadWaypointsFromCSV expects, mirroring the original loader's
// round-trippable save_waypoints_to_csv.
func SaveWaypointsToCSV(path string, waypoints []Waypoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "latitude", "longitude", "altitude", "type"}); err != nil {
		return err
	}
	for _, wp := range waypoints {
		row := []string{
			wp.Name,
			strconv.FormatFloat(wp.Lat, 'f', -1, 64),
			strconv.FormatFloat(wp.Lon, 'f', -1, 64),
			strconv.FormatFloat(wp.Alt, 'f', -1, 64),
			string(wp.Type),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
