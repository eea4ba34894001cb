// mission/constraints.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

// Constraints holds the mission-wide limits that apply on top of each
// aircraft's own envelope: no-fly zones, optional global altitude band,
// optional max distance/flight time, and whether every route must return
// to the depot.
type Constraints struct {
	NoFlyZones []*NoFlyZone

	MinAltitude *float64 // optional global floor
	MaxAltitude *float64 // optional global ceiling

	MaxDistance    *float64 // optional, meters
	MaxFlightTime  *float64 // optional, seconds

	RequireReturnToDepot bool
}

// AltitudeOK reports whether alt satisfies both the global band (if set)
// and the given ground-point exemption for the minimum check.
func (c *Constraints) AltitudeOK(alt float64, isGround bool) bool {
	if c == nil {
		return true
	}
	if !isGround && c.MinAltitude != nil && alt < *c.MinAltitude {
		return false
	}
	if c.MaxAltitude != nil && alt > *c.MaxAltitude {
		return false
	}
	return true
}

// InAnyNoFlyZone reports whether (lat, lon, alt) falls within any of the
// mission's no-fly zones.
func (c *Constraints) InAnyNoFlyZone(lat, lon, alt float64) (bool, *NoFlyZone) {
	if c == nil {
		return false, nil
	}
	for _, z := range c.NoFlyZones {
		if z.Contains(lat, lon, alt) {
			return true, z
		}
	}
	return false, nil
}

// SegmentCrossesAnyNoFlyZone reports whether the 2D segment between the two
// 3D points intersects any no-fly zone (2D crossing AND altitude overlap).
func (c *Constraints) SegmentCrossesAnyNoFlyZone(a, b Waypoint) (bool, *NoFlyZone) {
	if c == nil {
		return false, nil
	}
	for _, z := range c.NoFlyZones {
		if z.SegmentIntersects(a.Lat, a.Lon, a.Alt, b.Lat, b.Lon, b.Alt) {
			return true, z
		}
	}
	return false, nil
}
