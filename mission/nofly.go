// mission/nofly.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"fmt"
	"math"

	"github.com/mmp/earcut-go"

	geolib "github.com/kellydunn/golang-geo"

	"github.com/aerie-sh/aerie/aeerr"
)

// NoFlyZone is a 2D polygon (or, for multipolygon zones, several disjoint
// rings) combined with a vertical altitude band. A point lies in the zone
// iff its 2D projection is inside-or-on any ring AND its altitude falls
// within the band (spec.md §3).
type NoFlyZone struct {
	Name        string
	Rings       [][][2]float64 // each ring: [(lat,lon), ...], closed implicitly
	MinAltitude float64
	MaxAltitude float64

	polygons []*geolib.Polygon // one per ring, built once at construction
}

// NewNoFlyZone validates the polygon and altitude band and constructs the
// golang-geo polygons used for containment queries.
func NewNoFlyZone(name string, rings [][][2]float64, minAlt, maxAlt float64) (*NoFlyZone, error) {
	if len(rings) == 0 {
		return nil, aeerr.ErrEmptyPolygon
	}
	if maxAlt <= minAlt {
		return nil, fmt.Errorf("%w: zone %q", aeerr.ErrInvalidAltitudeBand, name)
	}

	polys := make([]*geolib.Polygon, 0, len(rings))
	for _, ring := range rings {
		if len(ring) < 3 {
			return nil, fmt.Errorf("%w: zone %q", aeerr.ErrEmptyPolygon, name)
		}
		pts := make([]*geolib.Point, len(ring))
		for i, v := range ring {
			pts[i] = geolib.NewPoint(v[0], v[1])
		}
		polys = append(polys, geolib.NewPolygon(pts))
	}

	return &NoFlyZone{
		Name:        name,
		Rings:       rings,
		MinAltitude: minAlt,
		MaxAltitude: maxAlt,
		polygons:    polys,
	}, nil
}

// altitudeOverlaps reports whether the closed interval [lo, hi] overlaps
// the zone's altitude band.
func (z *NoFlyZone) altitudeOverlaps(lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo <= z.MaxAltitude && hi >= z.MinAltitude
}

// Contains2D reports whether (lat, lon) falls inside-or-on any ring of the
// zone, using golang-geo's polygon containment plus our own boundary-
// inclusive check (golang-geo's Contains is not reliably boundary-
// inclusive, and spec.md §8 requires boundary points to count as inside).
func (z *NoFlyZone) Contains2D(lat, lon float64) bool {
	pt := geolib.NewPoint(lat, lon)
	for i, poly := range z.polygons {
		if poly.Contains(pt) {
			return true
		}
		if pointInPolygon([2]float64{lat, lon}, z.Rings[i]) {
			return true
		}
	}
	return false
}

// Contains reports whether the 3D point (lat, lon, alt) lies within the
// zone: 2D containment AND the altitude is within the band.
func (z *NoFlyZone) Contains(lat, lon, alt float64) bool {
	return z.altitudeOverlaps(alt, alt) && z.Contains2D(lat, lon)
}

// Area triangulates each ring with earcut and sums the triangle areas, in
// square degrees. It is a diagnostic figure only (lat/lon degrees aren't
// equal-area), used by the zone checker to flag a suspiciously small or
// degenerate polygon alongside a containment/crossing warning.
func (z *NoFlyZone) Area() float64 {
	total := 0.0
	for _, ring := range z.Rings {
		if len(ring) < 3 {
			continue
		}
		verts := make([]earcut.Vertex, len(ring))
		for i, v := range ring {
			verts[i] = earcut.Vertex{P: v}
		}
		for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{verts}}) {
			total += triangleArea2D(tri.Vertices[0].P, tri.Vertices[1].P, tri.Vertices[2].P)
		}
	}
	return total
}

func triangleArea2D(a, b, c [2]float64) float64 {
	return math.Abs((b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1])) / 2
}

// SegmentIntersects reports whether the 2D segment from (lat1,lon1) to
// (lat2,lon2), flown at altitudes spanning [alt1, alt2], intersects the
// zone: the 2D segment crosses (or touches) a ring of the polygon AND the
// segment's altitude interval overlaps the zone's band.
func (z *NoFlyZone) SegmentIntersects(lat1, lon1, alt1, lat2, lon2, alt2 float64) bool {
	if !z.altitudeOverlaps(alt1, alt2) {
		return false
	}

	p1, p2 := [2]float64{lat1, lon1}, [2]float64{lat2, lon2}
	for _, ring := range z.Rings {
		// An endpoint inside the ring counts as an intersection.
		if pointInPolygon(p1, ring) || pointInPolygon(p2, ring) {
			return true
		}
		for i := 0; i < len(ring); i++ {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if segmentSegmentIntersect(p1, p2, a, b) {
				return true
			}
		}
	}
	return false
}
