// mission/geometry.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import "math"

// segmentSegmentIntersect reports whether 2D segments (p1,p2) and (p3,p4)
// intersect. Adapted from the teacher's pkg/math/geom.go LineLineIntersect
// + SegmentSegmentIntersect, in float64 since lat/lon precision matters
// more here than in screen-space rendering.
func segmentSegmentIntersect(p1, p2, p3, p4 [2]float64) bool {
	d12 := [2]float64{p1[0] - p2[0], p1[1] - p2[1]}
	d34 := [2]float64{p3[0] - p4[0], p3[1] - p4[1]}
	denom := d12[0]*d34[1] - d12[1]*d34[0]
	if math.Abs(denom) < 1e-12 {
		return false // parallel (or near enough not to matter at this scale)
	}

	numx := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[0]-p4[0]) - (p1[0]-p2[0])*(p3[0]*p4[1]-p3[1]*p4[0])
	numy := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[1]-p4[1]) - (p1[1]-p2[1])*(p3[0]*p4[1]-p3[1]*p4[0])
	x, y := numx/denom, numy/denom

	inBox := func(a, b, p [2]float64) bool {
		minX, maxX := math.Min(a[0], b[0]), math.Max(a[0], b[0])
		minY, maxY := math.Min(a[1], b[1]), math.Max(a[1], b[1])
		const eps = 1e-9
		return p[0] >= minX-eps && p[0] <= maxX+eps && p[1] >= minY-eps && p[1] <= maxY+eps
	}

	pt := [2]float64{x, y}
	return inBox(p1, p2, pt) && inBox(p3, p4, pt)
}

// pointInPolygon is the standard even-odd ray-casting test. A point exactly
// on the boundary is treated as inside, per spec.md §8's boundary-behaviour
// invariant ("the contains predicate is inclusive of the boundary") — we
// check for on-segment separately since the ray-casting test alone is
// ambiguous on edges.
func pointInPolygon(p [2]float64, poly [][2]float64) bool {
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if onSegment(a, b, p) {
			return true
		}
	}

	inside := false
	for i := 0; i < len(poly); i++ {
		p0, p1 := poly[i], poly[(i+1)%len(poly)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p [2]float64) bool {
	const eps = 1e-9
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > eps {
		return false
	}
	minX, maxX := math.Min(a[0], b[0]), math.Max(a[0], b[0])
	minY, maxY := math.Min(a[1], b[1]), math.Max(a[1], b[1])
	return p[0] >= minX-eps && p[0] <= maxX+eps && p[1] >= minY-eps && p[1] <= maxY+eps
}
