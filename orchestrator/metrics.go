// orchestrator/metrics.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/validate"
)

// riskRainDivisor, riskWindDivisor, and the three term weights implement
// SPEC_FULL.md §6's resolved risk-score formula: 0.4*rain + 0.35*wind +
// 0.25*vis, clamped to [0,1] and averaged over sampled segment midpoints.
const (
	riskRainDivisor = 5.0
	riskWindDivisor = 15.0
	riskVisKm       = 1.0
	riskRainWeight  = 0.4
	riskWindWeight  = 0.35
	riskVisWeight   = 0.25
)

// computeMetrics summarizes route under model: 3D distance, travel time
// at max speed, total energy (shared with the energy validator), the
// altitude envelope, and the averaged risk score.
func computeMetrics(model *costmodel.Model, route []mission.Waypoint) *mission.RouteMetrics {
	if len(route) == 0 {
		return &mission.RouteMetrics{}
	}

	m := &mission.RouteMetrics{
		WaypointCount: len(route),
		MaxAltitude:   route[0].Alt,
		MinAltitude:   route[0].Alt,
	}

	for _, wp := range route {
		if wp.Alt > m.MaxAltitude {
			m.MaxAltitude = wp.Alt
		}
		if wp.Alt < m.MinAltitude {
			m.MinAltitude = wp.Alt
		}
	}

	risks := make([]float64, 0, len(route))

	for i := 1; i < len(route); i++ {
		seg := costmodel.Segment{Start: route[i-1], End: route[i]}
		m.TotalDistance += geo.Euclidean3D(geo.Position{Lat: seg.Start.Lat, Lon: seg.Start.Lon, Alt: seg.Start.Alt},
			geo.Position{Lat: seg.End.Lat, Lon: seg.End.Lon, Alt: seg.End.Alt})

		if r, ok := segmentRisk(model, seg); ok {
			risks = append(risks, r)
		}
	}

	m.TotalEnergy = validate.TotalEnergy(model, route)

	if model.Aircraft.MaxSpeed > 0 {
		m.TotalTime = m.TotalDistance / model.Aircraft.MaxSpeed
		m.AvgSpeed = model.Aircraft.MaxSpeed
	}

	if len(risks) > 0 {
		m.RiskScore = clamp01(stat.Mean(risks, nil))
	}

	return m
}

// segmentRisk samples weather at the segment midpoint and returns the
// weighted rain/wind/visibility risk term, or ok=false if no sample is
// available (the segment is simply excluded from the average).
func segmentRisk(model *costmodel.Model, seg costmodel.Segment) (float64, bool) {
	if model.Weather == nil {
		return 0, false
	}
	lat := (seg.Start.Lat + seg.End.Lat) / 2
	lon := (seg.Start.Lon + seg.End.Lon) / 2
	alt := (seg.Start.Alt + seg.End.Alt) / 2

	sample, ok := model.Weather.Lookup(lat, lon, alt, model.At)
	if !ok || sample == nil {
		return 0, false
	}

	bearing := geo.Bearing(seg.Start.Lat, seg.Start.Lon, seg.End.Lat, seg.End.Lon)
	ew := sample.EffectiveWind(bearing, alt)

	rainTerm := math.Min(1, sample.Precipitation/riskRainDivisor)
	windTerm := math.Min(1, math.Max(0, ew)/riskWindDivisor)

	visTerm := 0.0
	if sample.Visibility != nil {
		visTerm = math.Max(0, 1-*sample.Visibility/riskVisKm)
	}

	return riskRainWeight*rainTerm + riskWindWeight*windTerm + riskVisWeight*visTerm, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
