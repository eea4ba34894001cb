// wx/sample.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wx is the weather subsystem: C2's immutable per-point Sample with
// its wind power-law profile, and C3's grid-snapped caching manager over an
// external weather client. Adapted from the teacher's wx package, trimmed
// to the single-point-sample model spec.md needs (the teacher's gridded
// atmospheric SOA format and GCS-backed manifest distribution are out of
// scope here — spec.md §1 excludes the weather HTTP client implementation,
// only its data contract matters).
package wx

import (
	"fmt"
	"math"
	"time"
)

// Sample is an immutable weather reading at a point and time (spec.md §3).
type Sample struct {
	Lat, Lon, Alt float64
	Time          time.Time

	WindSpeed10m     float64 // m/s
	WindDirection10m float64 // degrees FROM, 0 = north

	WindSpeed80m     *float64 // optional
	WindDirection80m *float64

	Temperature2m float64 // Celsius
	Precipitation float64 // mm/h
	CloudCover    float64 // percent [0,100]
	Visibility    *float64 // optional, km
}

// FetchError wraps an external weather client failure so the manager can
// distinguish "no sample available" (not an error per spec.md §7) from a
// genuine programming error.
type FetchError struct {
	Lat, Lon, Alt float64
	Cause         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("weather fetch failed at (%.4f,%.4f,%.1f): %v", e.Lat, e.Lon, e.Alt, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// referenceHeight is z_ref in the power-law profile; 10m is the reference
// altitude for WindSpeed10m.
const referenceHeight = 10.0

// powerLawExponent is the 0.15 exponent from spec.md §4.2.
const powerLawExponent = 0.15

// WindAtAltitude returns the wind speed (m/s) at the given altitude using
// the power-law profile v(z) = v_ref * (z/z_ref)^0.15. It uses the 80m
// sample when alt >= 80 and that sample is present; otherwise it uses the
// 10m sample. Below 10m, the result clamps to the 10m reading (the profile
// isn't physically meaningful below its reference height).
func (s Sample) WindAtAltitude(alt float64) float64 {
	vRef, zRef := s.WindSpeed10m, referenceHeight
	if alt >= 80 && s.WindSpeed80m != nil {
		vRef, zRef = *s.WindSpeed80m, 80.0
	}
	if alt < referenceHeight {
		return vRef
	}
	return vRef * math.Pow(alt/zRef, powerLawExponent)
}

// windDirectionAt returns the "from" direction (degrees) to use at the
// given altitude, matching whichever level WindAtAltitude sourced its
// speed from.
func (s Sample) windDirectionAt(alt float64) float64 {
	if alt >= 80 && s.WindDirection80m != nil {
		return *s.WindDirection80m
	}
	return s.WindDirection10m
}

// EffectiveWind projects the wind at the given altitude onto the travel
// heading: positive values are a headwind, negative a tailwind. The
// projection uses cos(min(|heading - from_dir|, 360 - |heading - from_dir|))
// per spec.md §4.2, so it's exactly +v when heading equals from_dir (flying
// straight into the wind, a pure headwind) and exactly -v when they're 180°
// apart (pure tailwind).
func (s Sample) EffectiveWind(headingDeg, alt float64) float64 {
	v := s.WindAtAltitude(alt)
	fromDir := s.windDirectionAt(alt)

	diff := math.Abs(headingDeg - fromDir)
	if diff > 360 {
		diff = math.Mod(diff, 360)
	}
	angle := math.Min(diff, 360-diff)
	return v * math.Cos(angle*math.Pi/180)
}

// IsSafeForFlight applies the three default thresholds from spec.md §4.2.
// Zero-value thresholds fall back to the documented defaults.
func (s Sample) IsSafeForFlight(maxWind, maxPrecip, minVis float64) (bool, string) {
	if maxWind <= 0 {
		maxWind = 15
	}
	if maxPrecip <= 0 {
		maxPrecip = 5
	}
	if minVis <= 0 {
		minVis = 1
	}

	if w := s.WindSpeed10m; w > maxWind {
		return false, fmt.Sprintf("wind speed %.1f m/s exceeds max %.1f m/s", w, maxWind)
	}
	if s.Precipitation > maxPrecip {
		return false, fmt.Sprintf("precipitation %.1f mm/h exceeds max %.1f mm/h", s.Precipitation, maxPrecip)
	}
	if s.Visibility != nil && *s.Visibility < minVis {
		return false, fmt.Sprintf("visibility %.1f km below min %.1f km", *s.Visibility, minVis)
	}
	return true, ""
}
