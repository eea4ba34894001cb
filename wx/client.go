// wx/client.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import "time"

// Client is the external weather data contract (spec.md §6): callers fetch
// a single point sample, optionally at a specific time. A nil time means
// "now" / "best available". Implementations (METAR scraping, a gridded
// forecast API, a recorded fixture for tests) live outside this package;
// the manager only depends on this interface.
type Client interface {
	Fetch(lat, lon, alt float64, at *time.Time) (*Sample, error)
}

// ClientFunc adapts a plain function to a Client, the way the teacher
// adapts single-method handlers elsewhere (e.g. http.HandlerFunc-style).
type ClientFunc func(lat, lon, alt float64, at *time.Time) (*Sample, error)

func (f ClientFunc) Fetch(lat, lon, alt float64, at *time.Time) (*Sample, error) {
	return f(lat, lon, alt, at)
}
