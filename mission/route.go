// mission/route.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

// RouteMetrics summarizes a planned route: distance, time, energy, altitude
// envelope, and an aggregated risk score (spec.md §3, formula resolved in
// SPEC_FULL.md §6.2).
type RouteMetrics struct {
	TotalDistance float64 // meters
	TotalTime     float64 // seconds
	TotalEnergy   float64 // Wh
	MaxAltitude   float64
	MinAltitude   float64
	WaypointCount int
	RiskScore     float64 // [0,1]
	AvgSpeed      float64 // m/s
}

// Violation and Warning are the tagged variants the validators (validate/)
// attach to a route's verdict. Kind distinguishes which checker raised it;
// WaypointIndex is -1 when the finding isn't tied to a specific waypoint
// (e.g. "route exceeds aircraft battery capacity").
type FindingKind string

const (
	FindingAltitude  FindingKind = "altitude"
	FindingZone      FindingKind = "zone"
	FindingEnergy    FindingKind = "energy"
	FindingKinematic FindingKind = "kinematic"
)

type Finding struct {
	Kind          FindingKind
	Message       string
	WaypointIndex int // -1 if not applicable
}

// ValidationVerdict replaces the duck-typed validation_result from the
// original source (spec.md §9): a single tagged record instead of a
// sometimes-object-sometimes-dict value. A non-empty Violations list forces
// IsValid = false; Warnings never do.
type ValidationVerdict struct {
	IsValid    bool
	Violations []Finding
	Warnings   []Finding
}

// AddViolation appends a violation and marks the verdict invalid.
func (v *ValidationVerdict) AddViolation(kind FindingKind, msg string, waypointIdx int) {
	v.Violations = append(v.Violations, Finding{Kind: kind, Message: msg, WaypointIndex: waypointIdx})
	v.IsValid = false
}

// AddWarning appends a warning without affecting validity.
func (v *ValidationVerdict) AddWarning(kind FindingKind, msg string, waypointIdx int) {
	v.Warnings = append(v.Warnings, Finding{Kind: kind, Message: msg, WaypointIndex: waypointIdx})
}

// NewValidationVerdict returns a verdict that starts out valid; validators
// flip IsValid to false only by calling AddViolation.
func NewValidationVerdict() *ValidationVerdict {
	return &ValidationVerdict{IsValid: true}
}

// Route is an ordered list of waypoints flown by one aircraft, together
// with optional computed metrics and a validation verdict.
type Route struct {
	AircraftName string
	Waypoints    []Waypoint
	Metrics      *RouteMetrics
	Verdict      *ValidationVerdict
}
