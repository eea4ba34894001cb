// validate/validate.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package validate is C12: the zone, altitude, energy, and kinematic
// checkers that together produce a route's ValidationVerdict.
package validate

import (
	"fmt"
	"math"

	"github.com/aerie-sh/aerie/costmodel"
	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
)

// kinematicReferenceSpeed is the 15 m/s reference speed the kinematic
// (Dubins-airplane surrogate) checker uses, per spec.md §4.11 — distinct
// from the aircraft's own max_speed, which the altitude checker's
// climb/descent check uses instead.
const kinematicReferenceSpeed = 15.0

// energyWarningFraction is the 0.9 * battery_capacity threshold for an
// energy warning (vs. a violation at > battery_capacity).
const energyWarningFraction = 0.9

// degenerateZoneArea flags a no-fly zone whose earcut-triangulated area is
// implausibly small for a real polygon (a near-duplicate-vertex ring, most
// likely a data-entry mistake in the mission file).
const degenerateZoneArea = 1e-10

// Validators bundles the model and constraints the checkers need.
type Validators struct {
	Model       *costmodel.Model
	Aircraft    mission.AircraftSpec
	Constraints *mission.Constraints
}

func New(model *costmodel.Model, aircraft mission.AircraftSpec, constraints *mission.Constraints) *Validators {
	return &Validators{Model: model, Aircraft: aircraft, Constraints: constraints}
}

// Validate runs all four checkers over route and returns the aggregated
// verdict, per spec.md §4.11.
func (v *Validators) Validate(route []mission.Waypoint) *mission.ValidationVerdict {
	verdict := mission.NewValidationVerdict()

	v.checkZones(route, verdict)
	v.checkAltitude(route, verdict)
	v.checkEnergy(route, verdict)
	v.checkKinematic(route, verdict)

	return verdict
}

func (v *Validators) checkZones(route []mission.Waypoint, verdict *mission.ValidationVerdict) {
	if v.Constraints == nil {
		return
	}
	for i, wp := range route {
		if in, zone := v.Constraints.InAnyNoFlyZone(wp.Lat, wp.Lon, wp.Alt); in {
			verdict.AddViolation(mission.FindingZone, fmt.Sprintf("waypoint %d is inside no-fly zone %q", i, zone.Name), i)
			warnIfDegenerateZone(zone, verdict, i)
		}
	}
	for i := 1; i < len(route); i++ {
		if crosses, zone := v.Constraints.SegmentCrossesAnyNoFlyZone(route[i-1], route[i]); crosses {
			verdict.AddViolation(mission.FindingZone, fmt.Sprintf("segment %d->%d crosses no-fly zone %q", i-1, i, zone.Name), i)
			warnIfDegenerateZone(zone, verdict, i)
		}
	}
}

// warnIfDegenerateZone adds a diagnostic warning when the zone's
// triangulated area is suspiciously small, since that usually means the
// polygon's rings are malformed rather than genuinely tiny.
func warnIfDegenerateZone(zone *mission.NoFlyZone, verdict *mission.ValidationVerdict, waypointIdx int) {
	if area := zone.Area(); area < degenerateZoneArea {
		verdict.AddWarning(mission.FindingZone,
			fmt.Sprintf("no-fly zone %q has a near-zero triangulated area (%.2e deg^2); check its ring vertices", zone.Name, area),
			waypointIdx)
	}
}

func (v *Validators) checkAltitude(route []mission.Waypoint, verdict *mission.ValidationVerdict) {
	for i, wp := range route {
		skipMin := wp.Type.IsGround() || wp.Type.IsLandingPhase()
		if !skipMin && wp.Alt < v.Aircraft.MinAltitude {
			verdict.AddViolation(mission.FindingAltitude, fmt.Sprintf("waypoint %d altitude %.1f below aircraft minimum %.1f", i, wp.Alt, v.Aircraft.MinAltitude), i)
		}
		if wp.Alt > v.Aircraft.MaxAltitude {
			verdict.AddViolation(mission.FindingAltitude, fmt.Sprintf("waypoint %d altitude %.1f above aircraft maximum %.1f", i, wp.Alt, v.Aircraft.MaxAltitude), i)
		}
		if !v.Constraints.AltitudeOK(wp.Alt, skipMin) {
			verdict.AddViolation(mission.FindingAltitude, fmt.Sprintf("waypoint %d violates mission altitude constraints", i), i)
		}
	}

	for i := 1; i < len(route); i++ {
		a, b := route[i-1], route[i]
		horiz := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
		if horiz <= 0 {
			continue
		}
		dalt := b.Alt - a.Alt
		required := math.Abs(dalt) / (horiz / v.Aircraft.MaxSpeed)

		landingSegment := a.Type.IsLandingPhase() || b.Type.IsLandingPhase()

		if dalt > 0 && required > v.Aircraft.ClimbRate {
			verdict.AddViolation(mission.FindingAltitude, fmt.Sprintf("segment %d->%d requires climb rate %.2f m/s, exceeds %.2f", i-1, i, required, v.Aircraft.ClimbRate), i)
		}
		if dalt < 0 && !landingSegment && required > v.Aircraft.DescentRate {
			verdict.AddViolation(mission.FindingAltitude, fmt.Sprintf("segment %d->%d requires descent rate %.2f m/s, exceeds %.2f", i-1, i, required, v.Aircraft.DescentRate), i)
		}
	}
}

func (v *Validators) checkEnergy(route []mission.Waypoint, verdict *mission.ValidationVerdict) {
	total := TotalEnergy(v.Model, route)

	if total > v.Aircraft.BatteryCapacity {
		verdict.AddViolation(mission.FindingEnergy, fmt.Sprintf("total energy %.2f Wh exceeds battery capacity %.2f Wh", total, v.Aircraft.BatteryCapacity), -1)
	} else if total > energyWarningFraction*v.Aircraft.BatteryCapacity {
		verdict.AddWarning(mission.FindingEnergy, fmt.Sprintf("total energy %.2f Wh exceeds %.0f%% of battery capacity", total, energyWarningFraction*100), -1)
	}
}

// TotalEnergy sums base energy (spec.md §4.4) over every segment of
// route; the energy checker and the orchestrator's metrics both call
// this rather than duplicating the summation.
func TotalEnergy(model *costmodel.Model, route []mission.Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += model.BaseEnergy(costmodel.Segment{Start: route[i-1], End: route[i]})
	}
	return total
}

// checkKinematic runs the Dubins-airplane surrogate check against every
// consecutive pair in route, with no ground or landing-phase exemption:
// spec.md §4.11 defines it as running "for each consecutive pair" with no
// skip language, and the minimum-altitude exemption in checkAltitude above
// is unrelated to this rate check.
func (v *Validators) checkKinematic(route []mission.Waypoint, verdict *mission.ValidationVerdict) {
	for i := 1; i < len(route); i++ {
		a, b := route[i-1], route[i]

		horiz := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
		if horiz <= 0 {
			continue
		}
		dalt := b.Alt - a.Alt
		required := math.Abs(dalt) / (horiz / kinematicReferenceSpeed)

		if dalt > 0 && required > v.Aircraft.ClimbRate {
			verdict.AddViolation(mission.FindingKinematic, fmt.Sprintf("segment %d->%d requires climb rate %.2f m/s at reference speed, exceeds %.2f", i-1, i, required, v.Aircraft.ClimbRate), i)
		}
		if dalt < 0 && required > v.Aircraft.DescentRate {
			verdict.AddViolation(mission.FindingKinematic, fmt.Sprintf("segment %d->%d requires descent rate %.2f m/s at reference speed, exceeds %.2f", i-1, i, required, v.Aircraft.DescentRate), i)
		}
	}
}
