// costmodel/costmodel.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package costmodel is C4: the edge cost and edge-feasibility functions
// every planner (A*, Theta*, D* Lite) and the order optimizer build on.
// It borrows an aircraft spec, optional constraints, and a weather source
// rather than importing the planner or the graph, avoiding the cyclic
// back-import the original had between its cost model, weather manager,
// and planner modules.
package costmodel

import (
	"math"
	"time"

	"github.com/aerie-sh/aerie/geo"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/wx"
)

// WeatherSource is the capability the cost model borrows to query weather
// at a segment midpoint; wx.Manager satisfies it.
type WeatherSource interface {
	Lookup(lat, lon, alt float64, at *time.Time) (*wx.Sample, bool)
}

// Segment is a directed edge query: travel from (start) to (end).
type Segment struct {
	Start, End mission.Waypoint
}

func (s Segment) horizontal() float64 {
	return geo.Haversine(s.Start.Lat, s.Start.Lon, s.End.Lat, s.End.Lon)
}

func (s Segment) deltaAlt() float64 { return s.End.Alt - s.Start.Alt }

func (s Segment) midpoint() (lat, lon, alt float64) {
	return (s.Start.Lat + s.End.Lat) / 2, (s.Start.Lon + s.End.Lon) / 2, (s.Start.Alt + s.End.Alt) / 2
}

func (s Segment) bearing() float64 {
	return geo.Bearing(s.Start.Lat, s.Start.Lon, s.End.Lat, s.End.Lon)
}

// Model is the cost/feasibility oracle for one aircraft over one mission's
// constraints, per spec.md §4.4.
type Model struct {
	Aircraft    mission.AircraftSpec
	Constraints *mission.Constraints
	Weather     WeatherSource // may be nil: weather terms are skipped
	At          *time.Time    // query time passed to the weather source
}

// NewModel constructs a cost model oracle. Weather may be nil when no
// weather manager is available; weather terms then contribute nothing and
// the weather safety check in Feasible passes vacuously, matching
// spec.md §5's timeout behaviour ("treated as unknown... passes the
// weather check vacuously").
func NewModel(aircraft mission.AircraftSpec, constraints *mission.Constraints, weather WeatherSource, at *time.Time) *Model {
	return &Model{Aircraft: aircraft, Constraints: constraints, Weather: weather, At: at}
}

// BaseEnergy is power_consumption * max(horiz/max_speed, |Δalt|/climb_rate) / 3600,
// in Wh, per spec.md §4.4.
func (m *Model) BaseEnergy(seg Segment) float64 {
	a := m.Aircraft
	horiz := seg.horizontal()
	timeByHoriz := horiz / a.MaxSpeed
	timeByClimb := math.Abs(seg.deltaAlt()) / a.ClimbRate
	return a.PowerConsumption * math.Max(timeByHoriz, timeByClimb) / 3600
}

func (m *Model) weatherSample(seg Segment) *wx.Sample {
	if m.Weather == nil {
		return nil
	}
	lat, lon, alt := seg.midpoint()
	s, ok := m.Weather.Lookup(lat, lon, alt, m.At)
	if !ok {
		return nil
	}
	return s
}

// effectiveWindAndSpeed returns the segment's effective wind component
// (positive = headwind) and the derived effective max speed per spec.md
// §4.4's wind term. windOK is false when no weather sample is available,
// in which case the caller should treat the wind terms as zero.
func (m *Model) effectiveWindAndSpeed(seg Segment) (ew, effMaxSpeed float64, windOK bool) {
	sample := m.weatherSample(seg)
	if sample == nil {
		return 0, m.Aircraft.MaxSpeed, false
	}
	_, _, avgAlt := seg.midpoint()
	ew = sample.EffectiveWind(seg.bearing(), avgAlt)

	maxSpeed := m.Aircraft.MaxSpeed
	effMaxSpeed = clamp(maxSpeed-0.5*ew, 0.1*maxSpeed, 1.2*maxSpeed)
	return ew, effMaxSpeed, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Cost is the composite edge weight of spec.md §4.4's table: 3D distance
// augmented with climb/descent/turn penalties, wind, precipitation, cloud
// cover, inertia (acceleration schedule), and speed-dependent energy.
func (m *Model) Cost(seg Segment, currentSpeed float64) float64 {
	a := m.Aircraft
	horiz := seg.horizontal()
	dalt := seg.deltaAlt()
	cost := geo.Euclidean3D(geo.Position{Lat: seg.Start.Lat, Lon: seg.Start.Lon, Alt: seg.Start.Alt},
		geo.Position{Lat: seg.End.Lat, Lon: seg.End.Lon, Alt: seg.End.Alt})

	// Climb / descent penalty.
	timeAvail := horiz / (0.7 * a.MaxSpeed)
	if timeAvail > 0 {
		required := math.Abs(dalt) / timeAvail
		if dalt > 0 {
			if required > a.ClimbRate {
				cost += 10000 * (required/a.ClimbRate - 1)
			} else {
				cost += math.Abs(dalt) * 2.0
			}
		} else if dalt < 0 {
			if required > a.DescentRate {
				cost += 10000 * (required/a.DescentRate - 1)
			} else {
				cost += math.Abs(dalt) * 1.2
			}
		}
	}

	// Short-segment turn penalty. The threshold turn_radius·π/2 is a
	// quarter-circle arc length, not the true minimum straight distance
	// between turns; it is used as-is.
	quarterCircle := a.TurnRadius * math.Pi / 2
	if horiz < quarterCircle {
		cost += (quarterCircle - horiz) * 0.1
	}

	// Wind.
	ew, effMaxSpeed, _ := m.effectiveWindAndSpeed(seg)
	windMult := 1 + ew/a.MaxSpeed*0.3
	if ew > 5 {
		cost += ew * 10
	}

	// Precipitation / cloud cover.
	if sample := m.weatherSample(seg); sample != nil {
		cost += sample.Precipitation * 50
		if sample.CloudCover > 80 {
			cost += (sample.CloudCover - 80) * 2
		}
	}

	// Inertia (acceleration schedule converted to distance-equivalent).
	cost += m.inertiaCost(currentSpeed, effMaxSpeed, horiz)

	// Speed-dependent energy.
	base := m.BaseEnergy(seg)
	speedRatio := effMaxSpeed / a.MaxSpeed
	energy := base * (1 + 0.5*(speedRatio*speedRatio-1)) * windMult
	cost += energy / 100 * horiz * 0.1

	return cost
}

// inertiaCost models the accel/cruise/decel time schedule from
// currentSpeed up to effMaxSpeed over horiz meters, converting the total
// time to a distance-equivalent via a 10 m/s conversion factor, per
// spec.md §4.4's "inertia (time)" row.
func (m *Model) inertiaCost(currentSpeed, effMaxSpeed, horiz float64) float64 {
	acc := m.Aircraft.MaxSpeed / 5
	dec := acc

	if effMaxSpeed <= 0 || horiz <= 0 {
		return 0
	}

	accelDist := 0.0
	accelTime := 0.0
	if effMaxSpeed > currentSpeed && acc > 0 {
		accelTime = (effMaxSpeed - currentSpeed) / acc
		accelDist = (currentSpeed+effMaxSpeed)/2*accelTime
	}

	decelDist := 0.0
	decelTime := 0.0
	if dec > 0 {
		decelTime = effMaxSpeed / dec
		decelDist = effMaxSpeed / 2 * decelTime
	}

	if accelDist+decelDist > horiz {
		// Not enough room to reach effMaxSpeed: scale the schedule down
		// proportionally rather than modeling a full triangular profile.
		scale := horiz / (accelDist + decelDist)
		accelTime *= scale
		decelTime *= scale
		accelDist *= scale
		decelDist *= scale
	}

	cruiseDist := horiz - accelDist - decelDist
	cruiseTime := 0.0
	if cruiseDist > 0 && effMaxSpeed > 0 {
		cruiseTime = cruiseDist / effMaxSpeed
	}

	totalTime := accelTime + cruiseTime + decelTime
	return totalTime * 10
}

// Feasible is spec.md §4.4's edge-feasibility gate: the aircraft's
// altitude envelope and the mission's altitude/zone constraints at both
// endpoints (skipping the minimum-altitude checks for ground points),
// weather safety at the midpoint, and 2D segment intersection with any
// no-fly zone whose altitude band overlaps the segment.
func (m *Model) Feasible(seg Segment, isStartGround, isEndGround bool) (bool, string) {
	a := m.Aircraft
	if (!isStartGround && seg.Start.Alt < a.MinAltitude) || seg.Start.Alt > a.MaxAltitude {
		return false, "start point outside aircraft altitude envelope"
	}
	if (!isEndGround && seg.End.Alt < a.MinAltitude) || seg.End.Alt > a.MaxAltitude {
		return false, "end point outside aircraft altitude envelope"
	}
	if !m.Constraints.AltitudeOK(seg.Start.Alt, isStartGround) {
		return false, "start point violates altitude constraints"
	}
	if !m.Constraints.AltitudeOK(seg.End.Alt, isEndGround) {
		return false, "end point violates altitude constraints"
	}
	if in, zone := m.Constraints.InAnyNoFlyZone(seg.Start.Lat, seg.Start.Lon, seg.Start.Alt); in {
		return false, "start point inside no-fly zone " + zone.Name
	}
	if in, zone := m.Constraints.InAnyNoFlyZone(seg.End.Lat, seg.End.Lon, seg.End.Alt); in {
		return false, "end point inside no-fly zone " + zone.Name
	}

	if sample := m.weatherSample(seg); sample != nil {
		if ok, reason := sample.IsSafeForFlight(0, 0, 0); !ok {
			return false, "weather unsafe: " + reason
		}
	}

	if crosses, zone := m.Constraints.SegmentCrossesAnyNoFlyZone(seg.Start, seg.End); crosses {
		return false, "segment crosses no-fly zone " + zone.Name
	}

	return true, ""
}
