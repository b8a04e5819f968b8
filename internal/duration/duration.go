// Package duration computes how long a planet stays in its current sign.
//
// Fast planets (Sun through Mars) are handled with sign-passage arithmetic
// from their daily motion. Slow planets (Jupiter through Pluto) are looked
// up in an injected ephemeris.Table. Every result carries a non-negative
// remaining time; anything that cannot be answered is reported as an error.
package duration

import (
	"fmt"
	"math"
	"time"

	"github.com/papapumpkin/transit/internal/display"
	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/zodiac"
)

const day = 24 * time.Hour

// Duration describes a planet's stay in a sign relative to a reference time.
type Duration struct {
	TotalDays     float64   `json:"totalDays"`
	RemainingDays float64   `json:"remainingDays"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	DisplayText   string    `json:"displayText"`
}

// Snapshot returns the subset of d that Refresh needs.
func (d Duration) Snapshot() Snapshot {
	return Snapshot{StartDate: d.StartDate, EndDate: d.EndDate, TotalDays: d.TotalDays}
}

// Query describes one planet position to compute a duration for.
type Query struct {
	Planet    zodiac.Planet
	Sign      zodiac.Sign
	Longitude float64
	At        time.Time
	// DailyMotion is the observed speed in degrees per day; zero means not
	// observed. It only applies to fast planets.
	DailyMotion float64
}

// Engine computes sign durations. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	segments *ephemeris.Table
}

// New returns an Engine that resolves slow planets against segments. A nil
// table is allowed; slow planets then always report ErrNoSegment.
func New(segments *ephemeris.Table) *Engine {
	return &Engine{segments: segments}
}

// Compute returns the duration of q.Planet's stay in q.Sign as seen at q.At.
func (e *Engine) Compute(q Query) (Duration, error) {
	if !q.Planet.IsBody() {
		return Duration{}, fmt.Errorf("duration: %w: %q", zodiac.ErrUnknownPlanet, q.Planet)
	}
	if err := zodiac.CheckLongitude(q.Longitude); err != nil {
		return Duration{}, fmt.Errorf("duration: %s: %w", q.Planet, err)
	}
	if !q.Sign.Known() {
		return Duration{}, fmt.Errorf("duration: %w: %q", zodiac.ErrUnknownSign, q.Sign)
	}
	switch {
	case q.Planet.IsSlow():
		return e.slow(q)
	case q.Planet.IsFast():
		return fast(q)
	}
	return Duration{}, fmt.Errorf("duration: %w: %q", zodiac.ErrUnknownPlanet, q.Planet)
}

func (e *Engine) slow(q Query) (Duration, error) {
	seg, ok := e.segments.Lookup(q.Planet, q.Sign, q.At)
	if !ok {
		return Duration{}, fmt.Errorf("duration: %s in %s at %s: %w",
			q.Planet, q.Sign, q.At.Format(time.RFC3339), ErrNoSegment)
	}
	remaining := days(seg.End.Sub(q.At))
	return Duration{
		TotalDays:     math.Ceil(seg.Days()),
		RemainingDays: remaining,
		StartDate:     seg.Start,
		EndDate:       seg.End,
		DisplayText:   display.Remaining(remaining),
	}, nil
}

func fast(q Query) (Duration, error) {
	motion, err := EffectiveMotion(q.Planet, q.DailyMotion)
	if err != nil {
		return Duration{}, err
	}

	degreeInSign := zodiac.DegreeInSign(q.Longitude)
	remaining := (30 - degreeInSign) / motion
	elapsed := degreeInSign / motion

	return Duration{
		TotalDays:     elapsed + remaining,
		RemainingDays: remaining,
		StartDate:     q.At.Add(-fromDays(elapsed)),
		EndDate:       q.At.Add(fromDays(remaining)),
		DisplayText:   display.Remaining(remaining),
	}, nil
}

// EffectiveMotion returns planet's projection speed for an observed motion,
// or ErrInvalidMotion for bodies without a positive average.
func EffectiveMotion(planet zodiac.Planet, observed float64) (float64, error) {
	m, ok := planet.EffectiveMotion(observed)
	if !ok || m <= 0 {
		return 0, fmt.Errorf("duration: %s: %w", planet, ErrInvalidMotion)
	}
	return m, nil
}

func days(d time.Duration) float64 {
	return d.Hours() / 24
}

func fromDays(n float64) time.Duration {
	return time.Duration(n * float64(day))
}
