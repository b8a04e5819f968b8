package aspect

import (
	"fmt"
	"math"
	"time"

	"github.com/papapumpkin/transit/internal/display"
	"github.com/papapumpkin/transit/internal/zodiac"
)

const day = 24 * time.Hour

// ComputeTiming projects when the aspect in o began, perfects and ends,
// relative to now. Both longitudes are required, and the transiting planet
// must have a known daily motion.
func ComputeTiming(o Observation, now time.Time) (Timing, error) {
	if o.TransitLongitude == nil || o.NatalLongitude == nil {
		return Timing{}, fmt.Errorf("aspect: timing %s %s %s: %w", o.TransitPlanet, o.Aspect, o.NatalPlanet, ErrMissingLongitude)
	}
	if !o.Aspect.Valid() {
		return Timing{}, ErrMissingAspect
	}
	for _, lon := range []float64{*o.TransitLongitude, *o.NatalLongitude} {
		if err := zodiac.CheckLongitude(lon); err != nil {
			return Timing{}, fmt.Errorf("aspect: timing %s %s %s: %w", o.TransitPlanet, o.Aspect, o.NatalPlanet, err)
		}
	}
	m, ok := o.TransitPlanet.EffectiveMotion(o.DailyMotion)
	if !ok {
		return Timing{}, fmt.Errorf("aspect: %s: %w", o.TransitPlanet, ErrNoMotion)
	}

	transitLon, natalLon := *o.TransitLongitude, *o.NatalLongitude
	maxOrb := o.Aspect.MaxOrb()
	orb := zodiac.Orb(transitLon, natalLon, o.Aspect)
	if orb > maxOrb {
		return Timing{}, fmt.Errorf("aspect: %s %s %s orb %.2f exceeds %.0f: %w",
			o.TransitPlanet, o.Aspect, o.NatalPlanet, orb, maxOrb, ErrOutOfOrb)
	}
	yesterday := zodiac.Orb(transitLon-m, natalLon, o.Aspect)
	applying := yesterday > orb

	t := Timing{IsApplying: applying, TotalDays: 2 * maxOrb / m}
	if applying {
		t.StartDate = offset(now, -(maxOrb-orb)/m)
		t.ExactDate = offset(now, orb/m)
		t.EndDate = offset(now, (orb+maxOrb)/m)
	} else {
		t.ExactDate = offset(now, -orb/m)
		t.StartDate = offset(now, -(maxOrb+orb)/m)
		t.EndDate = offset(now, (maxOrb-orb)/m)
	}
	t.RemainingDays = math.Max(0, t.EndDate.Sub(now).Hours()/24)
	t.DisplayText = display.Remaining(t.RemainingDays)
	return t, nil
}

func offset(now time.Time, days float64) time.Time {
	return now.Add(time.Duration(days * float64(day)))
}
