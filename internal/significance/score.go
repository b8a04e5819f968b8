package significance

import (
	"fmt"
	"math"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/zodiac"
)

// maxThemes caps the theme tags on a detail.
const maxThemes = 3

// IntensityFor grades an orb in degrees.
func IntensityFor(orb float64) Intensity {
	switch {
	case orb <= 1:
		return Exact
	case orb <= 3:
		return Strong
	default:
		return Subtle
	}
}

func orbScore(orb float64) int {
	switch {
	case orb <= 1:
		return 4
	case orb <= 2:
		return 3
	case orb <= 4:
		return 2
	default:
		return 1
	}
}

// LevelFor combines the orb score with the heavier of the two planet weights.
func LevelFor(o aspect.Observation) Level {
	score := orbScore(o.Orb) + max(o.TransitPlanet.Weight(), o.NatalPlanet.Weight())
	switch {
	case score >= 8:
		return LifeDefining
	case score >= 6:
		return HighlyProminent
	case score >= 4:
		return Noticeable
	default:
		return Mild
	}
}

// Themes interleaves the natal planet's tags, the transiting planet's tags
// and the aspect's tags, dropping duplicates, up to three tags. The
// round-robin order is intended: every source offers its leading tag before
// any source offers a second, so the cut at three keeps the first tag of each
// source unless it duplicates an earlier one.
func Themes(o aspect.Observation) []string {
	sources := [][]string{o.NatalPlanet.Themes(), o.TransitPlanet.Themes(), o.Aspect.Themes()}
	seen := make(map[string]bool)
	var out []string
	for i := 0; len(out) < maxThemes; i++ {
		progressed := false
		for _, src := range sources {
			if i >= len(src) {
				continue
			}
			progressed = true
			if tag := src[i]; !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
				if len(out) == maxThemes {
					break
				}
			}
		}
		if !progressed {
			break
		}
	}
	return out
}

// cycleYears returns how often the aspect recurs: the transiting planet's
// orbital period divided by the aspect's repetition divisor.
func cycleYears(planet zodiac.Planet, kind zodiac.Aspect) (float64, bool) {
	period, ok := planet.OrbitalPeriod()
	if !ok || !kind.Valid() {
		return 0, false
	}
	return period / kind.Divisor(), true
}

// CycleLabel returns a short recurrence label such as "monthly", "~6mo" or
// "~12y". Unknown transiting planets are "periodic".
func CycleLabel(planet zodiac.Planet, kind zodiac.Aspect) string {
	years, ok := cycleYears(planet, kind)
	if !ok {
		return "periodic"
	}
	switch {
	case years < 7.0/365:
		return "weekly"
	case years < 0.17:
		return "monthly"
	case years >= 0.9 && years <= 1.5:
		return "yearly"
	case years < 1:
		return fmt.Sprintf("~%dmo", int(math.Round(years*12)))
	default:
		return fmt.Sprintf("~%dy", int(math.Round(years)))
	}
}

func cyclePhrase(planet zodiac.Planet, kind zodiac.Aspect) string {
	years, ok := cycleYears(planet, kind)
	if !ok {
		return "periodically"
	}
	switch {
	case years < 7.0/365:
		return "every week"
	case years < 0.17:
		return "every month"
	case years >= 0.9 && years <= 1.5:
		return "every year"
	case years < 1:
		return fmt.Sprintf("about every %d months", int(math.Round(years*12)))
	default:
		return fmt.Sprintf("about every %d years", int(math.Round(years)))
	}
}
