package aspect

import (
	"cmp"
	"math"
	"slices"

	"github.com/papapumpkin/transit/internal/zodiac"
)

// detectOrder is the order aspects are tried for each pair; the first aspect
// within its maximum orb wins.
var detectOrder = []zodiac.Aspect{
	zodiac.Conjunction,
	zodiac.Opposition,
	zodiac.Trine,
	zodiac.Square,
	zodiac.Sextile,
}

// skippedNatal lists natal points that never receive aspects.
var skippedNatal = map[zodiac.Planet]bool{
	"North Node": true,
	"South Node": true,
	"Chiron":     true,
	"Lilith":     true,
}

// Detect finds the active aspects between every transiting body and every
// natal point. Bodies with a non-finite longitude are ignored. Results are
// sorted by orb, then by planet names and aspect.
func Detect(transits, natal []Body) []Observation {
	var out []Observation
	for _, tr := range transits {
		if !zodiac.Finite(tr.Longitude) {
			continue
		}
		for _, n := range natal {
			if skippedNatal[n.Planet] || !zodiac.Finite(n.Longitude) {
				continue
			}
			sep := zodiac.Separation(tr.Longitude, n.Longitude)
			for _, kind := range detectOrder {
				orb := math.Abs(sep - kind.Angle())
				if orb > kind.MaxOrb() {
					continue
				}
				tl, nl := tr.Longitude, n.Longitude
				out = append(out, Observation{
					TransitPlanet:    tr.Planet,
					NatalPlanet:      n.Planet,
					Aspect:           kind,
					Orb:              orb,
					TransitLongitude: &tl,
					NatalLongitude:   &nl,
					DailyMotion:      tr.DailyMotion,
					House:            n.House,
				})
				break
			}
		}
	}
	SortByOrb(out)
	return out
}

// SortByOrb orders observations by ascending orb, breaking ties by transit
// planet, natal planet, aspect and house so the order never depends on input
// order.
func SortByOrb(obs []Observation) {
	slices.SortStableFunc(obs, Compare)
}

// Compare orders a before b when it is tighter, then by names.
func Compare(a, b Observation) int {
	return cmp.Or(
		cmp.Compare(a.Orb, b.Orb),
		cmp.Compare(a.TransitPlanet, b.TransitPlanet),
		cmp.Compare(a.NatalPlanet, b.NatalPlanet),
		cmp.Compare(a.Aspect, b.Aspect),
		cmp.Compare(a.House, b.House),
	)
}
