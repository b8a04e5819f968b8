// Package ephemeris holds precomputed sign-occupancy windows for the slow
// planets. A Table is built once, validated, and then shared read-only by
// reference; the package never derives positions itself.
package ephemeris

import (
	"sort"
	"time"

	"github.com/papapumpkin/transit/internal/zodiac"
)

// Segment is a half-open window [Start, End) during which Planet occupies
// Sign. Retrograde motion can produce several segments for the same pair.
type Segment struct {
	Planet zodiac.Planet `json:"planet" toml:"planet"`
	Sign   zodiac.Sign   `json:"sign" toml:"sign"`
	Start  time.Time     `json:"start" toml:"start"`
	End    time.Time     `json:"end" toml:"end"`
}

// Contains reports whether t falls within [Start, End).
func (s Segment) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Days returns the segment length in fractional days.
func (s Segment) Days() float64 {
	return s.End.Sub(s.Start).Hours() / 24
}

type key struct {
	planet zodiac.Planet
	sign   zodiac.Sign
}

// Table is an immutable index of segments by planet and sign. A nil *Table
// is valid and contains nothing.
type Table struct {
	bySign   map[key][]Segment
	byPlanet map[zodiac.Planet][]Segment
	count    int
}

// NewTable validates segs and indexes them. Every segment must name a slow
// planet and a known sign, have Start before End, and must not overlap any
// other segment of the same planet. The input slice is not retained.
func NewTable(segs []Segment) (*Table, error) {
	t := &Table{
		bySign:   make(map[key][]Segment),
		byPlanet: make(map[zodiac.Planet][]Segment),
	}

	for i, s := range segs {
		if err := validate(s); err != nil {
			return nil, &SegmentError{Index: i, Planet: s.Planet, Sign: s.Sign, Err: err}
		}
		t.byPlanet[s.Planet] = append(t.byPlanet[s.Planet], s)
	}

	for planet, list := range t.byPlanet {
		sort.Slice(list, func(a, b int) bool { return list[a].Start.Before(list[b].Start) })
		for i := 1; i < len(list); i++ {
			if list[i-1].End.After(list[i].Start) {
				return nil, &SegmentError{Index: -1, Planet: planet, Sign: list[i].Sign, Err: ErrOverlap}
			}
		}
		for _, s := range list {
			k := key{planet: s.Planet, sign: s.Sign}
			t.bySign[k] = append(t.bySign[k], s)
		}
	}
	t.count = len(segs)
	return t, nil
}

func validate(s Segment) error {
	switch {
	case !s.Planet.IsSlow():
		return ErrNotSlowPlanet
	case !s.Sign.Known():
		return zodiac.ErrUnknownSign
	case s.Start.IsZero() || s.End.IsZero():
		return ErrMissingBound
	case !s.Start.Before(s.End):
		return ErrEmptyWindow
	}
	return nil
}

// Lookup returns the segment of planet in sign that contains at.
func (t *Table) Lookup(planet zodiac.Planet, sign zodiac.Sign, at time.Time) (Segment, bool) {
	if t == nil {
		return Segment{}, false
	}
	for _, s := range t.bySign[key{planet: planet, sign: sign}] {
		if s.Contains(at) {
			return s, true
		}
	}
	return Segment{}, false
}

// Current returns the segment of planet that contains at, in whichever
// sign it falls.
func (t *Table) Current(planet zodiac.Planet, at time.Time) (Segment, bool) {
	if t == nil {
		return Segment{}, false
	}
	list := t.byPlanet[planet]
	i := sort.Search(len(list), func(i int) bool { return list[i].End.After(at) })
	if i < len(list) && list[i].Contains(at) {
		return list[i], true
	}
	return Segment{}, false
}

// Segments returns a copy of every segment for planet in start order.
func (t *Table) Segments(planet zodiac.Planet) []Segment {
	if t == nil {
		return nil
	}
	return append([]Segment(nil), t.byPlanet[planet]...)
}

// Len returns the number of segments in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}
