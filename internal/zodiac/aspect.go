package zodiac

import (
	"fmt"
	"strings"
)

// Aspect is one of the five major angular relationships. The zero value,
// AspectNone, is not a valid aspect.
type Aspect int

// The major aspects, in ascending angle order.
const (
	AspectNone Aspect = iota // unset or unrecognized
	Conjunction
	Sextile
	Square
	Trine
	Opposition
)

type aspectInfo struct {
	name    string
	symbol  string
	angle   float64
	maxOrb  float64
	divisor float64 // recurrences per orbital period
	themes  []string
}

var aspects = map[Aspect]aspectInfo{
	Conjunction: {name: "conjunction", symbol: "☌", angle: 0, maxOrb: 10, divisor: 1, themes: []string{"Focus"}},
	Sextile:     {name: "sextile", symbol: "⚹", angle: 60, maxOrb: 6, divisor: 2, themes: []string{"Opportunity"}},
	Square:      {name: "square", symbol: "□", angle: 90, maxOrb: 8, divisor: 2, themes: []string{"Challenge"}},
	Trine:       {name: "trine", symbol: "△", angle: 120, maxOrb: 8, divisor: 2, themes: []string{"Flow"}},
	Opposition:  {name: "opposition", symbol: "☍", angle: 180, maxOrb: 10, divisor: 1, themes: []string{"Balance"}},
}

// Aspects lists the valid aspects in ascending angle order.
var Aspects = []Aspect{Conjunction, Sextile, Square, Trine, Opposition}

// ParseAspect resolves a case-insensitive aspect name.
func ParseAspect(name string) (Aspect, error) {
	n := strings.TrimSpace(name)
	for a, info := range aspects {
		if strings.EqualFold(info.name, n) {
			return a, nil
		}
	}
	return AspectNone, fmt.Errorf("%w: %q", ErrUnknownAspect, name)
}

// Valid reports whether a is one of the five major aspects.
func (a Aspect) Valid() bool {
	_, ok := aspects[a]
	return ok
}

// String returns the lowercase aspect name, or "none".
func (a Aspect) String() string {
	if info, ok := aspects[a]; ok {
		return info.name
	}
	return "none"
}

// Symbol returns the astrological glyph for the aspect.
func (a Aspect) Symbol() string {
	return aspects[a].symbol
}

// Angle returns the exact separation in degrees.
func (a Aspect) Angle() float64 {
	return aspects[a].angle
}

// MaxOrb returns the widest deviation from exact at which the aspect is
// still considered active.
func (a Aspect) MaxOrb() float64 {
	return aspects[a].maxOrb
}

// Divisor returns how many times per orbital period the aspect recurs:
// 1 for conjunction and opposition, 2 for the others.
func (a Aspect) Divisor() float64 {
	return aspects[a].divisor
}

// Themes returns a copy of the aspect's modifier tags.
func (a Aspect) Themes() []string {
	return append([]string(nil), aspects[a].themes...)
}

// MarshalText implements encoding.TextMarshaler.
func (a Aspect) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAspect, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Aspect) UnmarshalText(text []byte) error {
	parsed, err := ParseAspect(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
