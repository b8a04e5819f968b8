// Package zodiac holds the fixed reference data shared by every transit
// computation: the supported bodies and chart points, the twelve signs, the
// five major aspects, and per-planet constants such as average daily motion,
// orbital period, significance weight and theme tags.
package zodiac

import (
	"fmt"
	"math"
	"strings"
)

// Planet identifies a transiting body or a natal chart point. Names outside
// the known set are still valid natal points; they receive generic labels.
type Planet string

// Supported bodies and chart points.
const (
	Sun       Planet = "Sun"
	Moon      Planet = "Moon"
	Mercury   Planet = "Mercury"
	Venus     Planet = "Venus"
	Mars      Planet = "Mars"
	Jupiter   Planet = "Jupiter"
	Saturn    Planet = "Saturn"
	Uranus    Planet = "Uranus"
	Neptune   Planet = "Neptune"
	Pluto     Planet = "Pluto"
	Ascendant Planet = "Ascendant"
	Midheaven Planet = "Midheaven"
)

// Bodies lists the ten transiting bodies in traditional order.
var Bodies = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// ParsePlanet resolves a case-insensitive name to a known planet or chart
// point. Unknown names return ErrUnknownPlanet.
func ParsePlanet(name string) (Planet, error) {
	n := strings.TrimSpace(name)
	if _, ok := planets[Planet(n)]; ok {
		return Planet(n), nil
	}
	for p := range planets {
		if strings.EqualFold(string(p), n) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlanet, name)
}

// Known reports whether p is one of the ten bodies or a named chart point.
func (p Planet) Known() bool {
	_, ok := planets[p]
	return ok
}

// IsBody reports whether p is one of the ten transiting bodies.
func (p Planet) IsBody() bool {
	c, ok := planets[p]
	return ok && c.motion > 0
}

// IsFast reports whether p completes a zodiac circuit in under about two
// years (Sun through Mars). Fast planets use sign-passage arithmetic.
func (p Planet) IsFast() bool {
	c, ok := planets[p]
	return ok && c.motion > 0 && !c.slow
}

// IsSlow reports whether p is Jupiter or beyond. Slow planets use the
// precomputed segment table.
func (p Planet) IsSlow() bool {
	c, ok := planets[p]
	return ok && c.slow
}

// DailyMotion returns the average angular speed in degrees per day. The
// second result is false for chart points and unknown names.
func (p Planet) DailyMotion() (float64, bool) {
	c, ok := planets[p]
	if !ok || c.motion <= 0 {
		return 0, false
	}
	return c.motion, true
}

// motionFloor is the fraction of the average daily motion an observed speed
// must exceed to be trusted. Slower readings come from stations and are
// replaced by the average.
const motionFloor = 0.5

// EffectiveMotion returns the daily motion to project with: observed when it
// is finite and above half the average, the average otherwise. The second
// result is false for chart points and unknown names.
func (p Planet) EffectiveMotion(observed float64) (float64, bool) {
	avg, ok := p.DailyMotion()
	if !ok {
		return 0, false
	}
	if observed > motionFloor*avg && !math.IsInf(observed, 1) {
		return observed, true
	}
	return avg, true
}

// OrbitalPeriod returns the time in years to complete one zodiac circuit.
func (p Planet) OrbitalPeriod() (float64, bool) {
	c, ok := planets[p]
	if !ok || c.period <= 0 {
		return 0, false
	}
	return c.period, true
}

// Weight returns the fixed significance weight, 2 for unknown names.
func (p Planet) Weight() int {
	if c, ok := planets[p]; ok {
		return c.weight
	}
	return defaultWeight
}

// Themes returns a copy of the planet's theme tags, nil for unknown names.
func (p Planet) Themes() []string {
	c, ok := planets[p]
	if !ok {
		return nil
	}
	return append([]string(nil), c.themes...)
}

// Focus returns the life area the planet speaks to in a natal chart, used in
// annotation sentences.
func (p Planet) Focus() string {
	if c, ok := planets[p]; ok {
		return c.focus
	}
	return "your " + strings.ToLower(string(p)) + " energy"
}

// Sign is one of the twelve 30° zodiac signs.
type Sign string

// The twelve signs in order from 0° Aries.
const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists the signs in zodiacal order; index i starts at i*30°.
var Signs = [12]Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// ParseSign resolves a case-insensitive sign name. Unknown names return
// ErrUnknownSign.
func ParseSign(name string) (Sign, error) {
	n := strings.TrimSpace(name)
	for _, s := range Signs {
		if strings.EqualFold(string(s), n) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSign, name)
}

// Known reports whether s is one of the twelve signs.
func (s Sign) Known() bool {
	return s.Index() >= 0
}

// Index returns the zero-based zodiacal position of s, or -1.
func (s Sign) Index() int {
	for i, v := range Signs {
		if v == s {
			return i
		}
	}
	return -1
}

// Quality returns a short adjective phrase describing the sign's tone.
func (s Sign) Quality() string {
	if q, ok := signQualities[s]; ok {
		return q
	}
	return "cosmic"
}
