package duration

import (
	"time"

	"github.com/papapumpkin/transit/internal/zodiac"
)

var baseTTL = map[zodiac.Planet]time.Duration{
	zodiac.Moon:    15 * time.Minute,
	zodiac.Sun:     30 * time.Minute,
	zodiac.Mercury: time.Hour,
	zodiac.Venus:   2 * time.Hour,
	zodiac.Mars:    6 * time.Hour,
	zodiac.Jupiter: day,
	zodiac.Saturn:  7 * day,
	zodiac.Uranus:  14 * day,
	zodiac.Neptune: 30 * day,
	zodiac.Pluto:   30 * day,
}

// CacheTTL returns how long a computed position for planet stays fresh.
// Near a sign boundary (within 1° of ingress or 2° of egress) the TTL drops
// to a quarter so ingress timing stays accurate.
func CacheTTL(planet zodiac.Planet, longitude float64) time.Duration {
	ttl, ok := baseTTL[planet]
	if !ok {
		ttl = time.Hour
	}
	deg := zodiac.DegreeInSign(longitude)
	if deg >= 28 || deg <= 1 {
		return ttl / 4
	}
	return ttl
}
