// Package display renders computed transit numbers as short human labels.
package display

import (
	"fmt"
	"math"
	"strconv"

	"github.com/papapumpkin/transit/internal/zodiac"
)

// Bucket cut points in days. Each bucket is half-open on its low end.
const (
	hourCutoff  = 1.0 / 24
	dayCutoff   = 1.0
	weekCutoff  = 14.0
	monthCutoff = 56.0
	yearCutoff  = 365.0
)

// Remaining renders a remaining duration in days as a coarse label such as
// "3d left" or "1.5y left". Negative input is treated as under an hour.
func Remaining(days float64) string {
	switch {
	case days < hourCutoff:
		return "<1h left"
	case days < dayCutoff:
		return fmt.Sprintf("%dh left", int(math.Round(days*24)))
	case days < weekCutoff:
		return fmt.Sprintf("%dd left", int(math.Round(days)))
	case days < monthCutoff:
		return fmt.Sprintf("%dw left", int(math.Round(days/7)))
	case days < yearCutoff:
		return fmt.Sprintf("%dm left", int(math.Round(days/30)))
	default:
		years := math.Round(days/yearCutoff*10) / 10
		return strconv.FormatFloat(years, 'f', -1, 64) + "y left"
	}
}

// Degrees renders a longitude as whole degrees and arcminutes within its
// sign, e.g. "15°32' Aries". A non-finite longitude renders as "?".
func Degrees(longitude float64) string {
	if !zodiac.Finite(longitude) {
		return "?"
	}
	deg := zodiac.DegreeInSign(longitude)
	whole := math.Floor(deg)
	minutes := int(math.Floor((deg - whole) * 60))
	return fmt.Sprintf("%d°%02d' %s", int(whole), minutes, zodiac.SignOf(longitude))
}
