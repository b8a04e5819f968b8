package zodiac

import (
	"fmt"
	"math"
)

// Finite reports whether longitude is a usable ecliptic position, neither
// NaN nor infinite.
func Finite(longitude float64) bool {
	return !math.IsNaN(longitude) && !math.IsInf(longitude, 0)
}

// CheckLongitude returns ErrInvalidLongitude for a NaN or infinite value.
func CheckLongitude(longitude float64) error {
	if !Finite(longitude) {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, longitude)
	}
	return nil
}

// Normalize folds an ecliptic longitude into [0, 360). Non-finite input is
// returned as NaN.
func Normalize(longitude float64) float64 {
	if !Finite(longitude) {
		return math.NaN()
	}
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	// Tiny negative inputs round up to exactly 360 after the addition.
	if l >= 360 {
		l = 0
	}
	return l
}

// DegreeInSign returns the offset of longitude from the start of its sign,
// in [0, 30). Non-finite input yields NaN.
func DegreeInSign(longitude float64) float64 {
	return math.Mod(Normalize(longitude), 30)
}

// SignOf returns the sign containing longitude, or the empty Sign when
// longitude is not finite.
func SignOf(longitude float64) Sign {
	if !Finite(longitude) {
		return ""
	}
	i := int(Normalize(longitude) / 30)
	if i > 11 {
		i = 11
	}
	return Signs[i]
}

// Separation returns the shorter angular distance between two longitudes,
// in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Orb returns how far the separation of a and b deviates from the exact
// angle of the aspect.
func Orb(a, b float64, aspect Aspect) float64 {
	return math.Abs(Separation(a, b) - aspect.Angle())
}
