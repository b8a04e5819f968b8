package zodiac

import "errors"

// Sentinel errors for name resolution and position checks.
var (
	// ErrUnknownPlanet indicates a name that is not a supported body or chart point.
	ErrUnknownPlanet = errors.New("unknown planet")
	// ErrUnknownSign indicates a name that is not one of the twelve signs.
	ErrUnknownSign = errors.New("unknown sign")
	// ErrUnknownAspect indicates a name that is not one of the five major aspects.
	ErrUnknownAspect = errors.New("unknown aspect")
	// ErrInvalidLongitude indicates a NaN or infinite ecliptic longitude.
	ErrInvalidLongitude = errors.New("longitude is not a finite number")
)
