package aspect

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed observations and timing inputs.
var (
	// ErrMissingPlanet indicates an observation without a transit or natal planet.
	ErrMissingPlanet = errors.New("observation is missing a planet")
	// ErrMissingAspect indicates an observation without a recognized aspect.
	ErrMissingAspect = errors.New("observation is missing an aspect")
	// ErrInvalidOrb indicates a negative, non-finite or underivable orb.
	ErrInvalidOrb = errors.New("observation orb is invalid")
	// ErrMissingLongitude indicates timing was requested without both longitudes.
	ErrMissingLongitude = errors.New("timing needs transit and natal longitudes")
	// ErrNoMotion indicates the transiting planet has no usable daily motion.
	ErrNoMotion = errors.New("transiting planet has no daily motion")
	// ErrOutOfOrb indicates the aspect is wider than its maximum orb.
	ErrOutOfOrb = errors.New("aspect is outside its orb")
)

// DecodeError records why a raw observation was rejected.
type DecodeError struct {
	Transit string
	Natal   string
	Aspect  string
	Err     error
}

// Error returns a message naming the rejected observation.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("observation %q %q %q: %v", e.Transit, e.Aspect, e.Natal, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
