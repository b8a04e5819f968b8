package duration

import "errors"

// Sentinel errors for durations that cannot be reported.
var (
	// ErrNoSegment indicates the reference time is outside every known
	// segment for the slow planet and sign.
	ErrNoSegment = errors.New("no segment covers the reference time")
	// ErrInvalidMotion indicates a body without a usable daily motion.
	ErrInvalidMotion = errors.New("daily motion must be positive")
	// ErrTransitOver indicates a refreshed duration whose end has passed.
	ErrTransitOver = errors.New("transit already ended")
	// ErrIncompleteSnapshot indicates a snapshot without an end date.
	ErrIncompleteSnapshot = errors.New("snapshot has no end date")
)
