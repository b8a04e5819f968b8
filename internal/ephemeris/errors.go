package ephemeris

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/transit/internal/zodiac"
)

// Sentinel errors for segment validation.
var (
	// ErrNotSlowPlanet indicates a segment for a body that is not Jupiter or beyond.
	ErrNotSlowPlanet = errors.New("segment planet is not a slow planet")
	// ErrMissingBound indicates a segment without a start or end time.
	ErrMissingBound = errors.New("segment start and end are required")
	// ErrEmptyWindow indicates a segment whose start is not before its end.
	ErrEmptyWindow = errors.New("segment start must be before end")
	// ErrOverlap indicates two segments of the same planet share time.
	ErrOverlap = errors.New("overlapping segments")
)

// SegmentError records which segment failed validation. Index is the
// position in the input, or -1 when the problem spans several segments.
type SegmentError struct {
	Index  int
	Planet zodiac.Planet
	Sign   zodiac.Sign
	Err    error
}

// Error returns a message naming the offending segment.
func (e *SegmentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("segment %s in %s: %v", e.Planet, e.Sign, e.Err)
	}
	return fmt.Sprintf("segment %d (%s in %s): %v", e.Index, e.Planet, e.Sign, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *SegmentError) Unwrap() error {
	return e.Err
}
