package duration

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/papapumpkin/transit/internal/display"
)

// Snapshot is a previously computed duration as it comes back from a cache
// or JSON storage. Dates decode from RFC 3339 timestamps, naive
// "2006-01-02T15:04:05" timestamps (UTC) or bare "2006-01-02" dates.
type Snapshot struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	TotalDays float64   `json:"totalDays"`
}

// layouts are tried in order when decoding snapshot dates.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime decodes an ISO-8601 timestamp or date. Inputs without a zone
// are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("duration: unrecognized date %q", s)
}

// ParseSnapshot builds a Snapshot from string dates.
func ParseSnapshot(start, end string, totalDays float64) (Snapshot, error) {
	var s Snapshot
	var err error
	if start != "" {
		if s.StartDate, err = ParseTime(start); err != nil {
			return Snapshot{}, err
		}
	}
	if s.EndDate, err = ParseTime(end); err != nil {
		return Snapshot{}, err
	}
	s.TotalDays = totalDays
	return s, nil
}

// UnmarshalJSON accepts the date forms described on Snapshot.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		TotalDays float64 `json:"totalDays"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.EndDate == "" {
		return ErrIncompleteSnapshot
	}
	parsed, err := ParseSnapshot(raw.StartDate, raw.EndDate, raw.TotalDays)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Refresh recomputes the remaining time of a stored duration against now.
// A snapshot whose end has passed reports ErrTransitOver rather than a
// negative remaining time.
func Refresh(s Snapshot, now time.Time) (Duration, error) {
	if s.EndDate.IsZero() {
		return Duration{}, ErrIncompleteSnapshot
	}
	if !now.Before(s.EndDate) {
		return Duration{}, fmt.Errorf("duration: ended %s: %w", s.EndDate.Format(time.RFC3339), ErrTransitOver)
	}
	remaining := days(s.EndDate.Sub(now))
	return Duration{
		TotalDays:     s.TotalDays,
		RemainingDays: remaining,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		DisplayText:   display.Remaining(remaining),
	}, nil
}
