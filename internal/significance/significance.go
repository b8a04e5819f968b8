// Package significance ranks simultaneous transit aspects and annotates the
// tightest ones with intensity, themes, recurrence and cross-transit
// stacking notes.
package significance

import (
	"slices"
	"time"

	"github.com/papapumpkin/transit/internal/aspect"
)

// DefaultMaxItems is the number of details Build returns when Options.MaxItems
// is not positive.
const DefaultMaxItems = 3

// Intensity grades an aspect by orb alone.
type Intensity string

// Intensity grades from widest to tightest orb.
const (
	Subtle Intensity = "Subtle"
	Strong Intensity = "Strong"
	Exact  Intensity = "Exact"
)

// Level grades an aspect by orb and the weight of the heavier planet.
type Level string

// Levels in ascending order of prominence.
const (
	Mild            Level = "Mild"
	Noticeable      Level = "Noticeable"
	HighlyProminent Level = "Highly Prominent"
	LifeDefining    Level = "Life-Defining"
)

// Options tunes Build.
type Options struct {
	// MaxItems caps the number of details; values <= 0 mean DefaultMaxItems.
	MaxItems int
	// Premium enables the annotation sentences and stacking notes.
	Premium bool
	// Now, when set, is the reference time for attaching aspect timing to
	// details whose observations carry both longitudes.
	Now time.Time
}

// DefaultOptions returns three premium details without timing.
func DefaultOptions() Options {
	return Options{MaxItems: DefaultMaxItems, Premium: true}
}

// Detail is one ranked transit aspect with its derived annotations.
type Detail struct {
	aspect.Observation

	Intensity    Intensity `json:"intensity"`
	Level        Level     `json:"level"`
	Themes       []string  `json:"themes"`
	TransitCycle string    `json:"transitCycle"`

	HouseMeaning   string   `json:"houseMeaning,omitempty"`
	NatalContext   string   `json:"natalContext,omitempty"`
	OrbExplanation string   `json:"orbExplanation,omitempty"`
	TimingSummary  string   `json:"timingSummary,omitempty"`
	PastPattern    string   `json:"pastPattern,omitempty"`
	StackingNotes  []string `json:"stackingNotes,omitempty"`

	Timing *aspect.Timing `json:"timing,omitempty"`
}

// Build ranks obs by orb and returns details for the tightest MaxItems.
// Observations that fail validation are skipped. The result does not depend
// on the order of obs.
func Build(obs []aspect.Observation, opts Options) []Detail {
	limit := opts.MaxItems
	if limit <= 0 {
		limit = DefaultMaxItems
	}

	valid := make([]aspect.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Validate() == nil {
			valid = append(valid, o)
		}
	}
	slices.SortStableFunc(valid, aspect.Compare)
	if len(valid) > limit {
		valid = valid[:limit]
	}

	details := make([]Detail, len(valid))
	for i, o := range valid {
		details[i] = detail(o, opts)
	}
	if opts.Premium {
		stack(details)
	}
	return details
}

func detail(o aspect.Observation, opts Options) Detail {
	d := Detail{
		Observation:  o,
		Intensity:    IntensityFor(o.Orb),
		Level:        LevelFor(o),
		Themes:       Themes(o),
		TransitCycle: CycleLabel(o.TransitPlanet, o.Aspect),
	}
	if !opts.Now.IsZero() {
		if t, err := aspect.ComputeTiming(o, opts.Now); err == nil {
			d.Timing = &t
		}
	}
	if opts.Premium {
		d.HouseMeaning = HouseMeaning(o.House)
		d.NatalContext = natalContext(o)
		d.OrbExplanation = orbExplanation(o)
		d.TimingSummary = timingSummary(d.Intensity)
		d.PastPattern = pastPattern(o)
	}
	return d
}
