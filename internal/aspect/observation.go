// Package aspect models angular relationships between a transiting planet
// and a natal point: the validated Observation record, detection of active
// aspects from raw positions, and projection of when an aspect starts,
// perfects and ends.
package aspect

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/papapumpkin/transit/internal/zodiac"
)

// Observation is one transiting aspect to a natal point. Records are
// produced by Decode or Detect and validated before they reach scoring.
type Observation struct {
	TransitPlanet zodiac.Planet `json:"transitPlanet" yaml:"transitPlanet"`
	NatalPlanet   zodiac.Planet `json:"natalPlanet" yaml:"natalPlanet"`
	Aspect        zodiac.Aspect `json:"aspect" yaml:"aspect"`
	// Orb is the absolute deviation from the exact aspect angle in degrees.
	Orb float64 `json:"orb" yaml:"orb"`
	// TransitLongitude and NatalLongitude are optional; timing needs both.
	TransitLongitude *float64 `json:"transitLongitude,omitempty" yaml:"transitLongitude,omitempty"`
	NatalLongitude   *float64 `json:"natalLongitude,omitempty" yaml:"natalLongitude,omitempty"`
	// DailyMotion is the observed speed of the transiting planet; zero
	// means the table average is used.
	DailyMotion float64 `json:"dailyMotion,omitempty" yaml:"dailyMotion,omitempty"`
	// House is the natal house 1-12 the aspect falls in; zero means none.
	House int `json:"house,omitempty" yaml:"house,omitempty"`
}

// Validate reports whether o can be scored.
func (o Observation) Validate() error {
	switch {
	case o.TransitPlanet == "":
		return fmt.Errorf("%w: transit planet", ErrMissingPlanet)
	case o.NatalPlanet == "":
		return fmt.Errorf("%w: natal planet", ErrMissingPlanet)
	case !o.Aspect.Valid():
		return ErrMissingAspect
	case math.IsNaN(o.Orb) || math.IsInf(o.Orb, 0) || o.Orb < 0:
		return fmt.Errorf("%w: %v", ErrInvalidOrb, o.Orb)
	}
	return nil
}

// HasHouse reports whether o names a natal house 1-12.
func (o Observation) HasHouse() bool {
	return o.House >= 1 && o.House <= 12
}

// NatalSign returns the sign of the natal point when its longitude is known.
func (o Observation) NatalSign() (zodiac.Sign, bool) {
	return signAt(o.NatalLongitude)
}

// TransitSign returns the sign of the transiting planet when its longitude
// is known.
func (o Observation) TransitSign() (zodiac.Sign, bool) {
	return signAt(o.TransitLongitude)
}

func signAt(lon *float64) (zodiac.Sign, bool) {
	if lon == nil || !zodiac.Finite(*lon) {
		return "", false
	}
	return zodiac.SignOf(*lon), true
}

// RawObservation is the loosely typed shape observations arrive in from
// JSON or YAML callers, before names are resolved.
type RawObservation struct {
	TransitPlanet    string   `json:"transitPlanet" yaml:"transitPlanet"`
	NatalPlanet      string   `json:"natalPlanet" yaml:"natalPlanet"`
	Aspect           string   `json:"aspect" yaml:"aspect"`
	Orb              *float64 `json:"orb" yaml:"orb"`
	TransitLongitude *float64 `json:"transitLongitude" yaml:"transitLongitude"`
	NatalLongitude   *float64 `json:"natalLongitude" yaml:"natalLongitude"`
	DailyMotion      float64  `json:"dailyMotion" yaml:"dailyMotion"`
	House            int      `json:"house" yaml:"house"`
}

// Decode resolves and validates r. Known planet names are canonicalized;
// other non-empty names are kept as unknown natal points. When the orb is
// omitted it is derived from both longitudes. A NaN or infinite longitude
// fails with zodiac.ErrInvalidLongitude. Failures are *DecodeError.
func Decode(r RawObservation) (Observation, error) {
	fail := func(err error) (Observation, error) {
		return Observation{}, &DecodeError{Transit: r.TransitPlanet, Natal: r.NatalPlanet, Aspect: r.Aspect, Err: err}
	}

	o := Observation{
		TransitLongitude: r.TransitLongitude,
		NatalLongitude:   r.NatalLongitude,
		DailyMotion:      r.DailyMotion,
		House:            r.House,
	}
	o.TransitPlanet = canonical(r.TransitPlanet)
	o.NatalPlanet = canonical(r.NatalPlanet)

	for _, lon := range []*float64{r.TransitLongitude, r.NatalLongitude} {
		if lon == nil {
			continue
		}
		if err := zodiac.CheckLongitude(*lon); err != nil {
			return fail(err)
		}
	}

	if strings.TrimSpace(r.Aspect) == "" {
		return fail(ErrMissingAspect)
	}
	kind, err := zodiac.ParseAspect(r.Aspect)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrMissingAspect, err))
	}
	o.Aspect = kind

	switch {
	case r.Orb != nil:
		o.Orb = *r.Orb
	case r.TransitLongitude != nil && r.NatalLongitude != nil:
		o.Orb = zodiac.Orb(*r.TransitLongitude, *r.NatalLongitude, kind)
	default:
		return fail(fmt.Errorf("%w: no orb or longitudes", ErrInvalidOrb))
	}

	if err := o.Validate(); err != nil {
		return fail(err)
	}
	return o, nil
}

// DecodeAll decodes every raw record, returning the valid observations and
// the errors of the rejected ones.
func DecodeAll(raws []RawObservation) ([]Observation, []error) {
	var obs []Observation
	var errs []error
	for _, r := range raws {
		o, err := Decode(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		obs = append(obs, o)
	}
	return obs, errs
}

func canonical(name string) zodiac.Planet {
	if p, err := zodiac.ParsePlanet(name); err == nil {
		return p
	}
	return zodiac.Planet(strings.TrimSpace(name))
}

// Body is a planet or chart point at a known longitude, either transiting
// (with an optional observed daily motion) or natal (with an optional house).
type Body struct {
	Planet      zodiac.Planet `json:"planet" yaml:"planet"`
	Longitude   float64       `json:"longitude" yaml:"longitude"`
	DailyMotion float64       `json:"dailyMotion,omitempty" yaml:"dailyMotion,omitempty"`
	House       int           `json:"house,omitempty" yaml:"house,omitempty"`
	// Retrograde marks a transiting body moving backwards.
	Retrograde bool `json:"retrograde,omitempty" yaml:"retrograde,omitempty"`
}

// Timing projects the active window of an aspect relative to a reference time.
type Timing struct {
	StartDate     time.Time `json:"startDate"`
	ExactDate     time.Time `json:"exactDate"`
	EndDate       time.Time `json:"endDate"`
	IsApplying    bool      `json:"isApplying"`
	TotalDays     float64   `json:"totalDays"`
	RemainingDays float64   `json:"remainingDays"`
	DisplayText   string    `json:"displayText"`
}
