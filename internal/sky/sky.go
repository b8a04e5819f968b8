// Package sky assembles a full transit report for a chart: sign durations for
// every transiting body, upcoming ingresses, and ranked aspect details.
package sky

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/significance"
	"github.com/papapumpkin/transit/internal/telemetry"
	"github.com/papapumpkin/transit/internal/zodiac"
)

// ingressDegrees is how far into a sign a body may be and still count as a
// fresh ingress.
const ingressDegrees = 2

// DurationComputer computes how long a body stays in its current sign.
type DurationComputer interface {
	Compute(q duration.Query) (duration.Duration, error)
}

// Options tunes a Builder.
type Options struct {
	// Concurrency bounds parallel duration computations; values < 1 mean 1.
	Concurrency int
	MaxItems    int
	Premium     bool
}

// Position is a transiting body with its sign placement and, when available,
// how long it stays there.
type Position struct {
	Planet        zodiac.Planet      `json:"planet"`
	Sign          zodiac.Sign        `json:"sign"`
	Longitude     float64            `json:"longitude"`
	DegreeInSign  float64            `json:"degreeInSign"`
	Retrograde    bool               `json:"retrograde,omitempty"`
	Duration      *duration.Duration `json:"duration,omitempty"`
	CacheTTL      time.Duration      `json:"cacheTtl"`
	Ingress       bool               `json:"ingress,omitempty"`
	DurationError string             `json:"-"`
}

// Report is the assembled result for one chart.
type Report struct {
	Chart     string                `json:"chart,omitempty"`
	At        time.Time             `json:"at"`
	Positions []Position            `json:"positions"`
	Ingresses []Position            `json:"ingresses"`
	Details   []significance.Detail `json:"details"`
	Rejected  []string              `json:"rejected,omitempty"`
}

// Builder produces reports. It is safe for concurrent use.
type Builder struct {
	durations DurationComputer
	logger    *zap.Logger
	emitter   *telemetry.Emitter
	opts      Options
}

// NewBuilder returns a Builder. A nil logger is replaced with a no-op logger;
// a nil emitter records nothing.
func NewBuilder(durations DurationComputer, logger *zap.Logger, emitter *telemetry.Emitter, opts Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Builder{durations: durations, logger: logger, emitter: emitter, opts: opts}
}

// Build assembles the report for c. A zero c.At is replaced with the current
// time. Bodies with a non-finite longitude and observations that fail to
// decode are rejected; durations that cannot be computed are left out. Both
// are logged. Only cancellation of ctx fails the build.
func (b *Builder) Build(ctx context.Context, c Chart) (Report, error) {
	at := c.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	log := b.logger.With(zap.String("chart", c.Name), zap.Time("at", at))

	transits, badTransits := finiteBodies("transit", c.Transits)
	natal, badNatal := finiteBodies("natal", c.Natal)
	r := Report{Chart: c.Name, At: at}
	for _, err := range append(badTransits, badNatal...) {
		log.Debug("body rejected", zap.Error(err))
		b.emit(telemetry.Event{Kind: telemetry.KindObservationError, Chart: c.Name, Data: map[string]string{"error": err.Error()}})
		r.Rejected = append(r.Rejected, err.Error())
	}

	positions, err := b.positions(ctx, c.Name, transits, at, log)
	if err != nil {
		return Report{}, err
	}
	r.Positions = positions
	for _, p := range positions {
		if p.Ingress {
			r.Ingresses = append(r.Ingresses, p)
		}
	}

	decoded, errs := aspect.DecodeAll(c.Observations)
	for _, err := range errs {
		log.Debug("observation rejected", zap.Error(err))
		b.emit(telemetry.Event{Kind: telemetry.KindObservationError, Chart: c.Name, Data: map[string]string{"error": err.Error()}})
		r.Rejected = append(r.Rejected, err.Error())
	}
	obs := append(decoded, aspect.Detect(transits, natal)...)

	r.Details = significance.Build(obs, significance.Options{
		MaxItems: b.opts.MaxItems,
		Premium:  b.opts.Premium,
		Now:      at,
	})
	for _, d := range r.Details {
		if d.Timing == nil {
			log.Debug("timing unavailable",
				zap.String("transit", string(d.TransitPlanet)),
				zap.String("natal", string(d.NatalPlanet)),
				zap.Stringer("aspect", d.Aspect))
			b.emit(telemetry.Event{Kind: telemetry.KindTimingSkipped, Chart: c.Name, Planet: string(d.TransitPlanet)})
		}
	}

	log.Info("report built",
		zap.Int("positions", len(r.Positions)),
		zap.Int("ingresses", len(r.Ingresses)),
		zap.Int("details", len(r.Details)),
		zap.Int("rejected", len(r.Rejected)))
	b.emit(telemetry.Event{
		Kind:  telemetry.KindReportBuilt,
		Chart: c.Name,
		Data: map[string]int{
			"positions":    len(r.Positions),
			"ingresses":    len(r.Ingresses),
			"observations": len(obs),
			"details":      len(r.Details),
		},
	})
	return r, nil
}

// finiteBodies splits bodies into those with a usable longitude and an error
// for each of the rest.
func finiteBodies(role string, bodies []aspect.Body) ([]aspect.Body, []error) {
	var (
		ok  []aspect.Body
		bad []error
	)
	for _, body := range bodies {
		if err := zodiac.CheckLongitude(body.Longitude); err != nil {
			bad = append(bad, fmt.Errorf("sky: %s %s: %w", role, body.Planet, err))
			continue
		}
		ok = append(ok, body)
	}
	return ok, bad
}

func (b *Builder) positions(ctx context.Context, chart string, transits []aspect.Body, at time.Time, log *zap.Logger) ([]Position, error) {
	out := make([]Position, len(transits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for i, body := range transits {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.position(body, at)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, p := range out {
		if p.DurationError != "" {
			log.Debug("duration unavailable", zap.String("planet", string(p.Planet)), zap.String("error", p.DurationError))
			b.emit(telemetry.Event{Kind: telemetry.KindDurationSkipped, Chart: chart, Planet: string(p.Planet), Data: map[string]string{"error": p.DurationError}})
		}
	}
	return out, nil
}

func (b *Builder) position(body aspect.Body, at time.Time) Position {
	sign := zodiac.SignOf(body.Longitude)
	deg := zodiac.DegreeInSign(body.Longitude)
	p := Position{
		Planet:       body.Planet,
		Sign:         sign,
		Longitude:    zodiac.Normalize(body.Longitude),
		DegreeInSign: deg,
		Retrograde:   body.Retrograde,
		CacheTTL:     duration.CacheTTL(body.Planet, body.Longitude),
		Ingress:      deg < ingressDegrees,
	}
	if b.durations == nil {
		p.DurationError = errNoComputer.Error()
		return p
	}
	d, err := b.durations.Compute(duration.Query{
		Planet:      body.Planet,
		Sign:        sign,
		Longitude:   body.Longitude,
		At:          at,
		DailyMotion: body.DailyMotion,
	})
	if err != nil {
		p.DurationError = err.Error()
		return p
	}
	p.Duration = &d
	return p
}

var errNoComputer = errors.New("sky: no duration computer")

func (b *Builder) emit(evt telemetry.Event) {
	if err := b.emitter.Emit(evt); err != nil {
		b.logger.Warn("telemetry emit failed", zap.Error(err))
	}
}
