// Package ui renders durations, aspect timings, reports and segment tables
// for the terminal, and JSON records for machine consumers.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/display"
	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/significance"
	"github.com/papapumpkin/transit/internal/sky"
	"github.com/papapumpkin/transit/internal/zodiac"
)

const dateLayout = "2006-01-02 15:04 MST"

// Printer writes human-readable output to out and diagnostics to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a Printer over the given writers.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Error prints a diagnostic line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", styleError.Render("error:"), msg)
}

// Info prints a dim diagnostic line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.errOut, styleDim.Render(msg))
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("ui: encode json: %w", err)
	}
	return nil
}

// Duration prints how long planet stays in sign.
func (p *Printer) Duration(planet zodiac.Planet, sign zodiac.Sign, d duration.Duration) {
	fmt.Fprintf(p.out, "%s in %s  %s\n",
		styleHeading.Render(string(planet)), styleValue.Render(string(sign)), styleIngress.Render(d.DisplayText))
	p.field("window", fmt.Sprintf("%s to %s", d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout)))
	p.field("total", fmt.Sprintf("%.1f days", d.TotalDays))
	p.field("remaining", fmt.Sprintf("%.2f days", d.RemainingDays))
}

// Refreshed prints a stored duration with its recomputed remaining time.
func (p *Printer) Refreshed(d duration.Duration) {
	fmt.Fprintln(p.out, styleIngress.Render(d.DisplayText))
	p.field("window", fmt.Sprintf("%s to %s", d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout)))
	p.field("remaining", fmt.Sprintf("%.2f days", d.RemainingDays))
}

// Timing prints the projected window of an aspect.
func (p *Printer) Timing(o aspect.Observation, t aspect.Timing) {
	phase := "separating"
	if t.IsApplying {
		phase = "applying"
	}
	fmt.Fprintf(p.out, "%s  %s  %s\n", aspectLine(o), styleDim.Render(phase), styleIngress.Render(t.DisplayText))
	ts, tok := o.TransitSign()
	ns, nok := o.NatalSign()
	if tok && nok {
		p.field("signs", fmt.Sprintf("%s to natal %s", ts, ns))
	}
	p.field("start", t.StartDate.Format(dateLayout))
	p.field("exact", t.ExactDate.Format(dateLayout))
	p.field("end", t.EndDate.Format(dateLayout))
	p.field("span", fmt.Sprintf("%.1f days", t.TotalDays))
}

// Report prints a full chart report.
func (p *Printer) Report(r sky.Report) {
	title := "Transits"
	if r.Chart != "" {
		title += " for " + r.Chart
	}
	fmt.Fprintf(p.out, "%s  %s\n\n", styleHeading.Render(title), styleDim.Render(r.At.Format(dateLayout)))

	fmt.Fprintln(p.out, styleHeading.Render("Positions"))
	for _, pos := range r.Positions {
		p.position(pos)
	}

	if len(r.Ingresses) > 0 {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, styleHeading.Render("Ingresses"))
		for _, pos := range r.Ingresses {
			fmt.Fprintf(p.out, "  %s %s\n", styleIngress.Render("→"), fmt.Sprintf("%s just entered %s", pos.Planet, pos.Sign))
		}
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, styleHeading.Render("Aspects"))
	if len(r.Details) == 0 {
		fmt.Fprintln(p.out, styleDim.Render("  No significant aspects between today's transits and the natal chart."))
	}
	for _, d := range r.Details {
		p.detail(d)
	}

	for _, msg := range r.Rejected {
		p.Info("skipped " + msg)
	}
}

func (p *Printer) position(pos sky.Position) {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-10s %s", pos.Planet, display.Degrees(pos.Longitude))
	if pos.Retrograde {
		b.WriteString(" ℞")
	}
	line := styleValue.Render(b.String())
	if pos.Duration != nil {
		line += "  " + styleLabel.Render(pos.Duration.DisplayText)
	}
	fmt.Fprintln(p.out, line)
}

func (p *Printer) detail(d significance.Detail) {
	header := fmt.Sprintf("  %s  %s", aspectLine(d.Observation), styleDim.Render(fmt.Sprintf("%.1f°", d.Orb)))
	if d.Intensity == significance.Exact {
		header += " " + styleExactTag.Render("exact")
	}
	fmt.Fprintln(p.out, header)
	p.field("level", fmt.Sprintf("%s (%s)", d.Level, d.Intensity))
	p.field("themes", strings.Join(d.Themes, ", "))
	p.field("cycle", d.TransitCycle)
	if d.Timing != nil {
		p.field("window", fmt.Sprintf("%s to %s, %s", d.Timing.StartDate.Format("Jan 2"), d.Timing.EndDate.Format("Jan 2"), d.Timing.DisplayText))
	}
	if d.HouseMeaning != "" {
		p.field("house", fmt.Sprintf("%d: %s", d.House, d.HouseMeaning))
	}
	for _, s := range []string{d.NatalContext, d.OrbExplanation, d.TimingSummary, d.PastPattern} {
		if s != "" {
			fmt.Fprintln(p.out, styleNote.Render(s))
		}
	}
	for _, s := range d.StackingNotes {
		fmt.Fprintln(p.out, styleNote.Render("✦ "+s))
	}
}

// Segments prints a segment table, marking the segments that contain at.
func (p *Printer) Segments(segs []ephemeris.Segment, at time.Time) {
	for _, s := range segs {
		marker := " "
		if s.Contains(at) {
			marker = styleIngress.Render("●")
		}
		fmt.Fprintf(p.out, "%s %-8s %-12s %s → %s  %s\n", marker,
			s.Planet, s.Sign, s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"),
			styleDim.Render(fmt.Sprintf("%.0fd", s.Days())))
	}
}

// Reloaded reports the outcome of a segment table reload.
func (p *Printer) Reloaded(r ephemeris.Reload) {
	if r.Err != nil {
		p.Error(fmt.Sprintf("reload failed: %v", r.Err))
		return
	}
	p.Info(fmt.Sprintf("reloaded %d segments at %s", r.Table.Len(), r.At.Format(time.TimeOnly)))
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.out, "    %s %s\n", styleLabel.Render(label+":"), styleValue.Render(value))
}

func aspectLine(o aspect.Observation) string {
	style := styleFocus
	switch o.Aspect {
	case zodiac.Square, zodiac.Opposition:
		style = styleHard
	case zodiac.Trine, zodiac.Sextile:
		style = styleSoft
	}
	return fmt.Sprintf("%s %s %s",
		styleValue.Render(string(o.TransitPlanet)),
		style.Render(o.Aspect.Symbol()+" "+o.Aspect.String()),
		styleValue.Render("natal "+string(o.NatalPlanet)))
}
