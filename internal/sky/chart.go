package sky

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/zodiac"
)

// Chart is the input to a report: the reference time, the current positions
// of transiting bodies, the natal points, and any caller-supplied aspect
// observations.
type Chart struct {
	Name         string                  `json:"name,omitempty" yaml:"name,omitempty"`
	At           time.Time               `json:"at" yaml:"at"`
	Transits     []aspect.Body           `json:"transits" yaml:"transits"`
	Natal        []aspect.Body           `json:"natal" yaml:"natal"`
	Observations []aspect.RawObservation `json:"observations,omitempty" yaml:"observations,omitempty"`
}

type chartDocument struct {
	Name         string                  `yaml:"name"`
	At           string                  `yaml:"at"`
	Transits     []aspect.Body           `yaml:"transits"`
	Natal        []aspect.Body           `yaml:"natal"`
	Observations []aspect.RawObservation `yaml:"observations"`
}

// ParseChart decodes a YAML or JSON chart. Planet names are matched
// case-insensitively; unknown names are kept as given. An empty at field
// leaves Chart.At zero.
func ParseChart(data []byte) (Chart, error) {
	var doc chartDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Chart{}, fmt.Errorf("sky: parse chart: %w", err)
	}
	c := Chart{
		Name:         doc.Name,
		Transits:     canonicalBodies(doc.Transits),
		Natal:        canonicalBodies(doc.Natal),
		Observations: doc.Observations,
	}
	if doc.At != "" {
		at, err := duration.ParseTime(doc.At)
		if err != nil {
			return Chart{}, fmt.Errorf("sky: parse chart at: %w", err)
		}
		c.At = at
	}
	return c, nil
}

// LoadChart reads and parses the chart file at path. The chart name defaults
// to the path.
func LoadChart(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("sky: read chart %s: %w", path, err)
	}
	c, err := ParseChart(data)
	if err != nil {
		return Chart{}, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = path
	}
	return c, nil
}

func canonicalBodies(in []aspect.Body) []aspect.Body {
	out := make([]aspect.Body, len(in))
	for i, b := range in {
		if p, err := zodiac.ParsePlanet(string(b.Planet)); err == nil {
			b.Planet = p
		}
		out[i] = b
	}
	return out
}
