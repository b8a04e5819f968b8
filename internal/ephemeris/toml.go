package ephemeris

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/transit/internal/zodiac"
)

//go:embed segments.toml
var defaultSegments []byte

// document mirrors the on-disk layout: a list of [[segment]] tables.
type document struct {
	Segments []record `toml:"segment"`
}

// record is one [[segment]] entry before name resolution.
type record struct {
	Planet string    `toml:"planet"`
	Sign   string    `toml:"sign"`
	Start  time.Time `toml:"start"`
	End    time.Time `toml:"end"`
}

// Default returns the table compiled into the binary, covering the slow
// planet ingresses from 2008 through 2043.
func Default() (*Table, error) {
	t, err := Parse(defaultSegments)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: built-in table: %w", err)
	}
	return t, nil
}

// Load reads a segment table from a TOML file. An empty path selects the
// built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: reading %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes TOML segment data and builds a validated Table. Planet and
// sign names are matched case-insensitively.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing segments: %w", err)
	}

	segs := make([]Segment, 0, len(doc.Segments))
	for i, r := range doc.Segments {
		planet, err := zodiac.ParsePlanet(r.Planet)
		if err != nil {
			return nil, &SegmentError{Index: i, Planet: zodiac.Planet(r.Planet), Sign: zodiac.Sign(r.Sign), Err: err}
		}
		sign, err := zodiac.ParseSign(r.Sign)
		if err != nil {
			return nil, &SegmentError{Index: i, Planet: planet, Sign: zodiac.Sign(r.Sign), Err: err}
		}
		segs = append(segs, Segment{Planet: planet, Sign: sign, Start: r.Start.UTC(), End: r.End.UTC()})
	}
	return NewTable(segs)
}

// Encode renders segs in the same TOML layout Parse accepts.
func Encode(segs []Segment) ([]byte, error) {
	doc := document{Segments: make([]record, 0, len(segs))}
	for _, s := range segs {
		doc.Segments = append(doc.Segments, record{
			Planet: string(s.Planet),
			Sign:   string(s.Sign),
			Start:  s.Start.UTC(),
			End:    s.End.UTC(),
		})
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: marshaling segments: %w", err)
	}
	return data, nil
}
