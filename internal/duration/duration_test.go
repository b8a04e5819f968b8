package duration

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/zodiac"
)

const floatTol = 1e-6

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTol
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseTime(s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	tbl, err := ephemeris.Default()
	if err != nil {
		t.Fatalf("ephemeris.Default: %v", err)
	}
	return New(tbl)
}

func TestCompute_MoonInAries(t *testing.T) {
	t.Parallel()

	at := mustTime(t, "2025-02-01")
	d, err := New(nil).Compute(Query{Planet: zodiac.Moon, Sign: zodiac.Aries, Longitude: 15, At: at})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if d.RemainingDays <= 0 || d.RemainingDays >= 3 {
		t.Errorf("RemainingDays = %v, want within (0, 3)", d.RemainingDays)
	}
	if want := 15 / 13.176; !approxEqual(d.RemainingDays, want) {
		t.Errorf("RemainingDays = %v, want %v", d.RemainingDays, want)
	}
	if want := 30 / 13.176; !approxEqual(d.TotalDays, want) {
		t.Errorf("TotalDays = %v, want %v", d.TotalDays, want)
	}
	if !d.StartDate.Before(at) || !d.EndDate.After(at) {
		t.Errorf("window [%v, %v) should straddle %v", d.StartDate, d.EndDate, at)
	}
	if d.DisplayText != "1d left" {
		t.Errorf("DisplayText = %q, want %q", d.DisplayText, "1d left")
	}
}

func TestCompute_FastSignEdges(t *testing.T) {
	t.Parallel()

	at := mustTime(t, "2025-06-01T12:00:00Z")
	e := New(nil)

	for _, p := range []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Mercury, zodiac.Venus, zodiac.Mars} {
		t.Run(string(p), func(t *testing.T) {
			t.Parallel()
			motion, _ := p.DailyMotion()

			start, err := e.Compute(Query{Planet: p, Sign: zodiac.Leo, Longitude: 120, At: at})
			if err != nil {
				t.Fatalf("Compute at 0°: %v", err)
			}
			if want := 30 / motion; !approxEqual(start.RemainingDays, want) {
				t.Errorf("at 0° RemainingDays = %v, want %v", start.RemainingDays, want)
			}
			if !start.StartDate.Equal(at) {
				t.Errorf("at 0° StartDate = %v, want %v", start.StartDate, at)
			}

			end, err := e.Compute(Query{Planet: p, Sign: zodiac.Leo, Longitude: 149.9999999, At: at})
			if err != nil {
				t.Fatalf("Compute near 30°: %v", err)
			}
			if end.RemainingDays <= 0 || end.RemainingDays > 1e-5 {
				t.Errorf("near 30° RemainingDays = %v, want tiny positive", end.RemainingDays)
			}
		})
	}
}

func TestCompute_ObservedMotionFloor(t *testing.T) {
	t.Parallel()

	at := mustTime(t, "2025-06-01")
	e := New(nil)

	tests := []struct {
		name     string
		observed float64
		want     float64
	}{
		{"not observed", 0, 1.383},
		{"below floor", 0.5, 1.383},
		{"retrograde", -0.8, 1.383},
		{"at floor", 0.6915, 1.383},
		{"trusted", 2.0, 2.0},
		{"infinite", math.Inf(1), 1.383},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := e.Compute(Query{Planet: zodiac.Mercury, Sign: zodiac.Gemini, Longitude: 70, At: at, DailyMotion: tt.observed})
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if want := 20 / tt.want; !approxEqual(d.RemainingDays, want) {
				t.Errorf("RemainingDays = %v, want %v", d.RemainingDays, want)
			}
		})
	}
}

func TestCompute_SlowPlanet(t *testing.T) {
	t.Parallel()

	e := defaultEngine(t)
	at := mustTime(t, "2025-03-01")

	d, err := e.Compute(Query{Planet: zodiac.Jupiter, Sign: zodiac.Gemini, Longitude: 75, At: at})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if d.TotalDays <= 100 {
		t.Errorf("TotalDays = %v, want > 100", d.TotalDays)
	}
	if d.TotalDays != math.Ceil(d.TotalDays) {
		t.Errorf("TotalDays = %v, want a whole number of days", d.TotalDays)
	}
	if want := d.EndDate.Sub(at).Hours() / 24; !approxEqual(d.RemainingDays, want) {
		t.Errorf("RemainingDays = %v, want %v", d.RemainingDays, want)
	}

	_, err = e.Compute(Query{Planet: zodiac.Jupiter, Sign: zodiac.Gemini, Longitude: 75, At: mustTime(t, "2071-03-01")})
	if !errors.Is(err, ErrNoSegment) {
		t.Errorf("decades outside the table: err = %v, want ErrNoSegment", err)
	}
}

func TestCompute_SyntheticTable(t *testing.T) {
	t.Parallel()

	start := mustTime(t, "2030-01-01")
	end := mustTime(t, "2030-01-11T12:00:00Z")
	tbl, err := ephemeris.NewTable([]ephemeris.Segment{{Planet: zodiac.Saturn, Sign: zodiac.Taurus, Start: start, End: end}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	e := New(tbl)

	d, err := e.Compute(Query{Planet: zodiac.Saturn, Sign: zodiac.Taurus, Longitude: 40, At: mustTime(t, "2030-01-06")})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := Duration{
		TotalDays:     11,
		RemainingDays: 5.5,
		StartDate:     start,
		EndDate:       end,
		DisplayText:   "6d left",
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("duration mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.Compute(Query{Planet: zodiac.Saturn, Sign: zodiac.Taurus, At: end}); !errors.Is(err, ErrNoSegment) {
		t.Errorf("at segment end: err = %v, want ErrNoSegment", err)
	}
	if _, err := e.Compute(Query{Planet: zodiac.Saturn, Sign: zodiac.Gemini, At: mustTime(t, "2030-01-06")}); !errors.Is(err, ErrNoSegment) {
		t.Errorf("sign not in table: err = %v, want ErrNoSegment", err)
	}
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	e := New(nil)
	at := mustTime(t, "2025-01-01")

	tests := []struct {
		name string
		q    Query
		want error
	}{
		{"unknown planet", Query{Planet: "Chiron", Sign: zodiac.Aries, At: at}, zodiac.ErrUnknownPlanet},
		{"chart point", Query{Planet: zodiac.Ascendant, Sign: zodiac.Aries, At: at}, zodiac.ErrUnknownPlanet},
		{"unknown sign", Query{Planet: zodiac.Sun, Sign: "Ophiuchus", At: at}, zodiac.ErrUnknownSign},
		{"slow without table", Query{Planet: zodiac.Pluto, Sign: zodiac.Aquarius, At: at}, ErrNoSegment},
		{"nan longitude", Query{Planet: zodiac.Moon, Sign: zodiac.Aries, Longitude: math.NaN(), At: at}, zodiac.ErrInvalidLongitude},
		{"infinite longitude", Query{Planet: zodiac.Sun, Sign: zodiac.Aries, Longitude: math.Inf(1), At: at}, zodiac.ErrInvalidLongitude},
		{"nan longitude slow planet", Query{Planet: zodiac.Saturn, Sign: zodiac.Pisces, Longitude: math.NaN(), At: at}, zodiac.ErrInvalidLongitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := e.Compute(tt.q); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEffectiveMotion_ChartPoint(t *testing.T) {
	t.Parallel()

	if _, err := EffectiveMotion(zodiac.Midheaven, 1); !errors.Is(err, ErrInvalidMotion) {
		t.Errorf("err = %v, want ErrInvalidMotion", err)
	}
}

func TestRefresh_RoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := New(nil).Compute(Query{Planet: zodiac.Sun, Sign: zodiac.Pisces, Longitude: 340, At: mustTime(t, "2025-03-01")})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	later := mustTime(t, "2025-03-10")
	got, err := Refresh(orig.Snapshot(), later)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !got.EndDate.Equal(orig.EndDate) || got.TotalDays != orig.TotalDays {
		t.Errorf("Refresh changed the window: got %+v, orig %+v", got, orig)
	}
	if want := orig.EndDate.Sub(later).Hours() / 24; !approxEqual(got.RemainingDays, want) {
		t.Errorf("RemainingDays = %v, want %v", got.RemainingDays, want)
	}

	for _, at := range []time.Time{orig.EndDate, orig.EndDate.Add(time.Hour)} {
		if _, err := Refresh(orig.Snapshot(), at); !errors.Is(err, ErrTransitOver) {
			t.Errorf("Refresh at %v: err = %v, want ErrTransitOver", at, err)
		}
	}
	if _, err := Refresh(Snapshot{}, later); !errors.Is(err, ErrIncompleteSnapshot) {
		t.Errorf("empty snapshot: err = %v, want ErrIncompleteSnapshot", err)
	}
}

func TestRefresh_FromJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		end  string
	}{
		{"rfc3339", `{"startDate":"2025-01-01T00:00:00Z","endDate":"2025-02-01T06:00:00Z","totalDays":31.25}`, "2025-02-01T06:00:00Z"},
		{"fractional", `{"startDate":"2025-01-01T00:00:00.5Z","endDate":"2025-02-01T06:00:00.000Z","totalDays":31.25}`, "2025-02-01T06:00:00Z"},
		{"naive", `{"startDate":"2025-01-01T00:00:00","endDate":"2025-02-01T06:00:00","totalDays":31.25}`, "2025-02-01T06:00:00Z"},
		{"date only", `{"startDate":"2025-01-01","endDate":"2025-02-01","totalDays":31}`, "2025-02-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var s Snapshot
			if err := json.Unmarshal([]byte(tt.json), &s); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !s.EndDate.Equal(mustTime(t, tt.end)) {
				t.Errorf("EndDate = %v, want %s", s.EndDate, tt.end)
			}
			d, err := Refresh(s, mustTime(t, "2025-01-20"))
			if err != nil {
				t.Fatalf("Refresh: %v", err)
			}
			if d.RemainingDays <= 0 {
				t.Errorf("RemainingDays = %v, want positive", d.RemainingDays)
			}
		})
	}
}

func TestSnapshot_UnmarshalErrors(t *testing.T) {
	t.Parallel()

	var s Snapshot
	if err := json.Unmarshal([]byte(`{"startDate":"2025-01-01"}`), &s); !errors.Is(err, ErrIncompleteSnapshot) {
		t.Errorf("missing end: err = %v, want ErrIncompleteSnapshot", err)
	}
	if err := json.Unmarshal([]byte(`{"endDate":"next tuesday"}`), &s); err == nil {
		t.Error("unparseable date should fail")
	}
}

func TestDurationJSONRoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := New(nil).Compute(Query{Planet: zodiac.Venus, Sign: zodiac.Libra, Longitude: 190, At: mustTime(t, "2025-09-01")})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(orig.Snapshot(), s); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheTTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		planet zodiac.Planet
		lon    float64
		want   time.Duration
	}{
		{zodiac.Moon, 15, 15 * time.Minute},
		{zodiac.Moon, 29, 15 * time.Minute / 4},
		{zodiac.Mars, 30.5, 90 * time.Minute},
		{zodiac.Saturn, 358, 42 * time.Hour},
		{zodiac.Pluto, 310, 30 * day},
		{"Chiron", 10, time.Hour},
	}
	for _, tt := range tests {
		if got := CacheTTL(tt.planet, tt.lon); got != tt.want {
			t.Errorf("CacheTTL(%s, %v) = %v, want %v", tt.planet, tt.lon, got, tt.want)
		}
	}
}
