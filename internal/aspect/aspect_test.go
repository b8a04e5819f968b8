package aspect

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/transit/internal/zodiac"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 { return &f }

func TestComputeTiming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		transitLon float64
		applying   bool
		start      time.Time
		exact      time.Time
		end        time.Time
		remaining  float64
		display    string
	}{
		{
			name:       "applying square",
			transitLon: 85,
			applying:   true,
			start:      now.Add(-3 * day),
			exact:      now.Add(5 * day),
			end:        now.Add(13 * day),
			remaining:  13,
			display:    "13d left",
		},
		{
			name:       "separating square",
			transitLon: 95,
			applying:   false,
			start:      now.Add(-13 * day),
			exact:      now.Add(-5 * day),
			end:        now.Add(3 * day),
			remaining:  3,
			display:    "3d left",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			obs := Observation{
				TransitPlanet:    zodiac.Sun,
				NatalPlanet:      zodiac.Moon,
				Aspect:           zodiac.Square,
				Orb:              5,
				TransitLongitude: ptr(tc.transitLon),
				NatalLongitude:   ptr(0),
				DailyMotion:      1,
			}
			got, err := ComputeTiming(obs, now)
			if err != nil {
				t.Fatalf("ComputeTiming: %v", err)
			}
			want := Timing{
				StartDate:     tc.start,
				ExactDate:     tc.exact,
				EndDate:       tc.end,
				IsApplying:    tc.applying,
				TotalDays:     16,
				RemainingDays: tc.remaining,
				DisplayText:   tc.display,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("timing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeTiming_WindowOrdering(t *testing.T) {
	t.Parallel()

	for _, lon := range []float64{3, 117, 125, 178, 184, 301, 359} {
		obs := Observation{
			TransitPlanet:    zodiac.Mars,
			NatalPlanet:      zodiac.Venus,
			TransitLongitude: ptr(lon),
			NatalLongitude:   ptr(0),
		}
		for _, kind := range zodiac.Aspects {
			obs.Aspect = kind
			got, err := ComputeTiming(obs, now)
			if errors.Is(err, ErrOutOfOrb) {
				continue
			}
			if err != nil {
				t.Fatalf("lon %v %s: %v", lon, kind, err)
			}
			if !got.StartDate.Before(got.EndDate) {
				t.Errorf("lon %v %s: start %v not before end %v", lon, kind, got.StartDate, got.EndDate)
			}
			if got.ExactDate.Before(got.StartDate) || got.ExactDate.After(got.EndDate) {
				t.Errorf("lon %v %s: exact %v outside window", lon, kind, got.ExactDate)
			}
			if got.IsApplying != got.ExactDate.After(now) {
				t.Errorf("lon %v %s: applying=%v but exact %v", lon, kind, got.IsApplying, got.ExactDate)
			}
			if want := 2 * kind.MaxOrb() / 0.524; math.Abs(got.TotalDays-want) > 1e-9 {
				t.Errorf("lon %v %s: TotalDays = %v, want %v", lon, kind, got.TotalDays, want)
			}
		}
	}
}

func TestComputeTiming_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obs  Observation
		want error
	}{
		{
			name: "no transit longitude",
			obs:  Observation{TransitPlanet: zodiac.Sun, NatalPlanet: zodiac.Moon, Aspect: zodiac.Trine, NatalLongitude: ptr(0)},
			want: ErrMissingLongitude,
		},
		{
			name: "no natal longitude",
			obs:  Observation{TransitPlanet: zodiac.Sun, NatalPlanet: zodiac.Moon, Aspect: zodiac.Trine, TransitLongitude: ptr(120)},
			want: ErrMissingLongitude,
		},
		{
			name: "chart point has no motion",
			obs:  Observation{TransitPlanet: zodiac.Ascendant, NatalPlanet: zodiac.Moon, Aspect: zodiac.Trine, TransitLongitude: ptr(120), NatalLongitude: ptr(0)},
			want: ErrNoMotion,
		},
		{
			name: "unknown transit planet",
			obs:  Observation{TransitPlanet: "Vulcan", NatalPlanet: zodiac.Moon, Aspect: zodiac.Trine, TransitLongitude: ptr(120), NatalLongitude: ptr(0)},
			want: ErrNoMotion,
		},
		{
			name: "wider than max orb",
			obs:  Observation{TransitPlanet: zodiac.Sun, NatalPlanet: zodiac.Moon, Aspect: zodiac.Square, TransitLongitude: ptr(80), NatalLongitude: ptr(0)},
			want: ErrOutOfOrb,
		},
		{
			name: "nan transit longitude",
			obs:  Observation{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Sun, Aspect: zodiac.Conjunction, TransitLongitude: ptr(math.NaN()), NatalLongitude: ptr(0)},
			want: zodiac.ErrInvalidLongitude,
		},
		{
			name: "infinite natal longitude",
			obs:  Observation{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Sun, Aspect: zodiac.Conjunction, TransitLongitude: ptr(0), NatalLongitude: ptr(math.Inf(-1))},
			want: zodiac.ErrInvalidLongitude,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ComputeTiming(tc.obs, now); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestComputeTiming_SlowObservedMotionIgnored(t *testing.T) {
	t.Parallel()

	base := Observation{
		TransitPlanet:    zodiac.Sun,
		NatalPlanet:      zodiac.Moon,
		Aspect:           zodiac.Conjunction,
		TransitLongitude: ptr(355),
		NatalLongitude:   ptr(0),
	}
	avg, err := ComputeTiming(base, now)
	if err != nil {
		t.Fatal(err)
	}
	stationary := base
	stationary.DailyMotion = 0.1
	got, err := ComputeTiming(stationary, now)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(avg, got); diff != "" {
		t.Errorf("near-stationary motion should fall back to the average (-want +got):\n%s", diff)
	}
	if !got.IsApplying {
		t.Error("355° approaching 0° should be applying across the 0° boundary")
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	got, err := Decode(RawObservation{TransitPlanet: " mars", NatalPlanet: "SUN", Aspect: "Square", Orb: ptr(2.5), House: 10})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Observation{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Sun, Aspect: zodiac.Square, Orb: 2.5, House: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_OrbFromLongitudes(t *testing.T) {
	t.Parallel()

	got, err := Decode(RawObservation{TransitPlanet: "Saturn", NatalPlanet: "Chiron", Aspect: "square", TransitLongitude: ptr(95), NatalLongitude: ptr(0)})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Orb != 5 {
		t.Errorf("Orb = %v, want 5", got.Orb)
	}
	if got.NatalPlanet != "Chiron" || got.NatalPlanet.Known() {
		t.Errorf("NatalPlanet = %q, want unknown point Chiron", got.NatalPlanet)
	}
	if s, ok := got.TransitSign(); !ok || s != zodiac.Cancer {
		t.Errorf("TransitSign = %v, %v; want Cancer", s, ok)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawObservation
		want error
	}{
		{"empty transit", RawObservation{NatalPlanet: "Sun", Aspect: "trine", Orb: ptr(1)}, ErrMissingPlanet},
		{"empty natal", RawObservation{TransitPlanet: "Sun", Aspect: "trine", Orb: ptr(1)}, ErrMissingPlanet},
		{"missing aspect", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Orb: ptr(1)}, ErrMissingAspect},
		{"unknown aspect", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "quincunx", Orb: ptr(1)}, zodiac.ErrUnknownAspect},
		{"negative orb", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine", Orb: ptr(-1)}, ErrInvalidOrb},
		{"nan orb", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine", Orb: ptr(math.NaN())}, ErrInvalidOrb},
		{"no orb source", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine"}, ErrInvalidOrb},
		{"nan longitude with orb", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine", Orb: ptr(1), TransitLongitude: ptr(math.NaN())}, zodiac.ErrInvalidLongitude},
		{"infinite longitudes derive no orb", RawObservation{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine", TransitLongitude: ptr(math.Inf(1)), NatalLongitude: ptr(0)}, zodiac.ErrInvalidLongitude},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tc.raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err %T is not *DecodeError", err)
			}
			if de.Transit != tc.raw.TransitPlanet || de.Natal != tc.raw.NatalPlanet {
				t.Errorf("DecodeError names = %q/%q, want %q/%q", de.Transit, de.Natal, tc.raw.TransitPlanet, tc.raw.NatalPlanet)
			}
		})
	}
}

func TestDecodeAll(t *testing.T) {
	t.Parallel()

	obs, errs := DecodeAll([]RawObservation{
		{TransitPlanet: "Sun", NatalPlanet: "Moon", Aspect: "trine", Orb: ptr(1)},
		{TransitPlanet: "Sun", Aspect: "trine", Orb: ptr(1)},
		{TransitPlanet: "Venus", NatalPlanet: "Mars", Aspect: "sextile", Orb: ptr(3)},
	})
	if len(obs) != 2 || len(errs) != 1 {
		t.Fatalf("got %d observations and %d errors, want 2 and 1", len(obs), len(errs))
	}
	if !errors.Is(errs[0], ErrMissingPlanet) {
		t.Errorf("errs[0] = %v, want ErrMissingPlanet", errs[0])
	}
}

func TestHasHouse(t *testing.T) {
	t.Parallel()

	for house, want := range map[int]bool{0: false, 1: true, 12: true, 13: false, -2: false} {
		if got := (Observation{House: house}).HasHouse(); got != want {
			t.Errorf("HasHouse(%d) = %v, want %v", house, got, want)
		}
	}
}

type pairing struct {
	Transit zodiac.Planet
	Natal   zodiac.Planet
	Aspect  zodiac.Aspect
	Orb     float64
}

func TestDetect(t *testing.T) {
	t.Parallel()

	transits := []Body{
		{Planet: zodiac.Sun, Longitude: 10},
		{Planet: zodiac.Mars, Longitude: 100, DailyMotion: 0.6},
	}
	natal := []Body{
		{Planet: zodiac.Sun, Longitude: 5, House: 1},
		{Planet: zodiac.Moon, Longitude: 190, House: 7},
		{Planet: "Chiron", Longitude: 10},
		{Planet: "North Node", Longitude: 100},
	}

	got := Detect(transits, natal)
	var pairs []pairing
	for _, o := range got {
		pairs = append(pairs, pairing{o.TransitPlanet, o.NatalPlanet, o.Aspect, o.Orb})
	}
	want := []pairing{
		{zodiac.Mars, zodiac.Moon, zodiac.Square, 0},
		{zodiac.Sun, zodiac.Moon, zodiac.Opposition, 0},
		{zodiac.Mars, zodiac.Sun, zodiac.Square, 5},
		{zodiac.Sun, zodiac.Sun, zodiac.Conjunction, 5},
	}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("Detect mismatch (-want +got):\n%s", diff)
	}

	if got[0].DailyMotion != 0.6 || got[0].House != 7 {
		t.Errorf("motion/house not carried: %+v", got[0])
	}
	if got[0].TransitLongitude == nil || *got[0].TransitLongitude != 100 {
		t.Errorf("TransitLongitude = %v, want 100", got[0].TransitLongitude)
	}
	for _, o := range got {
		if err := o.Validate(); err != nil {
			t.Errorf("detected observation invalid: %v", err)
		}
	}
}

func TestDetect_NoAspects(t *testing.T) {
	t.Parallel()

	got := Detect([]Body{{Planet: zodiac.Sun, Longitude: 30}}, []Body{{Planet: zodiac.Moon, Longitude: 0}})
	if len(got) != 0 {
		t.Errorf("30° apart should form no major aspect, got %+v", got)
	}
}

func TestDetect_SkipsNonFiniteLongitudes(t *testing.T) {
	t.Parallel()

	transits := []Body{
		{Planet: zodiac.Sun, Longitude: math.NaN()},
		{Planet: zodiac.Mars, Longitude: 90},
	}
	natal := []Body{
		{Planet: zodiac.Moon, Longitude: math.Inf(1)},
		{Planet: zodiac.Venus, Longitude: 0},
	}
	got := Detect(transits, natal)
	if len(got) != 1 || got[0].TransitPlanet != zodiac.Mars || got[0].NatalPlanet != zodiac.Venus {
		t.Errorf("expected only Mars square Venus, got %+v", got)
	}
}

func TestSortByOrb_IndependentOfInputOrder(t *testing.T) {
	t.Parallel()

	a := []Observation{
		{TransitPlanet: zodiac.Saturn, NatalPlanet: zodiac.Sun, Aspect: zodiac.Trine, Orb: 2},
		{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Sun, Aspect: zodiac.Trine, Orb: 2},
		{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Moon, Aspect: zodiac.Square, Orb: 1},
		{TransitPlanet: zodiac.Mars, NatalPlanet: zodiac.Moon, Aspect: zodiac.Square, Orb: 1, House: 4},
	}
	b := []Observation{a[3], a[1], a[0], a[2]}
	SortByOrb(a)
	SortByOrb(b)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("sort depends on input order (-a +b):\n%s", diff)
	}
	if a[0].House != 0 || a[2].TransitPlanet != zodiac.Mars {
		t.Errorf("unexpected order: %+v", a)
	}
}
