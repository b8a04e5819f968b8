package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/zodiac"
)

var durationCmd = &cobra.Command{
	Use:   "duration",
	Short: "Report how long a planet stays in its current sign",
	Long: `Computes the sign window of a planet at a reference time.

Fast planets (Sun through Mars) use their longitude and daily motion.
Slow planets (Jupiter through Pluto) use the segment table; without --sign
their sign is the one the table places them in at --at.`,
	Example: `  transit duration --planet moon --longitude 15
  transit duration --planet jupiter --longitude 71 --at 2025-03-01`,
	RunE: runDuration,
}

func init() {
	durationCmd.Flags().String("planet", "", "transiting planet")
	durationCmd.Flags().String("sign", "", "current sign (default: derived from --longitude)")
	durationCmd.Flags().Float64("longitude", 0, "ecliptic longitude in degrees")
	durationCmd.Flags().String("at", "", "reference time (default: now)")
	durationCmd.Flags().Float64("motion", 0, "observed daily motion in degrees/day")
	_ = durationCmd.MarkFlagRequired("planet")
	rootCmd.AddCommand(durationCmd)
}

func runDuration(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	q, err := durationQuery(cmd, e.segments)
	if err != nil {
		return err
	}
	d, err := e.engine().Compute(q)
	if err != nil {
		return err
	}
	if e.jsonOutput() {
		return e.printer.JSON(d)
	}
	e.printer.Duration(q.Planet, q.Sign, d)
	return nil
}

func durationQuery(cmd *cobra.Command, segments *ephemeris.Table) (duration.Query, error) {
	name, _ := cmd.Flags().GetString("planet")
	planet, err := zodiac.ParsePlanet(name)
	if err != nil {
		return duration.Query{}, err
	}
	lon, _ := cmd.Flags().GetFloat64("longitude")
	motion, _ := cmd.Flags().GetFloat64("motion")
	at, err := timeFlag(cmd, "at")
	if err != nil {
		return duration.Query{}, err
	}

	sign := zodiac.SignOf(lon)
	if s, _ := cmd.Flags().GetString("sign"); s != "" {
		if sign, err = zodiac.ParseSign(s); err != nil {
			return duration.Query{}, fmt.Errorf("--sign: %w", err)
		}
	} else if planet.IsSlow() {
		if seg, ok := segments.Current(planet, at); ok {
			sign = seg.Sign
		}
	}
	return duration.Query{Planet: planet, Sign: sign, Longitude: lon, At: at, DailyMotion: motion}, nil
}
