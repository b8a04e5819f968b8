package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/aspect"
)

var timingCmd = &cobra.Command{
	Use:   "timing",
	Short: "Project when an aspect starts, perfects and ends",
	Example: `  transit timing --transit mars --natal venus --aspect square \
    --transit-lon 85 --natal-lon 0 --at 2025-03-01`,
	RunE: runTiming,
}

func init() {
	timingCmd.Flags().String("transit", "", "transiting planet")
	timingCmd.Flags().String("natal", "", "natal planet or point")
	timingCmd.Flags().String("aspect", "", "conjunction, sextile, square, trine or opposition")
	timingCmd.Flags().Float64("transit-lon", 0, "transiting planet longitude")
	timingCmd.Flags().Float64("natal-lon", 0, "natal point longitude")
	timingCmd.Flags().Float64("motion", 0, "observed daily motion in degrees/day")
	timingCmd.Flags().Int("house", 0, "natal house 1-12")
	timingCmd.Flags().String("at", "", "reference time (default: now)")
	for _, f := range []string{"transit", "natal", "aspect", "transit-lon", "natal-lon"} {
		_ = timingCmd.MarkFlagRequired(f)
	}
	rootCmd.AddCommand(timingCmd)
}

func runTiming(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	o, err := timingObservation(cmd)
	if err != nil {
		return err
	}
	at, err := timeFlag(cmd, "at")
	if err != nil {
		return err
	}
	t, err := aspect.ComputeTiming(o, at)
	if err != nil {
		return err
	}
	if e.jsonOutput() {
		return e.printer.JSON(t)
	}
	e.printer.Timing(o, t)
	return nil
}

func timingObservation(cmd *cobra.Command) (aspect.Observation, error) {
	flags := cmd.Flags()
	transit, _ := flags.GetString("transit")
	natal, _ := flags.GetString("natal")
	kind, _ := flags.GetString("aspect")
	transitLon, _ := flags.GetFloat64("transit-lon")
	natalLon, _ := flags.GetFloat64("natal-lon")
	motion, _ := flags.GetFloat64("motion")
	house, _ := flags.GetInt("house")

	return aspect.Decode(aspect.RawObservation{
		TransitPlanet:    transit,
		NatalPlanet:      natal,
		Aspect:           kind,
		TransitLongitude: &transitLon,
		NatalLongitude:   &natalLon,
		DailyMotion:      motion,
		House:            house,
	})
}
