package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/duration"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute the remaining time of a stored duration",
	Long: `Takes the start, end and total days of a previously computed duration and
reports the time remaining at a new reference time. Fails once the end has passed.`,
	Example: `  transit refresh --start 2024-05-25T23:15:00Z --end 2025-06-09T21:02:00Z --total 381`,
	RunE:    runRefresh,
}

func init() {
	refreshCmd.Flags().String("start", "", "stored start date")
	refreshCmd.Flags().String("end", "", "stored end date")
	refreshCmd.Flags().Float64("total", 0, "stored total days")
	refreshCmd.Flags().String("at", "", "reference time (default: now)")
	_ = refreshCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	total, _ := cmd.Flags().GetFloat64("total")
	snap, err := duration.ParseSnapshot(start, end, total)
	if err != nil {
		return err
	}
	at, err := timeFlag(cmd, "at")
	if err != nil {
		return err
	}

	d, err := duration.Refresh(snap, at)
	if err != nil {
		return err
	}
	if e.jsonOutput() {
		return e.printer.JSON(d)
	}
	e.printer.Refreshed(d)
	return nil
}
