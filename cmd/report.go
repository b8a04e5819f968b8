package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/sky"
)

var reportCmd = &cobra.Command{
	Use:   "report CHART",
	Short: "Build a ranked transit report for a chart file",
	Long: `Reads a YAML or JSON chart with the current transits, natal points and
optional explicit aspect observations, then reports sign durations, fresh
ingresses and the most significant aspects.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("json", false, "print the report as JSON")
	reportCmd.Flags().Int("max-items", 0, "number of aspects to report (default from config)")
	reportCmd.Flags().Bool("free", false, "omit premium annotations")
	reportCmd.Flags().String("at", "", "override the chart's reference time")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	chart, err := sky.LoadChart(args[0])
	if err != nil {
		return err
	}
	if s, _ := cmd.Flags().GetString("at"); s != "" {
		if chart.At, err = timeFlag(cmd, "at"); err != nil {
			return err
		}
	}

	opts := sky.Options{
		Concurrency: e.cfg.Concurrency,
		MaxItems:    e.cfg.MaxItems,
		Premium:     e.cfg.Premium,
	}
	if cmd.Flags().Changed("max-items") {
		opts.MaxItems, _ = cmd.Flags().GetInt("max-items")
	}
	if free, _ := cmd.Flags().GetBool("free"); free {
		opts.Premium = false
	}

	b := sky.NewBuilder(e.engine(), e.logger, e.emitter, opts)
	r, err := b.Build(cmd.Context(), chart)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON || e.jsonOutput() {
		return e.printer.JSON(r)
	}
	e.printer.Report(r)
	return nil
}
