package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/telemetry"
	"github.com/papapumpkin/transit/internal/zodiac"
)

var errWatchNeedsPath = errors.New("--watch needs a segment table file (--segments or segments_path)")

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List the slow-planet segment table",
	Long: `Lists the sign segments used for Jupiter through Pluto, marking the ones
in effect at the reference time. With --toml, the listing is written in the
table file format so it can seed a custom --segments file. With --watch, the table file is reloaded
and reprinted whenever it changes.`,
	RunE: runSegments,
}

func init() {
	segmentsCmd.Flags().String("planet", "", "only list this planet")
	segmentsCmd.Flags().String("at", "", "reference time for the current marker (default: now)")
	segmentsCmd.Flags().Bool("watch", false, "reload and reprint on file changes")
	segmentsCmd.Flags().Bool("toml", false, "print the segments as a TOML table file")
	rootCmd.AddCommand(segmentsCmd)
}

func runSegments(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	var planets []zodiac.Planet
	if name, _ := cmd.Flags().GetString("planet"); name != "" {
		p, err := zodiac.ParsePlanet(name)
		if err != nil {
			return err
		}
		planets = []zodiac.Planet{p}
	} else {
		for _, p := range zodiac.Bodies {
			if p.IsSlow() {
				planets = append(planets, p)
			}
		}
	}

	show := func(tbl *ephemeris.Table) error {
		at, err := timeFlag(cmd, "at")
		if err != nil {
			return err
		}
		var segs []ephemeris.Segment
		for _, p := range planets {
			segs = append(segs, tbl.Segments(p)...)
		}
		if asTOML, _ := cmd.Flags().GetBool("toml"); asTOML {
			data, err := ephemeris.Encode(segs)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if e.jsonOutput() {
			return e.printer.JSON(segs)
		}
		e.printer.Segments(segs, at)
		return nil
	}
	if err := show(e.segments); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}
	if e.cfg.SegmentsPath == "" {
		return errWatchNeedsPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watchSegments(ctx, e, show)
}

func watchSegments(ctx context.Context, e *env, show func(*ephemeris.Table) error) error {
	w, err := ephemeris.NewWatcher(e.cfg.SegmentsPath)
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		return err
	}
	e.printer.Info("watching " + e.cfg.SegmentsPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-w.Reloads:
			if !ok {
				return nil
			}
			e.printer.Reloaded(r)
			if r.Err != nil {
				e.logger.Warn("segment reload failed", zap.Error(r.Err))
				continue
			}
			e.emit(telemetry.Event{Kind: telemetry.KindSegmentsReloaded, Data: map[string]int{"segments": r.Table.Len()}})
			if err := show(r.Table); err != nil {
				return err
			}
		}
	}
}
