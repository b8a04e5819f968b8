package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/transit/internal/config"
	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/ephemeris"
	"github.com/papapumpkin/transit/internal/logging"
	"github.com/papapumpkin/transit/internal/telemetry"
	"github.com/papapumpkin/transit/internal/ui"
)

// env bundles the collaborators every command needs.
type env struct {
	cfg      config.Config
	logger   *zap.Logger
	emitter  *telemetry.Emitter
	segments *ephemeris.Table
	printer  *ui.Printer
}

// setup loads configuration and builds the logger, telemetry emitter,
// segment table and printer. Callers must call close.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	e := &env{
		cfg:     cfg,
		logger:  logger,
		printer: ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}
	if cfg.TelemetryPath != "" {
		if e.emitter, err = telemetry.NewEmitter(cfg.TelemetryPath); err != nil {
			e.close()
			return nil, err
		}
	}
	if e.segments, err = ephemeris.Load(cfg.SegmentsPath); err != nil {
		e.close()
		return nil, fmt.Errorf("load segments: %w", err)
	}
	logger.Debug("segments loaded", zap.String("path", cfg.SegmentsPath), zap.Int("count", e.segments.Len()))
	return e, nil
}

func (e *env) close() {
	if err := e.emitter.Close(); err != nil {
		e.logger.Warn("closing telemetry", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func (e *env) engine() *duration.Engine {
	return duration.New(e.segments)
}

// emit records evt, logging a failure instead of returning it.
func (e *env) emit(evt telemetry.Event) {
	if err := e.emitter.Emit(evt); err != nil {
		e.logger.Warn("telemetry emit failed", zap.Error(err))
	}
}

func (e *env) jsonOutput() bool {
	return e.cfg.Output == config.OutputJSON
}

// timeFlag parses a time flag, defaulting to now when empty.
func timeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := duration.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}
