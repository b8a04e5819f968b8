package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/config"
	"github.com/papapumpkin/transit/internal/telemetry"
)

var errNoTelemetryPath = errors.New("telemetry: no file given and telemetry_path is not set")

var telemetryCmd = &cobra.Command{
	Use:   "telemetry [FILE]",
	Short: "View JSONL telemetry events",
	Long: `Formats the JSONL event log written with --telemetry.

Without FILE, reads the configured telemetry_path. --summary prints one count
per event kind instead of the events. --follow (-f) keeps printing events as
they are appended, until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	telemetryCmd.Flags().String("kind", "", "only show events of this kind")
	telemetryCmd.Flags().Bool("summary", false, "count events per kind")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	kind, _ := cmd.Flags().GetString("kind")
	summary, _ := cmd.Flags().GetBool("summary")

	path, err := resolveTelemetryPath(args)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	w := cmd.OutOrStdout()
	if summary {
		counts, err := countKinds(f)
		if err != nil {
			return fmt.Errorf("telemetry: read %s: %w", path, err)
		}
		for _, k := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(w, "%-22s %d\n", k, counts[k])
		}
		return nil
	}

	// A single reader serves both the backlog and the followed tail so no
	// buffered bytes are lost between them.
	r := bufio.NewReader(f)
	if err := eachLine(r, func(line string) { printEvent(w, line, kind) }); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}
	if !follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return tailFollow(ctx, w, r, path, kind)
}

// eachLine calls fn for every non-blank line until r is exhausted.
func eachLine(r *bufio.Reader, fn func(string)) error {
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			fn(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// countKinds tallies events by kind. Undecodable lines count as "invalid".
func countKinds(r io.Reader) (map[string]int, error) {
	counts := make(map[string]int)
	err := eachLine(bufio.NewReader(r), func(line string) {
		var evt telemetry.Event
		if json.Unmarshal([]byte(line), &evt) != nil {
			counts["invalid"]++
			return
		}
		counts[evt.Kind]++
	})
	return counts, err
}

// tailFollow prints events appended to path until ctx is done.
func tailFollow(ctx context.Context, w io.Writer, r *bufio.Reader, path, kind string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := eachLine(r, func(line string) { printEvent(w, line, kind) }); err != nil {
				return fmt.Errorf("telemetry: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("telemetry: watch %s: %w", path, err)
		}
	}
}

// printEvent prints one JSONL event as a single line. Events of other kinds
// are skipped when kind is set.
func printEvent(w io.Writer, line, kind string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}
	if kind != "" && evt.Kind != kind {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", evt.Timestamp.Format(time.TimeOnly), evt.Kind)
	if evt.Chart != "" {
		b.WriteString(" chart=" + evt.Chart)
	}
	if evt.Planet != "" {
		b.WriteString(" planet=" + evt.Planet)
	}
	switch data := evt.Data.(type) {
	case nil:
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(data)) {
			fmt.Fprintf(&b, " %s=%v", k, data[k])
		}
	default:
		raw, _ := json.Marshal(data)
		b.WriteString(" " + string(raw))
	}
	fmt.Fprintln(w, b.String())
}

// resolveTelemetryPath returns the file named in args, or the configured
// telemetry_path.
func resolveTelemetryPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.TelemetryPath == "" {
		return "", errNoTelemetryPath
	}
	return cfg.TelemetryPath, nil
}
