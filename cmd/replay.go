package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/scroll-storyteller/internal/clock/system"
	"github.com/JakeFAU/scroll-storyteller/internal/config"
	iduuid "github.com/JakeFAU/scroll-storyteller/internal/id/uuid"
	"github.com/JakeFAU/scroll-storyteller/internal/progress"
	"github.com/JakeFAU/scroll-storyteller/internal/progress/sinks"
	"github.com/JakeFAU/scroll-storyteller/internal/trace"
	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

type replayOptions struct {
	metrics bool
	window  bool
	scroll  bool
}

// newReplayCmd creates the 'replay' subcommand.
func newReplayCmd() *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replays a recorded scroll trace through the engine",
		Long: `Reads a JSON-lines scroll trace and feeds every sample through a scroll
progress engine configured from the config file. Samples are timestamped from
the trace so throttling matches the recording. Each configured range prints a
line whenever it fires.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics gathered during the replay")
	cmd.Flags().BoolVar(&opts.window, "window", false, "treat the trace as the document scroll instead of an element")
	cmd.Flags().BoolVar(&opts.scroll, "scroll", false, "print every admitted sample")
	return cmd
}

func runReplay(cmd *cobra.Command, path string, opts replayOptions) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.Logger

	samples, err := readTrace(path)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("trace %s has no samples", path)
	}

	kind := storyteller.SourceElement
	if opts.window {
		kind = storyteller.SourceWindow
	}
	src := trace.NewSource(kind)
	src.Set(samples[0])

	reg := prometheus.NewRegistry()
	engineOpts := []storyteller.Option{
		storyteller.WithLogger(logger),
		storyteller.WithIDGenerator(iduuid.NewSequence(1)),
	}
	var hub *progress.Hub
	if appInstance.Config.Telemetry.Enabled || opts.metrics {
		hub, err = buildHub(appInstance.Config.Telemetry, logger, reg)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, storyteller.WithEmitter(hub))
	}

	engine, err := storyteller.New(src, appInstance.Config.EngineConfig(), engineOpts...)
	if err != nil {
		closeHub(cmd.Context(), hub, logger)
		return fmt.Errorf("bind engine: %w", err)
	}
	defer engine.Close()

	out := cmd.OutOrStdout()
	if err := registerRanges(engine, appInstance.Config.Ranges, out, opts.scroll); err != nil {
		closeHub(cmd.Context(), hub, logger)
		return err
	}

	clock := system.New()
	started := clock.Now()
	stats, err := trace.Replay(cmd.Context(), engine, src, samples, started)
	closeHub(cmd.Context(), hub, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	logger.Info("Replay finished",
		zap.String("trace", path),
		zap.Int("samples", stats.Samples),
		zap.Int("accepted", stats.Accepted),
		zap.Duration("span", trace.Duration(samples)),
		zap.Duration("elapsed", clock.Since(started)),
	)
	fmt.Fprintf(out, "samples=%d accepted=%d dropped=%d final=%.4f\n",
		stats.Samples, stats.Accepted, stats.Dropped, stats.Final.Progress)

	if opts.metrics {
		return writeMetrics(out, reg)
	}
	return nil
}

func readTrace(path string) ([]trace.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	samples, err := trace.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return samples, nil
}

func buildHub(cfg config.TelemetryConfig, logger *zap.Logger, reg prometheus.Registerer) (*progress.Hub, error) {
	promSink, err := sinks.NewPrometheusSink(reg)
	if err != nil {
		return nil, fmt.Errorf("init prometheus sink: %w", err)
	}
	return progress.NewHub(progress.Config{
		BufferSize:     cfg.BufferSize,
		MaxBatchEvents: cfg.MaxBatchEvents,
		MaxBatchWait:   cfg.MaxBatchWait,
		Logger:         logger,
	}, sinks.NewLogSink(logger), promSink), nil
}

func closeHub(ctx context.Context, hub *progress.Hub, logger *zap.Logger) {
	if hub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := hub.Close(ctx); err != nil {
		logger.Warn("Failed to close telemetry hub", zap.Error(err))
	}
}

// registerRanges wires one observer per configured range, printing a line per
// notification.
func registerRanges(engine *storyteller.Engine, ranges []config.RangeConfig, out io.Writer, scroll bool) error {
	if scroll {
		if _, err := engine.OnScroll(func(p storyteller.ScrollProgress) {
			fmt.Fprintf(out, "%-16s %-8s progress=%.4f offset=%.1f\n", "*", "scroll", p.Progress, p.Offset)
		}); err != nil {
			return fmt.Errorf("register scroll observer: %w", err)
		}
	}
	for _, r := range ranges {
		kind, err := r.ObserverKind()
		if err != nil {
			return fmt.Errorf("range %s: %w", r.Name, err)
		}
		easing, err := storyteller.ParseEasing(r.Easing)
		if err != nil {
			return fmt.Errorf("range %s: %w", r.Name, err)
		}
		name := r.Name
		notify := func(p storyteller.ScrollProgress) {
			fmt.Fprintf(out, "%-16s %-8s progress=%.4f offset=%.1f\n", name, kind, p.Progress, p.Offset)
		}
		obs := storyteller.Observer{Kind: kind, Lower: r.From, Upper: r.To, Once: r.Once, OnProgress: notify}
		if kind == storyteller.KindProgress {
			obs.OnProgress = nil
			obs.OnRange = func(p storyteller.ScrollProgress, local float64) {
				fmt.Fprintf(out, "%-16s %-8s progress=%.4f local=%.4f eased=%.4f\n",
					name, kind, p.Progress, local, easing.Apply(local))
			}
		}
		if _, err := engine.Register(obs); err != nil {
			return fmt.Errorf("register range %s: %w", r.Name, err)
		}
	}
	return nil
}

func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
