// Command oddeven runs the odd/even number pipeline until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/fxsml/oddeven/internal/config"
	"github.com/fxsml/oddeven/internal/logging"
	"github.com/fxsml/oddeven/metrics"
	"github.com/fxsml/oddeven/oddeven"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	counterPeriod time.Duration
	injectPeriod  time.Duration
	bufferSize    int
	logFormat     string
	logLevel      string
	runFor        time.Duration
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "oddeven",
		Short: "Route a stream of integers to even and odd processing stages",
		Long: `oddeven counts up from zero every counter period and injects a random
number in [-99, 0] every inject period. Each number is routed to the even or
odd channel, formatted as "Number <n>" and logged.

Settings are read from ODDEVEN_* environment variables; flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Prefix)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg, f.runFor)
		},
	}

	d := config.Default()
	cmd.Flags().DurationVar(&f.counterPeriod, "counter-period", d.CounterPeriod, "interval of the counter source")
	cmd.Flags().DurationVar(&f.injectPeriod, "inject-period", d.InjectPeriod, "interval of the scheduled injector")
	cmd.Flags().IntVar(&f.bufferSize, "buffer-size", d.BufferSize, "queue capacity of every subscriber")
	cmd.Flags().StringVar(&f.logFormat, "log-format", d.LogFormat, "log format: text, json or zap")
	cmd.Flags().StringVar(&f.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	cmd.Flags().DurationVar(&f.runFor, "run-for", 0, "stop after this long; 0 runs until SIGINT or SIGTERM")
	return cmd
}

func (f flags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("counter-period") {
		cfg.CounterPeriod = f.counterPeriod
	}
	if set("inject-period") {
		cfg.InjectPeriod = f.injectPeriod
	}
	if set("buffer-size") {
		cfg.BufferSize = f.bufferSize
	}
	if set("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

func run(cmd *cobra.Command, cfg *config.Config, runFor time.Duration) error {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	collector, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	app, err := oddeven.NewApp(oddeven.Config{
		CounterPeriod: cfg.CounterPeriod,
		InjectPeriod:  cfg.InjectPeriod,
		BufferSize:    cfg.BufferSize,
		Logger:        logger,
		Metrics:       collector,
	})
	if err != nil {
		return err
	}
	for _, ch := range app.Channels() {
		logger.Info("Channel", "name", ch.Name, "mode", ch.Mode.String(), "subscribers", ch.Subscribers)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}

	if err := app.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := app.Stop(); err != nil {
		return err
	}

	totals := collector.Totals()
	logger.Info("Pipeline stopped",
		"sent", totals["messages_sent"],
		"delivered", totals["messages_delivered"],
		"rejected", totals["messages_rejected"],
		"failures", totals["processing_failures"],
		"discarded", app.Discard().Received())
	return nil
}
