// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/logrusorgru/aurora"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/dynprog/config"
	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/policystore"
	"github.com/katalvlaran/dynprog/telemetry"
)

// Scenario names accepted as the first argument.
const (
	scenarioInventory = "inventory"
	scenarioTrading   = "trading"
	scenarioDesigner  = "designer"
)

var scenarioNames = []string{scenarioInventory, scenarioTrading, scenarioDesigner}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	workers    int
	noColor    bool

	cfg      config.Config
	logger   *slog.Logger
	au       aurora.Aurora
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	tracer   *sdktrace.TracerProvider
	store    *policystore.Store
}

// execute runs one dpctl invocation and releases everything it opened.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close(ctx, stderr))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dpctl",
		Short:         "Finite-horizon dynamic programming scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().IntVarP(&a.workers, "workers", "w", 0, "parallel workers per stage (overrides solver.workers)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newSolveCmd(a),
		newSimulateCmd(a),
		newValidateCmd(a),
		newPlotCmd(a),
		newShowCmd(a),
	)

	return root
}

// setup loads the configuration and builds the logger, metrics and tracer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Solver.Workers = a.workers
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.au = aurora.NewAurora(!a.noColor)

	if a.logger, err = telemetry.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if cfg.Telemetry.Metrics {
		a.registry = prometheus.NewRegistry()
		if a.metrics, err = telemetry.NewMetrics(a.registry, ""); err != nil {
			return err
		}
	}
	if cfg.Telemetry.Tracing {
		if a.tracer, err = telemetry.NewTracerProvider(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	a.logger.Debug("configuration loaded",
		slog.String("path", a.configPath),
		slog.Int("workers", cfg.Solver.Workers),
		slog.Bool("metrics", cfg.Telemetry.Metrics),
		slog.Bool("tracing", cfg.Telemetry.Tracing),
	)

	return nil
}

// solverOptions wires the context, workers, logger, metrics and tracer
// into an induction run labelled name.
func (a *app) solverOptions(ctx context.Context, name string) []induction.Option {
	opts := []induction.Option{
		induction.WithContext(ctx),
		induction.WithWorkers(a.cfg.Solver.Workers),
		induction.WithLogger(a.logger.With(slog.String("scenario", name))),
	}
	if a.metrics != nil {
		opts = append(opts, induction.WithObserver(a.metrics.Observer(name)))
	}
	if a.tracer != nil {
		opts = append(opts, induction.WithTracer(a.tracer.Tracer(induction.TracerName)))
	}

	return opts
}

// openStore returns the configured policy store, or nil when no DSN is set.
func (a *app) openStore() (*policystore.Store, error) {
	if a.store != nil || a.cfg.Store.DSN == "" {
		return a.store, nil
	}
	s, err := policystore.Open(a.cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	a.store = s

	return s, nil
}

// close flushes spans, dumps metrics and closes the store.
func (a *app) close(ctx context.Context, stderr io.Writer) error {
	var errs []error
	if a.tracer != nil {
		errs = append(errs, a.tracer.Shutdown(context.WithoutCancel(ctx)))
	}
	if a.registry != nil {
		fmt.Fprintln(stderr, "# dpctl metrics")
		errs = append(errs, telemetry.WriteText(stderr, a.registry))
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}

	return errors.Join(errs...)
}
