// Package cli implements the hotelres command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"hotelres/internal/config"
	"hotelres/internal/core"
	"hotelres/internal/logging"
	"hotelres/internal/record"
	recordcore "hotelres/internal/record/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// app is the runtime assembled before every command that touches storage.
type app struct {
	cfg      config.Config
	logger   *logging.Logger
	backend  recordcore.Backend
	registry *prometheus.Registry
	tracer   *sdktrace.TracerProvider
	svc      *core.Services
}

type rootFlags struct {
	driver   string
	dataDir  string
	logLevel string
	logOut   io.Writer
}

// NewRootCmd builds the command tree. Log output goes to logOut when no log
// file is configured; nil means stderr.
func NewRootCmd(logOut io.Writer) *cobra.Command {
	flags := &rootFlags{logOut: logOut}
	a := &app{}
	root := &cobra.Command{
		Use:           "hotelres",
		Short:         "Manage customers, hotels and room reservations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.driver, "driver", "", "storage driver: fs|memory|sqlite|postgres|s3 (env HOTELRES_STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for the fs and sqlite drivers (env HOTELRES_DATA_DIR)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (env HOTELRES_LOG_LEVEL)")

	setup := func(cmd *cobra.Command, _ []string) error { return a.open(cmd.Context(), flags) }

	for _, sub := range []*cobra.Command{
		newCustomerCmd(a),
		newHotelCmd(a),
		newReservationCmd(a),
		newReconcileCmd(a),
		newServeCmd(a),
	} {
		sub.PersistentPreRunE = setup
		closeAfterRun(sub, a)
		root.AddCommand(sub)
	}
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command tree against os.Args.
func Execute() {
	root := NewRootCmd(nil)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) open(ctx context.Context, flags *rootFlags) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Apply(config.Overrides{Driver: flags.driver, DataDir: flags.dataDir, LogLevel: flags.logLevel}); err != nil {
		return err
	}
	if cfg.Log.File == "" {
		cfg.Log.Output = flags.logOut
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	cfg.Storage.Logger = logger
	backend, err := record.Open(ctx, cfg.Storage)
	if err != nil {
		_ = logger.Close()
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	registry := prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetricsRecorder(registry)
	if err != nil {
		_ = record.Close(backend)
		_ = logger.Close()
		return err
	}
	opts := []core.Option{core.WithLogger(logger), core.WithMetricsRecorder(metrics)}
	if cfg.JaegerEndpoint != "" {
		tp, err := openTracing(cfg.JaegerEndpoint)
		if err != nil {
			_ = record.Close(backend)
			_ = logger.Close()
			return fmt.Errorf("open tracing: %w", err)
		}
		a.tracer = tp
		opts = append(opts, core.WithTracer(core.NewOTelTracer(tp.Tracer(serviceName))))
	}
	a.cfg = cfg
	a.logger = logger
	a.backend = backend
	a.registry = registry
	a.svc = core.NewServices(backend, opts...)
	logger.Debug("storage opened", "driver", backend.Driver())
	return nil
}

// closeAfterRun wraps every runnable command below cmd so the app is closed
// whether the command succeeds or fails.
func closeAfterRun(cmd *cobra.Command, a *app) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, a.close()) }()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, a)
	}
}

func (a *app) close() error {
	var errs []error
	if a.cfg.MetricsTextfile != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
		a.tracer = nil
	}
	if a.backend != nil {
		errs = append(errs, record.Close(a.backend))
		a.backend = nil
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
		a.logger = nil
	}
	return errors.Join(errs...)
}

func openTracing(endpoint string) (*sdktrace.TracerProvider, error) {
	exp, err := newSpanExporter(endpoint)
	if err != nil {
		return nil, err
	}
	return newTracerProvider(exp)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hotelres %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
