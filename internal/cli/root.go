// Package cli implements the expect command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"digital.vasic.expect/pkg/config"
	"digital.vasic.expect/pkg/env"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/metrics"
	"digital.vasic.expect/pkg/monitor"
	"digital.vasic.expect/pkg/poll"
	"digital.vasic.expect/pkg/report"
)

// ErrChecksFailed is returned when at least one check did not
// match before its timeout.
var ErrChecksFailed = errors.New("checks failed")

// RootCommand holds the state shared by all subcommands.
type RootCommand struct {
	baseCmd *cobra.Command
	out     io.Writer
	errOut  io.Writer

	cfgFile     string
	logLevel    string
	logFile     string
	monitorAddr string
	historyPath string
	envFile     string
	verbose     bool
	noColor     bool

	config    *config.Config
	vars      *env.Loader
	logger    logging.Logger
	metrics   *metrics.PrometheusMetrics
	collector *monitor.EventCollector
}

// NewRootCommand builds the command tree writing results to out
// and logs to errOut.
func NewRootCommand(out, errOut io.Writer) *RootCommand {
	rc := &RootCommand{
		out:    out,
		errOut: errOut,
		config: config.Default(),
		vars:   env.NewLoader(),
		logger: logging.NullLogger{},
	}

	rc.baseCmd = &cobra.Command{
		Use:   "expect",
		Short: "Poll probes until their values match an expectation",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rc.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return rc.logger.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rc.baseCmd.PersistentFlags()
	flags.StringVarP(&rc.cfgFile, "config", "c", "", "Config file (.yaml, .yml or .ini)")
	flags.StringVarP(&rc.logLevel, "log-level", "l", "info", "Log level: debug|info|warn|error")
	flags.StringVar(&rc.logFile, "log-file", "", "Also write JSON logs to this file")
	flags.BoolVarP(&rc.verbose, "verbose", "v", false, "Log every probe attempt")
	flags.BoolVar(&rc.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&rc.monitorAddr, "monitor", "", "Serve live poll events on this address")
	flags.StringVar(&rc.historyPath, "history", "", "SQLite database recording check outcomes")
	flags.StringVar(&rc.envFile, "env-file", "", "Load ${NAME} variables for suite files from a .env file")

	rc.baseCmd.AddCommand(
		rc.pollCommand(),
		rc.runCommand(),
		rc.viewportCommand(),
		rc.historyCommand(),
	)
	return rc
}

// Command returns the root cobra command.
func (rc *RootCommand) Command() *cobra.Command {
	return rc.baseCmd
}

func (rc *RootCommand) setup(cmd *cobra.Command) error {
	if rc.envFile != "" {
		if err := rc.vars.Load(rc.envFile); err != nil {
			return err
		}
	}
	if rc.cfgFile != "" {
		cfg, err := config.Load(rc.cfgFile)
		if err != nil {
			return err
		}
		rc.config = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		rc.config.LogLevel = rc.logLevel
	}
	if flags.Changed("verbose") {
		rc.config.Verbose = rc.verbose
	}
	if flags.Changed("monitor") {
		rc.config.MonitorAddr = rc.monitorAddr
	}
	if flags.Changed("history") {
		rc.config.HistoryPath = rc.historyPath
	}
	if err := rc.config.Validate(); err != nil {
		return err
	}

	if rc.noColor {
		color.NoColor = true
	}

	var logger logging.Logger = logging.NewConsoleLoggerAt(
		rc.errOut, rc.config.Level(), rc.config.Verbose, color.NoColor,
	)
	if rc.logFile != "" {
		fileLogger, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: rc.logFile,
			Level:      rc.config.Level(),
			Verbose:    rc.config.Verbose,
		})
		if err != nil {
			return err
		}
		logger = logging.NewMultiLogger(logger, fileLogger)
	}
	rc.logger = logger
	rc.metrics = metrics.NewPrometheusMetrics()
	rc.collector = monitor.NewEventCollector()
	return nil
}

// pollOptions returns the options every poll of a command uses.
func (rc *RootCommand) pollOptions(ctx context.Context, logger logging.Logger) []poll.Option {
	opts := rc.config.PollOptions()
	return append(opts,
		poll.WithContext(ctx),
		poll.WithLogger(logger),
		poll.WithMetrics(rc.metrics),
		poll.WithObserver(rc.collector),
	)
}

// startMonitor serves live events when an address is configured.
// The returned function stops the server.
func (rc *RootCommand) startMonitor(ctx context.Context) func() error {
	if rc.config.MonitorAddr == "" {
		return func() error { return nil }
	}

	srv := monitor.NewServer(rc.config.MonitorAddr, rc.collector,
		monitor.WithMetricsHandler(rc.metrics.Handler()),
		monitor.WithServerLogger(rc.logger),
	)
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })

	return func() error {
		cancel()
		return g.Wait()
	}
}

// openHistory opens the configured history database, or returns
// nil when none is configured.
func (rc *RootCommand) openHistory() (*report.History, error) {
	if rc.config.HistoryPath == "" {
		return nil, nil
	}
	return report.OpenHistory(rc.config.HistoryPath)
}

// Execute runs the command line and returns the exit status.
func Execute() int {
	rc := NewRootCommand(os.Stdout, os.Stderr)
	if err := rc.baseCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		return 1
	}
	return 0
}
