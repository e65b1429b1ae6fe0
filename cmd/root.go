package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timvw/pane-columns/internal/column"
	"github.com/timvw/pane-columns/internal/config"
	"github.com/timvw/pane-columns/internal/mux"
	telem "github.com/timvw/pane-columns/internal/otel"
)

var (
	// Global flags.
	flagMux     string
	flagSocket  string
	flagTarget  string
	flagVerbose bool
)

// Loaded by the root command before any subcommand runs.
var (
	cfg       *config.Config
	telemetry *telem.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "pane-columns",
	Short: "Treat a tmux window as a row of columns",
	Long: `pane-columns rearranges the panes of a tmux window whose layout is split
left to right into columns. It can focus a column, give all columns the same
width, swap two columns, or move a column left or right.

Each command reads the window layout once, computes the new layout, and
applies it with a single select-layout followed by the fewest swap-pane
commands needed. Bind the commands to keys in tmux.conf, for example:

  bind-key M-1 run-shell "pane-columns select-column 1"
  bind-key M-= run-shell "pane-columns even-column"
  bind-key M-H run-shell "pane-columns move-column cur left"

Configuration is loaded from .pane-columns.yaml, ~/.config/pane-columns/config.yaml
or PANE_COLUMNS_* environment variables. Flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and flushes telemetry.
func Execute(ctx context.Context) error {
	defer func() { telemetry.Shutdown(context.WithoutCancel(ctx)) }()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", "", "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagSocket, "socket", "S", "", "tmux server socket path")
	rootCmd.PersistentFlags().StringVarP(&flagTarget, "target", "t", "", "tmux window to operate on (default: current window)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// setup loads configuration, applies flag overrides, and attaches the
// logger to the command context.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mux") {
		cfg.Mux = flagMux
	}
	if flags.Changed("socket") {
		cfg.Socket = flagSocket
	}
	if flags.Changed("target") {
		cfg.Target = flagTarget
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flagVerbose {
		cfg.Level = log.DebugLevel
	}

	logger := newLogger(cfg.Level)
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", "file", cfg.ConfigFile)
	}

	ctx := withLogger(cmd.Context(), logger)

	telem.Version = Version
	telemetry, err = telem.Init(ctx, telem.Config{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		logger.Warn("otel init failed", "err", err)
	}

	cmd.SetContext(ctx)
	return nil
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer(logger *log.Logger) (mux.Multiplexer, error) {
	opts := mux.Options{Socket: cfg.Socket, Target: cfg.Target}

	var m mux.Multiplexer
	var err error
	if cfg.Mux != "" {
		m, err = mux.FromName(cfg.Mux, opts)
	} else {
		m, err = mux.Detect(opts)
	}
	if err != nil {
		return nil, err
	}
	if t, ok := m.(*mux.Tmux); ok {
		t.Logger = logger
	}
	return m, nil
}

// getOperator returns a column operator bound to the configured window.
func getOperator(ctx context.Context) (*column.Operator, error) {
	logger := loggerFromContext(ctx)
	m, err := getMultiplexer(logger)
	if err != nil {
		return nil, err
	}
	var metrics *telem.Metrics
	if telemetry != nil {
		metrics = telemetry.Metrics
	}
	return column.New(m, logger, metrics), nil
}

// report logs what an operation did.
func report(ctx context.Context, op string, applied bool) {
	logger := loggerFromContext(ctx)
	if applied {
		logger.Debug(op + " applied")
		return
	}
	logger.Debug(op + " left the window unchanged")
}
