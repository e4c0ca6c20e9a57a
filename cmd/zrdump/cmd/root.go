package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oy3o/zrcodec"
	"github.com/oy3o/zrcodec/internal/config"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	styles styles
	reg    *prometheus.Registry
}

// NewRootCmd builds the zrdump command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	var (
		cfgPath  string
		logLevel string
		noColor  bool
		stats    bool
	)

	root := &cobra.Command{
		Use:   "zrdump",
		Short: "Inspect Zireael drawlists and event batches",
		Long: `zrdump decodes the binary drawlists and event batches exchanged
with the Zireael terminal engine, validates them the way the engine does,
and prints them in readable form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if noColor {
				cfg.Output.Color = "never"
			}
			a.cfg = cfg
			a.log = newLogger(cfg, cmd.ErrOrStderr())
			zrcodec.SetLogger(a.log)
			a.styles = newStyles(cmd.OutOrStdout(), cfg.Output.Color)

			if stats {
				a.reg = prometheus.NewRegistry()
				if err := zrcodec.RegisterMetrics(a.reg); err != nil {
					return fmt.Errorf("register metrics: %w", err)
				}
			}
			a.log.Debug("zrdump configured",
				zap.String("config", cfgPath),
				zap.Uint32("max_total_bytes", cfg.Limits.MaxTotalBytes),
				zap.Bool("stats", stats))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = a.log.Sync() }()
			if a.reg == nil {
				return nil
			}
			return writeStats(cmd.OutOrStdout(), a.reg)
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides the config file and "+config.EnvLogLevel)
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&stats, "stats", false, "Print codec counters after the command")

	root.AddCommand(
		newDrawlistCmd(a),
		newEventsCmd(a),
		newDumpCmd(a),
		newDemoCmd(a),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, w io.Writer) *zap.Logger {
	var enc zapcore.Encoder
	if cfg.Log.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), cfg.LogLevel())
	return zap.New(core).Named("zrdump")
}

// openInput opens a file argument; "-" is stdin.
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// maxInput bounds whole-file reads; every wire size field is a u32.
const maxInput = 1 << 32

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	r, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	buf, err := io.ReadAll(io.LimitReader(r, maxInput))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return buf, nil
}
