package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bgricker/opreport/internal/config"
	"github.com/bgricker/opreport/internal/output"
)

// cliState is resolved once per invocation before any subcommand runs.
type cliState struct {
	root   string
	cfg    config.Config
	now    func() time.Time
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{now: time.Now, logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:               "opreport",
		Short:             "Opreport renders the schema change operations report from its catalog",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: state.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = state.logger.Sync()
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.String("catalog", "", "catalog file (default: first of docs/operations.yml, docs/operations.yaml, operations.yml, operations.yaml)")
	persistent.String("template", "", "report template (default docs/operations.md.tmpl)")
	persistent.String("output", "", "report destination (default docs/operations.md)")
	persistent.String("format", config.FormatPretty, "list output format (pretty|json)")
	persistent.String("date", "", "generation date as YYYY-MM-DD (default today)")
	persistent.Int("workers", config.DefaultWorkers, "operations formatted concurrently")
	persistent.String("metrics-file", "", "write Prometheus textfile metrics after generating")
	persistent.String("expect-version", "", "warn unless the catalog declares this major.minor version")
	persistent.String("preview-style", output.StyleAuto, "preview style (auto|dark|light|notty)")
	persistent.BoolP("verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(newGenerateCmd(state))
	cmd.AddCommand(newListCmd(state))
	cmd.AddCommand(newPreviewCmd(state))

	return cmd
}

func (s *cliState) setup(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return usage(fmt.Errorf("determine working directory: %w", err))
	}

	cfg, err := config.Load(root)
	if err != nil {
		return usage(err)
	}
	flags, err := gatherFlags(cmd)
	if err != nil {
		return usage(err)
	}
	config.ApplyFlags(&cfg, flags)
	if err := cfg.Validate(); err != nil {
		return usage(err)
	}

	date, err := cmd.Flags().GetString("date")
	if err != nil {
		return usage(fmt.Errorf("parse --date: %w", err))
	}
	if date != "" {
		fixed, err := time.Parse(output.DateLayout, date)
		if err != nil {
			return usage(fmt.Errorf("parse --date %q: want YYYY-MM-DD", date))
		}
		s.now = func() time.Time { return fixed }
	}

	s.root = root
	s.cfg = cfg
	s.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	s.logger.Debug("configuration resolved",
		zap.String("root", root),
		zap.String("command", cmd.Name()),
		zap.Int("workers", cfg.Workers))
	return nil
}

// newLogger writes console-encoded logs to w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewProductionConfig().EncoderConfig
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String("run_id", uuid.NewString()))
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}
