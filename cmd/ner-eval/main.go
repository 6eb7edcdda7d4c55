// Command ner-eval scores a tree of predicted NER markup against a gold tree.
//
// Usage:
//
//	ner-eval [flags] <gold-dir> <predicted-dir>
//
// Every immediate subdirectory of gold-dir is one subset. Each of its files
// is paired with the file of the same name under predicted-dir; files
// without a counterpart are reported on stderr and left out of the counts.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	nereval "github.com/jamesainslie/go-nereval"
	"github.com/jamesainslie/go-nereval/internal/config"
	"github.com/jamesainslie/go-nereval/internal/promfile"
	"github.com/jamesainslie/go-nereval/internal/report"
)

// Set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ner-eval <gold-dir> <predicted-dir>",
		Short:         "Score nested named-entity markup against gold annotations",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args[0], args[1], stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Layout, "layout", cfg.Layout, "predicted tree layout: mirrored (pred/<subset>/<file>) or flat (pred/<file>)")
	f.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "only score files whose name matches this glob")
	f.StringVar(&cfg.Charset, "charset", cfg.Charset, "input charset label")
	f.StringVar(&cfg.Normalize, "normalize", cfg.Normalize, "Unicode normalization: none, nfc, nfd, nfkc, nfkd")
	f.IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "documents scored concurrently")
	f.BoolVar(&cfg.Miscellaneous, "misc", cfg.Miscellaneous, "report MISCELLANEOUS and include it in the overall row")
	f.StringVar(&cfg.Tag, "tag", cfg.Tag, "entity tag name")
	f.StringVar(&cfg.Attr, "attr", cfg.Attr, "attribute holding the entity type")
	f.StringVarP(&cfg.Format, "format", "f", cfg.Format, "report format: muc or table")
	f.BoolVar(&cfg.Levels, "levels", cfg.Levels, "add per-nesting-level rows")
	f.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "also write scores in Prometheus text format to this file")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, goldDir, predDir string, stdout, stderr io.Writer) error {
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	layout, err := nereval.ParseLayout(cfg.Layout)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	types := nereval.StandardTypes
	if cfg.Miscellaneous {
		types = nereval.AllTypes
	}

	ev, err := nereval.New(
		nereval.WithLogger(logger),
		nereval.WithWorkers(cfg.Workers),
		nereval.WithTypes(types...),
		nereval.WithMarkup(nereval.Markup{Tag: cfg.Tag, Attr: cfg.Attr}),
		nereval.WithLayout(layout),
		nereval.WithPattern(cfg.Pattern),
		nereval.WithCharset(cfg.Charset),
		nereval.WithNormalization(cfg.Normalize),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	rep, err := ev.Evaluate(ctx, goldDir, predDir)
	if err != nil {
		return err
	}
	logger.Info().
		Int("subsets", len(rep.Subsets)).
		Dur("elapsed", time.Since(start)).
		Msg("evaluation finished")

	if err := report.Write(stdout, rep, report.Options{Format: format, Levels: cfg.Levels}); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := promfile.Write(cfg.MetricsFile, rep, runID); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.MetricsFile).Msg("metrics written")
	}

	return nil
}
