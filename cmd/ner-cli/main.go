// Command ner-cli inspects single marked-up documents.
//
//	ner-cli extract [--plain FILE] FILE   print the entities of FILE
//	ner-cli strip FILE                    print FILE with all tags removed
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	nereval "github.com/jamesainslie/go-nereval"
	"github.com/jamesainslie/go-nereval/internal/config"
	"github.com/jamesainslie/go-nereval/internal/corpus"
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "ner-cli",
		Short:         "Inspect NER markup in a single document",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Tag, "tag", cfg.Tag, "entity tag name")
	pf.StringVar(&cfg.Attr, "attr", cfg.Attr, "attribute holding the entity type")
	pf.StringVar(&cfg.Charset, "charset", cfg.Charset, "input charset label")
	pf.StringVar(&cfg.Normalize, "normalize", cfg.Normalize, "Unicode normalization: none, nfc, nfd, nfkc, nfkd")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	var plainPath string
	extract := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print surface, type, start, end, kind and level of every entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cfg, args[0], plainPath, stdout, stderr)
		},
	}
	extract.Flags().StringVar(&plainPath, "plain", "", "plain text to resolve offsets in (default: FILE with tags removed)")

	strip := &cobra.Command{
		Use:   "strip FILE",
		Short: "Print FILE with every entity tag removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cfg, args[0], stdout)
		},
	}

	root.AddCommand(extract, strip)
	return root
}

func runExtract(cfg *config.Config, path, plainPath string, stdout, stderr io.Writer) error {
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(lvl).With().Timestamp().Logger()

	reader, err := corpus.NewReader(cfg.Charset, cfg.Normalize)
	if err != nil {
		return err
	}
	marked, err := reader.ReadFile(path)
	if err != nil {
		return err
	}

	markup := nereval.Markup{Tag: cfg.Tag, Attr: cfg.Attr}
	if err := markup.Validate(); err != nil {
		return err
	}
	plain := markup.Strip(marked)
	if plainPath != "" {
		if plain, err = reader.ReadFile(plainPath); err != nil {
			return err
		}
	}

	set := nereval.NewExtractor(markup, logger).Extract(plain, marked)
	logger.Debug().Int("entities", set.Len()).Str("path", path).Msg("extracted")

	w := bufio.NewWriter(stdout)
	for _, e := range set.Entities() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\n", e.Surface, e.Type, e.Start, e.End, e.Kind, e.Level)
	}
	return w.Flush()
}

func runStrip(cfg *config.Config, path string, stdout io.Writer) error {
	reader, err := corpus.NewReader(cfg.Charset, cfg.Normalize)
	if err != nil {
		return err
	}
	marked, err := reader.ReadFile(path)
	if err != nil {
		return err
	}

	markup := nereval.Markup{Tag: cfg.Tag, Attr: cfg.Attr}
	if err := markup.Validate(); err != nil {
		return err
	}
	_, err = io.WriteString(stdout, markup.Strip(marked))
	return err
}
