package nereval

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-nereval/internal/corpus"
)

// SubsetResult holds the counts of one subset directory.
type SubsetResult struct {
	Name      string
	Documents int      // documents scored
	Missing   []string // predicted paths that were not found
	Counters  Counters
}

// Report is the outcome of one evaluation run.
type Report struct {
	Types   []Type // reported types, also the members of the overall row
	Subsets []SubsetResult
	Total   Counters
}

// Evaluator scores a predicted tree against a gold tree.
// It is safe for concurrent use.
type Evaluator struct {
	cfg       config
	extractor *Extractor
	reader    *corpus.Reader
	logger    zerolog.Logger
}

// New creates an Evaluator.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(cfg.types) == 0 {
		return nil, ErrNoTypes
	}
	if err := cfg.markup.Validate(); err != nil {
		return nil, err
	}

	reader, err := corpus.NewReader(cfg.charset, cfg.normalization)
	if err != nil {
		return nil, fmt.Errorf("configure reader: %w", err)
	}

	return &Evaluator{
		cfg:       cfg,
		extractor: NewExtractor(cfg.markup, cfg.logger),
		reader:    reader,
		logger:    cfg.logger,
	}, nil
}

// Types returns the reported types.
func (e *Evaluator) Types() []Type {
	return e.cfg.types
}

// EvaluateDocument scores one document pair. The plain text both sets are
// located in is the gold text with its tags removed.
func (e *Evaluator) EvaluateDocument(gold, predicted string) Counters {
	plain := e.cfg.markup.Strip(gold)
	return ScoreDocument(e.extractor.ExtractPair(plain, gold, predicted))
}

// Evaluate scores every subset directory of goldDir. Gold files without a
// predicted counterpart are logged and left out of every count. Any read
// failure aborts the run.
func (e *Evaluator) Evaluate(ctx context.Context, goldDir, predDir string) (*Report, error) {
	for _, dir := range []string{goldDir, predDir} {
		if err := checkDir(dir); err != nil {
			return nil, err
		}
	}

	subsets, err := corpus.Walk(goldDir, predDir, corpus.Options{
		Layout:  e.cfg.layout,
		Pattern: e.cfg.pattern,
	})
	if err != nil {
		return nil, err
	}
	if len(subsets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSubsets, goldDir)
	}

	report := &Report{Types: e.cfg.types}
	for _, s := range subsets {
		for _, path := range s.Missing {
			e.logger.Warn().Str("subset", s.Name).Str("path", path).Msg("predicted file missing")
		}

		counters, err := e.evaluateSubset(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("subset %s: %w", s.Name, err)
		}

		overall := counters.Overall(e.cfg.types)
		e.logger.Info().
			Str("subset", s.Name).
			Int("documents", len(s.Documents)).
			Int("missing", len(s.Missing)).
			Int("tp", overall.TruePositive).
			Int("predicted", overall.Predicted).
			Int("gold", overall.Gold).
			Msg("subset scored")

		report.Subsets = append(report.Subsets, SubsetResult{
			Name:      s.Name,
			Documents: len(s.Documents),
			Missing:   s.Missing,
			Counters:  counters,
		})
		report.Total.Add(counters)
	}

	return report, nil
}

// evaluateSubset extracts and scores documents on up to cfg.workers
// goroutines, then folds the per-document counts in document order.
func (e *Evaluator) evaluateSubset(ctx context.Context, s corpus.Subset) (Counters, error) {
	deltas := make([]Counters, len(s.Documents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers)
	for i, doc := range s.Documents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := e.evaluateFile(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
			deltas[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Counters{}, err
	}

	var total Counters
	for _, d := range deltas {
		total.Add(d)
	}
	return total, nil
}

func (e *Evaluator) evaluateFile(doc corpus.Document) (Counters, error) {
	gold, err := e.reader.ReadFile(doc.GoldPath)
	if err != nil {
		return Counters{}, fmt.Errorf("gold: %w", err)
	}
	predicted, err := e.reader.ReadFile(doc.PredPath)
	if err != nil {
		return Counters{}, fmt.Errorf("predicted: %w", err)
	}

	c := e.EvaluateDocument(gold, predicted)
	e.logger.Debug().
		Str("document", doc.Name).
		Int("tp", c.Overall(e.cfg.types).TruePositive).
		Msg("document scored")
	return c, nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}
