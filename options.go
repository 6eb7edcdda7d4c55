package nereval

import (
	"github.com/rs/zerolog"

	"github.com/jamesainslie/go-nereval/internal/corpus"
)

// Layout selects where predicted files are looked up.
type Layout = corpus.Layout

const (
	// LayoutMirrored looks up pred/<subset>/<file> (default).
	LayoutMirrored = corpus.LayoutMirrored
	// LayoutFlat looks up pred/<file>, ignoring the subset directory.
	LayoutFlat = corpus.LayoutFlat
)

// ParseLayout converts "mirrored" or "flat" to a Layout.
func ParseLayout(s string) (Layout, error) {
	return corpus.ParseLayout(s)
}

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	logger        zerolog.Logger
	workers       int
	types         []Type
	markup        Markup
	layout        Layout
	pattern       string
	charset       string
	normalization string
}

func defaultConfig() config {
	return config{
		logger:  zerolog.Nop(),
		workers: 1,
		types:   StandardTypes,
		markup:  DefaultMarkup,
		layout:  LayoutMirrored,
		pattern: "*",
		charset: "utf-8",
	}
}

// WithLogger sets the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithWorkers sets how many documents of a subset are extracted and
// scored concurrently (default: 1). Counts are always folded in document order.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithTypes sets the reported types and the members of the overall row
// (default: StandardTypes).
func WithTypes(types ...Type) Option {
	return func(c *config) {
		c.types = types
	}
}

// WithMarkup sets the entity tag (default: DefaultMarkup).
func WithMarkup(m Markup) Option {
	return func(c *config) {
		c.markup = m
	}
}

// WithLayout sets the predicted tree layout (default: LayoutMirrored).
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithPattern restricts documents to file names matching a filepath.Match
// pattern (default: "*").
func WithPattern(p string) Option {
	return func(c *config) {
		if p != "" {
			c.pattern = p
		}
	}
}

// WithCharset sets the input charset label (default: "utf-8").
func WithCharset(name string) Option {
	return func(c *config) {
		if name != "" {
			c.charset = name
		}
	}
}

// WithNormalization applies a Unicode normalization form ("nfc", "nfd",
// "nfkc", "nfkd") to every document before extraction (default: none).
func WithNormalization(form string) Option {
	return func(c *config) {
		c.normalization = form
	}
}
