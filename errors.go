package nereval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNotDirectory indicates a gold or predicted root is missing or not a directory.
	ErrNotDirectory = errors.New("nereval: not a directory")

	// ErrNoSubsets indicates the gold root holds no subset directories.
	ErrNoSubsets = errors.New("nereval: no subsets under gold directory")

	// ErrNoTypes indicates the evaluator was configured with an empty type list.
	ErrNoTypes = errors.New("nereval: no entity types to report")

	// ErrInvalidMarkup indicates a Markup with an empty tag or attribute name.
	ErrInvalidMarkup = errors.New("nereval: markup needs a tag and an attribute name")
)
