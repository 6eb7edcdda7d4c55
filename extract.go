package nereval

import (
	"strings"

	"github.com/rs/zerolog"
)

// Extractor recovers entities from marked-up text.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	markup Markup
	logger zerolog.Logger
}

// NewExtractor creates an Extractor for the given markup.
func NewExtractor(m Markup, logger zerolog.Logger) *Extractor {
	return &Extractor{markup: m, logger: logger}
}

var defaultExtractor = NewExtractor(DefaultMarkup, zerolog.Nop())

// Extract recovers DefaultMarkup entities from marked, with offsets into plain.
func Extract(plain, marked string) *EntitySet {
	return defaultExtractor.Extract(plain, marked)
}

// ExtractPair recovers DefaultMarkup entities from a gold and a predicted
// document, resolving both with the same offset strategy.
func ExtractPair(plain, gold, predicted string) (g, p *EntitySet) {
	return defaultExtractor.ExtractPair(plain, gold, predicted)
}

// Extract recovers the entities of marked with offsets into plain.
//
// Regions are grouped by how many tag layers they span and processed
// double-nested first, then nested, then flat. When marked without its tags
// is exactly plain, each region keeps the offsets the scanner saw.
// Otherwise each surface is located in plain by a forward search from a
// cursor that starts at 0 for every group and moves past every match, so
// repeated strings resolve in document order. Regions that are empty,
// deeper than MaxHeight, or whose surface cannot be found past the cursor
// are skipped.
func (x *Extractor) Extract(plain, marked string) *EntitySet {
	stripped, regions := x.markup.scan(marked)
	return x.resolve(plain, regions, stripped == plain)
}

// ExtractPair extracts gold and predicted into the same coordinate space.
// Scanner offsets are used only when both strip to plain; if either differs
// both sides fall back to the cursor search, so an entity marked the same
// way in both files always gets the same key.
func (x *Extractor) ExtractPair(plain, gold, predicted string) (g, p *EntitySet) {
	goldText, goldRegions := x.markup.scan(gold)
	predText, predRegions := x.markup.scan(predicted)
	aligned := goldText == plain && predText == plain
	return x.resolve(plain, goldRegions, aligned), x.resolve(plain, predRegions, aligned)
}

func (x *Extractor) resolve(plain string, regions []region, aligned bool) *EntitySet {
	set := NewEntitySet()

	for kind := KindDoubleNested; kind >= KindFlat; kind-- {
		cursor := 0
		for _, r := range regions {
			if r.height != int(kind) {
				continue
			}
			if r.surface == "" {
				x.logger.Debug().Int("pos", r.pos).Msg("skipping empty region")
				continue
			}

			start := r.start
			if !aligned {
				i := strings.Index(plain[cursor:], r.surface)
				if i < 0 {
					x.logger.Debug().
						Int("pos", r.pos).
						Str("surface", r.surface).
						Str("kind", kind.String()).
						Msg("surface not found in plain text")
					continue
				}
				start = cursor + i
			}
			end := start + len(r.surface)
			cursor = end

			set.Add(Entity{
				Key:     Key{Start: start, End: end, Type: r.typ},
				Surface: r.surface,
				Kind:    kind,
				Level:   r.level,
			})
		}
	}

	set.sortByOffset()
	return set
}
