package nereval

// Tally holds the raw counts behind one report row.
type Tally struct {
	TruePositive int
	Predicted    int
	Gold         int
}

// Add returns the element-wise sum of t and o.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		TruePositive: t.TruePositive + o.TruePositive,
		Predicted:    t.Predicted + o.Predicted,
		Gold:         t.Gold + o.Gold,
	}
}

// Precision is TruePositive/Predicted. A zero denominator is not guarded:
// the result is NaN for 0/0 and +Inf otherwise.
func (t Tally) Precision() float64 {
	return float64(t.TruePositive) / float64(t.Predicted)
}

// Recall is TruePositive/Gold, unguarded like Precision.
func (t Tally) Recall() float64 {
	return float64(t.TruePositive) / float64(t.Gold)
}

// F1 is the harmonic mean of Precision and Recall; NaN and Inf propagate.
func (t Tally) F1() float64 {
	p, r := t.Precision(), t.Recall()
	return 2 * p * r / (p + r)
}

// Levels are bucketed as 1, 2 and 3+.
const numLevels = 3

// Counters accumulates tallies per entity type and per nesting level.
// The zero value is ready to use; values only grow.
type Counters struct {
	types  [numTypes]Tally
	levels [numLevels][numTypes]Tally
}

// Add folds o into c.
func (c *Counters) Add(o Counters) {
	for t := range c.types {
		c.types[t] = c.types[t].Add(o.types[t])
	}
	for l := range c.levels {
		for t := range c.levels[l] {
			c.levels[l][t] = c.levels[l][t].Add(o.levels[l][t])
		}
	}
}

// Type returns the tally for one entity type.
func (c Counters) Type(t Type) Tally {
	if t < 0 || t >= numTypes {
		return Tally{}
	}
	return c.types[t]
}

// Overall sums the tallies of types.
func (c Counters) Overall(types []Type) Tally {
	var sum Tally
	for _, t := range types {
		sum = sum.Add(c.Type(t))
	}
	return sum
}

// Level sums the tallies of types at nesting level l (1-based; levels
// past the last bucket fold into it).
func (c Counters) Level(l int, types []Type) Tally {
	var sum Tally
	b := levelBucket(l)
	for _, t := range types {
		if t > TypeUnknown && t < numTypes {
			sum = sum.Add(c.levels[b][t])
		}
	}
	return sum
}

// NumLevels is the number of level buckets reported by Level.
func NumLevels() int { return numLevels }

func levelBucket(l int) int {
	switch {
	case l < 1:
		return 0
	case l > numLevels:
		return numLevels - 1
	default:
		return l - 1
	}
}

// ScoreDocument counts predicted, gold and correctly predicted entities
// for one document. A gold entity is correct when the predicted set holds
// an entity with the same start, end, type and surface. Keys are unique in
// both sets, so each predicted entity matches at most one gold entity.
// Entities of TypeUnknown are never counted.
func ScoreDocument(gold, predicted *EntitySet) Counters {
	var c Counters

	for _, e := range predicted.entities {
		if e.Type == TypeUnknown {
			continue
		}
		c.types[e.Type].Predicted++
		c.levels[levelBucket(e.Level)][e.Type].Predicted++
	}

	for _, e := range gold.entities {
		if e.Type == TypeUnknown {
			continue
		}
		lb := levelBucket(e.Level)
		c.types[e.Type].Gold++
		c.levels[lb][e.Type].Gold++

		p, ok := predicted.Get(e.Key)
		if !ok || p.Surface != e.Surface {
			continue
		}
		c.types[e.Type].TruePositive++
		if levelBucket(p.Level) == lb {
			c.levels[lb][e.Type].TruePositive++
		}
	}

	return c
}
