// Package nereval scores named-entity output against gold annotations
// written as inline, possibly nested, markup.
//
// # Quick Start
//
//	ev, err := nereval.New(nereval.WithWorkers(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := ev.Evaluate(ctx, "data/gold", "data/predicted")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	total := report.Total.Overall(report.Types)
//	fmt.Printf("P=%v R=%v F=%v\n", total.Precision(), total.Recall(), total.F1())
//
// # Markup
//
// Entities are delimited by tags such as
//
//	<ENAMEX TYPE="ORGANIZATION">Đại học <ENAMEX TYPE="LOCATION">Hà Nội</ENAMEX></ENAMEX>
//
// and may nest. Every balanced region up to three tag layers deep becomes
// an entity; offsets are byte offsets into the text with all tags removed.
//
// # Scoring
//
// A predicted entity is correct only when its start, end, type and surface
// all equal those of a gold entity. Precision, recall and F1 are plain
// float64 ratios: empty denominators produce NaN or +Inf rather than errors.
package nereval
