// Package report renders evaluation results as text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	nereval "github.com/jamesainslie/go-nereval"
)

// Format selects the report layout.
type Format int

const (
	// FormatMUC prints tab separated rows in the layout of the MUC scorer:
	// LABEL TP PRED GOLD P= R= F=.
	FormatMUC Format = iota
	// FormatTable prints aligned columns.
	FormatTable
)

// ParseFormat converts "muc" or "table" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "muc":
		return FormatMUC, nil
	case "table":
		return FormatTable, nil
	default:
		return 0, fmt.Errorf("unknown report format %q", s)
	}
}

// Options controls Write.
type Options struct {
	Format Format
	Levels bool // add one row per nesting level after the overall row
}

// Row is one labelled line of a report block.
type Row struct {
	Label string
	Tally nereval.Tally
}

// Rows returns the rows for one block of counters: one per type, the
// overall row, and optionally the level rows.
func Rows(c nereval.Counters, types []nereval.Type, levels bool) []Row {
	rows := make([]Row, 0, len(types)+1+nereval.NumLevels())
	for _, t := range types {
		rows = append(rows, Row{Label: t.String(), Tally: c.Type(t)})
	}
	rows = append(rows, Row{Label: "OVERALL", Tally: c.Overall(types)})

	if levels {
		for l := 1; l <= nereval.NumLevels(); l++ {
			label := "L" + strconv.Itoa(l)
			if l == nereval.NumLevels() {
				label += "+"
			}
			rows = append(rows, Row{Label: label, Tally: c.Level(l, types)})
		}
	}
	return rows
}

// Write renders r to w: one block per subset followed by the total block.
func Write(w io.Writer, r *nereval.Report, opts Options) error {
	bw := bufio.NewWriter(w)

	switch opts.Format {
	case FormatTable:
		writeTable(bw, r, opts.Levels)
	default:
		writeMUC(bw, r, opts.Levels)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

const rule = "-----------------------------"

func writeMUC(w *bufio.Writer, r *nereval.Report, levels bool) {
	fmt.Fprintln(w, "\n======================Nested evaluation=======================")

	for _, s := range r.Subsets {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, s.Name)
		fmt.Fprintln(w, rule)
		writeMUCRows(w, Rows(s.Counters, r.Types, levels))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Total Evaluation")
	fmt.Fprintln(w, rule)
	writeMUCRows(w, Rows(r.Total, r.Types, levels))
}

func writeMUCRows(w *bufio.Writer, rows []Row) {
	for _, row := range rows {
		sep := "\t"
		if len(row.Label) < 8 {
			sep = "\t\t"
		}
		t := row.Tally
		fmt.Fprintf(w, "%s%s%d\t%d\t%d\tP=%s\tR=%s\tF=%s\n",
			row.Label, sep, t.TruePositive, t.Predicted, t.Gold,
			FormatFloat(t.Precision()), FormatFloat(t.Recall()), FormatFloat(t.F1()))
	}
}

func writeTable(w *bufio.Writer, r *nereval.Report, levels bool) {
	header := fmt.Sprintf("%-14s %6s %6s %6s %8s %8s %8s", "Type", "TP", "Pred", "Gold", "Prec", "Rec", "F1")

	block := func(title string, c nereval.Counters) {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("-", len(header)))
		fmt.Fprintln(w, header)
		for _, row := range Rows(c, r.Types, levels) {
			t := row.Tally
			fmt.Fprintf(w, "%-14s %6d %6d %6d %8s %8s %8s\n",
				row.Label, t.TruePositive, t.Predicted, t.Gold,
				fixed(t.Precision()), fixed(t.Recall()), fixed(t.F1()))
		}
		fmt.Fprintln(w)
	}

	for _, s := range r.Subsets {
		block(fmt.Sprintf("%s (%d documents, %d missing)", s.Name, s.Documents, len(s.Missing)), s.Counters)
	}
	block("Total", r.Total)
}

// FormatFloat renders f the way the MUC scorer prints a double: the fewest
// digits that round-trip, always with a fractional part ("1.0"), scientific
// notation outside [1e-3, 1e7) ("1.0E-5"), and "NaN", "Infinity" or
// "-Infinity" for the special values.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(f); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(n)
}

func fixed(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
