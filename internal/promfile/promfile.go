// Package promfile exports evaluation scores in the Prometheus text format,
// for pickup by a node_exporter textfile collector.
package promfile

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	nereval "github.com/jamesainslie/go-nereval"
)

const namespace = "nereval"

// TotalScope is the scope label of the corpus-wide series.
const TotalScope = "total"

// Registry builds a registry holding entity counts and scores for every
// subset and for the total, labelled with runID.
func Registry(r *nereval.Report, runID string) (*prometheus.Registry, error) {
	entities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "entities",
		Help:      "Entity counts by scope, type and kind (tp, predicted, gold).",
	}, []string{"run_id", "scope", "type", "kind"})

	scores := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "score",
		Help:      "Precision, recall and F1 by scope and type.",
	}, []string{"run_id", "scope", "type", "metric"})

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{entities, scores} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	record := func(scope string, c nereval.Counters) {
		rows := make(map[string]nereval.Tally, len(r.Types)+1)
		for _, t := range r.Types {
			rows[t.String()] = c.Type(t)
		}
		rows["OVERALL"] = c.Overall(r.Types)

		for label, t := range rows {
			entities.WithLabelValues(runID, scope, label, "tp").Set(float64(t.TruePositive))
			entities.WithLabelValues(runID, scope, label, "predicted").Set(float64(t.Predicted))
			entities.WithLabelValues(runID, scope, label, "gold").Set(float64(t.Gold))
			scores.WithLabelValues(runID, scope, label, "precision").Set(t.Precision())
			scores.WithLabelValues(runID, scope, label, "recall").Set(t.Recall())
			scores.WithLabelValues(runID, scope, label, "f1").Set(t.F1())
		}
	}

	for _, s := range r.Subsets {
		record(s.Name, s.Counters)
	}
	record(TotalScope, r.Total)

	return reg, nil
}

// Write writes the report's metrics to path atomically.
func Write(path string, r *nereval.Report, runID string) error {
	reg, err := Registry(r, runID)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
