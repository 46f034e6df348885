// SPDX-License-Identifier: MIT

// Package metrics exports branch-and-bound search activity as Prometheus metrics.
//
// An Observer plugs into facility.WithObserver. Counters accumulate across runs, so
// one Observer may serve many Optimize calls; the best-cost gauge always holds the
// last improving incumbent.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/dcplan/facility"
)

const namespace = "dcplan"

// Observer implements facility.Observer on top of Prometheus collectors. It must not be
// shared by searches running at the same time.
type Observer struct {
	nodes        prometheus.Counter
	pruned       *prometheus.CounterVec
	improvements prometheus.Counter
	bestCost     prometheus.Gauge
	maxDepth     prometheus.Gauge

	// resolved children; OnPrune runs on the search hot path
	prunedBound  prometheus.Counter
	prunedPolicy prometheus.Counter
	deepest      int
}

var _ facility.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg. A nil reg skips
// registration, which is handy when only the Observer hooks are wanted.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "nodes_total",
			Help: "Search nodes entered.",
		}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "pruned_total",
			Help: "Subtrees or candidates skipped, by reason.",
		}, []string{"reason"}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "improvements_total",
			Help: "Strictly improving incumbents found.",
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "best_cost",
			Help: "Total cost of the latest incumbent.",
		}),
		maxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "max_depth",
			Help: "Deepest client index reached.",
		}),
	}
	o.prunedBound = o.pruned.WithLabelValues(facility.PruneBound.String())
	o.prunedPolicy = o.pruned.WithLabelValues(facility.PrunePolicy.String())

	if reg == nil {
		return o, nil
	}
	for _, c := range []prometheus.Collector{o.nodes, o.pruned, o.improvements, o.bestCost, o.maxDepth} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return o, nil
}

// OnNode counts a search node.
func (o *Observer) OnNode(depth int) {
	o.nodes.Inc()
	if depth > o.deepest {
		o.deepest = depth
		o.maxDepth.Set(float64(depth))
	}
}

// OnPrune counts a skipped subtree or candidate.
func (o *Observer) OnPrune(_ int, reason facility.PruneReason) {
	switch reason {
	case facility.PruneBound:
		o.prunedBound.Inc()
	case facility.PrunePolicy:
		o.prunedPolicy.Inc()
	default:
		o.pruned.WithLabelValues(reason.String()).Inc()
	}
}

// OnImprove records a new incumbent.
func (o *Observer) OnImprove(cost int64) {
	o.improvements.Inc()
	o.bestCost.Set(float64(cost))
}

// WriteText dumps every metric family of g in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err = enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
