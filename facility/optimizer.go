// SPDX-License-Identifier: MIT
//
// File: optimizer.go
// Role: public facade of the branch-and-bound search.
// Lifecycle:
//   - NewOptimizer(opts...) → Initialize(instance, costs) → Optimize() (repeatable).
//   - Initialize validates and snapshots its inputs; every Optimize call builds a fresh
//     search context from that snapshot, so repeated calls return identical Solutions.
// Concurrency:
//   - An Optimizer is not safe for concurrent use. Use one per goroutine or serialize
//     calls with an external mutex.

package facility

import (
	"context"
	"fmt"
	"time"
)

// Optimizer solves one instance at a time.
type Optimizer struct {
	opts Options

	ready  bool
	inst   Instance
	costs  CostMatrix
	bounds *Bounds
	suffix []int64 // suffix[c] = Σ_{i≥c} minCost[i]·volume[i]; len n+1

	last Stats
}

// NewOptimizer returns an Optimizer configured by DefaultOptions overridden by opts.
// Options are validated by Initialize.
func NewOptimizer(opts ...Option) *Optimizer {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	return &Optimizer{opts: cfg}
}

// Options returns the configuration in use.
func (o *Optimizer) Options() Options { return o.opts }

// Bounds returns the precomputed bounding data, or nil before Initialize.
func (o *Optimizer) Bounds() *Bounds { return o.bounds }

// LastStats returns the statistics of the most recent Optimize call.
func (o *Optimizer) LastStats() Stats { return o.last }

// Initialize validates the options and the cost matrix against in, then prepares the
// bounding data. Any previous preparation is discarded first, even on failure.
//
// Errors: ErrConfiguration (wrapped) for invalid options, a nil matrix, a row count
// different from the number of centers, a row length different from the number of
// clients, negative entries, or costs whose worst-case total overflows int64.
//
// Complexity: O(m·n·log m).
func (o *Optimizer) Initialize(in Instance, costs CostMatrix) error {
	*o = Optimizer{opts: o.opts}

	if err := o.opts.validate(); err != nil {
		return err
	}
	b, err := NewBounds(in, costs)
	if err != nil {
		return err
	}
	if _, ok := worstCase(in, b); !ok {
		return fmt.Errorf("%w: worst-case total cost overflows int64", ErrConfiguration)
	}

	n := in.NumClients()
	o.suffix = make([]int64, n+1)
	for c := n - 1; c >= 0; c-- {
		o.suffix[c] = satAdd(o.suffix[c+1], satMul(b.minCost[c], in.clients[c].Volume))
	}
	o.inst = in
	o.costs = cloneMatrix(costs)
	o.bounds = b
	o.ready = true

	o.opts.Logger.V(1).Info("optimizer initialized",
		"clients", n,
		"centers", in.NumCenters(),
		"policy", o.opts.Policy.String(),
		"branching", o.opts.BranchingFactor,
		"blockSize", o.opts.effectiveBlockSize())

	return nil
}

// Optimize runs the search to completion. See OptimizeContext.
func (o *Optimizer) Optimize() (Solution, error) {
	return o.OptimizeContext(context.Background())
}

// OptimizeContext runs the search and returns the cheapest complete assignment found.
//
// Errors:
//   - ErrNotInitialized if Initialize has not succeeded.
//   - ErrNoSolutionFound if some client is unreachable from every center, or if the
//     search ends without a complete assignment.
//   - ErrSearchAborted wrapping ctx.Err() if ctx ends (or Options.TimeLimit elapses)
//     before the search completes, even if an incumbent exists.
//   - ErrInvariantViolation if the incumbent fails the Solution consistency checks.
func (o *Optimizer) OptimizeContext(ctx context.Context) (Solution, error) {
	if !o.ready {
		return Solution{}, ErrNotInitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !o.bounds.Feasible() {
		i := o.bounds.unreachable[0]
		return Solution{}, fmt.Errorf("%w: client %q is unreachable from every center (%d unreachable)",
			ErrNoSolutionFound, o.inst.clients[i].ID, len(o.bounds.unreachable))
	}
	if o.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.TimeLimit)
		defer cancel()
	}

	e := newSearchEngine(ctx, o)
	start := time.Now()
	e.dfs(0, 0)
	e.stats.Elapsed = time.Since(start)
	o.last = e.stats

	o.opts.Logger.V(1).Info("search finished",
		"found", e.found,
		"cost", e.bestCost,
		"nodes", e.stats.Nodes,
		"boundPrunes", e.stats.BoundPrunes,
		"policyFiltered", e.stats.PolicyFiltered,
		"elapsed", e.stats.Elapsed)

	if e.aborted != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrSearchAborted, e.aborted)
	}
	if !e.found {
		return Solution{}, ErrNoSolutionFound
	}

	return buildSolution(o.inst, o.costs, e.best, e.bestCost)
}
