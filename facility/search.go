// SPDX-License-Identifier: MIT
//
// Package facility - branch-and-bound search engine.
//
// searchEngine enumerates client→center assignments depth-first, one client per level,
// in client index order. It is created fresh for each Optimize call and owns all mutable
// search state, so nothing leaks between calls.
//
// Search (per client c, accumulated cost acc of clients 0..c-1 incl. opened fixed costs):
//  1. c == n: acc is the total of a complete assignment; commit it iff acc < best.
//  2. Prune if a best exists and acc + suffix[c] + minFixed·⌊(n−c)/block⌋ ≥ best.
//     suffix[c] = Σ_{i≥c} minCost[i]·volume[i]. With block == 0 the bound is admissible.
//  3. Branch over ranked[c]; unreachable centers end the loop (they are ranked last).
//     Bounded: only the first K ranked centers, each subject to the viability test
//     (already open, or key ≤ viability·minCost[c]).
//  4. open/assign → recurse → unassign/close. A center closes when its reference count
//     drops to zero, i.e. no client among 0..c still uses it.
//
// Cancellation: the context is polled at the top of the branch loop every
// checkEvery iterations, so the overhead stays negligible.
//
// Complexity:
//   - Worst case O(m^n) nodes (Exhaustive); O(min(K,m)^n) for Bounded.
//   - Per node O(1) bound evaluation thanks to the precomputed suffix sums.
//   - Memory O(n + m) mutable state; recursion depth n.

package facility

import (
	"context"

	"github.com/go-logr/logr"
)

// checkEvery is the number of branch iterations between two context polls (power of two).
const checkEvery = 1024

type searchEngine struct {
	// Read-only inputs
	n, m      int
	volume    []int64
	fixed     []int64
	bounds    *Bounds
	suffix    []int64
	policy    Policy
	k         int
	viability float64
	block     int

	// Cancellation
	ctx     context.Context
	steps   uint64
	aborted error

	// Mutable branch state
	assign   []int
	openRefs []int

	// Incumbent
	best     []int
	bestCost int64
	found    bool

	stats    Stats
	observer Observer
	log      logr.Logger
}

func newSearchEngine(ctx context.Context, o *Optimizer) *searchEngine {
	var (
		in = o.inst
		e  = &searchEngine{
			n:         in.NumClients(),
			m:         in.NumCenters(),
			volume:    make([]int64, in.NumClients()),
			fixed:     make([]int64, in.NumCenters()),
			bounds:    o.bounds,
			suffix:    o.suffix,
			policy:    o.opts.Policy,
			k:         o.opts.BranchingFactor,
			viability: o.opts.ViabilityFactor,
			block:     o.opts.effectiveBlockSize(),
			ctx:       ctx,
			assign:    make([]int, in.NumClients()),
			openRefs:  make([]int, in.NumCenters()),
			best:      make([]int, in.NumClients()),
			bestCost:  Unreachable,
			observer:  o.opts.Observer,
			log:       o.opts.Logger,
		}
	)
	for i := range e.assign {
		e.assign[i] = Unassigned
		e.best[i] = Unassigned
		e.volume[i] = in.clients[i].Volume
	}
	for j := range e.fixed {
		e.fixed[j] = in.centers[j].FixedCost
	}
	if e.k > e.m {
		e.k = e.m
	}

	return e
}

// interrupted polls the context every checkEvery calls and latches the first error.
func (e *searchEngine) interrupted() bool {
	if e.aborted != nil {
		return true
	}
	poll := e.steps&(checkEvery-1) == 0
	e.steps++
	if !poll {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.aborted = err
		return true
	}

	return false
}

// lowerBound estimates the cheapest completion of the current branch at depth c.
func (e *searchEngine) lowerBound(c int, acc int64) int64 {
	lb := satAdd(acc, e.suffix[c])
	if e.block > 0 {
		lb = satAdd(lb, satMul(e.bounds.minFixed, int64((e.n-c)/e.block)))
	}

	return lb
}

// viable applies the Bounded policy filter to center j for client c.
func (e *searchEngine) viable(c, j int, key int64) bool {
	if e.policy == Exhaustive || e.openRefs[j] > 0 {
		return true
	}

	return float64(key) <= e.viability*float64(e.bounds.minCost[c])
}

// open and close are the paired open-center operations.
func (e *searchEngine) open(j int)  { e.openRefs[j]++ }
func (e *searchEngine) close(j int) { e.openRefs[j]-- }

// commit records a complete assignment if it strictly improves the incumbent.
func (e *searchEngine) commit(total int64) {
	if e.found && total >= e.bestCost {
		return
	}
	copy(e.best, e.assign)
	e.bestCost = total
	e.found = true
	e.stats.Improvements++
	if e.observer != nil {
		e.observer.OnImprove(total)
	}
	e.log.V(1).Info("improved incumbent", "cost", total, "nodes", e.stats.Nodes)
}

func (e *searchEngine) prune(c int, reason PruneReason) {
	if reason == PruneBound {
		e.stats.BoundPrunes++
	} else {
		e.stats.PolicyFiltered++
	}
	if e.observer != nil {
		e.observer.OnPrune(c, reason)
	}
}

// dfs decides client c given the accumulated cost of clients 0..c-1.
func (e *searchEngine) dfs(c int, acc int64) {
	e.stats.Nodes++
	if e.observer != nil {
		e.observer.OnNode(c)
	}

	if c == e.n {
		e.commit(acc)
		return
	}

	if e.found && e.lowerBound(c, acc) >= e.bestCost {
		e.prune(c, PruneBound)
		return
	}

	var (
		ranked = e.bounds.ranked[c]
		vol    = e.volume[c]
		idx, j int
		key    int64
		next   int64
	)
	for idx, j = range ranked {
		if e.interrupted() {
			return
		}
		if e.policy == Bounded && idx >= e.k {
			break
		}
		key = e.bounds.Key(j, c)
		if key == Unreachable {
			break
		}
		if !e.viable(c, j, key) {
			e.prune(c, PrunePolicy)
			continue
		}

		next = acc + vol*key
		if e.openRefs[j] == 0 {
			next += e.fixed[j]
		}
		e.open(j)
		e.assign[c] = j

		e.dfs(c+1, next)

		e.assign[c] = Unassigned
		e.close(j)
	}
}
