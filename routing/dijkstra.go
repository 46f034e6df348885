// SPDX-License-Identifier: MIT

package routing

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/dcplan/network"
)

// ShortestCosts computes the cheapest transport cost from Options.Source to every node
// of net. Unreached nodes map to Unreachable.
//
// Preconditions and validation (in order):
//  1. Source must be non-empty (ErrEmptySource).
//  2. net must be non-nil (ErrNilNetwork).
//  3. MaxCost ≥ 0 and BlockedThreshold > 0 (ErrBadMaxCost, ErrBadThreshold).
//  4. net must contain Source (ErrSourceNotFound).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func ShortestCosts(net *network.Network, opts ...Option) (map[string]int64, error) {
	cfg := DefaultOptions("")
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	if cfg.Source == "" {
		return nil, ErrEmptySource
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if !net.HasNode(cfg.Source) {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, cfg.Source)
	}

	r := newRunner(net, cfg)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.dist, nil
}

// runner holds the mutable state of one run.
type runner struct {
	net     *network.Network
	options Options
	dist    map[string]int64
	settled map[string]bool
	pq      nodePQ
}

func newRunner(net *network.Network, cfg Options) *runner {
	nodes := net.Nodes()
	r := &runner{
		net:     net,
		options: cfg,
		dist:    make(map[string]int64, len(nodes)),
		settled: make(map[string]bool, len(nodes)),
		pq:      make(nodePQ, 0, len(nodes)),
	}
	for _, v := range nodes {
		r.dist[v] = Unreachable
	}
	r.dist[cfg.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: cfg.Source, dist: 0})

	return r
}

// process pops nodes in cost order until the heap drains or the cap is exceeded.
func (r *runner) process() error {
	var (
		item *nodeItem
		err  error
	)
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(*nodeItem)
		if r.settled[item.id] {
			continue // stale entry
		}
		if item.dist > r.options.MaxCost {
			break
		}
		r.settled[item.id] = true
		if err = r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the tentative cost of every neighbour reachable over an open route.
func (r *runner) relax(u string) error {
	routes, err := r.net.Neighbors(u)
	if err != nil {
		return fmt.Errorf("routing: neighbours of %q: %w", u, err)
	}

	var (
		rt   network.Route
		v    string
		next int64
	)
	for _, rt = range routes {
		// Two-way routes are listed at both endpoints; pick the far one.
		v = rt.To
		if rt.To == u {
			v = rt.From
		}
		if rt.Cost >= r.options.BlockedThreshold {
			continue
		}
		if rt.Cost < 0 {
			return fmt.Errorf("%w: route %s %s→%s cost=%d", ErrNegativeCost, rt.ID, rt.From, rt.To, rt.Cost)
		}
		if rt.Cost > Unreachable-1-r.dist[u] {
			continue // would overflow; treat as unreachable along this path
		}
		next = r.dist[u] + rt.Cost
		if next > r.options.MaxCost || next >= r.dist[v] {
			continue
		}
		r.dist[v] = next
		heap.Push(&r.pq, &nodeItem{id: v, dist: next})
	}

	return nil
}

// nodeItem is a heap entry: a node and its tentative cost.
type nodeItem struct {
	id   string
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then id for determinism.
// Outdated entries stay in the heap and are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
