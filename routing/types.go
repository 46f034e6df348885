// SPDX-License-Identifier: MIT
//
// Package routing derives transport costs from a network.Network.
//
// ShortestCosts runs single-source Dijkstra over the route network; CostMatrix fans it
// out, one run per center, and assembles the dense center × client matrix consumed by
// the facility optimizer.
//
// Complexity:
//
//	– ShortestCosts: O((V + E) log V) time, O(V + E) space (lazy decrease-key heap).
//	– CostMatrix:    O(m·(V + E) log V) total work, spread over GOMAXPROCS workers.
//
// Options:
//
//	– Source:               ID of the starting node (ShortestCosts only; required).
//	– WithMaxCost:          nodes farther than this are left Unreachable.
//	– WithBlockedThreshold: routes costing at least this much are treated as closed.
//
// Errors (sentinel):
//
//	– ErrNilNetwork       the network pointer is nil.
//	– ErrEmptySource      no source was given.
//	– ErrSourceNotFound   the source (or a requested center/client) is missing.
//	– ErrNegativeCost     a negative route cost was encountered.
//	– ErrBadMaxCost       MaxCost < 0.
//	– ErrBadThreshold     BlockedThreshold <= 0.
package routing

import (
	"errors"
	"math"
)

// Sentinel errors returned by routing.
var (
	// ErrNilNetwork indicates a nil *network.Network.
	ErrNilNetwork = errors.New("routing: network is nil")

	// ErrEmptySource indicates that no source node was supplied.
	ErrEmptySource = errors.New("routing: source node ID is empty")

	// ErrSourceNotFound indicates a requested node is absent from the network.
	ErrSourceNotFound = errors.New("routing: node not found in network")

	// ErrNegativeCost indicates a route with a negative cost.
	ErrNegativeCost = errors.New("routing: negative route cost encountered")

	// ErrBadMaxCost indicates a negative MaxCost.
	ErrBadMaxCost = errors.New("routing: MaxCost must be non-negative")

	// ErrBadThreshold indicates a non-positive BlockedThreshold, which would close every route.
	ErrBadThreshold = errors.New("routing: BlockedThreshold must be positive")
)

// Unreachable is the cost reported for nodes with no admissible path. It equals
// facility.Unreachable so distances can be copied into a cost matrix unchanged.
const Unreachable int64 = math.MaxInt64

// Options configures a shortest-cost run.
//
// Source           – starting node ID.
// MaxCost          – exploration cap; nodes beyond it stay Unreachable. Default: no cap.
// BlockedThreshold – routes with Cost ≥ threshold are skipped. Default: none blocked.
type Options struct {
	Source           string
	MaxCost          int64
	BlockedThreshold int64
}

// Option represents a functional option for routing.
type Option func(*Options)

// Source sets the starting node.
func Source(id string) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithMaxCost caps the explored distance. Negative values are reported as ErrBadMaxCost
// when the run starts.
func WithMaxCost(c int64) Option {
	return func(o *Options) {
		o.MaxCost = c
	}
}

// WithBlockedThreshold marks every route whose cost is at least t as closed, the usual
// encoding of a road that exists in the data but cannot be used.
func WithBlockedThreshold(t int64) Option {
	return func(o *Options) {
		o.BlockedThreshold = t
	}
}

// DefaultOptions returns Options with no cap and no blocked routes.
func DefaultOptions(source string) Options {
	return Options{
		Source:           source,
		MaxCost:          math.MaxInt64,
		BlockedThreshold: math.MaxInt64,
	}
}

func (o Options) validate() error {
	if o.MaxCost < 0 {
		return ErrBadMaxCost
	}
	if o.BlockedThreshold <= 0 {
		return ErrBadThreshold
	}

	return nil
}
