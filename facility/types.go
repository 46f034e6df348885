// SPDX-License-Identifier: MIT
//
// Package facility defines the sentinel errors, the enumeration policies and the
// functional options of the branch-and-bound optimizer.
//
// Errors (sentinel):
//
//	– ErrConfiguration      cost matrix missing or mis-shaped, or invalid Options.
//	– ErrInvalidInstance    NewInstance rejected the clients/centers it was given.
//	– ErrInvalidAssignment  Evaluate was handed an assignment it cannot price.
//	– ErrNotInitialized     Optimize called before a successful Initialize.
//	– ErrNoSolutionFound    the search finished without a complete assignment.
//	– ErrInvariantViolation internal-consistency failure while building a Solution.
//	– ErrSearchAborted      the context was cancelled or the time limit elapsed.
package facility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Sentinel errors returned by the facility package.
var (
	// ErrConfiguration indicates a missing or mis-shaped cost matrix, or invalid Options.
	ErrConfiguration = errors.New("facility: configuration error")

	// ErrInvalidInstance indicates malformed client or center records.
	ErrInvalidInstance = errors.New("facility: invalid instance")

	// ErrInvalidAssignment indicates an assignment vector that cannot be priced.
	ErrInvalidAssignment = errors.New("facility: invalid assignment")

	// ErrNotInitialized indicates Optimize was called before Initialize succeeded.
	ErrNotInitialized = errors.New("facility: optimizer not initialized")

	// ErrNoSolutionFound indicates that no complete assignment exists (or survived pruning).
	ErrNoSolutionFound = errors.New("facility: no solution found")

	// ErrInvariantViolation indicates an internal inconsistency detected while building a Solution.
	ErrInvariantViolation = errors.New("facility: invariant violation")

	// ErrSearchAborted indicates the search stopped early because its context ended.
	ErrSearchAborted = errors.New("facility: search aborted")
)

// Policy selects how candidate centers are enumerated for each client.
type Policy int

const (
	// Exhaustive tries every center with a finite transport cost. The result is optimal.
	Exhaustive Policy = iota

	// Bounded tries only the first BranchingFactor ranked centers that pass the
	// viability test. Faster, but it may miss the global optimum.
	Bounded
)

// String returns the lower-case policy name.
func (p Policy) String() string {
	switch p {
	case Exhaustive:
		return "exhaustive"
	case Bounded:
		return "bounded"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps "exhaustive" or "bounded" (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exhaustive", "":
		return Exhaustive, nil
	case "bounded":
		return Bounded, nil
	default:
		return Exhaustive, fmt.Errorf("%w: unknown policy %q", ErrConfiguration, s)
	}
}

// Defaults used by DefaultOptions and by the policy-dependent block size.
const (
	DefaultBranchingFactor = 3
	DefaultViability       = 2.0
	DefaultBlockSize       = 20

	// policyBlockSize asks the optimizer to pick the block size from the policy.
	policyBlockSize = -1
)

// PruneReason tells an Observer why a part of the search tree was skipped.
type PruneReason int

const (
	// PruneBound means accumulated cost + remaining lower bound reached the incumbent.
	PruneBound PruneReason = iota

	// PrunePolicy means the Bounded policy's viability test rejected a candidate center.
	PrunePolicy
)

// String returns the metric label used for the reason.
func (r PruneReason) String() string {
	if r == PrunePolicy {
		return "policy"
	}

	return "bound"
}

// Observer receives search events. Implementations must be cheap: every hook runs
// on the hot path of the search.
type Observer interface {
	// OnNode is called once per search node, depth is the client index being decided.
	OnNode(depth int)
	// OnPrune is called when a subtree or candidate is skipped.
	OnPrune(depth int, reason PruneReason)
	// OnImprove is called whenever a strictly cheaper complete assignment is found.
	OnImprove(cost int64)
}

// Options configures the Optimizer.
//
//	Policy          Exhaustive (default) or Bounded.
//	BranchingFactor K, ranked centers tried per client under Bounded (>= 1).
//	ViabilityFactor a closed center is viable if its per-unit cost <= factor x client minimum (>= 1).
//	BlockSize       one minimal fixed cost is added to the lower bound per BlockSize
//	                unassigned clients. Negative picks the policy default (Bounded: 20,
//	                Exhaustive: 0). Zero disables the term.
//	TimeLimit       if > 0, the search aborts with ErrSearchAborted once it elapses.
//	Observer        optional search event sink (nil = none).
//	Logger          optional logr sink; defaults to logr.Discard().
type Options struct {
	Policy          Policy
	BranchingFactor int
	ViabilityFactor float64
	BlockSize       int
	TimeLimit       time.Duration
	Observer        Observer
	Logger          logr.Logger
}

// Option represents a functional option for configuring the Optimizer.
type Option func(*Options)

// DefaultOptions returns the exhaustive configuration with K=3 and factor 2 ready
// for a switch to Bounded.
func DefaultOptions() Options {
	return Options{
		Policy:          Exhaustive,
		BranchingFactor: DefaultBranchingFactor,
		ViabilityFactor: DefaultViability,
		BlockSize:       policyBlockSize,
		Logger:          logr.Discard(),
	}
}

// WithPolicy selects the enumeration policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithBounded switches to the Bounded policy with k candidates per client.
func WithBounded(k int) Option {
	return func(o *Options) {
		o.Policy = Bounded
		o.BranchingFactor = k
	}
}

// WithBranchingFactor sets K without changing the policy.
func WithBranchingFactor(k int) Option {
	return func(o *Options) { o.BranchingFactor = k }
}

// WithViabilityFactor sets the viability multiplier used by the Bounded policy.
func WithViabilityFactor(f float64) Option {
	return func(o *Options) { o.ViabilityFactor = f }
}

// WithBlockSize sets the number of unassigned clients that account for one extra
// minimal fixed cost in the lower bound. Zero disables the term.
func WithBlockSize(n int) Option {
	return func(o *Options) { o.BlockSize = n }
}

// WithTimeLimit sets a soft wall-clock budget for a single Optimize call.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithObserver installs a search event sink.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithLogger installs a logr sink. Search progress is logged at V(1).
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// validate checks option ranges; every failure wraps ErrConfiguration.
func (o Options) validate() error {
	switch o.Policy {
	case Exhaustive, Bounded:
	default:
		return fmt.Errorf("%w: unknown policy %d", ErrConfiguration, int(o.Policy))
	}
	if o.BranchingFactor < 1 {
		return fmt.Errorf("%w: branching factor must be >= 1, got %d", ErrConfiguration, o.BranchingFactor)
	}
	if o.ViabilityFactor < 1 {
		return fmt.Errorf("%w: viability factor must be >= 1, got %.2f", ErrConfiguration, o.ViabilityFactor)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit must be non-negative, got %s", ErrConfiguration, o.TimeLimit)
	}

	return nil
}

// effectiveBlockSize resolves the policy default for BlockSize.
func (o Options) effectiveBlockSize() int {
	if o.BlockSize >= 0 {
		return o.BlockSize
	}
	if o.Policy == Bounded {
		return DefaultBlockSize
	}

	return 0
}

// Stats summarizes one Optimize call.
type Stats struct {
	Nodes          uint64        // search nodes entered
	BoundPrunes    uint64        // subtrees cut by the lower bound
	PolicyFiltered uint64        // candidates rejected by the viability test
	Improvements   uint64        // strictly improving incumbents
	Elapsed        time.Duration // wall-clock time of the search
}
