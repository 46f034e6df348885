// Package facility chooses which distribution centers to open and which open center
// serves each client, minimizing
//
//	Σ_clients volume × (transport(center, client) + center.UnitCost) + Σ_opened center.FixedCost
//
// The package has four parts, leaf first:
//
//   - Instance:  immutable clients and centers; CostMatrix is indexed [center][client]
//     and uses Unreachable (math.MaxInt64) for "no route".
//   - Bounds:    per-client minimum per-unit cost and center ranking, computed once.
//   - Optimizer: depth-first branch-and-bound over clients in index order.
//   - Solution:  immutable assignment, total cost and opened-center set.
//
// Policies:
//
//   - Exhaustive (default) tries every reachable center for every client and prunes only
//     with an admissible lower bound, so the result is a global optimum.
//   - Bounded tries the K best-ranked centers per client that pass a viability test and
//     adds a coarse fixed-cost term to the lower bound. It is much faster on larger
//     instances but may miss the optimum.
//
// Errors are sentinels (ErrConfiguration, ErrNoSolutionFound, ErrNotInitialized,
// ErrInvariantViolation, ErrSearchAborted) wrapped with detail; test with errors.Is.
//
// Example:
//
//	inst, _ := facility.NewInstance(centers, clients)
//	opt := facility.NewOptimizer(facility.WithBounded(3))
//	if err := opt.Initialize(inst, costs); err != nil {
//	    return err
//	}
//	sol, err := opt.Optimize()
//	if errors.Is(err, facility.ErrNoSolutionFound) {
//	    // some client cannot be served
//	}
//
// Determinism: identical inputs and options produce identical Solutions; there is no
// randomness in ranking or exploration order.
//
// Thread safety: an Optimizer is single-threaded; the search never blocks or performs I/O.
package facility
