// Package dcplan decides which distribution centers to open and which open center
// serves each client, so that transport, handling and fixed opening costs are minimal.
//
// The cost of a plan is
//
//	Σ clients  volume × (transport(center, client) + center.UnitCost)
//	+ Σ opened centers  center.FixedCost
//
// Layout:
//
//	facility/  - Instance, Bounds, branch-and-bound Optimizer, Solution, Evaluate
//	network/   - thread-safe road network of clients, centers and junctions
//	routing/   - Dijkstra shortest costs and the concurrent center × client cost matrix
//	dataset/   - text, route-list and YAML readers/writers; seeded instance generator
//	report/    - text, JSON and cost-matrix renderings of a solution
//	metrics/   - Prometheus observer for search activity
//	config/    - viper-backed run configuration
//	cmd/dcplan - the command-line tool (solve, matrix, generate)
//
// Quick example:
//
//	    [A]──1──(c0)──2──[B]
//	     │                │
//	     2                1
//	     │                │
//	    (x)──────2──────(c1)
//
//	in, _ := facility.NewInstance(
//	    []facility.Center{{ID: "A", UnitCost: 1, FixedCost: 10}, {ID: "B", UnitCost: 2, FixedCost: 5}},
//	    []facility.Client{{ID: "c0", Volume: 3}, {ID: "c1", Volume: 2}},
//	)
//	costs, _ := routing.CostMatrix(ctx, net, []string{"A", "B"}, []string{"c0", "c1"})
//	opt := facility.NewOptimizer()
//	_ = opt.Initialize(in, costs)
//	sol, _ := opt.Optimize()
//	fmt.Println(sol.TotalCost()) // 23: both clients served by B
//
// Two search policies are available. Exhaustive (default) returns a proven optimum.
// Bounded tries only the K cheapest viable centers per client and trades optimality
// for speed on larger instances.
package dcplan
