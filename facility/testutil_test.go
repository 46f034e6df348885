// Package facility_test - shared fixtures for the optimizer tests.
package facility_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dcplan/facility"
)

const inf = facility.Unreachable

// mkInstance builds an Instance or fails the test.
func mkInstance(t testing.TB, centers []facility.Center, clients []facility.Client) facility.Instance {
	t.Helper()
	in, err := facility.NewInstance(centers, clients)
	require.NoError(t, err)

	return in
}

// twoByTwo is the two-center, two-client scenario:
//
//	A: unit 1, fixed 10    B: unit 2, fixed 5
//	c0: volume 3           c1: volume 2
//	cost[A] = {1, 4}       cost[B] = {2, 1}
//
// The four complete assignments cost A,A=26  A,B=27  B,A=37  B,B=23.
func twoByTwo(t testing.TB) (facility.Instance, facility.CostMatrix) {
	t.Helper()
	in := mkInstance(t,
		[]facility.Center{{ID: "A", UnitCost: 1, FixedCost: 10}, {ID: "B", UnitCost: 2, FixedCost: 5}},
		[]facility.Client{{ID: "c0", Volume: 3}, {ID: "c1", Volume: 2}},
	)
	costs := facility.CostMatrix{
		{1, 4},
		{2, 1},
	}

	return in, costs
}

// randomCase draws a small feasible instance: every client has at least one route.
// Unit costs are ≥ 1 so every client minimum is positive.
func randomCase(t testing.TB, seed int64, m, n int) (facility.Instance, facility.CostMatrix) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	centers := make([]facility.Center, m)
	for j := range centers {
		centers[j] = facility.Center{
			ID:        fmt.Sprintf("D%d", j),
			UnitCost:  1 + rng.Int63n(5),
			FixedCost: rng.Int63n(60),
		}
	}
	clients := make([]facility.Client, n)
	for i := range clients {
		clients[i] = facility.Client{ID: fmt.Sprintf("C%d", i), Volume: 1 + rng.Int63n(9)}
	}

	costs := make(facility.CostMatrix, m)
	for j := range costs {
		costs[j] = make([]int64, n)
		for i := range costs[j] {
			if rng.Float64() < 0.2 {
				costs[j][i] = inf
			} else {
				costs[j][i] = rng.Int63n(25)
			}
		}
	}
	for i := 0; i < n; i++ {
		reachable := false
		for j := 0; j < m; j++ {
			reachable = reachable || costs[j][i] != inf
		}
		if !reachable {
			costs[rng.Intn(m)][i] = rng.Int63n(25)
		}
	}

	return mkInstance(t, centers, clients), costs
}

// bruteForce enumerates every reachable assignment and returns the minimum total.
func bruteForce(t testing.TB, in facility.Instance, costs facility.CostMatrix) int64 {
	t.Helper()
	var (
		n      = in.NumClients()
		m      = in.NumCenters()
		assign = make([]int, n)
		best   = inf
		walk   func(i int)
	)
	walk = func(i int) {
		if i == n {
			total, err := facility.Evaluate(in, costs, assign)
			require.NoError(t, err)
			if total < best {
				best = total
			}
			return
		}
		for j := 0; j < m; j++ {
			if costs[j][i] == inf {
				continue
			}
			assign[i] = j
			walk(i + 1)
		}
	}
	walk(0)

	return best
}

// requireConsistent checks the reachability, opened-set and cost-consistency properties.
func requireConsistent(t testing.TB, in facility.Instance, costs facility.CostMatrix, sol facility.Solution) {
	t.Helper()
	require.Equal(t, in.NumClients(), sol.NumClients())
	require.Equal(t, in.NumCenters(), sol.NumCenters())

	used := make([]bool, in.NumCenters())
	for i := 0; i < in.NumClients(); i++ {
		j := sol.CenterOf(i)
		require.GreaterOrEqual(t, j, 0, "client %d unassigned", i)
		require.Less(t, j, in.NumCenters())
		require.NotEqual(t, inf, costs[j][i], "client %d assigned over a missing route", i)
		used[j] = true
	}
	for j := range used {
		require.Equal(t, used[j], sol.IsOpen(j), "opened flag of center %d", j)
	}

	total, err := facility.Evaluate(in, costs, sol.Assignment())
	require.NoError(t, err)
	require.Equal(t, total, sol.TotalCost())
}

// countingObserver records every hook invocation.
type countingObserver struct {
	nodes, bound, policy, improve uint64
	costs                         []int64
}

func (c *countingObserver) OnNode(int) { c.nodes++ }
func (c *countingObserver) OnPrune(_ int, r facility.PruneReason) {
	if r == facility.PrunePolicy {
		c.policy++
	} else {
		c.bound++
	}
}
func (c *countingObserver) OnImprove(cost int64) {
	c.improve++
	c.costs = append(c.costs, cost)
}
