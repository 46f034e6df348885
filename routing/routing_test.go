// Package routing_test covers option validation, shortest-cost correctness on small
// networks (two-way, one-way, blocked routes, cost caps) and the concurrent cost matrix.
package routing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
	"github.com/katalvlaran/dcplan/routing"
)

// triangle: A-B(1), B-C(2), A-C(5), plus an isolated node Z.
func triangle(t *testing.T, opts ...network.Option) *network.Network {
	t.Helper()
	net := network.NewNetwork(opts...)
	for _, r := range []struct {
		from, to string
		cost     int64
	}{{"A", "B", 1}, {"B", "C", 2}, {"A", "C", 5}} {
		_, err := net.AddRoute(r.from, r.to, r.cost)
		require.NoError(t, err)
	}
	require.NoError(t, net.AddNode("Z", network.Junction))

	return net
}

func TestShortestCosts_Validation(t *testing.T) {
	net := triangle(t)

	_, err := routing.ShortestCosts(net)
	require.ErrorIs(t, err, routing.ErrEmptySource)

	_, err = routing.ShortestCosts(nil, routing.Source("A"))
	require.ErrorIs(t, err, routing.ErrNilNetwork)

	_, err = routing.ShortestCosts(net, routing.Source("nope"))
	require.ErrorIs(t, err, routing.ErrSourceNotFound)

	_, err = routing.ShortestCosts(net, routing.Source("A"), routing.WithMaxCost(-1))
	require.ErrorIs(t, err, routing.ErrBadMaxCost)

	_, err = routing.ShortestCosts(net, routing.Source("A"), routing.WithBlockedThreshold(0))
	require.ErrorIs(t, err, routing.ErrBadThreshold)
}

func TestShortestCosts_Triangle(t *testing.T) {
	dist, err := routing.ShortestCosts(triangle(t), routing.Source("A"))
	require.NoError(t, err)

	want := map[string]int64{"A": 0, "B": 1, "C": 3, "Z": routing.Unreachable}
	if diff := cmp.Diff(want, dist); diff != "" {
		t.Fatalf("dist mismatch (-want +got):\n%s", diff)
	}
}

func TestShortestCosts_TwoWayFromFarEnd(t *testing.T) {
	// Routes were declared from A; the run from C must walk them backwards.
	dist, err := routing.ShortestCosts(triangle(t), routing.Source("C"))
	require.NoError(t, err)
	require.Equal(t, int64(3), dist["A"])
	require.Equal(t, int64(2), dist["B"])
}

func TestShortestCosts_OneWay(t *testing.T) {
	net := triangle(t, network.WithDirected(true))

	dist, err := routing.ShortestCosts(net, routing.Source("C"))
	require.NoError(t, err)
	require.Equal(t, routing.Unreachable, dist["A"])
	require.Equal(t, routing.Unreachable, dist["B"])

	dist, err = routing.ShortestCosts(net, routing.Source("A"))
	require.NoError(t, err)
	require.Equal(t, int64(3), dist["C"])
}

func TestShortestCosts_BlockedAndCapped(t *testing.T) {
	net := triangle(t)

	// B-C closed: C only via the direct A-C route.
	dist, err := routing.ShortestCosts(net, routing.Source("A"), routing.WithBlockedThreshold(2))
	require.NoError(t, err)
	require.Equal(t, int64(5), dist["C"])

	dist, err = routing.ShortestCosts(net, routing.Source("A"), routing.WithMaxCost(2))
	require.NoError(t, err)
	require.Equal(t, int64(1), dist["B"])
	require.Equal(t, routing.Unreachable, dist["C"])
}

func TestShortestCosts_ParallelRoutes(t *testing.T) {
	net := network.NewNetwork()
	_, _ = net.AddRoute("A", "B", 9)
	_, _ = net.AddRoute("A", "B", 4)

	dist, err := routing.ShortestCosts(net, routing.Source("A"))
	require.NoError(t, err)
	require.Equal(t, int64(4), dist["B"])
}

func TestCostMatrix(t *testing.T) {
	net := triangle(t)
	m, err := routing.CostMatrix(context.Background(), net, []string{"A", "C"}, []string{"B", "C", "Z"})
	require.NoError(t, err)

	want := facility.CostMatrix{
		{1, 3, facility.Unreachable},
		{2, 0, facility.Unreachable},
	}
	require.Equal(t, want, m)
}

func TestCostMatrix_Errors(t *testing.T) {
	net := triangle(t)

	_, err := routing.CostMatrix(context.Background(), nil, nil, nil)
	require.ErrorIs(t, err, routing.ErrNilNetwork)

	_, err = routing.CostMatrix(context.Background(), net, []string{"A", "X"}, []string{"B"})
	require.ErrorIs(t, err, routing.ErrSourceNotFound)
	require.ErrorContains(t, err, `center "X"`)

	_, err = routing.CostMatrix(context.Background(), net, []string{"A"}, []string{"Y"})
	require.ErrorIs(t, err, routing.ErrSourceNotFound)

	_, err = routing.CostMatrix(context.Background(), net, []string{"A"}, []string{"B"}, routing.WithMaxCost(-3))
	require.ErrorIs(t, err, routing.ErrBadMaxCost)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = routing.CostMatrix(ctx, net, []string{"A", "B", "C"}, []string{"B"})
	require.ErrorIs(t, err, context.Canceled)
}

// The matrix must feed straight into the optimizer.
func TestCostMatrix_FeedsOptimizer(t *testing.T) {
	net := network.NewNetwork()
	for k := 0; k < 6; k++ {
		_, err := net.AddRoute(fmt.Sprintf("n%d", k), fmt.Sprintf("n%d", k+1), int64(k+1))
		require.NoError(t, err)
	}
	centers := []string{"n0", "n6"}
	clients := []string{"n1", "n3", "n5"}

	m, err := routing.CostMatrix(context.Background(), net, centers, clients)
	require.NoError(t, err)

	in, err := facility.NewInstance(
		[]facility.Center{{ID: "n0", UnitCost: 1, FixedCost: 3}, {ID: "n6", UnitCost: 1, FixedCost: 3}},
		[]facility.Client{{ID: "n1", Volume: 1}, {ID: "n3", Volume: 1}, {ID: "n5", Volume: 1}},
	)
	require.NoError(t, err)

	opt := facility.NewOptimizer()
	require.NoError(t, opt.Initialize(in, m))
	sol, err := opt.Optimize()
	require.NoError(t, err)

	total, err := facility.Evaluate(in, m, sol.Assignment())
	require.NoError(t, err)
	require.Equal(t, total, sol.TotalCost())
}
