// SPDX-License-Identifier: MIT
// Package network_test verifies node and route lifecycle, kind promotion,
// deterministic ordering and concurrent access.
package network_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/dcplan/network"
)

type NetworkSuite struct {
	suite.Suite
	net *network.Network
}

func (s *NetworkSuite) SetupTest() {
	s.net = network.NewNetwork()
}

func (s *NetworkSuite) TestAddNode_Validation() {
	r := require.New(s.T())
	r.ErrorIs(s.net.AddNode("", network.ClientNode), network.ErrEmptyNodeID)
	r.NoError(s.net.AddNode("c1", network.ClientNode))
	r.NoError(s.net.AddNode("c1", network.ClientNode), "same kind is a no-op")
	r.NoError(s.net.AddNode("c1", network.Junction), "junction never downgrades")
	r.ErrorIs(s.net.AddNode("c1", network.CenterNode), network.ErrKindConflict)

	k, err := s.net.Kind("c1")
	r.NoError(err)
	r.Equal(network.ClientNode, k)
	r.Equal(1, s.net.NodeCount())
}

func (s *NetworkSuite) TestAddRoute_PromotesJunction() {
	r := require.New(s.T())
	id, err := s.net.AddRoute("hub", "c1", 4)
	r.NoError(err)
	r.Equal("r1", id)

	k, err := s.net.Kind("hub")
	r.NoError(err)
	r.Equal(network.Junction, k)

	r.NoError(s.net.AddNode("hub", network.CenterNode))
	k, _ = s.net.Kind("hub")
	r.Equal(network.CenterNode, k)
	r.Equal([]string{"hub"}, s.net.NodesOf(network.CenterNode))
	r.Equal([]string{"c1"}, s.net.NodesOf(network.Junction))
}

func (s *NetworkSuite) TestAddRoute_Errors() {
	r := require.New(s.T())
	_, err := s.net.AddRoute("", "b", 1)
	r.ErrorIs(err, network.ErrEmptyNodeID)
	_, err = s.net.AddRoute("a", "a", 1)
	r.ErrorIs(err, network.ErrSelfRoute)
	_, err = s.net.AddRoute("a", "b", -1)
	r.ErrorIs(err, network.ErrNegativeCost)
	r.Zero(s.net.RouteCount())
	r.Zero(s.net.NodeCount(), "failed routes must not create nodes")
}

func (s *NetworkSuite) TestNeighbors_Undirected() {
	r := require.New(s.T())
	_, _ = s.net.AddRoute("a", "b", 1)
	_, _ = s.net.AddRoute("c", "a", 2)
	_, _ = s.net.AddRoute("a", "b", 7) // parallel

	nb, err := s.net.Neighbors("a")
	r.NoError(err)
	r.Len(nb, 3)
	r.Equal([]string{"r1", "r2", "r3"}, []string{nb[0].ID, nb[1].ID, nb[2].ID})

	nb, err = s.net.Neighbors("c")
	r.NoError(err)
	r.Len(nb, 1)
	r.Equal("a", nb[0].To)

	_, err = s.net.Neighbors("zzz")
	r.ErrorIs(err, network.ErrNodeNotFound)
}

func (s *NetworkSuite) TestNeighbors_Directed() {
	r := require.New(s.T())
	d := network.NewNetwork(network.WithDirected(true))
	r.True(d.Directed())
	_, _ = d.AddRoute("a", "b", 1)

	nb, err := d.Neighbors("a")
	r.NoError(err)
	r.Len(nb, 1)
	r.True(nb[0].Directed)

	nb, err = d.Neighbors("b")
	r.NoError(err)
	r.Empty(nb)
}

func (s *NetworkSuite) TestRoutes_CreationOrder() {
	r := require.New(s.T())
	for k := 0; k < 12; k++ {
		_, err := s.net.AddRoute(fmt.Sprintf("n%d", k), fmt.Sprintf("n%d", k+1), int64(k))
		r.NoError(err)
	}
	routes := s.net.Routes()
	r.Len(routes, 12)
	for k, rt := range routes {
		r.Equal(fmt.Sprintf("r%d", k+1), rt.ID)
	}

	// returned slices are copies
	routes[0].Cost = 999
	r.Equal(int64(0), s.net.Routes()[0].Cost)
}

func (s *NetworkSuite) TestNodes_Sorted() {
	r := require.New(s.T())
	for _, id := range []string{"m", "a", "z", "b"} {
		r.NoError(s.net.AddNode(id, network.Junction))
	}
	r.Equal([]string{"a", "b", "m", "z"}, s.net.Nodes())
	r.True(s.net.HasNode("m"))
	r.False(s.net.HasNode("q"))
}

func TestNetworkSuite(t *testing.T) {
	suite.Run(t, new(NetworkSuite))
}

func TestNetwork_ConcurrentAccess(t *testing.T) {
	net := network.NewNetwork()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				_, _ = net.AddRoute(fmt.Sprintf("w%d", w), fmt.Sprintf("x%d", k), 1)
				_, _ = net.Neighbors(fmt.Sprintf("w%d", w))
				_ = net.Nodes()
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 8*50, net.RouteCount())
	require.Equal(t, 8+50, net.NodeCount())
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "client", network.ClientNode.String())
	require.Equal(t, "center", network.CenterNode.String())
	require.Equal(t, "junction", network.Junction.String())
	require.Equal(t, "kind(7)", network.Kind(7).String())
}
