package routing_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dcplan/network"
	"github.com/katalvlaran/dcplan/routing"
)

// ExampleCostMatrix builds a two-center cost matrix over a small road network.
func ExampleCostMatrix() {
	net := network.NewNetwork()
	_ = net.AddNode("depot-north", network.CenterNode)
	_ = net.AddNode("depot-south", network.CenterNode)
	_ = net.AddNode("shop", network.ClientNode)
	_, _ = net.AddRoute("depot-north", "crossing", 2)
	_, _ = net.AddRoute("crossing", "shop", 3)
	_, _ = net.AddRoute("depot-south", "shop", 7)

	m, err := routing.CostMatrix(context.Background(), net,
		net.NodesOf(network.CenterNode), net.NodesOf(network.ClientNode))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m)
	// Output: [[5] [7]]
}
