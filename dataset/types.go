// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
	"github.com/katalvlaran/dcplan/routing"
)

// Sentinel errors.
var (
	// ErrFormat indicates malformed input; the wrapped message carries the line.
	ErrFormat = errors.New("dataset: malformed input")

	// ErrUnknownFormat indicates a file extension with no registered reader.
	ErrUnknownFormat = errors.New("dataset: unknown file format")

	// ErrNoNetwork indicates a cost matrix was requested for a dataset without routes.
	ErrNoNetwork = errors.New("dataset: no route network")

	// ErrGenerateConfig indicates invalid generator parameters.
	ErrGenerateConfig = errors.New("dataset: invalid generator config")
)

// Dataset is an instance together with the route network its costs come from.
// Network is nil when the source carried no routes.
type Dataset struct {
	Instance facility.Instance
	Network  *network.Network
}

// CostMatrix declares the instance's clients and centers on the network and derives the
// center × client transport costs.
func (d Dataset) CostMatrix(ctx context.Context, opts ...routing.Option) (facility.CostMatrix, error) {
	if d.Network == nil {
		return nil, ErrNoNetwork
	}
	if err := BuildNetwork(d.Instance, d.Network); err != nil {
		return nil, err
	}

	return routing.CostMatrix(ctx, d.Network, centerIDs(d.Instance), clientIDs(d.Instance), opts...)
}

// BuildNetwork marks every client and center of in as a typed node of net. Nodes the
// route list never mentioned are added isolated, so their clients end up unreachable.
func BuildNetwork(in facility.Instance, net *network.Network) error {
	for _, c := range in.Centers() {
		if err := net.AddNode(c.ID, network.CenterNode); err != nil {
			return fmt.Errorf("dataset: center %q: %w", c.ID, err)
		}
	}
	for _, c := range in.Clients() {
		if err := net.AddNode(c.ID, network.ClientNode); err != nil {
			return fmt.Errorf("dataset: client %q: %w", c.ID, err)
		}
	}

	return nil
}

// checkSharedIDs rejects instances where a client and a center share an ID: both
// become nodes of the same network, so the pair could never be told apart.
func checkSharedIDs(in facility.Instance) error {
	for i := 0; i < in.NumClients(); i++ {
		id := in.Client(i).ID
		if j, ok := in.CenterIndex(id); ok {
			return fmt.Errorf("%w: client #%d and center #%d share id %q; client and center ids must be distinct",
				ErrFormat, i, j, id)
		}
	}

	return nil
}

func centerIDs(in facility.Instance) []string {
	ids := make([]string, in.NumCenters())
	for j := range ids {
		ids[j] = in.Center(j).ID
	}

	return ids
}

func clientIDs(in facility.Instance) []string {
	ids := make([]string, in.NumClients())
	for i := range ids {
		ids[i] = in.Client(i).ID
	}

	return ids
}
