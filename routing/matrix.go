// SPDX-License-Identifier: MIT

package routing

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
)

// CostMatrix builds the facility cost matrix: row j holds the cheapest transport cost
// from centerIDs[j] to every clientIDs[i], or facility.Unreachable when no open path
// exists. One ShortestCosts run per center executes on a bounded errgroup; rows are
// written by index so the result does not depend on scheduling.
//
// Any Source option is ignored. The first failing row cancels the others and its error
// is returned; ctx cancellation is reported as ctx.Err().
//
// Errors: ErrNilNetwork, ErrSourceNotFound (a center or client ID is missing),
// ErrBadMaxCost, ErrBadThreshold.
func CostMatrix(ctx context.Context, net *network.Network, centerIDs, clientIDs []string, opts ...Option) (facility.CostMatrix, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if err := checkNodes(net, centerIDs, "center"); err != nil {
		return nil, err
	}
	if err := checkNodes(net, clientIDs, "client"); err != nil {
		return nil, err
	}

	rows := make(facility.CostMatrix, len(centerIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j, center := range centerIDs {
		j, center := j, center
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dist, err := ShortestCosts(net, append(opts[:len(opts):len(opts)], Source(center))...)
			if err != nil {
				return fmt.Errorf("routing: center %q: %w", center, err)
			}
			row := make([]int64, len(clientIDs))
			for i, client := range clientIDs {
				row[i] = dist[client]
			}
			rows[j] = row

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func checkNodes(net *network.Network, ids []string, role string) error {
	for _, id := range ids {
		if !net.HasNode(id) {
			return fmt.Errorf("%w: %s %q", ErrSourceNotFound, role, id)
		}
	}

	return nil
}
