// SPDX-License-Identifier: MIT
//
// File: instance.go
// Role: immutable problem description (clients, centers) and the cost matrix contract.
// Determinism:
//   - Clients and centers keep the order they were given; that order is the index space
//     used by CostMatrix rows/columns and by assignment vectors.

package facility

import (
	"fmt"
	"math"
)

// Unreachable is the CostMatrix sentinel for "no route from this center to this client".
// It matches the value routing.ShortestCosts reports for unreachable nodes.
const Unreachable int64 = math.MaxInt64

// Unassigned marks a client without a center in an assignment vector.
const Unassigned = -1

// Client is a demand point with a fixed production volume.
type Client struct {
	ID     string
	Volume int64
}

// Center is a candidate distribution center.
// UnitCost is paid per unit moved from the center to the port; FixedCost is paid once
// per year if at least one client is served by the center.
type Center struct {
	ID        string
	UnitCost  int64
	FixedCost int64
}

// CostMatrix holds transport costs indexed [center][client]. Unreachable marks a missing route.
type CostMatrix [][]int64

// Instance is an immutable set of centers and clients.
// The zero value is an empty instance that Initialize rejects.
type Instance struct {
	centers []Center
	clients []Client

	centerIdx map[string]int
	clientIdx map[string]int
}

// NewInstance validates and copies the records.
//
// Contract:
//   - at least one center and one client;
//   - IDs non-empty and unique within their kind;
//   - Volume > 0, UnitCost ≥ 0, FixedCost ≥ 0.
//
// Complexity: O(numCenters + numClients).
func NewInstance(centers []Center, clients []Client) (Instance, error) {
	if len(centers) == 0 {
		return Instance{}, fmt.Errorf("%w: no centers", ErrInvalidInstance)
	}
	if len(clients) == 0 {
		return Instance{}, fmt.Errorf("%w: no clients", ErrInvalidInstance)
	}

	inst := Instance{
		centers:   make([]Center, len(centers)),
		clients:   make([]Client, len(clients)),
		centerIdx: make(map[string]int, len(centers)),
		clientIdx: make(map[string]int, len(clients)),
	}
	copy(inst.centers, centers)
	copy(inst.clients, clients)

	var (
		i  int
		ce Center
		cl Client
		ok bool
	)
	for i, ce = range inst.centers {
		if ce.ID == "" {
			return Instance{}, fmt.Errorf("%w: center #%d has an empty id", ErrInvalidInstance, i)
		}
		if _, ok = inst.centerIdx[ce.ID]; ok {
			return Instance{}, fmt.Errorf("%w: duplicate center id %q", ErrInvalidInstance, ce.ID)
		}
		if ce.UnitCost < 0 || ce.FixedCost < 0 {
			return Instance{}, fmt.Errorf("%w: center %q has a negative cost", ErrInvalidInstance, ce.ID)
		}
		inst.centerIdx[ce.ID] = i
	}
	for i, cl = range inst.clients {
		if cl.ID == "" {
			return Instance{}, fmt.Errorf("%w: client #%d has an empty id", ErrInvalidInstance, i)
		}
		if _, ok = inst.clientIdx[cl.ID]; ok {
			return Instance{}, fmt.Errorf("%w: duplicate client id %q", ErrInvalidInstance, cl.ID)
		}
		if cl.Volume <= 0 {
			return Instance{}, fmt.Errorf("%w: client %q volume must be positive, got %d", ErrInvalidInstance, cl.ID, cl.Volume)
		}
		inst.clientIdx[cl.ID] = i
	}

	return inst, nil
}

// NumCenters returns the number of candidate centers.
func (in Instance) NumCenters() int { return len(in.centers) }

// NumClients returns the number of clients.
func (in Instance) NumClients() int { return len(in.clients) }

// Center returns the j-th center. It panics if j is out of range, like a slice index.
func (in Instance) Center(j int) Center { return in.centers[j] }

// Client returns the i-th client. It panics if i is out of range, like a slice index.
func (in Instance) Client(i int) Client { return in.clients[i] }

// Centers returns a copy of the centers in index order.
func (in Instance) Centers() []Center {
	out := make([]Center, len(in.centers))
	copy(out, in.centers)

	return out
}

// Clients returns a copy of the clients in index order.
func (in Instance) Clients() []Client {
	out := make([]Client, len(in.clients))
	copy(out, in.clients)

	return out
}

// CenterIndex resolves a center ID to its index.
func (in Instance) CenterIndex(id string) (int, bool) {
	j, ok := in.centerIdx[id]

	return j, ok
}

// ClientIndex resolves a client ID to its index.
func (in Instance) ClientIndex(id string) (int, bool) {
	i, ok := in.clientIdx[id]

	return i, ok
}

// validateMatrix checks the shape and entry domain of costs against in.
// Every failure wraps ErrConfiguration.
//
// Complexity: O(numCenters × numClients).
func validateMatrix(in Instance, costs CostMatrix) error {
	if in.NumCenters() == 0 || in.NumClients() == 0 {
		return fmt.Errorf("%w: empty instance", ErrConfiguration)
	}
	if costs == nil {
		return fmt.Errorf("%w: cost matrix is nil", ErrConfiguration)
	}
	if len(costs) != in.NumCenters() {
		return fmt.Errorf("%w: cost matrix has %d center rows, want %d",
			ErrConfiguration, len(costs), in.NumCenters())
	}

	var (
		j, i int
		row  []int64
	)
	for j, row = range costs {
		if len(row) != in.NumClients() {
			return fmt.Errorf("%w: cost matrix row %d has %d client columns, want %d",
				ErrConfiguration, j, len(row), in.NumClients())
		}
		for i = range row {
			if row[i] < 0 {
				return fmt.Errorf("%w: negative transport cost %d at [%d][%d]",
					ErrConfiguration, row[i], j, i)
			}
		}
	}

	return nil
}

// cloneMatrix returns a deep copy so later caller mutations cannot leak into a search.
func cloneMatrix(costs CostMatrix) CostMatrix {
	out := make(CostMatrix, len(costs))
	for j := range costs {
		out[j] = append([]int64(nil), costs[j]...)
	}

	return out
}
