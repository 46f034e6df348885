// SPDX-License-Identifier: MIT
//
// Package facility - bounding precomputation.
//
// Bounds is derived once per instance and never mutated afterwards:
//
//   - key[j][i]   = transport(j, i) + centers[j].UnitCost, or Unreachable.
//   - minCost[i]  = min_j key[j][i], or Unreachable if no center reaches client i.
//   - ranked[i]   = all center indices ascending by key[j][i]; unreachable centers come
//     last because their key is the largest int64; ties break by center index.
//   - minFixed    = smallest FixedCost over all centers.
//
// Complexity:
//   - Time:   O(m·n·log m) for m centers and n clients (one sort per client).
//   - Memory: O(m·n).

package facility

import (
	"fmt"
	"sort"
)

// Bounds holds the read-only pruning data consumed by the optimizer.
type Bounds struct {
	m, n int

	// key is a dense buffer: key[j*n+i] is the per-unit cost of serving client i from center j.
	key []int64

	minCost     []int64
	ranked      [][]int
	minFixed    int64
	unreachable []int
}

// NewBounds validates costs against in and computes the bounding structures.
//
// Errors: ErrConfiguration (wrapped) when the matrix is nil, mis-shaped, holds negative
// entries, or when transport + unit cost overflows int64.
func NewBounds(in Instance, costs CostMatrix) (*Bounds, error) {
	if err := validateMatrix(in, costs); err != nil {
		return nil, err
	}

	var (
		m = in.NumCenters()
		n = in.NumClients()
		b = &Bounds{
			m:       m,
			n:       n,
			key:     make([]int64, m*n),
			minCost: make([]int64, n),
			ranked:  make([][]int, n),
		}
		i, j int
		t, k int64
		ok   bool
	)

	b.minFixed = in.centers[0].FixedCost
	for j = 0; j < m; j++ {
		if in.centers[j].FixedCost < b.minFixed {
			b.minFixed = in.centers[j].FixedCost
		}
		for i = 0; i < n; i++ {
			t = costs[j][i]
			if t == Unreachable {
				b.key[j*n+i] = Unreachable
				continue
			}
			k, ok = addCost(t, in.centers[j].UnitCost)
			if !ok || k == Unreachable {
				return nil, fmt.Errorf("%w: cost of center %q for client %q overflows int64",
					ErrConfiguration, in.centers[j].ID, in.clients[i].ID)
			}
			b.key[j*n+i] = k
		}
	}

	for i = 0; i < n; i++ {
		b.minCost[i] = Unreachable
		for j = 0; j < m; j++ {
			if k = b.key[j*n+i]; k < b.minCost[i] {
				b.minCost[i] = k
			}
		}
		if b.minCost[i] == Unreachable {
			b.unreachable = append(b.unreachable, i)
		}
		b.ranked[i] = b.rankCenters(i)
	}

	return b, nil
}

// centerOrder implements sort.Interface for one client's ranking.
type centerOrder struct {
	client int
	row    []int
	b      *Bounds
}

func (co centerOrder) Len() int { return len(co.row) }
func (co centerOrder) Less(x, y int) bool {
	jx, jy := co.row[x], co.row[y]
	kx, ky := co.b.Key(jx, co.client), co.b.Key(jy, co.client)
	if kx == ky {
		return jx < jy
	}

	return kx < ky
}
func (co *centerOrder) Swap(x, y int) { co.row[x], co.row[y] = co.row[y], co.row[x] }

// rankCenters returns every center sorted by ascending key for client i.
func (b *Bounds) rankCenters(i int) []int {
	row := make([]int, b.m)
	for j := range row {
		row[j] = j
	}
	co := centerOrder{client: i, row: row, b: b}
	sort.Sort(&co)

	return co.row
}

// Key returns the per-unit cost of serving client i from center j, or Unreachable.
func (b *Bounds) Key(j, i int) int64 { return b.key[j*b.n+i] }

// MinCost returns the cheapest per-unit cost available to client i, or Unreachable.
func (b *Bounds) MinCost(i int) int64 { return b.minCost[i] }

// Ranked returns a copy of client i's center ranking.
func (b *Bounds) Ranked(i int) []int { return append([]int(nil), b.ranked[i]...) }

// MinFixedCost returns the smallest fixed cost among all centers.
func (b *Bounds) MinFixedCost() int64 { return b.minFixed }

// Unreachable returns the indices of clients no center can reach (ascending).
func (b *Bounds) Unreachable() []int { return append([]int(nil), b.unreachable...) }

// Feasible reports whether every client is reachable from at least one center.
func (b *Bounds) Feasible() bool { return len(b.unreachable) == 0 }
