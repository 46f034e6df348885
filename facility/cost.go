// SPDX-License-Identifier: MIT
//
// File: cost.go
// Role: independent pricing of assignment vectors and overflow-checked arithmetic.
// Policy:
//   - Evaluate never trusts the search: it recomputes from the instance and matrix only.
//   - All costs are non-negative int64; helpers report overflow instead of wrapping.

package facility

import "fmt"

// Evaluate prices a complete assignment vector:
//
//	Σ_i volume(i) × (costs[a[i]][i] + unit(a[i])) + Σ_{j opened} fixed(j)
//
// where a center is opened iff at least one client references it.
//
// Errors:
//   - ErrConfiguration if costs does not match in.
//   - ErrInvalidAssignment if len(assign) ≠ numClients, an entry is Unassigned or out of
//     range, a pair is unreachable, or the total overflows int64.
//
// Complexity: O(numCenters × numClients) for validation, O(numClients + numCenters) pricing.
func Evaluate(in Instance, costs CostMatrix, assign []int) (int64, error) {
	if err := validateMatrix(in, costs); err != nil {
		return 0, err
	}

	return evaluate(in, costs, assign)
}

// evaluate is Evaluate without the matrix validation; costs must already match in.
func evaluate(in Instance, costs CostMatrix, assign []int) (int64, error) {
	if len(assign) != in.NumClients() {
		return 0, fmt.Errorf("%w: %d entries for %d clients", ErrInvalidAssignment, len(assign), in.NumClients())
	}

	var (
		m      = in.NumCenters()
		opened = make([]bool, m)
		total  int64
		line   int64
		i, j   int
		t      int64
		ok     bool
	)
	for i, j = range assign {
		if j < 0 || j >= m {
			return 0, fmt.Errorf("%w: client %d assigned to center %d", ErrInvalidAssignment, i, j)
		}
		t = costs[j][i]
		if t == Unreachable {
			return 0, fmt.Errorf("%w: client %d has no route from center %d", ErrInvalidAssignment, i, j)
		}
		opened[j] = true
		if line, ok = addCost(t, in.centers[j].UnitCost); ok {
			line, ok = mulCost(in.clients[i].Volume, line)
		}
		if ok {
			total, ok = addCost(total, line)
		}
		if !ok {
			return 0, fmt.Errorf("%w: total cost overflows int64", ErrInvalidAssignment)
		}
	}
	for j = 0; j < m; j++ {
		if !opened[j] {
			continue
		}
		if total, ok = addCost(total, in.centers[j].FixedCost); !ok {
			return 0, fmt.Errorf("%w: total cost overflows int64", ErrInvalidAssignment)
		}
	}

	return total, nil
}

// worstCase returns Σ_i volume(i) × max reachable key + Σ_j fixed(j). If it fits in int64,
// no complete assignment explored by the search can overflow.
func worstCase(in Instance, b *Bounds) (int64, bool) {
	var (
		total, worst, line int64
		i, j               int
		k                  int64
		ok                 = true
	)
	for i = 0; i < b.n && ok; i++ {
		worst = 0
		for j = 0; j < b.m; j++ {
			if k = b.Key(j, i); k != Unreachable && k > worst {
				worst = k
			}
		}
		if line, ok = mulCost(in.clients[i].Volume, worst); ok {
			total, ok = addCost(total, line)
		}
	}
	for j = 0; j < b.m && ok; j++ {
		total, ok = addCost(total, in.centers[j].FixedCost)
	}

	return total, ok
}

// addCost adds two non-negative costs, reporting overflow.
func addCost(a, b int64) (int64, bool) {
	c := a + b
	if c < a {
		return 0, false
	}

	return c, true
}

// mulCost multiplies two non-negative costs, reporting overflow.
func mulCost(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || c < 0 {
		return 0, false
	}

	return c, true
}

// satAdd adds non-negative costs, saturating at Unreachable.
func satAdd(a, b int64) int64 {
	if c, ok := addCost(a, b); ok {
		return c
	}

	return Unreachable
}

// satMul multiplies non-negative costs, saturating at Unreachable.
func satMul(a, b int64) int64 {
	if c, ok := mulCost(a, b); ok {
		return c
	}

	return Unreachable
}
