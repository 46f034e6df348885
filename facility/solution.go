// SPDX-License-Identifier: MIT
//
// File: solution.go
// Role: immutable result of an Optimize call plus the builder that derives it.
// Invariants (checked by buildSolution):
//   - every client references a center in [0, numCenters) with a finite transport cost;
//   - opened[j] ⇔ some client references j;
//   - TotalCost equals Evaluate on the same assignment.

package facility

import (
	"errors"
	"fmt"
)

// Solution is an immutable client→center assignment with its total cost.
// The zero value is an empty Solution.
type Solution struct {
	assignment []int
	opened     []bool
	totalCost  int64
}

// TotalCost returns the objective value of the assignment.
func (s Solution) TotalCost() int64 { return s.totalCost }

// NumClients returns the length of the assignment vector.
func (s Solution) NumClients() int { return len(s.assignment) }

// NumCenters returns the number of candidate centers the Solution was built for.
func (s Solution) NumCenters() int { return len(s.opened) }

// CenterOf returns the center index serving client i, or Unassigned if i is out of range.
func (s Solution) CenterOf(i int) int {
	if i < 0 || i >= len(s.assignment) {
		return Unassigned
	}

	return s.assignment[i]
}

// Assignment returns a copy of the assignment vector.
func (s Solution) Assignment() []int { return append([]int(nil), s.assignment...) }

// IsOpen reports whether center j serves at least one client.
func (s Solution) IsOpen(j int) bool {
	if j < 0 || j >= len(s.opened) {
		return false
	}

	return s.opened[j]
}

// OpenedCenters returns the opened center indices in ascending order.
func (s Solution) OpenedCenters() []int {
	out := make([]int, 0, len(s.opened))
	for j, open := range s.opened {
		if open {
			out = append(out, j)
		}
	}

	return out
}

// buildSolution packages the incumbent. total is the cost the search accumulated; it must
// agree with an independent evaluation.
func buildSolution(in Instance, costs CostMatrix, assign []int, total int64) (Solution, error) {
	m := in.NumCenters()
	s := Solution{
		assignment: append([]int(nil), assign...),
		opened:     make([]bool, m),
		totalCost:  total,
	}
	for i, j := range s.assignment {
		if j < 0 || j >= m {
			return Solution{}, fmt.Errorf("%w: client %d references center %d outside [0,%d)",
				ErrInvariantViolation, i, j, m)
		}
		s.opened[j] = true
	}

	check, err := evaluate(in, costs, s.assignment)
	if err != nil {
		if errors.Is(err, ErrInvalidAssignment) {
			return Solution{}, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}

		return Solution{}, err
	}
	if check != total {
		return Solution{}, fmt.Errorf("%w: search total %d differs from evaluated total %d",
			ErrInvariantViolation, total, check)
	}

	return s, nil
}

// CenterUsage describes one opened center in a Solution.
type CenterUsage struct {
	Center       int   // center index
	Clients      []int // served client indices, ascending
	Volume       int64 // Σ volume of served clients
	VariableCost int64 // Σ volume × (transport + unit cost)
	FixedCost    int64 // the center's fixed cost
}

// Breakdown splits the Solution's cost per opened center, ascending by center index.
// The Σ(VariableCost + FixedCost) over the result equals s.TotalCost() for a Solution
// returned by Optimize on the same instance and matrix.
func Breakdown(in Instance, costs CostMatrix, s Solution) []CenterUsage {
	var (
		byCenter = make(map[int]*CenterUsage)
		out      = make([]CenterUsage, 0)
		i, j     int
		u        *CenterUsage
		ok       bool
	)
	for _, j = range s.OpenedCenters() {
		out = append(out, CenterUsage{Center: j, FixedCost: in.centers[j].FixedCost})
	}
	for i = range out {
		byCenter[out[i].Center] = &out[i]
	}
	for i, j = range s.assignment {
		if u, ok = byCenter[j]; !ok {
			continue
		}
		u.Clients = append(u.Clients, i)
		u.Volume += in.clients[i].Volume
		u.VariableCost += in.clients[i].Volume * (costs[j][i] + in.centers[j].UnitCost)
	}

	return out
}
