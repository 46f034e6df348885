// SPDX-License-Identifier: MIT

// Package dataset loads, writes and generates facility instances and the route networks
// their transport costs come from.
//
// Formats:
//
//   - Text (ReadText/WriteText): two count headers followed by
//     `id,unitCost,fixedCost` center lines and `id,volume` client lines.
//   - Routes (ReadRoutes/WriteRoutes): `from,to,cost` per line.
//   - YAML (ReadYAML/WriteYAML): centers, clients and optional routes in one document.
//
// LoadFile picks a reader by extension. Dataset.CostMatrix hands the network to the
// routing package and returns the matrix facility.Optimizer.Initialize expects.
//
// Generate produces seeded synthetic data sets; seed 0 is replaced by 1 so that the zero
// value stays deterministic.
//
// Every parse failure wraps ErrFormat and names the offending line.
package dataset
