// SPDX-License-Identifier: MIT

// Package network models the physical distribution network that sits under a
// facility instance.
//
// A Network holds typed nodes (ClientNode, CenterNode, Junction) and routes carrying a
// non-negative per-unit transport cost. Routes are two-way unless the network was built
// WithDirected(true). Adding a route creates missing endpoints as junctions; a later
// AddNode with a client or center kind promotes them.
//
// All methods are safe for concurrent use. Queries return copies, so callers may keep
// or mutate results freely.
//
// The routing package turns a Network into the dense center × client cost matrix the
// facility optimizer consumes.
package network
