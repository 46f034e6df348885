// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: declares Node, Route, Network, Option, the sentinel errors and NewNetwork.
//
// Errors:
//
//	ErrEmptyNodeID   - node ID is the empty string.
//	ErrNodeNotFound  - requested node does not exist.
//	ErrNegativeCost  - a route cost below zero.
//	ErrSelfRoute     - a route from a node to itself.
//	ErrKindConflict  - a node ID re-declared as a different client/center kind.

package network

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyNodeID indicates that the provided node ID is empty.
	ErrEmptyNodeID = errors.New("network: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrNegativeCost indicates a route with a negative transport cost.
	ErrNegativeCost = errors.New("network: negative route cost")

	// ErrSelfRoute indicates a route whose endpoints coincide.
	ErrSelfRoute = errors.New("network: self-route not allowed")

	// ErrKindConflict indicates a node declared twice with different non-junction kinds.
	ErrKindConflict = errors.New("network: node kind conflict")
)

// Kind classifies a node.
type Kind int

const (
	// Junction is a pass-through node (crossing, hub, port access point).
	Junction Kind = iota
	// ClientNode is the location of a client.
	ClientNode
	// CenterNode is the location of a candidate distribution center.
	CenterNode
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case ClientNode:
		return "client"
	case CenterNode:
		return "center"
	case Junction:
		return "junction"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a location in the network.
type Node struct {
	ID   string
	Kind Kind
}

// Route connects two nodes.
//
// Cost is the transport cost of moving one unit along the route. Directed reports
// whether the route is one-way (From→To only).
type Route struct {
	ID       string
	From     string
	To       string
	Cost     int64
	Directed bool

	seq uint64 // creation order; Routes() and Neighbors() sort by it
}

// Option configures a Network before creation.
type Option func(n *Network)

// WithDirected makes every new route one-way.
func WithDirected(directed bool) Option {
	return func(n *Network) { n.directed = directed }
}

// Network is a thread-safe in-memory route network.
//
// mu guards every field below it. Undirected routes are mirrored in adjacency so
// Neighbors(v) sees them from both endpoints.
type Network struct {
	mu sync.RWMutex

	directed bool

	nextSeq uint64
	nodes   map[string]*Node
	routes  map[string]*Route

	// adjacency[from][to][routeID] = struct{}{}
	adjacency map[string]map[string]map[string]struct{}
}

// NewNetwork creates an empty Network. By default routes are two-way.
// Complexity: O(1)
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		nodes:     make(map[string]*Node),
		routes:    make(map[string]*Route),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}
