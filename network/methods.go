// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: node and route lifecycle plus read-only queries.
// Determinism:
//   - Nodes() and NodesOf() return IDs sorted ascending.
//   - Routes() and Neighbors() return routes in creation order.
// Concurrency:
//   - Mutations under the write lock; queries under the read lock.

package network

import (
	"sort"
	"strconv"
)

// routeIDPrefix gives stable human-readable IDs like "r1", "r2", ...
const routeIDPrefix = "r"

// AddNode declares a node. Re-declaring an existing node is a no-op unless the kind
// changes: a Junction may be promoted to a client or center, anything else returns
// ErrKindConflict.
//
// Complexity: O(1).
func (n *Network) AddNode(id string, kind Kind) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.addNodeLocked(id, kind)
}

func (n *Network) addNodeLocked(id string, kind Kind) error {
	if node, ok := n.nodes[id]; ok {
		switch {
		case node.Kind == kind || kind == Junction:
			return nil
		case node.Kind == Junction:
			node.Kind = kind
			return nil
		default:
			return ErrKindConflict
		}
	}
	n.nodes[id] = &Node{ID: id, Kind: kind}
	if _, ok := n.adjacency[id]; !ok {
		n.adjacency[id] = make(map[string]map[string]struct{})
	}

	return nil
}

// HasNode reports whether id exists.
func (n *Network) HasNode(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.nodes[id]

	return ok
}

// Kind returns the kind of node id.
func (n *Network) Kind(id string) (Kind, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[id]
	if !ok {
		return Junction, ErrNodeNotFound
	}

	return node.Kind, nil
}

// AddRoute creates a route from → to with the given cost, adding missing endpoints as
// junctions. Parallel routes are allowed; shortest-path queries use the cheapest.
//
// Errors: ErrEmptyNodeID, ErrSelfRoute, ErrNegativeCost.
//
// Complexity: O(1) amortized.
func (n *Network) AddRoute(from, to string, cost int64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyNodeID
	}
	if from == to {
		return "", ErrSelfRoute
	}
	if cost < 0 {
		return "", ErrNegativeCost
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// Junction never conflicts, so these cannot fail.
	_ = n.addNodeLocked(from, Junction)
	_ = n.addNodeLocked(to, Junction)

	n.nextSeq++
	r := &Route{
		ID:       routeIDPrefix + strconv.FormatUint(n.nextSeq, 10),
		From:     from,
		To:       to,
		Cost:     cost,
		Directed: n.directed,
		seq:      n.nextSeq,
	}
	n.routes[r.ID] = r
	n.link(from, to, r.ID)
	if !r.Directed {
		n.link(to, from, r.ID)
	}

	return r.ID, nil
}

func (n *Network) link(from, to, rid string) {
	inner, ok := n.adjacency[from][to]
	if !ok {
		inner = make(map[string]struct{})
		n.adjacency[from][to] = inner
	}
	inner[rid] = struct{}{}
}

// Neighbors returns copies of the routes leaving id (both directions for two-way
// routes), in creation order.
//
// Errors: ErrNodeNotFound.
//
// Complexity: O(deg(id)·log deg(id)).
func (n *Network) Neighbors(id string) ([]Route, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if _, ok := n.nodes[id]; !ok {
		return nil, ErrNodeNotFound
	}

	out := make([]Route, 0)
	for _, ids := range n.adjacency[id] {
		for rid := range ids {
			out = append(out, *n.routes[rid])
		}
	}
	sortRoutes(out)

	return out, nil
}

// Nodes returns every node ID sorted ascending.
func (n *Network) Nodes() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.nodes))
	for id := range n.nodes {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// NodesOf returns the IDs of nodes of the given kind, sorted ascending.
func (n *Network) NodesOf(kind Kind) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0)
	for id, node := range n.nodes {
		if node.Kind == kind {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// Routes returns copies of every route in creation order.
func (n *Network) Routes() []Route {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Route, 0, len(n.routes))
	for _, r := range n.routes {
		out = append(out, *r)
	}
	sortRoutes(out)

	return out
}

// Directed reports the default orientation of new routes.
func (n *Network) Directed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.directed
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.nodes)
}

// RouteCount returns the number of routes.
func (n *Network) RouteCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.routes)
}

func sortRoutes(rs []Route) {
	sort.Slice(rs, func(a, b int) bool { return rs[a].seq < rs[b].seq })
}
