// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
)

// defaultSeed replaces a zero Seed so the zero config stays reproducible.
const defaultSeed int64 = 1

// GenerateConfig controls Generate. All Max* bounds are inclusive and must be ≥ 1.
type GenerateConfig struct {
	Clients   int
	Centers   int
	Junctions int
	// ExtraRoutes are added on top of the spanning tree that keeps the network connected.
	ExtraRoutes int
	Seed        int64

	MaxVolume    int64
	MaxUnitCost  int64
	MaxFixedCost int64
	MaxRouteCost int64
}

// DefaultGenerateConfig mirrors the reference data set: 50 clients, 8 candidate centers.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Clients:      50,
		Centers:      8,
		Junctions:    20,
		ExtraRoutes:  80,
		Seed:         defaultSeed,
		MaxVolume:    500,
		MaxUnitCost:  10,
		MaxFixedCost: 20000,
		MaxRouteCost: 40,
	}
}

func (c GenerateConfig) validate() error {
	switch {
	case c.Clients < 1:
		return fmt.Errorf("%w: clients=%d < 1", ErrGenerateConfig, c.Clients)
	case c.Centers < 1:
		return fmt.Errorf("%w: centers=%d < 1", ErrGenerateConfig, c.Centers)
	case c.Junctions < 0:
		return fmt.Errorf("%w: junctions=%d < 0", ErrGenerateConfig, c.Junctions)
	case c.ExtraRoutes < 0:
		return fmt.Errorf("%w: extra routes=%d < 0", ErrGenerateConfig, c.ExtraRoutes)
	case c.MaxVolume < 1, c.MaxUnitCost < 1, c.MaxFixedCost < 1, c.MaxRouteCost < 1:
		return fmt.Errorf("%w: cost and volume bounds must be ≥ 1", ErrGenerateConfig)
	}

	return nil
}

// Generate builds a random but reproducible dataset: the same config always yields the
// same instance and network. The network is connected, so every client is reachable
// from every center.
//
// Node IDs are "dc<j>" for centers, "c<i>" for clients and "j<k>" for junctions.
func Generate(cfg GenerateConfig) (Dataset, error) {
	if err := cfg.validate(); err != nil {
		return Dataset{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	var (
		k       int
		centers = make([]facility.Center, cfg.Centers)
		clients = make([]facility.Client, cfg.Clients)
		nodes   = make([]string, 0, cfg.Centers+cfg.Clients+cfg.Junctions)
	)
	for k = range centers {
		centers[k] = facility.Center{
			ID:        fmt.Sprintf("dc%d", k),
			UnitCost:  1 + rng.Int63n(cfg.MaxUnitCost),
			FixedCost: 1 + rng.Int63n(cfg.MaxFixedCost),
		}
		nodes = append(nodes, centers[k].ID)
	}
	for k = range clients {
		clients[k] = facility.Client{ID: fmt.Sprintf("c%d", k), Volume: 1 + rng.Int63n(cfg.MaxVolume)}
		nodes = append(nodes, clients[k].ID)
	}
	for k = 0; k < cfg.Junctions; k++ {
		nodes = append(nodes, fmt.Sprintf("j%d", k))
	}

	in, err := facility.NewInstance(centers, clients)
	if err != nil {
		return Dataset{}, err
	}

	net := network.NewNetwork()
	if err = BuildNetwork(in, net); err != nil {
		return Dataset{}, err
	}

	// Random spanning tree: attach each node of a shuffled order to an earlier one.
	perm := rng.Perm(len(nodes))
	for k = 1; k < len(perm); k++ {
		parent := perm[rng.Intn(k)]
		if _, err = net.AddRoute(nodes[perm[k]], nodes[parent], 1+rng.Int63n(cfg.MaxRouteCost)); err != nil {
			return Dataset{}, fmt.Errorf("dataset: generate: %w", err)
		}
	}
	// Extra routes between distinct random endpoints; validate guarantees len(nodes) ≥ 2.
	for k = 0; k < cfg.ExtraRoutes; k++ {
		u := rng.Intn(len(nodes))
		v := rng.Intn(len(nodes) - 1)
		if v >= u {
			v++
		}
		if _, err = net.AddRoute(nodes[u], nodes[v], 1+rng.Int63n(cfg.MaxRouteCost)); err != nil {
			return Dataset{}, fmt.Errorf("dataset: generate: %w", err)
		}
	}

	return Dataset{Instance: in, Network: net}, nil
}
