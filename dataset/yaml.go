// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
)

// yamlDoc is the on-disk YAML layout.
//
//	directed: false
//	centers:
//	  - {id: A, unit_cost: 1, fixed_cost: 10}
//	clients:
//	  - {id: c0, volume: 3}
//	routes:
//	  - {from: A, to: c0, cost: 1}
type yamlDoc struct {
	Directed bool         `yaml:"directed,omitempty"`
	Centers  []yamlCenter `yaml:"centers"`
	Clients  []yamlClient `yaml:"clients"`
	Routes   []yamlRoute  `yaml:"routes,omitempty"`
}

type yamlCenter struct {
	ID        string `yaml:"id"`
	UnitCost  int64  `yaml:"unit_cost"`
	FixedCost int64  `yaml:"fixed_cost"`
}

type yamlClient struct {
	ID     string `yaml:"id"`
	Volume int64  `yaml:"volume"`
}

type yamlRoute struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Cost int64  `yaml:"cost"`
}

// ReadYAML decodes a YAML dataset. Unknown keys are rejected. Network is nil when the
// document lists no routes.
func ReadYAML(r io.Reader) (Dataset, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, fmt.Errorf("%w: empty document", ErrFormat)
		}

		return Dataset{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	centers := make([]facility.Center, len(doc.Centers))
	for j, c := range doc.Centers {
		centers[j] = facility.Center{ID: c.ID, UnitCost: c.UnitCost, FixedCost: c.FixedCost}
	}
	clients := make([]facility.Client, len(doc.Clients))
	for i, c := range doc.Clients {
		clients[i] = facility.Client{ID: c.ID, Volume: c.Volume}
	}
	in, err := facility.NewInstance(centers, clients)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if err = checkSharedIDs(in); err != nil {
		return Dataset{}, err
	}

	ds := Dataset{Instance: in}
	if len(doc.Routes) == 0 {
		return ds, nil
	}
	ds.Network = network.NewNetwork(network.WithDirected(doc.Directed))
	for k, rt := range doc.Routes {
		if _, err = ds.Network.AddRoute(rt.From, rt.To, rt.Cost); err != nil {
			return Dataset{}, fmt.Errorf("%w: routes[%d]: %w", ErrFormat, k, err)
		}
	}
	if err = BuildNetwork(in, ds.Network); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return ds, nil
}

// WriteYAML encodes ds in the layout ReadYAML accepts.
func WriteYAML(w io.Writer, ds Dataset) error {
	doc := yamlDoc{
		Centers: make([]yamlCenter, 0, ds.Instance.NumCenters()),
		Clients: make([]yamlClient, 0, ds.Instance.NumClients()),
	}
	for _, c := range ds.Instance.Centers() {
		doc.Centers = append(doc.Centers, yamlCenter{ID: c.ID, UnitCost: c.UnitCost, FixedCost: c.FixedCost})
	}
	for _, c := range ds.Instance.Clients() {
		doc.Clients = append(doc.Clients, yamlClient{ID: c.ID, Volume: c.Volume})
	}
	if ds.Network != nil {
		doc.Directed = ds.Network.Directed()
		for _, r := range ds.Network.Routes() {
			doc.Routes = append(doc.Routes, yamlRoute{From: r.From, To: r.To, Cost: r.Cost})
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("dataset: encode yaml: %w", err)
	}

	return enc.Close()
}
