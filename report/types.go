// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/katalvlaran/dcplan/facility"
)

const unknown = "unknown"

// SysInfo describes the machine a result was produced on.
type SysInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	RAM      string `json:"ram"`
}

// CollectSysInfo probes the host. Fields the platform does not expose are "unknown".
func CollectSysInfo() SysInfo {
	info := SysInfo{Platform: unknown, CPU: unknown, RAM: unknown}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = h.Platform
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 && c[0].ModelName != "" {
		info.CPU = c[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	}

	return info
}

// Meta carries run information that is not part of the Solution itself.
type Meta struct {
	Policy  string
	Stats   facility.Stats
	System  SysInfo
	Comment string
}

// Document is the JSON form of a solved instance.
type Document struct {
	TotalCost   int64         `json:"total_cost"`
	Policy      string        `json:"policy,omitempty"`
	Centers     []CenterEntry `json:"centers"`
	Assignments []ClientEntry `json:"assignments"`
	Search      SearchSummary `json:"search"`
	System      SysInfo       `json:"system"`
	Comment     string        `json:"comment,omitempty"`
}

// CenterEntry is one opened center.
type CenterEntry struct {
	ID           string   `json:"id"`
	UnitCost     int64    `json:"unit_cost"`
	FixedCost    int64    `json:"fixed_cost"`
	Volume       int64    `json:"volume"`
	VariableCost int64    `json:"variable_cost"`
	Clients      []string `json:"clients"`
}

// ClientEntry is one client's assignment.
type ClientEntry struct {
	Client    string `json:"client"`
	Center    string `json:"center"`
	Volume    int64  `json:"volume"`
	Transport int64  `json:"transport"`
	Cost      int64  `json:"cost"`
}

// SearchSummary mirrors facility.Stats.
type SearchSummary struct {
	Nodes          uint64 `json:"nodes"`
	BoundPrunes    uint64 `json:"bound_prunes"`
	PolicyFiltered uint64 `json:"policy_filtered"`
	Improvements   uint64 `json:"improvements"`
	Elapsed        string `json:"elapsed"`
}

// Build assembles the Document for sol. The matrix must be the one sol was optimized
// against.
func Build(in facility.Instance, costs facility.CostMatrix, sol facility.Solution, meta Meta) Document {
	doc := Document{
		TotalCost:   sol.TotalCost(),
		Policy:      meta.Policy,
		Centers:     make([]CenterEntry, 0),
		Assignments: make([]ClientEntry, 0, sol.NumClients()),
		Search: SearchSummary{
			Nodes:          meta.Stats.Nodes,
			BoundPrunes:    meta.Stats.BoundPrunes,
			PolicyFiltered: meta.Stats.PolicyFiltered,
			Improvements:   meta.Stats.Improvements,
			Elapsed:        meta.Stats.Elapsed.Round(time.Microsecond).String(),
		},
		System:  meta.System,
		Comment: meta.Comment,
	}

	for _, u := range facility.Breakdown(in, costs, sol) {
		c := in.Center(u.Center)
		e := CenterEntry{
			ID:           c.ID,
			UnitCost:     c.UnitCost,
			FixedCost:    u.FixedCost,
			Volume:       u.Volume,
			VariableCost: u.VariableCost,
			Clients:      make([]string, 0, len(u.Clients)),
		}
		for _, i := range u.Clients {
			e.Clients = append(e.Clients, in.Client(i).ID)
		}
		doc.Centers = append(doc.Centers, e)
	}

	for i := 0; i < sol.NumClients(); i++ {
		j := sol.CenterOf(i)
		cl := in.Client(i)
		t := costs[j][i]
		doc.Assignments = append(doc.Assignments, ClientEntry{
			Client:    cl.ID,
			Center:    in.Center(j).ID,
			Volume:    cl.Volume,
			Transport: t,
			Cost:      cl.Volume * (t + in.Center(j).UnitCost),
		})
	}

	return doc
}
