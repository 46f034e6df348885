// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/dcplan/facility"
)

// WriteText renders sol as a human-readable report: total, opened centers with their
// share of the cost, then one line per client.
func WriteText(w io.Writer, in facility.Instance, costs facility.CostMatrix, sol facility.Solution) error {
	doc := Build(in, costs, sol, Meta{})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total cost: %d\n\n", doc.TotalCost)

	fmt.Fprintf(tw, "Opened centers: %d of %d\n", len(doc.Centers), in.NumCenters())
	fmt.Fprintln(tw, "CENTER\tUNIT\tFIXED\tCLIENTS\tVOLUME\tVARIABLE")
	for _, c := range doc.Centers {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", c.ID, c.UnitCost, c.FixedCost, len(c.Clients), c.Volume, c.VariableCost)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Assignments:")
	fmt.Fprintln(tw, "CLIENT\tCENTER\tVOLUME\tTRANSPORT\tCOST")
	for _, a := range doc.Assignments {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", a.Client, a.Center, a.Volume, a.Transport, a.Cost)
	}

	return tw.Flush()
}

// WriteJSON writes the Document for sol as indented JSON.
func WriteJSON(w io.Writer, in facility.Instance, costs facility.CostMatrix, sol facility.Solution, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Build(in, costs, sol, meta)); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}

	return nil
}

// WriteMatrix prints a cost matrix with center rows and client columns. Unreachable
// entries print as "-".
func WriteMatrix(w io.Writer, in facility.Instance, costs facility.CostMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, c := range in.Clients() {
		fmt.Fprintf(tw, "%s\t", c.ID)
	}
	fmt.Fprintln(tw)
	for j, row := range costs {
		fmt.Fprintf(tw, "%s\t", in.Center(j).ID)
		for _, v := range row {
			if v == facility.Unreachable {
				fmt.Fprint(tw, "-\t")
				continue
			}
			fmt.Fprintf(tw, "%d\t", v)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
