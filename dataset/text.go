// SPDX-License-Identifier: MIT

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
)

// lineReader yields trimmed, non-empty, non-comment lines with their 1-based number.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

// next returns the next meaningful line; ok is false at EOF.
func (lr *lineReader) next() (text string, ok bool, err error) {
	for lr.sc.Scan() {
		lr.line++
		text = strings.TrimSpace(lr.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		return text, true, nil
	}
	if err = lr.sc.Err(); err != nil {
		return "", false, fmt.Errorf("dataset: read: %w", err)
	}

	return "", false, nil
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, lr.line, fmt.Sprintf(format, args...))
}

// fields reads the next line and splits it on sep into exactly n trimmed fields.
func (lr *lineReader) fields(sep string, n int, what string) ([]string, error) {
	text, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of input, want %s", ErrFormat, what)
	}
	parts := strings.Split(text, sep)
	if len(parts) != n {
		return nil, lr.errorf("%s: want %d fields, got %d", what, n, len(parts))
	}
	for k := range parts {
		parts[k] = strings.TrimSpace(parts[k])
	}

	return parts, nil
}

func (lr *lineReader) int64Field(s, name string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, lr.errorf("%s %q is not an integer", name, s)
	}

	return v, nil
}

// count parses a header line whose first tab-separated field is a non-negative count.
func (lr *lineReader) count(what string) (int, error) {
	text, ok, err := lr.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of input, want %s", ErrFormat, what)
	}
	head := strings.TrimSpace(strings.Split(text, "\t")[0])
	n, err := strconv.Atoi(head)
	if err != nil || n < 0 {
		return 0, lr.errorf("%s %q is not a non-negative integer", what, head)
	}

	return n, nil
}

// ReadText parses the plain-text instance format:
//
//	<numClients>[\t...]
//	<numCenters>[\t...]
//	<centerID>,<unitCost>,<fixedCost>     (numCenters lines)
//	<clientID>,<volume>                   (numClients lines)
//
// Only the first tab-separated field of the two header lines is read. Blank lines and
// lines starting with '#' are skipped; trailing content is ignored.
func ReadText(r io.Reader) (facility.Instance, error) {
	lr := newLineReader(r)

	numClients, err := lr.count("client count")
	if err != nil {
		return facility.Instance{}, err
	}
	numCenters, err := lr.count("center count")
	if err != nil {
		return facility.Instance{}, err
	}

	var (
		parts   []string
		k       int
		centers = make([]facility.Center, numCenters)
		clients = make([]facility.Client, numClients)
	)
	for k = 0; k < numCenters; k++ {
		if parts, err = lr.fields(",", 3, "center"); err != nil {
			return facility.Instance{}, err
		}
		centers[k].ID = parts[0]
		if centers[k].UnitCost, err = lr.int64Field(parts[1], "unit cost"); err != nil {
			return facility.Instance{}, err
		}
		if centers[k].FixedCost, err = lr.int64Field(parts[2], "fixed cost"); err != nil {
			return facility.Instance{}, err
		}
	}
	for k = 0; k < numClients; k++ {
		if parts, err = lr.fields(",", 2, "client"); err != nil {
			return facility.Instance{}, err
		}
		clients[k].ID = parts[0]
		if clients[k].Volume, err = lr.int64Field(parts[1], "volume"); err != nil {
			return facility.Instance{}, err
		}
	}

	in, err := facility.NewInstance(centers, clients)
	if err != nil {
		return facility.Instance{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if err = checkSharedIDs(in); err != nil {
		return facility.Instance{}, err
	}

	return in, nil
}

// WriteText renders in in the format ReadText accepts.
func WriteText(w io.Writer, in facility.Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\tclients\n%d\tcenters\n", in.NumClients(), in.NumCenters())
	for _, c := range in.Centers() {
		fmt.Fprintf(bw, "%s,%d,%d\n", c.ID, c.UnitCost, c.FixedCost)
	}
	for _, c := range in.Clients() {
		fmt.Fprintf(bw, "%s,%d\n", c.ID, c.Volume)
	}

	return bw.Flush()
}

// ReadRoutes parses a route list, one `from,to,cost` triple per line, into a network.
// Blank lines and '#' comments are skipped.
func ReadRoutes(r io.Reader, opts ...network.Option) (*network.Network, error) {
	lr := newLineReader(r)
	net := network.NewNetwork(opts...)

	var (
		text string
		ok   bool
		err  error
		cost int64
	)
	for {
		if text, ok, err = lr.next(); err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		parts := strings.Split(text, ",")
		if len(parts) != 3 {
			return nil, lr.errorf("route: want 3 fields, got %d", len(parts))
		}
		if cost, err = lr.int64Field(strings.TrimSpace(parts[2]), "cost"); err != nil {
			return nil, err
		}
		if _, err = net.AddRoute(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), cost); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, lr.line, err)
		}
	}

	return net, nil
}

// WriteRoutes renders every route of net in the ReadRoutes format.
func WriteRoutes(w io.Writer, net *network.Network) error {
	bw := bufio.NewWriter(w)
	for _, r := range net.Routes() {
		fmt.Fprintf(bw, "%s,%s,%d\n", r.From, r.To, r.Cost)
	}

	return bw.Flush()
}
