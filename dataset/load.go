// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/dcplan/network"
)

// LoadFile reads a dataset from path, choosing the reader by extension:
// .yaml/.yml → ReadYAML; .txt, .csv or none → ReadText.
func LoadFile(path string) (Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".txt", ".csv", "":
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	if ext == ".yaml" || ext == ".yml" {
		ds, err := ReadYAML(f)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", path, err)
		}

		return ds, nil
	}
	in, err := ReadText(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}

	return Dataset{Instance: in}, nil
}

// LoadRoutes reads a route list file (see ReadRoutes).
func LoadRoutes(path string, opts ...network.Option) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	net, err := ReadRoutes(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return net, nil
}
