// SPDX-License-Identifier: MIT

// Package config loads the dcplan run configuration.
//
// Sources, highest priority first: command-line flags, DCPLAN_* environment variables
// (dots become underscores, e.g. DCPLAN_SEARCH_POLICY), an optional YAML file, and the
// defaults below. All values are validated on load.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/routing"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "DCPLAN"

// Output and log formats.
const (
	OutputText = "text"
	OutputJSON = "json"

	LogConsole = "console"
	LogJSON    = "json"
)

// Config is the full run configuration.
type Config struct {
	// Instance is the dataset file (.txt/.csv or .yaml/.yml).
	Instance string `mapstructure:"instance"`
	// Routes is an optional route list; it replaces routes embedded in a YAML instance.
	Routes string `mapstructure:"routes"`
	// Directed makes every route read from Routes one-way.
	Directed bool `mapstructure:"directed"`

	Search  SearchConfig  `mapstructure:"search"`
	Routing RoutingConfig `mapstructure:"routing"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
}

// SearchConfig maps onto facility.Options.
type SearchConfig struct {
	Policy    string        `mapstructure:"policy"`
	Branching int           `mapstructure:"branching"`
	Viability float64       `mapstructure:"viability"`
	BlockSize int           `mapstructure:"block_size"`
	TimeLimit time.Duration `mapstructure:"time_limit"`
}

// RoutingConfig maps onto routing options. Zero MaxCost means no cap.
type RoutingConfig struct {
	BlockedThreshold int64 `mapstructure:"blocked_threshold"`
	MaxCost          int64 `mapstructure:"max_cost"`
}

// OutputConfig selects the report format and an optional metrics dump.
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	MetricsFile string `mapstructure:"metrics_file"`
}

// LogConfig selects the zap encoder and the logr verbosity handed to the optimizer.
type LogConfig struct {
	Format    string `mapstructure:"format"`
	Verbosity int    `mapstructure:"verbosity"`
}

// flagSpec ties a command-line flag to its configuration key.
type flagSpec struct {
	key, name, usage string
	def              any
}

var flagSpecs = []flagSpec{
	{"instance", "instance", "instance file (.txt, .csv, .yaml, .yml)", ""},
	{"routes", "routes", "route list file (from,to,cost per line)", ""},
	{"directed", "directed", "treat routes as one-way", false},
	{"search.policy", "policy", "enumeration policy: exhaustive or bounded", facility.Exhaustive.String()},
	{"search.branching", "branching", "candidates per client under the bounded policy", facility.DefaultBranchingFactor},
	{"search.viability", "viability", "viability factor for closed centers under the bounded policy", facility.DefaultViability},
	{"search.block_size", "block-size", "clients per fixed-cost block in the lower bound (-1 = policy default, 0 = off)", -1},
	{"search.time_limit", "time-limit", "abort the search after this long (0 = no limit)", time.Duration(0)},
	{"routing.blocked_threshold", "blocked-threshold", "routes costing at least this much are closed (0 = none)", int64(0)},
	{"routing.max_cost", "max-cost", "ignore paths costing more than this (0 = no cap)", int64(0)},
	{"output.format", "output", "report format: text or json", OutputText},
	{"output.metrics_file", "metrics-file", "write search metrics in Prometheus text format to this file", ""},
	{"log.format", "log-format", "log encoding: console or json", LogConsole},
	{"log.verbosity", "v", "optimizer log verbosity (0 = quiet, 1 = progress)", 0},
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	for _, f := range flagSpecs {
		v.SetDefault(f.key, f.def)
	}
}

// BindFlags declares the configuration flags on fs and binds them to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, f := range flagSpecs {
		switch d := f.def.(type) {
		case string:
			fs.String(f.name, d, f.usage)
		case bool:
			fs.Bool(f.name, d, f.usage)
		case int:
			fs.Int(f.name, d, f.usage)
		case int64:
			fs.Int64(f.name, d, f.usage)
		case float64:
			fs.Float64(f.name, d, f.usage)
		case time.Duration:
			fs.Duration(f.name, d, f.usage)
		default:
			return fmt.Errorf("config: flag %q has unsupported type %T", f.name, f.def)
		}
		if err := v.BindPFlag(f.key, fs.Lookup(f.name)); err != nil {
			return fmt.Errorf("config: bind %q: %w", f.name, err)
		}
	}

	return nil
}

// Load resolves the configuration from v, reading file first when it is non-empty.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if _, err := facility.ParsePolicy(c.Search.Policy); err != nil {
		return fmt.Errorf("%w: search.policy: %w", ErrInvalidConfig, err)
	}
	if c.Search.Branching < 1 {
		return fmt.Errorf("%w: search.branching must be >= 1, got %d", ErrInvalidConfig, c.Search.Branching)
	}
	if c.Search.Viability < 1 {
		return fmt.Errorf("%w: search.viability must be >= 1, got %.2f", ErrInvalidConfig, c.Search.Viability)
	}
	if c.Search.BlockSize < -1 {
		return fmt.Errorf("%w: search.block_size must be >= -1, got %d", ErrInvalidConfig, c.Search.BlockSize)
	}
	if c.Search.TimeLimit < 0 {
		return fmt.Errorf("%w: search.time_limit must be >= 0, got %s", ErrInvalidConfig, c.Search.TimeLimit)
	}
	if c.Routing.BlockedThreshold < 0 {
		return fmt.Errorf("%w: routing.blocked_threshold must be >= 0, got %d", ErrInvalidConfig, c.Routing.BlockedThreshold)
	}
	if c.Routing.MaxCost < 0 {
		return fmt.Errorf("%w: routing.max_cost must be >= 0, got %d", ErrInvalidConfig, c.Routing.MaxCost)
	}
	switch c.Output.Format {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: output.format must be %q or %q, got %q", ErrInvalidConfig, OutputText, OutputJSON, c.Output.Format)
	}
	switch c.Log.Format {
	case LogConsole, LogJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalidConfig, LogConsole, LogJSON, c.Log.Format)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("%w: log.verbosity must be >= 0, got %d", ErrInvalidConfig, c.Log.Verbosity)
	}

	return nil
}

// FacilityOptions converts the search section into optimizer options.
func (c Config) FacilityOptions() ([]facility.Option, error) {
	p, err := facility.ParsePolicy(c.Search.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return []facility.Option{
		facility.WithPolicy(p),
		facility.WithBranchingFactor(c.Search.Branching),
		facility.WithViabilityFactor(c.Search.Viability),
		facility.WithBlockSize(c.Search.BlockSize),
		facility.WithTimeLimit(c.Search.TimeLimit),
	}, nil
}

// RoutingOptions converts the routing section; zero values keep routing defaults.
func (c Config) RoutingOptions() []routing.Option {
	var opts []routing.Option
	if c.Routing.BlockedThreshold > 0 {
		opts = append(opts, routing.WithBlockedThreshold(c.Routing.BlockedThreshold))
	}
	if c.Routing.MaxCost > 0 {
		opts = append(opts, routing.WithMaxCost(c.Routing.MaxCost))
	}

	return opts
}
