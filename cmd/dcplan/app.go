// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/dcplan/config"
	"github.com/katalvlaran/dcplan/dataset"
	"github.com/katalvlaran/dcplan/network"
)

// app carries what the subcommands share: the resolved configuration and the logger.
type app struct {
	cfgFile string
	log     *zap.Logger
}

// zapLogger returns the configured logger, or a production logger when configuration
// failed before one was built.
func (a *app) zapLogger() *zap.Logger {
	if a.log == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		a.log = l
	}

	return a.log
}

// newLogger builds the zap logger for format; verbosity v enables logr V(v) records.
func newLogger(format string, v int) (*zap.Logger, error) {
	var zc zap.Config
	if format == config.LogJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	}
	// logr V(n) maps to zap level -n.
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-v))
	zc.OutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l, nil
}

// setup resolves the configuration bound to cmd's flags and replaces the logger.
func (a *app) setup(v *viper.Viper) (config.Config, logr.Logger, error) {
	cfg, err := config.Load(v, a.cfgFile)
	if err != nil {
		return config.Config{}, logr.Discard(), err
	}
	l, err := newLogger(cfg.Log.Format, cfg.Log.Verbosity)
	if err != nil {
		return config.Config{}, logr.Discard(), err
	}
	a.log = l

	return cfg, zapr.NewLogger(l), nil
}

// configCommand creates a subcommand whose flags are the full configuration set.
func (a *app) configCommand(use, short string, run func(cmd *cobra.Command, v *viper.Viper) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		// flagSpecs is static; a failure here is a programming error.
		panic(err)
	}

	return cmd
}

// loadDataset reads cfg.Instance and, when given, the separate route list.
func loadDataset(cfg config.Config, log logr.Logger) (dataset.Dataset, error) {
	if cfg.Instance == "" {
		return dataset.Dataset{}, fmt.Errorf("%w: --instance is required", config.ErrInvalidConfig)
	}
	ds, err := dataset.LoadFile(cfg.Instance)
	if err != nil {
		return dataset.Dataset{}, err
	}
	if cfg.Routes != "" {
		net, err := dataset.LoadRoutes(cfg.Routes, network.WithDirected(cfg.Directed))
		if err != nil {
			return dataset.Dataset{}, err
		}
		ds.Network = net
	}
	if ds.Network == nil {
		return dataset.Dataset{}, fmt.Errorf("%w: %s has no routes, pass --routes", dataset.ErrNoNetwork, cfg.Instance)
	}
	log.Info("dataset loaded",
		"instance", cfg.Instance,
		"clients", ds.Instance.NumClients(),
		"centers", ds.Instance.NumCenters(),
		"nodes", ds.Network.NodeCount(),
		"routes", ds.Network.RouteCount())

	return ds, nil
}
