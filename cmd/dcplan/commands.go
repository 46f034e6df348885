// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/dcplan/config"
	"github.com/katalvlaran/dcplan/dataset"
	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/metrics"
	"github.com/katalvlaran/dcplan/report"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dcplan",
		Short:         "Distribution-center location and client assignment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML configuration file")

	root.AddCommand(newSolveCmd(a), newMatrixCmd(a), newGenerateCmd())

	return root
}

// unboundedSearchClients is the client count above which an exhaustive search without a
// time limit gets a warning; the tree grows as centers^clients.
const unboundedSearchClients = 20

const solveLong = `Open centers and assign clients at minimum cost.

The default exhaustive policy proves optimality but its running time grows
exponentially with the number of clients. For instances beyond a few dozen
clients, pass --policy bounded or set --time-limit.`

func newSolveCmd(a *app) *cobra.Command {
	cmd := a.configCommand("solve", "Open centers and assign clients at minimum cost",
		func(cmd *cobra.Command, v *viper.Viper) error {
			cfg, log, err := a.setup(v)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cfg, log)
			if err != nil {
				return err
			}
			costs, err := ds.CostMatrix(cmd.Context(), cfg.RoutingOptions()...)
			if err != nil {
				return err
			}

			opts, err := cfg.FacilityOptions()
			if err != nil {
				return err
			}
			if unboundedSearch(cfg, ds.Instance.NumClients()) {
				a.zapLogger().Warn("exhaustive search without a time limit may run for a very long time; "+
					"consider --policy bounded or --time-limit",
					zap.Int("clients", ds.Instance.NumClients()),
					zap.Int("centers", ds.Instance.NumCenters()))
			}
			opts = append(opts, facility.WithLogger(log))
			var reg *prometheus.Registry
			if cfg.Output.MetricsFile != "" {
				reg = prometheus.NewRegistry()
				obs, err := metrics.NewObserver(reg)
				if err != nil {
					return err
				}
				opts = append(opts, facility.WithObserver(obs))
			}

			opt := facility.NewOptimizer(opts...)
			if err = opt.Initialize(ds.Instance, costs); err != nil {
				return err
			}
			sol, err := opt.OptimizeContext(cmd.Context())
			stats := opt.LastStats()
			log.Info("search finished",
				"nodes", stats.Nodes,
				"boundPrunes", stats.BoundPrunes,
				"policyFiltered", stats.PolicyFiltered,
				"elapsed", stats.Elapsed.String())
			if reg != nil {
				// Written even when the search failed: the counters explain why.
				if werr := writeMetrics(cfg.Output.MetricsFile, reg); werr != nil {
					return werr
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format == config.OutputJSON {
				return report.WriteJSON(out, ds.Instance, costs, sol, report.Meta{
					Policy: cfg.Search.Policy,
					Stats:  stats,
					System: report.CollectSysInfo(),
				})
			}

			return report.WriteText(out, ds.Instance, costs, sol)
		})
	cmd.Long = solveLong

	return cmd
}

// unboundedSearch reports whether cfg runs an exhaustive search with no time limit on
// more than unboundedSearchClients clients.
func unboundedSearch(cfg config.Config, clients int) bool {
	p, err := facility.ParsePolicy(cfg.Search.Policy)
	if err != nil || p != facility.Exhaustive {
		return false
	}

	return cfg.Search.TimeLimit == 0 && clients > unboundedSearchClients
}

func writeMetrics(path string, reg prometheus.Gatherer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics file: %w", err)
	}
	if err = metrics.WriteText(f, reg); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func newMatrixCmd(a *app) *cobra.Command {
	return a.configCommand("matrix", "Print the center × client transport cost matrix",
		func(cmd *cobra.Command, v *viper.Viper) error {
			cfg, log, err := a.setup(v)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cfg, log)
			if err != nil {
				return err
			}
			costs, err := ds.CostMatrix(cmd.Context(), cfg.RoutingOptions()...)
			if err != nil {
				return err
			}

			return report.WriteMatrix(cmd.OutOrStdout(), ds.Instance, costs)
		})
}

func newGenerateCmd() *cobra.Command {
	gc := dataset.DefaultGenerateConfig()
	var out, routesOut string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random, reproducible instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := dataset.Generate(gc)
			if err != nil {
				return err
			}

			return writeDataset(cmd, ds, out, routesOut)
		},
	}
	f := cmd.Flags()
	f.IntVar(&gc.Clients, "clients", gc.Clients, "number of clients")
	f.IntVar(&gc.Centers, "centers", gc.Centers, "number of candidate centers")
	f.IntVar(&gc.Junctions, "junctions", gc.Junctions, "number of pass-through nodes")
	f.IntVar(&gc.ExtraRoutes, "extra-routes", gc.ExtraRoutes, "routes added on top of the spanning tree")
	f.Int64Var(&gc.Seed, "seed", gc.Seed, "random seed (0 = 1)")
	f.Int64Var(&gc.MaxVolume, "max-volume", gc.MaxVolume, "largest client volume")
	f.Int64Var(&gc.MaxUnitCost, "max-unit-cost", gc.MaxUnitCost, "largest per-unit center cost")
	f.Int64Var(&gc.MaxFixedCost, "max-fixed-cost", gc.MaxFixedCost, "largest fixed center cost")
	f.Int64Var(&gc.MaxRouteCost, "max-route-cost", gc.MaxRouteCost, "largest route cost")
	f.StringVar(&out, "out", "-", "output file; .yaml/.yml writes YAML, anything else the text format, - is stdout YAML")
	f.StringVar(&routesOut, "routes-out", "", "route list file, required with the text format")

	return cmd
}

func writeDataset(cmd *cobra.Command, ds dataset.Dataset, out, routesOut string) error {
	if out == "-" {
		return dataset.WriteYAML(cmd.OutOrStdout(), ds)
	}

	ext := strings.ToLower(filepath.Ext(out))
	yamlOut := ext == ".yaml" || ext == ".yml"
	if !yamlOut && routesOut == "" {
		return fmt.Errorf("%w: --routes-out is required when --out is a text file", config.ErrInvalidConfig)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if yamlOut {
		err = dataset.WriteYAML(f, ds)
	} else {
		err = dataset.WriteText(f, ds.Instance)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil || yamlOut {
		return err
	}

	rf, err := os.Create(routesOut)
	if err != nil {
		return err
	}
	if err = dataset.WriteRoutes(rf, ds.Network); err != nil {
		_ = rf.Close()
		return err
	}

	return rf.Close()
}
