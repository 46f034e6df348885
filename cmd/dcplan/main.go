// SPDX-License-Identifier: MIT

// Command dcplan chooses which distribution centers to open and assigns every client
// to one of them at minimum total cost.
//
// Usage:
//
//	dcplan solve    --instance data.txt --routes routes.csv [--policy bounded --branching 3]
//	dcplan matrix   --instance data.yaml
//	dcplan generate --clients 50 --centers 8 --seed 7 --out data.yaml
//
// Every solve/matrix flag can also come from a YAML file (--config) or a DCPLAN_*
// environment variable, e.g. DCPLAN_SEARCH_POLICY=bounded.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if err != nil {
		a.zapLogger().Error("dcplan failed", zap.Error(err))
		_ = a.zapLogger().Sync()
		os.Exit(1)
	}
	_ = a.zapLogger().Sync()
}
