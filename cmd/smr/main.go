// Command smr computes the structural microenvironment ratio of residues in
// designed proteins against natural templates.
//
// Usage:
//
//	smr score DESIGN NATURAL RESID [--radius 8] [--format json|yaml]
//	smr batch FILE [--workers N]
//	smr align DESIGN NATURAL
//	smr serve [--addr 127.0.0.1:8080]
//
// Every command accepts --config FILE (YAML) and --log-level/--log-format.
// Configuration keys may also be set with SMR_ environment variables, e.g.
// SMR_HBOND_ANGLE_CUTOFF=130.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
