// Package main provides the nest-combo CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing and execution
//   - Key Types: Cobra command structure
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Exit status 1 with a diagnostic for any failure
//   - Performance Notes: Fast startup; nest is only probed when needed
//
// Usage:
//
//	nest-combo -f project.yml
//	nest-combo users -m -c -s
//	nest-combo my-api -new
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, newRootCmd(), os.Args[1:])
	stop()
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}
