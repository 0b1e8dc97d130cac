// stageplay runs an interactive fiction world described by a YAML, JSON or
// Lua document.
// Usage: stageplay [--plain] [--script <file>] [--trace] [--debug] [--save-dir <dir>] [world-file]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
