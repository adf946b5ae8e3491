// SPDX-License-Identifier: MIT

// Command dpctl solves, simulates, validates and plots the bundled
// dynamic-programming scenarios.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "dpctl:", err)
		stop()
		os.Exit(1)
	}
}
