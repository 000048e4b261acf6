// Package main provides the CLI for the LeapSPL query completion engine.
package main

import (
	"os"

	"github.com/leapstack-labs/leapspl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
