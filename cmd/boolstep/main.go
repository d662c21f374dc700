// Package main provides the boolstep CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/boolstep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
