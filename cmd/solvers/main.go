// Package main provides the solvers CLI.
package main

import (
	"os"

	"github.com/born-ml/solvers/cmd/solvers/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
