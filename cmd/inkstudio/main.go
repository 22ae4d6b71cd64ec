// Package main provides the InkStudio command-line interface.
package main

import (
	"os"

	"github.com/inkworks-labs/inkstudio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
