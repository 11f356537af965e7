// Package main provides the sampler CLI.
package main

import (
	"os"

	"github.com/mekor-lib/sampler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
