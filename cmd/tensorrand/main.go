// Package main provides the tensorrand CLI, which fills a tensor from one of the
// random kernels and prints a summary.
package main

import (
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
