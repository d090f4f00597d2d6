// Package main implements the mnemo-api command: the HTTP server for
// visual memory exercise sessions plus its operational subcommands.
package main

import (
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
