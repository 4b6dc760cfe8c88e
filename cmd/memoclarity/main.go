// Package main is the single-binary entrypoint for MemoClarity.
// One binary, local storage, no accounts.
package main

import "github.com/memoclarity/memoclarity/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
