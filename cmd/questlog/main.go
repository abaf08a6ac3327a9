// Package main is the single-binary entrypoint for QuestLog.
package main

import "github.com/questlog/questlog/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
