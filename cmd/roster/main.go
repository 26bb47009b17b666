// Package main provides the entry point for the roster CLI tool.
package main

import "github.com/agentstation/roster/cmd/roster/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
