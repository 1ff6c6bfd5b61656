// ABOUTME: Entry point for the gcbench command line tool
// ABOUTME: Injects build metadata and runs the cobra root command

package main

import (
	"fmt"
	"os"

	"github.com/prateek/tracegc/cmd/gcbench/commands"
)

// Build-time variables injected via ldflags
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

func main() {
	if version != "" {
		commands.Version = version
	}
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
