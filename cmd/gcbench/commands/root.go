// ABOUTME: Root cobra command and global flags for gcbench
// ABOUTME: Wires every subcommand onto the root

// Package commands implements the gcbench command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/prateek/tracegc"
)

var (
	// Version information injected at build time.
	Version = tracegc.Version
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "gcbench",
	Short: "Exercise and inspect the tracegc collector",
	Long: `gcbench drives the tracegc mark-and-sweep collector with a synthetic
interpreter workload of lists, cycles and scoped variables, reports
collection statistics and explains what keeps objects alive.

Use "gcbench [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults and GCBENCH_* environment)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
