package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	colorMode  string
)

var rootCmd = &cobra.Command{
	Use:   "rematch",
	Short: "rematch - position-automaton pattern matcher",
	Long: `rematch matches byte patterns with a Glushkov position automaton and a
set of shortcuts: vector repeat kernels, a bit-parallel engine for wide
alternations and literal scanning with bounded lookback.

Search is leftmost-longest. Anchors and word boundaries are not supported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML engine configuration")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")

	// Add subcommands
	rootCmd.AddCommand(grepCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
