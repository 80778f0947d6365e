package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/coregx/rematch/simd"
)

var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the version of rematch and the vector capability of this host",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rematch v%s\n", version)
	fmt.Fprintf(out, "Commit: %s\n", commit)
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Vector: %s\n", simd.Probe())
	return nil
}
