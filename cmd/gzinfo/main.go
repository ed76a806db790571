// cmd/gzinfo/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "gzinfo",
	Short:         "gzinfo - read gzip header and trailer metadata",
	Long:          "gzinfo reports gzip metadata (flags, OS, mtime, CRC32, sizes) without decompressing.",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
