// Package main provides the pubgen CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubgen",
	Short: "Static publication pages from a BibTeX bibliography",
	Long: `pubgen turns a BibTeX bibliography into static HTML for an academic site.

It parses the bibliography file, writes one page per publication under
publication/, and writes a grouped, year-sorted index under publications/.
Pages from entries that no longer exist are removed. Each run is a full
rebuild; output is deterministic for a given input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
