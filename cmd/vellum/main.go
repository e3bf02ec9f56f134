package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/vellum"
)

var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "Inspect a compilation world: files, packages, dates",
	Long: `Vellum resolves project files and remote packages the way the
document compiler sees them: sandboxed to a root, cached, and
fingerprinted.`,
}

func main() {
	rootCmd.Version = vellum.Version
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(todayCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
