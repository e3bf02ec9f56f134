package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/vellum"
)

var fetchPackagePath string

var fetchCmd = &cobra.Command{
	Use:   "fetch @namespace/name:version",
	Short: "Make a package available in the on-disk cache",
	Long: `Fetch resolves a package spec the way the compiler would on
first import: local data directory, then cache directory, then (for the
preview namespace) a download from the package registry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := vellum.ParsePackageSpec(args[0])
		if err != nil {
			return err
		}

		storage := vellum.NewPackageStorage("", fetchPackagePath, nil)
		dir, err := storage.Prepare(&spec)
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchPackagePath, "package-path", "", "override the package cache directory")
}
