package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/vellum"
)

var (
	catRoot   string
	catRaw    bool
	catInputs string
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print a file as the compiler would see it",
	Long: `Cat builds a world rooted at --root (the file's directory by
default) and prints the file resolved through the world's cache, so
sandboxing and decoding behave exactly as during compilation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		root := catRoot
		if root == "" {
			root = filepath.Dir(input)
		}

		builder := vellum.NewBuilder(root, vellum.PathInput(input))
		if catInputs != "" {
			data, err := os.ReadFile(catInputs)
			if err != nil {
				return err
			}
			dict, err := vellum.ParseDict(data)
			if err != nil {
				return err
			}
			builder.Inputs(dict)
		}

		world, err := builder.Build()
		if err != nil {
			return err
		}

		if catRaw {
			data, err := world.File(world.Main())
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data.Bytes())
			return err
		}

		src, err := world.Source(world.Main())
		if err != nil {
			return err
		}
		fmt.Print(src.Text())
		return nil
	},
}

func init() {
	catCmd.Flags().StringVar(&catRoot, "root", "", "project root (defaults to the file's directory)")
	catCmd.Flags().BoolVar(&catRaw, "raw", false, "print raw bytes without decoding")
	catCmd.Flags().StringVar(&catInputs, "inputs", "", "JSON file with system inputs")
}
