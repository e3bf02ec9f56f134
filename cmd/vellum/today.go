package main

import (
	"fmt"

	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	"github.com/jpl-au/vellum"
)

var (
	todayOffset int
	todayAsJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the date a compilation would observe",
	RunE: func(cmd *cobra.Command, args []string) error {
		world, err := vellum.NewBuilder(".", vellum.BytesInput(nil)).Build()
		if err != nil {
			return err
		}

		var date vellum.Date
		if cmd.Flags().Changed("utc-offset") {
			date = world.Today(todayOffset)
		} else {
			date = world.Today()
		}

		if todayAsJSON {
			out, err := json.Marshal(date)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Printf("%04d-%02d-%02d\n", date.Year, date.Month, date.Day)
		return nil
	},
}

func init() {
	todayCmd.Flags().IntVar(&todayOffset, "utc-offset", 0, "hour offset from UTC instead of local time")
	todayCmd.Flags().BoolVar(&todayAsJSON, "json", false, "emit JSON")
}
