package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes on the board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openBoard(cmd.Context())
		notes := slices.Collect(svc.Store().ActiveNotes())

		if listJSON {
			ser, err := fs.SerializerFor("json", false)
			if err != nil {
				fatal("Error", err)
			}
			if err := fs.Export(os.Stdout, ser, notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, n := range notes {
			pin := " "
			if n.Pinned {
				pin = "*"
			}
			fmt.Printf("%3d %s %-31s %s\n", n.ID, pin, n.Title, n.Body)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
