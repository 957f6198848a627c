package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of darkboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("darkboard version %s\n", strings.TrimSpace(darkboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
