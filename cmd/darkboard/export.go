package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as JSON, YAML, CSV or Markdown",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format := exportFormat
		if format == "" && exportOutput != "" {
			format = exportOutput
		}
		if format == "" {
			format = "json"
		}
		ser, err := fs.SerializerFor(format, false)
		if err != nil {
			fatal("Error", err)
		}

		svc := openBoard(cmd.Context())

		var w io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				fatal("Failed to create output", err)
			}
			defer f.Close()
			w = f
		}

		if err := fs.Export(w, ser, svc.Store().Snapshot()); err != nil {
			fatal("Failed to export", err)
		}
		if exportOutput != "" {
			fmt.Fprintf(os.Stderr, "Exported %d notes to %s\n", svc.Store().Len(), exportOutput)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml, csv or md (default: from --output, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
