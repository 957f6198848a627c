package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

var importStrict bool

var importCmd = &cobra.Command{
	Use:   "import [pattern]...",
	Short: "Add notes from exported files",
	Long: `Import reads every file matching the patterns (doublestar globs such as
"boards/**/*.yaml") and adds its notes to the board under new ids.
The format is picked from the file extension.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var files []string
		for _, pattern := range args {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				fatal("Invalid pattern", err)
			}
			if len(matches) == 0 {
				slog.Warn("pattern matched no files", "pattern", pattern)
			}
			files = append(files, matches...)
		}

		added := 0
		update(cmd.Context(), func(store *core.Store) error {
			for _, path := range files {
				notes, err := readNotes(path)
				if err != nil {
					return err
				}
				for _, n := range notes {
					if n.IsDeleted() {
						continue
					}
					id, err := store.Import(n)
					if errors.Is(err, core.ErrCapacityExceeded) {
						slog.Warn("board is full, stopping import", "file", path)
						return nil
					}
					if err != nil {
						return err
					}
					slog.Debug("note imported", "file", path, "id", id)
					added++
				}
			}
			return nil
		})
		fmt.Printf("Imported %d notes from %d files\n", added, len(files))
	},
}

func readNotes(path string) ([]core.Note, error) {
	ser, err := fs.SerializerFor(path, importStrict)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	notes, err := ser.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return notes, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importStrict, "strict", false, "Reject unknown fields")
}
