package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/core"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the board",
	Long:  `Delete closes the note. It is left out of the notes file from now on and its id can be reused.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		update(cmd.Context(), func(store *core.Store) error {
			if err := requireNote(store, id); err != nil {
				return err
			}
			store.SoftDelete(id)
			return nil
		})
		fmt.Printf("Note deleted: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
