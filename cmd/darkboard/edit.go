package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/core"
)

var titleCmd = &cobra.Command{
	Use:   "title [id] [text]",
	Short: "Set the title of a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		update(cmd.Context(), func(store *core.Store) error {
			if err := requireNote(store, id); err != nil {
				return err
			}
			store.SetTitle(id, args[1])
			store.ConfirmTitle(id)
			return nil
		})
		fmt.Printf("Note updated: %d\n", id)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id] [body]",
	Short: "Replace the body of a note",
	Long:  `Edit replaces the body text. Line breaks are stored as spaces.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		update(cmd.Context(), func(store *core.Store) error {
			if err := requireNote(store, id); err != nil {
				return err
			}
			store.BeginEdit(id)
			store.CommitEdit(id, args[1])
			return nil
		})
		fmt.Printf("Note updated: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(editCmd)
}
