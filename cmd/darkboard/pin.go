package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/core"
)

func pinCommand(use, short string, pinned bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseID(args[0])
			update(cmd.Context(), func(store *core.Store) error {
				if err := requireNote(store, id); err != nil {
					return err
				}
				store.SetPinned(id, pinned)
				return nil
			})
			fmt.Printf("Note %sned: %d\n", use, id)
		},
	}
}

func init() {
	rootCmd.AddCommand(pinCommand("pin", "Lock a note in place", true))
	rootCmd.AddCommand(pinCommand("unpin", "Let a note be moved again", false))
}
