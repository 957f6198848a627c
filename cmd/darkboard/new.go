package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/core"
)

var (
	newX     float32
	newY     float32
	newTitle string
	newBody  string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a note to the board",
	Long: `New drops a note at the given position. The title is confirmed right away,
so unlike a double-click on the board the note does not wait for its title.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var id core.ID
		update(cmd.Context(), func(store *core.Store) error {
			var created bool
			var err error
			id, created, err = store.CreateNote(core.Position{X: newX, Y: newY})
			if err != nil {
				return err
			}
			if !created {
				pending, _ := store.Pending()
				return fmt.Errorf("note %d is still waiting for its title", pending)
			}
			if cmd.Flags().Changed("title") {
				store.SetTitle(id, newTitle)
			}
			store.ConfirmTitle(id)
			if cmd.Flags().Changed("body") {
				store.CommitEdit(id, newBody)
			}
			return nil
		})
		fmt.Printf("Note created: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().Float32Var(&newX, "x", 40, "Horizontal position")
	newCmd.Flags().Float32Var(&newY, "y", 40, "Vertical position")
	newCmd.Flags().StringVar(&newTitle, "title", core.DefaultTitle, "Note title")
	newCmd.Flags().StringVar(&newBody, "body", core.DefaultBody, "Note body")
}
