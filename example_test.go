package darkboard_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/darkboard/darkboard"
	"github.com/darkboard/darkboard/pkg/core"
)

// Example_basic demonstrates how to open a board, add a note, flush it and read it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "darkboard-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()

	board, err := darkboard.Open(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	// 1. Drop a note and give it a title
	store := board.Store()
	id, _, err := store.CreateNote(core.Position{X: 40, Y: 40})
	if err != nil {
		log.Fatal(err)
	}
	store.SetTitle(id, "Groceries")
	store.ConfirmTitle(id)

	// 2. Write the board
	if err := board.Flush(ctx); err != nil {
		log.Fatal(err)
	}

	// 3. Open it again
	reopened, err := darkboard.Open(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	for n := range reopened.Store().ActiveNotes() {
		fmt.Printf("Found note %d: %s\n", n.ID, n.Title)
	}
	// Output:
	// Found note 0: Groceries
}
