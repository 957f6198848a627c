package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/darkboard/darkboard"
	"github.com/darkboard/darkboard/pkg/adapters/tui"
	"github.com/darkboard/darkboard/pkg/board"
)

// debugLogFile receives logs while the board owns the terminal.
const debugLogFile = "darkboard-debug.log"

// runBoard opens the interactive board and saves it once the user quits.
func runBoard(ctx context.Context) {
	// The board takes over the terminal, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if verbose {
		f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fatal("Failed to open debug log", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	svc, err := darkboard.Open(ctx, notesPath(), serviceOptions(logger)...)
	if err != nil {
		fatal("Failed to open board", err)
	}

	runErr := tui.Run(ctx, board.New(svc.Store(), logger), tui.WithLogger(logger))

	// Save whatever is on the board even if the terminal went away.
	if !isReadOnly() {
		if err := svc.Flush(context.WithoutCancel(ctx)); err != nil {
			fatal("Failed to save board", err)
		}
	}
	if runErr != nil {
		fatal("Board stopped", runErr)
	}
}
