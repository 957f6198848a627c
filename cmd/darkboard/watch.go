package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard"
	lifecycleadapter "github.com/darkboard/darkboard/pkg/adapters/lifecycle"
)

var watchReload bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to the notes file until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancelCause(cmd.Context())
		defer cancel(nil)

		opts := append(serviceOptions(slog.Default()),
			darkboard.WithWatcherErrorHandler(func(err error) {
				cancel(fmt.Errorf("watcher: %w", err))
			}),
		)
		svc, err := darkboard.New(notesPath(), opts...)
		if err != nil {
			fatal("Failed to open board", err)
		}

		events, err := svc.Watch(ctx)
		if err != nil {
			fatal("Failed to watch", err)
		}
		src := lifecycleadapter.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintln(os.Stderr, "Watching for changes (ctrl+c to stop)")
		for ev := range src.Events() {
			change, ok := ev.(lifecycleadapter.Change)
			if !ok {
				continue
			}
			fmt.Printf("%s %s\n", change.At.Format(time.TimeOnly), change)

			if watchReload && change.NeedsReload() {
				board, err := darkboard.Open(ctx, notesPath(), serviceOptions(slog.Default())...)
				if err != nil {
					slog.Warn("reload failed", "error", err)
					continue
				}
				fmt.Printf("  %d notes\n", board.Store().Len())
			}
		}

		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
			fatal("Watch stopped", cause)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchReload, "reload", false, "Reload the board after each change and print the note count")
}
