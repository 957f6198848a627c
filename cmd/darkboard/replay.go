package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard/pkg/board"
	"github.com/darkboard/darkboard/pkg/core"
)

var replayDryRun bool

var replayCmd = &cobra.Command{
	Use:   "replay [script.yaml]",
	Short: "Drive the board from a scripted sequence of frames",
	Long: `Replay feeds the frames of a YAML script to the board as if a user had
produced them: double-clicks, title and body edits, moves, pins and closes.
The resulting board is saved unless --dry-run is set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open script", err)
		}
		host, err := board.LoadScript(f)
		f.Close()
		if err != nil {
			fatal("Invalid script", err)
		}

		ctx := cmd.Context()
		svc := openBoard(ctx)
		b := board.New(svc.Store(), nil)
		if err := b.Run(ctx, host); err != nil {
			fatal("Replay failed", err)
		}

		if !replayDryRun {
			if err := svc.Flush(ctx); err != nil {
				fatal("Failed to save board", err)
			}
		}

		fmt.Printf("Replayed %d frames\n", len(host.Rendered)-1)
		for _, n := range host.Last() {
			fmt.Printf("%3d %-9s %-31s %s\n", n.ID, stateLabel(n), n.Title, n.Body)
		}
	},
}

func stateLabel(n core.Note) string {
	if n.Pinned {
		return n.State.String() + "*"
	}
	return n.State.String()
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "Do not save the result")
}
