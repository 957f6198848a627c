package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/darkboard/darkboard"
	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

var stateDiagram bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the internal state of the board and its notes file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := darkboard.Init(notesPath(), serviceOptions(slog.Default())...)
		if err != nil {
			fatal("Failed to open notes file", err)
		}
		svc := core.NewService(repo, slog.Default())
		if err := svc.Load(cmd.Context()); err != nil {
			fatal("Failed to load board", err)
		}

		if stateDiagram {
			repoState, ok := stateOf(repo).(fs.RepositoryState)
			if !ok {
				fatal("Error", fmt.Errorf("diagram needs the notes file repository, got %T", repo))
			}
			svcState, _ := svc.State().(core.ServiceState)

			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "board"
			config.SecondaryLabel = "Board Topology"
			fmt.Println(introspection.TreeDiagram(buildBoardTree(svcState, repoState), config))
			return
		}

		report := map[string]any{}
		for _, c := range []any{svc, repo} {
			intro, ok := c.(introspection.Introspectable)
			if !ok {
				continue
			}
			name := fmt.Sprintf("%T", c)
			if comp, ok := c.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			report[name] = intro.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func stateOf(c any) any {
	if intro, ok := c.(introspection.Introspectable); ok {
		return intro.State()
	}
	return nil
}

type boardNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []boardNode
}

func buildBoardTree(svc core.ServiceState, repo fs.RepositoryState) boardNode {
	// Status must match classes in introspection.DefaultStyles()
	watcherStatus := "suspended"
	if repo.WatcherActive {
		watcherStatus = "running"
	}
	fileStatus := "running"
	if repo.TruncatedRead {
		fileStatus = "failed"
	}
	storeStatus := "running"
	if svc.PendingTitle != nil {
		storeStatus = "pending"
	}

	return boardNode{
		Name:   "Board",
		Status: "running",
		Metadata: map[string]string{
			"type": "container",
			"path": repo.Path,
		},
		Children: []boardNode{
			{
				Name:   "Store",
				Status: storeStatus,
				Metadata: map[string]string{
					"type":       "container",
					"notes":      fmt.Sprintf("%d", svc.ActiveNotes),
					"tombstones": fmt.Sprintf("%d", svc.Tombstones),
				},
			},
			{
				Name:   "Notes File",
				Status: fileStatus,
				Metadata: map[string]string{
					"type":      "process",
					"read_only": fmt.Sprintf("%t", repo.ReadOnly),
					"records":   fmt.Sprintf("%d", repo.LastCount),
				},
				Children: []boardNode{
					{
						Name:   "Watcher",
						Status: watcherStatus,
						Metadata: map[string]string{
							"type": "goroutine",
						},
					},
				},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().BoolVar(&stateDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
