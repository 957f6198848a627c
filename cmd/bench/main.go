package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkboard/darkboard"
	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

func main() {
	rounds := flag.Int("rounds", 100, "Number of save/load rounds")
	keep := flag.Bool("keep", false, "Keep the benchmark board after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "darkboard_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.TODO()

	service, err := darkboard.New(benchDir, darkboard.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	// 2. Fill the board with notes carrying the longest title and body.
	fmt.Printf("Filling board with %d notes in %s...\n", core.MaxNotes, benchDir)
	store := service.Store()
	title := strings.Repeat("t", core.MaxTitleLen)
	body := strings.Repeat("b", core.MaxBodyLen)
	for i := 0; i < core.MaxNotes; i++ {
		id, _, err := store.CreateNote(core.Position{X: float32(i % 16 * 30), Y: float32(i / 16 * 8)})
		if err != nil {
			panic(err)
		}
		store.SetTitle(id, title)
		store.ConfirmTitle(id)
		store.CommitEdit(id, body)
		store.SetPinned(id, i%3 == 0)
	}

	// 3. Save rounds
	fmt.Printf("Running Flush x%d...\n", *rounds)
	startSave := time.Now()
	for i := 0; i < *rounds; i++ {
		if err := service.Flush(ctx); err != nil {
			panic(err)
		}
	}
	saveDuration := time.Since(startSave)

	// 4. Load rounds, each on a fresh service to simulate a new run.
	fmt.Printf("Running Open x%d...\n", *rounds)
	startLoad := time.Now()
	loaded := 0
	for i := 0; i < *rounds; i++ {
		svc, err := darkboard.Open(ctx, benchDir, darkboard.WithLogger(logger))
		if err != nil {
			panic(err)
		}
		loaded = svc.Store().Len()
	}
	loadDuration := time.Since(startLoad)

	info, err := os.Stat(filepath.Join(benchDir, fs.DefaultFileName))
	size := int64(0)
	if err == nil {
		size = info.Size()
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %d bytes on disk):\n", loaded, size)
	fmt.Printf("  Save: %v per round\n", saveDuration/time.Duration(*rounds))
	fmt.Printf("  Load: %v per round\n", loadDuration/time.Duration(*rounds))
	fmt.Printf("--------------------------------------------------\n")
}
