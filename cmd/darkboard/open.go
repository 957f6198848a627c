package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/darkboard/darkboard"
	"github.com/darkboard/darkboard/pkg/core"
)

// loadConfig reads --config, or the nearest darkboard.yaml above the
// working directory. Having no config at all is fine.
func loadConfig() (darkboard.Config, error) {
	path := configFile
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return darkboard.Config{}, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return darkboard.Config{}, err
		}
		found, err := darkboard.FindConfig(wd)
		if err != nil {
			return darkboard.Config{}, nil
		}
		path = found
	}
	return darkboard.LoadConfig(path)
}

// notesPath picks --file, then data_file from the config, then the working directory.
func notesPath() string {
	switch {
	case dataFile != "":
		return dataFile
	case cfg.DataFile != "":
		return cfg.DataFile
	default:
		return "."
	}
}

func serviceOptions(logger *slog.Logger) []darkboard.Option {
	opts := []darkboard.Option{
		darkboard.WithLogger(logger),
		darkboard.WithConfig(cfg),
	}
	if readOnly {
		opts = append(opts, darkboard.WithReadOnly(true))
	}
	return opts
}

func isReadOnly() bool {
	return readOnly || cfg.ReadOnly
}

func openBoard(ctx context.Context) *core.Service {
	svc, err := darkboard.Open(ctx, notesPath(), serviceOptions(slog.Default())...)
	if err != nil {
		fatal("Failed to open board", err)
	}
	return svc
}

// update opens the board, applies fn to its store and saves the result.
func update(ctx context.Context, fn func(*core.Store) error) *core.Service {
	svc := openBoard(ctx)
	if err := fn(svc.Store()); err != nil {
		fatal("Error", err)
	}
	if err := svc.Flush(ctx); err != nil {
		fatal("Failed to save board", err)
	}
	return svc
}

func parseID(arg string) core.ID {
	v, err := strconv.Atoi(arg)
	if err != nil || v < 0 || v >= core.MaxNotes {
		fatal("Invalid note id", fmt.Errorf("%q is not a number in [0,%d)", arg, core.MaxNotes))
	}
	return core.ID(v)
}

// requireNote fails unless id names a note on the board.
func requireNote(store *core.Store, id core.ID) error {
	if _, ok := store.Note(id); !ok {
		return fmt.Errorf("note %d not found", id)
	}
	return nil
}
