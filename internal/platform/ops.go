package platform

import (
	"context"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

// Init prepares the repository for the notes file at path.
// path may name the file itself or the directory holding notes.dat.
//
// It returns the configured core.Repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Build the notes file adapter
	repo := initFS(path, o)

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS resolves the data path and builds the file adapter.
func initFS(path string, o *options) *fs.Repository {
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	watchPattern, _ := o.config["watch_pattern"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDataPath(path, useTemp)

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	return fs.NewRepository(fs.Config{
		Path:         resolvedPath,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		WatchPattern: watchPattern,
		ErrorHandler: errorHandler,
	})
}
