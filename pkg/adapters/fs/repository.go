package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/darkboard/darkboard/pkg/core"
)

// DefaultFileName is the notes file used when only a directory is given.
const DefaultFileName = "notes.dat"

// Repository implements core.Repository on a single notes file.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
	lastSave      *time.Time
	lastCount     int
	truncatedRead bool
}

// Config holds the configuration for the file repository.
type Config struct {
	Path         string
	ReadOnly     bool
	Logger       *slog.Logger
	WatchPattern string      // doublestar pattern matched against file names in the notes directory; defaults to the notes file name
	ErrorHandler func(error) // receives watcher runtime errors
}

// NewRepository creates a new file-backed repository.
// A Path naming an existing directory is resolved to DefaultFileName inside it.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	path := config.Path
	if path == "" {
		path = DefaultFileName
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	config.Path = path
	if config.WatchPattern == "" {
		config.WatchPattern = filepath.Base(path)
	}
	return &Repository{
		Path:   path,
		config: config,
	}
}

// Initialize makes sure the directory holding the notes file exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	return nil
}

// Load reads the notes file.
//
// A missing file is the first run and yields no notes. A truncated or
// corrupt tail is logged and the notes decoded before it are returned
// without error.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	f, err := os.Open(r.Path)
	if os.IsNotExist(err) {
		r.config.Logger.Debug("no notes file yet", "path", r.Path)
		r.recordLoad(0, false)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open notes file: %w", err)
	}
	defer f.Close()

	notes, err := ReadNotes(f)
	truncated := errors.Is(err, core.ErrReadTruncated)
	if err != nil && !truncated {
		return nil, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	if truncated {
		r.config.Logger.Warn("notes file truncated, keeping valid prefix",
			"path", r.Path,
			"notes", len(notes),
			"error", err,
		)
	}

	r.recordLoad(len(notes), truncated)
	return notes, nil
}

// Save rewrites the notes file with every non-deleted note, in order.
// Failures wrap core.ErrWriteFailed and leave the previous file in place.
func (r *Repository) Save(ctx context.Context, notes []core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	written := 0
	err := writeFileAtomic(r.Path, 0644, func(w io.Writer) error {
		for _, n := range notes {
			if !n.IsDeleted() {
				written++
			}
		}
		return WriteNotes(w, notes)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrWriteFailed, r.Path, err)
	}

	r.config.Logger.Debug("notes file written", "path", r.Path, "notes", written)
	r.recordSave(written)
	return nil
}
