package darkboard

import (
	"context"
	"log/slog"

	"github.com/darkboard/darkboard/internal/platform"
	"github.com/darkboard/darkboard/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Note is a public alias for a sticky note.
type Note = core.Note

// Store is a public alias for the in-memory board.
type Store = core.Store

// Service is a public alias for a store bound to its notes file.
type Service = core.Service

// Config is a public alias for the darkboard.yaml settings.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring Darkboard.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithReadOnly opens the notes file without ever writing it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the temp-dir sandbox applied under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatchPattern sets the file pattern Watch reports changes for.
func WithWatchPattern(pattern string) Option {
	return platform.WithWatchPattern(pattern)
}

// WithWatcherErrorHandler registers a callback for errors raised while watching.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithConfig applies settings read from a darkboard.yaml.
func WithConfig(cfg Config) Option {
	return platform.WithConfig(cfg)
}

// --- Factory ---

// New creates a Darkboard Service without reading the notes file.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Open creates a Darkboard Service and loads the saved board.
func Open(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	return platform.Open(ctx, path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual notes file path based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindConfig recursively looks upwards for a darkboard.yaml.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// LoadConfig reads a darkboard.yaml. A missing file yields the zero Config.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}
