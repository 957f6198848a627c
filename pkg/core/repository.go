package core

import "context"

// Repository defines the contract for loading and saving the board.
// Adhering to this interface keeps the core independent of the storage
// format and location.
type Repository interface {
	// Load returns the saved notes in their saved order.
	// A missing store is an empty board, not an error.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the stored board. Deleted notes are not written.
	Save(ctx context.Context, notes []Note) error

	// Initialize ensures the underlying storage is ready (e.g. parent directories).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	// Watch emits an event whenever the stored board changes on disk.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
