package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service ties a Store to the Repository it is loaded from and flushed to.
type Service struct {
	repo   Repository
	store  *Store
	logger *slog.Logger
}

// NewService creates a new Service around an empty store.
// A nil logger discards log output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:   repo,
		store:  NewStore(),
		logger: logger,
	}
}

// Store returns the in-memory board.
func (s *Service) Store() *Store {
	return s.store
}

// Load populates the store from the repository.
// Records the store refuses (duplicates, out of range ids) are logged and skipped.
func (s *Service) Load(ctx context.Context) error {
	notes, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	rejected := s.store.Restore(notes)
	for _, n := range rejected {
		s.logger.Warn("skipping saved note", "id", n.ID, "state", n.State)
	}
	s.logger.Debug("notes loaded", "count", s.store.Len(), "rejected", len(rejected))
	return nil
}

// Flush saves the board. Deleted notes are dropped from disk and, once the
// save succeeded, from memory as well. On failure the board is untouched.
func (s *Service) Flush(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.store.Snapshot()); err != nil {
		if !errors.Is(err, ErrWriteFailed) && !errors.Is(err, ErrReadOnly) {
			err = fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		s.logger.Error("failed to save notes", "error", err)
		return err
	}
	s.store.Compact()
	s.logger.Debug("notes saved", "count", s.store.Len())
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}
