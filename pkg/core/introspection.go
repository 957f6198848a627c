package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	ActiveNotes    int    `json:"active_notes"`
	Tombstones     int    `json:"tombstones"`
	PendingTitle   *ID    `json:"pending_title,omitempty"`
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	state := ServiceState{
		ActiveNotes:    s.store.Len(),
		Tombstones:     len(s.store.notes) - s.store.Len(),
		RepositoryType: repoType,
	}
	if id, ok := s.store.Pending(); ok {
		state.PendingTitle = &id
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
