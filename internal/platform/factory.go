package platform

import (
	"context"

	"github.com/darkboard/darkboard/pkg/core"
)

// New wires a service to the notes file at path without loading it.
//
//	svc, err := darkboard.New("./notes.dat", darkboard.WithReadOnly(true))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := applyOptions(opts)

	return core.NewService(repo, o.logger), nil
}

// Open is New followed by loading the saved board.
func Open(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	service, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := service.Load(ctx); err != nil {
		return nil, err
	}
	return service, nil
}
