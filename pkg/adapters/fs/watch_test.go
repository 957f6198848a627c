package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed early")
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestRepository_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := newRepo(t, fs.Config{})
	events, err := repo.Watch(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.State().(fs.RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, repo.Save(ctx, []core.Note{{ID: 0, Title: "watched"}}))
	e := waitEvent(t, events)
	assert.Equal(t, repo.Path, e.Path)
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

	// Files outside the pattern are ignored.
	other := filepath.Join(filepath.Dir(repo.Path), "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.Remove(repo.Path))

	e = waitEvent(t, events)
	assert.Equal(t, core.EventDelete, e.Type)
	assert.Equal(t, repo.Path, e.Path)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel closes after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestRepository_WatchInvalidPattern(t *testing.T) {
	repo := newRepo(t, fs.Config{WatchPattern: "[unterminated"})

	_, err := repo.Watch(context.Background())
	assert.Error(t, err)
}
