package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkboard/darkboard/internal/platform"
	"github.com/darkboard/darkboard/pkg/core"
)

func setupService(t *testing.T, opts ...platform.Option) (*core.Service, string) {
	t.Helper()
	tmpDir := t.TempDir()

	service, err := platform.Open(context.Background(), tmpDir, opts...)
	if err != nil {
		t.Fatalf("Failed to open service: %v", err)
	}
	return service, tmpDir
}

func TestServiceIntegration_SaveAndReopen(t *testing.T) {
	ctx := context.Background()
	service, tmpDir := setupService(t)

	store := service.Store()
	id, created, err := store.CreateNote(core.Position{X: 12, Y: 34})
	if err != nil || !created {
		t.Fatalf("CreateNote failed: created=%v err=%v", created, err)
	}
	store.SetTitle(id, "Call mom")
	store.ConfirmTitle(id)
	store.BeginEdit(id)
	store.CommitEdit(id, "Sunday\nafternoon")
	store.SetPinned(id, true)

	other, _, _ := store.CreateNote(core.Position{X: 1, Y: 1})
	store.ConfirmTitle(other)
	store.SoftDelete(other)

	if err := service.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "notes.dat")); err != nil {
		t.Fatalf("notes file not written: %v", err)
	}

	reopened, err := platform.Open(ctx, tmpDir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if reopened.Store().Len() != 1 {
		t.Fatalf("Expected 1 note after reload, got %d", reopened.Store().Len())
	}

	n, ok := reopened.Store().Note(id)
	if !ok {
		t.Fatalf("note %d missing after reload", id)
	}
	if n.Title != "Call mom" || n.Body != "Sunday afternoon" || !n.Pinned {
		t.Errorf("unexpected note after reload: %+v", n)
	}
	if n.Position != (core.Position{X: 12, Y: 34}) {
		t.Errorf("position not preserved: %+v", n.Position)
	}
	if n.State != core.StateViewing {
		t.Errorf("expected viewing state, got %s", n.State)
	}
}

func TestServiceIntegration_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service, _ := setupService(t)
	events, err := service.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	id, _, _ := service.Store().CreateNote(core.Position{})
	service.Store().ConfirmTitle(id)
	if err := service.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	select {
	case ev := <-events:
		if filepath.Base(ev.Path) != "notes.dat" {
			t.Errorf("unexpected event path %s", ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestServiceIntegration_ConfigReadOnly(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	// Seed a board the read-only service will see.
	writer, err := platform.Open(ctx, tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	id, _, _ := writer.Store().CreateNote(core.Position{})
	writer.Store().ConfirmTitle(id)
	if err := writer.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	reader, err := platform.Open(ctx, tmpDir, platform.WithConfig(platform.Config{ReadOnly: true}))
	if err != nil {
		t.Fatal(err)
	}
	if reader.Store().Len() != 1 {
		t.Fatalf("expected seeded note, got %d", reader.Store().Len())
	}
	if err := reader.Flush(ctx); err == nil {
		t.Error("expected read-only flush to fail")
	}
}
