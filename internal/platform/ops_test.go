package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkboard/darkboard/internal/platform"
	"github.com/darkboard/darkboard/pkg/adapters/fs"
	"github.com/darkboard/darkboard/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("Creates Parent Directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		dataPath := filepath.Join(tmpDir, "board", "notes.dat")

		repo, err := platform.Init(dataPath, platform.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		fsRepo, ok := repo.(*fs.Repository)
		if !ok {
			t.Fatalf("Expected fs repository, got %T", repo)
		}
		if fsRepo.Path != dataPath {
			t.Errorf("Expected path %s, got %s", dataPath, fsRepo.Path)
		}
		if info, err := os.Stat(filepath.Dir(dataPath)); err != nil || !info.IsDir() {
			t.Errorf("Board directory not created")
		}
	})

	t.Run("Directory Resolves To notes.dat", func(t *testing.T) {
		tmpDir := t.TempDir()

		repo, err := platform.Init(tmpDir, platform.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if got := repo.(*fs.Repository).Path; got != filepath.Join(tmpDir, fs.DefaultFileName) {
			t.Errorf("unexpected path %s", got)
		}
	})

	t.Run("ReadOnly Skips Directory Creation", func(t *testing.T) {
		tmpDir := t.TempDir()
		dataPath := filepath.Join(tmpDir, "missing", "notes.dat")

		if _, err := platform.Init(dataPath, platform.WithReadOnly(true)); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, err := os.Stat(filepath.Dir(dataPath)); !os.IsNotExist(err) {
			t.Errorf("read-only init should not create directories")
		}
	})

	t.Run("Injected Repository Wins", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "x.dat")})

		repo, err := platform.Init("ignored", platform.WithRepository(injected))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if repo != core.Repository(injected) {
			t.Errorf("expected injected repository")
		}
	})
}

func TestOpen_ReadOnlyFlush(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	service, err := platform.Open(ctx, tmpDir, platform.WithReadOnly(true))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, _, err := service.Store().CreateNote(core.Position{}); err != nil {
		t.Fatal(err)
	}

	err = service.Flush(ctx)
	if !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if service.Store().Len() != 1 {
		t.Errorf("notes must stay in memory after a failed flush")
	}
}
