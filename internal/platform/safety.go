package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/darkboard/darkboard/pkg/adapters/fs"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDataPath determines where the notes file actually lives.
// When forceTemp is set, a path outside the system temp directory is
// re-rooted under <tmp>/darkboard-dev, keeping its base name. Directories
// map to a notes file inside the re-rooted directory.
func ResolveDataPath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = "."
	}
	if !forceTemp {
		return userPath
	}

	// Paths already inside the temp directory (t.TempDir()) are trusted as is.
	cleanUserPath := filepath.Clean(userPath)
	if abs, err := filepath.Abs(cleanUserPath); err == nil {
		rel, err := filepath.Rel(os.TempDir(), abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return cleanUserPath
		}
	}

	devRoot := filepath.Join(os.TempDir(), "darkboard-dev")
	name := filepath.Base(cleanUserPath)
	if name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	if info, err := os.Stat(cleanUserPath); err == nil && info.IsDir() {
		return filepath.Join(devRoot, name, fs.DefaultFileName)
	}
	return filepath.Join(devRoot, name)
}
