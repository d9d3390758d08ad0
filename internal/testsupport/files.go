package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nbhooks/internal/notebook"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteNotebook saves nb at root/rel and returns the absolute path.
func WriteNotebook(t testing.TB, root, rel string, nb *notebook.Notebook) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := notebook.Save(path, nb); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}
