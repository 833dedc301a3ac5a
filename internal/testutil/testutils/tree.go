// Package helpers holds fixture builders and assertions shared by tests.
package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)

// WriteTree creates a temporary project containing files, keyed by
// slash-separated project-relative path, and returns its root.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	AddFiles(t, root, files)
	return root
}

// AddFiles writes files below an existing root.
func AddFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), testDirPermissions); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(abs), err)
		}
		if err := os.WriteFile(abs, []byte(content), testFilePermissions); err != nil {
			t.Fatalf("failed to write %s: %v", abs, err)
		}
	}
}
