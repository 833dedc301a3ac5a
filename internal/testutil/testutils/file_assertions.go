package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// Content reads a project-relative file, failing the test when it is unreadable.
func (fa *FileAssertions) Content(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// AssertFileEquals validates the exact content of a file.
func (fa *FileAssertions) AssertFileEquals(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	if got := fa.Content(relativePath); got != expected {
		fa.t.Errorf("Unexpected content in %s\nwant:\n%s\ngot:\n%s", relativePath, expected, got)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content := fa.Content(relativePath)
	if !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, content)
	}
	return fa
}

// AssertLine validates one 1-based line of a file.
func (fa *FileAssertions) AssertLine(relativePath string, line int, expected string) *FileAssertions {
	fa.t.Helper()
	lines := strings.Split(fa.Content(relativePath), "\n")
	if line < 1 || line > len(lines) {
		fa.t.Errorf("File %s has %d lines, wanted line %d", relativePath, len(lines), line)
		return fa
	}
	if got := strings.TrimSuffix(lines[line-1], "\r"); got != expected {
		fa.t.Errorf("Line %d of %s: want %q, got %q", line, relativePath, expected, got)
	}
	return fa
}
