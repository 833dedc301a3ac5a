package docfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"docs/a.md", "b.md", "docs/b.md"},
		{"docs/a.md", "./sub/c.md", "docs/sub/c.md"},
		{"docs/a.md", "../README.md", "README.md"},
		{"docs/a.md", "/guide/setup.md", "guide/setup.md"},
		{"a.md", "guide/", "guide"},
		{"a.md", "../outside.md", "../outside.md"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.source, tt.target))
		})
	}
}

func TestOutsideRoot(t *testing.T) {
	assert.True(t, OutsideRoot(".."))
	assert.True(t, OutsideRoot("../secret.md"))
	assert.True(t, OutsideRoot(Resolve("docs/a.md", "../../x.md")))
	assert.False(t, OutsideRoot("..hidden.md"))
	assert.False(t, OutsideRoot(Resolve("docs/a.md", "../x.md")))
}

func TestIndex_NeverLooksAboveRoot(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.md"), []byte("x"), 0o600))
	root := filepath.Join(parent, "proj")
	require.NoError(t, os.Mkdir(root, 0o750))

	x := NewIndex(root, nil)
	assert.False(t, x.Exists("../secret.md"))
	assert.False(t, x.IsFile("../secret.md"))
	assert.False(t, x.Exists(".."))
}

func TestRelativeLink(t *testing.T) {
	assert.Equal(t, "../api/x.md", RelativeLink("docs/guide/a.md", "docs/api/x.md", "old.md"))
	assert.Equal(t, "./x.md", RelativeLink("docs/a.md", "docs/x.md", "./old.md"))
	assert.Equal(t, "../x.md", RelativeLink("docs/a/b.md", "docs/x.md", "./old.md"))
	assert.Equal(t, "/docs/x.md", RelativeLink("docs/a.md", "docs/x.md", "/docs/old.md"))
	assert.Equal(t, "x.md", RelativeLink("a.md", "x.md", "y.md"))
}

func TestSegmentsAndStem(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.md"}, Segments("/a/b/c.md"))
	assert.Nil(t, Segments("."))
	assert.Equal(t, "setup", Stem("guide/setup.md"))
	assert.Equal(t, "guide", Stem("guide"))
}

func TestIndex(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":           "# Root",
		"guide/setup.md":      "# Setup",
		"guide/img/flow.png":  "png",
		".hidden/secret.md":   "# Hidden",
		"node_modules/x/y.md": "# Dep",
		"notes.markdown":      "# Notes",
	})

	idx := NewIndex(root, nil)
	md, err := idx.MarkdownFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "guide/setup.md", "notes.markdown"}, md)

	files, err := idx.Files()
	require.NoError(t, err)
	assert.Contains(t, files, "guide/img/flow.png")

	assert.True(t, idx.Exists("guide"))
	assert.True(t, idx.IsFile("guide/setup.md"))
	assert.False(t, idx.IsFile("guide"))
	assert.False(t, idx.Exists("missing.md"))

	// The listing is cached until Reset.
	writeTree(t, root, map[string]string{"new.md": "# New"})
	md, err = idx.MarkdownFiles()
	require.NoError(t, err)
	assert.NotContains(t, md, "new.md")

	idx.Reset()
	md, err = idx.MarkdownFiles()
	require.NoError(t, err)
	assert.Contains(t, md, "new.md")
}

func TestIndex_ReadFileError(t *testing.T) {
	idx := NewIndex(t.TempDir(), nil)
	_, err := idx.ReadFile("missing.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}
