package preview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrefs/internal/fixer"
)

func TestUnified(t *testing.T) {
	change := fixer.FileChange{
		Path:   "docs/page.md",
		Before: []byte("# T\n\n[a](old.md)\n\nend\n"),
		After:  []byte("# T\n\n[a](new.md)\n\nend\n"),
	}

	patch, err := Unified(change, 1)
	require.NoError(t, err)
	assert.Contains(t, patch, "--- a/docs/page.md\n")
	assert.Contains(t, patch, "+++ b/docs/page.md\n")
	assert.Contains(t, patch, "-[a](old.md)\n")
	assert.Contains(t, patch, "+[a](new.md)\n")
	assert.NotContains(t, patch, "# T")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []fixer.FileChange{
		{Path: "a.md", Before: []byte("x\n"), After: []byte("y\n")},
		{Path: "b.md", Before: []byte("1\n"), After: []byte("2\n")},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "+++ b/a.md")
	assert.Contains(t, out, "+++ b/b.md")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("a.md")), bytes.Index(buf.Bytes(), []byte("b.md")))
}
