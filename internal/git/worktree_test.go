package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	helpers "git.home.luguber.info/inful/docrefs/internal/testutil/testutils"
)

func TestInspect_CleanRepository(t *testing.T) {
	_, _, root := helpers.SetupTestGitRepo(t, map[string]string{"docs/README.md": "# Docs\n"})

	st, err := Inspect(filepath.Join(root, "docs"))
	require.NoError(t, err)
	assert.True(t, st.IsRepo)
	assert.True(t, st.Clean)
	assert.Empty(t, st.Changed)
	require.NoError(t, RequireClean(root))
}

func TestInspect_DirtyRepository(t *testing.T) {
	_, _, root := helpers.SetupTestGitRepo(t, map[string]string{"docs/README.md": "# Docs\n"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "README.md"), []byte("# Changed\n"), 0o600))
	helpers.AddFiles(t, root, map[string]string{"docs/new.md": "# New\n"})

	st, err := Inspect(root)
	require.NoError(t, err)
	assert.False(t, st.Clean)
	assert.Equal(t, []string{"docs/README.md", "docs/new.md"}, st.Changed)

	err = RequireClean(root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryGit))
}

func TestInspect_NotARepository(t *testing.T) {
	st, err := Inspect(t.TempDir())
	require.NoError(t, err)
	assert.False(t, st.IsRepo)
	require.NoError(t, RequireClean(t.TempDir()))
}
