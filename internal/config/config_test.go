package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "docrefs.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_File(t *testing.T) {
	t.Setenv("DOCS_DIR", "./handbook")
	p := writeConfig(t, `root: ${DOCS_DIR}
redirects_file: .gitbook.yaml
check_anchors: true
fix:
  min_confidence: Medium
  add_redirects: false
  require_clean_git: true
log:
  level: DEBUG
  format: json
metrics_file: /tmp/docrefs.prom
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "./handbook", cfg.Root)
	assert.Equal(t, ".gitbook.yaml", cfg.RedirectsFile)
	assert.True(t, cfg.CheckAnchors)
	assert.Equal(t, suggest.ConfidenceMedium, cfg.MinConfidence())
	assert.False(t, cfg.AddRedirects())
	assert.True(t, cfg.Fix.RequireCleanGit)
	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, "/tmp/docrefs.prom", cfg.MetricsFile)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, suggest.ConfidenceHigh, cfg.MinConfidence())
	assert.True(t, cfg.AddRedirects())
	assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRoot, "/srv/docs")
	t.Setenv(EnvRedirects, "redirects.yaml")
	t.Setenv(EnvNavigation, "NAV.md")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, "root: ./ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", cfg.Root)
	assert.Equal(t, "redirects.yaml", cfg.RedirectsFile)
	assert.Equal(t, "NAV.md", cfg.NavigationFile)
	assert.Equal(t, LogLevelWarn, cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCREFS_NAVIGATION=TOC.md\n"), 0o600))
	t.Setenv(EnvNavigation, "")
	require.NoError(t, os.Unsetenv(EnvNavigation))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "TOC.md", cfg.NavigationFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "roots: ./docs\n"},
		{"bad confidence", "fix:\n  min_confidence: certain\n"},
		{"malformed yaml", "root: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root)
}

func TestInit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "docrefs.yaml")
	require.NoError(t, Init(p, false))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "./docs", cfg.Root)
	assert.True(t, cfg.CheckAnchors)

	err = Init(p, false)
	require.Error(t, err)
	require.NoError(t, Init(p, true))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("Warning"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
}
