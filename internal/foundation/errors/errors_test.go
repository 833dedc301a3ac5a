package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder sets category severity and context", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docrefs.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "docrefs.yaml", file)
	})

	t.Run("wrapped cause is reachable", func(t *testing.T) {
		cause := io.ErrUnexpectedEOF
		err := WrapError(cause, CategoryRedirects, "failed to read redirect config").Fatal().Build()

		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.True(t, err.IsFatal())
		assert.Contains(t, err.Error(), "[redirects:fatal]")
	})

	t.Run("category helpers wrap causes", func(t *testing.T) {
		err := RedirectsError("failed to write redirect configuration").Wrap(io.ErrShortWrite).Build()

		assert.ErrorIs(t, err, io.ErrShortWrite)
		assert.Equal(t, CategoryRedirects, err.Category())
		assert.True(t, err.IsFatal())
		assert.False(t, ValidationError("bad value").Build().IsFatal())
	})

	t.Run("AsClassified finds errors wrapped with fmt", func(t *testing.T) {
		inner := RewriteError("link not found on line").Build()
		outer := fmt.Errorf("apply: %w", inner)

		got, ok := AsClassified(outer)
		require.True(t, ok)
		assert.Equal(t, CategoryRewrite, got.Category())
		assert.True(t, HasCategory(outer, CategoryRewrite))
		assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
		assert.Equal(t, SeverityError, GetSeverity(stderrors.New("plain")))
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		base := FileSystemError("unreadable").WithContext("path", "a.md").Build()
		next := base.WithContext("line", 3)

		_, ok := base.Context().Get("line")
		assert.False(t, ok)
		line, ok := next.Context().Get("line")
		require.True(t, ok)
		assert.Equal(t, 3, line)
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", ConfigError("bad").Build(), ExitFatal},
		{"redirects", RedirectsError("unreadable").Build(), ExitFatal},
		{"git", NewError(CategoryGit, "dirty").Build(), ExitGit},
		{"filesystem", FileSystemError("denied").Build(), ExitIO},
		{"internal", InternalError("boom").Build(), ExitInternal},
		{"unclassified", stderrors.New("boom"), ExitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}

	var out bytes.Buffer
	code := adapter.Report(&out, NavigationError("cannot read navigation").WithContext("path", "SUMMARY.md").Build())
	assert.Equal(t, ExitFatal, code)
	assert.Equal(t, "Error: cannot read navigation (SUMMARY.md)\n", out.String())
}
