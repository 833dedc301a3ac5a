package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"File", KeyFile, "guide/setup.md", File("guide/setup.md")},
		{"Target", KeyTarget, "./old.md", Target("./old.md")},
		{"Resolved", KeyResolved, "guide/old.md", Resolved("guide/old.md")},
		{"Status", KeyStatus, "broken", Status("broken")},
		{"Confidence", KeyConfidence, "high", Confidence("high")},
		{"Strategy", KeyStrategy, "redirect", Strategy("redirect")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.attrKey, c.attr.Key)
			assert.Equal(t, c.attrVal, c.attr.Value.String())
		})
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	assert.Equal(t, int64(12), Line(12).Value.Int64())
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Empty(t, Error(nil).Value.String())
}
