package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

const (
	levelLow level = iota + 1
	levelHigh
)

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]level{"Low": levelLow, "high": levelHigh}, levelHigh)

	assert.Equal(t, levelLow, n.Normalize("  LOW "))
	assert.Equal(t, levelHigh, n.Normalize("unknown"))
	assert.Equal(t, []string{"high", "low"}, n.Keys())

	got, err := n.Parse("")
	require.NoError(t, err)
	assert.Equal(t, levelHigh, got)

	_, err = n.Parse("medium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high, low")
}
