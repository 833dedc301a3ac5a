package suggest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceOrder(t *testing.T) {
	assert.True(t, ConfidenceHigh.AtLeast(ConfidenceMedium))
	assert.True(t, ConfidenceMedium.AtLeast(ConfidenceMedium))
	assert.False(t, ConfidenceLow.AtLeast(ConfidenceMedium))
	assert.Less(t, ConfidenceNone, ConfidenceLow)
}

func TestParseConfidence(t *testing.T) {
	c, err := ParseConfidence(" High ")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceHigh, c)

	c, err = ParseConfidence("")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceNone, c)

	_, err = ParseConfidence("certain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options: high, low, medium, none")
}

func TestConfidenceText(t *testing.T) {
	data, err := json.Marshal(map[string]Confidence{"c": ConfidenceMedium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"medium"}`, string(data))

	var out struct{ C Confidence }
	require.NoError(t, json.Unmarshal([]byte(`{"C":"low"}`), &out))
	assert.Equal(t, ConfidenceLow, out.C)
}
