package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	s, err := ParseSpec([]byte(barSpec))
	require.NoError(t, err)
	assert.Equal(t, "Playtime", s["title"])

	_, err = ParseSpec([]byte(`{"mark":`))
	assert.Error(t, err)

	_, err = ParseSpec([]byte(`null`))
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	s, err := ParseSpec([]byte(barSpec))
	require.NoError(t, err)

	c := s.Clone()
	require.Equal(t, s, c)

	c["title"] = "changed"
	rows := c["datasets"].(map[string]any)["data-games"].([]any)
	rows[0].(map[string]any)["hours"] = 0.0
	c["vconcat"].([]any)[0].(map[string]any)["mark"] = "line"

	assert.Equal(t, "Playtime", s["title"])
	orig := s["datasets"].(map[string]any)["data-games"].([]any)
	assert.Equal(t, 310.5, orig[0].(map[string]any)["hours"])
	assert.Equal(t, map[string]any{"type": "bar"}, s["vconcat"].([]any)[0].(map[string]any)["mark"])

	assert.Nil(t, Spec(nil).Clone())
}
