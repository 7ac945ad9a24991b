package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dipto9999/portfolio/internal/assets"
)

func TestHoverAndLeave(t *testing.T) {
	c := New([]assets.Entry{
		{Source: "/images/games/Games_1.jpeg", Caption: "Skyrim"},
		{Source: "/images/games/Games_3.jpeg", Caption: "Game 3"},
	})

	tip, ok := c.Hover(1, Position{Top: 120, Left: 40})
	assert.True(t, ok)
	assert.Equal(t, Tooltip{Content: "Game 3", Visible: true, Position: Position{Top: 120, Left: 40}}, tip)

	tip.Hide()
	assert.Equal(t, Tooltip{}, tip)

	_, ok = c.Hover(2, Position{})
	assert.False(t, ok)
	_, ok = c.Hover(-1, Position{})
	assert.False(t, ok)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 3, s.SlidesToShow)
	assert.Equal(t, 2000, s.AutoplaySpeed)
	assert.True(t, s.Autoplay)
}
