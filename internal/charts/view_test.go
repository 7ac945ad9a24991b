package charts

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
	"github.com/Dipto9999/portfolio/internal/viewport"
)

// vandalEngine scribbles over every spec it is given.
type vandalEngine struct {
	draws int
}

func (e *vandalEngine) Draw(_ string, _ breakpoint.Variant, spec Spec) error {
	e.draws++
	for k := range spec {
		delete(spec, k)
	}
	spec["mark"] = "vandalised"
	return nil
}

func TestViewEngineMutationDoesNotCorruptLibrary(t *testing.T) {
	lib := loadedLibrary(t)
	engine := &vandalEngine{}
	v := NewView("steam", lib, engine, viewport.NewTracker(viewport.Size{}))
	defer v.Close()

	_, err := v.Render(breakpoint.Default)
	require.NoError(t, err)
	_, err = v.Render(breakpoint.Portrait)
	require.NoError(t, err)
	_, err = v.Render(breakpoint.Default)
	require.NoError(t, err)
	assert.Equal(t, 3, engine.draws)

	d, _, err := lib.Dashboard("steam")
	require.NoError(t, err)
	s, _, err := d.Spec(breakpoint.Default)
	require.NoError(t, err)
	assert.Equal(t, "Playtime", s["title"])
	assert.Contains(t, s, "vconcat")
}

func TestViewRenderIsIdempotent(t *testing.T) {
	lib := loadedLibrary(t)
	engine := &EmbedEngine{}
	var hooked []breakpoint.Variant
	v := NewView("steam", lib, engine, viewport.NewTracker(viewport.Size{}),
		WithRenderHook(func(_ string, resolved, _ breakpoint.Variant) {
			hooked = append(hooked, resolved)
		}))
	defer v.Close()

	changed, err := v.Render(breakpoint.Tablet)
	require.NoError(t, err)
	assert.True(t, changed)
	first := engine.Document()

	changed, err = v.Render(breakpoint.Tablet)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, engine.Draws())
	assert.Equal(t, uint64(1), v.Renders())
	assert.True(t, bytes.Equal(first, engine.Document()))
	assert.Equal(t, []breakpoint.Variant{breakpoint.Tablet}, hooked)
	assert.Equal(t, breakpoint.Default, v.UsedVariant())

	// A reload swaps the library generation, so the same variant redraws.
	require.NoError(t, lib.Load(chartFS()))
	changed, err = v.Render(breakpoint.Tablet)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, engine.Draws())
}

func TestViewFollowsTracker(t *testing.T) {
	lib := loadedLibrary(t)
	engine := &EmbedEngine{}
	tracker := viewport.NewTracker(viewport.Size{})
	v := NewView("spotify", lib, engine, tracker)

	changed, err := v.Resize(viewport.Size{Width: 1920, Height: 1080})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, breakpoint.Default, v.Variant())

	// Moving within the same breakpoint does not redraw.
	changed, err = v.Resize(viewport.Size{Width: 1600, Height: 900})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = v.Resize(viewport.Size{Width: 400, Height: 800})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, breakpoint.Portrait, v.Variant())

	cards := v.Cards()
	require.NotNil(t, cards)
	require.Len(t, cards.TopSongs, 2)
	assert.Equal(t, "Redbone", cards.TopSongs[0].Song)
	require.Len(t, cards.RecentlyPlayed, 1)
	assert.Equal(t, "2h ago", cards.RecentlyPlayed[0].Time)
	assert.Equal(t, 1, cards.RecentlyPlayed[0].Rank)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(engine.Document(), &doc))
	meta := doc["usermeta"].(map[string]any)
	assert.Equal(t, "portrait", meta["variant"])
	assert.Equal(t, "spotify", meta["dashboard"])

	v.Close()
	assert.Equal(t, 0, tracker.Subscribers())
	changed, err = v.Resize(viewport.Size{Width: 1920, Height: 1080})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, breakpoint.Portrait, v.Variant())
}

func TestViewUnknownDashboard(t *testing.T) {
	lib := loadedLibrary(t)
	v := NewView("twitch", lib, &EmbedEngine{}, viewport.NewTracker(viewport.Size{}))
	defer v.Close()

	_, err := v.Resize(viewport.Size{Width: 100, Height: 100})
	assert.ErrorIs(t, err, ErrUnknownDashboard)
}
