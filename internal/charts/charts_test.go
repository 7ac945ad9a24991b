package charts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
)

const barSpec = `{
  "title": "Playtime",
  "datasets": {
    "data-games": [
      {"game": "Skyrim", "hours": 310.5},
      {"game": "Civilization V", "hours": 120},
      {"game": "Portal 2", "hours": 22.25}
    ]
  },
  "vconcat": [
    {
      "data": {"name": "data-games"},
      "mark": {"type": "bar"},
      "encoding": {
        "x": {"field": "hours", "type": "quantitative"},
        "y": {"field": "game", "type": "nominal"}
      }
    }
  ]
}`

const cardSpec = `{
  "mark": "text",
  "_cardData": {"topSongsDataset": "top", "recentlyPlayedDataset": "recent"},
  "datasets": {
    "top": [
      {"rank": 1, "song": "Redbone", "artist": "Childish Gambino"},
      {"rank": 2, "song": "Nights", "artist": "Frank Ocean"}
    ],
    "recent": [
      {"song": "Ivy", "artist": "Frank Ocean", "time": "2h ago"}
    ]
  }
}`

// chartFS returns a chart tree with a steam dashboard that ships portrait
// and default, and a spotify dashboard that ships every variant.
func chartFS() fstest.MapFS {
	fsys := fstest.MapFS{
		"steam/default.json":  {Data: []byte(barSpec)},
		"steam/portrait.json": {Data: []byte(`{"mark": "point", "description": "steam portrait"}`)},
		"steam/notes.txt":     {Data: []byte("ignored")},
	}
	for _, v := range breakpoint.Variants {
		body := `{"mark": "bar", "description": "spotify ` + v.String() + `"}`
		if v == breakpoint.Portrait {
			body = cardSpec
		}
		fsys["spotify/"+v.String()+".json"] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func loadedLibrary(t *testing.T) *Library {
	t.Helper()
	lib := NewLibrary(nil)
	require.NoError(t, lib.Load(chartFS()))
	return lib
}
