package charts

import "fmt"

// Track is one row of a track card list.
type Track struct {
	Rank   int
	Song   string
	Artist string
	Time   string
}

// Cards are the track lists shown under the portrait Spotify chart.
type Cards struct {
	TopSongs       []Track
	RecentlyPlayed []Track
}

// ExtractCards reads the _cardData metadata of a spec and returns the track
// lists it points at. ok is false when the spec carries no card data.
func ExtractCards(spec Spec) (cards *Cards, ok bool) {
	meta, _ := spec["_cardData"].(map[string]any)
	datasets, _ := spec["datasets"].(map[string]any)
	if meta == nil || datasets == nil {
		return nil, false
	}

	topName, _ := meta["topSongsDataset"].(string)
	recentName, _ := meta["recentlyPlayedDataset"].(string)

	return &Cards{
		TopSongs:       tracks(datasets[topName]),
		RecentlyPlayed: tracks(datasets[recentName]),
	}, true
}

func tracks(v any) []Track {
	rows, _ := v.([]any)
	out := make([]Track, 0, len(rows))
	for i, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		t := Track{
			Rank:   i + 1,
			Song:   stringField(row, "song"),
			Artist: stringField(row, "artist"),
			Time:   stringField(row, "time"),
		}
		if rank, ok := row["rank"].(float64); ok {
			t.Rank = int(rank)
		}
		out = append(out, t)
	}
	return out
}

func stringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
