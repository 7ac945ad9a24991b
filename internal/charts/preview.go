package charts

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
)

// ErrNoBarLayer is returned when a spec has no bar mark with inline data.
var ErrNoBarLayer = errors.New("no bar layer with inline data")

// maxPreviewBars caps how many rows of a dataset the preview draws.
const maxPreviewBars = 15

// BarSeries is the data of one bar mark pulled out of a spec.
type BarSeries struct {
	Title  string
	Labels []string
	Values []float64
}

// FirstBarSeries walks the spec (layer/concat compositions included) and
// returns the first bar mark whose data is inline or a named dataset.
func FirstBarSeries(spec Spec) (BarSeries, error) {
	datasets, _ := spec["datasets"].(map[string]any)
	s, ok := findBars(map[string]any(spec), datasets, nil, titleOf(spec["title"]))
	if !ok {
		return BarSeries{}, ErrNoBarLayer
	}
	return s, nil
}

func findBars(unit, datasets map[string]any, inherited []any, title string) (BarSeries, bool) {
	rows := inherited
	if data, ok := unit["data"].(map[string]any); ok {
		if values, ok := data["values"].([]any); ok {
			rows = values
		} else if name, ok := data["name"].(string); ok {
			rows, _ = datasets[name].([]any)
		}
	}
	if t := titleOf(unit["title"]); t != "" {
		title = t
	}

	if isBar(unit["mark"]) {
		if s, ok := barSeries(unit, rows, title); ok {
			return s, true
		}
	}

	for _, key := range []string{"layer", "vconcat", "hconcat", "concat"} {
		children, _ := unit[key].([]any)
		for _, c := range children {
			child, ok := c.(map[string]any)
			if !ok {
				continue
			}
			if s, ok := findBars(child, datasets, rows, title); ok {
				return s, true
			}
		}
	}
	return BarSeries{}, false
}

func isBar(mark any) bool {
	switch m := mark.(type) {
	case string:
		return m == "bar"
	case map[string]any:
		return m["type"] == "bar"
	}
	return false
}

func titleOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		s, _ := t["text"].(string)
		return s
	}
	return ""
}

func barSeries(unit map[string]any, rows []any, title string) (BarSeries, bool) {
	enc, _ := unit["encoding"].(map[string]any)
	x, _ := enc["x"].(map[string]any)
	y, _ := enc["y"].(map[string]any)
	if x == nil || y == nil || len(rows) == 0 {
		return BarSeries{}, false
	}

	valueField, labelField := fieldOf(x), fieldOf(y)
	if y["type"] == "quantitative" {
		valueField, labelField = fieldOf(y), fieldOf(x)
	}
	if valueField == "" || labelField == "" {
		return BarSeries{}, false
	}

	s := BarSeries{Title: title}
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		value, ok := row[valueField].(float64)
		if !ok {
			continue
		}
		s.Labels = append(s.Labels, stringField(row, labelField))
		s.Values = append(s.Values, value)
		if len(s.Values) == maxPreviewBars {
			break
		}
	}
	return s, len(s.Values) > 0
}

func fieldOf(channel map[string]any) string {
	f, _ := channel["field"].(string)
	return f
}

// RenderPreview draws series as a PNG bar chart.
func RenderPreview(s BarSeries, width, height int) ([]byte, error) {
	if len(s.Values) == 0 {
		return nil, ErrNoBarLayer
	}

	bars := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		bars[i] = chart.Value{
			Label: s.Labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("1db954"),
				StrokeColor: drawing.ColorFromHex("1db954"),
			},
		}
	}

	graph := chart.BarChart{
		Title:    s.Title,
		Width:    width,
		Height:   height,
		BarWidth: max(8, (width-120)/(2*len(bars))),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// PreviewEngine renders the first bar layer of a spec to PNG.
type PreviewEngine struct {
	Width, Height int

	mu  sync.Mutex
	png []byte
}

// Draw renders spec at the engine's size.
func (p *PreviewEngine) Draw(dashboard string, v breakpoint.Variant, spec Spec) error {
	series, err := FirstBarSeries(spec)
	if err != nil {
		return fmt.Errorf("preview %s/%s: %w", dashboard, v, err)
	}
	png, err := RenderPreview(series, p.Width, p.Height)
	if err != nil {
		return fmt.Errorf("preview %s/%s: %w", dashboard, v, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.png = png
	return nil
}

// PNG returns the last rendered image.
func (p *PreviewEngine) PNG() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.png
}
