package charts

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
)

// Engine draws a chart spec. Engines own the spec they are given and may
// modify it.
type Engine interface {
	Draw(dashboard string, v breakpoint.Variant, spec Spec) error
}

// EmbedEngine keeps the last drawn spec as the JSON document handed to
// vega-embed in the browser.
type EmbedEngine struct {
	mu      sync.RWMutex
	doc     []byte
	variant breakpoint.Variant
	draws   int
}

// Draw encodes spec, stamping the variant it was drawn for into usermeta.
func (e *EmbedEngine) Draw(dashboard string, v breakpoint.Variant, spec Spec) error {
	meta, _ := spec["usermeta"].(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["dashboard"] = dashboard
	meta["variant"] = v.String()
	spec["usermeta"] = meta

	doc, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", dashboard, v, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	e.variant = v
	e.draws++
	return nil
}

// Document returns the last drawn document, or nil before the first draw.
func (e *EmbedEngine) Document() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// Variant returns the variant of the last draw.
func (e *EmbedEngine) Variant() breakpoint.Variant {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.variant
}

// Draws counts completed draws.
func (e *EmbedEngine) Draws() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.draws
}
