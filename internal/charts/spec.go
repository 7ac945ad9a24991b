// Package charts loads precomputed Vega-Lite dashboards and renders the
// variant that matches a viewer's breakpoint.
package charts

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Spec is a declarative chart document. Its structure is opaque to this
// package apart from the few keys the preview and card helpers read.
type Spec map[string]any

// ParseSpec decodes a JSON chart document.
func ParseSpec(data []byte) (Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode chart spec: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("decode chart spec: document is null")
	}
	return s, nil
}

// Clone returns a deep copy. Loaded specs are shared between viewers, so
// anything handed to an engine is a clone.
func (s Spec) Clone() Spec {
	if s == nil {
		return nil
	}
	return cloneValue(map[string]any(s)).(map[string]any)
}

// MarshalJSON keeps Spec encoding on the same codec it was decoded with.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(s))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Spec:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// strings, numbers, bools and nil are immutable
		return t
	}
}
