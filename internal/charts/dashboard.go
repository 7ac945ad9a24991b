package charts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
)

var (
	ErrUnknownDashboard = errors.New("unknown dashboard")
	ErrNoSpec           = errors.New("no spec for variant")
)

// fallbacks lists, per resolved variant, which shipped variants may stand in
// for it, most specific first.
var fallbacks = map[breakpoint.Variant][]breakpoint.Variant{
	breakpoint.Portrait:       {breakpoint.Portrait, breakpoint.Default},
	breakpoint.Landscape:      {breakpoint.Landscape, breakpoint.Default},
	breakpoint.TabletPortrait: {breakpoint.TabletPortrait, breakpoint.Tablet, breakpoint.Default},
	breakpoint.Tablet:         {breakpoint.Tablet, breakpoint.Default},
	breakpoint.Default:        {breakpoint.Default},
}

// Dashboard is a named set of chart specs, one per shipped variant.
type Dashboard struct {
	Name  string
	specs map[breakpoint.Variant]Spec
}

// NewDashboard builds a dashboard. A default spec is required so that every
// variant resolves to something.
func NewDashboard(name string, specs map[breakpoint.Variant]Spec) (*Dashboard, error) {
	if _, ok := specs[breakpoint.Default]; !ok {
		return nil, fmt.Errorf("dashboard %s: %w %s", name, ErrNoSpec, breakpoint.Default)
	}
	d := &Dashboard{Name: name, specs: make(map[breakpoint.Variant]Spec, len(specs))}
	for v, s := range specs {
		d.specs[v] = s
	}
	return d, nil
}

// Spec returns the canonical spec for v and the variant actually used. The
// returned spec must not be modified; clone it first.
func (d *Dashboard) Spec(v breakpoint.Variant) (Spec, breakpoint.Variant, error) {
	for _, candidate := range fallbacks[v] {
		if s, ok := d.specs[candidate]; ok {
			return s, candidate, nil
		}
	}
	return nil, v, fmt.Errorf("dashboard %s: %w %s", d.Name, ErrNoSpec, v)
}

// Variants returns the shipped variants in resolution order.
func (d *Dashboard) Variants() []breakpoint.Variant {
	out := make([]breakpoint.Variant, 0, len(d.specs))
	for _, v := range breakpoint.Variants {
		if _, ok := d.specs[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func sortedNames(m map[string]*Dashboard) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
