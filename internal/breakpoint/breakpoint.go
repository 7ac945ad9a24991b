// Package breakpoint maps a viewport size to one of the precomputed
// presentation variants the dashboards ship charts for.
package breakpoint

import "fmt"

// Width breakpoints
const (
	// PhoneWidth is the widest viewport still treated as a phone held upright.
	PhoneWidth = 550

	// SmallTabletWidth covers phones in landscape and small tablets.
	SmallTabletWidth = 900

	// TabletWidth is the widest viewport that gets a tablet layout.
	TabletWidth = 1200
)

// Variant is a named presentation variant.
type Variant int

const (
	Default Variant = iota
	Portrait
	Landscape
	TabletPortrait
	Tablet
)

// Variants lists every variant in resolution order.
var Variants = []Variant{Portrait, Landscape, TabletPortrait, Tablet, Default}

var variantNames = map[Variant]string{
	Portrait:       "portrait",
	Landscape:      "landscape",
	TabletPortrait: "tablet-portrait",
	Tablet:         "tablet",
	Default:        "default",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant returns the variant with the given name.
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return Default, fmt.Errorf("unknown variant %q", name)
}

// Resolve picks the variant for a viewport. The first matching rule wins, so
// every (width, height) pair maps to exactly one variant. Negative sizes are
// treated as zero.
func Resolve(width, height int) Variant {
	width, height = max(width, 0), max(height, 0)

	switch {
	case width <= PhoneWidth && height >= width:
		return Portrait
	case width <= SmallTabletWidth && width > height:
		return Landscape
	case width <= SmallTabletWidth:
		return TabletPortrait
	case width <= TabletWidth:
		return Tablet
	default:
		return Default
	}
}
