// Package assets resolves the image entries shown in the Interests
// carousel from an explicit manifest.
package assets

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Item declares one carousel image. Caption names an optional text file
// holding the caption; Index numbers the default label when no caption file
// is declared.
type Item struct {
	Index   int    `yaml:"index,omitempty"`
	Image   string `yaml:"image"`
	Caption string `yaml:"caption,omitempty"`
}

// Manifest is the ordered list of carousel images. Order is display order.
type Manifest struct {
	Items []Item `yaml:"items"`
}

// ParseManifest reads a YAML manifest. Items without an index are numbered
// by position, starting at 1.
func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return Manifest{}, fmt.Errorf("decode asset manifest: %w", err)
	}
	for i := range m.Items {
		if m.Items[i].Image == "" {
			return Manifest{}, fmt.Errorf("asset manifest item %d: image is required", i+1)
		}
		if m.Items[i].Index == 0 {
			m.Items[i].Index = i + 1
		}
	}
	return m, nil
}

// Write encodes the manifest as YAML.
func (m Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode asset manifest: %w", err)
	}
	return enc.Close()
}

// Enumerate builds the manifest for files named prefix_N.ext, N in
// [1, count]. With captions set, each image also declares prefix_N.txt.
func Enumerate(prefix, ext string, count int, captions bool) Manifest {
	m := Manifest{Items: make([]Item, 0, max(count, 0))}
	for i := 1; i <= count; i++ {
		item := Item{Index: i, Image: fmt.Sprintf("%s_%d.%s", prefix, i, ext)}
		if captions {
			item.Caption = fmt.Sprintf("%s_%d.txt", prefix, i)
		}
		m.Items = append(m.Items, item)
	}
	return m
}
