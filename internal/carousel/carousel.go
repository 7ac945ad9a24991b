// Package carousel holds the presentation state of the Interests image
// carousel.
package carousel

import "github.com/Dipto9999/portfolio/internal/assets"

// Settings are the slider options handed to the client carousel.
type Settings struct {
	Dots           bool   `json:"dots"`
	Infinite       bool   `json:"infinite"`
	Speed          int    `json:"speed"`
	SlidesToShow   int    `json:"slidesToShow"`
	SlidesToScroll int    `json:"slidesToScroll"`
	Autoplay       bool   `json:"autoplay"`
	AutoplaySpeed  int    `json:"autoplaySpeed"`
	CSSEase        string `json:"cssEase"`
}

// DefaultSettings scrolls three slides at a time every two seconds.
func DefaultSettings() Settings {
	return Settings{
		Dots:           true,
		Infinite:       true,
		Speed:          500,
		SlidesToShow:   3,
		SlidesToScroll: 3,
		Autoplay:       true,
		AutoplaySpeed:  2000,
		CSSEase:        "linear",
	}
}

// Position is where the tooltip is anchored, in pixels from the page origin.
type Position struct {
	Top  int `form:"top"`
	Left int `form:"left"`
}

// Tooltip is the caption shown while the pointer is over an entry.
type Tooltip struct {
	Content  string
	Visible  bool
	Position Position
}

// Show fills the tooltip from the hovered entry.
func (t *Tooltip) Show(e assets.Entry, at Position) {
	t.Content = e.Caption
	t.Visible = true
	t.Position = at
}

// Hide clears the tooltip.
func (t *Tooltip) Hide() {
	*t = Tooltip{}
}

// Carousel is the resolved, ordered list of entries.
type Carousel struct {
	Entries  []assets.Entry
	Settings Settings
}

// New returns a carousel over entries with the default settings.
func New(entries []assets.Entry) *Carousel {
	return &Carousel{Entries: entries, Settings: DefaultSettings()}
}

// Hover returns the tooltip for the entry at index. ok is false when index
// is out of range.
func (c *Carousel) Hover(index int, at Position) (t Tooltip, ok bool) {
	if index < 0 || index >= len(c.Entries) {
		return Tooltip{}, false
	}
	t.Show(c.Entries[index], at)
	return t, true
}
