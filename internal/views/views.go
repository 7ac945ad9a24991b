// Package views holds the presentation helpers shared by the page
// templates.
package views

import (
	"strconv"
	"strings"
	"time"
)

// AnimateDuration is how long headings play the entry animation before
// switching to the hover animation.
const AnimateDuration = 3 * time.Second

// Letter is one animated heading character.
type Letter struct {
	Char  string
	Class string
}

// AnimatedLetters splits text into letters. Letter i of a heading starting
// at idx gets the stagger class _<idx+i>. Spaces become non-breaking so the
// spans keep their width.
func AnimatedLetters(text string, idx int) []Letter {
	letters := make([]Letter, 0, len(text))
	i := 0
	for _, r := range text {
		ch := string(r)
		if r == ' ' {
			ch = "\u00a0"
		}
		letters = append(letters, Letter{
			Char:  ch,
			Class: "text-animate _" + strconv.Itoa(idx+i),
		})
		i++
	}
	return letters
}

// NavItem is an entry of the navigation bar.
type NavItem struct {
	Path  string
	Icon  string
	Label string
	ID    string
}

// Nav is the site navigation, in display order.
var Nav = []NavItem{
	{Path: "/", Icon: "fa-house", Label: "Home", ID: "home-link"},
	{Path: "/experiences", Icon: "fa-briefcase", Label: "Experiences", ID: "experiences-link"},
	{Path: "/projects", Icon: "fa-code", Label: "Projects", ID: "projects-link"},
	{Path: "/interests", Icon: "fa-gamepad", Label: "Interests", ID: "interests-link"},
}

// Active reports whether the nav item matches the current path.
func (n NavItem) Active(current string) bool {
	if n.Path == "/" {
		return current == "/"
	}
	return current == n.Path || strings.HasPrefix(current, n.Path+"/")
}

// SocialLink is an external profile link.
type SocialLink struct {
	Href  string
	Icon  string
	Color string
	Label string
}

// Social lists the profile links shown in the navigation bar.
var Social = []SocialLink{
	{Href: "https://github.com/Dipto9999", Icon: "fa-brands fa-github", Color: "#FAFAFA", Label: "GitHub"},
	{Href: "https://www.linkedin.com/in/muntakim-rahman/", Icon: "fa-brands fa-linkedin", Color: "#0077B5", Label: "LinkedIn"},
	{Href: "https://x.com/Dipto9999", Icon: "fa-brands fa-twitter", Color: "#1DA1F2", Label: "X"},
	{Href: "https://www.youtube.com/channel/UCNF7p6gRuxE0dFYeDnzxoHw", Icon: "fa-brands fa-youtube", Color: "#CC181E", Label: "YouTube"},
	{Href: "mailto:dipto100@alum.ubc.ca", Icon: "fa-solid fa-envelope", Color: "#EDEDED", Label: "Email"},
	{Href: "https://calendly.com/muntakim-rahman", Icon: "fa-solid fa-calendar", Color: "#00A2FF", Label: "Calendly"},
}
