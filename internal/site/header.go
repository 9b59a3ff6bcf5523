package site

import (
	"strings"
	"sync"
)

// ScrollThreshold is the offset after which the header turns solid.
const ScrollThreshold = 50

// Scroller brings an anchor into view, reporting whether it exists.
type Scroller interface {
	ScrollTo(anchor string) bool
}

// NavItem is one entry of the header navigation.
type NavItem struct {
	ID    string
	Label string
}

// NavItems are the header links.
var NavItems = []NavItem{
	{ID: "hero", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "experience", Label: "Experience"},
	{ID: "projects", Label: "Projects"},
	{ID: "certifications", Label: "Certifications"},
	{ID: "testimonials", Label: "Testimonials"},
	{ID: "contact", Label: "Contact"},
}

// Header tracks the scrolled look and the mobile menu.
type Header struct {
	mu       sync.Mutex
	scrolled bool
	menuOpen bool
	scroller Scroller
}

func NewHeader(s Scroller) *Header { return &Header{scroller: s} }

// OnScroll records the vertical scroll offset.
func (h *Header) OnScroll(y float64) {
	h.mu.Lock()
	h.scrolled = y > ScrollThreshold
	h.mu.Unlock()
}

func (h *Header) Scrolled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrolled
}

func (h *Header) ToggleMenu() {
	h.mu.Lock()
	h.menuOpen = !h.menuOpen
	h.mu.Unlock()
}

func (h *Header) MenuOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menuOpen
}

// Navigate scrolls to anchor and closes the mobile menu when the anchor exists.
func (h *Header) Navigate(anchor string) bool {
	if h.scroller != nil && !h.scroller.ScrollTo(anchor) {
		return false
	}
	h.mu.Lock()
	h.menuOpen = false
	h.mu.Unlock()
	return true
}

// VisibleNavItems keeps the links whose section is rendered.
func VisibleNavItems(composed []Composed) []NavItem {
	on := make(map[string]bool, len(composed))
	for _, c := range composed {
		on[c.ID] = true
	}
	var out []NavItem
	for _, it := range NavItems {
		if on[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// Initials builds the header logo from a name: "Ada Lovelace" -> "AL".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteRune(r[0])
	}
	return strings.ToUpper(b.String())
}
