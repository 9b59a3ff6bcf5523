// Package site holds the state behind the public single-page portfolio: which
// sections render and in what order, plus the carousel, filter and header
// state the sections use.
package site

import "github.com/folio/folio/internal/models"

// Section identifies one public section.
type Section struct {
	ID    string
	Label string
}

var labels = map[string]string{
	"hero":           "Hero",
	"about":          "About",
	"experience":     "Experience",
	"education":      "Education",
	"skills":         "Skills",
	"projects":       "Projects",
	"certifications": "Certifications",
	"testimonials":   "Testimonials",
	"blog":           "Blog",
	"contact":        "Contact",
}

// Catalog is the ordered list of sections shared by the composer and the
// settings editor. Its order breaks ties between equal section orders.
var Catalog = func() []Section {
	out := make([]Section, 0, len(models.DefaultSectionOrder))
	for _, id := range models.DefaultSectionOrder {
		out = append(out, Section{ID: id, Label: labels[id]})
	}
	return out
}()

// IDs returns the catalog identifiers in catalog order.
func IDs() []string {
	ids := make([]string, len(Catalog))
	for i, s := range Catalog {
		ids[i] = s.ID
	}
	return ids
}

// Lookup finds a catalog section by id.
func Lookup(id string) (Section, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
