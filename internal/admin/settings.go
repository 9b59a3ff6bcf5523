package admin

import (
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/site"
)

// SectionRow is one line of the section table in the settings screen.
type SectionRow struct {
	ID      string
	Label   string
	Enabled bool
	Order   int
}

// SettingsEditor is the settings document editor plus the section table,
// which lists site.Catalog in order.
type SettingsEditor struct {
	*DocEditor[models.Settings]
}

func NewSettingsEditor(src DocSource[models.Settings], n Notifier) *SettingsEditor {
	return &SettingsEditor{NewDocEditor(src, "Settings", func() models.Settings { return *models.DefaultSettings() }, n)}
}

// Sections resolves every catalog section against the form.
func (e *SettingsEditor) Sections() []SectionRow {
	f := e.Form()
	rows := make([]SectionRow, 0, len(site.Catalog))
	for _, s := range site.Catalog {
		cfg := f.Section(s.ID)
		rows = append(rows, SectionRow{ID: s.ID, Label: s.Label, Enabled: cfg.Enabled, Order: cfg.Order})
	}
	return rows
}

func (e *SettingsEditor) SetSectionEnabled(id string, enabled bool) error {
	return e.editSection(id, func(c *models.SectionConfig) { c.Enabled = enabled })
}

// SetSectionOrder reads input like any numeric form field.
func (e *SettingsEditor) SetSectionOrder(id, input string) error {
	return e.editSection(id, func(c *models.SectionConfig) { c.Order = ParseInt(input) })
}

func (e *SettingsEditor) editSection(id string, fn func(*models.SectionConfig)) error {
	if _, ok := site.Lookup(id); !ok {
		return &IncompleteError{Fields: []string{"sections." + id}}
	}
	return e.Edit(func(s *models.Settings) {
		cfg := s.Section(id)
		fn(&cfg)
		next := make(map[string]models.SectionConfig, len(s.Sections)+1)
		for k, v := range s.Sections {
			next[k] = v
		}
		next[id] = cfg
		s.Sections = next
	})
}
