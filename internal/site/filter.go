package site

import "github.com/folio/folio/internal/models"

// All is the filter value that matches every item.
const All = "all"

// Filter narrows a list to one category. Used for projects and technical skills.
type Filter[T any] struct {
	Active   string
	category func(T) string
}

func NewFilter[T any](category func(T) string) *Filter[T] {
	return &Filter[T]{Active: All, category: category}
}

// Set selects a category; an empty value resets to All.
func (f *Filter[T]) Set(category string) {
	if category == "" {
		category = All
	}
	f.Active = category
}

func (f *Filter[T]) Match(item T) bool {
	return f.Active == All || f.category(item) == f.Active
}

// Apply returns the matching items in their original order.
func (f *Filter[T]) Apply(items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists the distinct categories of items in first-seen order.
func (f *Filter[T]) Categories(items []T) []string {
	return Categories(items, f.category)
}

func Categories[T any](items []T, category func(T) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		c := category(it)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func ProjectCategory(p models.Project) string      { return p.Category }
func SkillCategory(s models.TechnicalSkill) string { return s.Category }

// SplitFeatured separates featured projects from the rest, keeping order.
func SplitFeatured(projects []models.Project) (featured, regular []models.Project) {
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		} else {
			regular = append(regular, p)
		}
	}
	return featured, regular
}
