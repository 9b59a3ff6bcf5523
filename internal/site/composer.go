package site

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/client"
)

// Content is everything the public page renders. Nil singletons and empty
// lists mean "nothing to show".
type Content struct {
	Hero     *models.Hero
	About    *models.About
	Skills   *models.Skills
	Settings *models.Settings

	Education      []models.Education
	Experience     []models.Experience
	Projects       []models.Project
	Certifications []models.Certification
	Testimonials   []models.Testimonial
	Blog           []models.BlogArticle
}

// Composed is a section selected for rendering.
type Composed struct {
	ID     string
	Config models.SectionConfig
}

// HasContent reports whether section id has something to render.
func (c Content) HasContent(id string, settings *models.Settings) bool {
	switch id {
	case "hero":
		return c.Hero != nil
	case "about":
		return c.About != nil
	case "skills":
		return c.Skills != nil && !c.Skills.Empty()
	case "experience":
		return len(c.Experience) > 0
	case "education":
		return len(c.Education) > 0
	case "projects":
		return len(c.Projects) > 0
	case "certifications":
		return len(c.Certifications) > 0
	case "testimonials":
		return len(c.Testimonials) > 0
	case "blog":
		if settings == nil || !settings.BlogEnabled {
			return false
		}
		for _, a := range c.Blog {
			if a.Published {
				return true
			}
		}
		return false
	case "contact":
		return true
	}
	return false
}

// Compose selects the enabled sections that have content and orders them by
// their configured order; catalog order breaks ties. Header and footer are
// always rendered and are not part of the result.
func Compose(content Content, settings *models.Settings) []Composed {
	out := make([]Composed, 0, len(Catalog))
	for _, s := range Catalog {
		cfg := settings.Section(s.ID)
		if !cfg.Enabled || !content.HasContent(s.ID, settings) {
			continue
		}
		out = append(out, Composed{ID: s.ID, Config: cfg})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Config.Order < out[j].Config.Order })
	return out
}

// Load fetches every public section concurrently. The first failure cancels
// the rest and is returned.
func Load(ctx context.Context, c *client.Client) (Content, error) {
	var content Content
	g, ctx := errgroup.WithContext(ctx)
	fetch(ctx, g, &content.Hero, c.Hero.Get)
	fetch(ctx, g, &content.About, c.About.Get)
	fetch(ctx, g, &content.Skills, c.Skills.Get)
	fetch(ctx, g, &content.Settings, c.Settings.Get)
	fetch(ctx, g, &content.Education, c.Education.List)
	fetch(ctx, g, &content.Experience, c.Experience.List)
	fetch(ctx, g, &content.Projects, c.Projects.List)
	fetch(ctx, g, &content.Certifications, c.Certifications.List)
	fetch(ctx, g, &content.Testimonials, c.Testimonials.List)
	fetch(ctx, g, &content.Blog, c.Blog.List)
	if err := g.Wait(); err != nil {
		return Content{}, err
	}
	return content, nil
}

func fetch[T any](ctx context.Context, g *errgroup.Group, dst *T, get func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := get(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}
