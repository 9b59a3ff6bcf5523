package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/client"
)

// Editors is one editor per admin screen, all driving the same client.
type Editors struct {
	Hero     *DocEditor[models.Hero]
	About    *DocEditor[models.About]
	Skills   *SkillsEditor
	Settings *SettingsEditor

	Education      *ListEditor[models.Education]
	Experience     *ListEditor[models.Experience]
	Projects       *ListEditor[models.Project]
	Certifications *ListEditor[models.Certification]
	Testimonials   *ListEditor[models.Testimonial]
	Blog           *ListEditor[models.BlogArticle]

	Messages *MessageList
}

func NewEditors(c *client.Client, n Notifier) *Editors {
	return &Editors{
		Hero:     NewDocEditor[models.Hero](c.Hero, "Hero section", func() models.Hero { return *models.DefaultHero() }, n),
		About:    NewDocEditor[models.About](c.About, "About section", func() models.About { return *models.DefaultAbout() }, n),
		Skills:   NewSkillsEditor(c.Skills, n),
		Settings: NewSettingsEditor(c.Settings, n),

		Education: NewListEditor[models.Education](c.Education, ListSpec[models.Education]{
			Label:    "Education",
			Plural:   "education",
			SetOrder: func(e *models.Education, i int) { e.Order = i },
		}, n),
		Experience: NewListEditor[models.Experience](c.Experience, ListSpec[models.Experience]{
			Label:    "Experience",
			Plural:   "experiences",
			New:      func() models.Experience { return *models.NewExperience() },
			SetOrder: func(e *models.Experience, i int) { e.Order = i },
		}, n),
		Projects: NewListEditor[models.Project](c.Projects, ListSpec[models.Project]{
			Label:    "Project",
			Plural:   "projects",
			New:      func() models.Project { return *models.NewProject() },
			SetOrder: func(p *models.Project, i int) { p.Order = i },
		}, n),
		Certifications: NewListEditor[models.Certification](c.Certifications, ListSpec[models.Certification]{
			Label:    "Certification",
			Plural:   "certifications",
			SetOrder: func(x *models.Certification, i int) { x.Order = i },
		}, n),
		Testimonials: NewListEditor[models.Testimonial](c.Testimonials, ListSpec[models.Testimonial]{
			Label:    "Testimonial",
			Plural:   "testimonials",
			New:      func() models.Testimonial { return *models.NewTestimonial() },
			SetOrder: func(t *models.Testimonial, i int) { t.Order = i },
		}, n),
		Blog: NewListEditor[models.BlogArticle](c.Blog, ListSpec[models.BlogArticle]{
			Label:    "Article",
			Plural:   "articles",
			New:      func() models.BlogArticle { return *models.NewBlogArticle() },
			SetOrder: func(b *models.BlogArticle, i int) { b.Order = i },
		}, n),

		Messages: NewMessageList(c.ContactMessages, n),
	}
}

// LoadAll fetches every screen concurrently. Each editor notifies its own
// failure; the first error is returned.
func (e *Editors) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	for _, load := range []func(context.Context) error{
		e.Hero.Load, e.About.Load, e.Skills.Load, e.Settings.Load,
		e.Education.Load, e.Experience.Load, e.Projects.Load,
		e.Certifications.Load, e.Testimonials.Load, e.Blog.Load,
		e.Messages.Load,
	} {
		g.Go(func() error { return load(ctx) })
	}
	return g.Wait()
}

// Stats are the dashboard counters.
type Stats struct {
	Projects       int
	Experience     int
	Education      int
	Certifications int
	Testimonials   int
	Articles       int
	Published      int
	Messages       int
	Unread         int
}

// Stats counts from the last loaded lists.
func (e *Editors) Stats() Stats {
	blog := e.Blog.Items()
	published := 0
	for _, a := range blog {
		if a.Published {
			published++
		}
	}
	return Stats{
		Projects:       len(e.Projects.Items()),
		Experience:     len(e.Experience.Items()),
		Education:      len(e.Education.Items()),
		Certifications: len(e.Certifications.Items()),
		Testimonials:   len(e.Testimonials.Items()),
		Articles:       len(blog),
		Published:      published,
		Messages:       len(e.Messages.Messages()),
		Unread:         e.Messages.Unread(),
	}
}
