package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/folio/folio/internal/cache"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/portfolio/repository"
)

// Mongo collection of every section.
const (
	CollectionHero           = "hero"
	CollectionAbout          = "about"
	CollectionSkills         = "skills"
	CollectionSettings       = "settings"
	CollectionEducation      = "education"
	CollectionExperience     = "experience"
	CollectionProjects       = "projects"
	CollectionCertifications = "certifications"
	CollectionTestimonials   = "testimonials"
	CollectionBlog           = "blog_articles"
	CollectionMessages       = "contact_messages"
)

// OrderedCollections hold items ranked by their "order" field.
var OrderedCollections = []string{
	CollectionEducation, CollectionExperience, CollectionProjects, CollectionCertifications, CollectionTestimonials,
}

// Repos groups the persistence of every section.
type Repos struct {
	Hero     repository.DocRepository[models.Hero]
	About    repository.DocRepository[models.About]
	Skills   repository.DocRepository[models.Skills]
	Settings repository.DocRepository[models.Settings]

	Education      repository.ListRepository[*models.Education]
	Experience     repository.ListRepository[*models.Experience]
	Projects       repository.ListRepository[*models.Project]
	Certifications repository.ListRepository[*models.Certification]
	Testimonials   repository.ListRepository[*models.Testimonial]
	Blog           repository.ListRepository[*models.BlogArticle]
	Messages       repository.ListRepository[*models.ContactMessage]
}

func newEducation() *models.Education         { return &models.Education{} }
func newCertification() *models.Certification { return &models.Certification{} }
func newMessage() *models.ContactMessage      { return &models.ContactMessage{} }

// NewMemoryRepos returns Repos backed by process memory.
func NewMemoryRepos() Repos {
	return Repos{
		Hero:           repository.NewMemoryDoc[models.Hero](),
		About:          repository.NewMemoryDoc[models.About](),
		Skills:         repository.NewMemoryDoc[models.Skills](),
		Settings:       repository.NewMemoryDoc[models.Settings](),
		Education:      repository.NewMemoryList(newEducation, repository.ByRank[*models.Education]()),
		Experience:     repository.NewMemoryList(models.NewExperience, repository.ByRank[*models.Experience]()),
		Projects:       repository.NewMemoryList(models.NewProject, repository.ByRank[*models.Project]()),
		Certifications: repository.NewMemoryList(newCertification, repository.ByRank[*models.Certification]()),
		Testimonials:   repository.NewMemoryList(models.NewTestimonial, repository.ByRank[*models.Testimonial]()),
		Blog:           repository.NewMemoryList(models.NewBlogArticle, repository.ByPublishDate()),
		Messages:       repository.NewMemoryList(newMessage, repository.NewestFirst[*models.ContactMessage]()),
	}
}

// NewMongoRepos returns Repos backed by collections of db.
func NewMongoRepos(db *mongo.Database) Repos {
	return Repos{
		Hero:           repository.NewMongoDoc[models.Hero](db.Collection(CollectionHero)),
		About:          repository.NewMongoDoc[models.About](db.Collection(CollectionAbout)),
		Skills:         repository.NewMongoDoc[models.Skills](db.Collection(CollectionSkills)),
		Settings:       repository.NewMongoDoc[models.Settings](db.Collection(CollectionSettings)),
		Education:      repository.NewMongoList(db.Collection(CollectionEducation), newEducation, repository.ByRank[*models.Education]()),
		Experience:     repository.NewMongoList(db.Collection(CollectionExperience), models.NewExperience, repository.ByRank[*models.Experience]()),
		Projects:       repository.NewMongoList(db.Collection(CollectionProjects), models.NewProject, repository.ByRank[*models.Project]()),
		Certifications: repository.NewMongoList(db.Collection(CollectionCertifications), newCertification, repository.ByRank[*models.Certification]()),
		Testimonials:   repository.NewMongoList(db.Collection(CollectionTestimonials), models.NewTestimonial, repository.ByRank[*models.Testimonial]()),
		Blog:           repository.NewMongoList(db.Collection(CollectionBlog), models.NewBlogArticle, repository.ByPublishDate()),
		Messages:       repository.NewMongoList(db.Collection(CollectionMessages), newMessage, repository.NewestFirst[*models.ContactMessage]()),
	}
}

// Service exposes every portfolio section to the handler layer.
type Service struct {
	Hero     *Singleton[models.Hero]
	About    *Singleton[models.About]
	Skills   *Singleton[models.Skills]
	Settings *Singleton[models.Settings]

	Education      *List[*models.Education]
	Experience     *List[*models.Experience]
	Projects       *List[*models.Project]
	Certifications *List[*models.Certification]
	Testimonials   *List[*models.Testimonial]
	Blog           *List[*models.BlogArticle]

	Messages *Inbox
}

// New wires the sections. Pass cache.Nop{} to disable read caching.
func New(r Repos, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	s := &Service{
		Hero:           newSingleton("hero", r.Hero, models.DefaultHero, c, ttl),
		About:          newSingleton("about", r.About, models.DefaultAbout, c, ttl),
		Skills:         newSingleton("skills", r.Skills, models.DefaultSkills, c, ttl),
		Settings:       newSingleton("settings", r.Settings, models.DefaultSettings, c, ttl),
		Education:      newList("education", "Education entry", r.Education, newEducation, c, ttl),
		Experience:     newList("experience", "Experience entry", r.Experience, models.NewExperience, c, ttl),
		Projects:       newList("projects", "Project", r.Projects, models.NewProject, c, ttl),
		Certifications: newList("certifications", "Certification", r.Certifications, newCertification, c, ttl),
		Testimonials:   newList("testimonials", "Testimonial", r.Testimonials, models.NewTestimonial, c, ttl),
		Blog:           newList("blog", "Blog article", r.Blog, models.NewBlogArticle, c, ttl),
		Messages:       newInbox(r.Messages),
	}
	s.Skills.prepare = assignSkillIDs
	s.Settings.replace = replaceSections
	s.Blog.visible = func(a *models.BlogArticle) bool { return a.Published }
	return s
}

// NewMemory is the service over in-memory repositories with no cache.
func NewMemory() *Service { return New(NewMemoryRepos(), cache.Nop{}, 0) }

// replaceSections drops the stored section map when the body carries one, so
// entries left out of the update fall back to the section defaults.
func replaceSections(s *models.Settings, fields map[string]json.RawMessage) {
	if _, ok := fields["sections"]; ok {
		s.Sections = nil
	}
}

func assignSkillIDs(s *models.Skills) {
	for i := range s.Technical {
		if s.Technical[i].ID == "" {
			s.Technical[i].ID = uuid.NewString()
		}
	}
	if s.Technical == nil {
		s.Technical = []models.TechnicalSkill{}
	}
	if s.Soft == nil {
		s.Soft = []string{}
	}
}
