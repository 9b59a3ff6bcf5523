package models

import "time"

type SocialLinks struct {
	LinkedIn string `json:"linkedin" bson:"linkedin"`
	GitHub   string `json:"github" bson:"github"`
	Twitter  string `json:"twitter" bson:"twitter"`
	Email    string `json:"email" bson:"email"`
}

// Hero is the singleton banner at the top of the site.
type Hero struct {
	Name            string      `json:"name" bson:"name"`
	JobTitle        string      `json:"job_title" bson:"job_title"`
	Tagline         string      `json:"tagline" bson:"tagline"`
	ProfileImage    string      `json:"profile_image" bson:"profile_image"`
	BackgroundImage string      `json:"background_image" bson:"background_image"`
	ResumeURL       string      `json:"resume_url" bson:"resume_url"`
	SocialLinks     SocialLinks `json:"social_links" bson:"social_links"`
	Stamped         `bson:",inline"`
}

func DefaultHero() *Hero {
	return &Hero{Name: "Your Name", JobTitle: "Your Job Title", Tagline: "Your professional tagline"}
}

func (Hero) Kind() string { return "hero" }
func (h Hero) Missing() []string {
	return missing("name", h.Name, "job_title", h.JobTitle)
}

type About struct {
	Title             string   `json:"title" bson:"title"`
	Description       string   `json:"description" bson:"description"`
	LongDescription   string   `json:"long_description" bson:"long_description"`
	Location          string   `json:"location" bson:"location"`
	YearsOfExperience int      `json:"years_of_experience" bson:"years_of_experience"`
	ProjectsCompleted int      `json:"projects_completed" bson:"projects_completed"`
	Technologies      []string `json:"technologies" bson:"technologies"`
	Stamped           `bson:",inline"`
}

func DefaultAbout() *About {
	return &About{
		Title:           "About Me",
		Description:     "Your professional description",
		LongDescription: "Additional details about yourself",
		Location:        "Your Location",
		Technologies:    []string{},
	}
}

func (About) Kind() string { return "about" }
func (a About) Missing() []string {
	return missing("description", a.Description)
}

type Education struct {
	Base        `bson:",inline"`
	Degree      string `json:"degree" bson:"degree"`
	Institution string `json:"institution" bson:"institution"`
	Location    string `json:"location" bson:"location"`
	Duration    string `json:"duration" bson:"duration"`
	GPA         string `json:"gpa" bson:"gpa"`
	Description string `json:"description" bson:"description"`
	Order       int    `json:"order" bson:"order"`
}

func (Education) Kind() string { return "education" }
func (e Education) Missing() []string {
	return missing("degree", e.Degree, "institution", e.Institution, "location", e.Location, "duration", e.Duration)
}
func (e Education) Rank() int { return e.Order }

type Experience struct {
	Base         `bson:",inline"`
	Position     string   `json:"position" bson:"position"`
	Company      string   `json:"company" bson:"company"`
	Location     string   `json:"location" bson:"location"`
	Duration     string   `json:"duration" bson:"duration"`
	Type         string   `json:"type" bson:"type"`
	Description  string   `json:"description" bson:"description"`
	Achievements []string `json:"achievements" bson:"achievements"`
	Technologies []string `json:"technologies" bson:"technologies"`
	Order        int      `json:"order" bson:"order"`
}

func NewExperience() *Experience {
	return &Experience{Type: "Full-time", Achievements: []string{}, Technologies: []string{}}
}

func (Experience) Kind() string { return "experience" }
func (e Experience) Missing() []string {
	return missing("position", e.Position, "company", e.Company, "location", e.Location,
		"duration", e.Duration, "description", e.Description)
}
func (e Experience) Rank() int { return e.Order }

type TechnicalSkill struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Level    int    `json:"level" bson:"level"`
	Category string `json:"category" bson:"category"`
}

func (TechnicalSkill) Kind() string { return "technical_skill" }
func (s TechnicalSkill) Missing() []string {
	return missing("name", s.Name, "category", s.Category)
}

type Skills struct {
	Technical []TechnicalSkill `json:"technical" bson:"technical"`
	Soft      []string         `json:"soft" bson:"soft"`
	Stamped   `bson:",inline"`
}

func DefaultSkills() *Skills {
	return &Skills{Technical: []TechnicalSkill{}, Soft: []string{}}
}

func (Skills) Kind() string      { return "skills" }
func (Skills) Missing() []string { return nil }
func (s Skills) Empty() bool     { return len(s.Technical) == 0 && len(s.Soft) == 0 }

type Project struct {
	Base            `bson:",inline"`
	Title           string   `json:"title" bson:"title"`
	Description     string   `json:"description" bson:"description"`
	LongDescription string   `json:"long_description" bson:"long_description"`
	Image           string   `json:"image" bson:"image"`
	Technologies    []string `json:"technologies" bson:"technologies"`
	GitHubURL       string   `json:"github_url" bson:"github_url"`
	LiveURL         string   `json:"live_url" bson:"live_url"`
	Featured        bool     `json:"featured" bson:"featured"`
	Category        string   `json:"category" bson:"category"`
	Order           int      `json:"order" bson:"order"`
}

func NewProject() *Project { return &Project{Technologies: []string{}} }

func (Project) Kind() string { return "project" }
func (p Project) Missing() []string {
	return missing("title", p.Title, "category", p.Category, "description", p.Description,
		"long_description", p.LongDescription)
}
func (p Project) Rank() int { return p.Order }

type Certification struct {
	Base         `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Issuer       string `json:"issuer" bson:"issuer"`
	Date         string `json:"date" bson:"date"`
	CredentialID string `json:"credential_id" bson:"credential_id"`
	Image        string `json:"image" bson:"image"`
	URL          string `json:"url" bson:"url"`
	Order        int    `json:"order" bson:"order"`
}

func (Certification) Kind() string { return "certification" }
func (c Certification) Missing() []string {
	return missing("name", c.Name, "issuer", c.Issuer, "date", c.Date)
}
func (c Certification) Rank() int { return c.Order }

type Testimonial struct {
	Base     `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	Position string `json:"position" bson:"position"`
	Company  string `json:"company" bson:"company"`
	Avatar   string `json:"avatar" bson:"avatar"`
	Quote    string `json:"quote" bson:"quote"`
	Rating   int    `json:"rating" bson:"rating"`
	Order    int    `json:"order" bson:"order"`
}

func NewTestimonial() *Testimonial { return &Testimonial{Rating: 5} }

func (Testimonial) Kind() string { return "testimonial" }
func (t Testimonial) Missing() []string {
	return missing("name", t.Name, "position", t.Position, "company", t.Company, "quote", t.Quote)
}
func (t Testimonial) Rank() int { return t.Order }

type BlogArticle struct {
	Base        `bson:",inline"`
	Title       string    `json:"title" bson:"title"`
	Excerpt     string    `json:"excerpt" bson:"excerpt"`
	Content     string    `json:"content" bson:"content"`
	PublishDate time.Time `json:"publish_date" bson:"publish_date"`
	ReadTime    string    `json:"read_time" bson:"read_time"`
	Tags        []string  `json:"tags" bson:"tags"`
	Image       string    `json:"image" bson:"image"`
	Featured    bool      `json:"featured" bson:"featured"`
	Published   bool      `json:"published" bson:"published"`
	Order       int       `json:"order" bson:"order"`
}

// NewBlogArticle returns an article dated now and published by default.
func NewBlogArticle() *BlogArticle {
	return &BlogArticle{PublishDate: time.Now().UTC(), Tags: []string{}, Published: true}
}

func (BlogArticle) Kind() string { return "blog_article" }
func (b BlogArticle) Missing() []string {
	return missing("title", b.Title, "excerpt", b.Excerpt, "content", b.Content)
}
func (b BlogArticle) Rank() int { return b.Order }
