package models

// SectionConfig controls one public section. An absent entry means enabled at order 0.
type SectionConfig struct {
	Enabled bool `json:"enabled" bson:"enabled"`
	Order   int  `json:"order" bson:"order"`
}

type SEO struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Keywords    string `json:"keywords" bson:"keywords"`
	OGImage     string `json:"og_image" bson:"og_image"`
}

type Analytics struct {
	GoogleAnalyticsID string `json:"google_analytics_id" bson:"google_analytics_id"`
	Enabled           bool   `json:"enabled" bson:"enabled"`
}

type Settings struct {
	Theme          string                   `json:"theme" bson:"theme"`
	PrimaryColor   string                   `json:"primary_color" bson:"primary_color"`
	SecondaryColor string                   `json:"secondary_color" bson:"secondary_color"`
	AccentColor    string                   `json:"accent_color" bson:"accent_color"`
	Font           string                   `json:"font" bson:"font"`
	Language       string                   `json:"language" bson:"language"`
	SEO            SEO                      `json:"seo" bson:"seo"`
	Analytics      Analytics                `json:"analytics" bson:"analytics"`
	BlogEnabled    bool                     `json:"blog_enabled" bson:"blog_enabled"`
	Sections       map[string]SectionConfig `json:"sections" bson:"sections"`
	Stamped        `bson:",inline"`
}

// DefaultSectionOrder is the stock order of the public sections.
var DefaultSectionOrder = []string{
	"hero", "about", "experience", "education", "skills",
	"projects", "certifications", "testimonials", "blog", "contact",
}

func DefaultSettings() *Settings {
	sections := make(map[string]SectionConfig, len(DefaultSectionOrder))
	for i, name := range DefaultSectionOrder {
		sections[name] = SectionConfig{Enabled: true, Order: i + 1}
	}
	return &Settings{
		Theme:          "light",
		PrimaryColor:   "#000000",
		SecondaryColor: "#666666",
		AccentColor:    "#0066cc",
		Font:           "Inter",
		Language:       "en",
		SEO: SEO{
			Title:       "Portfolio",
			Description: "Personal portfolio website",
			Keywords:    "portfolio, developer, web development",
		},
		BlogEnabled: true,
		Sections:    sections,
	}
}

// Section resolves the config for name.
func (s *Settings) Section(name string) SectionConfig {
	if s != nil {
		if cfg, ok := s.Sections[name]; ok {
			return cfg
		}
	}
	return SectionConfig{Enabled: true}
}

func (Settings) Kind() string { return "settings" }
func (s Settings) Missing() []string {
	switch s.Theme {
	case "", "light", "dark", "auto":
		return nil
	}
	return []string{"theme"}
}
