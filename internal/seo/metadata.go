package seo

import (
	"strings"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/media"
)

const (
	RobotsIndex   = "index, follow"
	RobotsNoIndex = "noindex, follow"

	TwitterSummary      = "summary"
	TwitterSummaryLarge = "summary_large_image"
)

// SiteDefaults are the site-wide fallbacks used when a record lacks a value.
type SiteDefaults struct {
	Name        string
	Description string
	OGImage     string
	Locale      string
}

// Robots is the robots directive pair. Follow is always true.
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

func (r Robots) String() string {
	if r.Index {
		return RobotsIndex
	}
	return RobotsNoIndex
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Type        string `json:"type"`
	SiteName    string `json:"siteName,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

type TwitterCard struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PageMetadata is the search-engine metadata for one page.
type PageMetadata struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CanonicalURL string      `json:"canonicalUrl"`
	Robots       Robots      `json:"robots"`
	OpenGraph    OpenGraph   `json:"openGraph"`
	Twitter      TwitterCard `json:"twitter"`
}

// Synthesizer derives PageMetadata from a record and its resolved images.
type Synthesizer struct {
	site     SiteDefaults
	resolver media.URLResolver
}

func NewSynthesizer(site SiteDefaults, resolver media.URLResolver) *Synthesizer {
	return &Synthesizer{site: site, resolver: resolver}
}

// Synthesize never fails. hero and og may be nil.
func (s *Synthesizer) Synthesize(record *content.Record, hero, og *content.Image, canonicalBase string) PageMetadata {
	if record == nil {
		record = &content.Record{}
	}
	seoTitle := strings.TrimSpace(record.SEOTitle)
	title := strings.TrimSpace(record.Title)
	seoDescription := strings.TrimSpace(record.SEODescription)
	heroURL := s.resolver.ImageURL(hero)
	ogURL := s.resolver.ImageURL(og)

	meta := PageMetadata{
		Title:        firstNonEmpty(seoTitle, title, s.site.Name),
		Description:  firstNonEmpty(seoDescription, s.site.Description),
		CanonicalURL: CanonicalURL(canonicalBase, record.Path),
	}
	meta.Robots = Robots{
		Index:  IsIndexable(firstNonEmpty(seoTitle, title), seoDescription, heroURL),
		Follow: true,
	}

	image := firstNonEmpty(ogURL, heroURL)
	card := TwitterSummary
	if image != "" {
		card = TwitterSummaryLarge
	}
	image = firstNonEmpty(image, s.site.OGImage)

	meta.OpenGraph = OpenGraph{
		Title:       meta.Title,
		Description: meta.Description,
		URL:         meta.CanonicalURL,
		Image:       image,
		Type:        "website",
		SiteName:    s.site.Name,
		Locale:      s.site.Locale,
	}
	meta.Twitter = TwitterCard{
		Card:        card,
		Title:       meta.Title,
		Description: meta.Description,
		Image:       image,
	}
	return meta
}

// IsIndexable is true only when a title, a description and a hero image URL
// are all present.
func IsIndexable(title, description, heroURL string) bool {
	return strings.TrimSpace(title) != "" &&
		strings.TrimSpace(description) != "" &&
		strings.TrimSpace(heroURL) != ""
}

// CanonicalURL joins base and path without doubling the slash.
func CanonicalURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
