package interfaces

import "time"

// MarkdownRenderer converts listing body Markdown into HTML for the page view.
// Implementations must be safe for concurrent use; a single instance serves
// every request.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
}

// ListingDocument is a listing source file split into frontmatter and body.
type ListingDocument struct {
	FilePath     string
	FrontMatter  ListingFrontMatter
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// ListingFrontMatter holds the frontmatter keys understood by the importer.
// Anything else lands in Extra and is carried into the record payload.
type ListingFrontMatter struct {
	Path           string           `yaml:"path"`
	Title          string           `yaml:"title"`
	Status         string           `yaml:"status"`
	SEOTitle       string           `yaml:"seo_title"`
	SEODescription string           `yaml:"seo_description"`
	PublishedAt    string           `yaml:"published_at"`
	SchemaType     string           `yaml:"schema_type"`
	Biz            map[string]any   `yaml:"biz"`
	Images         []FrontMatterImg `yaml:"images"`
	Extra          map[string]any   `yaml:",inline"`
}

// FrontMatterImg describes one image entry in listing frontmatter.
type FrontMatterImg struct {
	Role        string `yaml:"role"`
	PublicURL   string `yaml:"public_url"`
	Bucket      string `yaml:"bucket"`
	StoragePath string `yaml:"storage_path"`
	AltText     string `yaml:"alt"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	// SortOrder is nil when the entry omits sort_order; the entry's position
	// is used then.
	SortOrder   *int   `yaml:"sort_order"`
}
