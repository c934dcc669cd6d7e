package directory

import (
	"context"
	"strings"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/fetcher"
	"github.com/saltaireguide/directory/internal/jsonld"
	"github.com/saltaireguide/directory/internal/listing"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/internal/media"
	"github.com/saltaireguide/directory/internal/payload"
	"github.com/saltaireguide/directory/internal/seo"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// ImageView is a resolved image ready for display.
type ImageView struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Page is the render-ready view of one listing.
type Page struct {
	Path           string                     `json:"path"`
	Business       listing.NormalizedBusiness `json:"business"`
	Metadata       seo.PageMetadata           `json:"metadata"`
	Breadcrumbs    []jsonld.Breadcrumb        `json:"breadcrumbs"`
	StructuredData []jsonld.Object            `json:"structuredData"`
	HeroImage      *ImageView                 `json:"heroImage,omitempty"`
	Gallery        []ImageView                `json:"gallery"`
	BodyHTML       string                     `json:"bodyHtml,omitempty"`
}

// Config holds the site settings the pipeline needs.
type Config struct {
	CanonicalBase string
	StorageBase   string
	Site          seo.SiteDefaults
}

// Service assembles pages: fetch, normalize, synthesize metadata, build
// breadcrumbs and structured data.
type Service struct {
	fetcher   fetcher.Fetcher
	resolver  media.URLResolver
	metadata  *seo.Synthesizer
	jsonld    *jsonld.Builder
	renderer  interfaces.MarkdownRenderer
	canonical string
	logger    interfaces.Logger
}

// Option customises the service.
type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarkdownRenderer enables BodyHTML rendering.
func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(s *Service) {
		s.renderer = renderer
	}
}

func NewService(f fetcher.Fetcher, cfg Config, opts ...Option) *Service {
	resolver := media.NewURLResolver(cfg.StorageBase)
	canonical := strings.TrimRight(strings.TrimSpace(cfg.CanonicalBase), "/")
	s := &Service{
		fetcher:   f,
		resolver:  resolver,
		metadata:  seo.NewSynthesizer(cfg.Site, resolver),
		jsonld:    jsonld.NewBuilder(cfg.Site.Name, canonical),
		canonical: canonical,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page returns the page at path. Errors come from the fetcher unchanged:
// fetcher.ErrNotFound for unknown or unpublished paths, *fetcher.FetchError
// for store failures.
func (s *Service) Page(ctx context.Context, path string) (*Page, error) {
	bundle, err := s.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	record := bundle.Item
	logger := logging.WithPath(s.logger, record.Path).WithContext(ctx)
	s.inspectPayload(logger, record)

	business := listing.Normalize(record)
	metadata := s.metadata.Synthesize(record, bundle.Hero, bundle.OG, s.canonical)
	heroURL := s.resolver.ImageURL(bundle.Hero)
	crumbs := jsonld.BuildBreadcrumbs(record.Path)

	page := &Page{
		Path:           record.Path,
		Business:       business,
		Metadata:       metadata,
		Breadcrumbs:    crumbs,
		StructuredData: s.jsonld.Build(record, business, metadata.CanonicalURL, heroURL, crumbs),
		Gallery:        []ImageView{},
	}
	if heroURL != "" {
		page.HeroImage = s.view(bundle.Hero, heroURL, business.Name)
	}
	for _, img := range bundle.Gallery {
		url := s.resolver.ImageURL(img)
		if url == "" {
			continue
		}
		page.Gallery = append(page.Gallery, *s.view(img, url, business.Name))
	}
	if s.renderer != nil && strings.TrimSpace(record.BodyMarkdown) != "" {
		html, err := s.renderer.Render([]byte(record.BodyMarkdown))
		if err != nil {
			logger.Warn("page.body_render_failed", "error", err)
		} else {
			page.BodyHTML = string(html)
		}
	}
	logger.Debug("page.assembled",
		"indexable", metadata.Robots.Index,
		"gallery", len(page.Gallery),
		"structured_data", len(page.StructuredData),
	)
	return page, nil
}

// inspectPayload reports legacy payload conflicts and schema issues. It never
// changes what the normalizer produces.
func (s *Service) inspectPayload(logger interfaces.Logger, record *content.Record) {
	resolution := payload.ResolveLegacyPayload(record)
	if len(resolution.Shadowed) > 0 {
		shadowed := make([]string, len(resolution.Shadowed))
		for i, source := range resolution.Shadowed {
			shadowed[i] = string(source)
		}
		logger.Warn("payload.shadowed_fields",
			"source", string(resolution.Source),
			"shadowed", strings.Join(shadowed, ","),
		)
	}
	if issues := payload.ValidateBiz(payload.BizShape(resolution.Raw)); len(issues) > 0 {
		messages := make([]string, len(issues))
		for i, issue := range issues {
			messages[i] = issue.String()
		}
		logger.Warn("payload.schema_issues", "issues", strings.Join(messages, "; "))
	}
}

func (s *Service) view(img *content.Image, url, fallbackAlt string) *ImageView {
	alt := strings.TrimSpace(img.AltText)
	if alt == "" {
		alt = fallbackAlt
	}
	return &ImageView{URL: url, Alt: alt, Width: img.Width, Height: img.Height}
}
