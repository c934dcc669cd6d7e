package importer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/domain"
	"github.com/saltaireguide/directory/internal/identity"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/internal/payload"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

var (
	ErrRepositoryRequired = errors.New("importer: record and image repositories are required")
	ErrDocumentRequired   = errors.New("importer: document is required")
	ErrPathMissing        = errors.New("importer: listing path could not be determined")
)

// Options tune an import run.
type Options struct {
	// DryRun builds records without writing them.
	DryRun bool
	// Publish marks documents without an explicit status as published.
	Publish bool
}

// Result summarises an import run.
type Result struct {
	Created []string
	Updated []string
	Skipped []string
	Errors  []error
}

// Importer converts listing documents into content records and images.
type Importer struct {
	records content.RecordRepository
	images  content.ImageRepository
	logger  interfaces.Logger
	now     func() time.Time
}

// Option customises the importer.
type Option func(*Importer)

func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the clock used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

func New(records content.RecordRepository, images content.ImageRepository, opts ...Option) *Importer {
	i := &Importer{
		records: records,
		images:  images,
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportDocuments imports every document, continuing past per-document
// failures. The returned error is the first failure, if any.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.ListingDocument, opts Options) (*Result, error) {
	if i.records == nil || i.images == nil {
		return nil, ErrRepositoryRequired
	}
	result := &Result{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}
		created, recordPath, err := i.importDocument(ctx, doc, opts)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, err)
		case opts.DryRun:
			result.Skipped = append(result.Skipped, recordPath)
		case created:
			result.Created = append(result.Created, recordPath)
		default:
			result.Updated = append(result.Updated, recordPath)
		}
	}
	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

// ImportDocument imports a single document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.ListingDocument, opts Options) (*Result, error) {
	return i.ImportDocuments(ctx, []*interfaces.ListingDocument{doc}, opts)
}

func (i *Importer) importDocument(ctx context.Context, doc *interfaces.ListingDocument, opts Options) (bool, string, error) {
	record, images, err := BuildRecord(doc, opts, i.now())
	if err != nil {
		return false, "", err
	}
	logger := logging.WithFields(logging.WithPath(i.logger, record.Path), map[string]any{
		"file": doc.FilePath,
	})
	if opts.DryRun {
		logger.Info("import.dry_run", "images", len(images))
		return false, record.Path, nil
	}

	created := false
	if _, err := i.records.GetByPath(ctx, record.Path); err != nil {
		if !errors.Is(err, content.ErrRecordNotFound) {
			return false, record.Path, fmt.Errorf("importer: lookup %s: %w", record.Path, err)
		}
		created = true
	}

	stored, err := i.records.Upsert(ctx, record)
	if err != nil {
		return false, record.Path, fmt.Errorf("importer: upsert %s: %w", record.Path, err)
	}
	if stored.ID != record.ID {
		images = reassign(images, stored.ID)
	}
	if err := i.images.ReplaceForItem(ctx, stored.ID, images); err != nil {
		return false, record.Path, fmt.Errorf("importer: replace images %s: %w", record.Path, err)
	}
	logger.Info("import.saved", "created", created, "images", len(images), "status", string(stored.Status))
	return created, record.Path, nil
}

// BuildRecord maps a listing document onto a record and its images. Ids are
// derived from the path so re-importing a file updates the same rows.
func BuildRecord(doc *interfaces.ListingDocument, opts Options, now time.Time) (*content.Record, []*content.Image, error) {
	if doc == nil {
		return nil, nil, ErrDocumentRequired
	}
	fm := doc.FrontMatter

	recordPath, err := ListingPath(fm.Path, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}

	status := domain.NormalizeStatus(fm.Status)
	if strings.TrimSpace(fm.Status) == "" && opts.Publish {
		status = domain.StatusPublished
	}

	updated := now.UTC()
	record := &content.Record{
		ID:             identity.RecordUUID(recordPath),
		Path:           recordPath,
		Status:         status,
		Title:          strings.TrimSpace(fm.Title),
		SEOTitle:       strings.TrimSpace(fm.SEOTitle),
		SEODescription: strings.TrimSpace(fm.SEODescription),
		BodyMarkdown:   strings.TrimSpace(string(doc.Body)),
		Data:           buildData(fm),
		UpdatedAt:      &updated,
	}
	if published, ok := parseTime(fm.PublishedAt); ok {
		record.PublishedAt = &published
	} else if status.Servable() {
		record.PublishedAt = &updated
	}

	images := make([]*content.Image, 0, len(fm.Images))
	for idx, img := range fm.Images {
		role := strings.ToLower(strings.TrimSpace(img.Role))
		if role == "" {
			role = string(domain.RoleGallery)
		}
		sortOrder := idx
		if img.SortOrder != nil {
			sortOrder = *img.SortOrder
		}
		images = append(images, &content.Image{
			ID:          identity.ImageUUID(record.ID, role, idx),
			ItemID:      record.ID,
			Role:        domain.ImageRole(role),
			PublicURL:   strings.TrimSpace(img.PublicURL),
			Bucket:      strings.TrimSpace(img.Bucket),
			StoragePath: strings.TrimSpace(img.StoragePath),
			AltText:     strings.TrimSpace(img.AltText),
			Width:       img.Width,
			Height:      img.Height,
			SortOrder:   sortOrder,
		})
	}
	return record, images, nil
}

// ListingPath returns the record path for a document: the frontmatter path
// when set, otherwise the file path without its extension. Each segment is
// slug-normalized.
func ListingPath(frontMatterPath, filePath string) (string, error) {
	raw := strings.TrimSpace(frontMatterPath)
	if raw == "" {
		raw = strings.TrimSuffix(slashPath(filePath), path.Ext(filePath))
	}
	var segments []string
	for _, segment := range strings.Split(raw, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		normalized, err := slug.Normalize(segment)
		if err != nil || normalized == "" {
			return "", fmt.Errorf("%w: invalid segment %q in %q", ErrPathMissing, segment, raw)
		}
		segments = append(segments, normalized)
	}
	if len(segments) == 0 {
		return "", ErrPathMissing
	}
	return "/" + strings.Join(segments, "/"), nil
}

func slashPath(name string) string {
	return path.Clean("/" + strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
}

func buildData(fm interfaces.ListingFrontMatter) map[string]any {
	data := map[string]any{}
	for key, value := range fm.Extra {
		data[key] = payload.Normalize(value)
	}
	if len(fm.Biz) > 0 {
		data["biz"] = payload.Normalize(fm.Biz)
	}
	if schemaType := strings.TrimSpace(fm.SchemaType); schemaType != "" {
		data["schemaType"] = schemaType
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func reassign(images []*content.Image, itemID uuid.UUID) []*content.Image {
	for _, img := range images {
		img.ItemID = itemID
	}
	return images
}
