package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/domain"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// RolePolicy decides what happens to images whose role is not hero, og or
// gallery.
type RolePolicy string

const (
	// RolePolicyDrop leaves unrecognized images out of hero, og and gallery.
	// They are still listed in Bundle.Images.
	RolePolicyDrop RolePolicy = "drop"
	// RolePolicyGallery appends unrecognized images to the gallery.
	RolePolicyGallery RolePolicy = "gallery"
)

// UnrecognizedRolePolicy is the policy applied when none is configured.
// WithRolePolicy(RolePolicyGallery) lets roles added upstream reach the
// gallery without a code change.
const UnrecognizedRolePolicy = RolePolicyDrop

// Bundle is everything a listing page needs from the store. A bundle may be
// shared by several callers within one request and must be treated as read
// only.
type Bundle struct {
	Item    *content.Record
	Images  []*content.Image
	Hero    *content.Image
	OG      *content.Image
	Gallery []*content.Image
}

// Fetcher loads published content bundles by path.
type Fetcher interface {
	// Fetch returns the bundle at path. A missing or unpublished record yields
	// ErrNotFound; a store failure yields *FetchError.
	Fetch(ctx context.Context, path string) (*Bundle, error)
}

// Option customises the fetcher.
type Option func(*service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRolePolicy overrides UnrecognizedRolePolicy.
func WithRolePolicy(policy RolePolicy) Option {
	return func(s *service) {
		if policy == RolePolicyDrop || policy == RolePolicyGallery {
			s.rolePolicy = policy
		}
	}
}

type service struct {
	records    content.RecordRepository
	images     content.ImageRepository
	logger     interfaces.Logger
	rolePolicy RolePolicy
}

// New builds a Fetcher over the given repositories. The fetcher holds no
// mutable state and is safe for concurrent use; per request memoization is
// enabled by WithRequestMemo on the request context.
func New(records content.RecordRepository, images content.ImageRepository, opts ...Option) Fetcher {
	s := &service{
		records:    records,
		images:     images,
		logger:     logging.NoOp(),
		rolePolicy: UnrecognizedRolePolicy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Fetch(ctx context.Context, path string) (*Bundle, error) {
	normalized := NormalizePath(path)
	if memo := memoFromContext(ctx); memo != nil {
		return memo.do(normalized, func() (*Bundle, error) {
			return s.load(ctx, normalized)
		})
	}
	return s.load(ctx, normalized)
}

func (s *service) load(ctx context.Context, path string) (*Bundle, error) {
	logger := logging.WithPath(s.logger, path).WithContext(ctx)

	record, err := s.records.GetPublishedByPath(ctx, path)
	if err != nil {
		if errors.Is(err, content.ErrRecordNotFound) {
			logger.Debug("fetch.not_found")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		logger.Error("fetch.record_failed", "error", err)
		return nil, &FetchError{Path: path, Op: "get record", Err: err}
	}
	if record == nil || !record.Status.Servable() {
		logger.Debug("fetch.not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	images, err := s.images.ListByItem(ctx, record.ID)
	if err != nil {
		logger.Error("fetch.images_failed", "error", err, "item_id", record.ID)
		return nil, &FetchError{Path: path, Op: "list images", Err: err}
	}

	bundle := Partition(record, images, s.rolePolicy)
	if unknown := countUnrecognized(bundle.Images); unknown > 0 {
		logger.Debug("fetch.unrecognized_image_roles", "count", unknown, "policy", string(s.rolePolicy))
	}
	return bundle, nil
}

// Partition orders images by sort order (ties by id) and splits them into
// hero, og and gallery slots. Hero and og take the first match; duplicates
// stay in Images only.
func Partition(record *content.Record, images []*content.Image, policy RolePolicy) *Bundle {
	ordered := make([]*content.Image, 0, len(images))
	for _, img := range images {
		if img != nil {
			ordered = append(ordered, img)
		}
	}
	content.SortImages(ordered)

	bundle := &Bundle{
		Item:    record,
		Images:  ordered,
		Gallery: []*content.Image{},
	}
	for _, img := range ordered {
		role := roleOf(img)
		switch {
		case role == domain.RoleHero:
			if bundle.Hero == nil {
				bundle.Hero = img
			}
		case role == domain.RoleOG:
			if bundle.OG == nil {
				bundle.OG = img
			}
		case role == domain.RoleGallery:
			bundle.Gallery = append(bundle.Gallery, img)
		case policy == RolePolicyGallery:
			bundle.Gallery = append(bundle.Gallery, img)
		}
	}
	return bundle
}

func roleOf(img *content.Image) domain.ImageRole {
	return domain.ImageRole(strings.ToLower(strings.TrimSpace(string(img.Role))))
}

func countUnrecognized(images []*content.Image) int {
	count := 0
	for _, img := range images {
		if !roleOf(img).Known() {
			count++
		}
	}
	return count
}

// NormalizePath returns path with a leading slash, no trailing slash, no
// query string or fragment and no repeated slashes. The root stays "/".
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	segments := strings.Split(path, "/")
	kept := segments[:0]
	for _, segment := range segments {
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	return "/" + strings.Join(kept, "/")
}
