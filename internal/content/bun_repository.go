package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/saltaireguide/directory/internal/domain"
)

// BunRecordRepository stores records through go-repository-bun.
type BunRecordRepository struct {
	repo repository.Repository[*Record]
	// base serves queries built from criteria closures. The cache key
	// serializer cannot tell closures apart, so those bypass the cache.
	base repository.Repository[*Record]
}

// NewBunRecordRepository returns an uncached record repository.
func NewBunRecordRepository(db *bun.DB) *BunRecordRepository {
	return NewBunRecordRepositoryWithCache(db, nil, nil)
}

// NewBunRecordRepositoryWithCache wraps the record repository with
// go-repository-cache when both cacheService and keySerializer are supplied.
// Any caching happens here in the store layer; the page pipeline itself
// never keeps results across requests.
func NewBunRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRecordRepository {
	base := NewRecordRepository(db)
	return &BunRecordRepository{
		repo: wrapWithCache(base, cacheService, keySerializer, "Path"),
		base: base,
	}
}

// GetPublishedByPath looks the record up by its path identifier, so cached
// entries are keyed per path, and hides anything not published.
func (r *BunRecordRepository) GetPublishedByPath(ctx context.Context, path string) (*Record, error) {
	record, err := r.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Status != domain.StatusPublished {
		return nil, &RecordNotFoundError{Key: path}
	}
	return record, nil
}

func (r *BunRecordRepository) GetByPath(ctx context.Context, path string) (*Record, error) {
	record, err := r.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, "record", path)
	}
	return record, nil
}

func (r *BunRecordRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.path ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "record", "")
	}
	return records, nil
}

// Upsert creates the record or updates the existing one stored at the same
// path. The stored id wins over the incoming one on update.
func (r *BunRecordRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	if !strings.HasPrefix(record.Path, "/") {
		return nil, ErrRecordPathInvalid
	}
	existing, err := r.GetByPath(ctx, record.Path)
	switch {
	case err == nil:
		record.ID = existing.ID
		updated, err := r.repo.Update(ctx, record,
			repository.UpdateByID(record.ID.String()),
			repository.UpdateColumns(
				"status",
				"title",
				"seo_title",
				"seo_description",
				"body_markdown",
				"data",
				"json_data",
				"payload",
				"meta",
				"published_at",
				"updated_at",
			),
		)
		if err != nil {
			return nil, mapRepositoryError(err, "record", record.Path)
		}
		return updated, nil
	case isNotFound(err):
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, mapRepositoryError(err, "record", record.Path)
		}
		return created, nil
	default:
		return nil, err
	}
}

// BunImageRepository stores images through go-repository-bun.
type BunImageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Image]
}

func NewBunImageRepository(db *bun.DB) *BunImageRepository {
	return &BunImageRepository{
		db:   db,
		repo: NewImageRepository(db),
	}
}

func (r *BunImageRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Image, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.item_id = ?", itemID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("image repository error: %w", err)
	}
	return records, nil
}

// ReplaceForItem swaps the full image set of an item in one transaction.
func (r *BunImageRepository) ReplaceForItem(ctx context.Context, itemID uuid.UUID, images []*Image) error {
	if r.db == nil {
		return ErrDatabaseMissing
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Image)(nil)).
			Where("?TableAlias.item_id = ?", itemID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete content images: %w", err)
		}

		toInsert := make([]*Image, 0, len(images))
		for _, img := range images {
			if img == nil {
				continue
			}
			cloned := *img
			cloned.ItemID = itemID
			if cloned.ID == uuid.Nil {
				cloned.ID = uuid.New()
			}
			toInsert = append(toInsert, &cloned)
		}
		if len(toInsert) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&toInsert).Exec(ctx); err != nil {
			return fmt.Errorf("insert content images: %w", err)
		}
		return nil
	})
}

func isNotFound(err error) bool {
	var notFound *RecordNotFoundError
	return errors.As(err, &notFound)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &RecordNotFoundError{Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer, identifierFields ...string) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.NewWithIdentifierFields(base, cacheService, keySerializer, identifierFields...)
}
