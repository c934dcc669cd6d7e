package content

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordRepository persists content records.
type RecordRepository interface {
	// GetPublishedByPath returns the published record at path or a
	// *RecordNotFoundError. Records in any other status are reported as missing.
	GetPublishedByPath(ctx context.Context, path string) (*Record, error)
	GetByPath(ctx context.Context, path string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Upsert(ctx context.Context, record *Record) (*Record, error)
}

// ImageRepository persists content images.
type ImageRepository interface {
	// ListByItem returns the images owned by itemID ordered by sort order
	// ascending, ties broken by id.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Image, error)
	ReplaceForItem(ctx context.Context, itemID uuid.UUID, images []*Image) error
}

// NewRecordRepository builds the go-repository-bun repository for records,
// keyed by path.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Path
		},
	})
}

// NewImageRepository builds the go-repository-bun repository for images.
func NewImageRepository(db *bun.DB) repository.Repository[*Image] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Image]{
		NewRecord: func() *Image { return &Image{} },
		GetID: func(i *Image) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Image, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *Image) string {
			return i.ID.String()
		},
	})
}

// CreateSchema creates the content tables and indexes when missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{(*Record)(nil), (*Image)(nil)}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	_, err := db.NewCreateIndex().
		Model((*Image)(nil)).
		Index("content_images_item_sort_idx").
		Column("item_id", "sort_order").
		IfNotExists().
		Exec(ctx)
	return err
}
