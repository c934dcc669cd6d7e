package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/saltaireguide/directory/internal/domain"
)

// Record is one page of directory content addressed by its URL path.
//
// Exactly one of Data, JSONData, Payload or Meta is expected to carry the
// business payload. They exist side by side because older imports wrote to
// different columns; see payload.ResolveLegacyPayload for the read order.
type Record struct {
	bun.BaseModel `bun:"table:content_records,alias:cr"`

	ID             uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Path           string         `bun:"path,notnull,unique" json:"path"`
	Status         domain.Status  `bun:"status,notnull" json:"status"`
	Title          string         `bun:"title,nullzero" json:"title,omitempty"`
	SEOTitle       string         `bun:"seo_title,nullzero" json:"seo_title,omitempty"`
	SEODescription string         `bun:"seo_description,nullzero" json:"seo_description,omitempty"`
	BodyMarkdown   string         `bun:"body_markdown,nullzero" json:"body_markdown,omitempty"`
	Data           map[string]any `bun:"data,type:jsonb,nullzero" json:"data,omitempty"`
	JSONData       map[string]any `bun:"json_data,type:jsonb,nullzero" json:"json_data,omitempty"`
	Payload        map[string]any `bun:"payload,type:jsonb,nullzero" json:"payload,omitempty"`
	Meta           map[string]any `bun:"meta,type:jsonb,nullzero" json:"meta,omitempty"`
	PublishedAt    *time.Time     `bun:"published_at,nullzero" json:"published_at,omitempty"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
	CreatedAt      time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Image belongs to a Record through ItemID. Records never reference their
// images directly; images are looked up by item.
type Image struct {
	bun.BaseModel `bun:"table:content_images,alias:ci"`

	ID          uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	ItemID      uuid.UUID        `bun:"item_id,notnull,type:uuid" json:"item_id"`
	Role        domain.ImageRole `bun:"role,notnull" json:"role"`
	PublicURL   string           `bun:"public_url,nullzero" json:"public_url,omitempty"`
	Bucket      string           `bun:"bucket,nullzero" json:"bucket,omitempty"`
	StoragePath string           `bun:"storage_path,nullzero" json:"storage_path,omitempty"`
	AltText     string           `bun:"alt_text,nullzero" json:"alt_text,omitempty"`
	Width       int              `bun:"width,nullzero" json:"width,omitempty"`
	Height      int              `bun:"height,nullzero" json:"height,omitempty"`
	SortOrder   int              `bun:"sort_order,notnull,default:0" json:"sort_order"`
}
