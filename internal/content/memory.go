package content

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/saltaireguide/directory/internal/domain"
)

// MemoryRecordRepository is an in-memory record store for tests and local
// previews. It is safe for concurrent use.
type MemoryRecordRepository struct {
	mu     sync.RWMutex
	byPath map[string]*Record
}

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{byPath: make(map[string]*Record)}
}

func (m *MemoryRecordRepository) GetPublishedByPath(_ context.Context, path string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.byPath[path]
	if !ok || !record.Status.Servable() {
		return nil, &RecordNotFoundError{Key: path}
	}
	return cloneRecord(record), nil
}

func (m *MemoryRecordRepository) GetByPath(_ context.Context, path string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.byPath[path]
	if !ok {
		return nil, &RecordNotFoundError{Key: path}
	}
	return cloneRecord(record), nil
}

func (m *MemoryRecordRepository) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.byPath))
	for _, record := range m.byPath {
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *MemoryRecordRepository) Upsert(_ context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	if !strings.HasPrefix(record.Path, "/") {
		return nil, ErrRecordPathInvalid
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := cloneRecord(record)
	if existing, ok := m.byPath[stored.Path]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.Status == "" {
		stored.Status = domain.StatusDraft
	}
	m.byPath[stored.Path] = stored
	return cloneRecord(stored), nil
}

// MemoryImageRepository is an in-memory image store. ListByItem returns
// images in insertion order unless WithStoreOrder is false, which lets tests
// exercise callers that must not rely on store ordering.
type MemoryImageRepository struct {
	mu     sync.RWMutex
	byItem map[uuid.UUID][]*Image
	sorted bool
}

func NewMemoryImageRepository() *MemoryImageRepository {
	return &MemoryImageRepository{byItem: make(map[uuid.UUID][]*Image), sorted: true}
}

// WithStoreOrder toggles sort-order ordering of ListByItem results.
func (m *MemoryImageRepository) WithStoreOrder(sorted bool) *MemoryImageRepository {
	m.mu.Lock()
	m.sorted = sorted
	m.mu.Unlock()
	return m
}

func (m *MemoryImageRepository) ListByItem(_ context.Context, itemID uuid.UUID) ([]*Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.byItem[itemID]
	out := make([]*Image, 0, len(stored))
	for _, img := range stored {
		cloned := *img
		out = append(out, &cloned)
	}
	if m.sorted {
		SortImages(out)
	}
	return out, nil
}

func (m *MemoryImageRepository) ReplaceForItem(_ context.Context, itemID uuid.UUID, images []*Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]*Image, 0, len(images))
	for _, img := range images {
		if img == nil {
			continue
		}
		cloned := *img
		cloned.ItemID = itemID
		if cloned.ID == uuid.Nil {
			cloned.ID = uuid.New()
		}
		stored = append(stored, &cloned)
	}
	m.byItem[itemID] = stored
	return nil
}

// SortImages orders images by SortOrder ascending with ties broken by id so
// the first hero or og image is the same on every read.
func SortImages(images []*Image) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].SortOrder != images[j].SortOrder {
			return images[i].SortOrder < images[j].SortOrder
		}
		return images[i].ID.String() < images[j].ID.String()
	})
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Data = maps.Clone(record.Data)
	cloned.JSONData = maps.Clone(record.JSONData)
	cloned.Payload = maps.Clone(record.Payload)
	cloned.Meta = maps.Clone(record.Meta)
	if record.PublishedAt != nil {
		ts := *record.PublishedAt
		cloned.PublishedAt = &ts
	}
	if record.UpdatedAt != nil {
		ts := *record.UpdatedAt
		cloned.UpdatedAt = &ts
	}
	return &cloned
}
