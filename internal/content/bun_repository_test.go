package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/domain"
	"github.com/saltaireguide/directory/pkg/testsupport"
)

func newSchemaDB(t *testing.T) *bun.DB {
	t.Helper()
	db := testsupport.NewBunSQLite(t)
	if err := content.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func TestBunRecordRepository_PublishedLookup(t *testing.T) {
	ctx := context.Background()
	db := newSchemaDB(t)
	repo := content.NewBunRecordRepository(db)

	updated := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	_, err := repo.Upsert(ctx, &content.Record{
		Path:           "/food-drink/salts-diner",
		Status:         domain.StatusPublished,
		Title:          "Salts Diner",
		SEODescription: "Breakfast by the mill.",
		Data:           map[string]any{"biz": map[string]any{"name": "Salts Diner"}},
		UpdatedAt:      &updated,
	})
	if err != nil {
		t.Fatalf("upsert published: %v", err)
	}
	if _, err := repo.Upsert(ctx, &content.Record{Path: "/food-drink/hidden", Status: domain.StatusDraft}); err != nil {
		t.Fatalf("upsert draft: %v", err)
	}

	record, err := repo.GetPublishedByPath(ctx, "/food-drink/salts-diner")
	if err != nil {
		t.Fatalf("get published: %v", err)
	}
	if record.Title != "Salts Diner" || record.SEODescription != "Breakfast by the mill." {
		t.Fatalf("unexpected record %+v", record)
	}
	biz, ok := record.Data["biz"].(map[string]any)
	if !ok || biz["name"] != "Salts Diner" {
		t.Fatalf("payload not round-tripped: %#v", record.Data)
	}
	if record.JSONData != nil || record.Payload != nil || record.Meta != nil {
		t.Fatalf("absent payload columns must stay nil: %+v", record)
	}

	_, err = repo.GetPublishedByPath(ctx, "/food-drink/hidden")
	if !errors.Is(err, content.ErrRecordNotFound) {
		t.Fatalf("expected draft to be not found, got %v", err)
	}
	_, err = repo.GetPublishedByPath(ctx, "/food-drink/missing")
	if !errors.Is(err, content.ErrRecordNotFound) {
		t.Fatalf("expected missing to be not found, got %v", err)
	}
}

func TestBunRecordRepository_UpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	db := newSchemaDB(t)
	repo := content.NewBunRecordRepository(db)

	first, err := repo.Upsert(ctx, &content.Record{Path: "/barbers/sharp", Status: domain.StatusDraft, Title: "Sharp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Upsert(ctx, &content.Record{Path: "/barbers/sharp", Status: domain.StatusPublished, Title: "Sharp Cuts"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected id %s, got %s", first.ID, second.ID)
	}

	record, err := repo.GetPublishedByPath(ctx, "/barbers/sharp")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if record.Title != "Sharp Cuts" {
		t.Fatalf("expected updated title, got %q", record.Title)
	}
}

func TestBunImageRepository_ReplaceAndOrder(t *testing.T) {
	ctx := context.Background()
	db := newSchemaDB(t)
	images := content.NewBunImageRepository(db)
	itemID := uuid.New()

	err := images.ReplaceForItem(ctx, itemID, []*content.Image{
		{Role: domain.RoleGallery, PublicURL: "https://cdn.example/3.jpg", SortOrder: 3},
		{Role: domain.RoleGallery, PublicURL: "https://cdn.example/1.jpg", SortOrder: 1},
		{Role: domain.RoleHero, Bucket: "listings", StoragePath: "salts/hero.jpg", SortOrder: 2},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	listed, err := images.ListByItem(ctx, itemID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 images, got %d", len(listed))
	}
	for i, want := range []int{1, 2, 3} {
		if listed[i].SortOrder != want {
			t.Fatalf("position %d: sort order %d, want %d", i, listed[i].SortOrder, want)
		}
	}

	if err := images.ReplaceForItem(ctx, itemID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	listed, _ = images.ListByItem(ctx, itemID)
	if len(listed) != 0 {
		t.Fatalf("expected images cleared, got %d", len(listed))
	}
}

func newCachedRecordRepository(t *testing.T) *content.BunRecordRepository {
	t.Helper()
	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return content.NewBunRecordRepositoryWithCache(newSchemaDB(t), cacheService, repocache.NewDefaultKeySerializer())
}

func TestBunRecordRepository_WithCache(t *testing.T) {
	ctx := context.Background()
	repo := newCachedRecordRepository(t)

	seed := []*content.Record{
		{Path: "/taxis/saltaire-cars", Status: domain.StatusPublished, Title: "Saltaire Cars"},
		{Path: "/pubs/the-fox", Status: domain.StatusPublished, Title: "The Fox"},
		{Path: "/plumbers/flowright", Status: domain.StatusDraft, Title: "Flowright"},
	}
	for _, record := range seed {
		if _, err := repo.Upsert(ctx, record); err != nil {
			t.Fatalf("upsert %s: %v", record.Path, err)
		}
	}

	for range 2 {
		for _, tc := range []struct {
			path  string
			title string
		}{
			{"/taxis/saltaire-cars", "Saltaire Cars"},
			{"/pubs/the-fox", "The Fox"},
		} {
			record, err := repo.GetPublishedByPath(ctx, tc.path)
			if err != nil {
				t.Fatalf("cached get %s: %v", tc.path, err)
			}
			if record.Path != tc.path || record.Title != tc.title {
				t.Fatalf("%s: got %s %q", tc.path, record.Path, record.Title)
			}
		}
		for _, path := range []string{"/plumbers/flowright", "/nowhere/at-all"} {
			if _, err := repo.GetPublishedByPath(ctx, path); !errors.Is(err, content.ErrRecordNotFound) {
				t.Fatalf("%s: expected not found, got %v", path, err)
			}
		}
	}

	if _, err := repo.Upsert(ctx, &content.Record{Path: "/plumbers/flowright", Status: domain.StatusPublished, Title: "Flowright Plumbing"}); err != nil {
		t.Fatalf("publish draft: %v", err)
	}
	record, err := repo.GetPublishedByPath(ctx, "/plumbers/flowright")
	if err != nil {
		t.Fatalf("get after publish: %v", err)
	}
	if record.Title != "Flowright Plumbing" {
		t.Fatalf("expected fresh record after update, got %q", record.Title)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 || listed[0].Path != "/pubs/the-fox" {
		t.Fatalf("unexpected list %+v", listed)
	}
}

func TestBunRecordRepository_StoreFailureIsNotNotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset by peer"))

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	repo := content.NewBunRecordRepository(db)

	_, err = repo.GetPublishedByPath(context.Background(), "/plumbers/flowright")
	if err == nil {
		t.Fatal("expected store error")
	}
	if errors.Is(err, content.ErrRecordNotFound) {
		t.Fatalf("store failure must not map to not found: %v", err)
	}
}
