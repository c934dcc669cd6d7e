package importer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/domain"
	"github.com/saltaireguide/directory/internal/identity"
	"github.com/saltaireguide/directory/internal/importer"
	"github.com/saltaireguide/directory/internal/listing"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func order(n int) *int { return &n }

func cafeDocument() *interfaces.ListingDocument {
	return &interfaces.ListingDocument{
		FilePath: "food-drink/salts-cafe.md",
		FrontMatter: interfaces.ListingFrontMatter{
			Path:           "/food-drink/salts-cafe",
			Title:          "Salts Cafe",
			Status:         "published",
			SEODescription: "Coffee by the canal.",
			PublishedAt:    "2024-04-01",
			SchemaType:     "CafeOrCoffeeShop",
			Biz: map[string]any{
				"name": "Salts Cafe",
				"hours": []any{
					map[any]any{"day": "Monday", "times": "08:00-16:00"},
				},
			},
			Images: []interfaces.FrontMatterImg{
				{Role: "Hero", Bucket: "listings", StoragePath: "salts/hero.jpg", SortOrder: order(1)},
				{Role: "gallery", PublicURL: "https://cdn.example/g1.jpg", SortOrder: order(2)},
			},
			Extra: map[string]any{"featured": true},
		},
		Body: []byte("# Salts Cafe\n"),
	}
}

func newImporter() (*importer.Importer, *content.MemoryRecordRepository, *content.MemoryImageRepository) {
	records := content.NewMemoryRecordRepository()
	images := content.NewMemoryImageRepository()
	return importer.New(records, images, importer.WithClock(func() time.Time { return fixedNow })), records, images
}

func TestImportDocumentsCreatesThenUpdates(t *testing.T) {
	imp, records, images := newImporter()
	ctx := context.Background()

	result, err := imp.ImportDocuments(ctx, []*interfaces.ListingDocument{cafeDocument()}, importer.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0] != "/food-drink/salts-cafe" {
		t.Fatalf("unexpected result %+v", result)
	}

	record, err := records.GetPublishedByPath(ctx, "/food-drink/salts-cafe")
	if err != nil {
		t.Fatalf("expected published record: %v", err)
	}
	if record.ID != identity.RecordUUID("/food-drink/salts-cafe") {
		t.Fatalf("expected deterministic id, got %s", record.ID)
	}
	if record.PublishedAt == nil || !record.PublishedAt.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("published at = %v", record.PublishedAt)
	}
	if record.BodyMarkdown != "# Salts Cafe" || record.Data["featured"] != true {
		t.Fatalf("unexpected body/data %q %v", record.BodyMarkdown, record.Data)
	}

	biz := listing.Normalize(record)
	if biz.SchemaType != listing.TypeCafeOrCoffeeShop || len(biz.Hours) != 1 {
		t.Fatalf("imported payload did not normalize: %+v", biz)
	}

	stored, err := images.ListByItem(ctx, record.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(stored) != 2 || stored[0].Role != domain.RoleHero {
		t.Fatalf("unexpected images %+v", stored)
	}

	again, err := imp.ImportDocuments(ctx, []*interfaces.ListingDocument{cafeDocument()}, importer.Options{})
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(again.Updated) != 1 || len(again.Created) != 0 {
		t.Fatalf("expected update on reimport, got %+v", again)
	}
	restored, _ := images.ListByItem(ctx, record.ID)
	if len(restored) != 2 || restored[0].ID != stored[0].ID {
		t.Fatal("reimport must replace images with the same ids")
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	imp, records, _ := newImporter()
	result, err := imp.ImportDocument(context.Background(), cafeDocument(), importer.Options{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected skipped entry, got %+v", result)
	}
	all, _ := records.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("dry run wrote %d records", len(all))
	}
}

func TestImportContinuesPastBadDocuments(t *testing.T) {
	imp, records, _ := newImporter()
	bad := &interfaces.ListingDocument{FilePath: ""}
	result, err := imp.ImportDocuments(context.Background(), []*interfaces.ListingDocument{bad, cafeDocument()}, importer.Options{})
	if !errors.Is(err, importer.ErrPathMissing) {
		t.Fatalf("expected path error, got %v", err)
	}
	if len(result.Created) != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := records.GetByPath(context.Background(), "/food-drink/salts-cafe"); err != nil {
		t.Fatalf("good document must still be imported: %v", err)
	}
}

func TestBuildRecordDefaults(t *testing.T) {
	doc := &interfaces.ListingDocument{
		FilePath: "local-services/Plumbers.md",
		FrontMatter: interfaces.ListingFrontMatter{
			Images: []interfaces.FrontMatterImg{{PublicURL: "https://cdn.example/a.jpg"}},
		},
	}

	record, images, err := importer.BuildRecord(doc, importer.Options{}, fixedNow)
	if err != nil {
		t.Fatalf("BuildRecord: %v", err)
	}
	if record.Path != "/local-services/plumbers" {
		t.Fatalf("path = %q", record.Path)
	}
	if record.Status != domain.StatusDraft || record.PublishedAt != nil {
		t.Fatalf("expected unpublished draft, got %q %v", record.Status, record.PublishedAt)
	}
	if record.Data != nil {
		t.Fatalf("expected no payload, got %v", record.Data)
	}
	if len(images) != 1 || images[0].Role != domain.RoleGallery {
		t.Fatalf("expected role to default to gallery, got %+v", images)
	}

	published, _, err := importer.BuildRecord(doc, importer.Options{Publish: true}, fixedNow)
	if err != nil {
		t.Fatalf("BuildRecord publish: %v", err)
	}
	if published.Status != domain.StatusPublished || published.PublishedAt == nil || !published.PublishedAt.Equal(fixedNow) {
		t.Fatalf("expected published record stamped now, got %q %v", published.Status, published.PublishedAt)
	}
}

func TestBuildRecordImageSortOrder(t *testing.T) {
	doc := &interfaces.ListingDocument{
		FilePath: "pubs/the-fox.md",
		FrontMatter: interfaces.ListingFrontMatter{
			Images: []interfaces.FrontMatterImg{
				{Role: "gallery", PublicURL: "https://cdn.example/late.jpg", SortOrder: order(5)},
				{Role: "hero", PublicURL: "https://cdn.example/hero.jpg", SortOrder: order(0)},
				{Role: "gallery", PublicURL: "https://cdn.example/implicit.jpg"},
			},
		},
	}

	_, images, err := importer.BuildRecord(doc, importer.Options{}, fixedNow)
	if err != nil {
		t.Fatalf("BuildRecord: %v", err)
	}
	want := map[string]int{
		"https://cdn.example/late.jpg":     5,
		"https://cdn.example/hero.jpg":     0,
		"https://cdn.example/implicit.jpg": 2,
	}
	if len(images) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(images))
	}
	for _, img := range images {
		if img.SortOrder != want[img.PublicURL] {
			t.Fatalf("%s: sort order %d, want %d", img.PublicURL, img.SortOrder, want[img.PublicURL])
		}
	}
}

func TestListingPath(t *testing.T) {
	cases := []struct {
		fm, file, want string
	}{
		{"/food-drink/salts-cafe", "ignored.md", "/food-drink/salts-cafe"},
		{"food-drink//salts-cafe/", "", "/food-drink/salts-cafe"},
		{"", "pubs/The Boathouse.md", "/pubs/the-boathouse"},
	}
	for _, tc := range cases {
		got, err := importer.ListingPath(tc.fm, tc.file)
		if err != nil {
			t.Fatalf("ListingPath(%q, %q): %v", tc.fm, tc.file, err)
		}
		if got != tc.want {
			t.Fatalf("ListingPath(%q, %q) = %q, want %q", tc.fm, tc.file, got, tc.want)
		}
	}
	if _, err := importer.ListingPath("", ""); !errors.Is(err, importer.ErrPathMissing) {
		t.Fatalf("expected ErrPathMissing, got %v", err)
	}
}
