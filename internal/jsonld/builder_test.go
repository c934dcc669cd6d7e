package jsonld_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/jsonld"
	"github.com/saltaireguide/directory/internal/listing"
	"github.com/saltaireguide/directory/internal/payload"
)

func TestBuildBreadcrumbs(t *testing.T) {
	got := jsonld.BuildBreadcrumbs("/local-services/plumbers")
	want := []jsonld.Breadcrumb{
		{Name: "Home", Href: "/"},
		{Name: "Local Services", Href: "/local-services"},
		{Name: "Plumbers", Href: "/local-services/plumbers"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breadcrumbs = %+v", got)
	}
	if root := jsonld.BuildBreadcrumbs("/"); len(root) != 1 || root[0].Href != "/" {
		t.Fatalf("root breadcrumbs = %+v", root)
	}
}

func TestBuildOrderAndShape(t *testing.T) {
	record := &content.Record{Path: "/local-services/plumbers", Title: "Plumbers"}
	biz := listing.Normalize(record)
	builder := jsonld.NewBuilder("Saltaire Guide", "https://saltaire.example/")
	crumbs := jsonld.BuildBreadcrumbs(record.Path)

	objects := builder.Build(record, biz, "https://saltaire.example/local-services/plumbers", "", crumbs)

	var types []string
	for _, obj := range objects {
		types = append(types, obj.Type())
		if obj["@context"] != "https://schema.org" {
			t.Fatalf("%s missing @context", obj.Type())
		}
		if _, err := json.Marshal(obj); err != nil {
			t.Fatalf("%s is not serializable: %v", obj.Type(), err)
		}
	}
	want := []string{"WebPage", "BreadcrumbList", listing.TypeLocalBusiness, "FAQPage"}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("types = %v, want %v", types, want)
	}

	items := objects[1]["itemListElement"].([]jsonld.Object)
	if len(items) != 3 {
		t.Fatalf("expected 3 list items, got %d", len(items))
	}
	for i, item := range items {
		if item["position"] != i+1 {
			t.Fatalf("item %d position %v", i, item["position"])
		}
	}
	if items[2]["item"] != "https://saltaire.example/local-services/plumbers" {
		t.Fatalf("unexpected item url %v", items[2]["item"])
	}
}

func TestBuildOmitsUnverifiedBusinessFacts(t *testing.T) {
	record := &content.Record{Path: "/barbers/kuts"}
	biz := listing.Normalize(record)
	objects := jsonld.NewBuilder("Saltaire Guide", "https://saltaire.example").
		Build(record, biz, "https://saltaire.example/barbers/kuts", "", jsonld.BuildBreadcrumbs(record.Path))

	business := objects[2]
	if biz.Address != listing.Placeholder {
		t.Fatalf("expected placeholder address, got %q", biz.Address)
	}
	for _, key := range []string{"address", "sameAs", "telephone", "email", "url", "priceRange", "openingHours", "image"} {
		if _, ok := business[key]; ok {
			t.Fatalf("expected %q to be omitted, got %v", key, business[key])
		}
	}
}

func TestBuildIncludesVerifiedBusinessFacts(t *testing.T) {
	record := &content.Record{
		Path: "/cafes/salts",
		Data: map[string]any{"biz": map[string]any{
			"name":      "Salts Cafe",
			"address":   "1 Victoria Road",
			"postcode":  "BD18 3LA",
			"phone":     "01274 000000",
			"instagram": "https://instagram.com/salts",
			"website":   "https://salts.example",
			"hours": []any{
				map[string]any{"day": "Monday", "times": "08:00-16:00"},
				map[string]any{"day": "Tuesday", "times": "To be verified"},
			},
		}},
	}
	biz := listing.Normalize(record)
	business := jsonld.NewBuilder("Saltaire Guide", "https://saltaire.example").
		Build(record, biz, "https://saltaire.example/cafes/salts", "https://cdn.example/hero.jpg", nil)[2]

	if business.Type() != listing.TypeCafeOrCoffeeShop {
		t.Fatalf("type = %q", business.Type())
	}
	address, ok := business["address"].(jsonld.Object)
	if !ok || address["streetAddress"] != "1 Victoria Road" || address["postalCode"] != "BD18 3LA" {
		t.Fatalf("address = %v", business["address"])
	}
	if !reflect.DeepEqual(business["sameAs"], []string{"https://instagram.com/salts", "https://salts.example"}) {
		t.Fatalf("sameAs = %v", business["sameAs"])
	}
	if !reflect.DeepEqual(business["openingHours"], []string{"Monday 08:00-16:00"}) {
		t.Fatalf("openingHours = %v", business["openingHours"])
	}
	if business["telephone"] != "01274 000000" || business["image"] != "https://cdn.example/hero.jpg" {
		t.Fatalf("unexpected telephone/image %v %v", business["telephone"], business["image"])
	}
	if _, ok := business["email"]; ok {
		t.Fatal("placeholder email must be omitted")
	}
}

func TestBuildOmitsEmptyFAQPage(t *testing.T) {
	record := &content.Record{Path: "/parks/roberts-park"}
	biz := listing.Normalize(record)
	biz.FAQs = []payload.FAQ{}

	objects := jsonld.NewBuilder("Saltaire Guide", "https://saltaire.example").
		Build(record, biz, "https://saltaire.example/parks/roberts-park", "", jsonld.BuildBreadcrumbs(record.Path))
	if len(objects) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(objects))
	}
	for _, obj := range objects {
		if obj.Type() == "FAQPage" {
			t.Fatal("FAQPage must be omitted when there are no questions")
		}
	}
}
