package seo

import (
	"fmt"
	"testing"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/media"
)

func newTestSynthesizer() *Synthesizer {
	return NewSynthesizer(SiteDefaults{
		Name:        "Saltaire Guide",
		Description: "Independent guide to Saltaire.",
		OGImage:     "/og-default.jpg",
		Locale:      "en_GB",
	}, media.NewURLResolver("https://store.example/public"))
}

func TestIsIndexableRequiresAllThree(t *testing.T) {
	for _, title := range []string{"", "Salts Cafe"} {
		for _, description := range []string{"", "Coffee by the canal."} {
			for _, hero := range []string{"", "https://cdn.example/hero.jpg"} {
				name := fmt.Sprintf("title=%t/desc=%t/hero=%t", title != "", description != "", hero != "")
				t.Run(name, func(t *testing.T) {
					want := title != "" && description != "" && hero != ""
					if got := IsIndexable(title, description, hero); got != want {
						t.Fatalf("IsIndexable = %v, want %v", got, want)
					}
				})
			}
		}
	}
	if IsIndexable("  ", "desc", "url") {
		t.Fatal("whitespace title must not count")
	}
}

func TestSynthesizeIndexabilityCombinations(t *testing.T) {
	s := newTestSynthesizer()
	hero := &content.Image{Bucket: "listings", StoragePath: "salts/hero.jpg"}

	for mask := 0; mask < 8; mask++ {
		record := &content.Record{Path: "/cafes/salts"}
		var h *content.Image
		if mask&1 != 0 {
			record.Title = "Salts Cafe"
		}
		if mask&2 != 0 {
			record.SEODescription = "Coffee by the canal."
		}
		if mask&4 != 0 {
			h = hero
		}
		meta := s.Synthesize(record, h, nil, "https://saltaire.example")
		want := mask == 7
		if meta.Robots.Index != want {
			t.Fatalf("mask %03b: index = %v, want %v", mask, meta.Robots.Index, want)
		}
		if !meta.Robots.Follow {
			t.Fatalf("mask %03b: follow must always be true", mask)
		}
		wantRobots := RobotsNoIndex
		if want {
			wantRobots = RobotsIndex
		}
		if meta.Robots.String() != wantRobots {
			t.Fatalf("mask %03b: robots = %q", mask, meta.Robots.String())
		}
	}
}

func TestSynthesizeFallbacks(t *testing.T) {
	s := newTestSynthesizer()

	bare := s.Synthesize(&content.Record{Path: "/barbers/kuts"}, nil, nil, "https://saltaire.example/")
	if bare.Title != "Saltaire Guide" || bare.Description != "Independent guide to Saltaire." {
		t.Fatalf("unexpected defaults %q %q", bare.Title, bare.Description)
	}
	if bare.CanonicalURL != "https://saltaire.example/barbers/kuts" {
		t.Fatalf("canonical = %q", bare.CanonicalURL)
	}
	if bare.OpenGraph.Image != "/og-default.jpg" || bare.Twitter.Card != TwitterSummary {
		t.Fatalf("expected default image with summary card, got %q %q", bare.OpenGraph.Image, bare.Twitter.Card)
	}

	record := &content.Record{Path: "/cafes/salts", Title: "Salts Cafe", SEOTitle: "Salts Cafe | Saltaire", SEODescription: "Coffee."}
	hero := &content.Image{PublicURL: "https://cdn.example/hero.jpg"}
	og := &content.Image{Bucket: "listings", StoragePath: "salts/og.jpg"}

	withOG := s.Synthesize(record, hero, og, "https://saltaire.example")
	if withOG.Title != "Salts Cafe | Saltaire" {
		t.Fatalf("seo title must win, got %q", withOG.Title)
	}
	if withOG.OpenGraph.Image != "https://store.example/public/listings/salts/og.jpg" {
		t.Fatalf("og image = %q", withOG.OpenGraph.Image)
	}
	if withOG.Twitter.Card != TwitterSummaryLarge || withOG.Twitter.Image != withOG.OpenGraph.Image {
		t.Fatalf("unexpected twitter card %+v", withOG.Twitter)
	}

	heroOnly := s.Synthesize(record, hero, nil, "https://saltaire.example")
	if heroOnly.OpenGraph.Image != "https://cdn.example/hero.jpg" {
		t.Fatalf("expected hero fallback, got %q", heroOnly.OpenGraph.Image)
	}

	unresolvable := s.Synthesize(record, &content.Image{Bucket: "listings"}, nil, "https://saltaire.example")
	if unresolvable.Robots.Index {
		t.Fatal("a hero without a resolvable URL must not make the page indexable")
	}
}

func TestCanonicalURL(t *testing.T) {
	cases := []struct{ base, path, want string }{
		{"https://saltaire.example", "/a/b", "https://saltaire.example/a/b"},
		{"https://saltaire.example/", "/a", "https://saltaire.example/a"},
		{"https://saltaire.example", "", "https://saltaire.example/"},
		{"https://saltaire.example", "a", "https://saltaire.example/a"},
	}
	for _, tc := range cases {
		if got := CanonicalURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("CanonicalURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
