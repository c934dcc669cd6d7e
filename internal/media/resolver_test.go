package media

import (
	"testing"

	"github.com/saltaireguide/directory/internal/content"
)

func TestURLResolverImageURL(t *testing.T) {
	resolver := NewURLResolver("https://store.example/storage/v1/object/public/")

	tests := []struct {
		name  string
		image *content.Image
		want  string
	}{
		{"nil", nil, ""},
		{"public url wins", &content.Image{PublicURL: " https://cdn.example/a.jpg ", Bucket: "b", StoragePath: "p.jpg"}, "https://cdn.example/a.jpg"},
		{"bucket and path", &content.Image{Bucket: "listings", StoragePath: "/salts/hero.jpg"}, "https://store.example/storage/v1/object/public/listings/salts/hero.jpg"},
		{"bucket only", &content.Image{Bucket: "listings"}, ""},
		{"path only", &content.Image{StoragePath: "salts/hero.jpg"}, ""},
		{"blank", &content.Image{PublicURL: "   "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.ImageURL(tt.image); got != tt.want {
				t.Fatalf("ImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
