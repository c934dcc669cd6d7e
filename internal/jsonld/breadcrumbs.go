package jsonld

import (
	"strings"

	"github.com/saltaireguide/directory/internal/listing"
)

// Breadcrumb is one entry of a page trail.
type Breadcrumb struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// BuildBreadcrumbs returns Home followed by one entry per path prefix.
func BuildBreadcrumbs(path string) []Breadcrumb {
	crumbs := []Breadcrumb{{Name: "Home", Href: "/"}}
	href := ""
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		href += "/" + segment
		crumbs = append(crumbs, Breadcrumb{Name: listing.TitleCase(segment), Href: href})
	}
	return crumbs
}
