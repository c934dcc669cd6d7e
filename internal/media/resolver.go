package media

import (
	"strings"

	"github.com/saltaireguide/directory/internal/content"
)

// URLResolver turns stored image locations into public URLs. Every component
// that needs an image URL goes through the same resolver so the page view and
// the page metadata never disagree about an image.
type URLResolver struct {
	storageBase string
}

// NewURLResolver builds a resolver for objects served under storageBase, for
// example "https://abc.supabase.co/storage/v1/object/public".
func NewURLResolver(storageBase string) URLResolver {
	return URLResolver{storageBase: strings.TrimRight(strings.TrimSpace(storageBase), "/")}
}

// ImageURL returns the image's public URL, falling back to
// {storageBase}/{bucket}/{storagePath}. It returns "" when neither is usable.
func (r URLResolver) ImageURL(image *content.Image) string {
	if image == nil {
		return ""
	}
	if public := strings.TrimSpace(image.PublicURL); public != "" {
		return public
	}
	bucket := strings.Trim(strings.TrimSpace(image.Bucket), "/")
	object := strings.TrimLeft(strings.TrimSpace(image.StoragePath), "/")
	if bucket == "" || object == "" {
		return ""
	}
	return r.storageBase + "/" + bucket + "/" + object
}
