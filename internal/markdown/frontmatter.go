package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/saltaireguide/directory/pkg/interfaces"
)

// ParseFrontMatter extracts listing metadata and the Markdown body from
// source. The body is returned without delimiters.
func ParseFrontMatter(source []byte) (interfaces.ListingFrontMatter, []byte, error) {
	var meta interfaces.ListingFrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.ListingFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	meta.Path = strings.TrimSpace(meta.Path)
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Status = strings.ToLower(strings.TrimSpace(meta.Status))
	if meta.Extra == nil {
		meta.Extra = map[string]any{}
	}
	return meta, body, nil
}

// BuildDocument parses source into a ListingDocument.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.ListingDocument, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &interfaces.ListingDocument{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}
