package domain

import "strings"

// Status represents the publication state of a content record
type Status string

const (
	// StatusDraft marks a record still being edited
	StatusDraft Status = "draft"
	// StatusPublished marks a record that may be served
	StatusPublished Status = "published"
)

// NormalizeStatus lowercases and trims raw status input. Empty input maps to
// draft so imported records are never published by accident.
func NormalizeStatus(input string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft
	}
	return Status(trimmed)
}

// Servable reports whether records in this status may be returned to readers.
func (s Status) Servable() bool {
	return s == StatusPublished
}

// ImageRole is the slot an image fills on a listing page. The store keeps the
// raw string, so unknown roles survive round trips.
type ImageRole string

const (
	RoleHero    ImageRole = "hero"
	RoleOG      ImageRole = "og"
	RoleGallery ImageRole = "gallery"
)

// Known reports whether the role is one the page layout understands.
func (r ImageRole) Known() bool {
	switch r {
	case RoleHero, RoleOG, RoleGallery:
		return true
	default:
		return false
	}
}
