package domain

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"":            StatusDraft,
		"  ":          StatusDraft,
		"Published":   StatusPublished,
		" published ": StatusPublished,
		"archived":    Status("archived"),
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStatusServable(t *testing.T) {
	if !StatusPublished.Servable() {
		t.Fatal("published must be servable")
	}
	for _, status := range []Status{StatusDraft, "archived", ""} {
		if status.Servable() {
			t.Fatalf("status %q must not be servable", status)
		}
	}
}

func TestImageRoleKnown(t *testing.T) {
	for _, role := range []ImageRole{RoleHero, RoleOG, RoleGallery} {
		if !role.Known() {
			t.Fatalf("expected %q known", role)
		}
	}
	if ImageRole("banner").Known() {
		t.Fatal("banner must not be a known role")
	}
}
