package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecordUUIDIsStable(t *testing.T) {
	a := RecordUUID("/food-drink/salts-cafe")
	b := RecordUUID(" /food-drink/salts-cafe ")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected stable non-nil id, got %s and %s", a, b)
	}
	if a == RecordUUID("/food-drink/other") {
		t.Fatal("different paths must not collide")
	}
	if UUID("  ") != uuid.Nil {
		t.Fatal("blank key must map to the nil uuid")
	}
}

func TestImageUUIDIsScopedToRecord(t *testing.T) {
	record := RecordUUID("/pubs/boathouse")
	first := ImageUUID(record, "hero", 0)
	if first != ImageUUID(record, "Hero", 0) {
		t.Fatal("role must be case-insensitive")
	}
	if first == ImageUUID(record, "hero", 1) || first == ImageUUID(RecordUUID("/pubs/other"), "hero", 0) {
		t.Fatal("image ids must differ by index and record")
	}
}
