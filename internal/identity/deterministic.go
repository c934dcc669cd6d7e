package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID is the id of the content record served at path.
func RecordUUID(path string) uuid.UUID {
	return UUID("saltaire-guide:record:" + strings.TrimSpace(path))
}

// ImageUUID is the id of the image at position index of a record's image list.
func ImageUUID(recordID uuid.UUID, role string, index int) uuid.UUID {
	return UUID("saltaire-guide:image:" + recordID.String() + ":" + strings.ToLower(strings.TrimSpace(role)) + ":" + strconv.Itoa(index))
}
