package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("content: record not found")
	ErrRecordPathInvalid = errors.New("content: record path must start with /")
	ErrRecordRequired    = errors.New("content: record required")
	ErrDatabaseMissing   = errors.New("content: database not configured")
)

// RecordNotFoundError reports a lookup miss for the given key (path or id).
type RecordNotFoundError struct {
	Key string
}

func (e *RecordNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: key=%s", ErrRecordNotFound.Error(), e.Key)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}
