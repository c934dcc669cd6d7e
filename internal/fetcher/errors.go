package fetcher

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeNotFound    = "CONTENT_NOT_FOUND"
	textCodeStoreFailed = "CONTENT_STORE_FAILED"
)

// ErrNotFound reports that no published record exists at the requested path.
// Unpublished records are reported the same way.
var ErrNotFound = errors.New("fetcher: content not found")

// FetchError reports a content store failure. It is never used for a missing
// record, so callers can tell an outage from an unknown path.
type FetchError struct {
	Path string
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "fetcher: content store failed"
	}
	return fmt.Sprintf("fetcher: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the path has no published record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFetchError reports whether err is a content store failure.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// Categorize tags fetch errors with go-errors categories so HTTP and command
// boundaries can map them without knowing this package's types.
func Categorize(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case IsNotFound(err):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "content not found").
			WithTextCode(textCodeNotFound)
	case IsFetchError(err):
		return goerrors.Wrap(err, goerrors.CategoryExternal, "content store failed").
			WithTextCode(textCodeStoreFailed)
	default:
		return err
	}
}
