package sources

import "errors"

var (
	// ErrFetch wraps transport-level failures while retrieving a stream.
	ErrFetch = errors.New("sources: fetch failed")

	// ErrNotFound reports that the source has no stream for the requested AID.
	ErrNotFound = errors.New("sources: not found")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
