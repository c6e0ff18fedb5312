package gallery

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotInitialized indicates the repository was queried before Initialize completed
	ErrNotInitialized = errors.New("repository not initialized")

	// ErrAlreadyInitialized indicates Initialize was called twice
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrSourceRead indicates the tabular reader failed to produce rows
	ErrSourceRead = errors.New("tabular source read failed")

	// ErrContentNotFound indicates a content was not found
	ErrContentNotFound = errors.New("content not found")

	// ErrMediaNotFound indicates a media item was not found, the requested
	// type did not match, or its backing blob could not be read
	ErrMediaNotFound = errors.New("media not found")

	// ErrNoFetcher indicates a blob-backed media item was requested from a
	// resolver constructed without a BlobFetcher
	ErrNoFetcher = errors.New("no blob fetcher configured")
)

// ResolveError records why a media payload could not be produced. It matches
// ErrMediaNotFound under errors.Is so callers keep a single absence signal,
// while the underlying cause stays available for logging.
type ResolveError struct {
	MediaID string
	Op      string
	Err     error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve operation %s failed for media %s: %v", e.Op, e.MediaID, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func (e *ResolveError) Is(target error) bool {
	return target == ErrMediaNotFound
}

// SourceError records which table of the tabular source failed to load.
type SourceError struct {
	Table string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("loading %s rows failed: %v", e.Table, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (e *SourceError) Is(target error) bool {
	return target == ErrSourceRead
}
