// Package memory provides an in-memory TabularReader used by tests and
// programmatic setups.
package memory

import (
	"context"

	"github.com/showdeck/gallery/pkg/gallery"
)

// Reader serves a fixed RowSet.
type Reader struct {
	rows gallery.RowSet
	err  error
}

// New creates a reader that yields the given rows.
func New(rows gallery.RowSet) *Reader {
	return &Reader{rows: rows}
}

// NewFailing creates a reader whose Read always fails with err. Tests use
// it to exercise source-failure paths.
func NewFailing(err error) *Reader {
	return &Reader{err: err}
}

func (r *Reader) Read(ctx context.Context) (*gallery.RowSet, error) {
	if r.err != nil {
		return nil, r.err
	}
	rows := r.rows
	return &rows, nil
}
