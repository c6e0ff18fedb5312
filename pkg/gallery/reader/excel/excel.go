// Package excel provides a TabularReader backed by a spreadsheet workbook.
// Contents and media live on two named sheets whose first row holds the
// column labels.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/showdeck/gallery/pkg/gallery"
)

// Default sheet names, matching the original exhibit workbook.
const (
	DefaultContentsSheet = "コンテンツ"
	DefaultMediaSheet    = "メディア"
)

// Reader reads the two entity tables from an xlsx workbook.
type Reader struct {
	path          string
	contentsSheet string
	mediaSheet    string
}

// Option configures a Reader.
type Option func(*Reader)

// WithSheetNames overrides the sheet names holding content and media rows.
func WithSheetNames(contents, media string) Option {
	return func(r *Reader) {
		r.contentsSheet = contents
		r.mediaSheet = media
	}
}

// New creates a reader over the workbook at path. The file is opened on
// Read, not here, so a bad path surfaces as a read failure at load time.
func New(path string, opts ...Option) *Reader {
	r := &Reader{
		path:          path,
		contentsSheet: DefaultContentsSheet,
		mediaSheet:    DefaultMediaSheet,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Read(ctx context.Context) (*gallery.RowSet, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	contentRows, err := sheetRows(f, r.contentsSheet)
	if err != nil {
		return nil, err
	}
	mediaRows, err := sheetRows(f, r.mediaSheet)
	if err != nil {
		return nil, err
	}

	return &gallery.RowSet{ContentRows: contentRows, MediaRows: mediaRows}, nil
}

// sheetRows converts one sheet into labeled rows, first row as header.
// Rows shorter than the header leave the trailing fields absent, matching
// how spreadsheet tools drop empty trailing cells.
func sheetRows(f *excelize.File, sheet string) ([]gallery.RawRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]gallery.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		record := make(gallery.RawRow, len(header))
		empty := true
		for i, label := range header {
			if i >= len(cells) || label == "" {
				continue
			}
			if cells[i] != "" {
				empty = false
			}
			record[label] = cells[i]
		}
		if empty {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
