// Package csvfile provides a TabularReader backed by two CSV files, one per
// entity table, with the column labels in the first record.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/showdeck/gallery/pkg/gallery"
)

// Reader reads content rows and media rows from separate CSV files.
type Reader struct {
	contentsPath string
	mediaPath    string
}

// New creates a reader over the two CSV files.
func New(contentsPath, mediaPath string) *Reader {
	return &Reader{contentsPath: contentsPath, mediaPath: mediaPath}
}

func (r *Reader) Read(ctx context.Context) (*gallery.RowSet, error) {
	contentRows, err := fileRows(r.contentsPath)
	if err != nil {
		return nil, err
	}
	mediaRows, err := fileRows(r.mediaPath)
	if err != nil {
		return nil, err
	}
	return &gallery.RowSet{ContentRows: contentRows, MediaRows: mediaRows}, nil
}

func fileRows(path string) ([]gallery.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // hand-maintained files may have ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]gallery.RawRow, 0, len(records)-1)
	for _, cells := range records[1:] {
		row := make(gallery.RawRow, len(header))
		for i, label := range header {
			if i >= len(cells) || label == "" {
				continue
			}
			row[label] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
