package excel_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/showdeck/gallery/pkg/gallery/reader/excel"
)

func writeWorkbook(t *testing.T, contentsSheet, mediaSheet string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(contentsSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(contentsSheet, "A1", &[]string{"content_name", "app_type", "memo"}))
	require.NoError(t, f.SetSheetRow(contentsSheet, "A2", &[]string{"C1", "slideshow", "first"}))
	require.NoError(t, f.SetSheetRow(contentsSheet, "A3", &[]string{"C2"}))

	_, err = f.NewSheet(mediaSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(mediaSheet, "A1", &[]string{"media_type", "content_name", "path_url", "description"}))
	require.NoError(t, f.SetSheetRow(mediaSheet, "A2", &[]string{"image", "C1", "/a.png", "cap"}))
	require.NoError(t, f.SetSheetRow(mediaSheet, "A3", &[]string{"text", "C2", "", "body"}))

	path := filepath.Join(t.TempDir(), "contents.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReaderRead(t *testing.T) {
	path := writeWorkbook(t, "contents", "media")
	reader := excel.New(path, excel.WithSheetNames("contents", "media"))

	rows, err := reader.Read(context.Background())
	require.NoError(t, err)

	require.Len(t, rows.ContentRows, 2)
	assert.Equal(t, "C1", rows.ContentRows[0]["content_name"])
	assert.Equal(t, "slideshow", rows.ContentRows[0]["app_type"])
	// Trailing cells dropped by the sheet leave fields absent.
	assert.Equal(t, "", rows.ContentRows[1]["app_type"])

	require.Len(t, rows.MediaRows, 2)
	assert.Equal(t, "image", rows.MediaRows[0]["media_type"])
	assert.Equal(t, "/a.png", rows.MediaRows[0]["path_url"])
	assert.Equal(t, "body", rows.MediaRows[1]["description"])
}

func TestReaderMissingWorkbook(t *testing.T) {
	reader := excel.New(filepath.Join(t.TempDir(), "gone.xlsx"))
	_, err := reader.Read(context.Background())
	assert.Error(t, err)
}

func TestReaderMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "contents", "media")
	reader := excel.New(path) // default sheet names not present

	_, err := reader.Read(context.Background())
	assert.Error(t, err)
}
