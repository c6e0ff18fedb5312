package gallery

// RawRow is one record from a tabular source: column label -> cell value.
// Absent columns are simply missing keys; lookups yield "".
type RawRow map[string]string

// RowSet is the two-table output of a tabular source, in source row order.
type RowSet struct {
	ContentRows []RawRow
	MediaRows   []RawRow
}

// FieldMap binds the logical entity fields to the column labels of a
// particular source. Hand-maintained spreadsheets label their columns in
// the curators' language, so the mapping is configuration, not code.
type FieldMap struct {
	ContentName string
	AppType     string
	Memo        string
	MediaType   string
	PathURL     string
	Description string
}

// DefaultFieldMap returns the column labels of the original exhibit
// workbook (Japanese headers).
func DefaultFieldMap() FieldMap {
	return FieldMap{
		ContentName: "コンテンツ名",
		AppType:     "見せ方",
		Memo:        "備考",
		MediaType:   "メディアタイプ",
		PathURL:     "URL,ファイルパス",
		Description: "説明",
	}
}

// EnglishFieldMap returns a field mapping for sources with English headers.
func EnglishFieldMap() FieldMap {
	return FieldMap{
		ContentName: "content_name",
		AppType:     "app_type",
		Memo:        "memo",
		MediaType:   "media_type",
		PathURL:     "path_url",
		Description: "description",
	}
}

// BuildContent constructs a Content from one content row. Missing fields
// become empty strings; the id is a pure function of (name, app type).
func BuildContent(row RawRow, fm FieldMap) Content {
	name := row[fm.ContentName]
	appType := row[fm.AppType]
	return Content{
		ID:          ShortHashID(name, appType),
		ContentName: name,
		AppType:     appType,
		Memo:        row[fm.Memo],
	}
}

// BuildMedia constructs a Media from one media row, resolving its owning
// content by exact name match over contents in source order (first match
// wins). No match leaves ContentID empty; that is not an error.
func BuildMedia(row RawRow, fm FieldMap, contents []*Content) Media {
	mediaType := row[fm.MediaType]
	pathURL := row[fm.PathURL]
	description := row[fm.Description]

	contentID := ""
	name := row[fm.ContentName]
	for _, c := range contents {
		if c.ContentName == name {
			contentID = c.ID
			break
		}
	}

	return Media{
		ID:          HashID(mediaType, pathURL, description),
		ContentID:   contentID,
		Type:        MediaType(mediaType),
		PathURL:     pathURL,
		Description: description,
	}
}
