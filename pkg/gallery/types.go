package gallery

// MediaType is the domain type for the kinds of media a content can own.
type MediaType string

// Media type constants (typed).
const (
	MediaTypeImage MediaType = "image"
	MediaTypeSound MediaType = "sound"
	MediaTypeText  MediaType = "text"
)

// Content represents a logical grouping of media, e.g. one exhibit or topic.
//
// ID is a content-addressed hash of (ContentName, AppType); two source rows
// with the same name and app type collapse to the same Content.
type Content struct {
	ID          string  `json:"id"`
	ContentName string  `json:"content_name"`
	AppType     string  `json:"app_type,omitempty"`
	Memo        string  `json:"memo,omitempty"`
	Media       []Media `json:"media"`
}

// Media represents one image, sound or text item belonging to a content.
//
// ContentID is empty when the source row named no known content; such orphan
// media stay retrievable by id but are never listed under any content.
type Media struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	Type        MediaType `json:"type"`
	PathURL     string    `json:"path_url"`
	Description string    `json:"description,omitempty"`
}

// ContentDigest is the listing shape for contents: everything but the media.
type ContentDigest struct {
	ID          string `json:"id"`
	ContentName string `json:"content_name"`
	AppType     string `json:"app_type,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

// MediaSummary is the listing shape for media: no payload, no path.
type MediaSummary struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	Type        MediaType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// ResolvedMedia is the client-consumable representation of one media item.
//
// For image and sound media, Data holds the base64-encoded blob and MimeType
// the sniffed type ("unknown" when sniffing was inconclusive); clients build
// a data URI from the pair. For text media, Description is the payload and
// Data stays empty. DateTime is the capture timestamp in epoch milliseconds.
type ResolvedMedia struct {
	ID          string `json:"id"`
	MediaType   string `json:"media_type"`
	MimeType    string `json:"mime_type"`
	DateTime    int64  `json:"date_time"`
	Description string `json:"description"`
	Data        string `json:"data"`
}
