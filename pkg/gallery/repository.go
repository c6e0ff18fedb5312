package gallery

import (
	"context"
	"sync"
)

// TabularReader yields the two ordered row tables of a backing store.
// Spreadsheet, CSV and in-memory implementations are provided under
// subpackages of reader/.
type TabularReader interface {
	Read(ctx context.Context) (*RowSet, error)
}

// mediaTypeAliases maps external route-style segments to media types.
var mediaTypeAliases = map[string]MediaType{
	"images": MediaTypeImage,
	"sounds": MediaTypeSound,
	"text":   MediaTypeText,
}

// Repository owns the fully-loaded, indexed dataset and exposes read-only
// queries over it. Its lifecycle is uninitialized -> initialized; every
// query fails with ErrNotInitialized until Initialize completes. After
// initialization the indexes are never mutated, so reads need no locking
// beyond the initialization gate.
type Repository struct {
	fieldMap FieldMap

	mu          sync.RWMutex
	initialized bool

	contents     map[string]*Content
	contentOrder []*Content // insertion order
	media        map[string]*Media
	mediaOrder   []*Media
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithFieldMap sets the column-label mapping used when building entities.
func WithFieldMap(fm FieldMap) RepositoryOption {
	return func(r *Repository) {
		r.fieldMap = fm
	}
}

// NewRepository creates an uninitialized repository.
func NewRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		fieldMap: DefaultFieldMap(),
		contents: make(map[string]*Content),
		media:    make(map[string]*Media),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize consumes the reader and builds the content and media indexes.
// All content rows are indexed before any media row is processed, because
// media resolution needs the complete content table. A reader failure aborts
// the load; no partial state is ever published. Initialize is one-shot:
// calling it again returns ErrAlreadyInitialized.
func (r *Repository) Initialize(ctx context.Context, reader TabularReader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return ErrAlreadyInitialized
	}

	rows, err := reader.Read(ctx)
	if err != nil {
		return &SourceError{Table: "content/media", Err: err}
	}

	for _, row := range rows.ContentRows {
		content := BuildContent(row, r.fieldMap)
		if existing, ok := r.contents[content.ID]; ok {
			// Duplicate (name, app type): last write wins, position of the
			// first occurrence is kept.
			*existing = content
			continue
		}
		c := content
		r.contents[c.ID] = &c
		r.contentOrder = append(r.contentOrder, &c)
	}

	for _, row := range rows.MediaRows {
		medium := BuildMedia(row, r.fieldMap, r.contentOrder)
		m := medium
		if _, ok := r.media[m.ID]; !ok {
			r.mediaOrder = append(r.mediaOrder, &m)
		}
		r.media[m.ID] = &m
		if owner, ok := r.contents[m.ContentID]; ok {
			owner.Media = append(owner.Media, m)
		}
	}

	r.initialized = true
	return nil
}

func (r *Repository) ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// ListContentsDigest enumerates all contents, in source row order.
func (r *Repository) ListContentsDigest() ([]ContentDigest, error) {
	if !r.ready() {
		return nil, ErrNotInitialized
	}

	digests := make([]ContentDigest, 0, len(r.contentOrder))
	for _, c := range r.contentOrder {
		digests = append(digests, ContentDigest{
			ID:          c.ID,
			ContentName: c.ContentName,
			AppType:     c.AppType,
			Memo:        c.Memo,
		})
	}
	return digests, nil
}

// GetContent returns the content with the given id, media list included.
func (r *Repository) GetContent(id string) (*Content, error) {
	if !r.ready() {
		return nil, ErrNotInitialized
	}

	content, ok := r.contents[id]
	if !ok {
		return nil, ErrContentNotFound
	}
	contentCopy := *content
	return &contentCopy, nil
}

// GetMedia returns the media item with the given id.
func (r *Repository) GetMedia(id string) (*Media, error) {
	if !r.ready() {
		return nil, ErrNotInitialized
	}

	medium, ok := r.media[id]
	if !ok {
		return nil, ErrMediaNotFound
	}
	mediumCopy := *medium
	return &mediumCopy, nil
}

// ListMedia returns summaries of all media of the given type, narrowed to
// one content when contentID is non-empty. Order is source row order,
// stable regardless of filter.
func (r *Repository) ListMedia(mediaType MediaType, contentID string) ([]MediaSummary, error) {
	if !r.ready() {
		return nil, ErrNotInitialized
	}

	summaries := make([]MediaSummary, 0)
	for _, m := range r.mediaOrder {
		if m.Type != mediaType {
			continue
		}
		if contentID != "" && m.ContentID != contentID {
			continue
		}
		summaries = append(summaries, MediaSummary{
			ID:          m.ID,
			ContentID:   m.ContentID,
			Type:        m.Type,
			Description: m.Description,
		})
	}
	return summaries, nil
}

// ResolveMediaTypeAlias maps a route-style segment ("images", "sounds",
// "text") to the internal media type. Unknown segments yield ok=false;
// the caller decides the not-found policy.
func (r *Repository) ResolveMediaTypeAlias(segment string) (MediaType, bool) {
	mt, ok := mediaTypeAliases[segment]
	return mt, ok
}
