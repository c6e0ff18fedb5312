package gallery

import (
	"context"
	"encoding/base64"
	"math/rand"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// mimeUnknown is reported when sniffing the blob's leading bytes was
// inconclusive, and for text media where no blob exists.
const mimeUnknown = "unknown"

// BlobFetcher loads the raw bytes behind a media path or URL. Local file,
// HTTP and S3 implementations live in the blobfetch package.
type BlobFetcher interface {
	Fetch(ctx context.Context, pathURL string) ([]byte, error)
}

// Resolver produces client-consumable media payloads and random picks over
// filtered media lists. Listing stays in the Repository; the Resolver owns
// the only I/O-bound, failure-prone step (reading the backing blob), so it
// can be tested and mocked independently.
type Resolver struct {
	repo    *Repository
	fetcher BlobFetcher
	now     func() time.Time
	intn    func(n int) int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBlobFetcher sets the fetcher used to load media blobs.
func WithBlobFetcher(f BlobFetcher) ResolverOption {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithClock overrides the timestamp source. Tests use a fixed clock.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithRand overrides the random source used by PickRandom.
func WithRand(rng *rand.Rand) ResolverOption {
	return func(r *Resolver) {
		r.intn = rng.Intn
	}
}

// NewResolver creates a resolver over the given repository.
func NewResolver(repo *Repository, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		repo: repo,
		now:  time.Now,
		intn: rand.Intn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchPayload looks up the media item with the given id and materializes
// its payload. It fails with ErrMediaNotFound when the id is unknown, when
// the stored type does not match the requested one (ids are content
// addressed; type-scoped lookup is the public contract), and when the
// backing blob cannot be read. The three cases are deliberately collapsed
// into one absence signal; the cause stays wrapped for boundary logging.
//
// For image and sound media with a path, the blob is read, MIME-sniffed
// from its leading bytes and base64-encoded into Data. For text media the
// description is the payload and no file read occurs.
func (r *Resolver) FetchPayload(ctx context.Context, mediaType MediaType, id string) (*ResolvedMedia, error) {
	medium, err := r.repo.GetMedia(id)
	if err != nil {
		return nil, err
	}
	if medium.Type != mediaType {
		return nil, ErrMediaNotFound
	}

	resolved := &ResolvedMedia{
		ID:          medium.ID,
		MediaType:   string(medium.Type),
		MimeType:    mimeUnknown,
		DateTime:    r.now().UnixMilli(),
		Description: medium.Description,
	}

	if medium.Type == MediaTypeText || medium.PathURL == "" {
		return resolved, nil
	}

	fetcher := r.fetcher
	if fetcher == nil {
		return nil, &ResolveError{MediaID: id, Op: "fetch", Err: ErrNoFetcher}
	}
	blob, err := fetcher.Fetch(ctx, medium.PathURL)
	if err != nil {
		return nil, &ResolveError{MediaID: id, Op: "fetch", Err: err}
	}

	resolved.MimeType = sniffMimeType(blob)
	resolved.Data = base64.StdEncoding.EncodeToString(blob)
	return resolved, nil
}

// PickRandom selects one element uniformly at random from the filtered
// media list. Statelessness is intentional: repeated polling produces
// variety for a rotating display without any pick history. An empty
// candidate set yields ErrMediaNotFound.
func (r *Resolver) PickRandom(mediaType MediaType, contentID string) (*MediaSummary, error) {
	candidates, err := r.repo.ListMedia(mediaType, contentID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrMediaNotFound
	}
	picked := candidates[r.intn(len(candidates))]
	return &picked, nil
}

// sniffMimeType detects the MIME type from the blob's leading bytes.
// Detection never errors; the library's catch-all octet-stream answer is
// what "inconclusive" looks like, and is reported as unknown.
func sniffMimeType(blob []byte) string {
	mt := mimetype.Detect(blob)
	if mt.Is("application/octet-stream") {
		return mimeUnknown
	}
	return mt.String()
}
