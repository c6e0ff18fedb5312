package gallery_test

import (
	"context"
	"encoding/base64"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdeck/gallery/pkg/gallery"
	"github.com/showdeck/gallery/pkg/gallery/blobfetch"
)

// pngSample is a minimal PNG header, enough for magic-number sniffing.
var pngSample = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func writeTempFile(t *testing.T, name string, blob []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, blob, 0o644))
	return path
}

func setupResolver(t *testing.T, rows gallery.RowSet, opts ...gallery.ResolverOption) (*gallery.Repository, *gallery.Resolver) {
	t.Helper()
	repo := setupTestRepository(t, rows)
	opts = append([]gallery.ResolverOption{gallery.WithBlobFetcher(blobfetch.Default())}, opts...)
	return repo, gallery.NewResolver(repo, opts...)
}

func TestFetchPayloadImage(t *testing.T) {
	path := writeTempFile(t, "a.png", pngSample)
	repo, resolver := setupResolver(t, gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "app", "m1")},
		MediaRows:   []gallery.RawRow{mediaRow("image", "C1", path, "d")},
	}, gallery.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))

	images, err := repo.ListMedia(gallery.MediaTypeImage, "")
	require.NoError(t, err)
	require.Len(t, images, 1)

	resolved, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeImage, images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, images[0].ID, resolved.ID)
	assert.Equal(t, "image", resolved.MediaType)
	assert.Equal(t, "image/png", resolved.MimeType)
	assert.Equal(t, int64(1700000000000), resolved.DateTime)
	assert.Equal(t, "d", resolved.Description)

	blob, err := base64.StdEncoding.DecodeString(resolved.Data)
	require.NoError(t, err)
	assert.Equal(t, pngSample, blob)
}

func TestFetchPayloadText(t *testing.T) {
	_, resolver := setupResolver(t, gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "", "")},
		MediaRows:   []gallery.RawRow{mediaRow("text", "C1", "", "the text payload")},
	})

	id := gallery.HashID("text", "", "the text payload")
	resolved, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeText, id)
	require.NoError(t, err)

	// Text media carry their payload in the description; no file is read.
	assert.Equal(t, "the text payload", resolved.Description)
	assert.Equal(t, "", resolved.Data)
	assert.Equal(t, "unknown", resolved.MimeType)
}

func TestFetchPayloadTypeScoped(t *testing.T) {
	path := writeTempFile(t, "a.png", pngSample)
	_, resolver := setupResolver(t, gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "", "")},
		MediaRows:   []gallery.RawRow{mediaRow("image", "C1", path, "d")},
	})

	id := gallery.HashID("image", path, "d")

	// The id exists, but as an image; a sound-scoped fetch must miss.
	_, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeSound, id)
	assert.ErrorIs(t, err, gallery.ErrMediaNotFound)
}

func TestFetchPayloadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.png")
	_, resolver := setupResolver(t, gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "", "")},
		MediaRows:   []gallery.RawRow{mediaRow("image", "C1", missing, "d")},
	})

	id := gallery.HashID("image", missing, "d")
	_, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeImage, id)

	// Unreadable blob collapses into the same absence signal as a missing
	// id, with the cause still wrapped for logging.
	assert.ErrorIs(t, err, gallery.ErrMediaNotFound)
	var resolveErr *gallery.ResolveError
	require.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, id, resolveErr.MediaID)
}

func TestFetchPayloadUnknownID(t *testing.T) {
	_, resolver := setupResolver(t, gallery.RowSet{})
	_, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeImage, "no-such-id")
	assert.ErrorIs(t, err, gallery.ErrMediaNotFound)
}

func TestFetchPayloadSniffInconclusive(t *testing.T) {
	// High-entropy bytes with no known magic number.
	blob := []byte{0x00, 0x01, 0xfe, 0xff, 0x42, 0x13, 0x37, 0x00, 0x99}
	path := writeTempFile(t, "mystery.bin", blob)
	_, resolver := setupResolver(t, gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "", "")},
		MediaRows:   []gallery.RawRow{mediaRow("image", "C1", path, "")},
	})

	id := gallery.HashID("image", path, "")
	resolved, err := resolver.FetchPayload(context.Background(), gallery.MediaTypeImage, id)
	require.NoError(t, err)
	assert.Equal(t, "unknown", resolved.MimeType)
	assert.NotEmpty(t, resolved.Data)
}

func TestPickRandom(t *testing.T) {
	rows := gallery.RowSet{
		ContentRows: []gallery.RawRow{contentRow("C1", "", ""), contentRow("C2", "", "")},
		MediaRows: []gallery.RawRow{
			mediaRow("image", "C1", "/a.png", "a"),
			mediaRow("image", "C1", "/b.png", "b"),
			mediaRow("image", "C2", "/c.png", "c"),
			mediaRow("sound", "C1", "/a.wav", "s"),
		},
	}

	t.Run("empty candidate set", func(t *testing.T) {
		_, resolver := setupResolver(t, gallery.RowSet{})
		_, err := resolver.PickRandom(gallery.MediaTypeImage, "")
		assert.ErrorIs(t, err, gallery.ErrMediaNotFound)
	})

	t.Run("pick matches the filter", func(t *testing.T) {
		repo, resolver := setupResolver(t, rows)
		digests, err := repo.ListContentsDigest()
		require.NoError(t, err)
		c1 := digests[0].ID

		for i := 0; i < 50; i++ {
			picked, err := resolver.PickRandom(gallery.MediaTypeImage, c1)
			require.NoError(t, err)
			assert.Equal(t, gallery.MediaTypeImage, picked.Type)
			assert.Equal(t, c1, picked.ContentID)
		}
	})

	t.Run("roughly uniform over many trials", func(t *testing.T) {
		_, resolver := setupResolver(t, rows,
			gallery.WithRand(rand.New(rand.NewSource(42))))

		const trials = 3000
		counts := make(map[string]int)
		for i := 0; i < trials; i++ {
			picked, err := resolver.PickRandom(gallery.MediaTypeImage, "")
			require.NoError(t, err)
			counts[picked.Description]++
		}

		require.Len(t, counts, 3)
		for desc, n := range counts {
			// Expected 1000 each; allow a generous tolerance.
			assert.InDelta(t, trials/3, n, trials/10, "candidate %s", desc)
		}
	})
}
