package blobfetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdeck/gallery/pkg/gallery/blobfetch"
)

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	blob := []byte("hello blob")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), blob, 0o644))

	t.Run("absolute path", func(t *testing.T) {
		f := blobfetch.NewFile(blobfetch.FileConfig{})
		got, err := f.Fetch(context.Background(), filepath.Join(dir, "a.bin"))
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})

	t.Run("relative path with base dir", func(t *testing.T) {
		f := blobfetch.NewFile(blobfetch.FileConfig{BaseDir: dir})
		got, err := f.Fetch(context.Background(), "a.bin")
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})

	t.Run("file url", func(t *testing.T) {
		f := blobfetch.NewFile(blobfetch.FileConfig{})
		got, err := f.Fetch(context.Background(), "file://"+filepath.Join(dir, "a.bin"))
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})

	t.Run("missing file", func(t *testing.T) {
		f := blobfetch.NewFile(blobfetch.FileConfig{})
		_, err := f.Fetch(context.Background(), filepath.Join(dir, "gone.bin"))
		assert.Error(t, err)
	})
}

func TestHTTPFetcher(t *testing.T) {
	blob := []byte("remote blob")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write(blob)
	}))
	defer srv.Close()

	f := blobfetch.NewHTTP(blobfetch.HTTPConfig{})

	t.Run("success", func(t *testing.T) {
		got, err := f.Fetch(context.Background(), srv.URL+"/a.png")
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})

	t.Run("non-200 status", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		assert.Error(t, err)
	})

	t.Run("size cap", func(t *testing.T) {
		small := blobfetch.NewHTTP(blobfetch.HTTPConfig{MaxBytes: 4})
		_, err := small.Fetch(context.Background(), srv.URL+"/a.png")
		assert.Error(t, err)
	})
}

func TestRouter(t *testing.T) {
	dir := t.TempDir()
	blob := []byte("routed blob")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), blob, 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("from http"))
	}))
	defer srv.Close()

	router := blobfetch.Default()

	t.Run("plain path goes to the filesystem", func(t *testing.T) {
		got, err := router.Fetch(context.Background(), filepath.Join(dir, "a.bin"))
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})

	t.Run("http url goes over the network", func(t *testing.T) {
		got, err := router.Fetch(context.Background(), srv.URL+"/x")
		require.NoError(t, err)
		assert.Equal(t, []byte("from http"), got)
	})

	t.Run("unregistered scheme without fallback fails", func(t *testing.T) {
		r := blobfetch.NewRouter(nil)
		_, err := r.Fetch(context.Background(), "s3://bucket/key")
		assert.Error(t, err)
	})
}
