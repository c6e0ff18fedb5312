// Package blobfetch provides gallery.BlobFetcher implementations for the
// places a media path can point at: the local filesystem, HTTP(S) URLs and
// S3 objects, plus a Router that dispatches on the path's URL scheme.
package blobfetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/showdeck/gallery/pkg/gallery"
)

// Router dispatches Fetch calls to scheme-specific fetchers. Paths without
// a scheme (plain filesystem paths) go to the fallback fetcher.
type Router struct {
	fetchers map[string]gallery.BlobFetcher
	fallback gallery.BlobFetcher
}

// NewRouter creates a router with the given fallback for scheme-less paths.
func NewRouter(fallback gallery.BlobFetcher) *Router {
	return &Router{
		fetchers: make(map[string]gallery.BlobFetcher),
		fallback: fallback,
	}
}

// Register binds a URL scheme (e.g. "https", "s3") to a fetcher.
func (r *Router) Register(scheme string, f gallery.BlobFetcher) {
	r.fetchers[strings.ToLower(scheme)] = f
}

func (r *Router) Fetch(ctx context.Context, pathURL string) ([]byte, error) {
	if u, err := url.Parse(pathURL); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		if f, ok := r.fetchers[strings.ToLower(u.Scheme)]; ok {
			return f.Fetch(ctx, pathURL)
		}
		if r.fallback == nil {
			return nil, fmt.Errorf("no fetcher registered for scheme %s", u.Scheme)
		}
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no fallback fetcher for path %s", pathURL)
	}
	return r.fallback.Fetch(ctx, pathURL)
}

// Default returns a router that reads plain and file:// paths from the local
// filesystem and http(s) URLs over the network.
func Default() *Router {
	fs := NewFile(FileConfig{})
	r := NewRouter(fs)
	r.Register("file", fs)
	httpFetcher := NewHTTP(HTTPConfig{})
	r.Register("http", httpFetcher)
	r.Register("https", httpFetcher)
	return r
}
