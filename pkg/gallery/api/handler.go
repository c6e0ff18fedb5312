// Package api exposes the gallery repository and resolver over HTTP. Routes
// mirror the display frontend's expectations: content digests, per-content
// detail, type-scoped media listings, payload fetches and random picks.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	gocache "github.com/patrickmn/go-cache"

	"github.com/showdeck/gallery/pkg/gallery"
)

// Handler serves the gallery API.
type Handler struct {
	repo     *gallery.Repository
	resolver *gallery.Resolver
	payloads *gocache.Cache // nil when caching is disabled
}

// Option configures a Handler.
type Option func(*Handler)

// WithPayloadCache caches resolved payloads by media id for ttl. Payload
// bytes never change for a given content-addressed id, so the TTL only
// bounds memory, not staleness.
func WithPayloadCache(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl > 0 {
			h.payloads = gocache.New(ttl, 2*ttl)
		}
	}
}

// NewHandler creates an API handler over the given repository and resolver.
func NewHandler(repo *gallery.Repository, resolver *gallery.Resolver, opts ...Option) *Handler {
	h := &Handler{repo: repo, resolver: resolver}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the router for the /api subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/contents", h.ListContents)
	r.Get("/contents/{content_id}", h.GetContent)
	r.Get("/{media_type}", h.ListMedia)
	r.Get("/{media_type}/random", h.RandomMedia)
	r.Get("/{media_type}/{media_id}", h.GetMediaPayload)
	return r
}

// ErrResponse is the JSON error body.
type ErrResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrResponse{Error: msg})
}

// ListContents returns the digest of every content, in source order.
func (h *Handler) ListContents(w http.ResponseWriter, r *http.Request) {
	digests, err := h.repo.ListContentsDigest()
	if err != nil {
		slog.Error("Failed to list contents", "err", err)
		renderError(w, r, http.StatusInternalServerError, "repository unavailable")
		return
	}
	render.JSON(w, r, digests)
}

// GetContent returns one content with its media list.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "content_id")
	content, err := h.repo.GetContent(contentID)
	if err != nil {
		if errors.Is(err, gallery.ErrContentNotFound) {
			renderError(w, r, http.StatusNotFound, "content not found")
			return
		}
		slog.Error("Failed to get content", "content_id", contentID, "err", err)
		renderError(w, r, http.StatusInternalServerError, "repository unavailable")
		return
	}
	render.JSON(w, r, content)
}

// resolveSegment maps the {media_type} route segment to a media type,
// answering 404 itself on unknown segments.
func (h *Handler) resolveSegment(w http.ResponseWriter, r *http.Request) (gallery.MediaType, bool) {
	segment := chi.URLParam(r, "media_type")
	mt, ok := h.repo.ResolveMediaTypeAlias(segment)
	if !ok {
		renderError(w, r, http.StatusNotFound, "the specified media_type("+segment+") is not supported")
		return "", false
	}
	return mt, true
}

// ListMedia returns summaries of all media of the segment's type, narrowed
// by the optional content_id query parameter.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	mt, ok := h.resolveSegment(w, r)
	if !ok {
		return
	}

	contentID := r.URL.Query().Get("content_id")
	summaries, err := h.repo.ListMedia(mt, contentID)
	if err != nil {
		slog.Error("Failed to list media", "media_type", mt, "content_id", contentID, "err", err)
		renderError(w, r, http.StatusInternalServerError, "repository unavailable")
		return
	}
	render.JSON(w, r, summaries)
}

// GetMediaPayload returns the resolved payload for one media id.
func (h *Handler) GetMediaPayload(w http.ResponseWriter, r *http.Request) {
	mt, ok := h.resolveSegment(w, r)
	if !ok {
		return
	}
	mediaID := chi.URLParam(r, "media_id")

	cacheKey := string(mt) + "/" + mediaID
	if h.payloads != nil {
		if cached, found := h.payloads.Get(cacheKey); found {
			render.JSON(w, r, cached.(*gallery.ResolvedMedia))
			return
		}
	}

	resolved, err := h.resolver.FetchPayload(r.Context(), mt, mediaID)
	if err != nil {
		if errors.Is(err, gallery.ErrMediaNotFound) {
			// A missing id and an unreadable backing file both land here;
			// the log line keeps the distinction.
			slog.Warn("Media not resolvable", "media_type", mt, "media_id", mediaID, "err", err)
			renderError(w, r, http.StatusNotFound, string(mt)+" not found")
			return
		}
		slog.Error("Failed to resolve media", "media_type", mt, "media_id", mediaID, "err", err)
		renderError(w, r, http.StatusInternalServerError, "repository unavailable")
		return
	}

	if h.payloads != nil {
		h.payloads.SetDefault(cacheKey, resolved)
	}
	render.JSON(w, r, resolved)
}

// RandomMedia picks one media item of the segment's type uniformly at
// random and returns its resolved payload.
func (h *Handler) RandomMedia(w http.ResponseWriter, r *http.Request) {
	mt, ok := h.resolveSegment(w, r)
	if !ok {
		return
	}

	contentID := r.URL.Query().Get("content_id")
	picked, err := h.resolver.PickRandom(mt, contentID)
	if err != nil {
		if errors.Is(err, gallery.ErrMediaNotFound) {
			renderError(w, r, http.StatusNotFound, "the specified media_type("+string(mt)+") does not exist.")
			return
		}
		slog.Error("Failed to pick random media", "media_type", mt, "content_id", contentID, "err", err)
		renderError(w, r, http.StatusInternalServerError, "repository unavailable")
		return
	}

	resolved, err := h.resolver.FetchPayload(r.Context(), mt, picked.ID)
	if err != nil {
		slog.Warn("Failed to fetch picked media", "media_id", picked.ID, "err", err)
		renderError(w, r, http.StatusNotFound, "failed to fetch media data for id="+picked.ID)
		return
	}

	render.JSON(w, r, resolved)
}
