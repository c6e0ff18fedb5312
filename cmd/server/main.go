package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/showdeck/gallery/pkg/gallery"
	"github.com/showdeck/gallery/pkg/gallery/api"
	"github.com/showdeck/gallery/pkg/gallery/config"
)

func main() {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	reader, err := cfg.BuildReader()
	if err != nil {
		slog.Error("Failed to build tabular reader", "err", err)
		os.Exit(1)
	}
	fetcher, err := cfg.BuildFetcher()
	if err != nil {
		slog.Error("Failed to build blob fetcher", "err", err)
		os.Exit(1)
	}

	repo := gallery.NewRepository(gallery.WithFieldMap(cfg.FieldMap()))
	if err := repo.Initialize(context.Background(), reader); err != nil {
		// A source failure is fatal: no partial catalog is ever served.
		slog.Error("Failed to load catalog", "err", err)
		os.Exit(1)
	}
	resolver := gallery.NewResolver(repo, gallery.WithBlobFetcher(fetcher))

	handler := api.NewHandler(repo, resolver, api.WithPayloadCache(cfg.CacheTTL()))

	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	if cfg.Environment == "development" {
		r.Use(api.CORS(""))
	}
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})
	r.Mount("/api", handler.Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Gallery server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"source_format", cfg.Source.Format,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}
	slog.Info("Server exiting")
}
