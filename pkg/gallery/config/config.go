// Package config builds gallery components from server configuration.
// Defaults come first, functional options layer on top, and environment
// variables are applied through cleanenv tags via WithEnv.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/showdeck/gallery/pkg/gallery"
	"github.com/showdeck/gallery/pkg/gallery/blobfetch"
	"github.com/showdeck/gallery/pkg/gallery/reader/csvfile"
	"github.com/showdeck/gallery/pkg/gallery/reader/excel"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Environment: "development",
		Source: SourceConfig{
			Format:        "excel",
			Path:          "./data/contents.xlsx",
			ContentsSheet: excel.DefaultContentsSheet,
			MediaSheet:    excel.DefaultMediaSheet,
			FieldLabels:   "ja",
		},
		Fetch: FetchConfig{
			HTTPTimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 300,
		},
	}
}

// ServerConfig represents server configuration for the gallery service.
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	Source SourceConfig
	Fetch  FetchConfig
	Cache  CacheConfig
}

// SourceConfig describes the tabular source the repository is loaded from.
type SourceConfig struct {
	Format string `env:"GALLERY_SOURCE_FORMAT" env-default:"excel"` // "excel", "csv"

	// Excel source
	Path          string `env:"GALLERY_SOURCE_PATH" env-default:"./data/contents.xlsx"`
	ContentsSheet string `env:"GALLERY_CONTENTS_SHEET"`
	MediaSheet    string `env:"GALLERY_MEDIA_SHEET"`

	// CSV source
	ContentsCSVPath string `env:"GALLERY_CONTENTS_CSV"`
	MediaCSVPath    string `env:"GALLERY_MEDIA_CSV"`

	// Column labels: "ja" (original workbook) or "en"
	FieldLabels string `env:"GALLERY_FIELD_LABELS" env-default:"ja"`
}

// FetchConfig describes how media blobs are fetched.
type FetchConfig struct {
	// BaseDir for relative filesystem paths in media rows.
	BaseDir            string `env:"GALLERY_MEDIA_BASE_DIR"`
	HTTPTimeoutSeconds int    `env:"GALLERY_HTTP_TIMEOUT_SECONDS" env-default:"30"`

	// Optional S3 support for s3:// media paths.
	S3Enabled         bool   `env:"GALLERY_S3_ENABLED" env-default:"false"`
	S3Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"AWS_S3_BUCKET"`
	S3Endpoint        string `env:"AWS_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

// CacheConfig describes the boundary-layer payload cache.
type CacheConfig struct {
	Enabled    bool `env:"GALLERY_CACHE_ENABLED" env-default:"true"`
	TTLSeconds int  `env:"GALLERY_CACHE_TTL_SECONDS" env-default:"300"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.Source.Format {
	case "excel":
		if c.Source.Path == "" {
			return errors.New("source path is required for excel sources")
		}
	case "csv":
		if c.Source.ContentsCSVPath == "" || c.Source.MediaCSVPath == "" {
			return errors.New("contents and media CSV paths are required for csv sources")
		}
	default:
		return fmt.Errorf("unsupported source format: %s", c.Source.Format)
	}

	if c.Source.FieldLabels != "ja" && c.Source.FieldLabels != "en" {
		return fmt.Errorf("unsupported field labels: %s (use 'ja' or 'en')", c.Source.FieldLabels)
	}

	return nil
}

// FieldMap returns the column-label mapping for the configured source.
func (c *ServerConfig) FieldMap() gallery.FieldMap {
	if c.Source.FieldLabels == "en" {
		return gallery.EnglishFieldMap()
	}
	return gallery.DefaultFieldMap()
}

// BuildReader creates the TabularReader for the configured source.
func (c *ServerConfig) BuildReader() (gallery.TabularReader, error) {
	switch c.Source.Format {
	case "excel":
		var opts []excel.Option
		if c.Source.ContentsSheet != "" && c.Source.MediaSheet != "" {
			opts = append(opts, excel.WithSheetNames(c.Source.ContentsSheet, c.Source.MediaSheet))
		}
		return excel.New(c.Source.Path, opts...), nil
	case "csv":
		return csvfile.New(c.Source.ContentsCSVPath, c.Source.MediaCSVPath), nil
	default:
		return nil, fmt.Errorf("unsupported source format: %s", c.Source.Format)
	}
}

// BuildFetcher creates the blob fetcher for media paths: local files and
// http(s) always, s3:// when enabled.
func (c *ServerConfig) BuildFetcher() (gallery.BlobFetcher, error) {
	fs := blobfetch.NewFile(blobfetch.FileConfig{BaseDir: c.Fetch.BaseDir})
	router := blobfetch.NewRouter(fs)
	router.Register("file", fs)

	httpFetcher := blobfetch.NewHTTP(blobfetch.HTTPConfig{
		Timeout: time.Duration(c.Fetch.HTTPTimeoutSeconds) * time.Second,
	})
	router.Register("http", httpFetcher)
	router.Register("https", httpFetcher)

	if c.Fetch.S3Enabled {
		s3Fetcher, err := blobfetch.NewS3(blobfetch.S3Config{
			Region:          c.Fetch.S3Region,
			Bucket:          c.Fetch.S3Bucket,
			Endpoint:        c.Fetch.S3Endpoint,
			AccessKeyID:     c.Fetch.S3AccessKeyID,
			SecretAccessKey: c.Fetch.S3SecretAccessKey,
			UsePathStyle:    c.Fetch.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build s3 fetcher: %w", err)
		}
		router.Register("s3", s3Fetcher)
	}

	return router, nil
}

// CacheTTL returns the payload cache TTL, or zero when caching is disabled.
func (c *ServerConfig) CacheTTL() time.Duration {
	if !c.Cache.Enabled {
		return 0
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
