package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides via the cleanenv tags on
// ServerConfig.
//
// Server:
//   PORT - listen port (default: "8080")
//   ENVIRONMENT - runtime environment (default: "development")
//
// Source:
//   GALLERY_SOURCE_FORMAT - "excel" (default) or "csv"
//   GALLERY_SOURCE_PATH - workbook path for excel sources
//   GALLERY_CONTENTS_SHEET / GALLERY_MEDIA_SHEET - sheet name overrides
//   GALLERY_CONTENTS_CSV / GALLERY_MEDIA_CSV - file paths for csv sources
//   GALLERY_FIELD_LABELS - "ja" (default) or "en" column labels
//
// Fetch:
//   GALLERY_MEDIA_BASE_DIR - base directory for relative media paths
//   GALLERY_HTTP_TIMEOUT_SECONDS - HTTP fetch timeout
//   GALLERY_S3_ENABLED - enable the s3:// fetcher
//   AWS_S3_REGION, AWS_S3_BUCKET, AWS_S3_ENDPOINT, AWS_ACCESS_KEY_ID,
//   AWS_SECRET_ACCESS_KEY, AWS_S3_USE_PATH_STYLE - S3 settings
//
// Cache:
//   GALLERY_CACHE_ENABLED - payload cache toggle (default: true)
//   GALLERY_CACHE_TTL_SECONDS - payload cache TTL (default: 300)
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}
