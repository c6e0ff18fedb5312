package blobfetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileConfig options for the filesystem fetcher.
type FileConfig struct {
	// BaseDir is prepended to relative paths. Empty means paths are used
	// as-is, relative to the process working directory.
	BaseDir string
}

// File reads media blobs from the local filesystem. file:// URLs and plain
// paths are both accepted.
type File struct {
	baseDir string
}

// NewFile creates a filesystem fetcher.
func NewFile(config FileConfig) *File {
	return &File{baseDir: config.BaseDir}
}

func (f *File) Fetch(ctx context.Context, pathURL string) ([]byte, error) {
	path := strings.TrimPrefix(pathURL, "file://")
	if f.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.baseDir, path)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return blob, nil
}
