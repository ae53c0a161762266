package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/registrar/pkg/formatting"
)

// Catalog sources.
const (
	CatalogSourceFile = "file"
	CatalogSourceBlob = "blob"
)

const (
	EnvCatalogSource  = "REGISTRAR_CATALOG_SOURCE"
	EnvCatalogPath    = "REGISTRAR_CATALOG_PATH"
	EnvCatalogBlobKey = "REGISTRAR_CATALOG_BLOB_KEY"
	EnvCatalogMaxSize = "REGISTRAR_CATALOG_MAX_SIZE"
)

// CatalogConfig locates the course catalog document. A file source reads
// Path from local disk; a blob source reads BlobKey from the storage container.
type CatalogConfig struct {
	Source  string `toml:"source"`
	Path    string `toml:"path"`
	BlobKey string `toml:"blob_key"`
	MaxSize string `toml:"max_size"`
}

// MaxSizeBytes returns MaxSize in bytes.
func (c *CatalogConfig) MaxSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CatalogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.BlobKey != "" {
		c.BlobKey = overlay.BlobKey
	}
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
}

func (c *CatalogConfig) loadDefaults() {
	if c.Source == "" {
		c.Source = CatalogSourceFile
	}
	if c.Path == "" {
		c.Path = "data/courses.json"
	}
	if c.BlobKey == "" {
		c.BlobKey = "courses.json"
	}
	if c.MaxSize == "" {
		c.MaxSize = "10MB"
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvCatalogPath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvCatalogBlobKey); v != "" {
		c.BlobKey = v
	}
	if v := os.Getenv(EnvCatalogMaxSize); v != "" {
		c.MaxSize = v
	}
}

func (c *CatalogConfig) validate() error {
	switch c.Source {
	case CatalogSourceFile, CatalogSourceBlob:
	default:
		return fmt.Errorf("invalid source %q: must be %s or %s", c.Source, CatalogSourceFile, CatalogSourceBlob)
	}

	size, err := formatting.ParseBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	return nil
}
