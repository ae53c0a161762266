package courses

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/JaimeStill/registrar/pkg/storage"
)

// Source opens the raw catalog document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

type blobSource struct {
	store storage.System
	key   string
}

// BlobSource reads the catalog from a blob in the configured container.
func BlobSource(store storage.System, key string) Source {
	return &blobSource{store: store, key: key}
}

func (s *blobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := s.store.Download(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("catalog blob %q: %w", s.key, err)
	}
	return rc, nil
}

func (s *blobSource) String() string {
	return "blob:" + s.key
}

type fileSource struct {
	path string
}

// FileSource reads the catalog from a local JSON file.
func FileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

func (s *fileSource) String() string {
	return "file:" + s.path
}
