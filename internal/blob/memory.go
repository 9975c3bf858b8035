package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-process BlobStore used by tests and credential-less
// local runs. URLFailures lets tests simulate per-object URL resolution
// failures.
type MemoryStore struct {
	mu          sync.RWMutex
	objects     map[string][]byte
	URLFailures map[string]error
}

var _ BlobStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:     make(map[string][]byte),
		URLFailures: make(map[string]error),
	}
}

func (s *MemoryStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.objects[objectPath] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DownloadURL(ctx context.Context, objectPath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.URLFailures[objectPath]; ok {
		return "", err
	}
	if _, ok := s.objects[objectPath]; !ok {
		return "", fmt.Errorf("object not found: %s", objectPath)
	}
	return "https://blobs.local/" + objectPath, nil
}

// Has reports whether an object was uploaded under the given path.
func (s *MemoryStore) Has(objectPath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[objectPath]
	return ok
}
