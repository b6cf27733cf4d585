package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const memoryBaseURL = "memory://assets/"

// MemoryStore keeps uploads in process memory. It backs STORE=memory
// runs without MinIO and the tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failure error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	s.mu.Lock()
	failure := s.failure
	s.mu.Unlock()
	if failure != nil {
		return "", failure
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := objectKey(folder, filename)
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return memoryBaseURL + key, nil
}

func (s *MemoryStore) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, memoryBaseURL)
	if !ok {
		return nil
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Fail makes every later Upload return err. Pass nil to recover.
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	s.failure = err
	s.mu.Unlock()
}

// Has reports whether an object is stored under url.
func (s *MemoryStore) Has(url string) bool {
	key, ok := strings.CutPrefix(url, memoryBaseURL)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.objects[key]
	return found
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
