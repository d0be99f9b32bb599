// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Suffix is the file suffix of persisted catalogs.
const Suffix = ".cat"

// Store persists catalog blobs by name. Implementations must be safe for
// concurrent use.
type Store interface {
	// List returns the names of every stored blob.
	List(ctx context.Context) ([]string, error)
	// Read returns a blob, or ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write stores a blob under name, replacing any previous one.
	Write(ctx context.Context, name string, blob []byte) error
}

// NewName returns a fresh blob name.
func NewName() string { return "raypath-" + uuid.NewString() + Suffix }

// DirStore keeps one file per blob in a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates dir if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("NewDirStore: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the directory.
func (s *DirStore) Dir() string { return s.dir }

// List implements Store.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("DirStore.List: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), Suffix) {
			names = append(names, e.Name())
		}
	}
	return names, ctx.Err()
}

// Read implements Store.
func (s *DirStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("DirStore.Read(%s): %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("DirStore.Read(%s): %w", name, err)
	}
	return blob, nil
}

// Write implements Store. The blob is written to a temporary file and
// renamed so readers never see a partial file.
func (s *DirStore) Write(ctx context.Context, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("DirStore.Write(%s): %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("DirStore.Write(%s): %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("DirStore.Write(%s): %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, filepath.Base(name))); err != nil {
		return fmt.Errorf("DirStore.Write(%s): %w", name, err)
	}
	return nil
}

// MemoryStore keeps blobs in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{blobs: make(map[string][]byte)} }

// List implements Store; names are sorted.
func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.blobs))
	for n := range s.blobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[name]
	if !ok {
		return nil, fmt.Errorf("MemoryStore.Read(%s): %w", name, ErrNotFound)
	}
	return append([]byte(nil), blob...), nil
}

// Write implements Store.
func (s *MemoryStore) Write(_ context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), blob...)
	return nil
}
