// SPDX-License-Identifier: MIT

package mesh

import (
	"sync"

	"github.com/katalvlaran/raytime/structure"
)

// Cache memoizes meshes per Key. It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	meshes map[Key]*Mesh
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{meshes: make(map[Key]*Mesh)}
}

// Get returns the mesh of s for opts, building it on first use.
func (c *Cache) Get(s structure.Structure, opts ...Option) (*Mesh, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	k := keyOf(s, o)

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.meshes[k]; ok {
		return m, nil
	}
	m, err := New(s, opts...)
	if err != nil {
		return nil, err
	}
	c.meshes[k] = m
	return m, nil
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}
