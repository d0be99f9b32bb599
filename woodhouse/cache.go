// SPDX-License-Identifier: MIT

package woodhouse

import (
	"sync"

	"github.com/katalvlaran/raytime/structure"
)

// Cache memoizes coefficients per structure fingerprint and radius.
// It is safe for concurrent use. Two goroutines racing on the same radius
// both compute it; the values are identical so either store wins.
type Cache struct {
	tables sync.Map // fingerprint -> *table
}

type table struct {
	values sync.Map // float64 radius -> Coefficients
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

func (c *Cache) table(s structure.Structure) *table {
	fp := s.Fingerprint()
	if t, ok := c.tables.Load(fp); ok {
		return t.(*table)
	}
	t, _ := c.tables.LoadOrStore(fp, &table{})
	return t.(*table)
}

// Len returns the number of radii memoized for s.
func (c *Cache) Len(s structure.Structure) int {
	t, ok := c.tables.Load(s.Fingerprint())
	if !ok {
		return 0
	}
	n := 0
	t.(*table).values.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Forget drops every memoized coefficient of s.
func (c *Cache) Forget(s structure.Structure) {
	c.tables.Delete(s.Fingerprint())
}
