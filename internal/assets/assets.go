// Package assets provides a layered, caching view over asset directories.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// Store reads assets from a stack of filesystems. Roots are searched in
// reverse order (last added = highest priority), so a local override
// directory can shadow files of the shipped asset root. File contents read
// through ReadFile are cached.
type Store struct {
	roots []fs.FS
	cache *Cache
	mu    sync.RWMutex
}

// NewStore creates a store over the given roots, lowest priority first.
func NewStore(roots ...fs.FS) *Store {
	return &Store{
		roots: append([]fs.FS(nil), roots...),
		cache: NewCache(),
	}
}

// AddRoot adds a filesystem with the highest priority so far.
func (s *Store) AddRoot(root fs.FS) {
	s.mu.Lock()
	s.roots = append(s.roots, root)
	s.mu.Unlock()
}

// Open opens name from the highest-priority root that has it.
func (s *Store) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.roots) - 1; i >= 0; i-- {
		f, err := s.roots[i].Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile returns the contents of name, serving repeats from the cache.
func (s *Store) ReadFile(name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return data, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(s.roots[i], name)
		if err == nil {
			s.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

// Stats returns cache statistics.
func (s *Store) Stats() (hits, misses int) {
	return s.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
