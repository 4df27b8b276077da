package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps every collection in-process. It is the default backend
// and the one used by tests; contents are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	unique      map[string][]string
}

// NewMemoryStore initializes an empty in-memory store enforcing the given unique indexes.
func NewMemoryStore(indexes ...Index) *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
		unique:      indexFields(indexes),
	}
}

// Collection returns the named collection, creating it on first use.
func (m *MemoryStore) Collection(name string) Collection {
	m.mu.RLock()
	c, ok := m.collections[name]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.collections[name]; ok {
		return c
	}
	c = &memoryCollection{
		name:   name,
		unique: m.unique[name],
		seen:   make(map[string]struct{}),
	}
	m.collections[name] = c
	return c
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

type memoryCollection struct {
	name   string
	unique []string

	mu   sync.RWMutex
	docs []document
	seen map[string]struct{} // field + "\x00" + JSON value
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter, out any) (bool, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, doc := range c.docs {
		if doc.matches(want) {
			return true, decodeInto(doc.raw, out)
		}
	}
	return false, nil
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter, out any) error {
	want, err := normalizeFilter(filter)
	if err != nil {
		return err
	}
	c.mu.RLock()
	raws := make([][]byte, 0, len(c.docs))
	for _, doc := range c.docs {
		if doc.matches(want) {
			raws = append(raws, doc.raw)
		}
	}
	c.mu.RUnlock()
	return decodeAll(raws, out)
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc any) error {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.unique))
	for _, field := range c.unique {
		value, ok := encoded.uniqueValue(field)
		if !ok {
			continue
		}
		key := field + "\x00" + value
		if _, taken := c.seen[key]; taken {
			return fmt.Errorf("%s.%s=%s: %w", c.name, field, value, ErrDuplicate)
		}
		keys = append(keys, key)
	}
	for _, key := range keys {
		c.seen[key] = struct{}{}
	}
	c.docs = append(c.docs, encoded)
	return nil
}

func (c *memoryCollection) Count(ctx context.Context, filter Filter) (int, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, doc := range c.docs {
		if doc.matches(want) {
			n++
		}
	}
	return n, nil
}
