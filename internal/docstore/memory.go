// README: In-memory document store used by package tests and the demo binary.
package docstore

import (
	"context"
	"fmt"
	"sync"
)

type memoryStore struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

// NewMemory returns an in-process Store with the same semantics as the
// Firestore implementation (last write wins, no transactions).
func NewMemory() Store {
	return &memoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *memoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

type memoryCollection struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	seq  int
}

func (c *memoryCollection) Add(ctx context.Context, data map[string]any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	id := fmt.Sprintf("doc_%04d", c.seq)
	c.docs[id] = cloneMap(data)
	return id, nil
}

func (c *memoryCollection) Get(ctx context.Context, id string) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneMap(doc), nil
}

func (c *memoryCollection) Set(ctx context.Context, id string, data map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = cloneMap(data)
	return nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = cloneValue(v)
	}
	return nil
}

func (c *memoryCollection) Append(ctx context.Context, id string, field string, values ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	arr, _ := doc[field].([]any)
	for _, v := range values {
		arr = append(arr, cloneValue(v))
	}
	doc[field] = arr
	return nil
}

func (c *memoryCollection) Query(ctx context.Context, field string, value any) ([]Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Document
	for id, doc := range c.docs {
		if doc[field] == value {
			out = append(out, Document{ID: id, Data: cloneMap(doc)})
		}
	}
	return out, nil
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
