package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore used by tests and by local
// development when no GCP project is configured. Unfiltered queries return
// documents in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string]map[string]interface{}
}

var _ DocumentStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colls: make(map[string]*memCollection)}
}

func (s *MemoryStore) coll(name string) *memCollection {
	c, ok := s.colls[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]interface{})}
		s.colls[name] = c
	}
	return c
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colls[collection]
	if !ok {
		return nil, nil
	}

	var docs []Document
	for _, id := range c.order {
		data := c.docs[id]
		if !matchesAll(data, filters) {
			continue
		}
		docs = append(docs, Document{ID: id, Data: copyValue(data).(map[string]interface{})})
	}
	return docs, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colls[collection]
	if !ok {
		return nil, nil
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, nil
	}
	return &Document{ID: id, Data: copyValue(data).(map[string]interface{})}, nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	id := uuid.NewString()
	c.docs[id] = copyValue(data).(map[string]interface{})
	c.order = append(c.order, id)
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	doc, ok := c.docs[id]
	if !ok {
		// Merge-set semantics: an update to a missing document creates it.
		doc = make(map[string]interface{})
		c.docs[id] = doc
		c.order = append(c.order, id)
	}
	for k, v := range fields {
		doc[k] = copyValue(v)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func matchesAll(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if data[f.Field] != f.Value {
			return false
		}
	}
	return true
}

// copyValue deep-copies the map/slice shapes documents are built from, so
// callers can never mutate stored state through a returned Document.
func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = copyValue(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(t))
		for i, e := range t {
			l[i] = copyValue(e)
		}
		return l
	default:
		return v
	}
}
