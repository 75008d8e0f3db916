// Package memstore is an in-memory docstore backend. It backs the test
// suite and the "memory" store mode; sort-index availability and failures
// are configurable so callers' fallback paths can be exercised.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/derin/classpad/internal/docstore"
)

// Store is an in-memory implementation of docstore.Store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	noIndex     map[string]bool  // "collection/field" pairs with no sort index
	failures    map[string]error // per-collection injected failure
}

// New creates an empty store. All sorted queries succeed unless an index
// is disabled with DisableSortIndex.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]interface{}),
		noIndex:     make(map[string]bool),
		failures:    make(map[string]error),
	}
}

// Collection implements docstore.Store.
func (s *Store) Collection(name string) docstore.Collection {
	return &collection{store: s, name: name}
}

// DisableSortIndex makes sorted Find calls on (collection, field) fail with
// docstore.ErrIndexUnavailable.
func (s *Store) DisableSortIndex(collection, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noIndex[collection+"/"+field] = true
}

// EnableSortIndex re-enables a previously disabled sort index.
func (s *Store) EnableSortIndex(collection, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.noIndex, collection+"/"+field)
}

// InjectFailure makes every operation on the named collection return err
// until ClearFailure is called.
func (s *Store) InjectFailure(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[collection] = err
}

// ClearFailure removes an injected failure.
func (s *Store) ClearFailure(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, collection)
}

// Len reports the number of documents in a collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Insert(ctx context.Context, data map[string]interface{}) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if err := c.store.failures[c.name]; err != nil {
		return "", err
	}

	docs := c.store.collections[c.name]
	if docs == nil {
		docs = make(map[string]map[string]interface{})
		c.store.collections[c.name] = docs
	}

	id := uuid.NewString()
	docs[id] = normalizeMap(data)
	return id, nil
}

func (c *collection) Get(ctx context.Context, id string) (*docstore.Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	if err := c.store.failures[c.name]; err != nil {
		return nil, err
	}

	data, ok := c.store.collections[c.name][id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &docstore.Document{ID: id, Data: copyMap(data)}, nil
}

func (c *collection) Find(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	if err := c.store.failures[c.name]; err != nil {
		return nil, err
	}
	if q.In != nil && len(q.In.Values) > docstore.MaxInValues {
		return nil, docstore.ErrTooManyInValues
	}
	if q.OrderBy != "" && c.store.noIndex[c.name+"/"+q.OrderBy] {
		return nil, fmt.Errorf("find %s order by %s: %w", c.name, q.OrderBy, docstore.ErrIndexUnavailable)
	}

	var out []docstore.Document
	for id, data := range c.store.collections[c.name] {
		if matches(data, q) {
			out = append(out, docstore.Document{ID: id, Data: copyMap(data)})
		}
	}

	if q.OrderBy != "" {
		field := q.OrderBy
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compareValues(out[i].Data[field], out[j].Data[field])
			if q.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	} else {
		// Deterministic order for unsorted reads.
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	return out, nil
}

func (c *collection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if err := c.store.failures[c.name]; err != nil {
		return err
	}

	data, ok := c.store.collections[c.name][id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range normalizeMap(fields) {
		data[k] = v
	}
	return nil
}

func matches(data map[string]interface{}, q docstore.Query) bool {
	for _, f := range q.Filters {
		if !equal(data[f.Field], normalize(f.Value)) {
			return false
		}
	}
	if q.In != nil {
		got, ok := data[q.In.Field].(string)
		if !ok {
			return false
		}
		found := false
		for _, v := range q.In.Values {
			if v == got {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	return compareValues(a, b) == 0
}

// compareValues orders json-normalized scalar values. Mixed or non-scalar
// types order by their string form, which is stable even if meaningless.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// normalize runs a value through the json codec so that stored values and
// filter values share one representation (numbers as float64, timestamps
// as RFC3339 strings).
func normalize(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
