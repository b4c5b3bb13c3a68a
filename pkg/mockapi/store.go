package mockapi

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"sync"

	"github.com/getmockd/restapi/pkg/query"
	"github.com/getmockd/restapi/pkg/schema"
)

// DefaultResources are the collections served when none are configured.
var DefaultResources = []string{"users", "posts", "dogs"}

// Collection is one resource type: records keyed by integer id and the
// counter that issues those ids. The counter only moves forward, so ids
// are never reused until Reset.
type Collection struct {
	mu      sync.RWMutex
	name    string
	items   map[int64]schema.Record
	counter int64
}

func newCollection(name string) *Collection {
	return &Collection{
		name:  name,
		items: make(map[int64]schema.Record),
	}
}

// Name returns the resource name.
func (c *Collection) Name() string {
	return c.name
}

// All returns the records matching q in ascending id order, then ordered
// by q.Order when given. Records are copies.
func (c *Collection) All(q *query.Query) []schema.Record {
	c.mu.RLock()
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	records := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		records = append(records, maps.Clone(c.items[id]))
	}
	c.mu.RUnlock()

	return q.Apply(records)
}

// Find returns a copy of the record with the given id.
func (c *Collection) Find(id int64) (schema.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.items[id]
	if !ok {
		return nil, c.notFound(id)
	}
	return maps.Clone(rec), nil
}

// Create stores a copy of rec under the next id and returns it.
// Any id in rec is overwritten.
func (c *Collection) Create(rec schema.Record) schema.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	stored := maps.Clone(rec)
	if stored == nil {
		stored = make(schema.Record)
	}
	stored["id"] = c.counter
	c.items[c.counter] = stored
	return maps.Clone(stored)
}

// Update merges fields into an existing record. Fields absent from
// fields are preserved and the id cannot be changed.
func (c *Collection) Update(id int64, fields schema.Record) (schema.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.items[id]
	if !ok {
		return nil, c.notFound(id)
	}
	for k, v := range fields {
		rec[k] = v
	}
	rec["id"] = id
	return maps.Clone(rec), nil
}

// Delete removes a record. The id counter is left untouched.
func (c *Collection) Delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return c.notFound(id)
	}
	delete(c.items, id)
	return nil
}

// Count returns the number of stored records.
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// LastID returns the most recently issued id, 0 if none.
func (c *Collection) LastID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter
}

// Reset drops every record and restarts ids at 1.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int64]schema.Record)
	c.counter = 0
}

func (c *Collection) notFound(id int64) error {
	return &NotFoundError{Resource: c.name, ID: strconv.FormatInt(id, 10)}
}

// Store owns the collections served by a Server. The set of collections
// is fixed at construction.
type Store struct {
	collections map[string]*Collection
	names       []string
}

// NewStore creates a store with one empty collection per name. With no
// names, DefaultResources are used. Duplicate names are ignored.
func NewStore(names ...string) *Store {
	if len(names) == 0 {
		names = DefaultResources
	}
	s := &Store{collections: make(map[string]*Collection, len(names))}
	for _, name := range names {
		if _, exists := s.collections[name]; exists || name == "" {
			continue
		}
		s.collections[name] = newCollection(name)
		s.names = append(s.names, name)
	}
	return s
}

// Collection returns the named collection.
func (s *Store) Collection(name string) (*Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, &NotFoundError{Resource: name}
	}
	return c, nil
}

// Names returns the collection names in registration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Reset empties every collection and zeroes every id counter.
func (s *Store) Reset() {
	for _, c := range s.collections {
		c.Reset()
	}
}

// CollectionInfo summarises one collection.
type CollectionInfo struct {
	Count  int   `json:"count"`
	LastID int64 `json:"lastId"`
}

// Overview returns per-collection record counts and last issued ids.
func (s *Store) Overview() map[string]CollectionInfo {
	out := make(map[string]CollectionInfo, len(s.collections))
	for name, c := range s.collections {
		out[name] = CollectionInfo{Count: c.Count(), LastID: c.LastID()}
	}
	return out
}

// Seed creates every record in data through Collection.Create, in order.
func (s *Store) Seed(data map[string][]schema.Record) error {
	for name, records := range data {
		c, err := s.Collection(name)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		for _, rec := range records {
			c.Create(rec)
		}
	}
	return nil
}
