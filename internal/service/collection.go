package service

import (
	"slices"
	"sync"
	"time"

	"crm-console/internal/model"
)

// Collection is the cached source collection behind one list view. Records
// are treated as immutable once stored; patches swap in a new value.
type Collection struct {
	mu        sync.RWMutex
	records   []model.Record
	loaded    bool
	stale     bool
	fetchedAt time.Time
}

func NewCollection() *Collection {
	return &Collection{}
}

// NeedsFetch reports whether the next read must go to the CRM API.
func (c *Collection) NeedsFetch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.loaded || c.stale
}

// Replace stores a freshly fetched collection. It reports whether a
// previously loaded collection was replaced.
func (c *Collection) Replace(records []model.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	replaced := c.loaded
	c.records = slices.Clone(records)
	c.loaded = true
	c.stale = false
	c.fetchedAt = time.Now()
	return replaced
}

func (c *Collection) Snapshot() []model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Collection) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

func (c *Collection) Find(id string) (model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.records[i], true
	}
	return nil, false
}

// Patch replaces the record with the same id in place, keeping its position.
func (c *Collection) Patch(rec model.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(rec.RecordID())
	if i < 0 {
		return false
	}
	c.records[i] = rec
	return true
}

func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.records = slices.Delete(c.records, i, i+1)
	return true
}

// Append adds a created record. Unloaded collections ignore it; their first
// fetch will include it.
func (c *Collection) Append(rec model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	c.records = append(c.records, rec)
}

func (c *Collection) MarkStale() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

func (c *Collection) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.records, func(r model.Record) bool {
		return r.RecordID() == id
	})
}
