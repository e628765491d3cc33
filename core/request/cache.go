package request

import (
	"sync"

	"github.com/imdario/mergo"

	"github.com/goto/intake/domain"
)

// Cache is the local copy of the remote request list. It is only written with records
// the remote store has confirmed, and it hands out clones so callers cannot patch it
// in place.
type Cache struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*domain.Request
}

func NewCache() *Cache {
	return &Cache{records: map[string]*domain.Request{}}
}

// Replace swaps the whole list, keeping the remote order.
func (c *Cache) Replace(records []*domain.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = make([]string, 0, len(records))
	c.records = make(map[string]*domain.Request, len(records))
	for _, r := range records {
		if r == nil || r.DocumentID == "" {
			continue
		}
		if _, exists := c.records[r.DocumentID]; !exists {
			c.order = append(c.order, r.DocumentID)
		}
		c.records[r.DocumentID] = r.Clone()
	}
}

func (c *Cache) Get(id string) (*domain.Request, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.records[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Put stores a confirmed record, appending it when it is new.
func (c *Cache) Put(r *domain.Request) {
	if r == nil || r.DocumentID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.records[r.DocumentID]; !exists {
		c.order = append(c.order, r.DocumentID)
	}
	c.records[r.DocumentID] = r.Clone()
}

// Reconcile stores the record the remote store returned after a write. The reply is
// authoritative for every attribute it carries; only the request details, a component
// the CMS leaves out of write replies unless populated, are taken from the local
// expectation when the reply has none. A field the CMS cleared stays cleared.
func (c *Cache) Reconcile(confirmed, expected *domain.Request) error {
	merged := confirmed.Clone()
	if merged == nil {
		merged = expected.Clone()
	} else if expected != nil && merged.Details == nil && expected.Details != nil {
		merged.Details = map[string]interface{}{}
		if err := mergo.Merge(&merged.Details, expected.Clone().Details); err != nil {
			return err
		}
	}
	c.Put(merged)
	return nil
}

// List returns clones in remote order.
func (c *Cache) List() []*domain.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Request, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id].Clone())
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
