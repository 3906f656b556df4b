package fakepanel

import (
	"sort"
	"sync"
)

// collection is a tiny id -> JSON object table.
type collection struct {
	mu     sync.Mutex
	items  map[int]map[string]any
	nextID int
}

func newCollection() *collection {
	return &collection{items: make(map[int]map[string]any), nextID: 1}
}

func (c *collection) create(item map[string]any) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	stored := copyMap(item)
	stored["id"] = float64(id)
	c.items[id] = stored
	return id
}

func (c *collection) get(id int) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return copyMap(item), true
}

func (c *collection) update(id int, patch map[string]any) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	for k, v := range patch {
		item[k] = v
	}
	return copyMap(item), true
}

func (c *collection) delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// list returns the items ordered by id.
func (c *collection) list() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, copyMap(c.items[id]))
	}
	return items
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
