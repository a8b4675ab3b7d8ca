package service

import (
	"container/list"
	"sync"

	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/sizeof"
)

// cacheEntry pairs an order with its key for eviction bookkeeping.
type cacheEntry struct {
	key   int64
	value *domain.Order
}

// LRUCache caps both the entry count and the size of a single entry.
// Oversized orders are simply never cached.
type LRUCache struct {
	mu            sync.Mutex
	entryCountCap int
	entrySizeCap  int
	items         map[int64]*list.Element
	evictList     *list.List
}

func NewLRUCache(entryCountCap, entrySizeCap int) *LRUCache {
	return &LRUCache{
		entryCountCap: entryCountCap,
		entrySizeCap:  entrySizeCap,
		items:         make(map[int64]*list.Element),
		evictList:     list.New(),
	}
}

func (c *LRUCache) Get(key int64) (*domain.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(elem)
	return elem.Value.(*cacheEntry).value, true
}

func (c *LRUCache) Insert(value *domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := value.ID
	elem, ok := c.items[key]
	if ok {
		c.evictList.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}

	if sizeof.SizeOf(value) > c.entrySizeCap {
		return
	}
	c.items[key] = c.evictList.PushFront(&cacheEntry{key, value})

	for c.evictList.Len() > c.entryCountCap {
		c.removeOldest()
	}
}

// Remove drops a key, if cached. Called on update and delete so a stale
// view never outlives the row it mirrored.
func (c *LRUCache) Remove(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := c.evictList.Remove(elem).(*cacheEntry)
		delete(c.items, entry.key)
	}
}

func (c *LRUCache) removeOldest() {
	elem := c.evictList.Back()
	if elem != nil {
		entry := c.evictList.Remove(elem).(*cacheEntry)
		delete(c.items, entry.key)
	}
}
