package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/Gunvolt24/pcquote/pkg/metrics"
)

var _ ports.QuoteCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        int64
	quote     *domain.Quote
	expiresAt time.Time
}

// LRUCacheTTL - LRU-кэш смет с абсолютным TTL: срок записи отсчитывается от Set,
// чтение двигает запись в LRU-порядке, но срок не продлевает.
// ttl <= 0 отключает истечение.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[int64]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[int64]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id int64) (*domain.Quote, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneQuote(ent.quote), true
}

func (c *LRUCacheTTL) Set(_ context.Context, quote *domain.Quote) error {
	if quote == nil || quote.ID <= 0 {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[quote.ID]; ok {
		ent := elem.Value.(*entry)
		ent.quote = cloneQuote(quote)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        quote.ID,
		quote:     cloneQuote(quote),
		expiresAt: c.expiryFrom(now),
	})
	c.index[quote.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Delete - убрать смету из кэша; true, если запись была (просроченная тоже считается).
func (c *LRUCacheTTL) Delete(_ context.Context, id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		return false
	}
	c.removeElement(elem)
	metrics.CacheOps.WithLabelValues("invalidated").Inc()
	metrics.CacheSize.Set(float64(len(c.index)))
	return true
}

func (c *LRUCacheTTL) WarmUp(ctx context.Context, quotes []*domain.Quote) error {
	for _, quote := range quotes {
		if err := c.Set(ctx, quote); err != nil {
			return err
		}
	}
	return nil
}

// Len - текущее число записей (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
