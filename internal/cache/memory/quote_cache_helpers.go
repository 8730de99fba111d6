package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/pkg/metrics"
)

// evictLRU - удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

// removeElement - удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack - удаляет просроченные элементы с хвоста до первого актуального.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok {
			c.removeElement(back)
			metrics.CacheSize.Set(float64(c.ll.Len()))
			continue
		}
		if now.After(ent.expiresAt) {
			c.removeElement(back)
			metrics.CacheOps.WithLabelValues("expired").Inc()
			metrics.CacheSize.Set(float64(c.ll.Len()))
			continue
		}
		return
	}
}

// cloneQuote - глубокая копия сметы: позиции и характеристики товаров
// не разделяются с вызывающим кодом.
func cloneQuote(quote *domain.Quote) *domain.Quote {
	if quote == nil {
		return nil
	}
	cloned := *quote
	if quote.UserID != nil {
		uid := *quote.UserID
		cloned.UserID = &uid
	}
	if quote.Items != nil {
		cloned.Items = make([]domain.QuoteItem, len(quote.Items))
		for i, it := range quote.Items {
			if it.Product.Specs != nil {
				it.Product.Specs = append([]domain.Spec(nil), it.Product.Specs...)
			}
			cloned.Items[i] = it
		}
	}
	return &cloned
}
