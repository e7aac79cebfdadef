package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
)

// ErrInvalidPrice — поиск вернул отрицательную цену или NaN.
var ErrInvalidPrice = errors.New("fetched price is invalid")

// isFresh — запись не старше maxAge. maxAge <= 0 — свежих записей не бывает.
func isFresh(ent domain.PriceEntry, now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(ent.FetchedAt) <= maxAge
}

// inBackoffLocked — последний поиск ключа упал менее retryInterval назад. Вызывать под mu.
func (c *PriceCache) inBackoffLocked(key string, now time.Time) bool {
	if c.retryInterval <= 0 {
		return false
	}
	at, ok := c.failedAt[key]
	return ok && now.Sub(at) < c.retryInterval
}

// store — записать значение, если at не старше сохранённого (монотонность по ключу).
func (c *PriceCache) store(key string, price float64, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok && at.Before(old.FetchedAt) {
		return false
	}
	c.entries[key] = domain.PriceEntry{Price: price, FetchedAt: at}
	delete(c.failedAt, key)
	metrics.CacheSize.Set(float64(len(c.entries)))
	return true
}

// clearPending — снять отметку «поиск в полёте».
func (c *PriceCache) clearPending(key string) {
	c.mu.Lock()
	delete(c.pending, key)
	metrics.CachePending.Set(float64(len(c.pending)))
	c.mu.Unlock()
}

// markFailed — запомнить момент неудачного поиска (для retryInterval).
func (c *PriceCache) markFailed(key string) {
	now := c.clock.Now()
	c.mu.Lock()
	c.failedAt[key] = now
	c.mu.Unlock()
}

// safeFetch — вызывает поиск; паника и некорректная цена превращаются в ошибку.
func safeFetch(ctx context.Context, fetch ports.FetchFunc) (price float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("price fetch panicked: %v", r)
		}
	}()

	price, err = fetch(ctx)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	return price, nil
}
