package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
)

// Resolver — цена составного предмета как максимум известных цен кандидатов.
type Resolver struct {
	cache    ports.PriceCache
	fetchers ports.FetcherFactory
	log      ports.Logger
}

// NewResolver — DI-конструктор.
func NewResolver(cache ports.PriceCache, fetchers ports.FetcherFactory, log ports.Logger) *Resolver {
	return &Resolver{cache: cache, fetchers: fetchers, log: log}
}

// Resolve — свежий агрегат отдаётся из кэша. Иначе по каждому кандидату берётся
// немедленное значение (с фоновым обновлением) и считается максимум.
// Ни одной известной цены → 0, в кэш ничего не пишется.
func (r *Resolver) Resolve(ctx context.Context, compositeKey string, candidates []string, maxAge time.Duration) float64 {
	if price, ok := r.cache.Fresh(compositeKey, maxAge); ok {
		metrics.AggregateOps.WithLabelValues("cached").Inc()
		return price
	}

	var (
		maxPrice float64
		known    int
	)
	for _, key := range candidates {
		price, ok := r.cache.GetOrRefresh(ctx, key, r.fetchers(key), maxAge)
		if !ok {
			continue
		}
		known++
		if price > maxPrice {
			maxPrice = price
		}
	}

	if known == 0 || maxPrice <= 0 {
		metrics.AggregateOps.WithLabelValues("unknown").Inc()
		r.log.Debugf(ctx, "aggregate unresolved key=%s candidates=%d", compositeKey, len(candidates))
		return 0
	}

	r.cache.Put(compositeKey, maxPrice)
	metrics.AggregateOps.WithLabelValues("computed").Inc()
	r.log.Debugf(ctx, "aggregate computed key=%s price=%.2f known=%d/%d", compositeKey, maxPrice, known, len(candidates))
	return maxPrice
}
