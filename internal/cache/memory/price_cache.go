package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/worker"
	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что PriceCache удовлетворяет интерфейсу PriceCache.
var _ ports.PriceCache = (*PriceCache)(nil)

var tracer = otel.Tracer("github.com/Gunvolt24/pricecache/internal/cache/memory")

// Executor — фоновый исполнитель поисков (worker.Pool). Submit не должен блокировать.
type Executor interface {
	Submit(task worker.Task) error
}

// Option — настройка PriceCache.
type Option func(*PriceCache)

// WithRetryInterval — минимальная пауза перед повторным поиском ключа после неудачи.
// 0 — без паузы.
func WithRetryInterval(d time.Duration) Option {
	return func(c *PriceCache) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// PriceCache — кэш цен: отдаёт значение сразу, обновляет в фоне,
// держит не более одного поиска в полёте на ключ.
type PriceCache struct {
	exec          Executor
	saver         ports.SnapshotSaver
	clock         ports.Clock
	log           ports.Logger
	retryInterval time.Duration

	mu       sync.Mutex
	entries  map[string]domain.PriceEntry
	pending  map[string]struct{}
	failedAt map[string]time.Time
}

// NewPriceCache — DI-конструктор. saver может быть nil (без персистентности).
func NewPriceCache(
	exec Executor,
	saver ports.SnapshotSaver,
	clock ports.Clock,
	log ports.Logger,
	opts ...Option,
) *PriceCache {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	c := &PriceCache{
		exec:     exec,
		saver:    saver,
		clock:    clock,
		log:      log,
		entries:  make(map[string]domain.PriceEntry),
		pending:  make(map[string]struct{}),
		failedAt: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrRefresh — свежая запись возвращается как есть; иначе, если поиск по ключу
// ещё не идёт, он планируется в фоне. Возвращает значение до обновления (или false).
func (c *PriceCache) GetOrRefresh(
	ctx context.Context,
	key string,
	fetch ports.FetchFunc,
	maxAge time.Duration,
) (float64, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	ent, ok := c.entries[key]
	if ok && isFresh(ent, now, maxAge) {
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues("hit").Inc()
		return ent.Price, true
	}
	if _, busy := c.pending[key]; busy {
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues("pending").Inc()
		return ent.Price, ok
	}
	if c.inBackoffLocked(key, now) {
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues("backoff").Inc()
		return ent.Price, ok
	}
	c.pending[key] = struct{}{}
	metrics.CachePending.Set(float64(len(c.pending)))
	c.mu.Unlock()

	if err := c.exec.Submit(c.refreshTask(key, fetch, trace.SpanContextFromContext(ctx))); err != nil {
		c.clearPending(key)
		metrics.CacheOps.WithLabelValues("dropped").Inc()
		c.log.Warnf(ctx, "price fetch not scheduled key=%s: %v", key, err)
		return ent.Price, ok
	}

	if ok {
		metrics.CacheOps.WithLabelValues("stale").Inc()
	} else {
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}
	metrics.CacheOps.WithLabelValues("scheduled").Inc()
	return ent.Price, ok
}

// Fresh — значение, только если оно не старше maxAge.
func (c *PriceCache) Fresh(key string, maxAge time.Duration) (float64, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok || !isFresh(ent, now, maxAge) {
		return 0, false
	}
	return ent.Price, true
}

// Put — записать вычисленное значение (например, агрегат) с текущим временем.
func (c *PriceCache) Put(key string, price float64) {
	c.store(key, price, domain.StampMillis(c.clock.Now()))
}

// Observe — применить наблюдение из внешнего потока, если оно новее сохранённого.
// Время из будущего прижимается к текущему.
func (c *PriceCache) Observe(ctx context.Context, key string, price float64, at time.Time) bool {
	if now := c.clock.Now(); at.After(now) {
		c.log.Warnf(ctx, "observation from the future clamped key=%s at=%s", key, at)
		at = now
	}
	if !c.store(key, price, domain.StampMillis(at)) {
		c.log.Debugf(ctx, "observation ignored (older than cached) key=%s at=%s", key, at)
		return false
	}
	if c.saver != nil {
		c.saver.MaybeSave(ctx, c.Snapshot)
	}
	return true
}

// Restore — слить загруженный снапшот в кэш. Возвращает число принятых записей.
// Записи из будущего (часы переведены назад) получают текущее время.
func (c *PriceCache) Restore(entries map[string]domain.PriceEntry) int {
	now := c.clock.Now()
	n := 0
	for key, ent := range entries {
		at := ent.FetchedAt
		if at.After(now) {
			at = now
		}
		if c.store(key, ent.Price, domain.StampMillis(at)) {
			n++
		}
	}
	return n
}

// Snapshot — копия всех записей.
func (c *PriceCache) Snapshot() map[string]domain.PriceEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]domain.PriceEntry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Stats — число записей и поисков в полёте.
func (c *PriceCache) Stats() (entries, pending int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), len(c.pending)
}

// Pending — идёт ли сейчас поиск по ключу.
func (c *PriceCache) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[key]
	return ok
}

// refreshTask — фоновая задача поиска. Снятие отметки pending — последнее действие.
// Спан price.fetch корневой (живёт дольше запроса) и ссылается на спан, который его запланировал.
func (c *PriceCache) refreshTask(key string, fetch ports.FetchFunc, origin trace.SpanContext) worker.Task {
	return func(ctx context.Context) {
		defer c.clearPending(key)

		opts := []trace.SpanStartOption{
			trace.WithNewRoot(),
			trace.WithAttributes(attribute.String("price.key", key)),
		}
		if origin.IsValid() {
			opts = append(opts, trace.WithLinks(trace.Link{SpanContext: origin}))
		}

		ctx = ctxmeta.WithPriceKey(ctx, key)
		ctx, span := tracer.Start(ctx, "price.fetch", opts...)
		defer span.End()

		start := time.Now()
		price, err := safeFetch(ctx, fetch)
		metrics.FetchDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.FetchTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.markFailed(key)
			c.log.Warnf(ctx, "price fetch failed key=%s: %v", key, err)
			return
		}
		metrics.FetchTotal.WithLabelValues("ok").Inc()

		if !c.store(key, price, domain.StampMillis(c.clock.Now())) {
			c.log.Debugf(ctx, "fetched price older than cached, dropped key=%s", key)
			return
		}
		c.log.Debugf(ctx, "price fetched key=%s price=%.2f took=%s", key, price, time.Since(start))

		if c.saver != nil {
			c.saver.MaybeSave(ctx, c.Snapshot)
		}
	}
}

// Len — число записей в кэше.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
