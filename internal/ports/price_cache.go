package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
)

// FetchFunc — внешний поиск цены. Может быть медленным и падать;
// для одного ключа одновременно выполняется не более одного вызова.
type FetchFunc func(ctx context.Context) (float64, error)

// FetcherFactory — строит FetchFunc для конкретного ключа.
type FetcherFactory func(key string) FetchFunc

// PriceCache — кэш цен с фоновым обновлением.
// Требования к реализации: потокобезопасность; GetOrRefresh никогда не блокируется на поиске.
type PriceCache interface {
	// GetOrRefresh — вернуть цену немедленно (возможно устаревшую); при необходимости
	// запланировать фоновое обновление. (0, false) — цены ещё нет.
	GetOrRefresh(ctx context.Context, key string, fetch FetchFunc, maxAge time.Duration) (float64, bool)

	// Fresh — цена, только если она не старше maxAge. Ничего не планирует.
	Fresh(key string, maxAge time.Duration) (float64, bool)

	// Put — записать вычисленное значение с текущим временем.
	Put(key string, price float64)

	// Observe — применить цену из внешнего потока, если она новее сохранённой.
	Observe(ctx context.Context, key string, price float64, at time.Time) bool

	// Stats — число записей и поисков в полёте.
	Stats() (entries, pending int)
}

// SnapshotSource — то, что умеет отдать копию всех записей.
type SnapshotSource func() map[string]domain.PriceEntry
