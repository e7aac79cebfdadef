package ports

import (
	"context"

	"github.com/Gunvolt24/pricecache/internal/domain"
)

// SnapshotStore — долговременное хранилище снапшота кэша (файл, Postgres, Redis).
type SnapshotStore interface {
	Load(ctx context.Context) (map[string]domain.PriceEntry, error)
	Save(ctx context.Context, entries map[string]domain.PriceEntry) error
}

// SnapshotSaver — отложенная (debounced) запись снапшота.
type SnapshotSaver interface {
	// MaybeSave — записать снапшот, если с прошлой записи прошло не меньше интервала.
	MaybeSave(ctx context.Context, source SnapshotSource) bool
}
