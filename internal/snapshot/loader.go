package snapshot

import (
	"context"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
)

// Restorer — то, во что сливается загруженный снапшот (memory.PriceCache).
type Restorer interface {
	Restore(entries map[string]domain.PriceEntry) int
}

// Load — однократная загрузка снапшота при старте, до обслуживания запросов.
// Ошибка не фатальна: кэш просто стартует пустым (или с тем, что удалось прочитать).
func Load(ctx context.Context, store ports.SnapshotStore, dst Restorer, log ports.Logger) int {
	entries, err := store.Load(ctx)
	if err != nil {
		log.Warnf(ctx, "snapshot load failed, starting with partial/empty cache: %v", err)
	}
	if len(entries) == 0 {
		return 0
	}
	n := dst.Restore(entries)
	log.Infof(ctx, "snapshot loaded entries=%d", n)
	return n
}
