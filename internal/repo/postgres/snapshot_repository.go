package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что SnapshotRepository удовлетворяет интерфейсу SnapshotStore.
var _ ports.SnapshotStore = (*SnapshotRepository)(nil)

// SnapshotRepository — снапшот кэша цен в таблице price_snapshot.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository - конструктор SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Load — все записи снапшота.
func (r *SnapshotRepository) Load(ctx context.Context) (map[string]domain.PriceEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, price, last_fetch_ms FROM price_snapshot`)
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.PriceEntry)
	for rows.Next() {
		var (
			key   string
			price float64
			ms    int64
		)
		if err := rows.Scan(&key, &price, &ms); err != nil {
			return out, fmt.Errorf("scan snapshot row: %w", err)
		}
		out[key] = domain.PriceEntry{Price: price, FetchedAt: time.UnixMilli(ms)}
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("iterate snapshot: %w", err)
	}
	return out, nil
}

// Save — пакетный upsert всех записей в одной транзакции.
// Более старая запись не перетирает более новую.
func (r *SnapshotRepository) Save(ctx context.Context, entries map[string]domain.PriceEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for key, ent := range entries {
		batch.Queue(`
			INSERT INTO price_snapshot (key, price, last_fetch_ms, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (key) DO UPDATE SET
				price = EXCLUDED.price,
				last_fetch_ms = EXCLUDED.last_fetch_ms,
				updated_at = now()
			WHERE price_snapshot.last_fetch_ms <= EXCLUDED.last_fetch_ms
		`, key, ent.Price, ent.FetchedAt.UnixMilli())
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("upsert snapshot: %w", err)
			}
		}
		return br.Close()
	})
}
