package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/snapshot"
	"github.com/redis/go-redis/v9"
)

// DefaultKey — hash со снапшотом по умолчанию.
const DefaultKey = "pricecache:snapshot"

// Проверка, что SnapshotStore удовлетворяет интерфейсу SnapshotStore.
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore — снапшот в hash: поле = ключ цены, значение = JSON-запись
// {"price": n, "lastFetchTime": ms}, как в файловом снапшоте.
type SnapshotStore struct {
	client redis.UniversalClient
	key    string
}

// NewSnapshotStore — конструктор. Пустой key → DefaultKey.
func NewSnapshotStore(client redis.UniversalClient, key string) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	return &SnapshotStore{client: client, key: key}
}

// Load — все поля hash. Битые поля пропускаются, ошибка возвращается вместе с прочитанным.
func (s *SnapshotStore) Load(ctx context.Context) (map[string]domain.PriceEntry, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}

	records := make(map[string]snapshot.Record, len(raw))
	var errs []error
	for field, val := range raw {
		var rec snapshot.Record
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", field, err))
			continue
		}
		records[field] = rec
	}
	return snapshot.FromRecords(records), errors.Join(errs...)
}

// Save — одна команда HSET со всеми полями.
func (s *SnapshotStore) Save(ctx context.Context, entries map[string]domain.PriceEntry) error {
	if len(entries) == 0 {
		return nil
	}

	values := make(map[string]any, len(entries))
	for key, rec := range snapshot.ToRecords(entries) {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal %q: %w", key, err)
		}
		values[key] = string(b)
	}

	if err := s.client.HSet(ctx, s.key, values).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", s.key, err)
	}
	return nil
}
