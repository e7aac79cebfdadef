package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
)

// Проверка, что FileStore удовлетворяет интерфейсу SnapshotStore.
var _ ports.SnapshotStore = (*FileStore)(nil)

// Record — запись снапшота на диске: {"price": n, "lastFetchTime": epoch_ms}.
type Record struct {
	Price         float64 `json:"price"`
	LastFetchTime int64   `json:"lastFetchTime"`
}

// ToRecords — перевод записей кэша в формат снапшота.
func ToRecords(entries map[string]domain.PriceEntry) map[string]Record {
	out := make(map[string]Record, len(entries))
	for k, e := range entries {
		out[k] = Record{Price: e.Price, LastFetchTime: e.FetchedAt.UnixMilli()}
	}
	return out
}

// FromRecords — обратный перевод.
func FromRecords(records map[string]Record) map[string]domain.PriceEntry {
	out := make(map[string]domain.PriceEntry, len(records))
	for k, r := range records {
		out[k] = domain.PriceEntry{Price: r.Price, FetchedAt: time.UnixMilli(r.LastFetchTime)}
	}
	return out
}

// FileStore — снапшот в JSON-файле.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path — путь к файлу снапшота.
func (f *FileStore) Path() string { return f.path }

// Load — отсутствие файла не ошибка (пустой кэш); битый файл — ошибка без данных.
func (f *FileStore) Load(_ context.Context) (map[string]domain.PriceEntry, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]domain.PriceEntry{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records map[string]Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return FromRecords(records), nil
}

// Save — пишет во временный файл рядом и переименовывает.
func (f *FileStore) Save(_ context.Context, entries map[string]domain.PriceEntry) error {
	raw, err := json.MarshalIndent(ToRecords(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
