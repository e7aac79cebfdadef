package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
)

// Проверка, что Saver удовлетворяет интерфейсу SnapshotSaver.
var _ ports.SnapshotSaver = (*Saver)(nil)

// Saver — отложенная запись снапшота: не чаще одного раза за interval.
type Saver struct {
	store    ports.SnapshotStore
	clock    ports.Clock
	log      ports.Logger
	interval time.Duration

	mu       sync.Mutex
	lastSave time.Time
}

// NewSaver — конструктор. lastSave стартует с нуля, поэтому первая запись проходит сразу.
func NewSaver(store ports.SnapshotStore, clock ports.Clock, log ports.Logger, interval time.Duration) *Saver {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Saver{
		store:    store,
		clock:    clock,
		log:      log,
		interval: interval,
	}
}

// MaybeSave — записывает снапшот, если с прошлой записи прошло не меньше interval.
// Одновременно выполняется не более одной записи.
func (s *Saver) MaybeSave(ctx context.Context, source ports.SnapshotSource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.lastSave.IsZero() && now.Sub(s.lastSave) < s.interval {
		metrics.SnapshotSaves.WithLabelValues("skipped").Inc()
		return false
	}
	s.lastSave = now
	_ = s.saveLocked(ctx, source)
	return true
}

// Flush — безусловная запись (например, при остановке сервиса).
func (s *Saver) Flush(ctx context.Context, source ports.SnapshotSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSave = s.clock.Now()
	return s.saveLocked(ctx, source)
}

// saveLocked — ошибки записи логируются и не трогают состояние кэша.
func (s *Saver) saveLocked(ctx context.Context, source ports.SnapshotSource) error {
	entries := source()
	if err := s.store.Save(ctx, entries); err != nil {
		metrics.SnapshotSaves.WithLabelValues("error").Inc()
		s.log.Warnf(ctx, "snapshot save failed entries=%d: %v", len(entries), err)
		return err
	}
	metrics.SnapshotSaves.WithLabelValues("ok").Inc()
	s.log.Debugf(ctx, "snapshot saved entries=%d", len(entries))
	return nil
}
