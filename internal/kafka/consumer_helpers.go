package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/pricecache/pkg/metrics"
	"github.com/Gunvolt24/pricecache/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// handleMessage — применяет одно сообщение; true — оффсет нужно закоммитить.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.ObserveFromMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidObservation):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid observation partition=%d offset=%d: %v (skipped)", msg.Partition, msg.Offset, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "observation failed partition=%d offset=%d: %v (will retry without commit)", msg.Partition, msg.Offset, err)
		return false
	}
}

// commitSafely — ошибка коммита только логируется.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// backoff — экспоненциальная пауза с equal-jitter, ограниченная сверху max.
type backoff struct {
	initial time.Duration
	max     time.Duration

	mu      sync.Mutex
	current time.Duration
	rnd     *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration, seed int64) *backoff {
	return &backoff{
		initial: initial,
		max:     maxDelay,
		current: initial,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// next — пауза для текущей попытки; следующая будет вдвое длиннее (не больше max).
func (b *backoff) next() time.Duration {
	b.mu.Lock()
	d := b.current
	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	b.mu.Unlock()
	return b.jitter(d)
}

func (b *backoff) reset() {
	b.mu.Lock()
	b.current = b.initial
	b.mu.Unlock()
}

// jitter — половина задержки фиксирована, вторая половина случайна.
func (b *backoff) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	b.mu.Lock()
	j := time.Duration(b.rnd.Int63n(int64(d-half) + 1))
	b.mu.Unlock()
	return half + j
}

// sleepCtx — ждёт d или отмену контекста; false — контекст отменён.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
