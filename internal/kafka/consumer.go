package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над kafka.Reader, подменяется моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// observationApplier — разбирает, валидирует и применяет наблюдение цены.
type observationApplier interface {
	ObserveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — читает поток наблюдений цен и прогревает ими кэш.
type Consumer struct {
	reader         reader
	service        observationApplier
	log            ports.Logger
	processTimeout time.Duration
	backoff        *backoff
	closeOnce      sync.Once
}

// NewConsumer — конструктор. Оффсеты коммитятся вручную.
func NewConsumer(cfg *ConsumerConfig, service observationApplier, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg.withDefaults(), service, log)
}

func newConsumer(r reader, cfg ConsumerConfig, service observationApplier, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		service:        service,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		backoff:        newBackoff(cfg.RetryInitial, cfg.RetryMax, time.Now().UnixNano()),
	}
}

// Run — основной цикл (at-least-once):
//   - применено → коммит;
//   - невалидное наблюдение → лог и коммит (пропускаем навсегда);
//   - временная ошибка → без коммита, пауза, повтор;
//   - ошибка FetchMessage → экспоненциальный backoff с джиттером.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "observation consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.backoff.next()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}

		c.backoff.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commitSafely(ctx, &msg)
			continue
		}
		// разнести повторы во времени
		_ = sleepCtx(ctx, c.backoff.jitter(minDuration(c.backoff.initial, 500*time.Millisecond)))
	}
}

// Close — закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
