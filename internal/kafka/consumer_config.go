package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — настройки консьюмера потока наблюдений цен.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last, регистр и пробелы не важны

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration

	// MaxWait — сколько брокер копит сообщения перед ответом на fetch; 0 → 500ms.
	MaxWait time.Duration
}

// Наблюдения — короткие JSON; большие батчи только задерживают прогрев кэша.
const (
	readerMinBytes = 1
	readerMaxBytes = 1 << 20
	defaultMaxWait = 500 * time.Millisecond
)

// ReaderConfig — конфиг kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
		MinBytes:       readerMinBytes,
		MaxBytes:       readerMaxBytes,
		MaxWait:        c.MaxWait,
	}
	if rc.MaxWait <= 0 {
		rc.MaxWait = defaultMaxWait
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

// withDefaults — значения по умолчанию для незаданных таймаутов.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = 5 * time.Second
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = time.Second
	}
	if c.RetryMax <= 0 {
		c.RetryMax = 30 * time.Second
	}
	if c.RetryMax < c.RetryInitial {
		c.RetryMax = c.RetryInitial
	}
	return c
}
