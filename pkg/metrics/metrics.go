package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_cache_operations_total",
			Help: "Price cache lookups by outcome",
		},
		[]string{"op"}, // hit|stale|miss|pending|scheduled|dropped|backoff
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "price_cache_size",
			Help: "Number of entries currently in the price cache",
		},
	)
	CachePending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "price_cache_pending_fetches",
			Help: "Number of price lookups in flight",
		},
	)
)

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_fetch_total",
			Help: "Remote price lookups by result",
		},
		[]string{"result"}, // ok|error
	)
	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_fetch_duration_seconds",
			Help:    "Duration of remote price lookups",
			Buckets: prometheus.DefBuckets,
		},
	)
	SnapshotSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_snapshot_saves_total",
			Help: "Snapshot save attempts by result",
		},
		[]string{"result"}, // ok|error|skipped
	)
	AggregateOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_aggregate_operations_total",
			Help: "Composite price resolutions by outcome",
		},
		[]string{"op"}, // cached|computed|unknown
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в дефолтном реестре; повторный вызов — no-op.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize, CachePending,
			FetchTotal, FetchDuration, SnapshotSaves, AggregateOps,
		)
	})
}
