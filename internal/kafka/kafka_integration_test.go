//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/pricecache/internal/cache/memory"
	ikafka "github.com/Gunvolt24/pricecache/internal/kafka"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/testutil"
	"github.com/Gunvolt24/pricecache/internal/usecase"
	"github.com/Gunvolt24/pricecache/internal/worker"
	"github.com/Gunvolt24/pricecache/pkg/logger"
	"github.com/Gunvolt24/pricecache/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// noFetch — удалённый поиск в этих тестах не нужен.
func noFetch(string) ports.FetchFunc {
	return func(context.Context) (float64, error) { return 0, errors.New("lookup disabled") }
}

type stack struct {
	ctx     context.Context
	kf      *testutil.KafkaEnv
	cache   *cachemem.PriceCache
	service *usecase.PriceService
	log     ports.Logger
}

func newStack(t *testing.T) *stack {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "prices-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	pool := worker.NewPool(1, 16)
	t.Cleanup(func() { _ = pool.Close(context.Background()) })

	cache := cachemem.NewPriceCache(pool, nil, nil, logg)
	svc := usecase.NewPriceService(cache, noFetch, validate.NewObservationValidator(), logg)

	return &stack{ctx: ctx, kf: kf, cache: cache, service: svc, log: logg}
}

func (s *stack) startConsumer(t *testing.T, topic, group string) {
	t.Helper()
	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        s.kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, s.service, s.log)

	runCtx, cancelRun := context.WithCancel(s.ctx)
	t.Cleanup(cancelRun)
	go func() { _ = consumer.Run(runCtx) }()
	t.Cleanup(func() { _ = consumer.Close() })

	// даём консьюмеру присоединиться к группе
	time.Sleep(1500 * time.Millisecond)
}

func (s *stack) waitPrice(t *testing.T, key string, want float64) {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		if got, ok := s.cache.Fresh(key, time.Hour); ok && got == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("price for %s not applied in time", key)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 1) Валидное наблюдение прогревает кэш
func TestKafka_Observation_Applied_TC(t *testing.T) {
	s := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(s.kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(s.ctx, s.kf.Brokers[0], topic))
	s.startConsumer(t, topic, group)

	obs := testutil.MakeObservation("Warp", 262144, time.Now())
	raw, _ := json.Marshal(obs)
	writeMsg(t, s.ctx, s.kf.Brokers, topic, raw)

	s.waitPrice(t, "Warp", 262144)
}

// 2) Мусор и невалидное наблюдение пропускаются, следующее валидное применяется
func TestKafka_Skip_Invalid_Then_Apply_TC(t *testing.T) {
	s := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(s.kf.BaseTopic + "-invalid-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(s.ctx, s.kf.Brokers[0], topic))
	s.startConsumer(t, topic, group)

	writeMsg(t, s.ctx, s.kf.Brokers, topic, []byte("not-a-json"))

	bad := testutil.MakeObservation("Bad", -1, time.Now())
	braw, _ := json.Marshal(bad)
	writeMsg(t, s.ctx, s.kf.Brokers, topic, braw)

	ok := testutil.MakeObservation("Nirvana", 8192, time.Now())
	oraw, _ := json.Marshal(ok)
	writeMsg(t, s.ctx, s.kf.Brokers, topic, oraw)

	s.waitPrice(t, "Nirvana", 8192)
	_, found := s.cache.Fresh("Bad", time.Hour)
	require.False(t, found)
}

// 3) Более старое наблюдение не перетирает более новое
func TestKafka_OlderObservation_Ignored_TC(t *testing.T) {
	s := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(s.kf.BaseTopic + "-order-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(s.ctx, s.kf.Brokers[0], topic))
	s.startConsumer(t, topic, group)

	now := time.Now()
	newer, _ := json.Marshal(testutil.MakeObservation("Bow", 50000, now))
	older, _ := json.Marshal(testutil.MakeObservation("Bow", 64, now.Add(-time.Hour)))
	marker, _ := json.Marshal(testutil.MakeObservation("Marker", 1, now))

	writeMsg(t, s.ctx, s.kf.Brokers, topic, newer)
	writeMsg(t, s.ctx, s.kf.Brokers, topic, older)
	writeMsg(t, s.ctx, s.kf.Brokers, topic, marker)

	// marker применён → все предыдущие сообщения обработаны
	s.waitPrice(t, "Marker", 1)
	got, ok := s.cache.Fresh("Bow", 2*time.Hour)
	require.True(t, ok)
	require.Equal(t, 50000.0, got)
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, value []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: value}))
}
