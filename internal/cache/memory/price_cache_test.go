package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxAge = 5 * time.Minute

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fakeClock — часы, которые двигаются только вручную.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// manualExec — копит задачи и выполняет их по команде теста.
type manualExec struct {
	mu     sync.Mutex
	tasks  []worker.Task
	reject bool
}

func (m *manualExec) Submit(task worker.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reject {
		return worker.ErrQueueFull
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *manualExec) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *manualExec) RunAll() {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()
	for _, task := range tasks {
		task(context.Background())
	}
}

// countingSaver — считает вызовы MaybeSave.
type countingSaver struct {
	calls int32
}

func (s *countingSaver) MaybeSave(_ context.Context, source ports.SnapshotSource) bool {
	atomic.AddInt32(&s.calls, 1)
	_ = source()
	return true
}

func fetchConst(price float64, calls *int32) ports.FetchFunc {
	return func(context.Context) (float64, error) {
		atomic.AddInt32(calls, 1)
		return price, nil
	}
}

func newTestCache(opts ...Option) (*PriceCache, *manualExec, *fakeClock, *countingSaver) {
	exec := &manualExec{}
	clock := newFakeClock()
	saver := &countingSaver{}
	return NewPriceCache(exec, saver, clock, nopLogger{}, opts...), exec, clock, saver
}

func TestGetOrRefresh_FreshHit_NoFetch(t *testing.T) {
	c, exec, clock, _ := newTestCache()
	c.Restore(map[string]domain.PriceEntry{
		"Warp": {Price: 123, FetchedAt: clock.Now()},
	})
	clock.Advance(maxAge) // ровно на границе — ещё свежая

	fetch := func(context.Context) (float64, error) {
		t.Fatalf("fetch must not be called for a fresh entry")
		return 0, nil
	}

	got, ok := c.GetOrRefresh(context.Background(), "Warp", fetch, maxAge)
	require.True(t, ok)
	require.Equal(t, 123.0, got)
	require.Zero(t, exec.Len())
}

func TestGetOrRefresh_Miss_SchedulesAndPublishes(t *testing.T) {
	c, exec, _, saver := newTestCache()
	ctx := context.Background()
	var calls int32

	// промах: значения нет, поиск запланирован
	_, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(500, &calls), maxAge)
	require.False(t, ok)
	require.Equal(t, 1, exec.Len())
	require.True(t, c.Pending("Warp"))

	exec.RunAll()
	require.False(t, c.Pending("Warp"))
	require.Equal(t, int32(1), atomic.LoadInt32(&saver.calls))

	// после поиска — свежее значение без нового поиска
	got, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(999, &calls), maxAge)
	require.True(t, ok)
	require.Equal(t, 500.0, got)
	require.Zero(t, exec.Len())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrRefresh_PendingKey_NoSecondSchedule(t *testing.T) {
	c, exec, _, _ := newTestCache()
	ctx := context.Background()
	var calls int32

	for i := 0; i < 10; i++ {
		_, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(1, &calls), maxAge)
		require.False(t, ok)
	}
	require.Equal(t, 1, exec.Len())

	exec.RunAll()
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrRefresh_SingleFlight_Concurrent(t *testing.T) {
	pool := worker.NewPool(1, 16)
	defer func() { _ = pool.Close(context.Background()) }()

	c := NewPriceCache(pool, nil, ports.SystemClock{}, nopLogger{})

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (float64, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const callers = 64
	var wg sync.WaitGroup
	wg.Add(callers)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, _ = c.GetOrRefresh(context.Background(), "Warp", fetch, maxAge)
		}()
	}
	close(start)
	wg.Wait()
	close(release)

	require.Eventually(t, func() bool { return !c.Pending("Warp") }, time.Second, time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	got, ok := c.Fresh("Warp", maxAge)
	require.True(t, ok)
	require.Equal(t, 42.0, got)
}

func TestGetOrRefresh_Stale_ReturnsOldAndRefreshes(t *testing.T) {
	c, exec, clock, _ := newTestCache()
	ctx := context.Background()
	c.Restore(map[string]domain.PriceEntry{"Warp": {Price: 10, FetchedAt: clock.Now()}})
	clock.Advance(maxAge + time.Millisecond)

	var calls int32
	got, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(20, &calls), maxAge)
	require.True(t, ok)
	require.Equal(t, 10.0, got)

	exec.RunAll()
	got, ok = c.GetOrRefresh(ctx, "Warp", fetchConst(30, &calls), maxAge)
	require.True(t, ok)
	require.Equal(t, 20.0, got)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrRefresh_FetchFailure_PreservesPrior(t *testing.T) {
	c, exec, clock, saver := newTestCache()
	ctx := context.Background()
	fetchedAt := clock.Now()
	c.Restore(map[string]domain.PriceEntry{"Warp": {Price: 10, FetchedAt: fetchedAt}})
	clock.Advance(time.Hour)

	failing := func(context.Context) (float64, error) { return 0, errors.New("remote down") }

	_, _ = c.GetOrRefresh(ctx, "Warp", failing, maxAge)
	exec.RunAll()

	snap := c.Snapshot()
	require.Equal(t, 10.0, snap["Warp"].Price)
	require.True(t, snap["Warp"].FetchedAt.Equal(fetchedAt))
	require.False(t, c.Pending("Warp"))
	require.Zero(t, atomic.LoadInt32(&saver.calls))

	// ключ снова доступен для поиска
	_, _ = c.GetOrRefresh(ctx, "Warp", failing, maxAge)
	require.Equal(t, 1, exec.Len())
}

func TestGetOrRefresh_InvalidAndPanickingFetch_AreFailures(t *testing.T) {
	c, exec, _, _ := newTestCache()
	ctx := context.Background()

	negative := func(context.Context) (float64, error) { return -5, nil }
	_, _ = c.GetOrRefresh(ctx, "neg", negative, maxAge)

	panicking := func(context.Context) (float64, error) { panic("boom") }
	_, _ = c.GetOrRefresh(ctx, "panic", panicking, maxAge)

	exec.RunAll()

	entries, pending := c.Stats()
	require.Zero(t, entries)
	require.Zero(t, pending)
}

func TestGetOrRefresh_ZeroMaxAge_AlwaysRefreshes(t *testing.T) {
	c, exec, _, _ := newTestCache()
	ctx := context.Background()
	var calls int32

	_, _ = c.GetOrRefresh(ctx, "Warp", fetchConst(7, &calls), 0)
	exec.RunAll()

	got, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(8, &calls), 0)
	require.True(t, ok)
	require.Equal(t, 7.0, got)
	require.Equal(t, 1, exec.Len())
}

func TestGetOrRefresh_RetryInterval_Backoff(t *testing.T) {
	c, exec, clock, _ := newTestCache(WithRetryInterval(10 * time.Second))
	ctx := context.Background()
	failing := func(context.Context) (float64, error) { return 0, errors.New("remote down") }

	_, _ = c.GetOrRefresh(ctx, "Warp", failing, maxAge)
	exec.RunAll()

	clock.Advance(5 * time.Second)
	_, _ = c.GetOrRefresh(ctx, "Warp", failing, maxAge)
	require.Zero(t, exec.Len(), "retry must wait for the retry interval")

	clock.Advance(6 * time.Second)
	_, _ = c.GetOrRefresh(ctx, "Warp", failing, maxAge)
	require.Equal(t, 1, exec.Len())
}

func TestGetOrRefresh_QueueFull_ClearsPending(t *testing.T) {
	c, exec, _, _ := newTestCache()
	exec.reject = true
	var calls int32

	_, ok := c.GetOrRefresh(context.Background(), "Warp", fetchConst(1, &calls), maxAge)
	require.False(t, ok)
	require.False(t, c.Pending("Warp"))

	exec.reject = false
	_, _ = c.GetOrRefresh(context.Background(), "Warp", fetchConst(1, &calls), maxAge)
	require.Equal(t, 1, exec.Len())
}

func TestObserve_Monotonic(t *testing.T) {
	c, _, clock, saver := newTestCache()
	ctx := context.Background()
	base := clock.Now()

	require.True(t, c.Observe(ctx, "Warp", 100, base))
	require.False(t, c.Observe(ctx, "Warp", 50, base.Add(-time.Second)))
	clock.Advance(time.Second)
	require.True(t, c.Observe(ctx, "Warp", 200, base.Add(time.Second)))

	snap := c.Snapshot()
	assert.Equal(t, 200.0, snap["Warp"].Price)
	assert.True(t, snap["Warp"].FetchedAt.Equal(base.Add(time.Second)))
	assert.Equal(t, int32(2), atomic.LoadInt32(&saver.calls))
}

func TestObserve_FutureTimestamp_ClampedToNow(t *testing.T) {
	c, exec, clock, _ := newTestCache()
	ctx := context.Background()
	now := clock.Now()

	require.True(t, c.Observe(ctx, "Warp", 1, now.AddDate(100, 0, 0)))
	require.True(t, c.Snapshot()["Warp"].FetchedAt.Equal(now))

	var calls int32
	clock.Advance(maxAge + time.Millisecond)
	got, ok := c.GetOrRefresh(ctx, "Warp", fetchConst(999, &calls), maxAge)
	require.True(t, ok)
	require.Equal(t, 1.0, got)
	require.Equal(t, 1, exec.Len())

	exec.RunAll()
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Equal(t, 999.0, c.Snapshot()["Warp"].Price)
}

func TestRestore_FutureTimestamp_ClampedToNow(t *testing.T) {
	c, _, clock, _ := newTestCache()
	now := clock.Now()

	n := c.Restore(map[string]domain.PriceEntry{"Warp": {Price: 5, FetchedAt: now.Add(24 * time.Hour)}})
	require.Equal(t, 1, n)
	require.True(t, c.Snapshot()["Warp"].FetchedAt.Equal(now))

	clock.Advance(maxAge + time.Millisecond)
	_, ok := c.Fresh("Warp", maxAge)
	require.False(t, ok)
}

func TestPutAndFresh(t *testing.T) {
	c, _, clock, _ := newTestCache()

	c.Put("GROUP:1", 50)
	got, ok := c.Fresh("GROUP:1", maxAge)
	require.True(t, ok)
	require.Equal(t, 50.0, got)

	clock.Advance(maxAge + time.Second)
	_, ok = c.Fresh("GROUP:1", maxAge)
	require.False(t, ok)
}

func TestSnapshot_IsCopy(t *testing.T) {
	c, _, _, _ := newTestCache()
	c.Put("Warp", 1)

	snap := c.Snapshot()
	snap["Warp"] = domain.PriceEntry{Price: 999}

	got, ok := c.Fresh("Warp", maxAge)
	require.True(t, ok)
	require.Equal(t, 1.0, got)
}
