package worker

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrQueueFull — очередь заполнена, задача не принята.
	ErrQueueFull = errors.New("worker queue is full")
	// ErrClosed — пул остановлен.
	ErrClosed = errors.New("worker pool is closed")
)

// Task — фоновая задача; получает базовый контекст пула.
type Task func(ctx context.Context)

// Pool — фиксированное число воркеров над ограниченной очередью.
// Submit никогда не блокирует вызывающего.
type Pool struct {
	tasks chan Task

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPool — запускает workers горутин; queueSize — ёмкость очереди.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.loop()
	}
	return p
}

// Submit — поставить задачу в очередь без ожидания.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close — перестаёт принимать задачи, дорабатывает очередь и ждёт воркеров.
// Если ctx истёк раньше — отменяет базовый контекст задач.
func (p *Pool) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for task := range p.tasks {
		task(p.ctx)
	}
}
