package service

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"unlock_bot/internal/models"
)

const maxBatch = 100

// Sink persists a batch of audit events.
type Sink interface {
	Write(ctx context.Context, events []models.AuditEvent) error
}

// Journal буферизует события и пишет их в фоне, чтобы обработчики
// кнопок не ждали диск/сеть.
type Journal struct {
	sink Sink
	log  *zap.Logger
	ch   chan models.AuditEvent

	dropped atomic.Int64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewJournal(sink Sink, log *zap.Logger, size int) *Journal {
	if size <= 0 {
		size = 1024
	}
	return &Journal{
		sink: sink,
		log:  log.Named("audit"),
		ch:   make(chan models.AuditEvent, size),
	}
}

// Record enqueues e; when the buffer is full the event is dropped.
func (j *Journal) Record(e models.AuditEvent) {
	select {
	case j.ch <- e:
	default:
		if n := j.dropped.Add(1); n == 1 || n%100 == 0 {
			j.log.Warn("audit buffer full, events dropped", zap.Int64("dropped", n))
		}
	}
}

func (j *Journal) Dropped() int64 { return j.dropped.Load() }

func (j *Journal) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx)
	}()
}

// Stop flushes what is already buffered and waits for the worker.
func (j *Journal) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	j.wg.Wait()
}

func (j *Journal) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for batch := j.drain(nil); len(batch) > 0; batch = j.drain(nil) {
				j.flush(context.Background(), batch)
			}
			return
		case e := <-j.ch:
			j.flush(ctx, j.drain([]models.AuditEvent{e}))
		}
	}
}

// drain забирает всё, что уже лежит в канале, не блокируясь.
func (j *Journal) drain(batch []models.AuditEvent) []models.AuditEvent {
	for len(batch) < maxBatch {
		select {
		case e := <-j.ch:
			batch = append(batch, e)
		default:
			return batch
		}
	}
	return batch
}

func (j *Journal) flush(ctx context.Context, batch []models.AuditEvent) {
	if len(batch) == 0 {
		return
	}
	if err := j.sink.Write(ctx, batch); err != nil {
		j.log.Error("audit write failed", zap.Int("events", len(batch)), zap.Error(err))
	}
}
