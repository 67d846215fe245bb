package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"heroes-marathon-bot/internal/domain"
)

// Handler processes one event. RegistrationService implements it.
type Handler interface {
	Handle(ctx context.Context, ev domain.Event) error
}

// Dispatcher fans events out to a bounded number of goroutines while keeping
// the events of a single chat strictly in arrival order.
type Dispatcher struct {
	handler Handler
	log     *zap.Logger
	sem     chan struct{}

	mu     sync.Mutex
	queues map[int64][]domain.Event // a present key means a drain goroutine owns the chat
	wg     sync.WaitGroup
}

func NewDispatcher(h Handler, workers int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		handler: h,
		log:     log,
		sem:     make(chan struct{}, workers),
		queues:  make(map[int64][]domain.Event),
	}
}

// Submit enqueues ev behind any pending events of the same chat. It never blocks on handling.
func (d *Dispatcher) Submit(ctx context.Context, ev domain.Event) {
	d.mu.Lock()
	q, running := d.queues[ev.ChatID]
	d.queues[ev.ChatID] = append(q, ev)
	d.mu.Unlock()

	if running {
		return
	}

	d.wg.Add(1)
	go d.drain(context.WithoutCancel(ctx), ev.ChatID)
}

func (d *Dispatcher) drain(ctx context.Context, chatID int64) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		q := d.queues[chatID]
		if len(q) == 0 {
			delete(d.queues, chatID)
			d.mu.Unlock()
			return
		}
		ev := q[0]
		d.queues[chatID] = q[1:]
		d.mu.Unlock()

		d.sem <- struct{}{}
		err := d.handler.Handle(ctx, ev)
		<-d.sem

		if err != nil {
			d.log.Error("handle event failed",
				zap.Int64("chat_id", ev.ChatID),
				zap.Stringer("kind", ev.Kind),
				zap.Error(err),
			)
		}
	}
}

// Wait blocks until every submitted event has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
