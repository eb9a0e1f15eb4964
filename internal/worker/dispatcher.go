package worker

import (
	"container/heap"
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// ErrDispatcherStopped is returned when publishing after Stop.
var ErrDispatcherStopped = errors.New("event dispatcher stopped")

// Handler applies events once they are due.
type Handler interface {
	HandleEvent(ctx context.Context, event model.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event model.Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event model.Event) error {
	return f(ctx, event)
}

type eventKey struct {
	orderID string
	kind    model.EventKind
}

// Dispatcher delivers delayed events to a handler through a fixed pool of
// workers. Each worker keeps its events in due-time order, so a short delay
// never waits behind a longer one. Events of one order and kind are applied
// in publish order.
type Dispatcher struct {
	workers int
	logger  *slog.Logger
	now     func() time.Time

	shards []chan model.Event
	done   chan struct{}

	mu          sync.Mutex
	generations map[eventKey]uint64
	cancel      context.CancelFunc
	started     bool
	stopped     bool
	wg          sync.WaitGroup
}

// NewDispatcher constructs a dispatcher with the given pool size and per-worker buffer.
func NewDispatcher(workers, buffer int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}

	shards := make([]chan model.Event, workers)
	for i := range shards {
		shards[i] = make(chan model.Event, buffer)
	}

	return &Dispatcher{
		workers:     workers,
		logger:      logger,
		now:         time.Now,
		shards:      shards,
		done:        make(chan struct{}),
		generations: make(map[eventKey]uint64),
	}
}

// Start launches the workers. Events published before Start wait in the buffers.
func (d *Dispatcher) Start(ctx context.Context, handler Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrDispatcherStopped
	}
	if d.started {
		return nil
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for _, shard := range d.shards {
		d.wg.Add(1)
		go d.worker(runCtx, shard, handler)
	}
	return nil
}

// Stop drops every pending event and waits for the workers to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.done)
		if d.cancel != nil {
			d.cancel()
		}
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Schedule publishes an event of the given kind due after delay.
func (d *Dispatcher) Schedule(ctx context.Context, kind model.EventKind, orderID string, delay time.Duration) error {
	return d.Publish(ctx, model.Event{Kind: kind, OrderID: orderID, DueAt: d.now().Add(delay)})
}

// Publish enqueues the event stamped with the current generation of its
// (order, kind) pair. It blocks while the worker buffer is full.
func (d *Dispatcher) Publish(ctx context.Context, event model.Event) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrDispatcherStopped
	}
	event.Generation = d.generations[eventKey{orderID: event.OrderID, kind: event.Kind}]
	d.mu.Unlock()

	select {
	case d.shardFor(event.OrderID) <- event:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel invalidates every pending event of the given kind for the order.
func (d *Dispatcher) Cancel(orderID string, kind model.EventKind) {
	d.mu.Lock()
	d.generations[eventKey{orderID: orderID, kind: kind}]++
	d.mu.Unlock()
}

func (d *Dispatcher) shardFor(orderID string) chan model.Event {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return d.shards[h.Sum32()%uint32(len(d.shards))]
}

func (d *Dispatcher) current(event model.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generations[eventKey{orderID: event.OrderID, kind: event.Kind}] == event.Generation
}

func (d *Dispatcher) worker(ctx context.Context, inbox <-chan model.Event, handler Handler) {
	defer d.wg.Done()

	var (
		pending = &eventQueue{}
		lastDue = make(map[eventKey]time.Time)
		seq     uint64
		timer   *time.Timer
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var fire <-chan time.Time
		if pending.Len() > 0 {
			delay := pending.items[0].event.DueAt.Sub(d.now())
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return
		case event := <-inbox:
			// same order and kind never overtake each other
			key := eventKey{orderID: event.OrderID, kind: event.Kind}
			if last, ok := lastDue[key]; ok && event.DueAt.Before(last) {
				event.DueAt = last
			}
			lastDue[key] = event.DueAt
			seq++
			heap.Push(pending, queued{event: event, seq: seq})
		case <-fire:
			now := d.now()
			for pending.Len() > 0 && !pending.items[0].event.DueAt.After(now) {
				item := heap.Pop(pending).(queued)
				key := eventKey{orderID: item.event.OrderID, kind: item.event.Kind}
				if lastDue[key].Equal(item.event.DueAt) {
					delete(lastDue, key)
				}
				d.handle(ctx, item.event, handler)
				if ctx.Err() != nil {
					return
				}
			}
		}
	}
}

type queued struct {
	event model.Event
	seq   uint64
}

// eventQueue orders events by due time, then by arrival.
type eventQueue struct {
	items []queued
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.event.DueAt.Equal(b.event.DueAt) {
		return a.seq < b.seq
	}
	return a.event.DueAt.Before(b.event.DueAt)
}

func (q *eventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *eventQueue) Push(x any) { q.items = append(q.items, x.(queued)) }

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (d *Dispatcher) handle(ctx context.Context, event model.Event, handler Handler) {
	if !d.current(event) {
		d.logger.Debug("stale event dropped",
			slog.String("kind", string(event.Kind)),
			slog.String("order", event.OrderID),
		)
		return
	}

	if err := handler.HandleEvent(ctx, event); err != nil {
		d.logger.Error("event handling failed",
			slog.String("kind", string(event.Kind)),
			slog.String("order", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
