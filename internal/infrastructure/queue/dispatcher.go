package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/todoapp/todos-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the todo id, so the entries of one todo are recorded
// in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
	depth   prometheus.Gauge
	latency prometheus.Observer

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDepthGauge reports the number of queued entries on g.
func WithDepthGauge(g prometheus.Gauge) Option {
	return func(d *Dispatcher) { d.depth = g }
}

// WithDurationObserver reports how long each entry took to record.
func WithDurationObserver(o prometheus.Observer) Option {
	return func(d *Dispatcher) { d.latency = o }
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger, opts ...Option) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for _, opt := range opts {
		opt(d)
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Stop has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its todo. It never
// blocks: when the worker's buffer is full the entry is dropped and logged.
func (d *Dispatcher) Enqueue(input ports.ActivityInput) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if d.depth != nil {
		d.depth.Inc()
	}
	select {
	case d.workers[d.shardIndex(input.TodoID)] <- input:
	default:
		if d.depth != nil {
			d.depth.Dec()
		}
		d.log.Warn().
			Str("todo_id", input.TodoID).
			Str("action", input.Action).
			Msg("activity queue full, entry dropped")
	}
}

// Stop rejects new entries, lets workers drain what is queued and waits for
// them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a todo id deterministically to a worker index.
func (d *Dispatcher) shardIndex(todoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(todoID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if d.depth != nil {
				d.depth.Dec()
			}
			start := time.Now()
			err := d.service.Process(ctx, input)
			if d.latency != nil {
				d.latency.Observe(time.Since(start).Seconds())
			}
			if err != nil {
				d.log.Error().Err(err).
					Str("todo_id", input.TodoID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
