package alert

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"riskwatch/internal/model"
)

// ErrQueueFull is returned when the dispatcher cannot accept more alerts
var ErrQueueFull = errors.New("alert queue full")

// ErrClosed is returned after Close
var ErrClosed = errors.New("alert dispatcher closed")

// deliverTimeout bounds a single sink delivery
const deliverTimeout = 5 * time.Second

// Sink receives alerts from the dispatcher
type Sink interface {
	Name() string
	Deliver(ctx context.Context, alert model.Alert) error
}

// Dispatcher is a best-effort async notifier. Notify only enqueues; a single
// worker fans each alert out to every sink and logs sink failures.
type Dispatcher struct {
	sinks []Sink
	queue chan model.Alert

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher starts the worker. queueSize <= 0 selects 64.
func NewDispatcher(queueSize int, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan model.Alert, queueSize),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify enqueues without blocking
func (d *Dispatcher) Notify(_ context.Context, alert model.Alert) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- alert:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting alerts and waits until queued ones are delivered
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for a := range d.queue {
		for _, s := range d.sinks {
			d.deliver(s, a)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, a model.Alert) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Alert] Sink %s panicked: %v", s.Name(), r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	if err := s.Deliver(ctx, a); err != nil {
		log.Printf("[Alert] Sink %s failed for alert %s: %v", s.Name(), a.ID, err)
	}
}
