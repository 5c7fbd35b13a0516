package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Sink receives events the router decided to keep.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans events out to its sinks from a single dispatch goroutine so
// publishers never block on sink I/O.
type Router struct {
	queue       chan Event
	sinks       []NamedSink
	fallback    *log.Logger
	minSeverity Severity
	cancel      context.CancelFunc
	done        chan struct{}
	closed      atomic.Bool
	closeOnce   sync.Once

	eventsTotal  atomic.Uint64
	droppedTotal atomic.Uint64
}

type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

func NewRouter(cfg Config, sinks []NamedSink) *Router {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 512
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		queue:       make(chan Event, bufferSize),
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
		minSeverity: cfg.MinimumSeverity,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	for _, named := range sinks {
		if named.Sink == nil {
			continue
		}
		r.sinks = append(r.sinks, named)
	}

	go r.dispatch(ctx)
	return r
}

// Publish enqueues an event without blocking; events beyond the buffer are
// dropped and counted.
func (r *Router) Publish(_ context.Context, event Event) {
	if r == nil || r.closed.Load() {
		return
	}
	if event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	select {
	case r.queue <- event:
		r.eventsTotal.Add(1)
	default:
		r.droppedTotal.Add(1)
	}
}

func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal:  r.eventsTotal.Load(),
		DroppedTotal: r.droppedTotal.Load(),
	}
}

// Close stops accepting events, drains the queue, and closes every sink.
func (r *Router) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		r.cancel()
		select {
		case <-r.done:
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
		for _, named := range r.sinks {
			if closeErr := named.Sink.Close(ctx); closeErr != nil && err == nil {
				err = closeErr
			}
		}
	})
	return err
}

func (r *Router) dispatch(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case event := <-r.queue:
			r.forward(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-r.queue:
					r.forward(event)
				default:
					return
				}
			}
		}
	}
}

func (r *Router) forward(event Event) {
	for _, named := range r.sinks {
		if err := named.Sink.Write(event); err != nil {
			r.fallback.Printf("sink %s rejected event %s: %v", named.Name, event.Type, err)
		}
	}
}
