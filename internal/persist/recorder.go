package persist

import (
	"context"
	"sync"
	"sync/atomic"

	"star-rush/server/logging"
)

const (
	// EventWriteFailed is emitted when a store operation fails; gameplay
	// is never affected.
	EventWriteFailed logging.EventType = "persistence.write_failed"

	defaultQueueSize = 256
)

type job struct {
	kind   string
	name   string
	xp     float64
	maxXP  float64
	pickup PickupStats
}

// Recorder decouples the tick loop from store latency: operations are
// queued and executed on a single background goroutine. A full queue drops
// the job rather than blocking the caller.
//
// The mutex serializes enqueue against Close: the queue channel is only
// closed while no sender holds the lock, so a send can never hit a closed
// channel.
type Recorder struct {
	store     Store
	publisher logging.Publisher
	queue     chan job
	done      chan struct{}

	mu     sync.Mutex
	closed bool

	dropped atomic.Uint64
}

// NewRecorder starts the background worker. A nil store yields an inert
// recorder whose methods do nothing.
func NewRecorder(store Store, publisher logging.Publisher) *Recorder {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	r := &Recorder{
		store:     store,
		publisher: publisher,
		queue:     make(chan job, defaultQueueSize),
		done:      make(chan struct{}),
	}
	go r.run()
	return r
}

// UpdateProfile queues a profile progress write for a named ship.
func (r *Recorder) UpdateProfile(name string, xp, maxXP float64) {
	r.enqueue(job{kind: "update", name: name, xp: xp, maxXP: maxXP})
}

// RecordPickup queues a pickup log entry for a named ship.
func (r *Recorder) RecordPickup(name string, stats PickupStats) {
	r.enqueue(job{kind: "pickup", name: name, pickup: stats})
}

// Dropped reports how many jobs the full queue discarded.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close stops accepting jobs and waits for the queue to drain. Safe to
// call more than once and concurrently with enqueues.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	<-r.done
}

func (r *Recorder) enqueue(j job) {
	if r == nil || r.store == nil {
		return
	}
	// Unnamed ships have no profile to attach progress to.
	if j.name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- j:
	default:
		r.dropped.Add(1)
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for j := range r.queue {
		var err error
		switch j.kind {
		case "update":
			err = r.store.UpdateProfile(j.name, j.xp, j.maxXP)
		case "pickup":
			err = r.store.RecordPickup(j.name, j.pickup)
		}
		if err != nil {
			r.publisher.Publish(context.Background(), logging.Event{
				Type:     EventWriteFailed,
				Actor:    logging.EntityRef{ID: j.name, Kind: logging.EntityKindShip},
				Severity: logging.SeverityWarn,
				Category: logging.CategorySystem,
				Extra:    map[string]any{"op": j.kind, "error": err.Error()},
			})
		}
	}
}
