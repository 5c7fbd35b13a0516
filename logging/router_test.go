package logging

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) Close(context.Context) error { return nil }

func (s *captureSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestRouterDeliversToSinksAfterClose(t *testing.T) {
	sink := &captureSink{}
	router := NewRouter(Config{BufferSize: 8}, []NamedSink{{Name: "capture", Sink: sink}})

	router.Publish(context.Background(), Event{Type: "gameplay.star_pickup", Severity: SeverityInfo})
	router.Publish(context.Background(), Event{Type: "lifecycle.ship_joined", Severity: SeverityInfo})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := sink.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 delivered events, got %d", len(events))
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected router to stamp event time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	sink := &captureSink{}
	router := NewRouter(Config{BufferSize: 8, MinimumSeverity: SeverityWarn}, []NamedSink{{Name: "capture", Sink: sink}})

	router.Publish(context.Background(), Event{Type: "lifecycle.name_ignored", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "transport.write_failed", Severity: SeverityError})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := sink.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected severity filter to keep one event, got %d", len(events))
	}
	if events[0].Severity != SeverityError {
		t.Fatalf("wrong event survived the filter: %+v", events[0])
	}
}

func TestRouterIgnoresPublishAfterClose(t *testing.T) {
	sink := &captureSink{}
	router := NewRouter(DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	router.Publish(context.Background(), Event{Type: "gameplay.star_pickup", Severity: SeverityInfo})
	if got := len(sink.snapshot()); got != 0 {
		t.Fatalf("expected no delivery after close, got %d", got)
	}
}
