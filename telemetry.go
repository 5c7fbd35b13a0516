package main

import (
	"sync/atomic"
	"time"
)

type telemetryCounters struct {
	bytesSent          atomic.Uint64
	entitiesSent       atomic.Uint64
	broadcasts         atomic.Uint64
	tickDurationMillis atomic.Int64
}

type telemetrySnapshot struct {
	BytesSent    uint64 `json:"bytesSent"`
	EntitiesSent uint64 `json:"entitiesSent"`
	Broadcasts   uint64 `json:"broadcasts"`
	TickDuration int64  `json:"tickDurationMillis"`
}

func newTelemetryCounters() *telemetryCounters {
	return &telemetryCounters{}
}

func (t *telemetryCounters) RecordBroadcast(bytes, entities int) {
	if bytes < 0 {
		bytes = 0
	}
	if entities < 0 {
		entities = 0
	}
	t.bytesSent.Add(uint64(bytes))
	t.entitiesSent.Add(uint64(entities))
	t.broadcasts.Add(1)
}

func (t *telemetryCounters) RecordTickDuration(duration time.Duration) {
	t.tickDurationMillis.Store(duration.Milliseconds())
}

func (t *telemetryCounters) Snapshot() telemetrySnapshot {
	return telemetrySnapshot{
		BytesSent:    t.bytesSent.Load(),
		EntitiesSent: t.entitiesSent.Load(),
		Broadcasts:   t.broadcasts.Load(),
		TickDuration: t.tickDurationMillis.Load(),
	}
}
