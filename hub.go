package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"star-rush/server/internal/persist"
	"star-rush/server/internal/protocol"
	"star-rush/server/internal/sim"
	"star-rush/server/internal/world"
	"star-rush/server/logging"
)

const (
	writeWait = 10 * time.Second

	// summaryInterval is how many ticks pass between compact aggregate
	// summaries; sweepInterval between stale-connection sweeps.
	summaryInterval = 6
	sweepInterval   = 60
)

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex

	// lastPing is unix millis of the most recent ping from this client.
	lastPing atomic.Int64
}

func (s *subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(data)
}

// writeLocked writes one frame. Callers must hold s.mu.
func (s *subscriber) writeLocked(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub owns the authoritative world and every live subscriber. All world
// access happens under the hub mutex; the tick loop and the connection
// handlers never touch the world concurrently.
type Hub struct {
	mu          sync.Mutex
	world       *world.World
	subscribers map[string]*subscriber
	pending     []world.Command
	nextID      atomic.Uint64

	publisher logging.Publisher
	telemetry *telemetryCounters
	store     persist.Store
	recorder  *persist.Recorder
}

func newHub(cfg world.Config, publisher logging.Publisher, telemetry *telemetryCounters, store persist.Store, recorder *persist.Recorder) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	if telemetry == nil {
		telemetry = newTelemetryCounters()
	}
	return &Hub{
		world:       world.New(cfg, world.Deps{Publisher: publisher}),
		subscribers: make(map[string]*subscriber),
		publisher:   publisher,
		telemetry:   telemetry,
		store:       store,
		recorder:    recorder,
	}
}

// Connect spawns a ship for a fresh websocket connection and sends the
// one-shot welcome snapshot before the per-tick stream begins. The
// subscriber's write mutex stays held from registration through the last
// welcome frame, so a concurrent tick broadcast cannot deliver ahead of
// currentPlayers.
func (h *Hub) Connect(conn *websocket.Conn) (string, error) {
	shipID := fmt.Sprintf("ship-%d", h.nextID.Add(1))
	sub := &subscriber{conn: conn}
	sub.mu.Lock()

	h.mu.Lock()
	ship := h.world.AddShip(shipID)
	h.subscribers[shipID] = sub
	players := h.world.ShipsSnapshot()
	stars := h.world.StarsSnapshot()
	red, blue := h.world.Scores()
	tick := h.world.CurrentTick()
	h.mu.Unlock()

	welcome := []any{
		protocol.CurrentPlayersMessage{Type: protocol.TypeCurrentPlayers, Players: players, Timestamp: tick},
		protocol.StarsLocationMessage{Type: protocol.TypeStarsLocation, Stars: stars},
		protocol.UpdateScoreMessage{Type: protocol.TypeUpdateScore, Red: red, Blue: blue},
	}
	for _, msg := range welcome {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("failed to marshal welcome %T for %s: %v", msg, shipID, err)
			continue
		}
		if err := sub.writeLocked(data); err != nil {
			sub.mu.Unlock()
			h.Disconnect(shipID, "welcome write failed")
			return "", err
		}
	}
	sub.mu.Unlock()

	h.broadcastExcept(shipID, protocol.NewPlayerMessage{Type: protocol.TypeNewPlayer, Player: ship})
	return shipID, nil
}

// Disconnect removes the ship, closes the connection, and notifies peers.
func (h *Hub) Disconnect(shipID, reason string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[shipID]
	if subOK {
		delete(h.subscribers, shipID)
	}
	removed := h.world.RemoveShip(shipID, reason)
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	if removed {
		h.broadcastExcept(shipID, protocol.PlayerDisconnectedMessage{Type: protocol.TypePlayerDisconnected, ID: shipID})
	}
}

// QueueInput buffers a wholesale input replacement for the next tick.
func (h *Hub) QueueInput(shipID string, state sim.Input) {
	h.enqueue(world.Command{
		ShipID:   shipID,
		Type:     world.CommandSetInput,
		IssuedAt: time.Now(),
		Input:    &world.InputCommand{State: state},
	})
}

// QueueName buffers a name proposal and warms the profile for it. The
// profile load runs off the tick loop and its failure only costs a log
// line.
func (h *Hub) QueueName(shipID, name string) {
	if name != "" && h.store != nil {
		go func() {
			if _, err := h.store.LoadOrCreateProfile(name); err != nil {
				log.Printf("profile load for %q failed: %v", name, err)
			}
		}()
	}
	h.enqueue(world.Command{
		ShipID:   shipID,
		Type:     world.CommandSetName,
		IssuedAt: time.Now(),
		Name:     &world.NameCommand{Name: name},
	})
}

// QueueClass buffers a class selection for the next tick.
func (h *Hub) QueueClass(shipID, classKey string) {
	h.enqueue(world.Command{
		ShipID:   shipID,
		Type:     world.CommandChooseClass,
		IssuedAt: time.Now(),
		Class:    &world.ClassCommand{Key: classKey},
	})
}

func (h *Hub) enqueue(command world.Command) {
	h.mu.Lock()
	h.pending = append(h.pending, command)
	h.mu.Unlock()
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(sim.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(sim.TickRate)
			}
			last = now
			h.tick(now, dt)
		}
	}
}

// tick advances the world once and broadcasts what changed.
func (h *Hub) tick(now time.Time, dt float64) {
	started := time.Now()

	h.mu.Lock()
	commands := h.pending
	h.pending = nil
	result := h.world.Step(now, dt, commands)
	tick := h.world.CurrentTick()

	var stale []string
	if tick%sweepInterval == 0 {
		active := make(map[string]struct{}, len(h.subscribers))
		for id := range h.subscribers {
			active[id] = struct{}{}
		}
		stale = h.world.RemoveStale(active)
	}

	players := h.world.ShipsSnapshot()
	red, blue := h.world.Scores()
	var stars []sim.Star
	if result.StarsChanged {
		stars = h.world.StarsSnapshot()
	}
	var summary *protocol.GameSummaryMessage
	if tick%summaryInterval == 0 {
		summary = &protocol.GameSummaryMessage{
			Type:      protocol.TypeGameSummary,
			Red:       red,
			Blue:      blue,
			Ships:     len(players),
			Stars:     h.world.StarsSnapshot(),
			Timestamp: tick,
		}
	}
	h.mu.Unlock()

	for _, id := range stale {
		h.broadcast(protocol.PlayerDisconnectedMessage{Type: protocol.TypePlayerDisconnected, ID: id})
	}

	h.broadcastEntities(protocol.PlayerUpdatesMessage{
		Type:      protocol.TypePlayerUpdates,
		Players:   players,
		Timestamp: tick,
	}, len(players))

	if result.StarsChanged {
		h.broadcast(protocol.StarsLocationMessage{Type: protocol.TypeStarsLocation, Stars: stars})
		h.broadcast(protocol.UpdateScoreMessage{Type: protocol.TypeUpdateScore, Red: red, Blue: blue})
	}
	if summary != nil {
		h.broadcast(*summary)
	}

	for _, pickup := range result.Pickups {
		h.recorder.RecordPickup(pickup.ShipName, persist.PickupStats{
			StarID: pickup.StarID,
			Team:   string(pickup.Team),
			XP:     pickup.XP,
		})
		h.recorder.UpdateProfile(pickup.ShipName, pickup.XP, sim.MaxXP)
	}

	h.telemetry.RecordTickDuration(time.Since(started))
}

// notePing records a ping arrival for the diagnostics surface.
func (h *Hub) notePing(shipID string) {
	h.mu.Lock()
	sub, ok := h.subscribers[shipID]
	h.mu.Unlock()
	if ok {
		sub.lastPing.Store(time.Now().UnixMilli())
	}
}

// sendTo delivers one message to a single subscriber.
func (h *Hub) sendTo(shipID string, msg any) error {
	h.mu.Lock()
	sub, ok := h.subscribers[shipID]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("no subscriber for %s", shipID)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", msg, err)
	}
	return sub.send(data)
}

func (h *Hub) broadcast(msg any) {
	h.broadcastEntities(msg, 0)
}

func (h *Hub) broadcastEntities(msg any, entities int) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal %T: %v", msg, err)
		return
	}
	h.sendToAll(data, "", entities)
}

func (h *Hub) broadcastExcept(exceptID string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal %T: %v", msg, err)
		return
	}
	h.sendToAll(data, exceptID, 0)
}

func (h *Hub) sendToAll(data []byte, exceptID string, entities int) {
	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		if id == exceptID {
			continue
		}
		subs[id] = sub
	}
	h.mu.Unlock()

	var failed []string
	for id, sub := range subs {
		if err := sub.send(data); err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			failed = append(failed, id)
		}
	}
	h.telemetry.RecordBroadcast(len(data)*len(subs), entities*len(subs))

	for _, id := range failed {
		h.Disconnect(id, "write failed")
	}
}

type diagnosticsPayload struct {
	Status      string                    `json:"status"`
	ServerTime  int64                     `json:"serverTime"`
	TickRate    int                       `json:"tickRate"`
	Tick        uint64                    `json:"tick"`
	Ships       int                       `json:"ships"`
	Red         int                       `json:"red"`
	Blue        int                       `json:"blue"`
	Connections map[string]shipDiagnostic `json:"connections"`
	Telemetry   telemetrySnapshot         `json:"telemetry"`
}

type shipDiagnostic struct {
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	LastInput time.Time `json:"lastInput"`
	LastPing  int64     `json:"lastPing,omitempty"`
}

// DiagnosticsSnapshot exposes loop health for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() diagnosticsPayload {
	h.mu.Lock()
	tick := h.world.CurrentTick()
	red, blue := h.world.Scores()
	liveness := h.world.Liveness()
	pings := make(map[string]int64, len(h.subscribers))
	for id, sub := range h.subscribers {
		pings[id] = sub.lastPing.Load()
	}
	h.mu.Unlock()

	connections := make(map[string]shipDiagnostic, len(liveness))
	for id, live := range liveness {
		connections[id] = shipDiagnostic{
			Name:      live.Name,
			Team:      live.Team,
			LastInput: live.LastInput,
			LastPing:  pings[id],
		}
	}

	return diagnosticsPayload{
		Status:      "ok",
		ServerTime:  time.Now().UnixMilli(),
		TickRate:    sim.TickRate,
		Tick:        tick,
		Ships:       len(liveness),
		Red:         red,
		Blue:        blue,
		Connections: connections,
		Telemetry:   h.telemetry.Snapshot(),
	}
}
