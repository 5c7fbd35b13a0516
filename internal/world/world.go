package world

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"star-rush/server/internal/sim"
	"star-rush/server/logging"
	"star-rush/server/logging/gameplay"
	"star-rush/server/logging/lifecycle"
)

// shipSpawnMargin keeps fresh ships away from the border so they never spawn
// already pinned against a wall.
const shipSpawnMargin = sim.StarSpawnMargin

// Deps bundles runtime dependencies required to construct a World.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
}

// World owns the authoritative simulation state: the ship store, the star
// set, and the team scores. It is not safe for concurrent use; the hub
// serializes access under its own lock.
type World struct {
	config    Config
	seed      string
	publisher logging.Publisher
	rng       *rand.Rand

	ships map[string]*ShipState
	stars []*starState

	scoreRed  int
	scoreBlue int

	currentTick uint64
}

// StepResult reports what one tick changed beyond ship kinematics.
type StepResult struct {
	Pickups      []PickupEvent
	StarsChanged bool
}

// PickupEvent records one successful star collection.
type PickupEvent struct {
	ShipID   string
	ShipName string
	StarID   int
	Team     sim.Team
	XP       float64
}

// New constructs a world with seeded RNG and the boot-time star set.
func New(cfg Config, deps Deps) *World {
	normalized := cfg.normalized()

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}

	w := &World{
		config:    normalized,
		seed:      normalized.Seed,
		publisher: publisher,
		rng:       factory(normalized.Seed, "world"),
		ships:     make(map[string]*ShipState),
		stars:     make([]*starState, 0, normalized.StarCount),
	}

	for i := 0; i < normalized.StarCount; i++ {
		x, y := randomInterior(w.rng, sim.StarSpawnMargin)
		w.stars = append(w.stars, &starState{Star: sim.Star{ID: i, X: x, Y: y}})
	}

	return w
}

// Config returns the normalized configuration captured at construction.
func (w *World) Config() Config {
	return w.config
}

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 {
	return w.currentTick
}

// AddShip spawns a ship for a new connection: random interior position,
// random team, default class, full hp. Exactly one ship exists per id; a
// duplicate id returns the existing ship unchanged.
func (w *World) AddShip(id string) sim.Ship {
	if existing, ok := w.ships[id]; ok {
		return existing.Snapshot()
	}

	stats := sim.Stats(sim.DefaultClass)
	x, y := randomInterior(w.rng, shipSpawnMargin)
	team := sim.TeamRed
	if w.rng.Intn(2) == 1 {
		team = sim.TeamBlue
	}

	ship := &ShipState{
		Ship: sim.Ship{
			ID:         id,
			Kinematics: sim.Kinematics{X: x, Y: y},
			Team:       team,
			HP:         stats.MaxHP,
			MaxHP:      stats.MaxHP,
			XP:         0,
			MaxXP:      sim.MaxXP,
			Class:      sim.DefaultClass,
		},
	}
	w.ships[id] = ship

	lifecycle.ShipJoined(context.Background(), w.publisher, w.currentTick,
		logging.EntityRef{ID: id, Kind: logging.EntityKindShip},
		lifecycle.ShipJoinedPayload{SpawnX: x, SpawnY: y, Team: string(team)})

	return ship.Snapshot()
}

// Ship returns the snapshot for one id.
func (w *World) Ship(id string) (sim.Ship, bool) {
	state, ok := w.ships[id]
	if !ok {
		return sim.Ship{}, false
	}
	return state.Snapshot(), true
}

// ShipCount returns the number of live ships.
func (w *World) ShipCount() int {
	return len(w.ships)
}

// RemoveShip detaches and discards a ship. Removing the last ship resets
// both team scores so a finished match never leaks into the next one.
func (w *World) RemoveShip(id, reason string) bool {
	if _, ok := w.ships[id]; !ok {
		return false
	}
	delete(w.ships, id)

	lifecycle.ShipDisconnected(context.Background(), w.publisher, w.currentTick,
		logging.EntityRef{ID: id, Kind: logging.EntityKindShip},
		lifecycle.ShipDisconnectedPayload{Reason: reason})

	w.resetScoresIfEmpty()
	return true
}

// RemoveStale removes every ship whose id is missing from the live
// connection set and returns the removed ids. The hub runs this sweep
// periodically to catch sockets that died without a close event.
func (w *World) RemoveStale(active map[string]struct{}) []string {
	var removed []string
	for id := range w.ships {
		if _, ok := active[id]; ok {
			continue
		}
		delete(w.ships, id)
		removed = append(removed, id)

		lifecycle.ShipDisconnected(context.Background(), w.publisher, w.currentTick,
			logging.EntityRef{ID: id, Kind: logging.EntityKindShip},
			lifecycle.ShipDisconnectedPayload{Reason: "stale"})
	}
	if len(removed) > 0 {
		w.resetScoresIfEmpty()
	}
	return removed
}

// ShipLiveness reports when a ship last sent input, for the diagnostics
// surface.
type ShipLiveness struct {
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	LastInput time.Time `json:"lastInput"`
}

// Liveness copies per-ship input recency keyed by connection id.
func (w *World) Liveness() map[string]ShipLiveness {
	out := make(map[string]ShipLiveness, len(w.ships))
	for id, state := range w.ships {
		out[id] = ShipLiveness{
			Name:      state.Name,
			Team:      string(state.Team),
			LastInput: state.lastInput,
		}
	}
	return out
}

// Scores returns the current team totals.
func (w *World) Scores() (red, blue int) {
	return w.scoreRed, w.scoreBlue
}

// ShipsSnapshot copies every ship keyed by connection id.
func (w *World) ShipsSnapshot() map[string]sim.Ship {
	ships := make(map[string]sim.Ship, len(w.ships))
	for id, state := range w.ships {
		ships[id] = state.Snapshot()
	}
	return ships
}

// StarsSnapshot copies the star positions in id order.
func (w *World) StarsSnapshot() []sim.Star {
	stars := make([]sim.Star, len(w.stars))
	for i, star := range w.stars {
		stars[i] = star.Star
	}
	return stars
}

// Step advances the world by one tick: commands apply first, then every
// ship moves, then pickups resolve against the fresh positions.
func (w *World) Step(now time.Time, dt float64, commands []Command) StepResult {
	w.currentTick++

	for _, command := range commands {
		w.applyCommand(command, now)
	}

	for _, state := range w.ships {
		state.Kinematics = sim.Step(state.Kinematics, state.input, sim.Stats(state.Class), dt)
	}

	return w.resolvePickups()
}

func (w *World) applyCommand(command Command, now time.Time) {
	state, ok := w.ships[command.ShipID]
	if !ok {
		return
	}
	actor := logging.EntityRef{ID: command.ShipID, Kind: logging.EntityKindShip}

	switch command.Type {
	case CommandSetInput:
		if command.Input == nil {
			return
		}
		at := command.IssuedAt
		if at.IsZero() {
			at = now
		}
		state.setInput(command.Input.State, at)

	case CommandSetName:
		if command.Name == nil {
			return
		}
		if state.nameSet {
			if command.Name.Name != state.Name {
				lifecycle.NameIgnored(context.Background(), w.publisher, w.currentTick, actor,
					lifecycle.NamePayload{Name: command.Name.Name})
			}
			return
		}
		state.Name = command.Name.Name
		state.nameSet = true
		lifecycle.NameSet(context.Background(), w.publisher, w.currentTick, actor,
			lifecycle.NamePayload{Name: state.Name})

	case CommandChooseClass:
		if command.Class == nil {
			return
		}
		key, ok := sim.ParseClass(command.Class.Key)
		if !ok {
			key = sim.DefaultClass
		}
		state.setClass(key)
		lifecycle.ClassChanged(context.Background(), w.publisher, w.currentTick, actor,
			lifecycle.ClassChangedPayload{Class: string(key)})
	}
}

// resolvePickups scans every (ship, star) pair. The first ship processed
// wins a contested star; its trigger write blocks the rest of the tick via
// the cooldown gate.
func (w *World) resolvePickups() StepResult {
	var result StepResult

	for _, state := range w.ships {
		for _, star := range w.stars {
			dx := state.X - star.X
			dy := state.Y - star.Y
			if dx*dx+dy*dy > sim.PickupRadius*sim.PickupRadius {
				continue
			}
			if !star.collectible(w.currentTick) {
				continue
			}

			switch state.Team {
			case sim.TeamBlue:
				w.scoreBlue += sim.PickupScore
			default:
				w.scoreRed += sim.PickupScore
			}
			state.gainXP(sim.PickupXP)

			starID := star.ID
			star.trigger(w.currentTick, w.rng)
			result.StarsChanged = true
			result.Pickups = append(result.Pickups, PickupEvent{
				ShipID:   state.ID,
				ShipName: state.Name,
				StarID:   starID,
				Team:     state.Team,
				XP:       state.XP,
			})

			gameplay.StarPickup(context.Background(), w.publisher, w.currentTick,
				logging.EntityRef{ID: state.ID, Kind: logging.EntityKindShip},
				logging.EntityRef{ID: strconv.Itoa(starID), Kind: logging.EntityKindStar},
				gameplay.StarPickupPayload{
					StarID: starID,
					Team:   string(state.Team),
					Score:  sim.PickupScore,
					XP:     state.XP,
				})
		}
	}

	return result
}

func (w *World) resetScoresIfEmpty() {
	if len(w.ships) > 0 {
		return
	}
	if w.scoreRed == 0 && w.scoreBlue == 0 {
		return
	}
	gameplay.ScoreReset(context.Background(), w.publisher, w.currentTick,
		gameplay.ScoreResetPayload{Red: w.scoreRed, Blue: w.scoreBlue})
	w.scoreRed = 0
	w.scoreBlue = 0
}
