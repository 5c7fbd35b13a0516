package world

import (
	"math/rand"

	"star-rush/server/internal/sim"
)

// starState tracks one collectible star. Stars are created once at boot and
// only ever relocate; the trigger tick gates re-collection.
type starState struct {
	sim.Star
	lastTrigger uint64
	triggered   bool
}

// collectible reports whether the cooldown window has elapsed.
func (s *starState) collectible(tick uint64) bool {
	if !s.triggered {
		return true
	}
	return tick-s.lastTrigger > sim.PickupCooldownTicks
}

// trigger records the pickup and moves the star to a fresh interior spot.
func (s *starState) trigger(tick uint64, rng *rand.Rand) {
	s.lastTrigger = tick
	s.triggered = true
	s.X, s.Y = randomInterior(rng, sim.StarSpawnMargin)
}
