package world

import (
	"time"

	"star-rush/server/internal/sim"
)

// ShipState is a wire Ship plus the server-only bookkeeping that never
// leaves the process.
type ShipState struct {
	sim.Ship
	input     sim.Input
	lastInput time.Time
	nameSet   bool
}

// Snapshot copies the broadcastable part of the ship.
func (s *ShipState) Snapshot() sim.Ship {
	return s.Ship
}

// Input returns the currently held intent.
func (s *ShipState) Input() sim.Input {
	return s.input
}

func (s *ShipState) setInput(state sim.Input, at time.Time) {
	s.input = state
	s.lastInput = at
}

// setClass switches the stat profile, preserving the hp fraction and
// clamping to the new maximum.
func (s *ShipState) setClass(key sim.ClassKey) {
	stats := sim.Stats(key)
	fraction := 1.0
	if s.MaxHP > 0 {
		fraction = s.HP / s.MaxHP
	}
	s.Class = key
	s.MaxHP = stats.MaxHP
	s.HP = clamp(fraction*stats.MaxHP, 0, stats.MaxHP)
}

// gainXP raises xp by amount, clamped to the maximum. XP never decreases
// within a session.
func (s *ShipState) gainXP(amount float64) {
	s.XP = clamp(s.XP+amount, 0, s.MaxXP)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
