package world

import (
	"time"

	"star-rush/server/internal/sim"
)

// CommandType enumerates the intents the hub may queue for the next tick.
type CommandType string

const (
	CommandSetInput    CommandType = "SetInput"
	CommandSetName     CommandType = "SetName"
	CommandChooseClass CommandType = "ChooseClass"
)

// Command is one captured intent. Commands are buffered by the hub and
// drained at the start of the tick, before any ship moves.
type Command struct {
	ShipID   string
	Type     CommandType
	IssuedAt time.Time
	Input    *InputCommand
	Name     *NameCommand
	Class    *ClassCommand
}

// InputCommand replaces a ship's held input wholesale.
type InputCommand struct {
	State sim.Input
}

// NameCommand proposes a display name; only the first ever proposal sticks.
type NameCommand struct {
	Name string
}

// ClassCommand selects a stat profile by wire key.
type ClassCommand struct {
	Key string
}
