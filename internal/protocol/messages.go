// Package protocol defines the JSON payloads exchanged over the realtime
// channel. Every message carries a type tag; unknown or malformed payloads
// are defaulted or dropped on receipt, never answered with an error.
package protocol

import "star-rush/server/internal/sim"

// Client-to-server message types.
const (
	TypePlayerInput   = "playerInput"
	TypeSetPlayerName = "setPlayerName"
	TypeChooseClass   = "chooseClass"
	TypePing          = "ping"
)

// Server-to-client message types.
const (
	TypeCurrentPlayers     = "currentPlayers"
	TypeNewPlayer          = "newPlayer"
	TypePlayerDisconnected = "playerDisconnected"
	TypePlayerUpdates      = "playerUpdates"
	TypeStarsLocation      = "starsLocation"
	TypeUpdateScore        = "updateScore"
	TypeGameSummary        = "gameSummary"
	TypePong               = "pong"
)

// ClientMessage is the single inbound envelope. Fields irrelevant to the
// tagged type keep their zero values.
type ClientMessage struct {
	Type     string     `json:"type"`
	Input    *sim.Input `json:"input,omitempty"`
	Name     string     `json:"name,omitempty"`
	ClassKey string     `json:"classKey,omitempty"`
	SentAt   int64      `json:"sentAt,omitempty"`
}

// CurrentPlayersMessage is the one-shot full snapshot a joining client
// receives before the regular per-tick stream starts.
type CurrentPlayersMessage struct {
	Type      string              `json:"type"`
	Players   map[string]sim.Ship `json:"players"`
	Timestamp uint64              `json:"timestamp"`
}

// NewPlayerMessage announces a join to everyone else.
type NewPlayerMessage struct {
	Type   string   `json:"type"`
	Player sim.Ship `json:"player"`
}

// PlayerDisconnectedMessage announces a leave to everyone else.
type PlayerDisconnectedMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PlayerUpdatesMessage is the per-tick snapshot. Timestamp is the server
// tick; clients must drop snapshots that are not strictly newer than the
// last one they applied.
type PlayerUpdatesMessage struct {
	Type      string              `json:"type"`
	Players   map[string]sim.Ship `json:"players"`
	Timestamp uint64              `json:"timestamp"`
}

// StarsLocationMessage carries the star set in id order, sent on change and
// to new joiners.
type StarsLocationMessage struct {
	Type  string     `json:"type"`
	Stars []sim.Star `json:"stars"`
}

// UpdateScoreMessage carries the team totals.
type UpdateScoreMessage struct {
	Type string `json:"type"`
	Red  int    `json:"red"`
	Blue int    `json:"blue"`
}

// GameSummaryMessage is the low-frequency compact aggregate for consumers
// that don't need physics-rate updates.
type GameSummaryMessage struct {
	Type      string     `json:"type"`
	Red       int        `json:"red"`
	Blue      int        `json:"blue"`
	Ships     int        `json:"ships"`
	Stars     []sim.Star `json:"stars"`
	Timestamp uint64     `json:"timestamp"`
}

// PongMessage answers a client ping; the echoed sentAt lets the client
// measure round-trip latency.
type PongMessage struct {
	Type       string `json:"type"`
	SentAt     int64  `json:"sentAt"`
	ServerTime int64  `json:"serverTime"`
}
