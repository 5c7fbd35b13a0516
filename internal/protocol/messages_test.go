package protocol

import (
	"encoding/json"
	"testing"

	"star-rush/server/internal/sim"
)

func TestClientMessageDefaultsUnknownFields(t *testing.T) {
	raw := []byte(`{"type":"playerInput","input":{"left":true,"up":true},"bogus":42}`)

	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Type != TypePlayerInput {
		t.Fatalf("unexpected type %q", msg.Type)
	}
	if msg.Input == nil || !msg.Input.TurnLeft || !msg.Input.Thrust || msg.Input.TurnRight || msg.Input.Brake {
		t.Fatalf("unexpected input %+v", msg.Input)
	}
}

func TestPlayerUpdatesRoundTrip(t *testing.T) {
	original := PlayerUpdatesMessage{
		Type: TypePlayerUpdates,
		Players: map[string]sim.Ship{
			"ship-1": {
				ID:         "ship-1",
				Name:       "corsair",
				Kinematics: sim.Kinematics{X: 10.5, Y: 20.25, Rotation: 1.5, VX: -3, VY: 4},
				Team:       sim.TeamRed,
				HP:         80,
				MaxHP:      80,
				XP:         20,
				MaxXP:      100,
				Class:      sim.ClassHunter,
			},
		},
		Timestamp: 42,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded PlayerUpdatesMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Timestamp != original.Timestamp {
		t.Fatalf("timestamp changed: %d vs %d", decoded.Timestamp, original.Timestamp)
	}
	if decoded.Players["ship-1"] != original.Players["ship-1"] {
		t.Fatalf("ship changed in transit: %+v", decoded.Players["ship-1"])
	}
}
