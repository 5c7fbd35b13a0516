package sim

import (
	"encoding/json"
	"testing"
)

func TestShipJSONRoundTrip(t *testing.T) {
	original := Ship{
		ID:   "ship-7",
		Name: "corsair",
		Kinematics: Kinematics{
			X:        1234.5,
			Y:        678.25,
			Rotation: -2.75,
			VX:       -120.5,
			VY:       310.125,
		},
		Team:  TeamBlue,
		HP:    64,
		MaxHP: 80,
		XP:    30,
		MaxXP: 100,
		Class: ClassHunter,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Ship
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded != original {
		t.Fatalf("round trip changed the ship: %+v vs %+v", decoded, original)
	}
}

func TestParseTeam(t *testing.T) {
	if team, ok := ParseTeam("red"); !ok || team != TeamRed {
		t.Fatalf("expected red to parse, got (%q, %v)", team, ok)
	}
	if _, ok := ParseTeam("green"); ok {
		t.Fatalf("expected unknown team to be rejected")
	}
}
