package netcode

import (
	"testing"

	"star-rush/server/internal/sim"
)

func snapshot(ships ...sim.Ship) map[string]sim.Ship {
	players := make(map[string]sim.Ship, len(ships))
	for _, ship := range ships {
		players[ship.ID] = ship
	}
	return players
}

func TestApplySeedsLocalPredictionFromFirstSnapshot(t *testing.T) {
	tracker := NewTracker("local")

	local := sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 500, Y: 600, Rotation: 0.25}, Class: sim.ClassHunter}
	if !tracker.Apply(snapshot(local), 1) {
		t.Fatalf("expected first snapshot to apply")
	}

	if !tracker.Predictor().Initialized() {
		t.Fatalf("expected predictor seeded")
	}
	if tracker.Predictor().State() != local.Kinematics {
		t.Fatalf("expected prediction seeded with server state, got %+v", tracker.Predictor().State())
	}
}

func TestApplyDropsStaleSnapshots(t *testing.T) {
	tracker := NewTracker("local")

	first := sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 100}}
	second := sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 110}}
	stale := sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 90}}

	tracker.Apply(snapshot(first), 5)
	tracker.Apply(snapshot(second), 6)

	if tracker.Apply(snapshot(stale), 6) {
		t.Fatalf("expected equal-timestamp snapshot to be dropped")
	}
	if tracker.Apply(snapshot(stale), 4) {
		t.Fatalf("expected older snapshot to be dropped")
	}

	// The prediction still reflects the newest applied snapshot.
	if got := tracker.Predictor().State().X; got < 100 {
		t.Fatalf("stale snapshot rolled the view backwards: x=%f", got)
	}
}

func TestApplyTracksRemoteJoinAndLeave(t *testing.T) {
	tracker := NewTracker("local")

	local := sim.Ship{ID: "local"}
	other := sim.Ship{ID: "other", Kinematics: sim.Kinematics{X: 300, Y: 400}}

	tracker.Apply(snapshot(local, other), 1)
	if _, ok := tracker.Remote("other"); !ok {
		t.Fatalf("expected remote ship tracked after join")
	}
	if _, ok := tracker.Remote("local"); ok {
		t.Fatalf("local ship must never be interpolated as a remote")
	}

	tracker.Apply(snapshot(local), 2)
	if _, ok := tracker.Remote("other"); ok {
		t.Fatalf("expected remote ship dropped once absent from a snapshot")
	}
}

func TestDropRemovesRemoteBetweenSnapshots(t *testing.T) {
	tracker := NewTracker("local")
	tracker.Apply(snapshot(sim.Ship{ID: "local"}, sim.Ship{ID: "other"}), 1)

	tracker.Drop("other")
	if _, ok := tracker.Remote("other"); ok {
		t.Fatalf("expected explicit drop to remove the remote")
	}
}

func TestAdvanceRemotesReturnsSmoothedStates(t *testing.T) {
	tracker := NewTracker("local")
	tracker.Apply(snapshot(sim.Ship{ID: "local"}, sim.Ship{ID: "other", Kinematics: sim.Kinematics{X: 100}}), 1)
	tracker.Apply(snapshot(sim.Ship{ID: "local"}, sim.Ship{ID: "other", Kinematics: sim.Kinematics{X: 200}}), 2)

	states := tracker.AdvanceRemotes()
	got, ok := states["other"]
	if !ok {
		t.Fatalf("expected smoothed state for remote ship")
	}
	expected := 100 + (200-100)*sim.RemoteLerpFactor
	if got.X != expected {
		t.Fatalf("expected lerped x %f, got %f", expected, got.X)
	}
}
