package netcode

import (
	"math"
	"testing"

	"star-rush/server/internal/sim"
)

func seededPredictor(k sim.Kinematics) *Predictor {
	p := &Predictor{}
	p.Seed(sim.Ship{ID: "local", Kinematics: k, Class: sim.ClassHunter})
	return p
}

func TestReconcileSnapsOnLargeDivergence(t *testing.T) {
	p := seededPredictor(sim.Kinematics{X: 0, Y: 0})

	auth := sim.Ship{
		ID:         "local",
		Kinematics: sim.Kinematics{X: 200, Y: 0, Rotation: 1.25, VX: 50, VY: -10},
		Class:      sim.ClassHunter,
	}
	p.Reconcile(auth)

	if p.State() != auth.Kinematics {
		t.Fatalf("expected hard snap to authoritative state, got %+v", p.State())
	}
}

func TestReconcileBlendsSmallError(t *testing.T) {
	p := seededPredictor(sim.Kinematics{X: 0, Y: 0})

	auth := sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 10, Y: 0}, Class: sim.ClassHunter}
	p.Reconcile(auth)

	got := p.State()
	if math.Abs(got.X-1.0) > 1e-9 || got.Y != 0 {
		t.Fatalf("expected blended position (1, 0), got (%f, %f)", got.X, got.Y)
	}
}

func TestReconcileIsIdempotentOnExactMatch(t *testing.T) {
	k := sim.Kinematics{X: 123.5, Y: 456.25, Rotation: 0.75, VX: 12, VY: -8}
	p := seededPredictor(k)

	p.Reconcile(sim.Ship{ID: "local", Kinematics: k, Class: sim.ClassHunter})

	if p.State() != k {
		t.Fatalf("blending an exact match changed the prediction: %+v", p.State())
	}
}

func TestReconcileBlendsRotationAcrossSeam(t *testing.T) {
	p := seededPredictor(sim.Kinematics{X: 0, Y: 0, Rotation: 3.1})
	p.Reconcile(sim.Ship{ID: "local", Kinematics: sim.Kinematics{X: 0, Y: 0, Rotation: -3.1}, Class: sim.ClassHunter})

	// Shorter arc from 3.1 to -3.1 crosses pi; a long-way blend would pull
	// the rotation toward zero instead.
	if got := p.State().Rotation; got <= 3.1 {
		t.Fatalf("expected rotation blended across the pi seam, got %f", got)
	}
}

func TestPredictorMirrorsServerStepper(t *testing.T) {
	start := sim.Kinematics{X: 1000, Y: 1000, Rotation: 0.5}
	in := sim.Input{Thrust: true, TurnRight: true}
	dt := 1.0 / 144.0 // render frames need not match the tick rate

	p := seededPredictor(start)

	expected := start
	for i := 0; i < 300; i++ {
		expected = sim.Step(expected, in, sim.Stats(sim.ClassHunter), dt)
		p.Advance(in, dt)
	}

	if p.State() != expected {
		t.Fatalf("prediction diverged from the shared stepper: %+v vs %+v", p.State(), expected)
	}
}

func TestAdvanceBeforeSeedIsInert(t *testing.T) {
	p := &Predictor{}
	got := p.Advance(sim.Input{Thrust: true}, 1.0/60.0)
	if got != (sim.Kinematics{}) {
		t.Fatalf("expected no prediction before the first snapshot, got %+v", got)
	}
}

func TestReconcileAdoptsClassChanges(t *testing.T) {
	p := seededPredictor(sim.Kinematics{X: 100, Y: 100})

	p.Reconcile(sim.Ship{
		ID:         "local",
		Kinematics: sim.Kinematics{X: 100, Y: 100},
		Class:      sim.ClassTanker,
	})

	if p.Class() != sim.ClassTanker {
		t.Fatalf("expected predictor to simulate with the new class, got %q", p.Class())
	}
}
