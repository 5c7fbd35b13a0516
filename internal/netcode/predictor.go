package netcode

import "star-rush/server/internal/sim"

// Predictor owns the locally simulated copy of the player's own ship. It
// replays the shared movement stepper against locally captured input every
// render frame, so the displayed ship answers input immediately instead of
// waiting a network round trip.
type Predictor struct {
	initialized bool
	class       sim.ClassKey
	state       sim.Kinematics
}

// Initialized reports whether the first authoritative snapshot has seeded
// the prediction.
func (p *Predictor) Initialized() bool {
	return p.initialized
}

// Seed adopts the server's state wholesale. Called once, on the first
// snapshot that contains the local ship.
func (p *Predictor) Seed(ship sim.Ship) {
	p.state = ship.Kinematics
	p.class = ship.Class
	p.initialized = true
}

// Class returns the class the predictor currently simulates with.
func (p *Predictor) Class() sim.ClassKey {
	return p.class
}

// State returns the current predicted kinematics.
func (p *Predictor) State() sim.Kinematics {
	return p.state
}

// Advance runs one render frame of local prediction with the frame's
// elapsed time, which need not match the server tick interval.
func (p *Predictor) Advance(in sim.Input, dt float64) sim.Kinematics {
	if !p.initialized {
		return p.state
	}
	p.state = sim.Step(p.state, in, sim.Stats(p.class), dt)
	return p.state
}

// Reconcile corrects the prediction against an authoritative snapshot.
// Large divergence snaps outright; small error blends gradually so the
// correction is invisible.
func (p *Predictor) Reconcile(auth sim.Ship) {
	if !p.initialized {
		p.Seed(auth)
		return
	}
	p.class = auth.Class

	dx := auth.X - p.state.X
	dy := auth.Y - p.state.Y
	if dx*dx+dy*dy > sim.SnapThresholdSq {
		p.state = auth.Kinematics
		return
	}

	p.state.X = sim.Lerp(p.state.X, auth.X, sim.BlendFactor)
	p.state.Y = sim.Lerp(p.state.Y, auth.Y, sim.BlendFactor)
	p.state.VX = sim.Lerp(p.state.VX, auth.VX, sim.BlendFactor)
	p.state.VY = sim.Lerp(p.state.VY, auth.VY, sim.BlendFactor)
	p.state.Rotation = sim.LerpAngle(p.state.Rotation, auth.Rotation, sim.BlendFactor)
}
