package netcode

import "star-rush/server/internal/sim"

// RemoteShip smooths the displayed state of another player's ship between
// tick-rate snapshots. The display lerps toward the latest authoritative
// state every render frame instead of snapping, which hides the
// discreteness of the update stream.
type RemoteShip struct {
	target      sim.Ship
	display     sim.Kinematics
	initialized bool
}

// Observe stores a newer authoritative snapshot. The first observation
// seeds the display directly so a joining ship doesn't glide in from the
// origin.
func (r *RemoteShip) Observe(ship sim.Ship) {
	r.target = ship
	if !r.initialized {
		r.display = ship.Kinematics
		r.initialized = true
	}
}

// Target returns the latest authoritative snapshot, including the
// non-kinematic fields the renderer needs (name, team, hp, class).
func (r *RemoteShip) Target() sim.Ship {
	return r.target
}

// Display returns the smoothed kinematics without advancing them.
func (r *RemoteShip) Display() sim.Kinematics {
	return r.display
}

// Advance moves the display one render frame toward the target. Rotation
// takes the shorter angular path, never the long way around the circle.
func (r *RemoteShip) Advance() sim.Kinematics {
	if !r.initialized {
		return r.display
	}
	r.display.X = sim.Lerp(r.display.X, r.target.X, sim.RemoteLerpFactor)
	r.display.Y = sim.Lerp(r.display.Y, r.target.Y, sim.RemoteLerpFactor)
	r.display.VX = r.target.VX
	r.display.VY = r.target.VY
	r.display.Rotation = sim.LerpAngle(r.display.Rotation, r.target.Rotation, sim.RemoteLerpFactor)
	return r.display
}
