package netcode

import "star-rush/server/internal/sim"

// Tracker is the client's view of the snapshot stream: it reconciles the
// local ship, interpolates remote ships, and discards snapshots that arrive
// out of order. Each applied snapshot simply supersedes the previous one;
// there is no queueing.
type Tracker struct {
	localID string

	lastTimestamp uint64
	applied       bool

	local   Predictor
	remotes map[string]*RemoteShip
}

// NewTracker builds a tracker for the given local connection id.
func NewTracker(localID string) *Tracker {
	return &Tracker{
		localID: localID,
		remotes: make(map[string]*RemoteShip),
	}
}

// Predictor exposes the local prediction engine for the render loop.
func (t *Tracker) Predictor() *Predictor {
	return &t.local
}

// Remote returns the interpolator for one remote id.
func (t *Tracker) Remote(id string) (*RemoteShip, bool) {
	remote, ok := t.remotes[id]
	return remote, ok
}

// RemoteIDs lists the remote ships currently tracked.
func (t *Tracker) RemoteIDs() []string {
	ids := make([]string, 0, len(t.remotes))
	for id := range t.remotes {
		ids = append(ids, id)
	}
	return ids
}

// Apply consumes one playerUpdates snapshot. Snapshots whose timestamp is
// not strictly newer than the last applied one are dropped, so a late
// arrival can never roll the view backwards. Returns whether the snapshot
// was applied.
func (t *Tracker) Apply(players map[string]sim.Ship, timestamp uint64) bool {
	if t.applied && timestamp <= t.lastTimestamp {
		return false
	}
	t.lastTimestamp = timestamp
	t.applied = true

	for id, ship := range players {
		if id == t.localID {
			t.local.Reconcile(ship)
			continue
		}
		remote, ok := t.remotes[id]
		if !ok {
			remote = &RemoteShip{}
			t.remotes[id] = remote
		}
		remote.Observe(ship)
	}

	for id := range t.remotes {
		if _, ok := players[id]; !ok {
			delete(t.remotes, id)
		}
	}

	return true
}

// Drop removes one remote ship, used for playerDisconnected events that
// arrive between snapshots.
func (t *Tracker) Drop(id string) {
	delete(t.remotes, id)
}

// AdvanceLocal runs one render frame of prediction.
func (t *Tracker) AdvanceLocal(in sim.Input, dt float64) sim.Kinematics {
	return t.local.Advance(in, dt)
}

// AdvanceRemotes advances every remote interpolation one render frame and
// returns the smoothed kinematics by id.
func (t *Tracker) AdvanceRemotes() map[string]sim.Kinematics {
	states := make(map[string]sim.Kinematics, len(t.remotes))
	for id, remote := range t.remotes {
		states[id] = remote.Advance()
	}
	return states
}
