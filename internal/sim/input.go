package sim

// Input is a ship's last-received intent. Each playerInput message replaces
// it wholesale; nothing is accumulated or queued.
type Input struct {
	TurnLeft  bool `json:"left"`
	TurnRight bool `json:"right"`
	Thrust    bool `json:"up"`
	Brake     bool `json:"down"`
}

// Idle reports whether no control is held.
func (in Input) Idle() bool {
	return !in.TurnLeft && !in.TurnRight && !in.Thrust && !in.Brake
}
