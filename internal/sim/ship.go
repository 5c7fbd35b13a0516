package sim

// Team is the binary side a ship scores for, fixed at spawn.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// ParseTeam validates a team string.
func ParseTeam(value string) (Team, bool) {
	switch Team(value) {
	case TeamRed, TeamBlue:
		return Team(value), true
	default:
		return "", false
	}
}

// Kinematics is the part of a ship the movement stepper owns.
type Kinematics struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
}

// Ship is the wire snapshot of one participant. The server broadcasts it
// every tick; clients hold read-only mirrors of it.
type Ship struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Kinematics
	Team  Team     `json:"team"`
	HP    float64  `json:"hp"`
	MaxHP float64  `json:"maxHp"`
	XP    float64  `json:"xp"`
	MaxXP float64  `json:"maxXp"`
	Class ClassKey `json:"class"`
}

// Star is the wire snapshot of one collectible star.
type Star struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}
