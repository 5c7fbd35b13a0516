package sim

// ClassKey selects a ship stat profile. The set is closed; adding a class
// means adding a table entry, not a new type.
type ClassKey string

const (
	// ClassHunter is the faster, fragile profile and the default.
	ClassHunter ClassKey = "hunterlike"
	// ClassTanker is the slower, tanky profile.
	ClassTanker ClassKey = "tankerlike"

	DefaultClass = ClassHunter
)

// ClassStats holds the tunables a class contributes to the stepper and to
// hp bookkeeping.
type ClassStats struct {
	MaxHP    float64
	MaxSpeed float64
	Accel    float64
}

var classTable = map[ClassKey]ClassStats{
	ClassHunter: {MaxHP: 80, MaxSpeed: 400, Accel: 200},
	ClassTanker: {MaxHP: 160, MaxSpeed: 280, Accel: 140},
}

// ParseClass validates a class key received from the client.
func ParseClass(value string) (ClassKey, bool) {
	switch ClassKey(value) {
	case ClassHunter, ClassTanker:
		return ClassKey(value), true
	default:
		return "", false
	}
}

// Stats returns the stat profile for a class, falling back to the default
// class for unknown keys.
func Stats(key ClassKey) ClassStats {
	if stats, ok := classTable[key]; ok {
		return stats
	}
	return classTable[DefaultClass]
}
