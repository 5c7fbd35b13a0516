package sim

import "time"

const (
	// WorldSize is the side length of the square world in world units.
	WorldSize = 4000.0
	// BorderBuffer keeps ship centers away from the hard edge; a clamped
	// axis also zeroes that velocity component.
	BorderBuffer = 20.0

	TickRate     = 60
	TickInterval = time.Second / TickRate

	// BaseFrameSeconds is the reference frame the per-frame decay factors
	// below are tuned against. Arbitrary dt normalizes via
	// factor^(dt/BaseFrameSeconds).
	BaseFrameSeconds = 1.0 / 60.0

	AngularSpeed = 5.236 // rad/s, 300 deg/s
	// FacingOffset corrects for the sprite's drawn orientation so a
	// rotation of 0 thrusts the way the ship appears to point.
	FacingOffset = 1.5

	DragFactor         = 0.98
	CoastRestThreshold = 1.0

	BrakeDecayHigh     = 0.9
	BrakeDecayLow      = 0.7
	BrakeHighThreshold = 50.0
	BrakeLowThreshold  = 5.0

	StarCount           = 5
	StarSpawnMargin     = 100.0
	PickupRadius        = 40.0
	PickupCooldownTicks = 5
	PickupScore         = 10
	PickupXP            = 10.0
	MaxXP               = 100.0

	SnapThresholdSq  = 10000.0
	BlendFactor      = 0.1
	RemoteLerpFactor = 0.15
)
