package sim

import "math"

// Step advances one ship's kinematic state by dt seconds given its held
// input. It is a pure function of (state, input, stats, dt) so the server
// tick and the client predictor produce identical results from identical
// arguments.
func Step(k Kinematics, in Input, stats ClassStats, dt float64) Kinematics {
	switch {
	case in.TurnLeft:
		k.Rotation -= AngularSpeed * dt
	case in.TurnRight:
		k.Rotation += AngularSpeed * dt
	}

	speed := math.Hypot(k.VX, k.VY)

	switch {
	case in.Thrust:
		// Thrust wins over a simultaneous brake.
		heading := k.Rotation + FacingOffset
		k.VX += math.Cos(heading) * stats.Accel * dt
		k.VY += math.Sin(heading) * stats.Accel * dt
	case in.Brake:
		switch {
		case speed > BrakeHighThreshold:
			factor := decayOver(BrakeDecayHigh, dt)
			k.VX *= factor
			k.VY *= factor
		case speed > BrakeLowThreshold:
			factor := decayOver(BrakeDecayLow, dt)
			k.VX *= factor
			k.VY *= factor
		default:
			k.VX = 0
			k.VY = 0
		}
	default:
		// Coasting: ambient drag, snapping to exact rest below the
		// threshold so ships never creep asymptotically.
		if speed > CoastRestThreshold {
			factor := decayOver(DragFactor, dt)
			k.VX *= factor
			k.VY *= factor
		} else {
			k.VX = 0
			k.VY = 0
		}
	}

	speed = math.Hypot(k.VX, k.VY)
	if speed > stats.MaxSpeed {
		scale := stats.MaxSpeed / speed
		k.VX *= scale
		k.VY *= scale
	}

	k.X += k.VX * dt
	k.Y += k.VY * dt

	// Ships stop dead at the wall rather than sliding along it.
	if k.X < BorderBuffer {
		k.X = BorderBuffer
		k.VX = 0
	} else if k.X > WorldSize-BorderBuffer {
		k.X = WorldSize - BorderBuffer
		k.VX = 0
	}
	if k.Y < BorderBuffer {
		k.Y = BorderBuffer
		k.VY = 0
	} else if k.Y > WorldSize-BorderBuffer {
		k.Y = WorldSize - BorderBuffer
		k.VY = 0
	}

	return k
}

// decayOver normalizes a per-base-frame decay factor to an arbitrary dt.
func decayOver(perFrame, dt float64) float64 {
	return math.Pow(perFrame, dt/BaseFrameSeconds)
}

// Lerp blends linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle blends between two angles along the shorter arc, normalizing
// the delta into [-pi, pi] before scaling.
func LerpAngle(a, b, t float64) float64 {
	delta := math.Mod(b-a, 2*math.Pi)
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta < -math.Pi {
		delta += 2 * math.Pi
	}
	return a + delta*t
}
