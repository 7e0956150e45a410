package launcher

import "math"

// DefaultWheelRadius is the flywheel radius in meters.
const DefaultWheelRadius = 0.051

// Launcher converts an actuator setting into a linear exit velocity in m/s.
type Launcher interface {
	ExitVelocity(setting float64) float64
}

// Flywheel is a single flywheel shooter. The projectile leaves at half the
// wheel surface speed, as it rolls between the wheel and a fixed hood.
type Flywheel struct {
	WheelRadius float64 // m
}

var _ Launcher = Flywheel{}

func NewFlywheel(wheelRadius float64) Flywheel {
	return Flywheel{WheelRadius: wheelRadius}
}

// ExitVelocity converts a wheel speed in revolutions per minute.
func (f Flywheel) ExitVelocity(rpm float64) float64 {
	return rpm / 60.0 * (2.0 * math.Pi * f.WheelRadius) / 2.0
}

// RPM is the inverse of ExitVelocity.
func (f Flywheel) RPM(velocity float64) float64 {
	return velocity * 2.0 / (2.0 * math.Pi * f.WheelRadius) * 60.0
}
