package physics

import (
	"fmt"
	"math"
)

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Vector2 is a 2D vector value. All operations return new values.
type Vector2 struct {
	X float64
	Y float64
}

// Cartesian creates a vector from its components.
func Cartesian(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Polar creates a vector from a magnitude and a direction in degrees,
// measured counter-clockwise from the positive x-axis.
func Polar(magnitude, angleDegrees float64) Vector2 {
	theta := angleDegrees * degToRad
	return Vector2{X: magnitude * math.Cos(theta), Y: magnitude * math.Sin(theta)}
}

// Magnitude returns the Euclidean norm.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns the direction in degrees as produced by atan2.
// The zero vector has angle 0.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X) * radToDeg
}

// Plus returns the component-wise sum of v and other.
func (v Vector2) Plus(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Scaled returns v with both components multiplied by k.
func (v Vector2) Scaled(k float64) Vector2 {
	return Vector2{X: v.X * k, Y: v.Y * k}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
