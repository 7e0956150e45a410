package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func TestPolar(t *testing.T) {
	v := Polar(2, 90)
	assert.InDelta(t, 0, v.X, eps)
	assert.InDelta(t, 2, v.Y, eps)

	v = Polar(10, 45)
	assert.InDelta(t, 10/math.Sqrt2, v.X, eps)
	assert.InDelta(t, 10/math.Sqrt2, v.Y, eps)

	v = Polar(1, 180)
	assert.InDelta(t, -1, v.X, eps)
	assert.InDelta(t, 0, v.Y, eps)
}

func TestMagnitudeAndAngle(t *testing.T) {
	v := Cartesian(3, 4)
	assert.Equal(t, 5.0, v.Magnitude())
	assert.InDelta(t, 53.13010235415598, v.Angle(), 1e-9)

	assert.InDelta(t, -90, Cartesian(0, -1).Angle(), eps)
	assert.InDelta(t, 180, Cartesian(-1, 0).Angle(), eps)
}

func TestZeroVector(t *testing.T) {
	var zero Vector2
	assert.Equal(t, 0.0, zero.Magnitude())
	assert.Equal(t, 0.0, zero.Angle())
}

func TestPolarRoundTrip(t *testing.T) {
	for _, angle := range []float64{-135, -30, 0, 12.5, 60, 90, 179} {
		v := Polar(7.5, angle)
		assert.InDelta(t, 7.5, v.Magnitude(), 1e-9)
		assert.InDelta(t, angle, v.Angle(), 1e-9)
	}
}

func TestArithmeticIsPure(t *testing.T) {
	a := Cartesian(1, 2)
	b := Cartesian(-3, 0.5)

	sum := a.Plus(b)
	scaled := a.Scaled(3)

	assert.Equal(t, Cartesian(-2, 2.5), sum)
	assert.Equal(t, Cartesian(3, 6), scaled)
	assert.Equal(t, Cartesian(1, 2), a)
	assert.Equal(t, Cartesian(-3, 0.5), b)
}

func TestString(t *testing.T) {
	assert.Equal(t, "(1.5, -2)", Cartesian(1.5, -2).String())
}
