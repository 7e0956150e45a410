package projectile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphere(t *testing.T) {
	assert.InDelta(t, math.Pi*0.178*0.178, SphereFrontalArea(0.178), 1e-15)
	assert.Equal(t, 0.0, SphereFrontalArea(0))

	p := Sphere(0.142, 0.178)
	assert.Equal(t, 0.142, p.Mass)
	assert.Equal(t, SphereFrontalArea(0.178), p.FrontalArea)
	assert.Equal(t, SphereDragCoefficient, p.DragCoefficient)
}
