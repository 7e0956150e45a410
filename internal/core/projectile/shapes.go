package projectile

import (
	"math"

	"github.com/zeusync/trajsweep/internal/core/simulation"
)

// SphereDragCoefficient is the drag coefficient of a smooth sphere.
const SphereDragCoefficient = 0.47

// SphereFrontalArea is the cross-section of a sphere with the given radius.
func SphereFrontalArea(radius float64) float64 {
	return radius * radius * math.Pi
}

// Sphere describes a ball by mass and radius.
func Sphere(mass, radius float64) simulation.Projectile {
	return simulation.Projectile{
		Mass:            mass,
		FrontalArea:     SphereFrontalArea(radius),
		DragCoefficient: SphereDragCoefficient,
	}
}
