package simulation

import (
	"math"

	"github.com/zeusync/trajsweep/internal/core/physics"
)

// Result is the outcome of a single run. Range and Airtime are both NaN when
// the trajectory did not cross the goal height on its way down.
type Result struct {
	Range   float64 // m, horizontal distance at the crossing
	Airtime float64 // s, time of the crossing
}

// Resolved reports whether the run found a crossing.
func (r Result) Resolved() bool {
	return !math.IsNaN(r.Range) && !math.IsNaN(r.Airtime)
}

func unresolved() Result {
	return Result{Range: math.NaN(), Airtime: math.NaN()}
}

// Sample is the integrator state after a step.
type Sample struct {
	Time     float64
	Position physics.Vector2
	Velocity physics.Vector2
}

// Simulator integrates the flight of one projectile. The physical constants
// are fixed at construction; launch angle, step and iterations may be changed
// between runs. A Simulator is not safe for concurrent mutation: use Clone to
// give each goroutine its own copy.
type Simulator struct {
	mass             float64
	weight           physics.Vector2
	dragFactor       float64
	terminalVelocity float64

	launchAngle float64
	step        float64
	iterations  int
	timeLimit   float64
}

// New creates a simulator for the given projectile.
func New(p Projectile, opts ...Option) (*Simulator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	dragFactor := 0.5 * o.env.AirDensity * p.DragCoefficient * p.FrontalArea

	return &Simulator{
		mass:             p.Mass,
		weight:           physics.Cartesian(0, -p.Mass*o.env.Gravity),
		dragFactor:       dragFactor,
		terminalVelocity: math.Sqrt(p.Mass * o.env.Gravity / dragFactor),
		launchAngle:      o.angle,
		step:             o.step,
		iterations:       o.iterations,
		timeLimit:        o.timeLimit,
	}, nil
}

// Clone returns an independent copy sharing no mutable state.
func (s *Simulator) Clone() *Simulator {
	c := *s
	return &c
}

// SetLaunchAngle sets the angle from horizontal, in degrees, the projectile
// starts its motion at. 90 is vertical and 0 is horizontal.
func (s *Simulator) SetLaunchAngle(degrees float64) {
	s.launchAngle = degrees
}

// SetSimulationStep sets the number of seconds between integration ticks.
func (s *Simulator) SetSimulationStep(seconds float64) error {
	if err := validateStep(seconds); err != nil {
		return err
	}
	s.step = seconds
	return nil
}

// SetSimulationIterations sets how many bisection iterations SolveLaunchSpeed
// performs. Each iteration halves the remaining speed interval.
func (s *Simulator) SetSimulationIterations(n int) error {
	if err := validateIterations(n); err != nil {
		return err
	}
	s.iterations = n
	return nil
}

func (s *Simulator) LaunchAngle() float64      { return s.launchAngle }
func (s *Simulator) Step() float64             { return s.step }
func (s *Simulator) Iterations() int           { return s.iterations }
func (s *Simulator) TimeLimit() float64        { return s.timeLimit }
func (s *Simulator) Mass() float64             { return s.mass }
func (s *Simulator) DragFactor() float64       { return s.dragFactor }
func (s *Simulator) TerminalVelocity() float64 { return s.terminalVelocity }

// Run launches the projectile at the configured angle with the given speed
// and resolves where it passes downward through goalY.
func (s *Simulator) Run(goalY, speed float64) Result {
	return s.RunVector(goalY, physics.Polar(speed, s.launchAngle))
}

// RunVector is Run with an explicit launch velocity.
func (s *Simulator) RunVector(goalY float64, velocity physics.Vector2) Result {
	return s.integrate(goalY, velocity, nil)
}

// Trace runs the same integration as Run and returns the state after every step.
func (s *Simulator) Trace(goalY, speed float64) ([]Sample, Result) {
	var samples []Sample
	res := s.integrate(goalY, physics.Polar(speed, s.launchAngle), func(sample Sample) {
		samples = append(samples, sample)
	})
	return samples, res
}

// drag opposes the velocity with magnitude dragFactor*|v|^2.
func (s *Simulator) drag(velocity physics.Vector2) physics.Vector2 {
	v := velocity.Magnitude()
	return physics.Polar(s.dragFactor*v*v, velocity.Angle()+180.0)
}

func (s *Simulator) integrate(goalY float64, launch physics.Vector2, visit func(Sample)) Result {
	var position, lastPosition physics.Vector2
	velocity := launch
	step := s.step
	t := 0.0

	// Keep going while above the goal or still climbing, so a crossing on the
	// way up is never resolved.
	for (position.Y > goalY || velocity.Y > 0) && velocity.X > 0 && t < s.timeLimit {
		lastPosition = position
		position = position.Plus(velocity.Scaled(step))

		// Drag uses the velocity from before this step.
		netForce := s.weight.Plus(s.drag(velocity))
		acceleration := netForce.Scaled(1.0 / s.mass)

		velocity = velocity.Plus(acceleration.Scaled(step))
		t += step

		if visit != nil {
			visit(Sample{Time: t, Position: position, Velocity: velocity})
		}
	}

	if position.Y > goalY || lastPosition.Y < goalY {
		return unresolved()
	}

	// alpha is NaN when the last step did not move vertically, e.g. a flat
	// launch at the goal height; that case is reported unresolved below.
	alpha := (goalY - lastPosition.Y) / (position.Y - lastPosition.Y)
	res := Result{
		Range:   (position.X-lastPosition.X)*alpha + lastPosition.X,
		Airtime: t - step*(1-alpha),
	}
	if math.IsNaN(res.Range) || math.IsNaN(res.Airtime) {
		return unresolved()
	}
	return res
}
