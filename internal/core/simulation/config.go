package simulation

import (
	"fmt"
	"math"
)

const (
	DefaultStep       = 0.01
	DefaultIterations = 10
	DefaultTimeLimit  = 5.0
)

// Environment holds the physical constants a simulation runs under.
type Environment struct {
	Gravity    float64 `yaml:"gravity"`     // m/s^2, positive downwards
	AirDensity float64 `yaml:"air_density"` // kg/m^3
}

// Earth is sea-level air under standard gravity.
var Earth = Environment{
	Gravity:    9.81,
	AirDensity: 1.225,
}

func (e Environment) validate() error {
	if !finite(e.Gravity) || e.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalidEnvironment, e.Gravity)
	}
	if !finite(e.AirDensity) || e.AirDensity < 0 {
		return fmt.Errorf("%w: air density must be non-negative, got %v", ErrInvalidEnvironment, e.AirDensity)
	}
	return nil
}

// Projectile describes the physical properties of the launched body.
type Projectile struct {
	Mass            float64 // kg
	FrontalArea     float64 // m^2
	DragCoefficient float64
}

func (p Projectile) validate() error {
	if !finite(p.Mass) || p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidProjectile, p.Mass)
	}
	if !finite(p.FrontalArea) || p.FrontalArea < 0 {
		return fmt.Errorf("%w: frontal area must be non-negative, got %v", ErrInvalidProjectile, p.FrontalArea)
	}
	if !finite(p.DragCoefficient) || p.DragCoefficient < 0 {
		return fmt.Errorf("%w: drag coefficient must be non-negative, got %v", ErrInvalidProjectile, p.DragCoefficient)
	}
	return nil
}

// Option configures a Simulator at construction time.
type Option func(*options)

type options struct {
	env        Environment
	angle      float64
	step       float64
	iterations int
	timeLimit  float64
}

func defaultOptions() options {
	return options{
		env:        Earth,
		step:       DefaultStep,
		iterations: DefaultIterations,
		timeLimit:  DefaultTimeLimit,
	}
}

// WithLaunchAngle sets the initial launch angle in degrees from horizontal.
func WithLaunchAngle(degrees float64) Option {
	return func(o *options) { o.angle = degrees }
}

// WithStep sets the integration time step in seconds.
func WithStep(seconds float64) Option {
	return func(o *options) { o.step = seconds }
}

// WithIterations sets the number of bisection iterations used by SolveLaunchSpeed.
func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// WithTimeLimit sets the simulated-time cutoff of a single run.
func WithTimeLimit(seconds float64) Option {
	return func(o *options) { o.timeLimit = seconds }
}

func WithEnvironment(env Environment) Option {
	return func(o *options) { o.env = env }
}

func (o options) validate() error {
	if err := o.env.validate(); err != nil {
		return err
	}
	if err := validateStep(o.step); err != nil {
		return err
	}
	if err := validateIterations(o.iterations); err != nil {
		return err
	}
	if !finite(o.timeLimit) || o.timeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %v", ErrInvalidConfig, o.timeLimit)
	}
	if !finite(o.angle) {
		return fmt.Errorf("%w: launch angle must be finite, got %v", ErrInvalidConfig, o.angle)
	}
	return nil
}

func validateStep(step float64) error {
	if !finite(step) || step <= 0 {
		return fmt.Errorf("%w: simulation step must be positive, got %v", ErrInvalidConfig, step)
	}
	return nil
}

func validateIterations(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: simulation iterations must be at least 1, got %d", ErrInvalidConfig, n)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
