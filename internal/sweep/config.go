package sweep

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"

	"github.com/zeusync/trajsweep/internal/core/launcher"
	"github.com/zeusync/trajsweep/internal/core/projectile"
	"github.com/zeusync/trajsweep/internal/core/simulation"
	"github.com/zeusync/trajsweep/pkg/sequence"
	"gopkg.in/yaml.v3"
)

// MaxRows bounds the number of angle/rpm combinations of one sweep.
const MaxRows = 10_000_000

// Config describes one sweep: the projectile, the launcher, the grid of
// launch parameters and where the table goes.
type Config struct {
	Projectile  ProjectileConfig       `yaml:"projectile"`
	Environment simulation.Environment `yaml:"environment"`
	Simulation  SimulationConfig       `yaml:"simulation"`
	Launcher    LauncherConfig         `yaml:"launcher"`
	Grid        GridConfig             `yaml:"sweep"`
	Output      OutputConfig           `yaml:"output"`
	Log         LogConfig              `yaml:"log"`
}

type ProjectileConfig struct {
	Mass float64 `yaml:"mass"`
	// Radius of a spherical projectile; ignored when FrontalArea is set.
	Radius          float64 `yaml:"radius"`
	FrontalArea     float64 `yaml:"frontal_area"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
}

type SimulationConfig struct {
	Step       float64 `yaml:"step"`
	Iterations int     `yaml:"iterations"`
	TimeLimit  float64 `yaml:"time_limit"`
}

type LauncherConfig struct {
	WheelRadius float64 `yaml:"wheel_radius"`
}

type GridConfig struct {
	GoalHeight float64 `yaml:"goal_height"`
	Angle      Range   `yaml:"angle"`
	RPM        Range   `yaml:"rpm"`
	Workers    int     `yaml:"workers"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Range is an inclusive grid axis.
type Range struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Step  float64 `yaml:"step" json:"step"`
}

func (r Range) Values() *sequence.Iterator[float64] {
	return sequence.Steps(r.Start, r.End, r.Step)
}

func (r Range) Len() int {
	return sequence.StepCount(r.Start, r.End, r.Step)
}

func (r Range) validate(name string) error {
	for _, v := range []float64{r.Start, r.End, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s range must be finite", ErrInvalidConfig, name)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: %s step must be positive, got %v", ErrInvalidConfig, name, r.Step)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: %s range end %v is before start %v", ErrInvalidConfig, name, r.End, r.Start)
	}
	return nil
}

// DefaultConfig is a flywheel shooter with an adjustable hood firing a
// 0.178 m radius ball at a 2.496 m high goal.
func DefaultConfig() *Config {
	return &Config{
		Projectile: ProjectileConfig{
			Mass:            0.142,
			Radius:          0.178,
			DragCoefficient: projectile.SphereDragCoefficient,
		},
		Environment: simulation.Earth,
		Simulation: SimulationConfig{
			Step:       simulation.DefaultStep,
			Iterations: simulation.DefaultIterations,
			TimeLimit:  simulation.DefaultTimeLimit,
		},
		Launcher: LauncherConfig{WheelRadius: launcher.DefaultWheelRadius},
		Grid: GridConfig{
			GoalHeight: 2.496,
			Angle:      Range{Start: 57, End: 76, Step: 1},
			RPM:        Range{Start: 3500, End: 6000, Step: 50},
			Workers:    runtime.GOMAXPROCS(0),
		},
		Output: OutputConfig{Path: "output.csv"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads YAML over the defaults; keys absent from the document keep
// their default values.
func Load(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Area is the configured frontal area, or the sphere cross-section of Radius
// when frontal_area is left at zero.
func (p ProjectileConfig) Area() float64 {
	if p.FrontalArea != 0 {
		return p.FrontalArea
	}
	return projectile.SphereFrontalArea(p.Radius)
}

func (p ProjectileConfig) Projectile() simulation.Projectile {
	out := projectile.Sphere(p.Mass, p.Radius)
	out.FrontalArea = p.Area()
	out.DragCoefficient = p.DragCoefficient
	return out
}

// Rows is the number of angle/rpm combinations in the grid. It fails with
// ErrGridTooLarge above MaxRows.
func (g GridConfig) Rows() (int, error) {
	angles, rpms := g.Angle.Len(), g.RPM.Len()
	if angles == 0 || rpms == 0 {
		return 0, nil
	}
	if angles > MaxRows/rpms {
		return 0, fmt.Errorf("%w: %d angles x %d rpms exceeds %d rows", ErrGridTooLarge, angles, rpms, MaxRows)
	}
	return angles * rpms, nil
}

// Validate checks the grid and launcher; the physical parameters are checked
// by NewSimulator.
func (c *Config) Validate() error {
	if err := c.Grid.Angle.validate("angle"); err != nil {
		return err
	}
	if err := c.Grid.RPM.validate("rpm"); err != nil {
		return err
	}
	if math.IsNaN(c.Grid.GoalHeight) || math.IsInf(c.Grid.GoalHeight, 0) {
		return fmt.Errorf("%w: goal height must be finite", ErrInvalidConfig)
	}
	if c.Grid.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Grid.Workers)
	}
	if !(c.Launcher.WheelRadius > 0) || math.IsInf(c.Launcher.WheelRadius, 0) {
		return fmt.Errorf("%w: wheel radius must be positive, got %v", ErrInvalidConfig, c.Launcher.WheelRadius)
	}
	if _, err := c.Grid.Rows(); err != nil {
		return err
	}
	if !(c.Projectile.FrontalArea >= 0) || math.IsInf(c.Projectile.FrontalArea, 0) {
		return fmt.Errorf("%w: frontal area must be finite and not negative, got %v", ErrInvalidConfig, c.Projectile.FrontalArea)
	}
	if c.Projectile.FrontalArea == 0 && !(c.Projectile.Radius >= 0) {
		return fmt.Errorf("%w: radius must not be negative, got %v", ErrInvalidConfig, c.Projectile.Radius)
	}
	_, err := c.NewSimulator()
	return err
}

// NewSimulator builds the simulator described by the projectile,
// environment and simulation sections.
func (c *Config) NewSimulator() (*simulation.Simulator, error) {
	return simulation.New(c.Projectile.Projectile(),
		simulation.WithEnvironment(c.Environment),
		simulation.WithStep(c.Simulation.Step),
		simulation.WithIterations(c.Simulation.Iterations),
		simulation.WithTimeLimit(c.Simulation.TimeLimit),
		simulation.WithLaunchAngle(c.Grid.Angle.Start),
	)
}

func (c *Config) NewLauncher() launcher.Launcher {
	return launcher.NewFlywheel(c.Launcher.WheelRadius)
}

// Clone returns a copy, so request overrides never touch the base config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
