package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"github.com/zeusync/trajsweep/pkg/concurrent"
)

// Runner executes sweeps. It holds no per-sweep state and may run several
// sweeps concurrently.
type Runner struct {
	logger log.Log
}

func NewRunner(logger log.Log) *Runner {
	return &Runner{logger: logger}
}

// Run simulates every angle/rpm combination of the grid. Angles are spread
// over cfg.Grid.Workers goroutines, each with its own simulator copy; rpm
// values for one angle run sequentially.
func (r *Runner) Run(ctx context.Context, cfg *Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := cfg.NewSimulator()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.logger.With(log.String("run_id", runID))

	total, err := cfg.Grid.Rows()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrEmptyGrid
	}
	angles := cfg.Grid.Angle.Values()
	rpms := cfg.Grid.RPM.Values().Collect()

	goalY := cfg.Grid.GoalHeight
	launch := cfg.NewLauncher()

	logger.Info("sweep started",
		log.Int("angles", cfg.Grid.Angle.Len()),
		log.Int("rpms", len(rpms)),
		log.Float64("goal_height", goalY),
		log.Float64("step", base.Step()),
		log.Float64("terminal_velocity", base.TerminalVelocity()),
		log.Int("workers", cfg.Grid.Workers),
	)
	started := time.Now()

	perAngle, err := concurrent.ParallelMap(ctx, angles, cfg.Grid.Workers, func(ctx context.Context, angle float64) ([]Row, error) {
		sim := base.Clone()
		sim.SetLaunchAngle(angle)

		rows := make([]Row, 0, len(rpms))
		resolved := 0
		for _, rpm := range rpms {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			speed := launch.ExitVelocity(rpm)
			res := sim.Run(goalY, speed)
			if res.Resolved() {
				resolved++
			}
			rows = append(rows, Row{
				Angle:   angle,
				RPM:     rpm,
				Speed:   speed,
				Range:   res.Range,
				Airtime: res.Airtime,
			})
		}

		logger.Debug("angle done", log.Float64("angle", angle), log.Int("resolved", resolved))
		return rows, nil
	})
	if err != nil {
		logger.Warn("sweep aborted", log.Error(err))
		return nil, fmt.Errorf("sweep %s: %w", runID, err)
	}

	table := &Table{RunID: runID, Rows: make([]Row, 0, total)}
	for _, rows := range perAngle {
		table.Rows = append(table.Rows, rows...)
	}

	stats := table.Stats()
	fields := []log.Field{
		log.Int("rows", stats.Rows),
		log.Int("resolved", stats.Resolved),
		log.Int("unresolved", stats.Unresolved),
		log.String("digest", fmt.Sprintf("%016x", table.Digest())),
		log.Duration("elapsed", time.Since(started)),
	}
	if best, ok := table.Best(); ok {
		fields = append(fields,
			log.Float64("best_angle", best.Angle),
			log.Float64("best_rpm", best.RPM),
			log.Float64("best_airtime", best.Airtime))
	}
	logger.Info("sweep finished", fields...)
	return table, nil
}
