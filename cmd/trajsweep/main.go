package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/trajsweep/internal/core/launcher"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"github.com/zeusync/trajsweep/internal/injector"
	"github.com/zeusync/trajsweep/internal/output"
	"github.com/zeusync/trajsweep/internal/server"
	"github.com/zeusync/trajsweep/internal/sweep"
)

type options struct {
	configPath string
	outPath    string
	serveAddr  string
	token      string
	logLevel   string
	workers    int

	solveRange float64
	solveAngle float64

	traceRPM   float64
	traceAngle float64
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("trajsweep", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML sweep configuration (defaults when empty)")
	fs.StringVar(&o.outPath, "out", "", "CSV output path, overrides output.path")
	fs.StringVar(&o.serveAddr, "serve", "", "serve sweeps over websocket on this address instead of writing CSV")
	fs.StringVar(&o.token, "token", "", "token websocket clients must pass when serving")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error, overrides log.level")
	fs.IntVar(&o.workers, "workers", -1, "parallel angle workers, overrides sweep.workers")
	fs.Float64Var(&o.solveRange, "solve-range", 0, "instead of sweeping, find the rpm that lands at this range")
	fs.Float64Var(&o.solveAngle, "solve-angle", 60, "launch angle used with -solve-range")
	fs.Float64Var(&o.traceRPM, "trace-rpm", 0, "instead of sweeping, print the per-step trajectory of one shot at this rpm as CSV")
	fs.Float64Var(&o.traceAngle, "trace-angle", 60, "launch angle used with -trace-rpm")
	return o, fs.Parse(args)
}

func loadConfig(o options) (*sweep.Config, error) {
	cfg := sweep.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = sweep.LoadFile(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.outPath != "" {
		cfg.Output.Path = o.outPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.workers >= 0 {
		cfg.Grid.Workers = o.workers
	}
	return cfg, cfg.Validate()
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	serverConfig := server.DefaultConfig()
	serverConfig.Token = o.token
	if o.serveAddr != "" {
		serverConfig.ListenAddr = o.serveAddr
	}

	app, err := injector.InitializeApp(cfg, serverConfig)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	switch {
	case o.serveAddr != "":
		return serve(ctx, app)
	case o.solveRange > 0:
		return solve(cfg, app.Logger, o.solveRange, o.solveAngle)
	case o.traceRPM > 0:
		return trace(cfg, app.Logger, os.Stdout, o.traceRPM, o.traceAngle)
	default:
		return writeSweep(ctx, cfg, app)
	}
}

func writeSweep(ctx context.Context, cfg *sweep.Config, app *injector.App) error {
	table, err := app.Runner.Run(ctx, cfg)
	if err != nil {
		return err
	}

	sink, err := output.CreateCSV(cfg.Output.Path)
	if err != nil {
		return err
	}
	if err := output.WriteTable(sink, table); err != nil {
		_ = sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	app.Logger.Info("Table written",
		log.String("run_id", table.RunID),
		log.String("path", cfg.Output.Path),
		log.Int("rows", len(table.Rows)))
	return nil
}

func serve(ctx context.Context, app *injector.App) error {
	if err := app.Server.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return app.Server.Stop(stopCtx)
}

// solve reports the flywheel speed that lands the projectile targetRange
// meters away at the goal height, searching the configured rpm range.
func solve(cfg *sweep.Config, logger log.Log, targetRange, angle float64) error {
	sim, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	sim.SetLaunchAngle(angle)

	wheel := launcher.NewFlywheel(cfg.Launcher.WheelRadius)
	speed, err := sim.SolveLaunchSpeed(cfg.Grid.GoalHeight, targetRange,
		wheel.ExitVelocity(cfg.Grid.RPM.Start), wheel.ExitVelocity(cfg.Grid.RPM.End))
	if err != nil {
		return err
	}

	res := sim.Run(cfg.Grid.GoalHeight, speed)
	logger.Info("Launch speed solved",
		log.Float64("angle", angle),
		log.Float64("target_range", targetRange),
		log.Float64("speed", speed),
		log.Float64("rpm", wheel.RPM(speed)),
		log.Float64("airtime", res.Airtime),
		log.Int("iterations", sim.Iterations()))

	fmt.Printf("angle=%s rpm=%s speed=%s airtime=%s\n",
		output.FormatFloat(angle), output.FormatFloat(wheel.RPM(speed)),
		output.FormatFloat(speed), output.FormatFloat(res.Airtime))
	return nil
}

// trace writes every integration step of a single shot as CSV rows of
// time, position and velocity.
func trace(cfg *sweep.Config, logger log.Log, w io.Writer, rpm, angle float64) error {
	sim, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	sim.SetLaunchAngle(angle)

	speed := cfg.NewLauncher().ExitVelocity(rpm)
	samples, res := sim.Trace(cfg.Grid.GoalHeight, speed)

	out := csv.NewWriter(w)
	if err := out.Write([]string{"time", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, sample := range samples {
		logger.Debug("Step",
			log.Float64("time", sample.Time),
			log.Stringer("position", sample.Position),
			log.Stringer("velocity", sample.Velocity))
		record := []string{
			output.FormatFloat(sample.Time),
			output.FormatFloat(sample.Position.X),
			output.FormatFloat(sample.Position.Y),
			output.FormatFloat(sample.Velocity.X),
			output.FormatFloat(sample.Velocity.Y),
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return err
	}

	logger.Info("Trajectory traced",
		log.Float64("angle", angle),
		log.Float64("rpm", rpm),
		log.Float64("speed", speed),
		log.Int("steps", len(samples)),
		log.Bool("resolved", res.Resolved()),
		log.Float64("range", res.Range),
		log.Float64("airtime", res.Airtime))
	return nil
}
