package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"github.com/zeusync/trajsweep/internal/server"
	"github.com/zeusync/trajsweep/internal/sweep"
)

// App bundles the long-lived components of the command.
type App struct {
	Logger *log.Logger
	Runner *sweep.Runner
	Server *server.Server
}

func NewApp(logger *log.Logger, runner *sweep.Runner, srv *server.Server) *App {
	return &App{Logger: logger, Runner: runner, Server: srv}
}

// ProvideLogger builds the logger at the configured level.
func ProvideLogger(cfg *sweep.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

var appSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	sweep.NewRunner,
	server.NewServer,
	NewApp,
)
