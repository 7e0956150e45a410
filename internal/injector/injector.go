//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/trajsweep/internal/server"
	"github.com/zeusync/trajsweep/internal/sweep"
)

func InitializeApp(cfg *sweep.Config, serverConfig server.Config) (*App, error) {
	wire.Build(appSet)
	return nil, nil
}
