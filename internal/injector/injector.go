//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
)

func InitializeRuntime(opts Options) (*Runtime, error) {
	wire.Build(SimulationSet)
	return nil, nil
}

func InitializeServer(opts Options) (*ServerRuntime, error) {
	wire.Build(ServerSet)
	return nil, nil
}
