package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/physics2d/internal/config"
	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/core/systems"
	physicssys "github.com/zeusync/physics2d/internal/core/systems/physics"
	"github.com/zeusync/physics2d/internal/server"
)

// Options are the inputs every injector starts from.
type Options struct {
	// ScenePath is loaded when set; otherwise a generated pile of Bodies
	// bodies seeded by Seed is used.
	ScenePath string
	Bodies    int
	Seed      int64
	// Iterations overrides the scene's solver iteration count when positive.
	Iterations int

	LogLevel log.Level
	Server   server.Config
}

// Runtime is a fully wired simulation.
type Runtime struct {
	Logger  log.Log
	Config  *config.SceneConfig
	Scene   *scene.Scene
	World   *physics.World
	Bus     bus.EventBus
	System  *physicssys.System
	Systems *systems.Manager
}

// ServerRuntime is a simulation plus the server streaming it.
type ServerRuntime struct {
	Runtime *Runtime
	Server  *server.Server
}

var SimulationSet = wire.NewSet(
	ProvideLogger,
	ProvideSceneConfig,
	ProvideScene,
	ProvideWorld,
	ProvideBus,
	ProvideSystem,
	ProvideSystems,
	wire.Struct(new(Runtime), "*"),
)

var ServerSet = wire.NewSet(
	SimulationSet,
	ProvideServer,
	wire.Struct(new(ServerRuntime), "*"),
)

func ProvideLogger(opts Options) log.Log {
	return log.NewConsole(opts.LogLevel)
}

func ProvideSceneConfig(opts Options) (*config.SceneConfig, error) {
	cfg := config.Pile(opts.Bodies, opts.Seed)
	if opts.ScenePath != "" {
		var err error
		if cfg, err = config.Load(opts.ScenePath); err != nil {
			return nil, err
		}
	}
	if opts.Iterations > 0 {
		cfg.World.Iterations = opts.Iterations
	}
	return cfg, nil
}

func ProvideScene(cfg *config.SceneConfig, logger log.Log) (*scene.Scene, error) {
	return cfg.NewScene(logger)
}

func ProvideWorld(s *scene.Scene) *physics.World {
	return s.World()
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideSystem(cfg *config.SceneConfig, world *physics.World, eventBus bus.EventBus, logger log.Log) *physicssys.System {
	return physicssys.New(world, eventBus, logger, cfg.World.SystemConfig())
}

func ProvideSystems(system *physicssys.System) (*systems.Manager, error) {
	m := systems.NewManager()
	if err := m.Register(system); err != nil {
		return nil, err
	}
	return m, nil
}

func ProvideServer(opts Options, s *scene.Scene, system *physicssys.System, logger log.Log) *server.Server {
	return server.NewServer(opts.Server, s.Name(), system, logger)
}
