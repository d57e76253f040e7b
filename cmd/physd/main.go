package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	physicssys "github.com/zeusync/physics2d/internal/core/systems/physics"
	"github.com/zeusync/physics2d/internal/injector"
	"github.com/zeusync/physics2d/internal/server"
)

func main() {
	defaults := server.DefaultConfig()
	var (
		scenePath    = flag.String("scene", "", "scene file (yaml or json); empty serves a generated pile")
		bodies       = flag.Int("bodies", 100, "bodies in the generated pile")
		seed         = flag.Int64("seed", 1, "seed of the generated pile")
		addr         = flag.String("addr", defaults.HTTPAddr, "HTTP and websocket listen address")
		quicAddr     = flag.String("quic-addr", defaults.QUICAddr, "QUIC listen address, empty disables QUIC")
		tickRate     = flag.Int("tick-rate", defaults.TickRate, "simulation loop wake-ups per second")
		snapshotRate = flag.Int("rate", defaults.SnapshotRate, "snapshots per second")
		logLevel     = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	cfg := defaults
	cfg.HTTPAddr = *addr
	cfg.QUICAddr = *quicAddr
	cfg.TickRate = *tickRate
	cfg.SnapshotRate = *snapshotRate

	rt, err := injector.InitializeServer(injector.Options{
		ScenePath: *scenePath,
		Bodies:    *bodies,
		Seed:      *seed,
		LogLevel:  log.ParseLevel(*logLevel),
		Server:    cfg,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "physd:", err)
		os.Exit(1)
	}
	logger := rt.Runtime.Logger

	_, _ = rt.Runtime.Bus.Subscribe(bus.Wildcard, func(e bus.Event) error {
		if ev, ok := e.Data().(physicssys.ContactEvent); ok {
			logger.Debug("Contact", log.String("type", e.Type()), log.Uint64("step", ev.Step),
				log.Stringer("a", ev.A), log.Stringer("b", ev.B))
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = rt.Runtime.Systems.InitializeAll(ctx); err != nil {
		logger.Fatal("Failed to initialize systems", log.Error(err))
	}
	logger.Info("Serving scene", log.String("scene", rt.Runtime.Scene.Name()))

	runErr := rt.Server.Run(ctx)
	if err = rt.Runtime.Systems.ShutdownAll(context.Background()); err != nil {
		logger.Error("Failed to shut down systems", log.Error(err))
	}
	if runErr != nil {
		logger.Fatal("Server failed", log.Error(runErr))
	}
}
