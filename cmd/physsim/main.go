package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/injector"
	"github.com/zeusync/physics2d/pkg/concurrent"
)

type result struct {
	scene    string
	steps    uint64
	digest   uint64
	bodies   int
	awake    int
	contacts int
	events   int64
}

func main() {
	var (
		scenes     = flag.String("scene", "", "comma separated scene files (yaml or json); empty runs a generated pile")
		bodies     = flag.Int("bodies", 50, "bodies in the generated pile")
		seed       = flag.Int64("seed", 1, "seed of the generated pile")
		steps      = flag.Int("steps", 600, "fixed steps to simulate")
		iterations = flag.Int("iterations", 0, "solver iterations, 0 keeps the scene setting")
		parallel   = flag.Int("parallel", 0, "scenes simulated at once, 0 runs all together")
		logLevel   = flag.String("log-level", "warn", "debug, info, warn or error")
	)
	flag.Parse()

	var paths []string
	if *scenes == "" {
		paths = []string{""}
	} else {
		paths = strings.Split(*scenes, ",")
	}

	results, err := concurrent.Map(context.Background(), paths, *parallel, func(ctx context.Context, path string) (result, error) {
		res, err := run(ctx, injector.Options{
			ScenePath:  strings.TrimSpace(path),
			Bodies:     *bodies,
			Seed:       *seed,
			Iterations: *iterations,
			LogLevel:   log.ParseLevel(*logLevel),
		}, *steps)
		if err != nil {
			return res, fmt.Errorf("%s: %w", sceneLabel(path), err)
		}
		return res, nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "physsim:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tSTEPS\tDIGEST\tBODIES\tAWAKE\tCONTACTS\tEVENTS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%016x\t%d\t%d\t%d\t%d\n", r.scene, r.steps, r.digest, r.bodies, r.awake, r.contacts, r.events)
	}
	_ = w.Flush()
}

func sceneLabel(path string) string {
	if path == "" {
		return "pile"
	}
	return path
}

func run(ctx context.Context, opts injector.Options, steps int) (result, error) {
	rt, err := injector.InitializeRuntime(opts)
	if err != nil {
		return result{}, err
	}
	logger := rt.Logger.With(log.String("scene", rt.Scene.Name()))

	var events atomic.Int64
	if _, err = rt.Bus.Subscribe(bus.Wildcard, func(bus.Event) error {
		events.Add(1)
		return nil
	}); err != nil {
		return result{}, err
	}

	if err = rt.Systems.InitializeAll(ctx); err != nil {
		return result{}, err
	}
	dt := rt.System.Config().FixedDeltaTime
	for i := 0; i < steps; i++ {
		if err = ctx.Err(); err != nil {
			return result{}, err
		}
		if err = rt.Systems.FixedUpdate(dt); err != nil {
			logger.Warn("Step failed", log.Int("step", i), log.Error(err))
		}
	}
	if err = rt.Systems.ShutdownAll(ctx); err != nil {
		return result{}, err
	}

	stats := rt.World.Stats()
	return result{
		scene:    rt.Scene.Name(),
		steps:    stats.Steps,
		digest:   rt.World.Digest(),
		bodies:   stats.Bodies,
		awake:    stats.Awake,
		contacts: stats.Contacts,
		events:   events.Load(),
	}, nil
}
