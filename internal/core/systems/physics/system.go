package physics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	core "github.com/zeusync/physics2d/internal/core/physics"
	"github.com/zeusync/physics2d/internal/core/systems"
)

var _ systems.System = (*System)(nil)

var ErrNotInitialized = errors.New("physics system is not initialized")

type Config struct {
	FixedDeltaTime float64
	// MaxSubSteps caps the fixed steps run for one Update; leftover time
	// beyond the cap is dropped.
	MaxSubSteps int
	Iterations  int
	// Topic is the bus topic contact events are published to.
	Topic string
}

func DefaultConfig() Config {
	return Config{
		FixedDeltaTime: 1.0 / 60.0,
		MaxSubSteps:    5,
		Iterations:     core.DefaultIterations,
	}
}

// System drives a physics world at a fixed rate and publishes its contact
// events on the bus. All world access goes through the system's lock.
type System struct {
	mu          sync.Mutex
	world       *core.World
	bus         bus.EventBus
	logger      log.Log
	config      Config
	accumulator float64
	initialized bool
	metrics     systems.Metrics
}

func New(world *core.World, eventBus bus.EventBus, logger log.Log, config Config) *System {
	def := DefaultConfig()
	if config.FixedDeltaTime <= 0 {
		config.FixedDeltaTime = def.FixedDeltaTime
	}
	if config.MaxSubSteps <= 0 {
		config.MaxSubSteps = def.MaxSubSteps
	}
	if config.Iterations <= 0 {
		config.Iterations = def.Iterations
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &System{
		world:  world,
		bus:    eventBus,
		logger: logger.With(log.String("system", "physics")),
		config: config,
	}
}

func (s *System) Name() string               { return "physics" }
func (s *System) Priority() systems.Priority { return systems.PriorityHigh }
func (s *System) Config() Config             { return s.config }

func (s *System) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	stats := s.world.Stats()
	s.logger.Info("Physics system initialized",
		log.Float64("fixed_dt", s.config.FixedDeltaTime),
		log.Int("iterations", s.config.Iterations),
		log.Int("bodies", stats.Bodies),
		log.Int("colliders", stats.Colliders),
	)
	return nil
}

func (s *System) Shutdown(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = false
	s.logger.Info("Physics system stopped",
		log.Uint64("steps", s.world.Steps()),
		log.Uint64("digest", s.world.Digest()),
	)
	return nil
}

// Update accumulates frame time and runs as many fixed steps as fit, up to
// MaxSubSteps.
func (s *System) Update(deltaTime float64) error {
	if deltaTime <= 0 {
		return nil
	}

	s.mu.Lock()
	s.accumulator += deltaTime
	steps := 0
	for s.accumulator >= s.config.FixedDeltaTime && steps < s.config.MaxSubSteps {
		s.accumulator -= s.config.FixedDeltaTime
		steps++
	}
	if steps == s.config.MaxSubSteps && s.accumulator >= s.config.FixedDeltaTime {
		s.logger.Warn("Physics falling behind, dropping time", log.Float64("dropped", s.accumulator))
		s.accumulator = 0
	}
	s.mu.Unlock()

	var all error
	for i := 0; i < steps; i++ {
		all = errors.Join(all, s.FixedUpdate(s.config.FixedDeltaTime))
	}
	return all
}

// FixedUpdate advances the world by one step and publishes the step's
// contact events after releasing the lock.
func (s *System) FixedUpdate(fixedDeltaTime float64) error {
	start := time.Now()

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	s.world.Update(float32(fixedDeltaTime), s.config.Iterations)
	step := s.world.Steps()
	drained := s.world.DrainEvents()
	payloads := make([]ContactEvent, len(drained))
	for i, ev := range drained {
		payloads[i] = ContactEvent{
			Step:    step,
			Kind:    ev.Kind,
			A:       ev.ColliderA,
			B:       ev.ColliderB,
			ObjectA: s.userData(ev.ColliderA),
			ObjectB: s.userData(ev.ColliderB),
			Info:    ev.Info,
		}
	}
	bodies := len(s.world.Bodies())
	s.mu.Unlock()

	err := s.publish(payloads)

	s.mu.Lock()
	s.metrics.Record(start, bodies, err)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("Contact event handlers failed", log.Uint64("step", step), log.Error(err))
	}
	return err
}

func (s *System) userData(id core.ColliderID) any {
	if c := s.world.Collider(id); c != nil {
		return c.UserData
	}
	return nil
}

func (s *System) publish(payloads []ContactEvent) error {
	if s.bus == nil {
		return nil
	}
	var all error
	for _, p := range payloads {
		ev := bus.NewEvent(EventType(p.Kind), eventSource, p)
		all = errors.Join(all, s.bus.PublishToTopic(s.config.Topic, ev))
	}
	return all
}

// WithWorld runs fn while holding the system lock. Readers such as snapshot
// publishers use it to observe a consistent world between steps.
func (s *System) WithWorld(fn func(world *core.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// Alpha is the fraction of a fixed step left in the accumulator, for render
// interpolation.
func (s *System) Alpha() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulator / s.config.FixedDeltaTime
}

func (s *System) Metrics() systems.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}
