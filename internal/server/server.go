package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics"
	physicssys "github.com/zeusync/physics2d/internal/core/systems/physics"
)

// Config holds server configuration
type Config struct {
	// HTTPAddr serves /ws, /snapshot and /healthz.
	HTTPAddr string
	// QUICAddr enables the QUIC snapshot stream when set.
	QUICAddr string

	// TickRate is how often the simulation loop wakes up, in Hz. Each wake-up
	// feeds the elapsed wall time to the physics system.
	TickRate int
	// SnapshotRate caps published snapshots per second.
	SnapshotRate int

	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		HTTPAddr:        "127.0.0.1:8080",
		QUICAddr:        "127.0.0.1:8443",
		TickRate:        60,
		SnapshotRate:    20,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c Config) validate() error {
	switch {
	case c.HTTPAddr == "":
		return errors.Wrap(ErrInvalidConfig, "empty http address")
	case c.TickRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick rate %d", c.TickRate)
	case c.SnapshotRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "snapshot rate %d", c.SnapshotRate)
	}
	return nil
}

// Server drives a physics system in real time and streams its snapshots.
type Server struct {
	config Config
	scene  string
	system *physicssys.System
	hub    *Hub
	logger log.Log

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

func NewServer(config Config, scene string, system *physicssys.System, logger log.Log) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	return &Server{
		config: config,
		scene:  scene,
		system: system,
		hub:    NewHub(),
		logger: logger.With(log.String("component", "server")),
		done:   make(chan struct{}),
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Publish captures the world between steps and broadcasts it.
func (s *Server) Publish() error {
	var snap Snapshot
	s.system.WithWorld(func(world *physics.World) {
		snap = Capture(s.scene, world)
	})
	return s.hub.Publish(snap)
}

// Run serves until ctx is cancelled or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.config.validate(); err != nil {
		return err
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	defer s.stop()

	ln, err := net.Listen("tcp", s.config.HTTPAddr)
	if err != nil {
		return errors.Wrap(err, "failed to start HTTP listener")
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", log.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve HTTP")
		}
		return nil
	})

	if s.config.QUICAddr != "" {
		qln, err := ListenQUIC(s.config.QUICAddr)
		if err != nil {
			_ = ln.Close()
			return err
		}
		g.Go(func() error { return s.ServeQUIC(ctx, qln) })
		g.Go(func() error {
			<-ctx.Done()
			return qln.Close()
		})
	}

	g.Go(func() error { return s.simulate(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		s.stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		s.logger.Error("Server stopped", log.Error(err))
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// simulate advances the physics system by wall time and publishes at most
// SnapshotRate snapshots per second.
func (s *Server) simulate(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
	defer ticker.Stop()

	publishEvery := time.Second / time.Duration(s.config.SnapshotRate)
	last := time.Now()
	var lastPublish time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := s.system.Update(now.Sub(last).Seconds()); err != nil {
				s.logger.Warn("Physics update failed", log.Error(err))
			}
			last = now
			if now.Sub(lastPublish) < publishEvery {
				continue
			}
			lastPublish = now
			if err := s.Publish(); err != nil {
				return err
			}
		}
	}
}
