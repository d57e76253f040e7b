package systems

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrSystemExists   = errors.New("system already registered")
	ErrSystemNotFound = errors.New("system not found")
)

// System is a unit of engine logic driven by the Manager.
type System interface {
	Name() string
	Priority() Priority

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error

	// Update receives the frame time; FixedUpdate the fixed simulation step.
	Update(deltaTime float64) error
	FixedUpdate(fixedDeltaTime float64) error

	Metrics() Metrics
}

// Priority orders systems; higher runs first.
type Priority uint16

const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	MinExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
	EntitiesProcessed    uint64
}

// Record folds one execution into the metrics.
func (m *Metrics) Record(start time.Time, entities int, err error) {
	elapsed := time.Since(start)
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	if m.MinExecutionTime == 0 || elapsed < m.MinExecutionTime {
		m.MinExecutionTime = elapsed
	}
	m.LastExecutionTime = start
	m.EntitiesProcessed += uint64(entities)
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}

// Manager runs registered systems in priority order. Systems with equal
// priority keep their registration order.
type Manager struct {
	mu      sync.RWMutex
	systems []System
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Register(s System) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.systems {
		if cur.Name() == s.Name() {
			return ErrSystemExists
		}
	}
	m.systems = append(m.systems, s)
	sort.SliceStable(m.systems, func(i, j int) bool {
		return m.systems[i].Priority() > m.systems[j].Priority()
	})
	return nil
}

func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.systems {
		if cur.Name() == name {
			m.systems = append(m.systems[:i], m.systems[i+1:]...)
			return nil
		}
	}
	return ErrSystemNotFound
}

func (m *Manager) Get(name string) (System, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, cur := range m.systems {
		if cur.Name() == name {
			return cur, true
		}
	}
	return nil, false
}

// ExecutionOrder lists system names in the order they run.
func (m *Manager) ExecutionOrder() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.systems))
	for i, s := range m.systems {
		names[i] = s.Name()
	}
	return names
}

func (m *Manager) snapshot() []System {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]System, len(m.systems))
	copy(out, m.systems)
	return out
}

// InitializeAll stops at the first failing system.
func (m *Manager) InitializeAll(ctx context.Context) error {
	for _, s := range m.snapshot() {
		if err := s.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownAll runs in reverse order and joins the errors.
func (m *Manager) ShutdownAll(ctx context.Context) error {
	systems := m.snapshot()
	var all error
	for i := len(systems) - 1; i >= 0; i-- {
		all = errors.Join(all, systems[i].Shutdown(ctx))
	}
	return all
}

func (m *Manager) Update(deltaTime float64) error {
	var all error
	for _, s := range m.snapshot() {
		all = errors.Join(all, s.Update(deltaTime))
	}
	return all
}

func (m *Manager) FixedUpdate(fixedDeltaTime float64) error {
	var all error
	for _, s := range m.snapshot() {
		all = errors.Join(all, s.FixedUpdate(fixedDeltaTime))
	}
	return all
}
