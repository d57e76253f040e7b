package scene

import (
	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics"
)

// Scene is the object model around a physics world: objects register their
// components with the world on activation and deregister on destruction.
type Scene struct {
	name    string
	world   *physics.World
	logger  log.Log
	objects []*GameObject
}

func New(name string, world *physics.World, logger log.Log) *Scene {
	if logger == nil {
		logger = log.Nop()
	}
	return &Scene{
		name:   name,
		world:  world,
		logger: logger.With(log.String("scene", name)),
	}
}

func (s *Scene) Name() string          { return s.name }
func (s *Scene) World() *physics.World { return s.world }

// NewObject creates an inactive object at position.
func (s *Scene) NewObject(name string, position physics.Vector2) *GameObject {
	obj := &GameObject{
		guid:       uuid.New(),
		name:       name,
		transform:  NewTransform(position, 0),
		scene:      s,
		components: make(map[ComponentID]Component),
	}
	s.objects = append(s.objects, obj)
	return obj
}

// Activate activates every inactive object in creation order.
func (s *Scene) Activate() error {
	for _, obj := range s.objects {
		if obj.active {
			continue
		}
		if err := obj.Activate(); err != nil {
			s.logger.Error("Failed to activate object", log.String("object", obj.name), log.Error(err))
			return err
		}
	}
	s.logger.Debug("Scene activated", log.Int("objects", len(s.objects)))
	return nil
}

// Destroy destroys every object in reverse creation order.
func (s *Scene) Destroy() error {
	var firstErr error
	for i := len(s.objects) - 1; i >= 0; i-- {
		if err := s.objects[i].Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Find returns the first object created with the given name.
func (s *Scene) Find(name string) (*GameObject, bool) {
	for _, obj := range s.objects {
		if obj.name == name {
			return obj, true
		}
	}
	return nil, false
}

func (s *Scene) FindByGUID(id uuid.UUID) (*GameObject, bool) {
	for _, obj := range s.objects {
		if obj.guid == id {
			return obj, true
		}
	}
	return nil, false
}

func (s *Scene) Objects() []*GameObject {
	out := make([]*GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) remove(obj *GameObject) {
	for i, cur := range s.objects {
		if cur == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}
