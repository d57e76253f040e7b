package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics"
	"github.com/zeusync/physics2d/internal/core/scene"
)

// bodyType defaults to dynamic when the type is left empty.
func (b *BodyConfig) bodyType() (physics.BodyType, bool) {
	if b.Type == "" {
		return physics.BodyDynamic, true
	}
	return physics.ParseBodyType(strings.ToLower(b.Type))
}

// NewScene creates a world from the settings, builds the objects into a new
// scene and activates it.
func (c *SceneConfig) NewScene(logger log.Log) (*scene.Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	world := physics.NewWorld(c.World.PhysicsConfig(), physics.WithLogger(logger))
	s := scene.New(c.Name, world, logger)
	if _, err := c.Build(s); err != nil {
		return nil, err
	}
	if err := s.Activate(); err != nil {
		return nil, errors.Wrap(err, "activate scene")
	}
	return s, nil
}

// Build creates the configured objects in s, in declaration order. Objects
// are left inactive.
func (c *SceneConfig) Build(s *scene.Scene) ([]*scene.GameObject, error) {
	objects := make([]*scene.GameObject, 0, len(c.Objects))
	byName := make(map[string]*scene.GameObject, len(c.Objects))

	for i := range c.Objects {
		oc := &c.Objects[i]
		obj := s.NewObject(oc.Name, oc.Position.Vector())
		if oc.Parent != "" {
			parent, ok := byName[oc.Parent]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownParent, "%q -> %q", oc.Name, oc.Parent)
			}
			if err := obj.Transform().SetParent(parent.Transform()); err != nil {
				return nil, errors.Wrapf(err, "object %q", oc.Name)
			}
			obj.Transform().SetLocalPosition(oc.Position.Vector())
		}
		obj.Transform().SetLocalRotation(oc.Rotation)

		if oc.Body != nil {
			rb, err := oc.Body.build()
			if err != nil {
				return nil, errors.Wrapf(err, "object %q body", oc.Name)
			}
			if err = obj.AddComponent(scene.NewRigidbodyComponent(rb)); err != nil {
				return nil, errors.Wrapf(err, "object %q", oc.Name)
			}
		}
		if oc.Collider != nil {
			col, err := oc.Collider.build()
			if err != nil {
				return nil, errors.Wrapf(err, "object %q collider", oc.Name)
			}
			if err = obj.AddComponent(scene.NewColliderComponent(col)); err != nil {
				return nil, errors.Wrapf(err, "object %q", oc.Name)
			}
		}

		objects = append(objects, obj)
		byName[oc.Name] = obj
	}
	return objects, nil
}

func (b *BodyConfig) build() (*physics.Rigidbody, error) {
	bodyType, ok := b.bodyType()
	if !ok {
		return nil, errors.Wrapf(ErrInvalidObject, "unknown body type %q", b.Type)
	}
	rb := physics.NewRigidbody(bodyType)

	if b.Mass != nil {
		if err := rb.SetMass(*b.Mass); err != nil {
			return nil, err
		}
	}
	if b.Inertia != nil {
		if err := rb.SetInertia(*b.Inertia); err != nil {
			return nil, err
		}
	}
	if b.LinearDamping != nil {
		if err := rb.SetLinearDamping(*b.LinearDamping); err != nil {
			return nil, err
		}
	}
	if b.AngularDamping != nil {
		if err := rb.SetAngularDamping(*b.AngularDamping); err != nil {
			return nil, err
		}
	}
	if b.GravityScale != nil {
		rb.SetGravityScale(*b.GravityScale)
	}
	if b.AffectedByGravity != nil {
		rb.SetAffectedByGravity(*b.AffectedByGravity)
	}
	if b.Friction != nil {
		rb.SetFriction(*b.Friction)
	}
	if b.Restitution != nil {
		rb.SetRestitution(*b.Restitution)
	}
	if b.CanSleep != nil {
		rb.SetCanSleep(*b.CanSleep)
	}
	rb.SetFixedRotation(b.FixedRotation)
	if b.Velocity != nil {
		rb.SetVelocity(b.Velocity.Vector())
	}
	rb.SetAngularVelocity(b.AngularVelocity)
	if b.Asleep {
		rb.SetAsleep(true)
	}
	return rb, nil
}

func (c *ColliderConfig) build() (*physics.Collider, error) {
	var (
		col *physics.Collider
		err error
	)
	switch strings.ToLower(c.Shape) {
	case "box":
		col, err = physics.NewBoxCollider(c.Width, c.Height)
	case "circle":
		col, err = physics.NewCircleCollider(c.Radius)
	case "polygon":
		col, err = physics.NewPolygonCollider(nil)
	default:
		err = errors.Wrapf(ErrInvalidObject, "unknown shape %q", c.Shape)
	}
	if err != nil {
		return nil, err
	}

	col.SetOffset(c.Offset.Vector())
	col.SetTrigger(c.Trigger)
	if err = col.SetLayer(c.Layer); err != nil {
		return nil, err
	}
	if c.Mask != nil {
		col.SetCollisionMask(*c.Mask)
	}
	return col, nil
}
