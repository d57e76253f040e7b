package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/zeusync/physics2d/internal/core/physics"
)

// Validate checks everything Build would otherwise fail on halfway through.
func (c *SceneConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Objects))
	for i := range c.Objects {
		obj := &c.Objects[i]
		if obj.Name == "" {
			return errors.Wrapf(ErrInvalidObject, "object #%d has no name", i)
		}
		if _, dup := seen[obj.Name]; dup {
			return errors.Wrapf(ErrDuplicateObject, "%q", obj.Name)
		}
		if obj.Parent != "" {
			if _, ok := seen[obj.Parent]; !ok {
				return errors.Wrapf(ErrUnknownParent, "%q -> %q", obj.Name, obj.Parent)
			}
		}
		seen[obj.Name] = struct{}{}

		if obj.Body != nil {
			if err := obj.Body.validate(); err != nil {
				return errors.Wrapf(err, "object %q body", obj.Name)
			}
		}
		if obj.Collider != nil {
			if err := obj.Collider.validate(); err != nil {
				return errors.Wrapf(err, "object %q collider", obj.Name)
			}
		}
	}
	return nil
}

func (w WorldConfig) validate() error {
	switch {
	case w.Iterations < 0:
		return errors.Wrapf(ErrInvalidWorld, "iterations %d", w.Iterations)
	case w.FixedDeltaTime < 0:
		return errors.Wrapf(ErrInvalidWorld, "fixed_dt %v", w.FixedDeltaTime)
	case w.MaxSubSteps < 0:
		return errors.Wrapf(ErrInvalidWorld, "max_sub_steps %d", w.MaxSubSteps)
	}
	return nil
}

func (b *BodyConfig) validate() error {
	if _, ok := b.bodyType(); !ok {
		return errors.Wrapf(ErrInvalidObject, "unknown body type %q", b.Type)
	}
	if b.Mass != nil && !(*b.Mass > 0) {
		return physics.ErrInvalidMass
	}
	if b.Inertia != nil && !(*b.Inertia > 0) {
		return physics.ErrInvalidInertia
	}
	if (b.LinearDamping != nil && *b.LinearDamping < 0) || (b.AngularDamping != nil && *b.AngularDamping < 0) {
		return physics.ErrInvalidDamping
	}
	return nil
}

func (c *ColliderConfig) validate() error {
	switch strings.ToLower(c.Shape) {
	case "box":
		if !(c.Width > 0) || !(c.Height > 0) {
			return physics.ErrInvalidDimension
		}
	case "circle":
		if !(c.Radius > 0) {
			return physics.ErrInvalidDimension
		}
	case "polygon":
		return physics.ErrUnsupportedShape
	default:
		return errors.Wrapf(ErrInvalidObject, "unknown shape %q", c.Shape)
	}
	if c.Layer < 0 || c.Layer > 31 {
		return physics.ErrInvalidLayer
	}
	return nil
}
