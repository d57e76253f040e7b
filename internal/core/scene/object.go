package scene

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/physics"
)

// GameObject owns a transform and a set of capability-keyed components.
type GameObject struct {
	guid      uuid.UUID
	name      string
	transform *Transform
	scene     *Scene

	components map[ComponentID]Component
	active     bool
	destroyed  bool
}

func (o *GameObject) GUID() uuid.UUID       { return o.guid }
func (o *GameObject) Name() string          { return o.name }
func (o *GameObject) SetName(name string)   { o.name = name }
func (o *GameObject) Transform() *Transform { return o.transform }
func (o *GameObject) Scene() *Scene         { return o.scene }
func (o *GameObject) IsActive() bool        { return o.active }
func (o *GameObject) IsDestroyed() bool     { return o.destroyed }

// AddComponent fills the component's slot. On an active object the component
// attaches immediately.
func (o *GameObject) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if o.destroyed {
		return ErrObjectDestroyed
	}
	id := c.TypeID()
	if _, exists := o.components[id]; exists {
		return ErrComponentExists
	}

	if b, ok := c.(objectBound); ok {
		b.bind(o)
	}
	o.components[id] = c
	if o.active {
		if err := c.OnAttach(o.scene.world); err != nil {
			delete(o.components, id)
			return err
		}
	}
	return nil
}

// RemoveComponent empties a slot, detaching the component first on an active
// object.
func (o *GameObject) RemoveComponent(id ComponentID) error {
	c, ok := o.components[id]
	if !ok {
		return ErrComponentMissing
	}
	delete(o.components, id)
	if o.active {
		return c.OnDetach(o.scene.world)
	}
	return nil
}

func (o *GameObject) Component(id ComponentID) (Component, bool) {
	c, ok := o.components[id]
	return c, ok
}

func (o *GameObject) HasComponent(id ComponentID) bool {
	_, ok := o.components[id]
	return ok
}

// Components lists the occupied slots in attach order.
func (o *GameObject) Components() []ComponentID {
	ids := make([]ComponentID, 0, len(o.components))
	for id := range o.components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Rigidbody returns the object's body, or nil.
func (o *GameObject) Rigidbody() *physics.Rigidbody {
	if c, ok := o.components[ComponentRigidbody].(*RigidbodyComponent); ok {
		return c.Body
	}
	return nil
}

// Collider returns the object's collider, or nil.
func (o *GameObject) Collider() *physics.Collider {
	if c, ok := o.components[ComponentCollider].(*ColliderComponent); ok {
		return c.Collider
	}
	return nil
}

// Activate attaches every component in ascending slot order. A failing
// component rolls back the ones attached before it.
func (o *GameObject) Activate() error {
	if o.destroyed {
		return ErrObjectDestroyed
	}
	if o.active {
		return nil
	}

	ids := o.Components()
	for i, id := range ids {
		if err := o.components[id].OnAttach(o.scene.world); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = o.components[ids[j]].OnDetach(o.scene.world)
			}
			return err
		}
	}
	o.active = true
	return nil
}

// Destroy detaches components in reverse slot order and removes the object
// from its scene.
func (o *GameObject) Destroy() error {
	if o.destroyed {
		return nil
	}

	var err error
	if o.active {
		ids := o.Components()
		for i := len(ids) - 1; i >= 0; i-- {
			err = errors.Join(err, o.components[ids[i]].OnDetach(o.scene.world))
		}
	}
	for _, child := range o.transform.Children() {
		_ = child.SetParent(nil)
	}
	_ = o.transform.SetParent(nil)

	o.active = false
	o.destroyed = true
	o.scene.remove(o)
	return err
}
