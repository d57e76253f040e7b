package scene

import (
	"github.com/zeusync/physics2d/internal/core/physics"
)

// ComponentID is the capability tag a component occupies on an object. Lower
// IDs attach first and detach last.
type ComponentID uint32

const (
	ComponentRigidbody ComponentID = iota + 1
	ComponentCollider
	// ComponentUser is the first ID free for components defined outside this
	// package.
	ComponentUser ComponentID = 64
)

// Component is a capability attached to a GameObject. OnAttach runs when the
// object is activated and OnDetach when it is destroyed or the component is
// removed from an active object.
type Component interface {
	TypeID() ComponentID
	TypeName() string
	OnAttach(world *physics.World) error
	OnDetach(world *physics.World) error
}

// objectBound components learn their owning object when added.
type objectBound interface {
	bind(obj *GameObject)
}

// RigidbodyComponent registers a body anchored at the object's transform.
type RigidbodyComponent struct {
	Body *physics.Rigidbody

	object *GameObject
	id     physics.BodyID
}

func NewRigidbodyComponent(body *physics.Rigidbody) *RigidbodyComponent {
	return &RigidbodyComponent{Body: body}
}

func (c *RigidbodyComponent) TypeID() ComponentID    { return ComponentRigidbody }
func (c *RigidbodyComponent) TypeName() string       { return "Rigidbody" }
func (c *RigidbodyComponent) BodyID() physics.BodyID { return c.id }
func (c *RigidbodyComponent) bind(obj *GameObject)   { c.object = obj }

func (c *RigidbodyComponent) OnAttach(world *physics.World) error {
	if c.Body == nil {
		return ErrNilComponent
	}
	if c.object != nil {
		c.Body.SetAnchor(c.object.transform)
		c.Body.UserData = c.object
	}
	c.id = world.AddRigidbody(c.Body)
	return nil
}

func (c *RigidbodyComponent) OnDetach(world *physics.World) error {
	world.RemoveRigidbody(c.id)
	c.id = physics.BodyID{}
	return nil
}

// ColliderComponent registers a collider on the object's transform, driven by
// the object's rigidbody when it has one.
type ColliderComponent struct {
	Collider *physics.Collider

	object *GameObject
	id     physics.ColliderID
}

func NewColliderComponent(collider *physics.Collider) *ColliderComponent {
	return &ColliderComponent{Collider: collider}
}

func (c *ColliderComponent) TypeID() ComponentID            { return ComponentCollider }
func (c *ColliderComponent) TypeName() string               { return "Collider" }
func (c *ColliderComponent) ColliderID() physics.ColliderID { return c.id }
func (c *ColliderComponent) bind(obj *GameObject)           { c.object = obj }

func (c *ColliderComponent) OnAttach(world *physics.World) error {
	if c.Collider == nil {
		return ErrNilComponent
	}
	var body physics.BodyID
	if c.object != nil {
		c.Collider.SetAnchor(c.object.transform)
		c.Collider.UserData = c.object
		if rb, ok := c.object.Component(ComponentRigidbody); ok {
			if rbc, ok := rb.(*RigidbodyComponent); ok {
				body = rbc.id
			}
		}
	}
	c.id = world.AddCollider(c.Collider, body)
	return nil
}

func (c *ColliderComponent) OnDetach(world *physics.World) error {
	world.RemoveCollider(c.id)
	c.id = physics.ColliderID{}
	return nil
}
