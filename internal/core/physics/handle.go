package physics

import (
	"fmt"

	"github.com/zeusync/physics2d/pkg/generic"
)

// BodyID is a stable handle to a rigidbody registered with a World. Handles
// of removed bodies never alias later registrations.
type BodyID generic.Handle

func (id BodyID) Valid() bool { return !generic.Handle(id).IsZero() }

func (id BodyID) String() string {
	h := generic.Handle(id)
	return fmt.Sprintf("body#%d.%d", h.Index(), h.Generation())
}

// ColliderID is a stable handle to a collider registered with a World.
type ColliderID generic.Handle

func (id ColliderID) Valid() bool { return !generic.Handle(id).IsZero() }

func (id ColliderID) String() string {
	h := generic.Handle(id)
	return fmt.Sprintf("collider#%d.%d", h.Index(), h.Generation())
}
