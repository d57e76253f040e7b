package physics

import (
	core "github.com/zeusync/physics2d/internal/core/physics"
)

const eventSource = "physics"

// Bus event types published for contact transitions.
const (
	EventCollisionEnter = "physics.collision.enter"
	EventCollisionStay  = "physics.collision.stay"
	EventCollisionExit  = "physics.collision.exit"
	EventTriggerEnter   = "physics.trigger.enter"
	EventTriggerStay    = "physics.trigger.stay"
	EventTriggerExit    = "physics.trigger.exit"
)

// EventType maps a contact kind onto its bus event type.
func EventType(kind core.EventKind) string {
	return "physics." + kind.String()
}

// ContactEvent is the payload of every physics bus event. ObjectA and ObjectB
// carry the colliders' UserData when they were still registered at publish
// time.
type ContactEvent struct {
	Step    uint64
	Kind    core.EventKind
	A, B    core.ColliderID
	ObjectA any
	ObjectB any
	Info    core.CollisionInfo
}
