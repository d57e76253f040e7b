package physics

type EventKind uint8

const (
	CollisionEnter EventKind = iota
	CollisionStay
	CollisionExit
	TriggerEnter
	TriggerStay
	TriggerExit

	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case CollisionEnter:
		return "collision.enter"
	case CollisionStay:
		return "collision.stay"
	case CollisionExit:
		return "collision.exit"
	case TriggerEnter:
		return "trigger.enter"
	case TriggerStay:
		return "trigger.stay"
	case TriggerExit:
		return "trigger.exit"
	default:
		return "unknown"
	}
}

func (k EventKind) IsTrigger() bool {
	return k >= TriggerEnter && k <= TriggerExit
}

// Event records one contact transition. Info is populated for Enter and Stay.
type Event struct {
	Kind      EventKind
	ColliderA ColliderID
	ColliderB ColliderID
	Info      CollisionInfo
}

type contactPhase uint8

const (
	phaseEnter contactPhase = iota
	phaseStay
	phaseExit
)

func eventKind(trigger bool, phase contactPhase) EventKind {
	if trigger {
		return TriggerEnter + EventKind(phase)
	}
	return CollisionEnter + EventKind(phase)
}

type pairKey struct {
	a, b ColliderID
}

type pairState struct {
	trigger bool
}

// pendingEvent keeps the colliders alive until handlers have run.
type pendingEvent struct {
	Event
	a, b *Collider
}
