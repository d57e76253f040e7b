package physics

import (
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/pkg/generic"
)

// CollisionCallback is invoked once per resolved non-trigger contact.
type CollisionCallback func(info CollisionInfo)

type Option func(*World)

func WithLogger(logger log.Log) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Stats is a point-in-time summary of a world.
type Stats struct {
	Bodies    int
	Colliders int
	Awake     int
	Touching  int
	Contacts  int
	Steps     uint64
}

// World owns the body and collider registries and runs the step pipeline.
// It does not own the bodies or colliders themselves and is not safe for
// concurrent use.
type World struct {
	config  Config
	enabled bool
	logger  log.Log

	bodyArena     *generic.Arena[*Rigidbody]
	colliderArena *generic.Arena[*Collider]
	bodies        []*Rigidbody
	colliders     []*Collider
	nextSeq       uint64

	touching map[pairKey]pairState
	contacts []contact

	pending []pendingEvent
	events  []Event

	onCollision CollisionCallback

	locked          bool
	deferredAdds    []func()
	deferredRemoves []func()

	steps uint64
}

func NewWorld(config Config, opts ...Option) *World {
	w := &World{
		config:        config.withDefaults(),
		enabled:       true,
		logger:        log.Nop(),
		bodyArena:     generic.NewArena[*Rigidbody](64),
		colliderArena: generic.NewArena[*Collider](64),
		touching:      make(map[pairKey]pairState),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Config() Config { return w.config }

func (w *World) Gravity() Vector2     { return w.config.Gravity }
func (w *World) SetGravity(g Vector2) { w.config.Gravity = g }

func (w *World) IsEnabled() bool         { return w.enabled }
func (w *World) SetEnabled(enabled bool) { w.enabled = enabled }

func (w *World) SetCollisionCallback(fn CollisionCallback) { w.onCollision = fn }

// IsLocked reports whether a step is in progress. Registry changes made while
// locked take effect at the end of the step.
func (w *World) IsLocked() bool { return w.locked }

func (w *World) Steps() uint64 { return w.steps }

// AddRigidbody registers rb and returns its handle. Registering a body that
// is already part of this world returns the existing handle.
func (w *World) AddRigidbody(rb *Rigidbody) BodyID {
	if rb == nil {
		return BodyID{}
	}
	if rb.world == w && w.bodyArena.Contains(generic.Handle(rb.id)) {
		return rb.id
	}

	rb.id = BodyID(w.bodyArena.Insert(rb))
	rb.world = w
	if rb.bodyType == BodyStatic {
		rb.velocity, rb.angularVelocity = Vector2{}, 0
	}

	add := func() {
		w.bodies = append(w.bodies, rb)
	}
	if w.locked {
		w.deferredAdds = append(w.deferredAdds, add)
		w.logger.Debug("Deferred body registration", log.Stringer("body", rb.id))
	} else {
		add()
		w.logger.Debug("Registered body", log.Stringer("body", rb.id), log.Stringer("type", rb.bodyType))
	}
	return rb.id
}

// RemoveRigidbody deregisters the body. Colliders registered with it stay in
// the world and behave as static geometry. Unknown handles return false.
func (w *World) RemoveRigidbody(id BodyID) bool {
	rb, ok := w.bodyArena.Remove(generic.Handle(id))
	if !ok {
		return false
	}

	remove := func() {
		w.bodies = removeOrdered(w.bodies, rb)
		if !w.bodyArena.Contains(generic.Handle(rb.id)) {
			rb.world = nil
		}
		w.logger.Debug("Removed body", log.Stringer("body", id))
	}
	if w.locked {
		w.deferredRemoves = append(w.deferredRemoves, remove)
	} else {
		remove()
	}
	return true
}

// AddCollider registers c, optionally attached to a body registered with
// this world. A handle issued by another world attaches nothing. A collider
// without an anchor follows the body's anchor.
func (w *World) AddCollider(c *Collider, body BodyID) ColliderID {
	if c == nil {
		return ColliderID{}
	}
	if c.world == w && w.colliderArena.Contains(generic.Handle(c.id)) {
		return c.id
	}

	rb := w.Rigidbody(body)
	if rb == nil || rb.world != w {
		rb, body = nil, BodyID{}
	}
	if c.anchor == nil {
		if rb != nil {
			c.anchor = rb.anchor
		} else {
			c.anchor = &Point{}
		}
	}

	c.id = ColliderID(w.colliderArena.Insert(c))
	c.world = w
	c.body = body
	w.nextSeq++
	c.seq = w.nextSeq
	if rb != nil {
		rb.linkShape(c.id, c.shape)
	}

	add := func() {
		w.colliders = append(w.colliders, c)
	}
	if w.locked {
		w.deferredAdds = append(w.deferredAdds, add)
		w.logger.Debug("Deferred collider registration", log.Stringer("collider", c.id))
	} else {
		add()
		w.logger.Debug("Registered collider",
			log.Stringer("collider", c.id),
			log.Stringer("shape", c.shape.Kind),
			log.Stringer("body", body),
		)
	}
	return c.id
}

// RemoveCollider deregisters the collider. Pairs it was touching end with an
// exit event delivered to the remaining partner. Exits are fired on a step:
// outside Update they are queued and show up in Events, and reach the
// partner's handlers, when the next enabled Update dispatches. Unknown
// handles return false.
func (w *World) RemoveCollider(id ColliderID) bool {
	c, ok := w.colliderArena.Remove(generic.Handle(id))
	if !ok {
		return false
	}

	remove := func() {
		w.purgePairs(c)
		w.colliders = removeOrdered(w.colliders, c)
		if rb := w.Rigidbody(c.body); rb != nil {
			rb.unlinkShape(c.id)
		}
		if !w.colliderArena.Contains(generic.Handle(c.id)) {
			c.world = nil
		}
		w.logger.Debug("Removed collider", log.Stringer("collider", id))
	}
	if w.locked {
		w.deferredRemoves = append(w.deferredRemoves, remove)
	} else {
		remove()
	}
	return true
}

// purgePairs drops every touching pair involving c and queues the exit
// transitions in registration order.
func (w *World) purgePairs(c *Collider) {
	for _, other := range w.colliders {
		if other == c {
			continue
		}
		key, a, b := orderedPair(c, other)
		state, ok := w.touching[key]
		if !ok {
			continue
		}
		delete(w.touching, key)
		w.pending = append(w.pending, pendingEvent{
			Event: Event{Kind: eventKind(state.trigger, phaseExit), ColliderA: a.id, ColliderB: b.id},
			a:     a,
			b:     b,
		})
	}
}

func (w *World) flushDeferred() {
	adds, removes := w.deferredAdds, w.deferredRemoves
	w.deferredAdds, w.deferredRemoves = nil, nil
	for _, fn := range adds {
		fn()
	}
	for _, fn := range removes {
		fn()
	}
}

// Rigidbody resolves a handle, returning nil for stale or unknown handles.
func (w *World) Rigidbody(id BodyID) *Rigidbody {
	rb, ok := w.bodyArena.Get(generic.Handle(id))
	if !ok {
		return nil
	}
	return rb
}

func (w *World) Collider(id ColliderID) *Collider {
	c, ok := w.colliderArena.Get(generic.Handle(id))
	if !ok {
		return nil
	}
	return c
}

// Bodies returns the registered bodies in registration order.
func (w *World) Bodies() []*Rigidbody {
	out := make([]*Rigidbody, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Colliders returns the registered colliders in registration order.
func (w *World) Colliders() []*Collider {
	out := make([]*Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// Events returns the contact events recorded since the last DrainEvents.
func (w *World) Events() []Event {
	return w.events
}

// DrainEvents hands over the recorded events and clears the queue.
func (w *World) DrainEvents() []Event {
	events := w.events
	w.events = nil
	return events
}

func (w *World) Stats() Stats {
	s := Stats{
		Bodies:    len(w.bodies),
		Colliders: len(w.colliders),
		Touching:  len(w.touching),
		Contacts:  len(w.contacts),
		Steps:     w.steps,
	}
	for _, rb := range w.bodies {
		if rb.bodyType != BodyStatic && !rb.asleep {
			s.Awake++
		}
	}
	return s
}

// Step advances the world with the configured iteration count.
func (w *World) Step(dt float32) {
	w.Update(dt, 0)
}

// Update advances the simulation by dt. Non-positive iterations select the
// configured default. A disabled world or a non-positive dt is a no-op.
func (w *World) Update(dt float32, iterations int) {
	if !w.enabled || !(dt > 0) || w.locked {
		return
	}
	if iterations <= 0 {
		iterations = w.config.Iterations
	}

	w.locked = true
	w.flushDeferred()

	w.readAnchors()
	for _, rb := range w.bodies {
		rb.integrateForces(w.config.Gravity, dt)
	}
	w.detect()
	w.wakeTouched()
	w.resolve(iterations)
	for _, rb := range w.bodies {
		rb.integrateVelocities(dt)
	}
	for _, rb := range w.bodies {
		rb.updateSleep(w.config, dt)
		if rb.bodyType == BodyStatic {
			rb.velocity, rb.angularVelocity = Vector2{}, 0
		}
	}
	w.steps++
	w.dispatch()

	w.locked = false
	w.flushDeferred()
}

func (w *World) readAnchors() {
	for _, rb := range w.bodies {
		rb.position = rb.anchor.WorldPosition()
		rb.rotation = rb.anchor.WorldRotation()
	}
	for _, c := range w.colliders {
		c.center = c.WorldCenter()
	}
}

func (w *World) bodyOf(c *Collider) *Rigidbody {
	if !c.body.Valid() {
		return nil
	}
	return w.Rigidbody(c.body)
}

// movable reports whether the collider can ever be displaced by the solver
// or its own velocity.
func (w *World) movable(c *Collider) bool {
	rb := w.bodyOf(c)
	return rb != nil && rb.bodyType != BodyStatic
}

// detect runs the pair tests in registration order and advances each pair's
// touching state.
func (w *World) detect() {
	w.contacts = w.contacts[:0]

	for i := 0; i < len(w.colliders); i++ {
		a := w.colliders[i]
		for j := i + 1; j < len(w.colliders); j++ {
			b := w.colliders[j]
			key := pairKey{a: a.id, b: b.id}

			var (
				m   manifold
				hit bool
			)
			if w.eligible(a, b) && a.shape.Bounds(a.center).Overlaps(b.shape.Bounds(b.center)) {
				m, hit = collide(a.shape, a.center, b.shape, b.center)
			}

			state, was := w.touching[key]
			switch {
			case hit && !was:
				state = pairState{trigger: a.trigger || b.trigger}
				w.touching[key] = state
				w.queue(eventKind(state.trigger, phaseEnter), a, b, m.info(a.id, b.id))
			case hit && was:
				w.queue(eventKind(state.trigger, phaseStay), a, b, m.info(a.id, b.id))
			case !hit && was:
				delete(w.touching, key)
				w.queue(eventKind(state.trigger, phaseExit), a, b, CollisionInfo{ColliderA: a.id, ColliderB: b.id})
				continue
			default:
				continue
			}

			if !state.trigger {
				w.contacts = append(w.contacts, newContact(a, b, w.bodyOf(a), w.bodyOf(b), m))
			}
		}
	}
}

func (w *World) eligible(a, b *Collider) bool {
	if a.body.Valid() && a.body == b.body {
		return false
	}
	if !w.movable(a) && !w.movable(b) {
		return false
	}
	return CanCollide(a, b)
}

func (w *World) queue(kind EventKind, a, b *Collider, info CollisionInfo) {
	w.pending = append(w.pending, pendingEvent{
		Event: Event{Kind: kind, ColliderA: a.id, ColliderB: b.id, Info: info},
		a:     a,
		b:     b,
	})
}

// wakeTouched wakes sleeping bodies hit by an awake body that moves faster
// than the sleep tolerance.
func (w *World) wakeTouched() {
	for i := range w.contacts {
		ct := &w.contacts[i]
		if ct.bodyA != nil && ct.bodyA.asleep && ct.bodyB.movingFasterThan(w.config) {
			ct.bodyA.wake()
		}
		if ct.bodyB != nil && ct.bodyB.asleep && ct.bodyA.movingFasterThan(w.config) {
			ct.bodyB.wake()
		}
	}
}

// dispatch runs handlers for the queued transitions and moves them to the
// event queue. Handlers only run on colliders that are still registered.
func (w *World) dispatch() {
	pending := w.pending
	w.pending = nil

	for _, ev := range pending {
		if w.registered(ev.a) {
			ev.a.notify(ev.Kind, ev.b)
		}
		if w.registered(ev.b) {
			ev.b.notify(ev.Kind, ev.a)
		}
		w.events = append(w.events, ev.Event)
	}

	if w.onCollision != nil {
		for i := range w.contacts {
			if w.contacts[i].active {
				w.onCollision(w.contacts[i].info)
			}
		}
	}
}

func (w *World) registered(c *Collider) bool {
	return c.world == w && w.colliderArena.Contains(generic.Handle(c.id))
}

func orderedPair(x, y *Collider) (pairKey, *Collider, *Collider) {
	if x.seq < y.seq {
		return pairKey{a: x.id, b: y.id}, x, y
	}
	return pairKey{a: y.id, b: x.id}, y, x
}

func removeOrdered[T comparable](items []T, item T) []T {
	for i, v := range items {
		if v == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
