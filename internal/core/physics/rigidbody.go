package physics

import "github.com/chewxy/math32"

type BodyType uint8

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// ParseBodyType is the inverse of BodyType.String.
func ParseBodyType(s string) (BodyType, bool) {
	switch s {
	case "static":
		return BodyStatic, true
	case "dynamic":
		return BodyDynamic, true
	case "kinematic":
		return BodyKinematic, true
	default:
		return BodyDynamic, false
	}
}

// Rigidbody carries the dynamic state of one simulated anchor.
type Rigidbody struct {
	id    BodyID
	world *World

	bodyType BodyType

	mass           float32
	invMass        float32
	inertia        float32
	invInertia     float32
	inertiaFixed   bool
	inertiaSource  ColliderID
	inertiaShape   Shape
	hasShape       bool
	linearDamping  float32
	angularDamping float32
	gravityScale   float32

	velocity        Vector2
	angularVelocity float32
	force           Vector2
	torque          float32

	fixedRotation     bool
	affectedByGravity bool
	friction          float32
	restitution       float32
	useCCD            bool

	asleep     bool
	canSleep   bool
	sleepTimer float32

	anchor Anchor

	// working copy of the anchor transform during a step
	position Vector2
	rotation float32

	UserData any
}

func NewRigidbody(bodyType BodyType) *Rigidbody {
	rb := &Rigidbody{
		bodyType:          bodyType,
		mass:              1,
		gravityScale:      1,
		affectedByGravity: true,
		friction:          0.3,
		canSleep:          true,
		anchor:            &Point{},
	}
	rb.updateMassData()
	return rb
}

func (rb *Rigidbody) ID() BodyID     { return rb.id }
func (rb *Rigidbody) Type() BodyType { return rb.bodyType }

func (rb *Rigidbody) SetType(bodyType BodyType) {
	if rb.bodyType == bodyType {
		return
	}
	rb.bodyType = bodyType
	rb.force, rb.torque = Vector2{}, 0
	if bodyType == BodyStatic {
		rb.velocity, rb.angularVelocity = Vector2{}, 0
	}
	rb.updateMassData()
	rb.wake()
}

func (rb *Rigidbody) Anchor() Anchor { return rb.anchor }

func (rb *Rigidbody) SetAnchor(anchor Anchor) {
	if anchor == nil {
		anchor = &Point{}
	}
	rb.anchor = anchor
}

func (rb *Rigidbody) Position() Vector2 { return rb.anchor.WorldPosition() }
func (rb *Rigidbody) Rotation() float32 { return rb.anchor.WorldRotation() }

// SetPosition teleports the body and wakes it.
func (rb *Rigidbody) SetPosition(p Vector2) {
	rb.anchor.SetWorldPosition(p)
	rb.wake()
}

func (rb *Rigidbody) SetRotation(r float32) {
	rb.anchor.SetWorldRotation(r)
	rb.wake()
}

func (rb *Rigidbody) Mass() float32 { return rb.mass }

// InverseMass is zero for static bodies regardless of the stored mass.
func (rb *Rigidbody) InverseMass() float32 { return rb.invMass }

func (rb *Rigidbody) Inertia() float32        { return rb.inertia }
func (rb *Rigidbody) InverseInertia() float32 { return rb.invInertia }

// SetMass rejects non-positive values and keeps the previous mass.
func (rb *Rigidbody) SetMass(mass float32) error {
	if !(mass > 0) || math32.IsInf(mass, 1) {
		return ErrInvalidMass
	}
	rb.mass = mass
	rb.updateMassData()
	return nil
}

// SetInertia overrides the shape-derived rotational inertia.
func (rb *Rigidbody) SetInertia(inertia float32) error {
	if !(inertia > 0) {
		return ErrInvalidInertia
	}
	rb.inertia = inertia
	rb.inertiaFixed = true
	rb.updateMassData()
	return nil
}

// linkShape records the first collider registered for this body as the
// source of its inertia; later shape changes of that collider refresh it.
func (rb *Rigidbody) linkShape(id ColliderID, shape Shape) {
	if rb.hasShape && rb.inertiaSource != id {
		return
	}
	rb.inertiaSource = id
	rb.inertiaShape = shape
	rb.hasShape = true
	rb.updateMassData()
}

func (rb *Rigidbody) unlinkShape(id ColliderID) {
	if !rb.hasShape || rb.inertiaSource != id {
		return
	}
	rb.hasShape = false
	rb.inertiaSource = ColliderID{}
	rb.updateMassData()
}

func (rb *Rigidbody) updateMassData() {
	if !rb.inertiaFixed {
		if rb.hasShape {
			rb.inertia = rb.inertiaShape.MomentOfInertia(rb.mass)
		} else {
			rb.inertia = rb.mass
		}
	}

	if rb.bodyType == BodyStatic {
		rb.invMass, rb.invInertia = 0, 0
		return
	}

	rb.invMass = 1 / rb.mass
	rb.invInertia = 0
	if !rb.fixedRotation && rb.inertia > 0 {
		rb.invInertia = 1 / rb.inertia
	}
}

func (rb *Rigidbody) LinearDamping() float32  { return rb.linearDamping }
func (rb *Rigidbody) AngularDamping() float32 { return rb.angularDamping }

func (rb *Rigidbody) SetLinearDamping(d float32) error {
	if d < 0 || math32.IsNaN(d) {
		return ErrInvalidDamping
	}
	rb.linearDamping = d
	return nil
}

func (rb *Rigidbody) SetAngularDamping(d float32) error {
	if d < 0 || math32.IsNaN(d) {
		return ErrInvalidDamping
	}
	rb.angularDamping = d
	return nil
}

func (rb *Rigidbody) GravityScale() float32     { return rb.gravityScale }
func (rb *Rigidbody) SetGravityScale(s float32) { rb.gravityScale = s }

func (rb *Rigidbody) AffectedByGravity() bool      { return rb.affectedByGravity }
func (rb *Rigidbody) SetAffectedByGravity(on bool) { rb.affectedByGravity = on }
func (rb *Rigidbody) FixedRotation() bool          { return rb.fixedRotation }
func (rb *Rigidbody) UseCCD() bool                 { return rb.useCCD }

// SetUseCCD only records the flag; continuous detection is not performed.
func (rb *Rigidbody) SetUseCCD(on bool) { rb.useCCD = on }

func (rb *Rigidbody) SetFixedRotation(fixed bool) {
	rb.fixedRotation = fixed
	if fixed {
		rb.angularVelocity, rb.torque = 0, 0
	}
	rb.updateMassData()
}

func (rb *Rigidbody) Friction() float32    { return rb.friction }
func (rb *Rigidbody) Restitution() float32 { return rb.restitution }

// SetFriction clamps to [0, 1].
func (rb *Rigidbody) SetFriction(f float32) { rb.friction = clamp(f, 0, 1) }

// SetRestitution clamps to [0, 1].
func (rb *Rigidbody) SetRestitution(e float32) { rb.restitution = clamp(e, 0, 1) }

func (rb *Rigidbody) Velocity() Vector2        { return rb.velocity }
func (rb *Rigidbody) AngularVelocity() float32 { return rb.angularVelocity }

// SetVelocity is ignored for static bodies. It wakes the body.
func (rb *Rigidbody) SetVelocity(v Vector2) {
	if rb.bodyType == BodyStatic {
		return
	}
	rb.velocity = v
	rb.wake()
}

func (rb *Rigidbody) SetAngularVelocity(w float32) {
	if rb.bodyType == BodyStatic || rb.fixedRotation {
		return
	}
	rb.angularVelocity = w
	rb.wake()
}

func (rb *Rigidbody) Force() Vector2  { return rb.force }
func (rb *Rigidbody) Torque() float32 { return rb.torque }

// ApplyForce accumulates f, applied at the world-space point. A point off
// the centre of mass also produces torque.
func (rb *Rigidbody) ApplyForce(f, point Vector2) {
	if rb.bodyType != BodyDynamic {
		return
	}
	rb.force = rb.force.Add(f)
	if !rb.fixedRotation {
		if r := point.Sub(rb.Position()); !r.IsZero() {
			rb.torque += r.Cross(f)
		}
	}
	rb.wake()
}

func (rb *Rigidbody) ApplyForceAtCenter(f Vector2) {
	if rb.bodyType != BodyDynamic {
		return
	}
	rb.force = rb.force.Add(f)
	rb.wake()
}

func (rb *Rigidbody) ApplyTorque(t float32) {
	if rb.bodyType != BodyDynamic || rb.fixedRotation {
		return
	}
	rb.torque += t
	rb.wake()
}

// ApplyImpulse changes velocity immediately, bypassing the force accumulator.
func (rb *Rigidbody) ApplyImpulse(j, point Vector2) {
	if rb.bodyType != BodyDynamic {
		return
	}
	rb.applyImpulse(j, point.Sub(rb.Position()))
	rb.wake()
}

func (rb *Rigidbody) ApplyAngularImpulse(j float32) {
	if rb.bodyType != BodyDynamic || rb.fixedRotation {
		return
	}
	rb.angularVelocity += rb.invInertia * j
	rb.wake()
}

// applyImpulse is the solver path: r is the contact offset from the centre
// and the body's sleep state is left alone.
func (rb *Rigidbody) applyImpulse(j, r Vector2) {
	rb.velocity = rb.velocity.Add(j.Scale(rb.invMass))
	if !rb.fixedRotation {
		rb.angularVelocity += rb.invInertia * r.Cross(j)
	}
}

func (rb *Rigidbody) IsAsleep() bool { return rb.asleep }
func (rb *Rigidbody) IsAwake() bool  { return !rb.asleep }
func (rb *Rigidbody) CanSleep() bool { return rb.canSleep }

// SetAsleep(false) wakes immediately. Putting a body to sleep zeroes its
// velocities; only dynamic bodies can sleep.
func (rb *Rigidbody) SetAsleep(asleep bool) {
	if !asleep {
		rb.wake()
		return
	}
	if rb.bodyType != BodyDynamic {
		return
	}
	rb.sleep()
}

func (rb *Rigidbody) SetCanSleep(can bool) {
	rb.canSleep = can
	if !can {
		rb.wake()
	}
}

func (rb *Rigidbody) wake() {
	rb.asleep = false
	rb.sleepTimer = 0
}

func (rb *Rigidbody) sleep() {
	rb.asleep = true
	rb.sleepTimer = 0
	rb.velocity, rb.angularVelocity = Vector2{}, 0
	rb.force, rb.torque = Vector2{}, 0
}

// simulated reports whether the body takes part in integration this step.
func (rb *Rigidbody) simulated() bool {
	return rb.bodyType != BodyStatic && !rb.asleep
}

// solverInverseMass treats sleeping and non-dynamic bodies as immovable.
func (rb *Rigidbody) solverInverseMass() (float32, float32) {
	if rb == nil || rb.bodyType != BodyDynamic || rb.asleep {
		return 0, 0
	}
	return rb.invMass, rb.invInertia
}

func (rb *Rigidbody) integrateForces(gravity Vector2, dt float32) {
	if !rb.simulated() {
		return
	}
	if rb.bodyType == BodyKinematic {
		rb.force, rb.torque = Vector2{}, 0
		return
	}

	acc := rb.force.Scale(rb.invMass)
	if rb.affectedByGravity {
		acc = acc.Add(gravity.Scale(rb.gravityScale))
	}
	rb.velocity = rb.velocity.Add(acc.Scale(dt))
	rb.velocity = rb.velocity.Scale(1 / (1 + rb.linearDamping*dt))

	if !rb.fixedRotation {
		rb.angularVelocity += rb.torque * rb.invInertia * dt
		rb.angularVelocity *= 1 / (1 + rb.angularDamping*dt)
	}

	rb.force, rb.torque = Vector2{}, 0
}

func (rb *Rigidbody) integrateVelocities(dt float32) {
	if !rb.simulated() {
		return
	}
	rb.position = rb.position.Add(rb.velocity.Scale(dt))
	if !rb.fixedRotation {
		rb.rotation += rb.angularVelocity * dt
	}
	rb.anchor.SetWorldPosition(rb.position)
	rb.anchor.SetWorldRotation(rb.rotation)
}

func (rb *Rigidbody) updateSleep(cfg Config, dt float32) {
	if rb.bodyType != BodyDynamic || rb.asleep {
		return
	}
	if !rb.canSleep {
		rb.sleepTimer = 0
		return
	}

	linTol := cfg.SleepLinearTolerance
	angTol := cfg.SleepAngularTolerance
	if rb.velocity.LengthSquared() < linTol*linTol && rb.angularVelocity*rb.angularVelocity < angTol*angTol {
		rb.sleepTimer += dt
		if rb.sleepTimer >= cfg.SleepTime {
			rb.sleep()
		}
		return
	}
	rb.sleepTimer = 0
}

// movingFasterThan reports whether an awake body exceeds the sleep tolerances.
func (rb *Rigidbody) movingFasterThan(cfg Config) bool {
	if rb == nil || !rb.simulated() {
		return false
	}
	linTol := cfg.SleepLinearTolerance
	angTol := cfg.SleepAngularTolerance
	return rb.velocity.LengthSquared() > linTol*linTol || rb.angularVelocity*rb.angularVelocity > angTol*angTol
}
