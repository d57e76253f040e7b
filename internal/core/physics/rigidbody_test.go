package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRigidbody_Defaults(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	assert.Equal(t, float32(1), rb.Mass())
	assert.Equal(t, float32(1), rb.InverseMass())
	assert.Equal(t, float32(1), rb.GravityScale())
	assert.True(t, rb.AffectedByGravity())
	assert.True(t, rb.CanSleep())
	assert.False(t, rb.IsAsleep())
	assert.InDelta(t, 0.3, rb.Friction(), 1e-6)
	assert.Equal(t, float32(0), rb.Restitution())
}

func TestRigidbody_StaticHasInfiniteMass(t *testing.T) {
	rb := NewRigidbody(BodyStatic)
	require.NoError(t, rb.SetMass(50))
	assert.Equal(t, float32(50), rb.Mass())
	assert.Zero(t, rb.InverseMass())
	assert.Zero(t, rb.InverseInertia())

	rb.SetVelocity(Vec2(1, 1))
	rb.ApplyImpulse(Vec2(10, 0), rb.Position())
	assert.Equal(t, Zero, rb.Velocity())
}

func TestRigidbody_SetMassRejectsNonPositive(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	require.NoError(t, rb.SetMass(4))

	assert.ErrorIs(t, rb.SetMass(0), ErrInvalidMass)
	assert.ErrorIs(t, rb.SetMass(-3), ErrInvalidMass)
	assert.Equal(t, float32(4), rb.Mass())
	assert.Equal(t, float32(0.25), rb.InverseMass())

	assert.ErrorIs(t, rb.SetLinearDamping(-1), ErrInvalidDamping)
	assert.ErrorIs(t, rb.SetAngularDamping(-1), ErrInvalidDamping)
}

func TestRigidbody_FrictionAndRestitutionClamp(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	rb.SetFriction(2)
	rb.SetRestitution(-1)
	assert.Equal(t, float32(1), rb.Friction())
	assert.Equal(t, float32(0), rb.Restitution())
}

func TestRigidbody_InertiaFromLinkedShape(t *testing.T) {
	w := NewWorld(DefaultConfig())
	rb := NewRigidbody(BodyDynamic)
	require.NoError(t, rb.SetMass(2))
	id := w.AddRigidbody(rb)
	assert.Equal(t, float32(2), rb.Inertia(), "no shape falls back to mass")

	circle, err := NewCircleCollider(3)
	require.NoError(t, err)
	cid := w.AddCollider(circle, id)
	assert.InDelta(t, 9, rb.Inertia(), 1e-5)

	require.NoError(t, circle.SetRadius(1))
	assert.InDelta(t, 1, rb.Inertia(), 1e-5)

	box, err := NewBoxCollider(3, 4)
	require.NoError(t, err)
	w.AddCollider(box, id)
	assert.InDelta(t, 1, rb.Inertia(), 1e-5, "first linked shape wins")

	w.RemoveCollider(cid)
	assert.Equal(t, float32(2), rb.Inertia())

	rb.SetFixedRotation(true)
	assert.Zero(t, rb.InverseInertia())
}

func TestRigidbody_ApplyForceOffCenterProducesTorque(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	rb.SetAnchor(NewPoint(Vec2(1, 1)))

	rb.ApplyForce(Vec2(0, 2), Vec2(2, 1))
	assert.Equal(t, Vec2(0, 2), rb.Force())
	assert.Equal(t, float32(2), rb.Torque())

	rb.ApplyForceAtCenter(Vec2(1, 0))
	assert.Equal(t, Vec2(1, 2), rb.Force())
	assert.Equal(t, float32(2), rb.Torque())

	rb.SetFixedRotation(true)
	rb.ApplyForce(Vec2(0, 2), Vec2(2, 1))
	rb.ApplyTorque(5)
	assert.Equal(t, float32(0), rb.Torque())
}

func TestRigidbody_ApplyImpulse(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	require.NoError(t, rb.SetMass(2))

	rb.ApplyImpulse(Vec2(4, 0), rb.Position())
	assert.Equal(t, Vec2(2, 0), rb.Velocity())
	assert.Zero(t, rb.AngularVelocity())

	rb.ApplyAngularImpulse(2)
	assert.Equal(t, float32(1), rb.AngularVelocity())
}

func TestRigidbody_KinematicIgnoresForces(t *testing.T) {
	rb := NewRigidbody(BodyKinematic)
	rb.ApplyForceAtCenter(Vec2(10, 0))
	rb.ApplyImpulse(Vec2(10, 0), rb.Position())
	assert.Equal(t, Zero, rb.Force())
	assert.Equal(t, Zero, rb.Velocity())

	rb.SetVelocity(Vec2(1, 0))
	assert.Equal(t, Vec2(1, 0), rb.Velocity())
}

func TestRigidbody_SleepControls(t *testing.T) {
	rb := NewRigidbody(BodyDynamic)
	rb.SetVelocity(Vec2(3, 0))

	rb.SetAsleep(true)
	assert.True(t, rb.IsAsleep())
	assert.Equal(t, Zero, rb.Velocity())

	rb.SetAsleep(false)
	assert.False(t, rb.IsAsleep())

	rb.SetAsleep(true)
	rb.ApplyForceAtCenter(Vec2(1, 0))
	assert.False(t, rb.IsAsleep(), "forces wake the body")

	static := NewRigidbody(BodyStatic)
	static.SetAsleep(true)
	assert.False(t, static.IsAsleep())
}

func TestParseBodyType(t *testing.T) {
	for _, bt := range []BodyType{BodyStatic, BodyDynamic, BodyKinematic} {
		got, ok := ParseBodyType(bt.String())
		assert.True(t, ok)
		assert.Equal(t, bt, got)
	}
	_, ok := ParseBodyType("floating")
	assert.False(t, ok)
}
