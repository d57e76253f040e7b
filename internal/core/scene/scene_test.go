package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/physics"
)

func newTestScene() *Scene {
	cfg := physics.DefaultConfig()
	cfg.Gravity = physics.Vec2(0, 10)
	return New("test", physics.NewWorld(cfg), nil)
}

func addBall(t *testing.T, s *Scene, name string, pos physics.Vector2) *GameObject {
	t.Helper()
	obj := s.NewObject(name, pos)
	require.NoError(t, obj.AddComponent(NewRigidbodyComponent(physics.NewRigidbody(physics.BodyDynamic))))
	circle, err := physics.NewCircleCollider(0.5)
	require.NoError(t, err)
	require.NoError(t, obj.AddComponent(NewColliderComponent(circle)))
	return obj
}

type failingComponent struct{}

func (failingComponent) TypeID() ComponentID { return ComponentUser }
func (failingComponent) TypeName() string    { return "Failing" }
func (failingComponent) OnAttach(*physics.World) error {
	return errors.New("attach failed")
}
func (failingComponent) OnDetach(*physics.World) error { return nil }

func TestTransform_Hierarchy(t *testing.T) {
	parent := NewTransform(physics.Vec2(10, 0), math32.Pi/2)
	child := NewTransform(physics.Vec2(1, 0), 0)

	require.NoError(t, child.SetParent(parent))
	// re-parenting keeps the world transform
	assert.True(t, child.WorldPosition().ApproxEqual(physics.Vec2(1, 0), 1e-5))

	child.SetLocalPosition(physics.Vec2(1, 0))
	assert.True(t, child.WorldPosition().ApproxEqual(physics.Vec2(10, 1), 1e-5), "%v", child.WorldPosition())
	assert.InDelta(t, 0, child.WorldRotation(), 1e-6)
	assert.InDelta(t, -math32.Pi/2, child.LocalRotation(), 1e-6)

	child.SetWorldPosition(physics.Vec2(10, 3))
	assert.True(t, child.LocalPosition().ApproxEqual(physics.Vec2(3, 0), 1e-5), "%v", child.LocalPosition())

	parent.Translate(physics.Vec2(5, 0))
	assert.True(t, child.WorldPosition().ApproxEqual(physics.Vec2(15, 3), 1e-5))

	assert.ErrorIs(t, parent.SetParent(child), ErrTransformCycle)
	assert.Len(t, parent.Children(), 1)

	require.NoError(t, child.SetParent(nil))
	assert.Empty(t, parent.Children())
	assert.True(t, child.WorldPosition().ApproxEqual(physics.Vec2(15, 3), 1e-5))
}

func TestGameObject_ComponentSlots(t *testing.T) {
	s := newTestScene()
	obj := s.NewObject("crate", physics.Zero)

	rb := NewRigidbodyComponent(physics.NewRigidbody(physics.BodyDynamic))
	require.NoError(t, obj.AddComponent(rb))
	assert.ErrorIs(t, obj.AddComponent(NewRigidbodyComponent(physics.NewRigidbody(physics.BodyStatic))), ErrComponentExists)
	assert.ErrorIs(t, obj.AddComponent(nil), ErrNilComponent)

	box, err := physics.NewBoxCollider(1, 1)
	require.NoError(t, err)
	require.NoError(t, obj.AddComponent(NewColliderComponent(box)))

	assert.Equal(t, []ComponentID{ComponentRigidbody, ComponentCollider}, obj.Components())
	assert.Same(t, rb.Body, obj.Rigidbody())
	assert.Same(t, box, obj.Collider())

	require.NoError(t, obj.RemoveComponent(ComponentCollider))
	assert.ErrorIs(t, obj.RemoveComponent(ComponentCollider), ErrComponentMissing)
	assert.Nil(t, obj.Collider())
}

func TestGameObject_ActivateRegistersWithWorld(t *testing.T) {
	s := newTestScene()
	obj := addBall(t, s, "ball", physics.Vec2(1, 2))
	world := s.World()

	assert.Empty(t, world.Bodies())
	require.NoError(t, obj.Activate())
	require.NoError(t, obj.Activate())

	require.Len(t, world.Bodies(), 1)
	require.Len(t, world.Colliders(), 1)

	body := world.Bodies()[0]
	collider := world.Colliders()[0]
	assert.Equal(t, body.ID(), collider.Body(), "collider finds the body on the same object")
	assert.Same(t, obj, body.UserData)
	assert.Same(t, obj, collider.UserData)

	world.Update(1, 6)
	assert.True(t, obj.Transform().WorldPosition().ApproxEqual(physics.Vec2(1, 12), 1e-4), "physics writes back into the transform")
}

func TestGameObject_DestroyDeregisters(t *testing.T) {
	s := newTestScene()
	obj := addBall(t, s, "ball", physics.Zero)
	require.NoError(t, s.Activate())

	require.NoError(t, obj.Destroy())
	assert.True(t, obj.IsDestroyed())
	assert.Empty(t, s.World().Bodies())
	assert.Empty(t, s.World().Colliders())
	assert.Zero(t, s.Len())

	assert.ErrorIs(t, obj.Activate(), ErrObjectDestroyed)
	assert.ErrorIs(t, obj.AddComponent(failingComponent{}), ErrObjectDestroyed)
	require.NoError(t, obj.Destroy())
}

func TestGameObject_DestroyDuringContactIsDeferred(t *testing.T) {
	s := newTestScene()
	s.World().SetGravity(physics.Zero)
	a := addBall(t, s, "a", physics.Zero)
	b := addBall(t, s, "b", physics.Vec2(0.5, 0))
	require.NoError(t, s.Activate())

	a.Collider().OnCollisionEnter(func(other *physics.Collider) {
		obj, ok := other.UserData.(*GameObject)
		require.True(t, ok)
		require.NoError(t, obj.Destroy())
	})

	s.World().Update(1.0/60, 6)
	assert.True(t, b.IsDestroyed())
	assert.Len(t, s.World().Colliders(), 1)
	assert.Len(t, s.World().Bodies(), 1)
}

func TestGameObject_ActivateRollsBack(t *testing.T) {
	s := newTestScene()
	obj := addBall(t, s, "ball", physics.Zero)
	require.NoError(t, obj.AddComponent(failingComponent{}))

	assert.Error(t, obj.Activate())
	assert.False(t, obj.IsActive())
	assert.Empty(t, s.World().Bodies())
	assert.Empty(t, s.World().Colliders())
}

func TestGameObject_ComponentAddedWhileActive(t *testing.T) {
	s := newTestScene()
	obj := s.NewObject("late", physics.Zero)
	require.NoError(t, obj.Activate())

	require.NoError(t, obj.AddComponent(NewRigidbodyComponent(physics.NewRigidbody(physics.BodyKinematic))))
	assert.Len(t, s.World().Bodies(), 1)

	require.NoError(t, obj.RemoveComponent(ComponentRigidbody))
	assert.Empty(t, s.World().Bodies())

	assert.Error(t, obj.AddComponent(failingComponent{}))
	assert.False(t, obj.HasComponent(ComponentUser))
}

func TestScene_Find(t *testing.T) {
	s := newTestScene()
	first := s.NewObject("dup", physics.Zero)
	s.NewObject("dup", physics.Zero)
	other := s.NewObject("other", physics.Zero)

	got, ok := s.Find("dup")
	require.True(t, ok)
	assert.Same(t, first, got)

	got, ok = s.FindByGUID(other.GUID())
	require.True(t, ok)
	assert.Same(t, other, got)

	_, ok = s.Find("missing")
	assert.False(t, ok)
	assert.Len(t, s.Objects(), 3)

	require.NoError(t, s.Destroy())
	assert.Zero(t, s.Len())
}
