package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circleAt(t *testing.T, radius float32, pos Vector2) *Collider {
	t.Helper()
	c, err := NewCircleCollider(radius)
	require.NoError(t, err)
	c.SetAnchor(NewPoint(pos))
	return c
}

func boxAt(t *testing.T, w, h float32, pos Vector2) *Collider {
	t.Helper()
	c, err := NewBoxCollider(w, h)
	require.NoError(t, err)
	c.SetAnchor(NewPoint(pos))
	return c
}

func TestCollider_Construction(t *testing.T) {
	_, err := NewBoxCollider(0, 1)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewCircleCollider(-1)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewPolygonCollider([]Vector2{{0, 0}, {1, 0}, {0, 1}})
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	c, err := NewBoxCollider(2, 3)
	require.NoError(t, err)
	assert.Equal(t, AllLayers, c.CollisionMask())
	assert.Equal(t, int32(0), c.Layer())
	assert.False(t, c.IsTrigger())
}

func TestCollider_InvalidSettersRetainValue(t *testing.T) {
	box, err := NewBoxCollider(2, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, box.SetWidth(-1), ErrInvalidDimension)
	assert.ErrorIs(t, box.SetSize(4, 0), ErrInvalidDimension)
	assert.Equal(t, float32(2), box.Width())
	assert.Equal(t, float32(3), box.Height())
	assert.ErrorIs(t, box.SetRadius(1), ErrShapeMismatch)

	require.NoError(t, box.SetHeight(5))
	assert.Equal(t, float32(5), box.Height())

	circle, err := NewCircleCollider(1)
	require.NoError(t, err)
	assert.ErrorIs(t, circle.SetRadius(0), ErrInvalidDimension)
	assert.Equal(t, float32(1), circle.Radius())

	assert.ErrorIs(t, circle.SetLayer(32), ErrInvalidLayer)
	assert.ErrorIs(t, circle.SetLayer(-1), ErrInvalidLayer)
	assert.Equal(t, int32(0), circle.Layer())
}

func TestCollider_BoundingBox(t *testing.T) {
	box := boxAt(t, 4, 2, Vec2(10, 10))
	box.SetOffset(Vec2(1, 0))
	assert.Equal(t, AABB{Min: Vec2(9, 9), Max: Vec2(13, 11)}, box.BoundingBox())

	circle := circleAt(t, 3, Vec2(1, 1))
	assert.Equal(t, AABB{Min: Vec2(-2, -2), Max: Vec2(4, 4)}, circle.BoundingBox())
}

func TestCanCollide_Symmetric(t *testing.T) {
	a := circleAt(t, 1, Zero)
	b := circleAt(t, 1, Zero)
	require.NoError(t, a.SetLayer(1))
	require.NoError(t, b.SetLayer(2))

	assert.True(t, CanCollide(a, b))

	a.SetCollisionMask(AllLayers &^ (1 << 2))
	assert.False(t, CanCollide(a, b))
	assert.False(t, CanCollide(b, a))

	a.SetCollisionMask(AllLayers)
	b.SetCollisionMask(1 << 3)
	assert.False(t, CanCollide(a, b), "both sides must admit the other")
}

func TestCheckCollision_CircleCircle(t *testing.T) {
	a := circleAt(t, 10, Zero)
	b := circleAt(t, 10, Vec2(15, 0))

	info, ok := CheckCollision(a, b)
	require.True(t, ok)
	assert.InDelta(t, 5, info.Penetration, 1e-5)
	assert.Equal(t, Vec2(1, 0), info.Normal)
	assert.Equal(t, Vec2(10, 0), info.ContactPoint)

	_, ok = CheckCollision(a, circleAt(t, 10, Vec2(20, 0)))
	assert.False(t, ok, "touching circles do not overlap")
}

func TestCheckCollision_CoincidentCircles(t *testing.T) {
	info, ok := CheckCollision(circleAt(t, 1, Zero), circleAt(t, 2, Zero))
	require.True(t, ok)
	assert.Equal(t, UnitX, info.Normal)
	assert.Equal(t, float32(3), info.Penetration)
}

func TestCheckCollision_BoxBox(t *testing.T) {
	a := boxAt(t, 10, 10, Zero)
	b := boxAt(t, 10, 10, Vec2(9, 0))

	info, ok := CheckCollision(a, b)
	require.True(t, ok)
	assert.InDelta(t, 1, info.Penetration, 1e-5)
	assert.Equal(t, Vec2(1, 0), info.Normal)
	assert.Equal(t, Vec2(4.5, 0), info.ContactPoint)

	info, ok = CheckCollision(b, a)
	require.True(t, ok)
	assert.Equal(t, Vec2(-1, 0), info.Normal)

	info, ok = CheckCollision(a, boxAt(t, 10, 10, Vec2(1, -8)))
	require.True(t, ok)
	assert.Equal(t, Vec2(0, -1), info.Normal)
	assert.InDelta(t, 2, info.Penetration, 1e-5)

	_, ok = CheckCollision(a, boxAt(t, 10, 10, Vec2(10, 0)))
	assert.False(t, ok)
}

func TestCheckCollision_BoxCircle(t *testing.T) {
	box := boxAt(t, 10, 10, Zero)

	info, ok := CheckCollision(box, circleAt(t, 2, Vec2(6, 0)))
	require.True(t, ok)
	assert.Equal(t, Vec2(1, 0), info.Normal)
	assert.InDelta(t, 1, info.Penetration, 1e-5)
	assert.Equal(t, Vec2(5, 0), info.ContactPoint)

	info, ok = CheckCollision(circleAt(t, 2, Vec2(6, 0)), box)
	require.True(t, ok)
	assert.Equal(t, Vec2(-1, 0), info.Normal, "circle-box flips the normal")

	_, ok = CheckCollision(box, circleAt(t, 1, Vec2(6, 6)))
	assert.False(t, ok)
}

func TestCheckCollision_CircleInsideBox(t *testing.T) {
	box := boxAt(t, 10, 10, Zero)

	info, ok := CheckCollision(box, circleAt(t, 1, Vec2(4, 0)))
	require.True(t, ok)
	assert.Equal(t, Vec2(1, 0), info.Normal)
	assert.InDelta(t, 2, info.Penetration, 1e-5)

	info, ok = CheckCollision(box, circleAt(t, 1, Vec2(0, -3)))
	require.True(t, ok)
	assert.Equal(t, Vec2(0, -1), info.Normal)
	assert.InDelta(t, 3, info.Penetration, 1e-5)
}

func TestCheckCollision_UnsupportedKind(t *testing.T) {
	poly := &Collider{shape: Shape{Kind: ShapePolygon}, mask: AllLayers, anchor: NewPoint(Zero)}
	_, ok := CheckCollision(poly, circleAt(t, 5, Zero))
	assert.False(t, ok)
}
