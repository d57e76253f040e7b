package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2_Arithmetic(t *testing.T) {
	a := Vec2(3, 4)
	b := Vec2(1, -2)

	assert.Equal(t, Vec2(4, 2), a.Add(b))
	assert.Equal(t, Vec2(2, 6), a.Sub(b))
	assert.Equal(t, Vec2(6, 8), a.Scale(2))
	assert.Equal(t, Vec2(-3, -4), a.Negate())
	assert.Equal(t, float32(-5), a.Dot(b))
	assert.Equal(t, float32(-10), a.Cross(b))
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(25), a.LengthSquared())
}

func TestVector2_Normalize(t *testing.T) {
	n := Vec2(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-6)
	assert.InDelta(t, 0.8, n.Y, 1e-6)
	assert.Equal(t, Zero, Zero.Normalize())
}

func TestVector2_Perp(t *testing.T) {
	n := Vec2(0, 1)
	assert.Equal(t, Vec2(-1, 0), n.Perp())
	assert.Zero(t, n.Dot(n.Perp()))
}

func TestAABB_Overlaps(t *testing.T) {
	a := NewAABB(Zero, Vec2(1, 1))
	assert.True(t, a.Overlaps(NewAABB(Vec2(1.5, 0), Vec2(1, 1))))
	assert.True(t, a.Overlaps(NewAABB(Vec2(2, 0), Vec2(1, 1))), "touching edges count")
	assert.False(t, a.Overlaps(NewAABB(Vec2(2.5, 0), Vec2(1, 1))))
	assert.Equal(t, Zero, a.Center())
	assert.Equal(t, Vec2(1, 1), a.Extents())
}

func TestAABB_RayIntersect(t *testing.T) {
	box := AABB{Min: Vec2(5, -5), Max: Vec2(15, 5)}

	dist, normal, ok := box.RayIntersect(Zero, UnitX, 100)
	assert.True(t, ok)
	assert.Equal(t, float32(5), dist)
	assert.Equal(t, Vec2(-1, 0), normal)

	_, _, ok = box.RayIntersect(Zero, UnitX, 4)
	assert.False(t, ok, "beyond max distance")

	_, _, ok = box.RayIntersect(Zero, UnitY, 100)
	assert.False(t, ok)

	dist, normal, ok = box.RayIntersect(Vec2(20, 0), UnitX.Negate(), 100)
	assert.True(t, ok)
	assert.Equal(t, float32(5), dist)
	assert.Equal(t, Vec2(1, 0), normal)

	dist, _, ok = box.RayIntersect(Vec2(10, 0), UnitX, 100)
	assert.True(t, ok)
	assert.Equal(t, float32(0), dist)
}
