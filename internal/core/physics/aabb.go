package physics

import "github.com/chewxy/math32"

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vector2
}

func NewAABB(center, halfExtents Vector2) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Overlaps reports whether the boxes intersect. Touching edges count.
func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y
}

func (a AABB) Contains(p Vector2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

func (a AABB) Center() Vector2 {
	return a.Min.Add(a.Max).Scale(0.5)
}

func (a AABB) Extents() Vector2 {
	return a.Max.Sub(a.Min).Scale(0.5)
}

// RayIntersect clips the ray origin + t*dir, t in [0, maxDistance], against
// the box using the slab method. dir must be unit length. The returned normal
// is the face normal on entry; a ray starting inside reports t = 0 and a
// normal opposing dir.
func (a AABB) RayIntersect(origin, dir Vector2, maxDistance float32) (t float32, normal Vector2, ok bool) {
	if a.Contains(origin) {
		return 0, dir.Negate(), true
	}

	tMin := float32(0)
	tMax := maxDistance
	normal = Vector2{}

	originAxis := [2]float32{origin.X, origin.Y}
	dirAxis := [2]float32{dir.X, dir.Y}
	minAxis := [2]float32{a.Min.X, a.Min.Y}
	maxAxis := [2]float32{a.Max.X, a.Max.Y}

	for axis := 0; axis < 2; axis++ {
		if math32.Abs(dirAxis[axis]) < Epsilon {
			if originAxis[axis] < minAxis[axis] || originAxis[axis] > maxAxis[axis] {
				return 0, Vector2{}, false
			}
			continue
		}

		inv := 1 / dirAxis[axis]
		t1 := (minAxis[axis] - originAxis[axis]) * inv
		t2 := (maxAxis[axis] - originAxis[axis]) * inv
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}

		if t1 > tMin {
			tMin = t1
			if axis == 0 {
				normal = Vector2{X: sign}
			} else {
				normal = Vector2{Y: sign}
			}
		}
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return 0, Vector2{}, false
		}
	}

	return tMin, normal, true
}
