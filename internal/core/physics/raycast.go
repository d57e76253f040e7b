package physics

import "github.com/chewxy/math32"

// RaycastHit is the nearest intersection of a ray. ColliderA of the embedded
// CollisionInfo is the collider hit, ContactPoint the entry point and Normal
// the surface normal there.
type RaycastHit struct {
	CollisionInfo
	Collider *Collider
	Distance float32
}

// Raycast returns the closest collider hit by the ray, ties going to the
// earliest registered. A non-positive maxDistance means unbounded.
func (w *World) Raycast(origin, direction Vector2, maxDistance float32) (RaycastHit, bool) {
	return w.RaycastFiltered(origin, direction, maxDistance, AllLayers, true)
}

// RaycastFiltered is Raycast restricted to colliders whose layer is in mask,
// optionally skipping triggers.
func (w *World) RaycastFiltered(origin, direction Vector2, maxDistance float32, mask uint32, includeTriggers bool) (RaycastHit, bool) {
	dir := direction.Normalize()
	if dir.IsZero() {
		return RaycastHit{}, false
	}
	if maxDistance <= 0 {
		maxDistance = math32.MaxFloat32
	}

	var (
		best  RaycastHit
		found bool
	)
	for _, c := range w.colliders {
		if !includeTriggers && c.trigger {
			continue
		}
		if mask&(1<<uint32(c.layer)) == 0 {
			continue
		}

		center := c.WorldCenter()
		bounds := c.shape.Bounds(center)
		t, normal, ok := bounds.RayIntersect(origin, dir, maxDistance)
		if !ok {
			continue
		}
		if c.shape.Kind == ShapeCircle {
			t, normal, ok = rayCircle(origin, dir, center, c.shape.Radius, maxDistance)
			if !ok {
				continue
			}
		} else if c.shape.Kind != ShapeBox {
			continue
		}

		if found && t >= best.Distance {
			continue
		}
		found = true
		best = RaycastHit{
			CollisionInfo: CollisionInfo{
				ColliderA:    c.id,
				ContactPoint: origin.Add(dir.Scale(t)),
				Normal:       normal,
			},
			Collider: c,
			Distance: t,
		}
	}
	return best, found
}

func rayCircle(origin, dir, center Vector2, radius, maxDistance float32) (float32, Vector2, bool) {
	m := origin.Sub(center)
	c := m.LengthSquared() - radius*radius
	if c <= 0 {
		return 0, dir.Negate(), true
	}

	b := m.Dot(dir)
	if b > 0 {
		return 0, Vector2{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, Vector2{}, false
	}

	t := -b - math32.Sqrt(disc)
	if t > maxDistance {
		return 0, Vector2{}, false
	}
	hit := origin.Add(dir.Scale(t))
	return t, hit.Sub(center).Scale(1 / radius), true
}
