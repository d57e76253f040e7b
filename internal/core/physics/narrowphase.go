package physics

import "github.com/chewxy/math32"

// CollisionInfo describes one overlapping pair. Normal is unit length and
// points from ColliderA to ColliderB.
type CollisionInfo struct {
	ColliderA    ColliderID
	ColliderB    ColliderID
	ContactPoint Vector2
	Normal       Vector2
	Penetration  float32
}

type manifold struct {
	point       Vector2
	normal      Vector2
	penetration float32
}

func (m manifold) info(a, b ColliderID) CollisionInfo {
	return CollisionInfo{
		ColliderA:    a,
		ColliderB:    b,
		ContactPoint: m.point,
		Normal:       m.normal,
		Penetration:  m.penetration,
	}
}

// collide dispatches on the shape kinds. Combinations involving an
// unsupported kind never collide.
func collide(sa Shape, ca Vector2, sb Shape, cb Vector2) (manifold, bool) {
	switch {
	case sa.Kind == ShapeCircle && sb.Kind == ShapeCircle:
		return circleCircle(sa.Radius, ca, sb.Radius, cb)
	case sa.Kind == ShapeBox && sb.Kind == ShapeBox:
		return boxBox(sa.Bounds(ca), ca, sb.Bounds(cb), cb)
	case sa.Kind == ShapeBox && sb.Kind == ShapeCircle:
		return boxCircle(sa.Bounds(ca), sb.Radius, cb)
	case sa.Kind == ShapeCircle && sb.Kind == ShapeBox:
		m, ok := boxCircle(sb.Bounds(cb), sa.Radius, ca)
		if ok {
			m.normal = m.normal.Negate()
		}
		return m, ok
	}
	return manifold{}, false
}

func circleCircle(ra float32, ca Vector2, rb float32, cb Vector2) (manifold, bool) {
	delta := cb.Sub(ca)
	total := ra + rb
	distSq := delta.LengthSquared()
	if distSq >= total*total {
		return manifold{}, false
	}

	dist := math32.Sqrt(distSq)
	normal := UnitX
	if dist > Epsilon {
		normal = delta.Scale(1 / dist)
	}

	return manifold{
		point:       ca.Add(normal.Scale(ra)),
		normal:      normal,
		penetration: total - dist,
	}, true
}

// boxBox picks the axis of least overlap; X wins ties. The normal sign
// follows the centre order and is positive when centres coincide.
func boxBox(a AABB, ca Vector2, b AABB, cb Vector2) (manifold, bool) {
	lo := a.Min.Max(b.Min)
	hi := a.Max.Min(b.Max)
	overlapX := hi.X - lo.X
	overlapY := hi.Y - lo.Y
	if overlapX <= 0 || overlapY <= 0 {
		return manifold{}, false
	}

	m := manifold{point: lo.Add(hi).Scale(0.5)}
	if overlapX <= overlapY {
		m.penetration = overlapX
		m.normal = UnitX
		if cb.X < ca.X {
			m.normal = UnitX.Negate()
		}
	} else {
		m.penetration = overlapY
		m.normal = UnitY
		if cb.Y < ca.Y {
			m.normal = UnitY.Negate()
		}
	}
	return m, true
}

// boxCircle reports the contact with the normal pointing from the box to the
// circle. A centre inside the box escapes through the nearest face.
func boxCircle(box AABB, radius float32, center Vector2) (manifold, bool) {
	closest := Vector2{
		X: clamp(center.X, box.Min.X, box.Max.X),
		Y: clamp(center.Y, box.Min.Y, box.Max.Y),
	}

	delta := center.Sub(closest)
	distSq := delta.LengthSquared()
	if distSq > Epsilon*Epsilon {
		if distSq >= radius*radius {
			return manifold{}, false
		}
		dist := math32.Sqrt(distSq)
		return manifold{
			point:       closest,
			normal:      delta.Scale(1 / dist),
			penetration: radius - dist,
		}, true
	}

	faces := [4]struct {
		dist   float32
		normal Vector2
		point  Vector2
	}{
		{center.X - box.Min.X, UnitX.Negate(), Vector2{X: box.Min.X, Y: center.Y}},
		{box.Max.X - center.X, UnitX, Vector2{X: box.Max.X, Y: center.Y}},
		{center.Y - box.Min.Y, UnitY.Negate(), Vector2{X: center.X, Y: box.Min.Y}},
		{box.Max.Y - center.Y, UnitY, Vector2{X: center.X, Y: box.Max.Y}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].dist < faces[best].dist {
			best = i
		}
	}

	return manifold{
		point:       faces[best].point,
		normal:      faces[best].normal,
		penetration: faces[best].dist + radius,
	}, true
}
