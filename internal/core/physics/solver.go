package physics

import "github.com/chewxy/math32"

// contact is a touching non-trigger pair prepared for the solver.
type contact struct {
	a, b         *Collider
	bodyA, bodyB *Rigidbody
	info         CollisionInfo

	restitution float32
	friction    float32

	// active is set when at least one side is an awake dynamic body
	active bool
}

func newContact(a, b *Collider, bodyA, bodyB *Rigidbody, m manifold) contact {
	ct := contact{a: a, b: b, bodyA: bodyA, bodyB: bodyB, info: m.info(a.id, b.id)}
	ct.restitution, ct.friction = combineMaterials(bodyA, bodyB)
	return ct
}

// combineMaterials takes the minimum restitution and the geometric mean of
// the friction coefficients. A side without a body uses the other side's
// material.
func combineMaterials(a, b *Rigidbody) (restitution, friction float32) {
	switch {
	case a == nil && b == nil:
		return 0, 0
	case a == nil:
		return b.restitution, b.friction
	case b == nil:
		return a.restitution, a.friction
	}
	return math32.Min(a.restitution, b.restitution), math32.Sqrt(a.friction * b.friction)
}

func (w *World) resolve(iterations int) {
	for i := range w.contacts {
		ct := &w.contacts[i]
		imA, _ := ct.bodyA.solverInverseMass()
		imB, _ := ct.bodyB.solverInverseMass()
		ct.active = imA > 0 || imB > 0
	}

	for it := 0; it < iterations; it++ {
		for i := range w.contacts {
			if w.contacts[i].active {
				w.contacts[i].solveVelocity()
			}
		}
	}

	for i := range w.contacts {
		if w.contacts[i].active {
			w.contacts[i].correctPositions(w.config.CorrectionPercent, w.config.CorrectionSlop)
		}
	}
}

func velocityOf(rb *Rigidbody) Vector2 {
	if rb == nil {
		return Vector2{}
	}
	return rb.velocity
}

// solveVelocity applies one normal impulse and one clamped friction impulse.
// Contact impulses act through the centres of mass and never add spin.
func (ct *contact) solveVelocity() {
	n := ct.info.Normal
	imA, _ := ct.bodyA.solverInverseMass()
	imB, _ := ct.bodyB.solverInverseMass()
	k := imA + imB
	if k <= 0 {
		return
	}

	vn := ct.relativeVelocity().Dot(n)
	if vn > 0 {
		return
	}

	j := -(1 + ct.restitution) * vn / k
	ct.apply(n.Scale(j))

	tangent := n.Perp()
	vt := ct.relativeVelocity().Dot(tangent)
	if math32.Abs(vt) < Epsilon {
		return
	}

	maxFriction := j * ct.friction
	jt := clamp(-vt/k, -maxFriction, maxFriction)
	ct.apply(tangent.Scale(jt))
}

func (ct *contact) relativeVelocity() Vector2 {
	return velocityOf(ct.bodyB).Sub(velocityOf(ct.bodyA))
}

// apply pushes A by -impulse and B by +impulse. Immovable sides are skipped.
func (ct *contact) apply(impulse Vector2) {
	if im, _ := ct.bodyA.solverInverseMass(); im > 0 {
		ct.bodyA.applyImpulse(impulse.Negate(), Vector2{})
	}
	if im, _ := ct.bodyB.solverInverseMass(); im > 0 {
		ct.bodyB.applyImpulse(impulse, Vector2{})
	}
}

// correctPositions projects the bodies apart along the normal, split by
// inverse mass. Penetration below slop is left alone.
func (ct *contact) correctPositions(percent, slop float32) {
	imA, _ := ct.bodyA.solverInverseMass()
	imB, _ := ct.bodyB.solverInverseMass()
	total := imA + imB
	if total <= 0 {
		return
	}

	depth := ct.info.Penetration - slop
	if depth <= 0 {
		return
	}

	correction := ct.info.Normal.Scale(depth / total * percent)
	if imA > 0 {
		ct.bodyA.position = ct.bodyA.position.Sub(correction.Scale(imA))
	}
	if imB > 0 {
		ct.bodyB.position = ct.bodyB.position.Add(correction.Scale(imB))
	}
}
