package scene

import (
	"github.com/chewxy/math32"

	"github.com/zeusync/physics2d/internal/core/physics"
)

var _ physics.Anchor = (*Transform)(nil)

// Transform is a node in the spatial hierarchy. Local values are relative to
// the parent; world values are resolved through the parent chain on demand.
type Transform struct {
	localPosition physics.Vector2
	localRotation float32

	parent   *Transform
	children []*Transform
}

func NewTransform(position physics.Vector2, rotation float32) *Transform {
	return &Transform{localPosition: position, localRotation: rotation}
}

func (t *Transform) LocalPosition() physics.Vector2     { return t.localPosition }
func (t *Transform) SetLocalPosition(p physics.Vector2) { t.localPosition = p }
func (t *Transform) LocalRotation() float32             { return t.localRotation }
func (t *Transform) SetLocalRotation(r float32)         { t.localRotation = r }

func (t *Transform) Translate(delta physics.Vector2) {
	t.localPosition = t.localPosition.Add(delta)
}

func (t *Transform) Rotate(angle float32) {
	t.localRotation += angle
}

func (t *Transform) WorldPosition() physics.Vector2 {
	if t.parent == nil {
		return t.localPosition
	}
	return t.parent.WorldPosition().Add(rotate(t.localPosition, t.parent.WorldRotation()))
}

func (t *Transform) SetWorldPosition(p physics.Vector2) {
	if t.parent == nil {
		t.localPosition = p
		return
	}
	t.localPosition = rotate(p.Sub(t.parent.WorldPosition()), -t.parent.WorldRotation())
}

func (t *Transform) WorldRotation() float32 {
	if t.parent == nil {
		return t.localRotation
	}
	return t.parent.WorldRotation() + t.localRotation
}

func (t *Transform) SetWorldRotation(r float32) {
	if t.parent == nil {
		t.localRotation = r
		return
	}
	t.localRotation = r - t.parent.WorldRotation()
}

func (t *Transform) Parent() *Transform { return t.parent }

func (t *Transform) Children() []*Transform {
	out := make([]*Transform, len(t.children))
	copy(out, t.children)
	return out
}

// SetParent re-parents t, keeping its world position and rotation. A nil
// parent detaches it.
func (t *Transform) SetParent(parent *Transform) error {
	if parent == t.parent {
		return nil
	}
	for p := parent; p != nil; p = p.parent {
		if p == t {
			return ErrTransformCycle
		}
	}

	pos, rot := t.WorldPosition(), t.WorldRotation()
	if t.parent != nil {
		t.parent.removeChild(t)
	}
	t.parent = parent
	if parent != nil {
		parent.children = append(parent.children, t)
	}
	t.SetWorldPosition(pos)
	t.SetWorldRotation(rot)
	return nil
}

func (t *Transform) removeChild(child *Transform) {
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}

func rotate(v physics.Vector2, angle float32) physics.Vector2 {
	if angle == 0 {
		return v
	}
	sin, cos := math32.Sincos(angle)
	return physics.Vector2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
