package physics

// ContactHandler receives the other collider of a contact event.
type ContactHandler func(other *Collider)

// AllLayers is the default collision mask: every layer is admitted.
const AllLayers uint32 = 0xFFFFFFFF

const maxLayer = 31

// Collider is a shape attached to an anchor, optionally driven by a
// rigidbody. Construct with NewBoxCollider or NewCircleCollider.
type Collider struct {
	id    ColliderID
	seq   uint64
	world *World

	shape   Shape
	offset  Vector2
	trigger bool
	layer   int32
	mask    uint32

	anchor Anchor
	body   BodyID

	// world-space centre captured at the start of the current step
	center Vector2

	handlers [eventKindCount]ContactHandler

	UserData any
}

func newCollider(shape Shape) *Collider {
	return &Collider{shape: shape, mask: AllLayers}
}

func NewBoxCollider(width, height float32) (*Collider, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	return newCollider(BoxShape(width, height)), nil
}

func NewCircleCollider(radius float32) (*Collider, error) {
	if radius <= 0 {
		return nil, ErrInvalidDimension
	}
	return newCollider(CircleShape(radius)), nil
}

// NewPolygonCollider always fails: polygon geometry is not implemented.
func NewPolygonCollider(_ []Vector2) (*Collider, error) {
	return nil, ErrUnsupportedShape
}

func (c *Collider) ID() ColliderID { return c.id }
func (c *Collider) Shape() Shape   { return c.shape }
func (c *Collider) Kind() ShapeKind {
	return c.shape.Kind
}

// Body returns the handle of the rigidbody this collider was registered
// with, or the zero BodyID.
func (c *Collider) Body() BodyID { return c.body }

func (c *Collider) Offset() Vector2     { return c.offset }
func (c *Collider) SetOffset(v Vector2) { c.offset = v }

func (c *Collider) IsTrigger() bool         { return c.trigger }
func (c *Collider) SetTrigger(trigger bool) { c.trigger = trigger }

func (c *Collider) Layer() int32 { return c.layer }

func (c *Collider) SetLayer(layer int32) error {
	if layer < 0 || layer > maxLayer {
		return ErrInvalidLayer
	}
	c.layer = layer
	return nil
}

func (c *Collider) CollisionMask() uint32        { return c.mask }
func (c *Collider) SetCollisionMask(mask uint32) { c.mask = mask }

// CollidesWithLayer reports whether this collider's mask admits layer.
func (c *Collider) CollidesWithLayer(layer int32) bool {
	if layer < 0 || layer > maxLayer {
		return false
	}
	return c.mask&(1<<uint32(layer)) != 0
}

// CanCollide applies the symmetric layer filter: each side's mask must admit
// the other's layer.
func CanCollide(a, b *Collider) bool {
	return a.CollidesWithLayer(b.layer) && b.CollidesWithLayer(a.layer)
}

func (c *Collider) Anchor() Anchor { return c.anchor }

// SetAnchor attaches the collider to a spatial node. Colliders registered
// with a body and no anchor of their own follow the body's anchor.
func (c *Collider) SetAnchor(anchor Anchor) { c.anchor = anchor }

func (c *Collider) Width() float32 {
	if c.shape.Kind != ShapeBox {
		return 0
	}
	return c.shape.Width
}

func (c *Collider) Height() float32 {
	if c.shape.Kind != ShapeBox {
		return 0
	}
	return c.shape.Height
}

func (c *Collider) Radius() float32 {
	if c.shape.Kind != ShapeCircle {
		return 0
	}
	return c.shape.Radius
}

// SetSize resizes a box. Non-positive values are rejected and the previous
// size is kept.
func (c *Collider) SetSize(width, height float32) error {
	if c.shape.Kind != ShapeBox {
		return ErrShapeMismatch
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidDimension
	}
	c.shape.Width, c.shape.Height = width, height
	c.shapeChanged()
	return nil
}

func (c *Collider) SetWidth(width float32) error {
	return c.SetSize(width, c.shape.Height)
}

func (c *Collider) SetHeight(height float32) error {
	return c.SetSize(c.shape.Width, height)
}

func (c *Collider) SetRadius(radius float32) error {
	if c.shape.Kind != ShapeCircle {
		return ErrShapeMismatch
	}
	if radius <= 0 {
		return ErrInvalidDimension
	}
	c.shape.Radius = radius
	c.shapeChanged()
	return nil
}

func (c *Collider) shapeChanged() {
	if c.world == nil {
		return
	}
	if rb := c.world.Rigidbody(c.body); rb != nil {
		rb.linkShape(c.id, c.shape)
	}
}

// WorldCenter is the anchor position plus the local offset.
func (c *Collider) WorldCenter() Vector2 {
	if c.anchor == nil {
		return c.offset
	}
	return c.anchor.WorldPosition().Add(c.offset)
}

func (c *Collider) BoundingBox() AABB {
	return c.shape.Bounds(c.WorldCenter())
}

func (c *Collider) OnCollisionEnter(fn ContactHandler) { c.handlers[CollisionEnter] = fn }
func (c *Collider) OnCollisionStay(fn ContactHandler)  { c.handlers[CollisionStay] = fn }
func (c *Collider) OnCollisionExit(fn ContactHandler)  { c.handlers[CollisionExit] = fn }
func (c *Collider) OnTriggerEnter(fn ContactHandler)   { c.handlers[TriggerEnter] = fn }
func (c *Collider) OnTriggerStay(fn ContactHandler)    { c.handlers[TriggerStay] = fn }
func (c *Collider) OnTriggerExit(fn ContactHandler)    { c.handlers[TriggerExit] = fn }

func (c *Collider) notify(kind EventKind, other *Collider) {
	if fn := c.handlers[kind]; fn != nil {
		fn(other)
	}
}

// CheckCollision tests two colliders at their anchors' current positions.
// The normal points from a to b. Layer filtering is not applied.
func CheckCollision(a, b *Collider) (CollisionInfo, bool) {
	m, ok := collide(a.shape, a.WorldCenter(), b.shape, b.WorldCenter())
	if !ok {
		return CollisionInfo{}, false
	}
	return m.info(a.id, b.id), true
}
