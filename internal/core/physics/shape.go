package physics

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
	// ShapePolygon is reserved; no collider of this kind can be constructed.
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a tagged union over the supported collider geometries. Only the
// fields matching Kind are meaningful.
type Shape struct {
	Kind   ShapeKind
	Width  float32
	Height float32
	Radius float32
}

func BoxShape(width, height float32) Shape {
	return Shape{Kind: ShapeBox, Width: width, Height: height}
}

func CircleShape(radius float32) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

func (s Shape) HalfExtents() Vector2 {
	switch s.Kind {
	case ShapeBox:
		return Vector2{X: s.Width * 0.5, Y: s.Height * 0.5}
	case ShapeCircle:
		return Vector2{X: s.Radius, Y: s.Radius}
	default:
		return Vector2{}
	}
}

// Bounds returns the world-space box of the shape centred at center.
func (s Shape) Bounds(center Vector2) AABB {
	return NewAABB(center, s.HalfExtents())
}

// MomentOfInertia is the rotational inertia about the centre for the given
// mass. Unknown kinds fall back to mass.
func (s Shape) MomentOfInertia(mass float32) float32 {
	switch s.Kind {
	case ShapeBox:
		return mass * (s.Width*s.Width + s.Height*s.Height) / 12
	case ShapeCircle:
		return 0.5 * mass * s.Radius * s.Radius
	default:
		return mass
	}
}
