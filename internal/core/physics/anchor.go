package physics

// Anchor is the spatial node a body or collider is attached to. The world
// reads it once per step before detection and writes it once per step after
// integration.
type Anchor interface {
	WorldPosition() Vector2
	SetWorldPosition(Vector2)
	WorldRotation() float32
	SetWorldRotation(float32)
}

// Point is a free-standing Anchor for bodies not attached to an object graph.
type Point struct {
	Position Vector2
	Rotation float32
}

func NewPoint(position Vector2) *Point {
	return &Point{Position: position}
}

func (p *Point) WorldPosition() Vector2     { return p.Position }
func (p *Point) SetWorldPosition(v Vector2) { p.Position = v }
func (p *Point) WorldRotation() float32     { return p.Rotation }
func (p *Point) SetWorldRotation(r float32) { p.Rotation = r }
