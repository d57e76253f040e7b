package physics

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Epsilon is the tolerance used for degenerate geometry checks.
const Epsilon float32 = 1e-6

type Vector2 struct {
	X, Y float32
}

func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

var (
	Zero  = Vector2{}
	UnitX = Vector2{X: 1}
	UnitY = Vector2{Y: 1}
)

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Negate() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

func (v Vector2) Dot(o Vector2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// Perp rotates v a quarter turn counter-clockwise.
func (v Vector2) Perp() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l < Epsilon {
		return Vector2{}
	}
	inv := 1 / l
	return Vector2{X: v.X * inv, Y: v.Y * inv}
}

func (v Vector2) Distance(o Vector2) float32 {
	return v.Sub(o).Length()
}

func (v Vector2) Min(o Vector2) Vector2 {
	return Vector2{X: math32.Min(v.X, o.X), Y: math32.Min(v.Y, o.Y)}
}

func (v Vector2) Max(o Vector2) Vector2 {
	return Vector2{X: math32.Max(v.X, o.X), Y: math32.Max(v.Y, o.Y)}
}

func (v Vector2) ApproxEqual(o Vector2, tolerance float32) bool {
	return math32.Abs(v.X-o.X) <= tolerance && math32.Abs(v.Y-o.Y) <= tolerance
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
