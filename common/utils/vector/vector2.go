package vector

import (
	"math"

	"github.com/bytearena/lineofsight/common/utils/number"
)

// Vector2 is an immutable 2D vector; y grows downward in scene coordinates
type Vector2 struct {
	x float64
	y float64
}

func MakeVector2(x float64, y float64) Vector2 {
	return Vector2{x, y}
}

func MakeNullVector2() Vector2 {
	return Vector2{}
}

func (v Vector2) Get() (float64, float64) { return v.x, v.y }
func (v Vector2) GetX() float64 { return v.x }
func (v Vector2) GetY() float64 { return v.y }

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.x + o.x, v.y + o.y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.x - o.x, v.y - o.y}
}

func (v Vector2) MultScalar(f float64) Vector2 {
	return Vector2{v.x * f, v.y * f}
}

func (v Vector2) Mag() float64 {
	return math.Hypot(v.x, v.y)
}

func (v Vector2) MagSq() float64 {
	return v.x*v.x + v.y*v.y
}

// Cross is the z component of the 3D cross product
func (v Vector2) Cross(o Vector2) float64 {
	return v.x*o.y - v.y*o.x
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.x*o.x + v.y*o.y
}

func (v Vector2) String() string {
	return "<Vector2(" + number.FloatToStr(v.x, 5) + ", " + number.FloatToStr(v.y, 5) + ")>"
}
