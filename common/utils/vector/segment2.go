package vector

import (
	"github.com/bytearena/lineofsight/common/utils/number"
)

type Segment2 struct {
	a Vector2
	b Vector2
}

func MakeSegment2(a Vector2, b Vector2) Segment2 {
	return Segment2{a, b}
}

// Vector returns b - a
func (s Segment2) Vector() Vector2 {
	return s.b.Sub(s.a)
}

// Lerp returns the point at ratio t along the segment (0 = a, 1 = b)
func (s Segment2) Lerp(t float64) Vector2 {
	return s.a.Add(s.Vector().MultScalar(t))
}

// ClosestPoint returns the point of the segment nearest to p
func (s Segment2) ClosestPoint(p Vector2) Vector2 {
	ab := s.Vector()
	lsq := ab.MagSq()
	if lsq == 0 {
		return s.a
	}

	t := number.Clamp(p.Sub(s.a).Dot(ab)/lsq, 0, 1)
	return s.Lerp(t)
}

func (s Segment2) DistanceTo(p Vector2) float64 {
	return s.ClosestPoint(p).Sub(p).Mag()
}

func (s Segment2) String() string {
	return "<Segment2(" + s.a.String() + " -> " + s.b.String() + ")>"
}
