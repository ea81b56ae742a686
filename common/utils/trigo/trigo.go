package trigo

import (
	"math"

	"github.com/bytearena/lineofsight/common/utils/vector"
)

// Relative tolerance under which two directions are considered parallel.
// Scaled by the magnitude of the operands so that long walls and short walls
// are treated alike.
const parallelTolerance = 1e-10

func isParallel(cross float64, magA float64, magB float64) bool {
	return math.Abs(cross) <= parallelTolerance*magA*magB
}

// Orient2D returns the cross product (b - a) x (c - a).
// In screen coordinates (y grows downward) a positive value means that c is
// clockwise of the direction a -> b, a negative value counter-clockwise, zero collinear.
func Orient2D(a vector.Vector2, b vector.Vector2, c vector.Vector2) float64 {
	ax, ay := a.Get()
	bx, by := b.Get()
	cx, cy := c.Get()
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func IntersectionWithLineSegment(p vector.Vector2, p2 vector.Vector2, q vector.Vector2, q2 vector.Vector2) (intersection vector.Vector2, intersects bool, colinear bool, parallel bool) {

	r := p2.Sub(p)
	s := q2.Sub(q)
	rxs := r.Cross(s)
	qp := q.Sub(p)
	qpxr := qp.Cross(r)

	rmag := r.Mag()

	if isParallel(rxs, rmag, s.Mag()) {

		// If r x s = 0 and (q - p) x r = 0, then the two lines are collinear.
		if isParallel(qpxr, qp.Mag(), rmag) {
			// 1. If either  0 <= (q - p) * r <= r * r or 0 <= (p - q) * s <= * s
			// then the two lines are overlapping,
			qSubPTimesR := qp.Dot(r)
			pSubQTimesS := p.Sub(q).Dot(s)
			rSquared := r.Dot(r)
			sSquared := s.Dot(s)

			if (qSubPTimesR >= 0 && qSubPTimesR <= rSquared) || (pSubQTimesS >= 0 && pSubQTimesS <= sSquared) {
				return vector.MakeNullVector2(), true, true, true
			}

			// 2. Collinear but disjoint.
			return vector.MakeNullVector2(), false, true, true
		}

		// 3. Parallel and non-intersecting.
		return vector.MakeNullVector2(), false, false, true
	}

	t := qp.Cross(s) / rxs
	u := qpxr / rxs

	// 4. If r x s != 0 and 0 <= t <= 1 and 0 <= u <= 1
	// the two line segments meet at the point p + t r = q + u s.
	if (0 <= t && t <= 1) && (0 <= u && u <= 1) {
		return p.Add(r.MultScalar(t)), true, false, false
	}

	// 5. Otherwise, the two line segments are not parallel but do not intersect.
	return vector.MakeNullVector2(), false, false, false
}

// LinesIntersectionPoint intersects the infinite lines (p, p2) and (q, q2).
// t is the position of the intersection along p -> p2 (0 at p, 1 at p2).
func LinesIntersectionPoint(p vector.Vector2, p2 vector.Vector2, q vector.Vector2, q2 vector.Vector2) (point vector.Vector2, t float64, parallel bool) {
	r := p2.Sub(p)
	s := q2.Sub(q)
	rxs := r.Cross(s)

	if rxs == 0 || isParallel(rxs, r.Mag(), s.Mag()) {
		return vector.MakeNullVector2(), 0, true
	}

	t = q.Sub(p).Cross(s) / rxs
	return p.Add(r.MultScalar(t)), t, false
}

func PointOnLineSegment(p vector.Vector2, a vector.Vector2, b vector.Vector2) bool {
	t := 0.0001

	px, py := p.Get()
	ax, ay := a.Get()
	bx, by := b.Get()

	// ensure points are collinear
	zero := (bx-ax)*(py-ay) - (px-ax)*(by-ay)
	if zero > t || zero < -t {
		return false
	}

	// check if x-coordinates are not equal
	if ax-bx > t || bx-ax > t {
		// ensure x is between a.x & b.x (use tolerance)
		if ax > bx {
			return px+t > bx && px-t < ax
		}
		return px+t > ax && px-t < bx
	}

	// ensure y is between a.y & b.y (use tolerance)
	if ay > by {
		return py+t > by && py-t < ay
	}

	return py+t > ay && py-t < by
}

// DistanceToSegment returns the distance between p and the closest point of segment [a, b]
func DistanceToSegment(p vector.Vector2, a vector.Vector2, b vector.Vector2) float64 {
	return vector.MakeSegment2(a, b).DistanceTo(p)
}
