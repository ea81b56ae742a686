package visibility2d

import (
	"math"

	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/utils/trigo"
	"github.com/bytearena/lineofsight/common/utils/vector"
)

// Threshold is the per-sense distance under which an edge stops restricting
type Threshold struct {
	Light       float64 `json:"light,omitempty" yaml:"light,omitempty"`
	Move        float64 `json:"move,omitempty" yaml:"move,omitempty"`
	Sight       float64 `json:"sight,omitempty" yaml:"sight,omitempty"`
	Sound       float64 `json:"sound,omitempty" yaml:"sound,omitempty"`
	Attenuation bool    `json:"attenuation,omitempty" yaml:"attenuation,omitempty"`
}

func (t Threshold) For(sense Sense) float64 {
	switch sense {
	case SenseLight:
		return t.Light
	case SenseMove:
		return t.Move
	case SenseSight:
		return t.Sight
	case SenseSound:
		return t.Sound
	}

	return 0
}

// Attenuates reports whether the sense fades out through the threshold
func (t Threshold) Attenuates(sense Sense) bool {
	return t.Attenuation && t.For(sense) > 0
}

type EdgeIntersection struct {
	Edge  *Edge
	Point Point
}

type Edge struct {
	ID           string
	Type         EdgeType
	Restrictions Restrictions
	Direction    Direction
	Threshold    Threshold

	a      Point
	b      Point
	nw     Point
	se     Point
	bounds Rectangle

	intersections []EdgeIntersection
}

// NewEdge creates a wall restricting every sense
func NewEdge(id string, a, b Point) (*Edge, error) {
	if PointKey(a) == PointKey(b) {
		return nil, errors.Wrapf(ErrInvalidEdge, "edge %s has zero length %s -> %s", id, a, b)
	}

	return &Edge{
		ID:           id,
		Type:         EdgeTypeWall,
		Restrictions: UniformRestrictions(RestrictionNormal),
		Direction:    DirectionBoth,
		a:            a,
		b:            b,
		nw:           MakePoint(math.Min(a.X, b.X), math.Min(a.Y, b.Y)),
		se:           MakePoint(math.Max(a.X, b.X), math.Max(a.Y, b.Y)),
		bounds:       MakeRectangle(a.X, a.Y, b.X, b.Y),
	}, nil
}

func (e *Edge) A() Point { return e.a }
func (e *Edge) B() Point { return e.b }

// NW is the top-left corner of the edge bounding box
func (e *Edge) NW() Point { return e.nw }

// SE is the bottom-right corner of the edge bounding box
func (e *Edge) SE() Point { return e.se }

func (e *Edge) Bounds() Rectangle { return e.bounds }

func (e *Edge) Segment() vector.Segment2 {
	return vector.MakeSegment2(e.a.Vector(), e.b.Vector())
}

func (e *Edge) Intersections() []EdgeIntersection {
	res := make([]EdgeIntersection, len(e.intersections))
	copy(res, e.intersections)
	return res
}

func (e *Edge) Restriction(sense Sense) Restriction {
	return e.Restrictions.For(sense)
}

func (e *Edge) IsLimited(sense Sense) bool {
	return e.Restriction(sense) == RestrictionLimited
}

func (e *Edge) isDegenerate() bool {
	return PointKey(e.a) == PointKey(e.b)
}

// Clone returns a copy that can be mutated without affecting e.
// Recorded intersections are copied, the edges they point to are shared.
func (e *Edge) Clone() *Edge {
	clone := *e
	clone.intersections = make([]EdgeIntersection, len(e.intersections))
	copy(clone.intersections, e.intersections)
	return &clone
}

// OrientPoint tells on which side of a -> b the point p lies (y grows downward)
func (e *Edge) OrientPoint(p Point) Direction {
	cross := trigo.Orient2D(e.a.Vector(), e.b.Vector(), p.Vector())
	if cross < 0 {
		return DirectionLeft
	}

	if cross > 0 {
		return DirectionRight
	}

	return DirectionBoth
}

// DistanceTo is the distance from p to the closest point of the edge
func (e *Edge) DistanceTo(p Point) float64 {
	return e.Segment().DistanceTo(p.Vector())
}

// AppliesThreshold reports whether a source at origin is close enough to see
// (or hear, ...) through the edge for the given sense.
// Distance-restricted edges invert the test: they only restrict nearby sources.
func (e *Edge) AppliesThreshold(sense Sense, origin Point, externalRadius float64) bool {
	threshold := e.Threshold.For(sense)
	if threshold <= 0 {
		return false
	}

	distance := e.DistanceTo(origin)

	if e.Restriction(sense) == RestrictionDistance {
		return distance-externalRadius > threshold
	}

	return distance < threshold+externalRadius
}

func (e *Edge) sharesEndpointWith(other *Edge) bool {
	ka, kb := PointKey(e.a), PointKey(e.b)
	oa, ob := PointKey(other.a), PointKey(other.b)
	return ka == oa || ka == ob || kb == oa || kb == ob
}

// IntersectionWith returns the point where e crosses other.
// Edges meeting at a shared endpoint, collinear edges and parallel edges do not intersect.
func (e *Edge) IntersectionWith(other *Edge) (Point, bool) {
	if e == other || e.sharesEndpointWith(other) {
		return Point{}, false
	}

	if !e.bounds.Intersects(other.bounds) {
		return Point{}, false
	}

	// same operand order whichever edge asks, so both record the same point
	first, second := e, other
	if second.less(first) {
		first, second = second, first
	}

	p, intersects, colinear, parallel := trigo.IntersectionWithLineSegment(
		first.a.Vector(), first.b.Vector(),
		second.a.Vector(), second.b.Vector(),
	)

	if !intersects || colinear || parallel {
		return Point{}, false
	}

	// keep the point inside both bounding boxes despite rounding
	box, ok := e.bounds.Intersection(other.bounds)
	if !ok {
		return Point{}, false
	}

	return MakePoint(
		math.Max(box.MinX, math.Min(box.MaxX, p.GetX())),
		math.Max(box.MinY, math.Min(box.MaxY, p.GetY())),
	), true
}

func (e *Edge) less(other *Edge) bool {
	ka, kb := PointKey(e.a), PointKey(e.b)
	oa, ob := PointKey(other.a), PointKey(other.b)
	if ka != oa {
		return ka.Less(oa)
	}

	return kb.Less(ob)
}

func (e *Edge) hasIntersectionWith(other *Edge) bool {
	for _, x := range e.intersections {
		if x.Edge == other {
			return true
		}
	}

	return false
}

// RecordIntersection computes the intersection with other and records it on both edges
func (e *Edge) RecordIntersection(other *Edge) (Point, bool) {
	p, ok := e.IntersectionWith(other)
	if !ok {
		return Point{}, false
	}

	if !e.hasIntersectionWith(other) {
		e.intersections = append(e.intersections, EdgeIntersection{Edge: other, Point: p})
	}

	if !other.hasIntersectionWith(e) {
		other.intersections = append(other.intersections, EdgeIntersection{Edge: e, Point: p})
	}

	return p, true
}

// RemoveIntersections forgets every intersection of e, on both sides
func (e *Edge) RemoveIntersections() {
	for _, x := range e.intersections {
		other := x.Edge
		kept := other.intersections[:0]
		for _, ox := range other.intersections {
			if ox.Edge != e {
				kept = append(kept, ox)
			}
		}
		other.intersections = kept
	}

	e.intersections = nil
}

func (e *Edge) clearIntersections() {
	e.intersections = nil
}

func (e *Edge) String() string {
	return "<Edge " + e.ID + " " + e.a.String() + " -> " + e.b.String() + ">"
}

// IdentifyEdgeIntersections records the intersections of every pair of edges
func IdentifyEdgeIntersections(edges []*Edge) {
	for i := 0; i < len(edges); i++ {
		e := edges[i]
		for j := i + 1; j < len(edges); j++ {
			other := edges[j]

			// bounding boxes do not overlap
			if other.nw.X > e.se.X || other.se.X < e.nw.X || other.nw.Y > e.se.Y || other.se.Y < e.nw.Y {
				continue
			}

			e.RecordIntersection(other)
		}
	}
}
