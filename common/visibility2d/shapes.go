package visibility2d

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/bytearena/lineofsight/common/utils/trigo"
)

// Shape bounds a sweep: its rectangle restricts the candidate edges and
// the final polygon is clipped to its contour.
type Shape interface {
	Bounds() Rectangle
	Contains(p Point) bool
	Contour() []Point
}

// EdgeFilter is implemented by shapes that can veto edges before a sweep
type EdgeFilter interface {
	IncludeEdge(a, b Point) bool
}

// ConvexShape reports whether holding every vertex of a polygon means holding
// the whole polygon. Shapes without it are always clipped.
type ConvexShape interface {
	IsConvex() bool
}

///////////////////////////////////////////////////////////////////////////////
// Rectangle
///////////////////////////////////////////////////////////////////////////////

type Rectangle struct {
	MinX float64 `json:"minX" yaml:"minX"`
	MinY float64 `json:"minY" yaml:"minY"`
	MaxX float64 `json:"maxX" yaml:"maxX"`
	MaxY float64 `json:"maxY" yaml:"maxY"`
}

func MakeRectangle(x1, y1, x2, y2 float64) Rectangle {
	return Rectangle{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

func RectangleAround(center Point, halfExtent float64) Rectangle {
	return MakeRectangle(
		center.X-halfExtent, center.Y-halfExtent,
		center.X+halfExtent, center.Y+halfExtent,
	)
}

func (r Rectangle) Width() float64  { return r.MaxX - r.MinX }
func (r Rectangle) Height() float64 { return r.MaxY - r.MinY }

func (r Rectangle) Center() Point {
	return MakePoint((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// IsEmpty is true for the zero value and for inverted rectangles
func (r Rectangle) IsEmpty() bool {
	return r.Width() < 0 || r.Height() < 0 || (r.Width() == 0 && r.Height() == 0)
}

// Intersects reports whether r and other overlap; touching counts
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.MinX <= other.MaxX && other.MinX <= r.MaxX &&
		r.MinY <= other.MaxY && other.MinY <= r.MaxY
}

func (r Rectangle) Intersection(other Rectangle) (Rectangle, bool) {
	if !r.Intersects(other) {
		return Rectangle{}, false
	}

	return Rectangle{
		MinX: math.Max(r.MinX, other.MinX),
		MinY: math.Max(r.MinY, other.MinY),
		MaxX: math.Min(r.MaxX, other.MaxX),
		MaxY: math.Min(r.MaxY, other.MaxY),
	}, true
}

func (r Rectangle) ExpandToInclude(p Point) Rectangle {
	return Rectangle{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

func (r Rectangle) Pad(d float64) Rectangle {
	return Rectangle{
		MinX: r.MinX - d,
		MinY: r.MinY - d,
		MaxX: r.MaxX + d,
		MaxY: r.MaxY + d,
	}
}

func (r Rectangle) Bounds() Rectangle {
	return r
}

func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsStrictly excludes the rectangle border
func (r Rectangle) ContainsStrictly(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// Contour lists the corners clockwise (y grows downward), starting top-left
func (r Rectangle) Contour() []Point {
	return []Point{
		MakePoint(r.MinX, r.MinY),
		MakePoint(r.MaxX, r.MinY),
		MakePoint(r.MaxX, r.MaxY),
		MakePoint(r.MinX, r.MaxY),
	}
}

// Sides returns top, right, bottom and left sides, each oriented clockwise
func (r Rectangle) Sides() [4][2]Point {
	c := r.Contour()
	return [4][2]Point{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

func (r Rectangle) IntersectsSegment(a, b Point) bool {
	if !r.Intersects(MakeRectangle(a.X, a.Y, b.X, b.Y)) {
		return false
	}

	if r.Contains(a) || r.Contains(b) {
		return true
	}

	for _, side := range r.Sides() {
		if _, intersects, _, _ := trigo.IntersectionWithLineSegment(a.Vector(), b.Vector(), side[0].Vector(), side[1].Vector()); intersects {
			return true
		}
	}

	return false
}

func (r Rectangle) IsConvex() bool { return true }

func (r Rectangle) IncludeEdge(a, b Point) bool {
	return r.IntersectsSegment(a, b)
}

///////////////////////////////////////////////////////////////////////////////
// Circle
///////////////////////////////////////////////////////////////////////////////

const defaultCircleSegments = 64

type Circle struct {
	Center   Point
	Radius   float64
	Segments int
}

func MakeCircle(center Point, radius float64) Circle {
	return Circle{
		Center:   center,
		Radius:   radius,
		Segments: defaultCircleSegments,
	}
}

func (c Circle) Bounds() Rectangle {
	return RectangleAround(c.Center, c.Radius)
}

func (c Circle) Contains(p Point) bool {
	return c.Center.DistanceSq(p) <= c.Radius*c.Radius*(1+1e-9)
}

// Contour approximates the circle with an inscribed regular polygon, clockwise
func (c Circle) Contour() []Point {
	segments := c.Segments
	if segments < 3 {
		segments = defaultCircleSegments
	}

	points := make([]Point, segments)
	for i := 0; i < segments; i++ {
		angle := math.Pi + 2*math.Pi*float64(i)/float64(segments)
		points[i] = MakePoint(
			c.Center.X+c.Radius*math.Cos(angle),
			c.Center.Y+c.Radius*math.Sin(angle),
		)
	}

	return points
}

func (c Circle) IsConvex() bool { return true }

func (c Circle) IncludeEdge(a, b Point) bool {
	return trigo.DistanceToSegment(c.Center.Vector(), a.Vector(), b.Vector()) <= c.Radius
}

///////////////////////////////////////////////////////////////////////////////
// Polygon
///////////////////////////////////////////////////////////////////////////////

type PolygonShape struct {
	Points []Point
}

func (s PolygonShape) Bounds() Rectangle {
	if len(s.Points) == 0 {
		return Rectangle{}
	}

	bounds := MakeRectangle(s.Points[0].X, s.Points[0].Y, s.Points[0].X, s.Points[0].Y)
	for _, p := range s.Points[1:] {
		bounds = bounds.ExpandToInclude(p)
	}

	return bounds
}

func (s PolygonShape) Contains(p Point) bool {
	return toContour(s.Points).Contains(polyclip.Point{X: p.X, Y: p.Y})
}

func (s PolygonShape) Contour() []Point {
	return s.Points
}

// IsConvex is true when every turn along the contour goes the same way.
// Collinear points are ignored.
func (s PolygonShape) IsConvex() bool {
	n := len(s.Points)
	if n < 3 {
		return false
	}

	sign := 0.0
	for i := 0; i < n; i++ {
		a := s.Points[i]
		b := s.Points[(i+1)%n]
		c := s.Points[(i+2)%n]

		cross := trigo.Orient2D(a.Vector(), b.Vector(), c.Vector())
		if cross == 0 {
			continue
		}

		if sign != 0 && (cross > 0) != (sign > 0) {
			return false
		}
		sign = cross
	}

	return sign != 0
}
