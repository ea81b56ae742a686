package visibility2d

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

func toContour(points []Point) polyclip.Contour {
	contour := make(polyclip.Contour, len(points))
	for i, p := range points {
		contour[i] = polyclip.Point{X: p.X, Y: p.Y}
	}

	return contour
}

func fromContour(contour polyclip.Contour) []Point {
	points := make([]Point, len(contour))
	for i, p := range contour {
		points[i] = MakePoint(p.X, p.Y)
	}

	return points
}

// SignedArea is positive for polygons wound clockwise on screen (y grows downward)
func SignedArea(points []Point) float64 {
	area := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}

	return area / 2
}

func reversePoints(points []Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// containsPolygon is true when the shape is convex and holds every point.
// The edges of a polygon can leave a concave shape between two inside vertices.
func containsPolygon(shape Shape, points []Point) bool {
	convex, ok := shape.(ConvexShape)
	if !ok || !convex.IsConvex() {
		return false
	}

	for _, p := range points {
		if !shape.Contains(p) {
			return false
		}
	}

	return true
}

// clipToShape intersects the polygon with the shape contour.
// When the intersection has several parts, the one containing origin wins,
// otherwise the largest one.
func clipToShape(points []Point, origin Point, shape Shape) []Point {
	if len(points) < 3 {
		return points
	}

	subject := polyclip.Polygon{toContour(points)}
	clipping := polyclip.Polygon{toContour(shape.Contour())}

	result := subject.Construct(polyclip.INTERSECTION, clipping)
	if len(result) == 0 {
		return []Point{}
	}

	best := -1
	for i, contour := range result {
		if contour.Contains(polyclip.Point{X: origin.X, Y: origin.Y}) {
			best = i
			break
		}
	}

	if best < 0 {
		bestArea := 0.0
		for i, contour := range result {
			area := math.Abs(SignedArea(fromContour(contour)))
			if best < 0 || area > bestArea {
				best = i
				bestArea = area
			}
		}
	}

	clipped := fromContour(result[best])
	if SignedArea(clipped) < 0 {
		reversePoints(clipped)
	}

	return clipped
}
