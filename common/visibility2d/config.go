package visibility2d

// DefaultExtent is the half size of the sweep area when no scene bounds are given
const DefaultExtent = 100000.0

type Config struct {
	Origin Point
	Sense  Sense

	// Radius bounds the polygon to a circle around the origin when positive
	Radius float64

	// ExternalRadius is the size of the source itself, added to edge thresholds
	ExternalRadius float64

	// Shapes bound the sweep area; the polygon is clipped to each of them
	Shapes []Shape

	// SceneBounds replaces the default area of DefaultExtent around the origin
	SceneBounds *Rectangle

	DirectionMode   DirectionMode
	UseInnerBounds  bool
	IncludeDarkness bool
	IgnoreThreshold bool

	// Debug keeps rays, active edges and sorted vertices in the result
	Debug bool
}

// BoundaryShapes returns the configured shapes plus the radius circle
func (c Config) BoundaryShapes() []Shape {
	shapes := make([]Shape, 0, len(c.Shapes)+1)
	shapes = append(shapes, c.Shapes...)

	if c.Radius > 0 {
		shapes = append(shapes, MakeCircle(c.Origin, c.Radius))
	}

	return shapes
}

// SweepBounds computes the rectangle the sweep works in: the scene bounds
// intersected with every boundary shape, always containing the origin.
func (c Config) SweepBounds() Rectangle {
	var bounds Rectangle
	if c.SceneBounds != nil && !c.SceneBounds.IsEmpty() {
		bounds = *c.SceneBounds
	} else {
		bounds = RectangleAround(c.Origin, DefaultExtent)
	}

	for _, shape := range c.BoundaryShapes() {
		if intersection, ok := bounds.Intersection(shape.Bounds()); ok {
			bounds = intersection
		} else {
			bounds = MakeRectangle(c.Origin.X, c.Origin.Y, c.Origin.X, c.Origin.Y)
		}
	}

	return bounds.ExpandToInclude(c.Origin).Pad(1)
}
