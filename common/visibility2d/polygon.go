package visibility2d

import (
	polyclip "github.com/akavel/polyclip-go"
)

// Ray is the debug trace of one edge switch
type Ray struct {
	Target Point            `json:"target"`
	Result *CollisionResult `json:"result"`
}

// Polygon is the outcome of a sweep. Points are wound clockwise (y grows
// downward) and the last point implicitly connects to the first.
type Polygon struct {
	Origin Point     `json:"origin"`
	Sense  string    `json:"sense"`
	Bounds Rectangle `json:"bounds"`
	Points []Point   `json:"points"`

	// Dropped lists the edges left out of the sweep and why
	Dropped []error `json:"-"`

	Rays        []Ray      `json:"rays,omitempty"`
	ActiveEdges [][]string `json:"activeEdges,omitempty"`
	Vertices    []*Vertex  `json:"vertices,omitempty"`
}

func (p *Polygon) Area() float64 {
	return SignedArea(p.Points)
}

func (p *Polygon) Contains(point Point) bool {
	if len(p.Points) < 3 {
		return false
	}

	return toContour(p.Points).Contains(polyclip.Point{X: point.X, Y: point.Y})
}

// DroppedMessages returns the Dropped errors as strings
func (p *Polygon) DroppedMessages() []string {
	res := make([]string, len(p.Dropped))
	for i, err := range p.Dropped {
		res[i] = err.Error()
	}

	return res
}
