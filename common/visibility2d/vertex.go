package visibility2d

import (
	"encoding/json"
	"math"
)

// Vertex is a sweep event: an edge endpoint, an intersection of two edges or
// the point where the sweep ray crosses an active edge.
// Vertices are created for a single sweep and reference edges by their
// index in that sweep.
type Vertex struct {
	X   float64
	Y   float64
	Key VertexKey

	exact Point

	edges     []int
	cwEdges   []int
	ccwEdges  []int
	collinear []int

	endpoint    bool
	ray         bool
	edgeID      string
	restriction Restriction
	limitedCW   int
	limitedCCW  int

	visited    bool
	distanceSq float64
	sortIndex  int
}

func newVertex(p Point, endpoint bool) *Vertex {
	key := PointKey(p)
	q := PointFromKey(key)

	return &Vertex{
		X:        q.X,
		Y:        q.Y,
		Key:      key,
		exact:    p,
		endpoint: endpoint,
	}
}

// Point returns the quantised coordinates
func (v *Vertex) Point() Point {
	return MakePoint(v.X, v.Y)
}

// Exact returns the unrounded coordinates used for angles and distances
func (v *Vertex) Exact() Point {
	return v.exact
}

func (v *Vertex) IsEndpoint() bool {
	return v.endpoint
}

// IsInternal is true for vertices created by intersections or ray collisions
func (v *Vertex) IsInternal() bool {
	return !v.endpoint
}

// IsRayCollision is true for points where a sweep ray crossed an active edge
func (v *Vertex) IsRayCollision() bool {
	return v.ray
}

func (v *Vertex) Restriction() Restriction {
	return v.restriction
}

func (v *Vertex) IsLimited() bool {
	return v.restriction == RestrictionLimited
}

func (v *Vertex) IsLimitingCW() bool {
	return len(v.cwEdges) == 1 && v.limitedCW == 1
}

func (v *Vertex) IsLimitingCCW() bool {
	return len(v.ccwEdges) == 1 && v.limitedCCW == 1
}

func (v *Vertex) IsBlockingCW() bool {
	return len(v.cwEdges) > 1 || (len(v.cwEdges) == 1 && v.limitedCW == 0)
}

func (v *Vertex) IsBlockingCCW() bool {
	return len(v.ccwEdges) > 1 || (len(v.ccwEdges) == 1 && v.limitedCCW == 0)
}

func (v *Vertex) EdgeCount() int { return len(v.edges) }
func (v *Vertex) CWEdgeCount() int { return len(v.cwEdges) }
func (v *Vertex) CCWEdgeCount() int { return len(v.ccwEdges) }
func (v *Vertex) CollinearCount() int { return len(v.collinear) }
func (v *Vertex) Visited() bool { return v.visited }
func (v *Vertex) SortIndex() int { return v.sortIndex }
func (v *Vertex) DistanceSq() float64 { return v.distanceSq }
func (v *Vertex) Distance() float64 { return math.Sqrt(v.distanceSq) }
func (v *Vertex) HasEdge(index int) bool { return containsIndex(v.edges, index) }

// attach registers the edge on the requested sides; attaching twice is a no-op
func (v *Vertex) attach(index int, restriction Restriction, cw bool, ccw bool) {
	if containsIndex(v.edges, index) {
		return
	}

	v.edges = append(v.edges, index)
	if restriction > v.restriction {
		v.restriction = restriction
	}

	if cw {
		v.cwEdges = append(v.cwEdges, index)
		if restriction == RestrictionLimited {
			v.limitedCW++
		}
	}

	if ccw {
		v.ccwEdges = append(v.ccwEdges, index)
		if restriction == RestrictionLimited {
			v.limitedCCW++
		}
	}
}

func (v *Vertex) String() string {
	return "<Vertex " + v.Point().String() + ">"
}

type vertexJSON struct {
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Key         VertexKey `json:"key"`
	Internal    bool      `json:"internal"`
	Restriction string    `json:"restriction"`
	BlockingCW  bool      `json:"blockingCW"`
	BlockingCCW bool      `json:"blockingCCW"`
	LimitingCW  bool      `json:"limitingCW"`
	LimitingCCW bool      `json:"limitingCCW"`
	CWEdges     int       `json:"cwEdges"`
	CCWEdges    int       `json:"ccwEdges"`
	Distance    float64   `json:"distance"`
	SortIndex   int       `json:"sortIndex"`
}

func (v *Vertex) MarshalJSON() ([]byte, error) {
	return json.Marshal(vertexJSON{
		X:           v.X,
		Y:           v.Y,
		Key:         v.Key,
		Internal:    v.IsInternal(),
		Restriction: v.restriction.String(),
		BlockingCW:  v.IsBlockingCW(),
		BlockingCCW: v.IsBlockingCCW(),
		LimitingCW:  v.IsLimitingCW(),
		LimitingCCW: v.IsLimitingCCW(),
		CWEdges:     len(v.cwEdges),
		CCWEdges:    len(v.ccwEdges),
		Distance:    v.Distance(),
		SortIndex:   v.sortIndex,
	})
}

func containsIndex(indices []int, index int) bool {
	for _, i := range indices {
		if i == index {
			return true
		}
	}

	return false
}
