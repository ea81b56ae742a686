package visibility2d_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytearena/lineofsight/common/visibility2d"
)

// E is the half size of the default sweep area, padding included
const E = visibility2d.DefaultExtent + 1

func limitedWall(t *testing.T, id string, ax, ay, bx, by float64, sense visibility2d.Sense) *visibility2d.Edge {
	edge := mustEdge(t, id, ax, ay, bx, by)
	edge.Restrictions.Set(sense, visibility2d.RestrictionLimited)
	return edge
}

func squareRoom(t *testing.T, half float64) []*visibility2d.Edge {
	return []*visibility2d.Edge{
		mustEdge(t, "top", -half, -half, half, -half),
		mustEdge(t, "right", half, -half, half, half),
		mustEdge(t, "bottom", half, half, -half, half),
		mustEdge(t, "left", -half, half, -half, -half),
	}
}

func compute(t *testing.T, config visibility2d.Config, edges ...*visibility2d.Edge) *visibility2d.Polygon {
	polygon, err := visibility2d.ComputePolygon(config, visibility2d.NewEdgeList(edges...))
	require.NoError(t, err)
	require.NotNil(t, polygon)
	return polygon
}

func assertPoints(t *testing.T, expected []visibility2d.Point, actual []visibility2d.Point) {
	require.Len(t, actual, len(expected), "points: %v", actual)
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, 1e-6, "point %d x", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, 1e-6, "point %d y", i)
	}
}

func TestSquareRoom(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseSight,
		Radius: 100,
	}, squareRoom(t, 5)...)

	assertPoints(t, []visibility2d.Point{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 5, Y: 5},
		{X: -5, Y: 5},
	}, polygon.Points)

	assert.InDelta(t, 100, polygon.Area(), 1e-9)
	assert.Empty(t, polygon.Dropped)
}

func TestSquareRoomWithOffCenterOrigin(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(2, -1),
		Sense:  visibility2d.SenseSight,
	}, squareRoom(t, 5)...)

	assertPoints(t, []visibility2d.Point{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 5, Y: 5},
		{X: -5, Y: 5},
	}, polygon.Points)
}

func TestSingleLimitedWallDoesNotBlock(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseSight,
	}, limitedWall(t, "w1", 5, -5, 5, 5, visibility2d.SenseSight))

	assertPoints(t, []visibility2d.Point{
		{X: -E, Y: -E},
		{X: E, Y: -E},
		{X: E, Y: E},
		{X: -E, Y: E},
	}, polygon.Points)

	assert.True(t, polygon.Contains(visibility2d.MakePoint(20, 0)))
}

func TestTwoLimitedWallsBlock(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseSight,
	},
		limitedWall(t, "w1", 5, -5, 5, 5, visibility2d.SenseSight),
		limitedWall(t, "w2", 10, -5, 10, 5, visibility2d.SenseSight),
	)

	assertPoints(t, []visibility2d.Point{
		{X: -E, Y: -E},
		{X: E, Y: -E},
		{X: E, Y: -E / 2},
		{X: 10, Y: -5},
		{X: 10, Y: 5},
		{X: E, Y: E / 2},
		{X: E, Y: E},
		{X: -E, Y: E},
	}, polygon.Points)

	assert.True(t, polygon.Contains(visibility2d.MakePoint(7, 0)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(12, 0)))
}

func TestLimitedWallIsTransparentForOtherSenses(t *testing.T) {
	// limited for sight, normal for light
	edges := []*visibility2d.Edge{
		limitedWall(t, "w1", 5, -5, 5, 5, visibility2d.SenseSight),
	}

	sight := compute(t, visibility2d.Config{Sense: visibility2d.SenseSight}, edges...)
	light := compute(t, visibility2d.Config{Sense: visibility2d.SenseLight}, edges...)

	assert.True(t, sight.Contains(visibility2d.MakePoint(20, 0)))
	assert.False(t, light.Contains(visibility2d.MakePoint(20, 0)))
}

func TestThresholdScenario(t *testing.T) {
	wall := func() *visibility2d.Edge {
		edge := mustEdge(t, "w", 2, -5, 2, 5)
		edge.Threshold.Sound = 3
		return edge
	}

	type testCase struct {
		Name            string
		Origin          visibility2d.Point
		IgnoreThreshold bool
		SeesBehind      bool
	}

	examples := []testCase{
		{
			Name:       "Should hear through the wall when 2 units away",
			Origin:     visibility2d.MakePoint(0, 0),
			SeesBehind: true,
		},
		{
			Name:       "Should be blocked when 5 units away",
			Origin:     visibility2d.MakePoint(-3, 0),
			SeesBehind: false,
		},
		{
			Name:            "Should be blocked when ignoring thresholds",
			Origin:          visibility2d.MakePoint(0, 0),
			IgnoreThreshold: true,
			SeesBehind:      false,
		},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			polygon := compute(t, visibility2d.Config{
				Origin:          example.Origin,
				Sense:           visibility2d.SenseSound,
				IgnoreThreshold: example.IgnoreThreshold,
			}, wall())

			assert.True(t, polygon.Contains(visibility2d.MakePoint(1, 0)))
			assert.Equal(t, example.SeesBehind, polygon.Contains(visibility2d.MakePoint(10, 0)))
		})
	}
}

func TestThresholdBlockedPolygon(t *testing.T) {
	edge := mustEdge(t, "w", 2, -5, 2, 5)
	edge.Threshold.Sound = 3

	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(-3, 0),
		Sense:  visibility2d.SenseSound,
	}, edge)

	bounds := polygon.Bounds
	assertPoints(t, []visibility2d.Point{
		{X: bounds.MinX, Y: bounds.MinY},
		{X: bounds.MaxX, Y: bounds.MinY},
		{X: 2, Y: -5},
		{X: 2, Y: 5},
		{X: bounds.MaxX, Y: bounds.MaxY},
		{X: bounds.MinX, Y: bounds.MaxY},
	}, polygon.Points)
}

func TestDirection(t *testing.T) {
	type testCase struct {
		Name      string
		Direction visibility2d.Direction
		Mode      visibility2d.DirectionMode
		Blocks    bool
	}

	// seen from the origin, the wall (5,-5) -> (5,5) has the origin on its right
	examples := []testCase{
		{Name: "Both directions block", Direction: visibility2d.DirectionBoth, Mode: visibility2d.DirectionModeNormal, Blocks: true},
		{Name: "Right wall blocks sources on its right", Direction: visibility2d.DirectionRight, Mode: visibility2d.DirectionModeNormal, Blocks: true},
		{Name: "Left wall ignores sources on its right", Direction: visibility2d.DirectionLeft, Mode: visibility2d.DirectionModeNormal, Blocks: false},
		{Name: "Reversed mode flips a right wall", Direction: visibility2d.DirectionRight, Mode: visibility2d.DirectionModeReversed, Blocks: false},
		{Name: "Reversed mode flips a left wall", Direction: visibility2d.DirectionLeft, Mode: visibility2d.DirectionModeReversed, Blocks: true},
		{Name: "Both mode ignores direction", Direction: visibility2d.DirectionLeft, Mode: visibility2d.DirectionModeBoth, Blocks: true},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			edge := mustEdge(t, "w", 5, -5, 5, 5)
			edge.Direction = example.Direction

			polygon := compute(t, visibility2d.Config{
				Sense:         visibility2d.SenseSight,
				DirectionMode: example.Mode,
			}, edge)

			assert.Equal(t, !example.Blocks, polygon.Contains(visibility2d.MakePoint(20, 0)))
		})
	}
}

func TestEdgeTypeInclusion(t *testing.T) {
	type testCase struct {
		Name   string
		Type   visibility2d.EdgeType
		Config visibility2d.Config
		Blocks bool
	}

	examples := []testCase{
		{Name: "Walls are included", Type: visibility2d.EdgeTypeWall, Blocks: true},
		{Name: "Darkness is excluded by default", Type: visibility2d.EdgeTypeDarkness, Blocks: false},
		{Name: "Darkness is included on demand", Type: visibility2d.EdgeTypeDarkness, Config: visibility2d.Config{IncludeDarkness: true}, Blocks: true},
		{Name: "Inner bounds are excluded by default", Type: visibility2d.EdgeTypeInnerBound, Blocks: false},
		{Name: "Inner bounds are included on demand", Type: visibility2d.EdgeTypeInnerBound, Config: visibility2d.Config{UseInnerBounds: true}, Blocks: true},
		{Name: "Outer bounds are included by default", Type: visibility2d.EdgeTypeOuterBound, Blocks: true},
		{Name: "Outer bounds are excluded with inner bounds", Type: visibility2d.EdgeTypeOuterBound, Config: visibility2d.Config{UseInnerBounds: true}, Blocks: false},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			edge := mustEdge(t, "w", 5, -5, 5, 5)
			edge.Type = example.Type

			polygon := compute(t, example.Config, edge)
			assert.Equal(t, !example.Blocks, polygon.Contains(visibility2d.MakePoint(20, 0)))
		})
	}
}

func TestOuterBoundsIgnoreRestrictions(t *testing.T) {
	edge := mustEdge(t, "bound", 5, -5, 5, 5)
	edge.Type = visibility2d.EdgeTypeOuterBound
	edge.Restrictions = visibility2d.UniformRestrictions(visibility2d.RestrictionNone)

	polygon := compute(t, visibility2d.Config{Sense: visibility2d.SenseMove}, edge)
	assert.False(t, polygon.Contains(visibility2d.MakePoint(20, 0)))
}

func TestTransparentWallIsIgnored(t *testing.T) {
	edge := mustEdge(t, "w", 5, -5, 5, 5)
	edge.Restrictions.Set(visibility2d.SenseSound, visibility2d.RestrictionNone)

	polygon := compute(t, visibility2d.Config{Sense: visibility2d.SenseSound}, edge)
	assert.Len(t, polygon.Points, 4)
}

func TestCrossingWalls(t *testing.T) {
	// an X in front of the origin: only the near arms are visible
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseSight,
		Radius: 50,
	},
		mustEdge(t, "x1", 10, -5, 20, 5),
		mustEdge(t, "x2", 10, 5, 20, -5),
	)

	assert.True(t, polygon.Contains(visibility2d.MakePoint(12, 0)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(18, 0)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(30, 0)))
	assert.True(t, polygon.Contains(visibility2d.MakePoint(-30, 0)))
}

func TestRadiusClipsToCircle(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseLight,
		Radius: 10,
	})

	// inscribed 64-gon
	assert.InDelta(t, 313.655, polygon.Area(), 0.01)
	for _, p := range polygon.Points {
		assert.True(t, p.X*p.X+p.Y*p.Y <= 100+1e-6, "%v is outside the radius", p)
	}
}

func TestBoundaryShapeClipping(t *testing.T) {
	room := visibility2d.MakeRectangle(-20, -20, 20, 20)

	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Sense:  visibility2d.SenseSight,
		Shapes: []visibility2d.Shape{
			visibility2d.PolygonShape{Points: []visibility2d.Point{
				{X: 0, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
			}},
			room,
		},
	})

	assert.InDelta(t, 200, polygon.Area(), 1e-6)
	assert.True(t, polygon.Contains(visibility2d.MakePoint(0, 5)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(9, -9)))
}

func TestConcaveShapeClipping(t *testing.T) {
	// U-shaped boundary: the notch x in [10, 20], y in [10, 30] is outside
	u := visibility2d.PolygonShape{Points: []visibility2d.Point{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 20, Y: 30},
		{X: 20, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 30}, {X: 0, Y: 30},
	}}

	polygon := compute(t, visibility2d.Config{
		Origin: visibility2d.MakePoint(15, 7),
		Sense:  visibility2d.SenseSight,
		Shapes: []visibility2d.Shape{u},
	},
		mustEdge(t, "top", 5, 5, 25, 5),
		mustEdge(t, "right", 25, 5, 25, 25),
		mustEdge(t, "bottom", 25, 25, 5, 25),
		mustEdge(t, "left", 5, 25, 5, 5),
	)

	// every vertex of the room is inside the shape, but not the room itself
	for _, p := range []visibility2d.Point{{X: 5, Y: 5}, {X: 25, Y: 5}, {X: 25, Y: 25}, {X: 5, Y: 25}} {
		assert.True(t, u.Contains(p))
	}

	assert.InDelta(t, 400-10*15, polygon.Area(), 1e-6)
	assert.False(t, polygon.Contains(visibility2d.MakePoint(15, 20)))
	assert.True(t, polygon.Contains(visibility2d.MakePoint(15, 8)))
	assert.True(t, polygon.Contains(visibility2d.MakePoint(7, 20)))
	assert.True(t, polygon.Contains(visibility2d.MakePoint(23, 20)))
}

func TestShapeConvexity(t *testing.T) {
	type testCase struct {
		Name   string
		Shape  visibility2d.PolygonShape
		Convex bool
	}

	examples := []testCase{
		{
			Name:   "Triangle",
			Shape:  visibility2d.PolygonShape{Points: []visibility2d.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}},
			Convex: true,
		},
		{
			Name:   "Square with a point in the middle of a side",
			Shape:  visibility2d.PolygonShape{Points: []visibility2d.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}},
			Convex: true,
		},
		{
			Name:   "Arrow head",
			Shape:  visibility2d.PolygonShape{Points: []visibility2d.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 10}, {X: 3, Y: 5}}},
			Convex: false,
		},
		{
			Name:   "Flat",
			Shape:  visibility2d.PolygonShape{Points: []visibility2d.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}},
			Convex: false,
		},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			assert.Equal(t, example.Convex, example.Shape.IsConvex())
		})
	}

	assert.True(t, visibility2d.MakeRectangle(0, 0, 1, 1).IsConvex())
	assert.True(t, visibility2d.MakeCircle(visibility2d.MakePoint(0, 0), 1).IsConvex())
}

func TestOriginOnShapeBorderIsContained(t *testing.T) {
	config := visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 5),
		Shapes: []visibility2d.Shape{visibility2d.MakeRectangle(0, 0, 10, 10)},
	}

	bounds := config.SweepBounds()
	assert.True(t, bounds.ContainsStrictly(config.Origin))
	assert.True(t, bounds.Contains(visibility2d.MakePoint(10, 10)))

	polygon := compute(t, config)
	assert.InDelta(t, 100, polygon.Area(), 1e-6)
}

func TestDisjointShapeStillContainsOrigin(t *testing.T) {
	config := visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 0),
		Shapes: []visibility2d.Shape{visibility2d.MakeRectangle(50, 50, 60, 60)},
	}

	assert.True(t, config.SweepBounds().ContainsStrictly(config.Origin))
}

func TestDeterminism(t *testing.T) {
	edges := append(squareRoom(t, 30),
		mustEdge(t, "a", -10, -10, 10, 12),
		mustEdge(t, "b", -12, 8, 14, -6),
		limitedWall(t, "c", 3, -20, 3, 20, visibility2d.SenseSight),
		limitedWall(t, "d", 6, -20, 8, 25, visibility2d.SenseSight),
		mustEdge(t, "e", -25, 0, -15, 0),
	)

	config := visibility2d.Config{
		Origin: visibility2d.MakePoint(1, -2),
		Sense:  visibility2d.SenseSight,
	}

	first := compute(t, config, edges...)
	for i := 0; i < 5; i++ {
		// reverse the candidate order each time
		reversed := make([]*visibility2d.Edge, len(edges))
		for j, edge := range edges {
			reversed[len(edges)-1-j] = edge
		}
		edges = reversed

		other := compute(t, config, edges...)
		assert.Equal(t, first.Points, other.Points)
	}

	assert.True(t, first.Area() > 0)
}

func TestOverlappingWallsIgnoreCandidateOrder(t *testing.T) {
	// w1 and w2 lie on the same line y = 0.3x - 2 and overlap for x in [-10, 10]
	edges := append(squareRoom(t, 30),
		limitedWall(t, "w1", -20, -8, 10, 1, visibility2d.SenseSight),
		limitedWall(t, "w2", -10, -5, 20, 4, visibility2d.SenseSight),
		mustEdge(t, "x", -7, 9, 13, -11),
		mustEdge(t, "y", 4, 14, 17, 6),
	)

	config := visibility2d.Config{
		Origin: visibility2d.MakePoint(0, 1),
		Sense:  visibility2d.SenseSight,
	}

	first := compute(t, config, edges...)
	for shift := 1; shift < len(edges); shift++ {
		rotated := append(append([]*visibility2d.Edge{}, edges[shift:]...), edges[:shift]...)
		other := compute(t, config, rotated...)
		assert.Equal(t, first.Points, other.Points, "rotated by %d", shift)
	}
}

func TestSweepDoesNotMutateEdges(t *testing.T) {
	a := mustEdge(t, "a", -10, -10, 10, 12)
	b := mustEdge(t, "b", -12, 8, 14, -6)

	compute(t, visibility2d.Config{Sense: visibility2d.SenseSight}, a, b)

	assert.Empty(t, a.Intersections())
	assert.Empty(t, b.Intersections())
}

func TestMonotonicBlocking(t *testing.T) {
	// walls outside a closed room add nothing
	edges := append(squareRoom(t, 5),
		mustEdge(t, "outside1", 8, -8, 8, 8),
		mustEdge(t, "outside2", -20, -3, -9, 4),
		limitedWall(t, "outside3", -8, 9, 8, 9, visibility2d.SenseSight),
	)

	polygon := compute(t, visibility2d.Config{Sense: visibility2d.SenseSight}, edges...)

	assertPoints(t, []visibility2d.Point{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 5, Y: 5},
		{X: -5, Y: 5},
	}, polygon.Points)
}

func TestCollinearWalls(t *testing.T) {
	// two walls starting on the same ray from the origin
	polygon := compute(t, visibility2d.Config{Sense: visibility2d.SenseSight},
		mustEdge(t, "near", 5, -5, 5, 5),
		mustEdge(t, "far", 10, -10, 10, 10),
	)

	assert.True(t, polygon.Contains(visibility2d.MakePoint(4, 0)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(7, 0)))
	assert.False(t, polygon.Contains(visibility2d.MakePoint(20, 0)))
	assert.True(t, polygon.Contains(visibility2d.MakePoint(9, -9.5)))
}

func TestInvalidEdgesAreDropped(t *testing.T) {
	bad := &visibility2d.Edge{ID: "bad"}
	touching := mustEdge(t, "touching", 0, 0, 5, 5)

	polygon := compute(t, visibility2d.Config{Sense: visibility2d.SenseSight},
		bad,
		touching,
		mustEdge(t, "w", 5, -5, 5, 5),
	)

	require.Len(t, polygon.Dropped, 2)
	assert.Equal(t, visibility2d.ErrInvalidEdge, errors.Cause(polygon.Dropped[0]))
	assert.Equal(t, visibility2d.ErrDegenerateSweep, errors.Cause(polygon.Dropped[1]))
	assert.Len(t, polygon.DroppedMessages(), 2)

	assert.False(t, polygon.Contains(visibility2d.MakePoint(20, 0)))
}

type failingIndex struct{}

func (failingIndex) Candidates(bounds visibility2d.Rectangle) ([]*visibility2d.Edge, error) {
	return nil, errors.New("connection refused")
}

func TestIndexUnavailable(t *testing.T) {
	polygon, err := visibility2d.ComputePolygon(visibility2d.Config{}, failingIndex{})

	assert.Nil(t, polygon)
	require.Error(t, err)
	assert.Equal(t, visibility2d.ErrIndexUnavailable, errors.Cause(err))
	assert.Contains(t, err.Error(), "connection refused")

	_, err = visibility2d.ComputePolygon(visibility2d.Config{}, nil)
	assert.Equal(t, visibility2d.ErrIndexUnavailable, errors.Cause(err))
}

func TestDebugHistory(t *testing.T) {
	polygon := compute(t, visibility2d.Config{
		Sense: visibility2d.SenseSight,
		Debug: true,
	},
		limitedWall(t, "w1", 5, -5, 5, 5, visibility2d.SenseSight),
		limitedWall(t, "w2", 10, -5, 10, 5, visibility2d.SenseSight),
	)

	// 4 wall endpoints + 4 bounds corners
	require.Len(t, polygon.Vertices, 8)
	for i, v := range polygon.Vertices {
		assert.Equal(t, i, v.SortIndex())
		assert.True(t, v.Visited())
	}

	// bounds corners on the same rays as w1 endpoints are processed with them
	assert.Len(t, polygon.ActiveEdges, 6)
	assert.NotEmpty(t, polygon.Rays)

	for _, ray := range polygon.Rays {
		assert.Equal(t, visibility2d.False, ray.Result.IsBehind)
		assert.True(t, ray.Result.WasLimited.IsKnown())
	}

	withoutDebug := compute(t, visibility2d.Config{Sense: visibility2d.SenseSight},
		limitedWall(t, "w1", 5, -5, 5, 5, visibility2d.SenseSight),
	)
	assert.Nil(t, withoutDebug.Rays)
	assert.Nil(t, withoutDebug.Vertices)
}

func TestSweepCanBeReused(t *testing.T) {
	sweep := visibility2d.NewClockwiseSweep(visibility2d.Config{Sense: visibility2d.SenseSight})
	index := visibility2d.NewEdgeList(squareRoom(t, 5)...)

	first, err := sweep.Compute(index)
	require.NoError(t, err)

	second, err := sweep.Compute(index)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, sweep.Bounds(), first.Bounds)
}
