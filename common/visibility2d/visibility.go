package visibility2d

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/common/utils/trigo"
)

type inclusion int

const (
	includeNever inclusion = iota
	includeMaybe
	includeAlways
)

// sweepEdge is the per-sweep view of an edge: oriented so that b is
// clockwise of a as seen from the origin
type sweepEdge struct {
	edge        *Edge
	a           Point
	b           Point
	restriction Restriction
	vertexA     int
	vertexB     int
}

// activeEdges is the ordered set of edges crossed by the current sweep ray
type activeEdges struct {
	members []bool
	list    []int
}

func newActiveEdges(size int) *activeEdges {
	return &activeEdges{
		members: make([]bool, size),
		list:    make([]int, 0),
	}
}

func (a *activeEdges) has(i int) bool {
	return a.members[i]
}

func (a *activeEdges) add(i int) {
	if a.members[i] {
		return
	}

	a.members[i] = true
	pos := sort.SearchInts(a.list, i)
	a.list = append(a.list, 0)
	copy(a.list[pos+1:], a.list[pos:])
	a.list[pos] = i
}

func (a *activeEdges) remove(i int) {
	if !a.members[i] {
		return
	}

	a.members[i] = false
	pos := sort.SearchInts(a.list, i)
	copy(a.list[pos:], a.list[pos+1:])
	a.list = a.list[:len(a.list)-1]
}

// ClockwiseSweep computes the visibility polygon of a single source.
// A ClockwiseSweep is not safe for concurrent use; run one per goroutine.
type ClockwiseSweep struct {
	config Config
	origin Point
	bounds Rectangle
	shapes []Shape

	edges       []*sweepEdge
	edgeIndex   map[*Edge]int
	vertices    []*Vertex
	vertexByKey map[VertexKey]int
	sorted      []int
	active      *activeEdges

	points  []Point
	dropped []error
	rays    []Ray
	history [][]string
}

func NewClockwiseSweep(config Config) *ClockwiseSweep {
	return &ClockwiseSweep{
		config: config,
		origin: config.Origin,
	}
}

func (s *ClockwiseSweep) Config() Config {
	return s.config
}

// Bounds is the rectangle the sweep works in
func (s *ClockwiseSweep) Bounds() Rectangle {
	return s.config.SweepBounds()
}

// Compute runs the sweep against the edges provided by index.
// Shared edges are never mutated: the sweep works on private copies.
func (s *ClockwiseSweep) Compute(index EdgeIndex) (*Polygon, error) {
	if index == nil {
		return nil, errors.Wrap(ErrIndexUnavailable, "no edge index")
	}

	s.reset()

	candidates, err := index.Candidates(s.bounds)
	if err != nil {
		return nil, errors.Wrapf(ErrIndexUnavailable, "candidates for %v: %s", s.bounds, err.Error())
	}

	edges := s.filterEdges(candidates)
	edges = append(edges, s.boundingEdges()...)

	IdentifyEdgeIntersections(edges)

	s.identifyVertices(edges)
	s.identifyIntersections()
	s.sortVertices()
	s.initializeActiveEdges()
	s.executeSweep()

	points := s.closePoints()
	for _, shape := range s.shapes {
		if containsPolygon(shape, points) {
			continue
		}

		points = clipToShape(points, s.origin, shape)
	}

	polygon := &Polygon{
		Origin:  s.origin,
		Sense:   s.config.Sense.String(),
		Bounds:  s.bounds,
		Points:  points,
		Dropped: s.dropped,
	}

	if s.config.Debug {
		polygon.Rays = s.rays
		polygon.ActiveEdges = s.history
		polygon.Vertices = make([]*Vertex, len(s.sorted))
		for i, vi := range s.sorted {
			polygon.Vertices[i] = s.vertices[vi]
		}
	}

	return polygon, nil
}

func (s *ClockwiseSweep) reset() {
	s.origin = s.config.Origin
	s.bounds = s.config.SweepBounds()
	s.shapes = s.config.BoundaryShapes()
	s.edges = make([]*sweepEdge, 0)
	s.edgeIndex = make(map[*Edge]int)
	s.vertices = make([]*Vertex, 0)
	s.vertexByKey = make(map[VertexKey]int)
	s.sorted = nil
	s.active = nil
	s.points = make([]Point, 0)
	s.dropped = make([]error, 0)
	s.rays = make([]Ray, 0)
	s.history = make([][]string, 0)
}

func (s *ClockwiseSweep) drop(err error) {
	s.dropped = append(s.dropped, err)
	utils.DebugWithContext("visibility2d", err.Error(), utils.Context{
		"origin": s.origin.String(),
		"sense":  s.config.Sense.String(),
	})
}

///////////////////////////////////////////////////////////////////////////////
// Edge selection
///////////////////////////////////////////////////////////////////////////////

func (s *ClockwiseSweep) edgeTypeInclusion(edgeType EdgeType) inclusion {
	switch edgeType {
	case EdgeTypeWall:
		return includeMaybe
	case EdgeTypeDarkness:
		if s.config.IncludeDarkness {
			return includeMaybe
		}
		return includeNever
	case EdgeTypeInnerBound:
		if s.config.UseInnerBounds {
			return includeAlways
		}
		return includeNever
	case EdgeTypeOuterBound:
		if s.config.UseInnerBounds {
			return includeNever
		}
		return includeAlways
	}

	return includeNever
}

func (s *ClockwiseSweep) passesDirection(edge *Edge, side Direction) bool {
	if edge.Direction == DirectionBoth {
		return true
	}

	switch s.config.DirectionMode {
	case DirectionModeNormal:
		return side == edge.Direction
	case DirectionModeReversed:
		return side == edge.Direction.Opposite()
	case DirectionModeBoth:
		return true
	}

	return true
}

func (s *ClockwiseSweep) testEdgeInclusion(edge *Edge, side Direction) bool {
	sense := s.config.Sense

	if edge.Restriction(sense) == RestrictionNone {
		return false
	}

	if !s.bounds.IntersectsSegment(edge.a, edge.b) {
		return false
	}

	for _, shape := range s.shapes {
		if filter, ok := shape.(EdgeFilter); ok && !filter.IncludeEdge(edge.a, edge.b) {
			return false
		}
	}

	if !s.passesDirection(edge, side) {
		return false
	}

	if !s.config.IgnoreThreshold && edge.AppliesThreshold(sense, s.origin, s.config.ExternalRadius) {
		return false
	}

	return true
}

func (s *ClockwiseSweep) touchesOrigin(edge *Edge) bool {
	originKey := PointKey(s.origin)
	if PointKey(edge.a) == originKey || PointKey(edge.b) == originKey {
		return true
	}

	return trigo.PointOnLineSegment(s.origin.Vector(), edge.a.Vector(), edge.b.Vector())
}

// filterEdges keeps the candidates restricting the sweep and returns private copies
func (s *ClockwiseSweep) filterEdges(candidates []*Edge) []*Edge {
	res := make([]*Edge, 0, len(candidates))
	seen := make(map[*Edge]bool)

	for _, edge := range candidates {
		if edge == nil || seen[edge] {
			continue
		}
		seen[edge] = true

		if edge.isDegenerate() {
			s.drop(errors.Wrapf(ErrInvalidEdge, "edge %s has zero length", edge.ID))
			continue
		}

		rule := s.edgeTypeInclusion(edge.Type)
		if rule == includeNever {
			continue
		}

		if s.touchesOrigin(edge) {
			s.drop(errors.Wrapf(ErrDegenerateSweep, "edge %s touches the origin %s", edge.ID, s.origin))
			continue
		}

		// edges seen edge-on do not hide anything
		side := edge.OrientPoint(s.origin)
		if side == DirectionBoth {
			continue
		}

		if rule == includeMaybe && !s.testEdgeInclusion(edge, side) {
			continue
		}

		clone := edge.Clone()
		clone.clearIntersections()
		res = append(res, clone)
	}

	// arena order must not depend on the order of the candidates
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].ID != res[j].ID {
			return res[i].ID < res[j].ID
		}

		return res[i].less(res[j])
	})

	return res
}

// boundingEdges closes the sweep area so that every ray ends somewhere
func (s *ClockwiseSweep) boundingEdges() []*Edge {
	names := [4]string{"top", "right", "bottom", "left"}
	res := make([]*Edge, 0, 4)

	for i, side := range s.bounds.Sides() {
		edge, err := NewEdge("bounds:"+names[i], side[0], side[1])
		if err != nil {
			s.drop(err)
			continue
		}

		edge.Type = EdgeTypeOuterBound
		res = append(res, edge)
	}

	return res
}

///////////////////////////////////////////////////////////////////////////////
// Vertices
///////////////////////////////////////////////////////////////////////////////

func (s *ClockwiseSweep) addVertex(p Point, endpoint bool) int {
	key := PointKey(p)
	if i, ok := s.vertexByKey[key]; ok {
		if endpoint {
			s.vertices[i].endpoint = true
		}
		return i
	}

	i := len(s.vertices)
	s.vertices = append(s.vertices, newVertex(p, endpoint))
	s.vertexByKey[key] = i
	return i
}

func (s *ClockwiseSweep) identifyVertices(edges []*Edge) {
	origin := s.origin.Vector()

	for _, edge := range edges {
		a, b := edge.a, edge.b
		if trigo.Orient2D(origin, a.Vector(), b.Vector()) < 0 {
			a, b = b, a
		}

		restriction := edge.Restriction(s.config.Sense)
		if restriction == RestrictionNone {
			// bounds are included whatever their restrictions
			restriction = RestrictionNormal
		}

		i := len(s.edges)
		se := &sweepEdge{
			edge:        edge,
			a:           a,
			b:           b,
			restriction: restriction,
		}
		s.edges = append(s.edges, se)
		s.edgeIndex[edge] = i

		se.vertexA = s.addVertex(a, true)
		s.vertices[se.vertexA].attach(i, restriction, true, false)

		se.vertexB = s.addVertex(b, true)
		s.vertices[se.vertexB].attach(i, restriction, false, true)
	}
}

func (s *ClockwiseSweep) identifyIntersections() {
	for i, se := range s.edges {
		for _, x := range se.edge.intersections {
			j, ok := s.edgeIndex[x.Edge]
			if !ok || j < i {
				continue
			}

			v := s.vertices[s.addVertex(x.Point, false)]
			s.attachIntersection(v, i)
			s.attachIntersection(v, j)
		}
	}
}

// attachIntersection attaches the edge on the sides it extends to from v
func (s *ClockwiseSweep) attachIntersection(v *Vertex, i int) {
	if v.HasEdge(i) {
		return
	}

	se := s.edges[i]
	origin := s.origin.Vector()
	p := v.exact.Vector()

	if trigo.Orient2D(origin, se.b.Vector(), p) > 0 {
		v.attach(i, se.restriction, false, true)
		return
	}

	if trigo.Orient2D(origin, se.a.Vector(), p) < 0 {
		v.attach(i, se.restriction, true, false)
		return
	}

	v.attach(i, se.restriction, true, true)
}

func (s *ClockwiseSweep) sortVertices() {
	s.sorted = make([]int, len(s.vertices))
	for i, v := range s.vertices {
		v.distanceSq = s.origin.DistanceSq(v.exact)
		s.sorted[i] = i
	}

	sort.Sort(byAngle{
		origin:   s.origin,
		vertices: s.vertices,
		order:    s.sorted,
	})

	for rank, vi := range s.sorted {
		s.vertices[vi].sortIndex = rank
	}

	// group runs of vertices on the same ray
	start := 0
	for i := 1; i <= len(s.sorted); i++ {
		if i < len(s.sorted) && isCollinearFromOrigin(s.origin, s.vertices[s.sorted[i-1]].exact, s.vertices[s.sorted[i]].exact) {
			continue
		}

		if i-start > 1 {
			for _, vi := range s.sorted[start:i] {
				v := s.vertices[vi]
				for _, other := range s.sorted[start:i] {
					if other != vi {
						v.collinear = append(v.collinear, other)
					}
				}
			}
		}

		start = i
	}
}

///////////////////////////////////////////////////////////////////////////////
// Sweep
///////////////////////////////////////////////////////////////////////////////

// initializeActiveEdges activates the edges crossed by the first ray, cast due west
func (s *ClockwiseSweep) initializeActiveEdges() {
	s.active = newActiveEdges(len(s.edges))

	origin := s.origin.Vector()
	rayEnd := MakePoint(s.bounds.MinX-1, s.origin.Y).Vector()

	for i, se := range s.edges {
		if _, intersects, _, _ := trigo.IntersectionWithLineSegment(origin, rayEnd, se.a.Vector(), se.b.Vector()); intersects {
			s.active.add(i)
		}
	}
}

func (s *ClockwiseSweep) executeSweep() {
	for _, vi := range s.sorted {
		v := s.vertices[vi]
		if v.visited {
			continue
		}

		group := make([]int, 0, 1+len(v.collinear))
		group = append(group, vi)
		group = append(group, v.collinear...)
		sort.Slice(group, func(i, j int) bool {
			return s.vertices[group[i]].sortIndex < s.vertices[group[j]].sortIndex
		})

		for _, gi := range group {
			s.updateActiveEdges(s.vertices[gi])
		}

		s.determineSweepResult(v, group)

		if s.config.Debug {
			s.history = append(s.history, s.activeEdgeIDs())
		}
	}
}

func (s *ClockwiseSweep) activeEdgeIDs() []string {
	ids := make([]string, len(s.active.list))
	for i, ei := range s.active.list {
		ids[i] = s.edges[ei].edge.ID
	}

	return ids
}

func (s *ClockwiseSweep) updateActiveEdges(v *Vertex) {
	for _, ei := range v.ccwEdges {
		if !containsIndex(v.cwEdges, ei) {
			s.active.remove(ei)
		}
	}

	for _, ei := range v.cwEdges {
		se := s.edges[ei]
		if s.vertices[se.vertexA].visited && s.vertices[se.vertexB].visited {
			continue
		}

		s.active.add(ei)
	}

	v.visited = true
}

// isVertexBehindActiveEdges tells whether an active edge hides v.
// A single Limited edge in front of v does not hide it but is reported.
func (s *ClockwiseSweep) isVertexBehindActiveEdges(v *Vertex) (isBehind bool, wasLimited bool) {
	p := v.exact.Vector()

	for _, ei := range s.active.list {
		if v.HasEdge(ei) {
			continue
		}

		se := s.edges[ei]

		// the origin is on the positive side of every oriented edge
		if trigo.Orient2D(se.a.Vector(), se.b.Vector(), p) > 0 {
			continue
		}

		if se.restriction == RestrictionLimited && !wasLimited {
			wasLimited = true
			continue
		}

		return true, wasLimited
	}

	return false, wasLimited
}

func (s *ClockwiseSweep) determineSweepResult(v *Vertex, group []int) {
	hasCollinear := len(group) > 1

	result := newCollisionResult(v)
	isBehind, wasLimited := s.isVertexBehindActiveEdges(v)
	result.IsBehind = TristateOf(isBehind)
	result.WasLimited = TristateOf(wasLimited)

	// hidden by closer edges
	if isBehind {
		return
	}

	// no edge ends here: a new edge starts
	if len(v.ccwEdges) == 0 {
		s.switchEdge(result, group)
		return
	}

	// a single Limited edge passes through v
	ccwLimited := !wasLimited && v.IsLimitingCCW()
	cwLimited := !wasLimited && v.IsLimitingCW()
	if !hasCollinear && ccwLimited && cwLimited {
		return
	}

	// the boundary bends at v
	if !ccwLimited && !cwLimited && len(v.ccwEdges) > 0 && len(v.cwEdges) > 0 {
		result.Collisions = append(result.Collisions, v)
		s.addPoint(v.exact)
		s.trace(result)
		return
	}

	s.switchEdge(result, group)
}

// switchEdge walks the ray through the target, nearest collision first, and
// emits the point where each side of the ray gets blocked.
// The counter-clockwise side comes first.
func (s *ClockwiseSweep) switchEdge(result *CollisionResult, group []int) {
	target := result.Target
	collisions := make([]*Vertex, 0, len(group)+len(s.active.list))

	for _, gi := range group {
		collisions = append(collisions, s.vertices[gi])
	}

	collisions = append(collisions, s.rayCollisions(target, group)...)
	sort.Sort(byDistance(collisions))

	var ccwPoint *Vertex
	var cwPoint *Vertex

	for _, c := range collisions {
		result.collide(c)

		if result.blockedCCWNow() {
			ccwPoint = c
		}

		if result.blockedCWNow() {
			cwPoint = c
		}

		if result.blocked() {
			break
		}
	}

	if ccwPoint == nil || cwPoint == nil {
		exit := s.boundsCollision(target)
		if ccwPoint == nil {
			ccwPoint = exit
		}
		if cwPoint == nil {
			cwPoint = exit
		}
	}

	s.trace(result)

	if ccwPoint == cwPoint {
		// the ray crosses a single blocking edge: no bend
		if !ccwPoint.ray {
			s.addPoint(ccwPoint.exact)
		}
		return
	}

	s.addPoint(ccwPoint.exact)
	s.addPoint(cwPoint.exact)
}

// rayCollisions intersects the ray through target with the active edges not
// attached to any vertex of the group
func (s *ClockwiseSweep) rayCollisions(target *Vertex, group []int) []*Vertex {
	res := make([]*Vertex, 0)
	origin := s.origin.Vector()
	through := target.exact.Vector()

	for _, ei := range s.active.list {
		attached := false
		for _, gi := range group {
			if s.vertices[gi].HasEdge(ei) {
				attached = true
				break
			}
		}

		if attached {
			continue
		}

		se := s.edges[ei]
		p, t, parallel := trigo.LinesIntersectionPoint(origin, through, se.a.Vector(), se.b.Vector())
		if parallel || t <= 0 {
			continue
		}

		c := newVertex(pointFromVector(p), false)
		c.ray = true
		c.edgeID = se.edge.ID
		c.attach(ei, se.restriction, true, true)
		c.distanceSq = s.origin.DistanceSq(c.exact)
		res = append(res, c)
	}

	return res
}

// boundsCollision is where the ray through target leaves the sweep bounds
func (s *ClockwiseSweep) boundsCollision(target *Vertex) *Vertex {
	origin := s.origin.Vector()
	through := target.exact.Vector()

	best := target.exact
	bestT := -1.0
	for _, side := range s.bounds.Sides() {
		p, t, parallel := trigo.LinesIntersectionPoint(origin, through, side[0].Vector(), side[1].Vector())
		if parallel || t <= 0 {
			continue
		}

		if bestT < 0 || t < bestT {
			bestT = t
			best = pointFromVector(p)
		}
	}

	exit := newVertex(best, false)
	exit.ray = true
	exit.distanceSq = s.origin.DistanceSq(best)
	return exit
}

func (s *ClockwiseSweep) trace(result *CollisionResult) {
	if !s.config.Debug {
		return
	}

	s.rays = append(s.rays, Ray{
		Target: result.Target.exact,
		Result: result,
	})
}

func (s *ClockwiseSweep) addPoint(p Point) {
	if n := len(s.points); n > 0 && PointKey(s.points[n-1]) == PointKey(p) {
		return
	}

	s.points = append(s.points, p)
}

// closePoints drops the last point when it repeats the first one
func (s *ClockwiseSweep) closePoints() []Point {
	points := s.points
	if n := len(points); n > 1 && PointKey(points[0]) == PointKey(points[n-1]) {
		points = points[:n-1]
	}

	res := make([]Point, len(points))
	copy(res, points)
	return res
}

// ComputePolygon is a shortcut for NewClockwiseSweep(config).Compute(index)
func ComputePolygon(config Config, index EdgeIndex) (*Polygon, error) {
	return NewClockwiseSweep(config).Compute(index)
}
