package visibility2d

import (
	"github.com/bytearena/lineofsight/common/utils/trigo"
)

// quadrant numbers the four sweep quadrants in clockwise order, starting due west.
// North (y < origin) comes first since y grows downward.
func quadrant(origin Point, p Point) int {
	dx := p.X - origin.X
	dy := p.Y - origin.Y

	if dy <= 0 {
		if dx < 0 {
			return 0 // north-west, including due west
		}
		return 1 // north-east, including due north and due east
	}

	if dx >= 0 {
		return 2 // south-east, including due south
	}

	return 3 // south-west
}

// compareAngle orders points clockwise around origin, then by distance.
// Returns -1 if a comes first, 1 if b comes first, 0 if they are at the same place.
func compareAngle(origin Point, a, b Point) int {
	qa := quadrant(origin, a)
	qb := quadrant(origin, b)

	if qa < qb {
		return -1
	}

	if qa > qb {
		return 1
	}

	cross := trigo.Orient2D(origin.Vector(), a.Vector(), b.Vector())
	if cross > 0 {
		return -1
	}

	if cross < 0 {
		return 1
	}

	return 0
}

func isCollinearFromOrigin(origin Point, a, b Point) bool {
	return quadrant(origin, a) == quadrant(origin, b) &&
		trigo.Orient2D(origin.Vector(), a.Vector(), b.Vector()) == 0
}

type byAngle struct {
	origin   Point
	vertices []*Vertex
	order    []int
}

func (coll byAngle) Len() int      { return len(coll.order) }
func (coll byAngle) Swap(i, j int) { coll.order[i], coll.order[j] = coll.order[j], coll.order[i] }
func (coll byAngle) Less(i, j int) bool {
	a := coll.vertices[coll.order[i]]
	b := coll.vertices[coll.order[j]]

	if cmp := compareAngle(coll.origin, a.exact, b.exact); cmp != 0 {
		return cmp < 0
	}

	if a.distanceSq != b.distanceSq {
		return a.distanceSq < b.distanceSq
	}

	return a.Key.Less(b.Key)
}

// byDistance orders the collisions met along a single ray
type byDistance []*Vertex

func (coll byDistance) Len() int      { return len(coll) }
func (coll byDistance) Swap(i, j int) { coll[i], coll[j] = coll[j], coll[i] }
func (coll byDistance) Less(i, j int) bool {
	if coll[i].distanceSq != coll[j].distanceSq {
		return coll[i].distanceSq < coll[j].distanceSq
	}

	if coll[i].Key != coll[j].Key {
		return coll[i].Key.Less(coll[j].Key)
	}

	return coll[i].edgeID < coll[j].edgeID
}
