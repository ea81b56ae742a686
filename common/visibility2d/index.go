package visibility2d

// EdgeIndex returns at least every edge whose bounds intersect the rectangle
type EdgeIndex interface {
	Candidates(bounds Rectangle) ([]*Edge, error)
}

// EdgeList is the simplest EdgeIndex: a linear scan over its edges
type EdgeList []*Edge

func NewEdgeList(edges ...*Edge) EdgeList {
	return EdgeList(edges)
}

func (l EdgeList) Candidates(bounds Rectangle) ([]*Edge, error) {
	res := make([]*Edge, 0, len(l))
	for _, edge := range l {
		if edge == nil {
			continue
		}

		if edge.bounds.Intersects(bounds) {
			res = append(res, edge)
		}
	}

	return res, nil
}
