package visibility2d

// CollisionResult is the transient state of the sweep at one vertex
type CollisionResult struct {
	Target     *Vertex   `json:"target"`
	Collisions []*Vertex `json:"collisions"`

	IsBehind   Tristate `json:"isBehind"`
	IsLimited  Tristate `json:"isLimited"`
	WasLimited Tristate `json:"wasLimited"`

	LimitedCW      bool `json:"limitedCW"`
	LimitedCCW     bool `json:"limitedCCW"`
	BlockedCW      bool `json:"blockedCW"`
	BlockedCCW     bool `json:"blockedCCW"`
	BlockedCWPrev  bool `json:"blockedCWPrev"`
	BlockedCCWPrev bool `json:"blockedCCWPrev"`

	cwEdges  []int
	ccwEdges []int
}

func newCollisionResult(target *Vertex) *CollisionResult {
	return &CollisionResult{
		Target:     target,
		Collisions: make([]*Vertex, 0),
		IsLimited:  TristateOf(target.IsLimited()),
		cwEdges:    target.cwEdges,
		ccwEdges:   target.ccwEdges,
	}
}

func (r *CollisionResult) CWEdgeCount() int  { return len(r.cwEdges) }
func (r *CollisionResult) CCWEdgeCount() int { return len(r.ccwEdges) }

// collide registers a collision point met along the ray, in distance order
func (r *CollisionResult) collide(v *Vertex) {
	r.BlockedCCWPrev = r.BlockedCCW
	r.BlockedCWPrev = r.BlockedCW

	if !r.BlockedCCW {
		if v.IsBlockingCCW() {
			r.BlockedCCW = true
		} else if v.IsLimitingCCW() {
			if r.LimitedCCW {
				r.BlockedCCW = true
			} else {
				r.LimitedCCW = true
			}
		}
	}

	if !r.BlockedCW {
		if v.IsBlockingCW() {
			r.BlockedCW = true
		} else if v.IsLimitingCW() {
			if r.LimitedCW {
				r.BlockedCW = true
			} else {
				r.LimitedCW = true
			}
		}
	}

	r.Collisions = append(r.Collisions, v)
}

func (r *CollisionResult) blockedCCWNow() bool {
	return r.BlockedCCW && !r.BlockedCCWPrev
}

func (r *CollisionResult) blockedCWNow() bool {
	return r.BlockedCW && !r.BlockedCWPrev
}

func (r *CollisionResult) blocked() bool {
	return r.BlockedCW && r.BlockedCCW
}
