package edgeindex

import (
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/bytearena/lineofsight/common/visibility2d"
)

var (
	ErrDuplicateEdge = errors.New("duplicate edge")
	ErrUnknownEdge   = errors.New("unknown edge")
)

// rtreego refuses empty dimensions: horizontal and vertical edges get a thin box
const rectPadding = 0.005

type entry struct {
	edge *visibility2d.Edge
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

func entryComparator(obj1, obj2 rtreego.Spatial) bool {
	sp1 := obj1.(*entry)
	sp2 := obj2.(*entry)

	return sp1.edge.ID == sp2.edge.ID
}

func rectFromBounds(bounds visibility2d.Rectangle) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{bounds.MinX - rectPadding, bounds.MinY - rectPadding},
		[]float64{bounds.Width() + 2*rectPadding, bounds.Height() + 2*rectPadding},
	)
}

// Index is an R-tree of edges implementing visibility2d.EdgeIndex.
// It keeps the intersections between its edges up to date as edges are added
// and removed. Candidates returns copies, so sweeps never race with updates.
type Index struct {
	tree    *rtreego.Rtree
	entries map[string]*entry
	lock    *sync.RWMutex
}

func New(edges ...*visibility2d.Edge) (*Index, error) {
	index := &Index{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[string]*entry),
		lock:    &sync.RWMutex{},
	}

	for _, edge := range edges {
		if err := index.Add(edge); err != nil {
			return nil, err
		}
	}

	return index, nil
}

// Add inserts the edge and records its intersections with the indexed edges.
// An edge without ID gets a random one.
func (index *Index) Add(edge *visibility2d.Edge) error {
	e, err := newEntry(edge)
	if err != nil {
		return err
	}

	index.lock.Lock()
	defer index.lock.Unlock()

	if _, exists := index.entries[edge.ID]; exists {
		return errors.Wrapf(ErrDuplicateEdge, "edge %s", edge.ID)
	}

	index.add(e)
	return nil
}

func newEntry(edge *visibility2d.Edge) (*entry, error) {
	if edge == nil {
		return nil, errors.Wrap(visibility2d.ErrInvalidEdge, "nil edge")
	}

	if edge.ID == "" {
		edge.ID = uuid.NewV4().String()
	}

	rect, err := rectFromBounds(edge.Bounds())
	if err != nil {
		return nil, errors.Wrapf(visibility2d.ErrInvalidEdge, "edge %s: %s", edge.ID, err.Error())
	}

	return &entry{edge: edge, rect: rect}, nil
}

// add expects the write lock
func (index *Index) add(e *entry) {
	for _, spatial := range index.tree.SearchIntersect(e.rect) {
		e.edge.RecordIntersection(spatial.(*entry).edge)
	}

	index.entries[e.edge.ID] = e
	index.tree.Insert(e)
}

// Remove deletes the edge and forgets its intersections
func (index *Index) Remove(id string) error {
	index.lock.Lock()
	defer index.lock.Unlock()

	return index.remove(id)
}

// remove expects the write lock
func (index *Index) remove(id string) error {
	e, exists := index.entries[id]
	if !exists {
		return errors.Wrapf(ErrUnknownEdge, "edge %s", id)
	}

	e.edge.RemoveIntersections()
	index.tree.DeleteWithComparator(e, entryComparator)
	delete(index.entries, id)

	return nil
}

// Update replaces the edge having the same ID. Readers see either the old
// edge or the new one, never none.
func (index *Index) Update(edge *visibility2d.Edge) error {
	if edge == nil {
		return errors.Wrap(visibility2d.ErrInvalidEdge, "nil edge")
	}

	if edge.ID == "" {
		return errors.Wrap(ErrUnknownEdge, "edge without id")
	}

	e, err := newEntry(edge)
	if err != nil {
		return err
	}

	index.lock.Lock()
	defer index.lock.Unlock()

	if err := index.remove(edge.ID); err != nil {
		return err
	}

	index.add(e)
	return nil
}

// Put adds the edge or replaces the one having the same ID.
// It reports whether an edge was replaced.
func (index *Index) Put(edge *visibility2d.Edge) (bool, error) {
	e, err := newEntry(edge)
	if err != nil {
		return false, err
	}

	index.lock.Lock()
	defer index.lock.Unlock()

	_, replaced := index.entries[edge.ID]
	if replaced {
		if err := index.remove(edge.ID); err != nil {
			return false, err
		}
	}

	index.add(e)
	return replaced, nil
}

func (index *Index) Get(id string) (*visibility2d.Edge, bool) {
	index.lock.RLock()
	defer index.lock.RUnlock()

	e, exists := index.entries[id]
	if !exists {
		return nil, false
	}

	return e.edge.Clone(), true
}

func (index *Index) Len() int {
	index.lock.RLock()
	defer index.lock.RUnlock()

	return len(index.entries)
}

// Edges returns copies of every indexed edge, ordered by ID
func (index *Index) Edges() []*visibility2d.Edge {
	index.lock.RLock()
	defer index.lock.RUnlock()

	res := make([]*visibility2d.Edge, 0, len(index.entries))
	for _, e := range index.entries {
		res = append(res, e.edge.Clone())
	}

	sortByID(res)
	return res
}

// Candidates returns copies of the edges whose bounds intersect bounds, ordered by ID
func (index *Index) Candidates(bounds visibility2d.Rectangle) ([]*visibility2d.Edge, error) {
	rect, err := rectFromBounds(bounds)
	if err != nil {
		return nil, errors.Wrapf(visibility2d.ErrIndexUnavailable, "bounds %v: %s", bounds, err.Error())
	}

	index.lock.RLock()
	defer index.lock.RUnlock()

	spatials := index.tree.SearchIntersect(rect)
	res := make([]*visibility2d.Edge, len(spatials))
	for i, spatial := range spatials {
		res[i] = spatial.(*entry).edge.Clone()
	}

	sortByID(res)
	return res, nil
}

func sortByID(edges []*visibility2d.Edge) {
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].ID < edges[j].ID
	})
}
