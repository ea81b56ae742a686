package types

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/edgeindex"
	"github.com/bytearena/lineofsight/common/influxdb"
	"github.com/bytearena/lineofsight/common/perception"
	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/common/visibility2d"
)

// VizScene is the scene served to the viz clients: the walls, the
// connected watchers and the sweep metrics.
type VizScene struct {
	index    *edgeindex.Index
	bounds   *visibility2d.Rectangle
	sources  []perception.Source
	watchers *WatcherMap
	metrics  *influxdb.SweepMetrics
}

func NewVizScene(scene *scenefile.Scene, metrics *influxdb.SweepMetrics) (*VizScene, error) {
	index, err := edgeindex.New(scene.Edges...)
	if err != nil {
		return nil, errors.Wrap(err, "Could not index scene")
	}

	if metrics == nil {
		metrics = influxdb.NewSweepMetrics()
	}

	return &VizScene{
		index:    index,
		bounds:   scene.Bounds,
		sources:  scene.Sources,
		watchers: NewWatcherMap(),
		metrics:  metrics,
	}, nil
}

func (scene *VizScene) Index() *edgeindex.Index {
	return scene.index
}

func (scene *VizScene) Watchers() *WatcherMap {
	return scene.watchers
}

func (scene *VizScene) Sources() []perception.Source {
	return scene.sources
}

// Sweep computes the polygon of the described source against the current walls
func (scene *VizScene) Sweep(description scenefile.SourceDescription) (*visibility2d.Polygon, error) {
	source, err := description.Source()
	if err != nil {
		return nil, err
	}

	if source.SceneBounds == nil {
		source.SceneBounds = scene.bounds
	}

	start := time.Now()
	polygon, err := perception.Compute(scene.index, source)
	scene.metrics.Observe(polygon, err, time.Since(start))

	return polygon, err
}

// PutWall adds the wall or replaces the one having the same id
func (scene *VizScene) PutWall(description scenefile.WallDescription) (*visibility2d.Edge, error) {
	edge, err := description.Edge()
	if err != nil {
		return nil, err
	}

	if _, err = scene.index.Put(edge); err != nil {
		return nil, err
	}

	scene.notify()
	return edge, nil
}

func (scene *VizScene) RemoveWall(id string) error {
	if err := scene.index.Remove(id); err != nil {
		return err
	}

	scene.notify()
	return nil
}

// notify tells every watcher that its polygons are outdated
func (scene *VizScene) notify() {
	msg := VizMessage{
		Type:  MessageTypeScene,
		Edges: scene.index.Len(),
	}

	scene.watchers.Each(func(watcher *Watcher) {
		if err := watcher.Send(msg); err != nil {
			utils.Debug("viz-server", "Could not notify watcher "+watcher.GetId()+"; "+err.Error())
		}
	})
}
