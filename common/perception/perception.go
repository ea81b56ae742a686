package perception

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bytearena/lineofsight/common/visibility2d"
)

// Source is something that emits or receives a sense: a torch, an eye, a
// noise. Each source gets its own sweep.
type Source struct {
	ID             string
	Origin         visibility2d.Point
	Sense          visibility2d.Sense
	Radius         float64
	ExternalRadius float64
	Shapes         []visibility2d.Shape

	SceneBounds     *visibility2d.Rectangle
	DirectionMode   visibility2d.DirectionMode
	UseInnerBounds  bool
	IncludeDarkness bool
	IgnoreThreshold bool
	Debug           bool
}

func (s Source) Config() visibility2d.Config {
	return visibility2d.Config{
		Origin:          s.Origin,
		Sense:           s.Sense,
		Radius:          s.Radius,
		ExternalRadius:  s.ExternalRadius,
		Shapes:          s.Shapes,
		SceneBounds:     s.SceneBounds,
		DirectionMode:   s.DirectionMode,
		UseInnerBounds:  s.UseInnerBounds,
		IncludeDarkness: s.IncludeDarkness,
		IgnoreThreshold: s.IgnoreThreshold,
		Debug:           s.Debug,
	}
}

// Compute runs the sweep of a single source
func Compute(index visibility2d.EdgeIndex, source Source) (*visibility2d.Polygon, error) {
	polygon, err := visibility2d.ComputePolygon(source.Config(), index)
	if err != nil {
		return nil, errors.Wrapf(err, "source %s", source.ID)
	}

	return polygon, nil
}

// ComputeAll sweeps every source concurrently and returns the polygons in
// source order. The first error cancels the sweeps not started yet.
func ComputeAll(ctx context.Context, index visibility2d.EdgeIndex, sources []Source) ([]*visibility2d.Polygon, error) {
	polygons := make([]*visibility2d.Polygon, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, source := range sources {
		if gctx.Err() != nil {
			break
		}

		i, source := i, source
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			polygon, err := Compute(index, source)
			if err != nil {
				return err
			}

			polygons[i] = polygon
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// canceled before anything failed
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return polygons, nil
}
