package scenefile

import (
	"encoding/json"
	"io/ioutil"
	"math/rand"
	"strconv"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bytearena/lineofsight/common/visibility2d"
)

type GenerateOptions struct {
	// HalfSize of the square room centered on (0, 0)
	HalfSize float64
	Pillars  int
	Sources  int
	Seed     int64
}

// Generate builds a square room with random pillars (four limited walls
// each) and random sources. The same options give the same geometry.
func Generate(options GenerateOptions) SceneDescription {
	rnd := rand.New(rand.NewSource(options.Seed))
	size := options.HalfSize
	if size <= 0 {
		size = 50
	}

	bounds := visibility2d.MakeRectangle(-size-10, -size-10, size+10, size+10)
	room := visibility2d.MakeRectangle(-size, -size, size, size)
	names := newNamer()

	walls := make([]WallDescription, 0, 4+4*options.Pillars)
	for i, side := range room.Sides() {
		walls = append(walls, WallDescription{
			ID: "room-" + strconv.Itoa(i),
			A:  side[0],
			B:  side[1],
		})
	}

	for i := 0; i < options.Pillars; i++ {
		half := 0.5 + rnd.Float64()*size/20
		center := visibility2d.MakePoint(
			(rnd.Float64()*2-1)*(size-half-1),
			(rnd.Float64()*2-1)*(size-half-1),
		)

		name := names.next()
		pillar := visibility2d.RectangleAround(center, half)
		for j, side := range pillar.Sides() {
			walls = append(walls, WallDescription{
				ID:    name + "-" + strconv.Itoa(j),
				A:     side[0],
				B:     side[1],
				Sight: visibility2d.RestrictionLimited.String(),
				Light: visibility2d.RestrictionLimited.String(),
			})
		}
	}

	sources := make([]SourceDescription, 0, options.Sources)
	for i := 0; i < options.Sources; i++ {
		sense := visibility2d.Senses[rnd.Intn(len(visibility2d.Senses))]
		sources = append(sources, SourceDescription{
			ID: names.next(),
			Origin: visibility2d.MakePoint(
				(rnd.Float64()*2-1)*size*0.9,
				(rnd.Float64()*2-1)*size*0.9,
			),
			Sense:  sense.String(),
			Radius: float64(rnd.Intn(4)) * size / 4,
		})
	}

	return SceneDescription{
		Bounds:  &bounds,
		Walls:   walls,
		Sources: sources,
	}
}

type namer struct {
	used map[string]bool
}

func newNamer() *namer {
	return &namer{used: make(map[string]bool)}
}

// next returns a pet name never returned before
func (n *namer) next() string {
	name := petname.Generate(2, "-")
	for i := 2; n.used[name]; i++ {
		name = petname.Generate(2, "-") + "-" + strconv.Itoa(i)
	}

	n.used[name] = true
	return name
}

func Marshal(description SceneDescription, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(description)
	}

	return json.MarshalIndent(description, "", "  ")
}

// Save writes the description in the format matching the path extension
func Save(path string, description SceneDescription) error {
	data, err := Marshal(description, FormatFromPath(path))
	if err != nil {
		return errors.Wrap(err, "Could not marshal scene")
	}

	return errors.Wrapf(ioutil.WriteFile(path, data, 0644), "Could not write scene file (%s)", path)
}
