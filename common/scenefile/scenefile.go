package scenefile

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"gopkg.in/yaml.v3"

	"github.com/bytearena/lineofsight/common/perception"
	"github.com/bytearena/lineofsight/common/visibility2d"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks YAML for .yml/.yaml files, JSON otherwise
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	}

	return FormatJSON
}

type WallDescription struct {
	ID        string                 `json:"id,omitempty" yaml:"id,omitempty"`
	A         visibility2d.Point     `json:"a" yaml:"a"`
	B         visibility2d.Point     `json:"b" yaml:"b"`
	Type      string                 `json:"type,omitempty" yaml:"type,omitempty"`
	Light     string                 `json:"light,omitempty" yaml:"light,omitempty"`
	Move      string                 `json:"move,omitempty" yaml:"move,omitempty"`
	Sight     string                 `json:"sight,omitempty" yaml:"sight,omitempty"`
	Sound     string                 `json:"sound,omitempty" yaml:"sound,omitempty"`
	Direction string                 `json:"direction,omitempty" yaml:"direction,omitempty"`
	Threshold visibility2d.Threshold `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

type ShapeDescription struct {
	Type   string               `json:"type" yaml:"type"`
	Center visibility2d.Point   `json:"center,omitempty" yaml:"center,omitempty"`
	Radius float64              `json:"radius,omitempty" yaml:"radius,omitempty"`
	Min    visibility2d.Point   `json:"min,omitempty" yaml:"min,omitempty"`
	Max    visibility2d.Point   `json:"max,omitempty" yaml:"max,omitempty"`
	Points []visibility2d.Point `json:"points,omitempty" yaml:"points,omitempty"`
}

type SourceDescription struct {
	ID              string             `json:"id" yaml:"id"`
	Origin          visibility2d.Point `json:"origin" yaml:"origin"`
	Sense           string             `json:"sense,omitempty" yaml:"sense,omitempty"`
	Radius          float64            `json:"radius,omitempty" yaml:"radius,omitempty"`
	ExternalRadius  float64            `json:"externalRadius,omitempty" yaml:"externalRadius,omitempty"`
	Shapes          []ShapeDescription `json:"shapes,omitempty" yaml:"shapes,omitempty"`
	DirectionMode   string             `json:"directionMode,omitempty" yaml:"directionMode,omitempty"`
	UseInnerBounds  bool               `json:"useInnerBounds,omitempty" yaml:"useInnerBounds,omitempty"`
	IncludeDarkness bool               `json:"includeDarkness,omitempty" yaml:"includeDarkness,omitempty"`
	IgnoreThreshold bool               `json:"ignoreThreshold,omitempty" yaml:"ignoreThreshold,omitempty"`
	Debug           bool               `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// SceneDescription is the file format
type SceneDescription struct {
	Bounds  *visibility2d.Rectangle `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Walls   []WallDescription       `json:"walls" yaml:"walls"`
	Sources []SourceDescription     `json:"sources,omitempty" yaml:"sources,omitempty"`
}

type Scene struct {
	Bounds  *visibility2d.Rectangle
	Edges   []*visibility2d.Edge
	Sources []perception.Source

	// Invalid lists the walls left out of Edges
	Invalid []error
}

// Source returns the source having the given id
func (s *Scene) Source(id string) (perception.Source, bool) {
	for _, source := range s.Sources {
		if source.ID == id {
			return source, true
		}
	}

	return perception.Source{}, false
}

func Load(path string) (*Scene, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read scene file (%s)", path)
	}

	scene, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "Could not parse scene file (%s)", path)
	}

	return scene, nil
}

func Parse(data []byte, format Format) (*Scene, error) {
	var description SceneDescription

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &description)
	default:
		err = json.Unmarshal(data, &description)
	}

	if err != nil {
		return nil, err
	}

	return description.Build()
}

// Build turns the description into edges and sources. Invalid walls are
// reported in Scene.Invalid and skipped; invalid sources fail the build.
func (d SceneDescription) Build() (*Scene, error) {
	scene := &Scene{
		Bounds:  d.Bounds,
		Edges:   make([]*visibility2d.Edge, 0, len(d.Walls)),
		Sources: make([]perception.Source, 0, len(d.Sources)),
		Invalid: make([]error, 0),
	}

	ids := make(map[string]bool)
	for i, wall := range d.Walls {
		edge, err := wall.Edge()
		if err != nil {
			scene.Invalid = append(scene.Invalid, errors.Wrapf(err, "wall #%d", i))
			continue
		}

		if ids[edge.ID] {
			scene.Invalid = append(scene.Invalid, errors.Errorf("wall #%d: duplicate id %s", i, edge.ID))
			continue
		}

		ids[edge.ID] = true
		scene.Edges = append(scene.Edges, edge)
	}

	for i, description := range d.Sources {
		source, err := description.Source()
		if err != nil {
			return nil, errors.Wrapf(err, "source #%d", i)
		}

		source.SceneBounds = d.Bounds
		scene.Sources = append(scene.Sources, source)
	}

	return scene, nil
}

func parseRestriction(s string) (visibility2d.Restriction, error) {
	if s == "" {
		return visibility2d.RestrictionNormal, nil
	}

	return visibility2d.ParseRestriction(s)
}

func (w WallDescription) Edge() (*visibility2d.Edge, error) {
	id := w.ID
	if id == "" {
		id = uuid.NewV4().String()
	}

	edge, err := visibility2d.NewEdge(id, w.A, w.B)
	if err != nil {
		return nil, err
	}

	if w.Type != "" {
		if edge.Type, err = visibility2d.ParseEdgeType(w.Type); err != nil {
			return nil, err
		}
	}

	if w.Direction != "" {
		if edge.Direction, err = visibility2d.ParseDirection(w.Direction); err != nil {
			return nil, err
		}
	}

	levels := map[visibility2d.Sense]string{
		visibility2d.SenseLight: w.Light,
		visibility2d.SenseMove:  w.Move,
		visibility2d.SenseSight: w.Sight,
		visibility2d.SenseSound: w.Sound,
	}

	for _, sense := range visibility2d.Senses {
		restriction, err := parseRestriction(levels[sense])
		if err != nil {
			return nil, err
		}

		edge.Restrictions.Set(sense, restriction)
	}

	edge.Threshold = w.Threshold

	return edge, nil
}

func (s ShapeDescription) Shape() (visibility2d.Shape, error) {
	switch strings.ToLower(s.Type) {
	case "circle":
		if s.Radius <= 0 {
			return nil, errors.Errorf("circle radius must be positive, got %v", s.Radius)
		}

		return visibility2d.MakeCircle(s.Center, s.Radius), nil
	case "rectangle":
		return visibility2d.MakeRectangle(s.Min.X, s.Min.Y, s.Max.X, s.Max.Y), nil
	case "polygon":
		if len(s.Points) < 3 {
			return nil, errors.Errorf("polygon needs at least 3 points, got %d", len(s.Points))
		}

		return visibility2d.PolygonShape{Points: s.Points}, nil
	}

	return nil, errors.Errorf("Unknown shape type %q", s.Type)
}

func (s SourceDescription) Source() (perception.Source, error) {
	source := perception.Source{
		ID:              s.ID,
		Origin:          s.Origin,
		Sense:           visibility2d.SenseSight,
		Radius:          s.Radius,
		ExternalRadius:  s.ExternalRadius,
		UseInnerBounds:  s.UseInnerBounds,
		IncludeDarkness: s.IncludeDarkness,
		IgnoreThreshold: s.IgnoreThreshold,
		Debug:           s.Debug,
	}

	var err error
	if s.Sense != "" {
		if source.Sense, err = visibility2d.ParseSense(s.Sense); err != nil {
			return source, err
		}
	}

	if s.DirectionMode != "" {
		if source.DirectionMode, err = visibility2d.ParseDirectionMode(s.DirectionMode); err != nil {
			return source, err
		}
	}

	for _, description := range s.Shapes {
		shape, err := description.Shape()
		if err != nil {
			return source, err
		}

		source.Shapes = append(source.Shapes, shape)
	}

	return source, nil
}

// Describe is the inverse of WallDescription.Edge
func Describe(edge *visibility2d.Edge) WallDescription {
	return WallDescription{
		ID:        edge.ID,
		A:         edge.A(),
		B:         edge.B(),
		Type:      edge.Type.String(),
		Light:     edge.Restriction(visibility2d.SenseLight).String(),
		Move:      edge.Restriction(visibility2d.SenseMove).String(),
		Sight:     edge.Restriction(visibility2d.SenseSight).String(),
		Sound:     edge.Restriction(visibility2d.SenseSound).String(),
		Direction: edge.Direction.String(),
		Threshold: edge.Threshold,
	}
}
