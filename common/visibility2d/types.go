package visibility2d

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/utils/number"
	"github.com/bytearena/lineofsight/common/utils/vector"
)

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func MakePoint(x, y float64) Point {
	return Point{
		x, y,
	}
}

func (p Point) Vector() vector.Vector2 {
	return vector.MakeVector2(p.X, p.Y)
}

func (p Point) DistanceSq(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx*dx + dy*dy
}

func (p Point) Key() VertexKey {
	return PointKey(p)
}

func (p Point) String() string {
	return "(" + number.FloatToStr(p.X, 3) + ", " + number.FloatToStr(p.Y, 3) + ")"
}

func pointFromVector(v vector.Vector2) Point {
	return MakePoint(v.GetX(), v.GetY())
}

// Vertex keys quantise coordinates to 1/keyPrecision unit.
const keyPrecision = 1000

// quantise saturates beyond the int64 range, about 9.2e15 units
func quantise(f float64) int64 {
	q := math.Round(f * keyPrecision)
	if q <= math.MinInt64 {
		return math.MinInt64
	}

	if q >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(q)
}

// VertexKey holds the quantised coordinates of a point
type VertexKey struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Less orders keys by x first, then y (north-west to south-east)
func (k VertexKey) Less(other VertexKey) bool {
	if k.X != other.X {
		return k.X < other.X
	}

	return k.Y < other.Y
}

func PointKey(p Point) VertexKey {
	return VertexKey{quantise(p.X), quantise(p.Y)}
}

// PointFromKey returns the quantised point encoded by key
func PointFromKey(key VertexKey) Point {
	return MakePoint(float64(key.X)/keyPrecision, float64(key.Y)/keyPrecision)
}

///////////////////////////////////////////////////////////////////////////////
// Senses
///////////////////////////////////////////////////////////////////////////////

type Sense int

const (
	SenseLight Sense = iota
	SenseMove
	SenseSight
	SenseSound
)

var Senses = []Sense{SenseLight, SenseMove, SenseSight, SenseSound}

func (s Sense) String() string {
	switch s {
	case SenseLight:
		return "light"
	case SenseMove:
		return "move"
	case SenseSight:
		return "sight"
	case SenseSound:
		return "sound"
	}

	return "unknown"
}

func ParseSense(s string) (Sense, error) {
	for _, sense := range Senses {
		if strings.EqualFold(s, sense.String()) {
			return sense, nil
		}
	}

	return SenseSight, errors.Errorf("Unknown sense %q", s)
}

///////////////////////////////////////////////////////////////////////////////
// Restrictions
///////////////////////////////////////////////////////////////////////////////

// Restriction levels are ordered; a vertex restriction is the max of its edges
type Restriction int

const (
	RestrictionNone Restriction = iota
	RestrictionLimited
	RestrictionNormal
	RestrictionProximity
	RestrictionDistance
)

func (r Restriction) String() string {
	switch r {
	case RestrictionNone:
		return "none"
	case RestrictionLimited:
		return "limited"
	case RestrictionNormal:
		return "normal"
	case RestrictionProximity:
		return "proximity"
	case RestrictionDistance:
		return "distance"
	}

	return "unknown"
}

func ParseRestriction(s string) (Restriction, error) {
	for r := RestrictionNone; r <= RestrictionDistance; r++ {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}

	return RestrictionNone, errors.Errorf("Unknown restriction %q", s)
}

// Restrictions holds one restriction level per sense
type Restrictions struct {
	Light Restriction
	Move  Restriction
	Sight Restriction
	Sound Restriction
}

// UniformRestrictions returns the same level for every sense
func UniformRestrictions(r Restriction) Restrictions {
	return Restrictions{r, r, r, r}
}

func (r Restrictions) For(sense Sense) Restriction {
	switch sense {
	case SenseLight:
		return r.Light
	case SenseMove:
		return r.Move
	case SenseSight:
		return r.Sight
	case SenseSound:
		return r.Sound
	}

	return RestrictionNone
}

func (r *Restrictions) Set(sense Sense, level Restriction) {
	switch sense {
	case SenseLight:
		r.Light = level
	case SenseMove:
		r.Move = level
	case SenseSight:
		r.Sight = level
	case SenseSound:
		r.Sound = level
	}
}

///////////////////////////////////////////////////////////////////////////////
// Edge types
///////////////////////////////////////////////////////////////////////////////

type EdgeType int

const (
	EdgeTypeWall EdgeType = iota
	EdgeTypeDarkness
	EdgeTypeInnerBound
	EdgeTypeOuterBound
)

func (t EdgeType) String() string {
	switch t {
	case EdgeTypeWall:
		return "wall"
	case EdgeTypeDarkness:
		return "darkness"
	case EdgeTypeInnerBound:
		return "innerBound"
	case EdgeTypeOuterBound:
		return "outerBound"
	}

	return "unknown"
}

func ParseEdgeType(s string) (EdgeType, error) {
	for t := EdgeTypeWall; t <= EdgeTypeOuterBound; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}

	return EdgeTypeWall, errors.Errorf("Unknown edge type %q", s)
}

///////////////////////////////////////////////////////////////////////////////
// Direction
///////////////////////////////////////////////////////////////////////////////

// Direction is the side of an edge a point lies on, seen from a to b.
// As an edge attribute it names the only side whose sources are restricted.
type Direction int

const (
	DirectionBoth Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionBoth:
		return "both"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}

	return "unknown"
}

func (d Direction) Opposite() Direction {
	switch d {
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}

	return DirectionBoth
}

func ParseDirection(s string) (Direction, error) {
	for d := DirectionBoth; d <= DirectionRight; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}

	return DirectionBoth, errors.Errorf("Unknown direction %q", s)
}

// DirectionMode tells a sweep how to honour one-sided edges
type DirectionMode int

const (
	DirectionModeNormal DirectionMode = iota
	DirectionModeReversed
	DirectionModeBoth
)

func (m DirectionMode) String() string {
	switch m {
	case DirectionModeNormal:
		return "normal"
	case DirectionModeReversed:
		return "reversed"
	case DirectionModeBoth:
		return "both"
	}

	return "unknown"
}

func ParseDirectionMode(s string) (DirectionMode, error) {
	for m := DirectionModeNormal; m <= DirectionModeBoth; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}

	return DirectionModeNormal, errors.Errorf("Unknown direction mode %q", s)
}

///////////////////////////////////////////////////////////////////////////////
// Tristate
///////////////////////////////////////////////////////////////////////////////

// Tristate is a boolean that may not have been computed yet
type Tristate int8

const (
	Unknown Tristate = iota
	True
	False
)

func TristateOf(b bool) Tristate {
	if b {
		return True
	}

	return False
}

func (t Tristate) IsKnown() bool {
	return t != Unknown
}

// Bool returns false for Unknown
func (t Tristate) Bool() bool {
	return t == True
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}

	return "unknown"
}

func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	}

	return []byte("null"), nil
}

func (t *Tristate) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = True
	case "false":
		*t = False
	case "null":
		*t = Unknown
	default:
		return errors.Errorf("Invalid tristate %s", data)
	}

	return nil
}
