package visibility2d

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidEdge marks a zero-length or otherwise unusable edge. The edge is dropped, the sweep goes on.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrDegenerateSweep marks an edge touching the sweep origin. The edge is dropped.
	ErrDegenerateSweep = errors.New("degenerate sweep")

	// ErrIndexUnavailable is returned when the edge index cannot provide candidates
	ErrIndexUnavailable = errors.New("edge index unavailable")
)
