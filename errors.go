package salinity

import "errors"

var (
	// ErrDegenerateMatrix is returned when inverting a matrix whose
	// determinant is zero (or close enough to make the inverse meaningless).
	ErrDegenerateMatrix = errors.New("salinity: degenerate matrix")

	// ErrNoObjects is returned by gizmo construction when it is given no
	// target nodes.
	ErrNoObjects = errors.New("salinity: no objects")

	// ErrInvalidNode is returned when a node description fails validation.
	ErrInvalidNode = errors.New("salinity: invalid node")

	// ErrUnknownKind is returned for a node description with an
	// unrecognized kind.
	ErrUnknownKind = errors.New("salinity: unknown node kind")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("salinity: invalid color")

	// ErrInvalidConfig is returned when a configuration file fails
	// validation.
	ErrInvalidConfig = errors.New("salinity: invalid config")
)
