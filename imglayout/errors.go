package imglayout

import "github.com/pkg/errors"

// Error kinds returned by the package. They are always returned wrapped with
// context about the offending shape or layout; match them with errors.Is.
var (
	// ErrUnsupportedRank - the tensor rank is outside [2, 4], so no image
	// layout applies.
	ErrUnsupportedRank = errors.New("unsupported tensor rank")

	// ErrAmbiguousLayout - an axis-role assignment matches no known layout.
	// The inference engine never produces such an assignment; this exists as
	// the escape hatch for malformed inputs.
	ErrAmbiguousLayout = errors.New("ambiguous layout")

	// ErrUnknownLayout - a target layout name or value is not part of the
	// vocabulary.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrRankMismatch - a conversion target has a different rank than the
	// source. Conversion reorders axes, it never adds or removes them.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrUnconvertibleLayout - source and target layouts hold different axis
	// roles, e.g. HWC to BCHW: there is no batch axis to reorder into place.
	ErrUnconvertibleLayout = errors.New("unconvertible layout")

	// ErrAxisOutOfRange - an axis index outside [0, rank).
	ErrAxisOutOfRange = errors.New("axis out of range")

	// ErrBatchNotSingleton - SqueezeBatch in strict mode found a batch axis
	// holding more than one image.
	ErrBatchNotSingleton = errors.New("batch is not a singleton")
)
