package imglayout

import (
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// maxChannels is the largest axis size the heuristic accepts as a channel
// count without falling back to edge comparison: 1 (grayscale or alpha),
// 3 (RGB) or 4 (RGBA).
const maxChannels = 4

// Inference is the result of layout inference for one shape: the role of
// every axis plus the matching vocabulary entry. It is computed fresh on
// every call, never cached and never mutated after being returned.
type Inference struct {
	// Axes holds the inferred role of each axis, in axis order.
	Axes []Axis

	// Layout is the vocabulary entry matching Axes.
	Layout Layout
}

// AxisOf returns the position holding the given role, or -1 if absent.
func (inf Inference) AxisOf(axis Axis) int {
	return indexOfAxis(inf.Axes, axis)
}

// Infer guesses the axis roles of an image-like shape. Only the dimensions
// are consulted; the dtype is ignored.
//
// Rank 2 is always [H, W], in the existing order. For ranks 3 and 4 the
// question is which edge holds the channel axis, and the heuristic is that
// channel counts are small (at most 4) while spatial axes are typically
// larger: an edge axis that is <= 4 and strictly smaller than the other
// (non-batch) axes is the channel axis, the first edge checked first. When
// neither edge qualifies, the strictly smaller edge wins, ties going to the
// last axis since channels-last (HWC, BHWC) is the more common convention
// among this library's consumers. At rank 4, axis 0 is always the batch axis
// and is excluded from the channel decision.
//
// The fallback is a guess, not a guarantee: an HWC image only a few pixels
// tall is indistinguishable from a misordered channel axis.
func Infer(shape shapes.Shape) (Inference, error) {
	dims := shape.Dimensions
	rank := len(dims)
	if rank < 2 || rank > 4 {
		return Inference{}, errors.Wrapf(ErrUnsupportedRank,
			"rank %d (shape %s): image layouts have 2 to 4 axes", rank, shape)
	}

	var axes []Axis
	switch rank {
	case 2:
		axes = []Axis{Height, Width}
	case 3:
		axes = inferChannelEdge(dims[0], dims[1], dims[2])
	case 4:
		axes = append([]Axis{Batch}, inferChannelEdge(dims[1], dims[2], dims[3])...)
	}

	layout, err := matchLayout(axes)
	if err != nil {
		return Inference{}, errors.WithMessagef(err, "shape %s", shape)
	}
	return Inference{Axes: axes, Layout: layout}, nil
}

// InferTensor guesses the axis roles of a tensor from its shape.
func InferTensor(t *tensors.Tensor) (Inference, error) {
	return Infer(t.Shape())
}

// inferChannelEdge solves the 3-axis sub-problem: whether the channel axis is
// first ([C, H, W]) or last ([H, W, C]).
func inferChannelEdge(first, mid, last int) []Axis {
	switch {
	case first <= maxChannels && first < mid && first < last:
		return []Axis{Channel, Height, Width}
	case last <= maxChannels && last < first && last < mid:
		return []Axis{Height, Width, Channel}
	case first < last:
		klog.V(2).Infof("imglayout: no axis in (%d, %d, %d) passes the <=%d channel rule, guessing channels-first",
			first, mid, last, maxChannels)
		return []Axis{Channel, Height, Width}
	default:
		klog.V(2).Infof("imglayout: no axis in (%d, %d, %d) passes the <=%d channel rule, guessing channels-last",
			first, mid, last, maxChannels)
		return []Axis{Height, Width, Channel}
	}
}
