// Package imglayout infers and manipulates the axis layout of image-like
// tensors (HW, CHW, HWC, BCHW, BHWC) when no metadata says which axis plays
// which role.
//
//   - Infer / InferTensor: guess the role of every axis from the shape alone.
//   - HWAxes, HeightWidth, SmallerAxis, LargerAxis: spatial queries on top of
//     the inference.
//   - ConvertToLayout / ConvertToType / FromTo: reorder a tensor's axes to a
//     target layout.
//   - SqueezeBatch / UnsqueezeBatch: add or drop a singleton batch axis.
//   - MostPixels: compare tensors by spatial extent.
//
// The inference is a heuristic (channel axes are small, spatial axes are
// large) and is kept behind Infer so callers never hard-code the rule; see
// Infer for the exact algorithm and its failure mode.
//
// All functions are pure and stateless: the only package-level state is the
// layout vocabulary below, which is read-only after initialization, so
// concurrent use needs no synchronization.
package imglayout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Axis is the semantic role assigned to one tensor axis.
type Axis int

const (
	// Batch - the batch axis, holding one or more images.
	Batch Axis = iota

	// Channel - the channel axis: grayscale/alpha (1), RGB (3) or RGBA (4).
	Channel

	// Height - the vertical spatial axis.
	Height

	// Width - the horizontal spatial axis.
	Width
)

// String returns the conventional single-letter name of the axis role.
func (a Axis) String() string {
	switch a {
	case Batch:
		return "B"
	case Channel:
		return "C"
	case Height:
		return "H"
	case Width:
		return "W"
	default:
		return "?"
	}
}

// Layout names one of the recognized axis orders for image tensors.
type Layout int

const (
	// HW - height by width, a channel-less single image.
	HW Layout = iota

	// CHW - channels-first single image.
	CHW

	// HWC - channels-last single image.
	HWC

	// BCHW - batched channels-first.
	BCHW

	// BHWC - batched channels-last.
	BHWC

	numLayouts
)

// InvalidLayout is returned by ParseLayout and matchLayout on failure.
const InvalidLayout = Layout(-1)

// layoutAxes is the vocabulary: the ordered axis roles of each layout.
// Read-only after initialization.
var layoutAxes = [numLayouts][]Axis{
	HW:   {Height, Width},
	CHW:  {Channel, Height, Width},
	HWC:  {Height, Width, Channel},
	BCHW: {Batch, Channel, Height, Width},
	BHWC: {Batch, Height, Width, Channel},
}

var (
	layoutNames  [numLayouts]string
	nameToLayout map[string]Layout
)

func init() {
	nameToLayout = make(map[string]Layout, int(numLayouts))
	for l := HW; l < numLayouts; l++ {
		var sb strings.Builder
		for _, a := range layoutAxes[l] {
			sb.WriteString(a.String())
		}
		layoutNames[l] = sb.String()
		nameToLayout[layoutNames[l]] = l
	}
}

// Valid reports whether l is part of the recognized vocabulary.
func (l Layout) Valid() bool {
	return l >= 0 && l < numLayouts
}

// Axes returns the ordered axis roles of the layout. The returned slice is a
// fresh copy, safe for the caller to modify. It returns nil for invalid
// layouts.
func (l Layout) Axes() []Axis {
	if !l.Valid() {
		return nil
	}
	return slices.Clone(layoutAxes[l])
}

// Rank returns the number of axes of the layout, or 0 for invalid layouts.
func (l Layout) Rank() int {
	if !l.Valid() {
		return 0
	}
	return len(layoutAxes[l])
}

// AxisOf returns the position of the given axis role in the layout, or -1 if
// the layout doesn't include it.
func (l Layout) AxisOf(axis Axis) int {
	if !l.Valid() {
		return -1
	}
	return indexOfAxis(layoutAxes[l], axis)
}

// String returns the layout name, e.g. "BCHW".
func (l Layout) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout converts a layout name ("HW", "CHW", "HWC", "BCHW" or "BHWC")
// to its Layout value. It is the boundary for string-typed layout targets:
// unknown names fail with ErrUnknownLayout.
func ParseLayout(name string) (Layout, error) {
	l, found := nameToLayout[name]
	if !found {
		return InvalidLayout, errors.Wrapf(ErrUnknownLayout, "layout %q", name)
	}
	return l, nil
}

// LayoutsForRank returns the recognized layouts with the given number of
// axes: rank 2 yields {HW}, rank 3 {CHW, HWC}, rank 4 {BCHW, BHWC}, any other
// rank nil.
func LayoutsForRank(rank int) []Layout {
	switch rank {
	case 2:
		return []Layout{HW}
	case 3:
		return []Layout{CHW, HWC}
	case 4:
		return []Layout{BCHW, BHWC}
	default:
		return nil
	}
}

// matchLayout finds the layout whose axis sequence is exactly axes.
// The inference engine only produces matching sequences; the error is the
// escape hatch for malformed assignments.
func matchLayout(axes []Axis) (Layout, error) {
	for _, l := range LayoutsForRank(len(axes)) {
		if slices.Equal(axes, layoutAxes[l]) {
			return l, nil
		}
	}
	return InvalidLayout, errors.Wrapf(ErrAmbiguousLayout, "axis assignment %v matches no known layout", axes)
}

// indexOfAxis returns the position of axis in axes, or -1.
func indexOfAxis(axes []Axis, axis Axis) int {
	for i, a := range axes {
		if a == axis {
			return i
		}
	}
	return -1
}
