package imglayout

import (
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// ConvertToLayout returns a tensor with the same contents as t and its axes
// reordered to the target layout, inferring the current layout from the
// shape. If the tensor is already in the target layout, t itself is returned;
// otherwise a new tensor is allocated and t is left untouched.
//
// Conversion only reorders axes that are already present: converting between
// layouts with different axis-role sets (e.g. HWC to BCHW) fails with
// ErrUnconvertibleLayout rather than fabricating a batch axis. Use
// UnsqueezeBatch to add one explicitly.
func ConvertToLayout(t *tensors.Tensor, target Layout) (*tensors.Tensor, error) {
	if !target.Valid() {
		return nil, errors.Wrapf(ErrUnknownLayout, "layout value %d", int(target))
	}
	inf, err := Infer(t.Shape())
	if err != nil {
		return nil, err
	}
	if inf.Layout == target {
		return t, nil
	}
	perm, err := permutation(inf.Axes, layoutAxes[target])
	if err != nil {
		return nil, errors.WithMessagef(err, "converting tensor shaped %s from %s to %s",
			t.Shape(), inf.Layout, target)
	}
	return permuteTensor(t, perm), nil
}

// ConvertToType is ConvertToLayout with the target given by name ("HW",
// "CHW", "HWC", "BCHW" or "BHWC").
func ConvertToType(t *tensors.Tensor, name string) (*tensors.Tensor, error) {
	target, err := ParseLayout(name)
	if err != nil {
		return nil, err
	}
	return ConvertToLayout(t, target)
}

// FromTo returns a converter from one layout to another with the permutation
// computed once, for hot paths where the source layout is already known. The
// returned function performs no inference: it trusts that its input is laid
// out as from, checking only the rank. Converting a layout to itself returns
// a pass-through function.
func FromTo(from, to Layout) (func(*tensors.Tensor) (*tensors.Tensor, error), error) {
	if !from.Valid() || !to.Valid() {
		return nil, errors.Wrapf(ErrUnknownLayout, "from=%d, to=%d", int(from), int(to))
	}
	if from == to {
		return func(t *tensors.Tensor) (*tensors.Tensor, error) { return t, nil }, nil
	}
	perm, err := permutation(layoutAxes[from], layoutAxes[to])
	if err != nil {
		return nil, errors.WithMessagef(err, "from %s to %s", from, to)
	}
	rank := from.Rank()
	return func(t *tensors.Tensor) (*tensors.Tensor, error) {
		if t.Shape().Rank() != rank {
			return nil, errors.Wrapf(ErrRankMismatch, "tensor shaped %s is not rank %d (%s)",
				t.Shape(), rank, from)
		}
		return permuteTensor(t, perm), nil
	}, nil
}

// permutation computes perm such that target axis i holds source axis
// perm[i]. A role of to missing in from fails with ErrUnconvertibleLayout; a
// leftover source role (same roles, different count) fails with
// ErrRankMismatch.
func permutation(from, to []Axis) ([]int, error) {
	perm := make([]int, 0, len(to))
	for _, axis := range to {
		pos := indexOfAxis(from, axis)
		if pos < 0 {
			return nil, errors.Wrapf(ErrUnconvertibleLayout, "source has no %s axis to reorder", axis)
		}
		perm = append(perm, pos)
	}
	if len(from) != len(to) {
		return nil, errors.Wrapf(ErrRankMismatch,
			"source has %d axes, target has %d: conversion never adds or removes axes",
			len(from), len(to))
	}
	return perm, nil
}

// permuteTensor materializes a new tensor whose axis i is axis perm[i] of t.
// It works on the raw bytes with the element size derived from the buffer, so
// every dtype is supported.
func permuteTensor(t *tensors.Tensor, perm []int) *tensors.Tensor {
	srcShape := t.Shape()
	srcDims := srcShape.Dimensions
	dstDims := make([]int, len(perm))
	for i, p := range perm {
		dstDims[i] = srcDims[p]
	}
	dst := tensors.FromShape(shapes.Make(srcShape.DType, dstDims...))

	// Source strides reordered to follow the output axis order: walking the
	// output in row-major order advances the source by steps[axis] elements
	// per unit of output axis.
	srcStrides := rowMajorStrides(srcDims)
	steps := make([]int, len(perm))
	for i, p := range perm {
		steps[i] = srcStrides[p]
	}

	size := srcShape.Size()
	t.ConstBytes(func(src []byte) {
		dst.MutableBytes(func(out []byte) {
			elemSize := len(src) / size
			idx := make([]int, len(dstDims))
			srcPos := 0
			for dstPos := 0; dstPos < size; dstPos++ {
				copy(out[dstPos*elemSize:(dstPos+1)*elemSize], src[srcPos*elemSize:(srcPos+1)*elemSize])
				for axis := len(idx) - 1; axis >= 0; axis-- {
					idx[axis]++
					srcPos += steps[axis]
					if idx[axis] < dstDims[axis] {
						break
					}
					idx[axis] = 0
					srcPos -= steps[axis] * dstDims[axis]
				}
			}
		})
	})
	return dst
}

// rowMajorStrides returns the element strides of a contiguous row-major
// buffer with the given dimensions.
func rowMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	stride := 1
	for axis := len(dims) - 1; axis >= 0; axis-- {
		strides[axis] = stride
		stride *= dims[axis]
	}
	return strides
}
