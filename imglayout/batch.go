package imglayout

import (
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// SqueezeBatch drops a singleton batch axis from a rank-4 tensor, returning a
// rank-3 tensor with the same contents. Tensors of other ranks are returned
// unchanged, as are rank-4 tensors with a larger batch when strict is false.
// With strict set, a batch holding more than one image fails with
// ErrBatchNotSingleton.
func SqueezeBatch(t *tensors.Tensor, strict bool) (*tensors.Tensor, error) {
	shape := t.Shape()
	if shape.Rank() != 4 {
		return t, nil
	}
	if shape.Dimensions[0] != 1 {
		if strict {
			return nil, errors.Wrapf(ErrBatchNotSingleton,
				"tensor shaped %s holds a batch of %d images", shape, shape.Dimensions[0])
		}
		return t, nil
	}
	return reshaped(t, shape.Dimensions[1:]), nil
}

// UnsqueezeBatch adds a leading singleton batch axis unless the inferred
// layout already starts with one, in which case t itself is returned.
//
// Note a rank-2 input yields a [1, H, W] tensor that a later inference will
// read as channels-first: a singleton batch and a singleton channel are
// indistinguishable from the shape alone.
func UnsqueezeBatch(t *tensors.Tensor) (*tensors.Tensor, error) {
	inf, err := Infer(t.Shape())
	if err != nil {
		return nil, err
	}
	if inf.Axes[0] == Batch {
		return t, nil
	}
	dims := append([]int{1}, t.Shape().Dimensions...)
	return reshaped(t, dims), nil
}

// reshaped returns a new tensor with the given dimensions and the same flat
// contents as t. Adding or removing singleton axes never reorders row-major
// data, so a plain byte copy suffices.
func reshaped(t *tensors.Tensor, dims []int) *tensors.Tensor {
	dst := tensors.FromShape(shapes.Make(t.Shape().DType, dims...))
	t.ConstBytes(func(src []byte) {
		dst.MutableBytes(func(out []byte) {
			copy(out, src)
		})
	})
	return dst
}
