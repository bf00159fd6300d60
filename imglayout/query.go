package imglayout

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Rank returns the number of axes of the tensor.
func Rank(t *tensors.Tensor) int {
	return t.Shape().Rank()
}

// Dim returns the size of the given axis. The axis must be in [0, Rank(t)),
// otherwise it fails with ErrAxisOutOfRange.
func Dim(t *tensors.Tensor, axis int) (int, error) {
	dims := t.Shape().Dimensions
	if axis < 0 || axis >= len(dims) {
		return 0, errors.Wrapf(ErrAxisOutOfRange, "axis %d of tensor shaped %s", axis, t.Shape())
	}
	return dims[axis], nil
}

// IdentifyLayout returns the inferred role of every axis of the tensor and
// the matching layout. It is InferTensor under the name the query API uses.
func IdentifyLayout(t *tensors.Tensor) (Inference, error) {
	return Infer(t.Shape())
}

// HWAxes returns the positions of the height and width axes of the tensor.
func HWAxes(t *tensors.Tensor) (hAxis, wAxis int, err error) {
	inf, err := Infer(t.Shape())
	if err != nil {
		return 0, 0, err
	}
	return inf.AxisOf(Height), inf.AxisOf(Width), nil
}

// HeightWidth returns the spatial size of the tensor.
func HeightWidth(t *tensors.Tensor) (height, width int, err error) {
	hAxis, wAxis, err := HWAxes(t)
	if err != nil {
		return 0, 0, err
	}
	dims := t.Shape().Dimensions
	return dims[hAxis], dims[wAxis], nil
}

// SmallerAxis returns the index of the spatial axis with the smaller size.
// When height and width are equal it returns the height axis.
func SmallerAxis(t *tensors.Tensor) (int, error) {
	hAxis, wAxis, err := HWAxes(t)
	if err != nil {
		return 0, err
	}
	dims := t.Shape().Dimensions
	if dims[wAxis] < dims[hAxis] {
		return wAxis, nil
	}
	return hAxis, nil
}

// LargerAxis returns the index of the spatial axis with the larger size.
// When height and width are equal it returns the height axis.
func LargerAxis(t *tensors.Tensor) (int, error) {
	hAxis, wAxis, err := HWAxes(t)
	if err != nil {
		return 0, err
	}
	dims := t.Shape().Dimensions
	if dims[wAxis] > dims[hAxis] {
		return wAxis, nil
	}
	return hAxis, nil
}
