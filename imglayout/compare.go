package imglayout

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// MostPixels returns whichever tensor has more pixels, counting only the
// spatial extent (height times width; batch and channel axes don't count).
// On an exact tie it returns a.
func MostPixels(a, b *tensors.Tensor) (*tensors.Tensor, error) {
	aPixels, err := spatialPixels(a)
	if err != nil {
		return nil, err
	}
	bPixels, err := spatialPixels(b)
	if err != nil {
		return nil, err
	}
	if bPixels > aPixels {
		return b, nil
	}
	return a, nil
}

// MostPixelsOf returns the tensor with the most pixels among ts, the earliest
// one winning ties. At least one tensor is required.
func MostPixelsOf(ts ...*tensors.Tensor) (*tensors.Tensor, error) {
	if len(ts) == 0 {
		return nil, errors.New("MostPixelsOf requires at least one tensor")
	}
	best := ts[0]
	bestPixels, err := spatialPixels(best)
	if err != nil {
		return nil, err
	}
	for _, t := range ts[1:] {
		pixels, err := spatialPixels(t)
		if err != nil {
			return nil, err
		}
		if pixels > bestPixels {
			best, bestPixels = t, pixels
		}
	}
	return best, nil
}

// spatialPixels returns height times width of the tensor.
func spatialPixels(t *tensors.Tensor) (int, error) {
	h, w, err := HeightWidth(t)
	if err != nil {
		return 0, err
	}
	return h * w, nil
}
