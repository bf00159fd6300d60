package imglayout

import (
	"testing"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// iotaTensor returns a float32 tensor with the given dimensions, filled with
// 0, 1, 2, ... in row-major order, so every element is identifiable after a
// permutation.
func iotaTensor(dims ...int) *tensors.Tensor {
	size := 1
	for _, d := range dims {
		size *= d
	}
	flat := make([]float32, size)
	for i := range flat {
		flat[i] = float32(i)
	}
	return tensors.FromFlatDataAndDimensions(flat, dims...)
}

func TestConvertToLayoutCHWToHWC(t *testing.T) {
	// (2, 3, 4) infers as CHW: channels=2, height=3, width=4.
	x := iotaTensor(2, 3, 4)
	got, err := ConvertToLayout(x, HWC)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 2}, got.Shape().Dimensions)

	// got[h][w][c] must equal x[c][h][w].
	srcFlat := tensors.MustCopyFlatData[float32](x)
	gotFlat := tensors.MustCopyFlatData[float32](got)
	for h := 0; h < 3; h++ {
		for w := 0; w < 4; w++ {
			for c := 0; c < 2; c++ {
				want := srcFlat[c*12+h*4+w]
				require.Equal(t, want, gotFlat[(h*4+w)*2+c], "h=%d w=%d c=%d", h, w, c)
			}
		}
	}

	// Input untouched.
	require.Equal(t, []int{2, 3, 4}, x.Shape().Dimensions)
	require.Equal(t, srcFlat, tensors.MustCopyFlatData[float32](x))
}

func TestConvertToLayoutBCHWToBHWC(t *testing.T) {
	// Shape of the converted tensor: (1, 3, 224, 224) BCHW becomes
	// (1, 224, 224, 3) BHWC.
	got, err := ConvertToLayout(zeros(1, 3, 224, 224), BHWC)
	require.NoError(t, err)
	require.Equal(t, []int{1, 224, 224, 3}, got.Shape().Dimensions)

	// Element mapping on a small batch: got[b][h][w][c] == x[b][c][h][w].
	x := iotaTensor(2, 3, 4, 5)
	got, err = ConvertToLayout(x, BHWC)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 5, 3}, got.Shape().Dimensions)
	srcFlat := tensors.MustCopyFlatData[float32](x)
	gotFlat := tensors.MustCopyFlatData[float32](got)
	for b := 0; b < 2; b++ {
		for c := 0; c < 3; c++ {
			for h := 0; h < 4; h++ {
				for w := 0; w < 5; w++ {
					want := srcFlat[((b*3+c)*4+h)*5+w]
					require.Equal(t, want, gotFlat[((b*4+h)*5+w)*3+c], "b=%d c=%d h=%d w=%d", b, c, h, w)
				}
			}
		}
	}
}

func TestConvertToLayoutRoundTrip(t *testing.T) {
	x := iotaTensor(2, 3, 4) // CHW
	forward, err := ConvertToLayout(x, HWC)
	require.NoError(t, err)
	back, err := ConvertToLayout(forward, CHW)
	require.NoError(t, err)
	require.True(t, x.Shape().Equal(back.Shape()))
	require.Equal(t, tensors.MustCopyFlatData[float32](x), tensors.MustCopyFlatData[float32](back))
}

func TestConvertToLayoutIdentity(t *testing.T) {
	// Converting to the current layout is a true no-op: the same tensor comes
	// back, no copy.
	x := iotaTensor(2, 3, 4)
	got, err := ConvertToLayout(x, CHW)
	require.NoError(t, err)
	require.Same(t, x, got)

	x4 := zeros(1, 3, 224, 224)
	got, err = ConvertToLayout(x4, BCHW)
	require.NoError(t, err)
	require.Same(t, x4, got)
}

func TestConvertToLayoutErrors(t *testing.T) {
	t.Run("UnconvertibleAcrossRanks", func(t *testing.T) {
		// HWC to BCHW: there is no batch axis to reorder into place.
		_, err := ConvertToLayout(zeros(100, 200, 3), BCHW)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnconvertibleLayout), "%v", err)
	})

	t.Run("RankMismatchDroppingAxes", func(t *testing.T) {
		// CHW to HW: both target roles exist, but the channel axis would have
		// to be dropped.
		_, err := ConvertToLayout(zeros(3, 100, 200), HW)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrRankMismatch), "%v", err)
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		_, err := ConvertToLayout(zeros(100, 200), Layout(99))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownLayout), "%v", err)
	})

	t.Run("UnsupportedRank", func(t *testing.T) {
		_, err := ConvertToLayout(zeros(10), HW)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnsupportedRank), "%v", err)
	})
}

func TestConvertToType(t *testing.T) {
	got, err := ConvertToType(zeros(1, 3, 224, 224), "BHWC")
	require.NoError(t, err)
	require.Equal(t, []int{1, 224, 224, 3}, got.Shape().Dimensions)

	_, err = ConvertToType(zeros(1, 3, 224, 224), "NCHW")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownLayout), "%v", err)
}

func TestFromTo(t *testing.T) {
	t.Run("Precomputed", func(t *testing.T) {
		convert, err := FromTo(CHW, HWC)
		require.NoError(t, err)
		x := iotaTensor(2, 3, 4)
		got, err := convert(x)
		require.NoError(t, err)
		require.Equal(t, []int{3, 4, 2}, got.Shape().Dimensions)
		want, err := ConvertToLayout(x, HWC)
		require.NoError(t, err)
		require.Equal(t, tensors.MustCopyFlatData[float32](want), tensors.MustCopyFlatData[float32](got))
	})

	t.Run("Identity", func(t *testing.T) {
		convert, err := FromTo(BCHW, BCHW)
		require.NoError(t, err)
		x := zeros(1, 3, 8, 8)
		got, err := convert(x)
		require.NoError(t, err)
		require.Same(t, x, got)
	})

	t.Run("Unconvertible", func(t *testing.T) {
		_, err := FromTo(HWC, BCHW)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnconvertibleLayout), "%v", err)
	})

	t.Run("WrongRankInput", func(t *testing.T) {
		convert, err := FromTo(CHW, HWC)
		require.NoError(t, err)
		_, err = convert(zeros(100, 200))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrRankMismatch), "%v", err)
	})

	t.Run("InvalidLayout", func(t *testing.T) {
		_, err := FromTo(InvalidLayout, HWC)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownLayout), "%v", err)
	})
}
