// Package broadcast resolves the common "period" shape of sampler parameters and
// materializes parameters at that shape.
package broadcast

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/born-ml/tensorrand/internal/tensor"
)

// Period folds tensor.BroadcastShapes over every non-nil parameter.
// It allocates nothing, so it can run before any buffer is created.
func Period(params ...*tensor.RawTensor) (tensor.Shape, error) {
	var period tensor.Shape
	seen := false
	for _, p := range params {
		if p == nil {
			continue
		}
		if !seen {
			period = p.Shape().Clone()
			seen = true
			continue
		}
		out, _, err := tensor.BroadcastShapes(period, p.Shape())
		if err != nil {
			return nil, err
		}
		period = out
	}
	if !seen {
		return nil, fmt.Errorf("period of no parameters: %w", tensor.ErrInvalidArgument)
	}
	return period, nil
}

// Shift returns how many whole periods cover out.
func Shift(out *tensor.RawTensor, period tensor.Shape) (int, error) {
	step := period.NumElements()
	n := out.NumElements()
	if step == 0 || n%step != 0 {
		return 0, fmt.Errorf("output %v (%d elements) is not a multiple of period %v (%d elements): %w",
			out.Shape(), n, period, step, tensor.ErrShapeMismatch)
	}
	return n / step, nil
}

// Align returns src laid out at the period shape.
//
// When src already has the period shape it is returned as is. Otherwise a new buffer
// of the same dtype is allocated and filled by Assign. The returned release func
// frees that copy and is a no-op for the original; callers defer it.
func Align(src *tensor.RawTensor, period tensor.Shape) (*tensor.RawTensor, func(), error) {
	if src == nil {
		return nil, func() {}, nil
	}
	if src.Shape().Equal(period) {
		return src, func() {}, nil
	}
	if _, _, err := tensor.BroadcastShapes(src.Shape(), period); err != nil {
		return nil, func() {}, err
	}

	dst, err := tensor.NewRaw(period, src.DType())
	if err != nil {
		return nil, func() {}, err
	}
	if err := Assign(dst, src); err != nil {
		dst.Release()
		return nil, func() {}, err
	}
	return dst, dst.Release, nil
}

// Assign broadcasts src into dst element for element. dst must have the shape
// src broadcasts to and the same dtype; values are copied without conversion.
func Assign(dst, src *tensor.RawTensor) error {
	if dst.DType() != src.DType() {
		return fmt.Errorf("assign %s into %s: %w", src.DType(), dst.DType(), tensor.ErrUnsupportedType)
	}
	out, _, err := tensor.BroadcastShapes(src.Shape(), dst.Shape())
	if err != nil {
		return err
	}
	if !out.Equal(dst.Shape()) {
		return fmt.Errorf("cannot assign %v into %v: %w", src.Shape(), dst.Shape(), tensor.ErrShapeMismatch)
	}

	switch dst.DType() {
	case tensor.Float16:
		assign[float16.Float16](dst, src)
	case tensor.Float32:
		assign[float32](dst, src)
	case tensor.Float64:
		assign[float64](dst, src)
	case tensor.Int32:
		assign[int32](dst, src)
	case tensor.Int64:
		assign[int64](dst, src)
	case tensor.Uint8:
		assign[uint8](dst, src)
	case tensor.Bool:
		assign[bool](dst, src)
	default:
		return fmt.Errorf("assign %s: %w", dst.DType(), tensor.ErrUnsupportedType)
	}
	return nil
}

func assign[T tensor.DType](dst, src *tensor.RawTensor) {
	outShape := dst.Shape()
	outStrides := outShape.ComputeStrides()
	inStrides := stridesFor(src.Shape(), outShape)

	in := tensor.NewAccessor[T](src)
	out := tensor.NewAccessor[T](dst)
	for i := 0; i < out.Len(); i++ {
		out.Set(i, in.At(sourceIndex(i, outStrides, inStrides)))
	}
}

// stridesFor computes logical strides for reading inShape as outShape.
// Dimensions of size 1 and padded leading dimensions get stride 0.
func stridesFor(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}
	return strides
}

// sourceIndex maps an output flat index to the logical flat index of the source.
func sourceIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}
