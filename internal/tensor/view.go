package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// ElementWiseStride returns the single element step that walks the tensor in its own
// order, or 0 when no single step describes the layout. Axes of extent 1 are ignored.
//
// A dense row-major tensor has stride 1; a row-major view taking every k-th element
// of a dense buffer has stride k; a transposed view has no element-wise stride.
func (r *RawTensor) ElementWiseStride() int {
	axes := make([]int, 0, len(r.shape))
	for i, d := range r.shape {
		if d != 1 {
			axes = append(axes, i)
		}
	}
	if len(axes) == 0 {
		return 1
	}

	// Walk from the fastest-varying axis for this order.
	if r.order == RowMajor {
		for i, j := 0, len(axes)-1; i < j; i, j = i+1, j-1 {
			axes[i], axes[j] = axes[j], axes[i]
		}
	}

	ews := r.stride[axes[0]]
	if ews <= 0 {
		return 0
	}
	expected := ews
	for _, ax := range axes {
		if r.stride[ax] != expected {
			return 0
		}
		expected *= r.shape[ax]
	}
	return ews
}

// IsDirect reports whether the tensor can be addressed by plain slice indexing in
// logical row-major order: element-wise stride 1 and row-major ordering.
func (r *RawTensor) IsDirect() bool {
	return r.order == RowMajor && r.ElementWiseStride() == 1
}

// BufferOffset maps a logical row-major flat index to a buffer element index.
func (r *RawTensor) BufferOffset(flat int) int {
	pos := r.offset
	for i := len(r.shape) - 1; i >= 0; i-- {
		d := r.shape[i]
		pos += (flat % d) * r.stride[i]
		flat /= d
	}
	return pos
}

// Transpose returns a view with axes permuted. With no axes it reverses them.
// The view shares the buffer with r.
func (r *RawTensor) Transpose(axes ...int) (*RawTensor, error) {
	ndim := len(r.shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("Transpose: axes length %d must match tensor dimensions %d: %w", len(axes), ndim, ErrInvalidArgument)
	}

	seen := make([]bool, ndim)
	shape := make(Shape, ndim)
	stride := make([]int, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, fmt.Errorf("Transpose: invalid permutation %v: %w", axes, ErrInvalidArgument)
		}
		seen[ax] = true
		shape[i] = r.shape[ax]
		stride[i] = r.stride[ax]
	}
	return r.view(shape, stride, r.offset), nil
}

// Slice returns a view of axis restricted to start, start+step, ... below stop.
func (r *RawTensor) Slice(axis, start, stop, step int) (*RawTensor, error) {
	if axis < 0 || axis >= len(r.shape) {
		return nil, fmt.Errorf("Slice: axis %d out of range [0, %d): %w", axis, len(r.shape), ErrInvalidArgument)
	}
	if step <= 0 || start < 0 || stop > r.shape[axis] || start >= stop {
		return nil, fmt.Errorf("Slice: bad range [%d:%d:%d] for extent %d: %w", start, stop, step, r.shape[axis], ErrInvalidArgument)
	}

	shape := r.shape.Clone()
	shape[axis] = (stop - start + step - 1) / step
	stride := append([]int(nil), r.stride...)
	stride[axis] *= step
	return r.view(shape, stride, r.offset+start*r.stride[axis]), nil
}

// Float64At reads the element at a logical row-major flat index as float64.
// It works for every dtype and layout; kernels use an Accessor instead.
func (r *RawTensor) Float64At(flat int) float64 {
	pos := r.BufferOffset(flat)
	switch r.dtype {
	case Float16:
		return ToFloat64(Elements[float16.Float16](r)[pos])
	case Float32:
		return ToFloat64(Elements[float32](r)[pos])
	case Float64:
		return Elements[float64](r)[pos]
	case Int32:
		return ToFloat64(Elements[int32](r)[pos])
	case Int64:
		return ToFloat64(Elements[int64](r)[pos])
	case Uint8:
		return ToFloat64(Elements[uint8](r)[pos])
	case Bool:
		return ToFloat64(Elements[bool](r)[pos])
	default:
		panic("unknown data type")
	}
}

// SetFloat64At writes v, narrowed to the tensor's dtype, at a logical flat index.
func (r *RawTensor) SetFloat64At(flat int, v float64) {
	pos := r.BufferOffset(flat)
	switch r.dtype {
	case Float16:
		Elements[float16.Float16](r)[pos] = FromFloat64[float16.Float16](v)
	case Float32:
		Elements[float32](r)[pos] = float32(v)
	case Float64:
		Elements[float64](r)[pos] = v
	case Int32:
		Elements[int32](r)[pos] = int32(v)
	case Int64:
		Elements[int64](r)[pos] = int64(v)
	case Uint8:
		Elements[uint8](r)[pos] = uint8(v)
	case Bool:
		Elements[bool](r)[pos] = v != 0
	default:
		panic("unknown data type")
	}
}

// ToFloat64Slice copies the tensor into a []float64 in logical row-major order.
func (r *RawTensor) ToFloat64Slice() []float64 {
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = r.Float64At(i)
	}
	return out
}
