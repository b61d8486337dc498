package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/x448/float16"
)

// Order is the element ordering tag of a tensor.
type Order byte

// Supported orderings.
const (
	RowMajor    Order = 'c'
	ColumnMajor Order = 'f'
)

// String returns "c" or "f".
func (o Order) String() string {
	return string(rune(o))
}

// tensorBuffer is a reference-counted shared buffer.
// Views created by Transpose and Slice share it with their parent.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// RawTensor is the low-level tensor representation: a view over a shared buffer
// with per-axis strides and an element offset, both counted in elements.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Per-axis strides in elements
	dtype  DataType      // Runtime type information
	order  Order         // Element ordering tag
	offset int           // Offset of element 0 in the buffer
}

// NewRaw creates a new row-major RawTensor with the given shape and type.
// Memory is allocated and zeroed.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRawOrdered(shape, dtype, RowMajor)
}

// NewRawOrdered creates a new dense RawTensor laid out in the given order.
func NewRawOrdered(shape Shape, dtype DataType, order Order) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	var strides []int
	switch order {
	case RowMajor:
		strides = shape.ComputeStrides()
	case ColumnMajor:
		strides = shape.ComputeStridesF()
	default:
		return nil, fmt.Errorf("unknown order %q: %w", rune(order), ErrInvalidArgument)
	}

	return &RawTensor{
		buffer: newTensorBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: strides,
		dtype:  dtype,
		order:  order,
	}, nil
}

// FromSlice creates a row-major tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("FromSlice: %d values for shape %v (%d elements): %w",
			len(data), shape, shape.NumElements(), ErrShapeMismatch)
	}
	r, err := NewRaw(shape, DataTypeOf[T]())
	if err != nil {
		return nil, err
	}
	copy(Elements[T](r), data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Rank returns the number of axes.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// Strides returns the tensor's per-axis strides in elements.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Order returns the tensor's element ordering tag.
func (r *RawTensor) Order() Order {
	return r.order
}

// Offset returns the buffer position of the element at index zero.
func (r *RawTensor) Offset() int {
	return r.offset
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the raw byte slice of the whole shared buffer.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data
}

// Elements interprets the whole shared buffer as []T, starting at buffer element 0.
// Index it with Offset and Strides, or through an Accessor.
// Panics if T does not match the tensor's dtype.
func Elements[T DType](r *RawTensor) []T {
	if want := DataTypeOf[T](); r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	data := r.buffer.data
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounded by the buffer length
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/r.dtype.Size())
}

// dense returns the NumElements storage elements starting at the offset.
// For a column-major tensor they are in column-major order.
func dense[T DType](r *RawTensor) []T {
	return Elements[T](r)[r.offset : r.offset+r.NumElements()]
}

// AsFloat16 interprets the storage of a dense tensor as []float16.Float16.
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	return dense[float16.Float16](r)
}

// AsFloat32 interprets the storage of a dense tensor as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	return dense[float32](r)
}

// AsFloat64 interprets the storage of a dense tensor as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	return dense[float64](r)
}

// AsInt32 interprets the storage of a dense tensor as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	return dense[int32](r)
}

// AsInt64 interprets the storage of a dense tensor as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	return dense[int64](r)
}

// AsUint8 interprets the storage of a dense tensor as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	return dense[uint8](r)
}

// AsBool interprets the storage of a dense tensor as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	return dense[bool](r)
}

// Release decrements the buffer reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.refCount.Load() == 1
}

// view returns a tensor sharing r's buffer with a new geometry.
func (r *RawTensor) view(shape Shape, stride []int, offset int) *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape,
		stride: stride,
		dtype:  r.dtype,
		order:  r.order,
		offset: offset,
	}
}
