// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorrand/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape, strides and type information via Shape(), Strides(), DType(), Order()
//   - Type-safe data access via AsFloat32(), AsInt64(), etc.
//   - Strided views sharing the buffer via Transpose() and Slice()
//   - Reference counting for efficient memory management
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
//	data := raw.AsFloat32()     // Type-safe access
//	view, _ := raw.Transpose()  // Shares buffer, shape [3,2]
type RawTensor = tensor.RawTensor

// NewRaw creates a zeroed row-major tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// NewRawOrdered creates a zeroed tensor laid out in the given order.
func NewRawOrdered(shape Shape, dtype DataType, order Order) (*RawTensor, error) {
	return tensor.NewRawOrdered(shape, dtype, order)
}

// FromSlice creates a row-major tensor holding a copy of data.
//
// Example:
//
//	lambda, err := tensor.FromSlice([]float64{0.5, 2, 8}, tensor.Shape{3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}
