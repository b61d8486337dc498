// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensor container filled by the random kernels.
//
// # Overview
//
// A RawTensor is a typed view over a reference-counted buffer:
//   - Shape, per-axis strides and an element offset
//   - Row-major ('c') or column-major ('f') ordering
//   - Zero-copy strided views via Transpose and Slice
//
// # Basic Usage
//
//	import "github.com/born-ml/tensorrand/tensor"
//
//	alpha, _ := tensor.FromSlice([]float32{0.5, 1, 2}, tensor.Shape{1, 3})
//	out, _ := tensor.NewRaw(tensor.Shape{4, 3}, tensor.Float32)
//	data := out.AsFloat32() // Type-safe access
//
// # Supported Data Types
//
//   - float16 (github.com/x448/float16), float32, float64
//   - int32, int64, uint8
//   - bool
//
// # Broadcasting
//
// Parameters broadcast against an output following NumPy rules:
//
//	shape, _, _ := tensor.BroadcastShapes(tensor.Shape{1, 3}, tensor.Shape{4, 3}) // [4,3]
//
// # Errors
//
// Failures wrap ErrShapeMismatch, ErrUnsupportedType or ErrInvalidArgument and are
// matched with errors.Is.
package tensor
