package tensor

import (
	"math"

	"github.com/x448/float16"
)

// ToFloat64 widens a single element to float64.
// Bool maps to 0 or 1.
func ToFloat64[T DType](v T) float64 {
	switch x := any(v).(type) {
	case float16.Float16:
		return float64(x.Float32())
	case float32:
		return float64(x)
	case float64:
		return x
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		panic("unsupported type")
	}
}

// FromFloat64 narrows a float64 to the element type T.
// Integer conversions truncate toward zero like a Go conversion.
func FromFloat64[T DType](f float64) T {
	var dummy T
	var v any
	switch any(dummy).(type) {
	case float16.Float16:
		v = float16.Fromfloat32(float32(f))
	case float32:
		v = float32(f)
	case float64:
		v = f
	case int32:
		v = int32(f)
	case int64:
		v = int64(f)
	case uint8:
		v = uint8(f)
	case bool:
		v = f != 0
	default:
		panic("unsupported type")
	}
	return v.(T)
}

// MaxValue returns the largest finite value representable by dt, as float64.
func MaxValue(dt DataType) float64 {
	switch dt {
	case Float16:
		return 65504
	case Float32:
		return math.MaxFloat32
	case Float64:
		return math.MaxFloat64
	case Int32:
		return math.MaxInt32
	case Int64:
		return math.MaxInt64
	case Uint8:
		return math.MaxUint8
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// MinPositive returns the smallest positive normal value of a float type, or 1 for
// integer types.
func MinPositive(dt DataType) float64 {
	switch dt {
	case Float16:
		return 0x1p-14
	case Float32:
		return 0x1p-126
	case Float64:
		return 0x1p-1022
	default:
		return 1
	}
}

// Largest returns the largest finite value of T. MaxValue loses precision for Int64;
// Largest does not.
func Largest[T Numeric]() T {
	var dummy T
	var v any
	switch any(dummy).(type) {
	case float16.Float16:
		v = float16.Frombits(0x7bff)
	case float32:
		v = float32(math.MaxFloat32)
	case float64:
		v = math.MaxFloat64
	case int32:
		v = int32(math.MaxInt32)
	case int64:
		v = int64(math.MaxInt64)
	case uint8:
		v = uint8(math.MaxUint8)
	default:
		panic("unsupported type")
	}
	return v.(T)
}
