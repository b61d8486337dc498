package random

import (
	"github.com/x448/float16"

	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Kernel instantiations per element type. A dtype missing from a table is
// unsupported by that sampler.

type gammaKernel func(g *rng.Generator, alpha, beta, out *tensor.RawTensor, shift int, cfg parallel.Config)

var gammaKernels = map[tensor.DataType]gammaKernel{
	tensor.Float16: gammaFill[float16.Float16],
	tensor.Float32: gammaFill[float32],
	tensor.Float64: gammaFill[float64],
}

type poissonKernel func(g *rng.Generator, lambda, out *tensor.RawTensor, shift int, cfg parallel.Config)

var poissonKernels = map[tensor.DataType]poissonKernel{
	tensor.Float16: poissonFill[float16.Float16],
	tensor.Float32: poissonFill[float32],
	tensor.Float64: poissonFill[float64],
}

type uniformKernel func(g *rng.Generator, low, high, out *tensor.RawTensor, cfg parallel.Config) error

var uniformKernels = map[tensor.DataType]uniformKernel{
	tensor.Float16: uniformFloat[float16.Float16],
	tensor.Float32: uniformFloat[float32],
	tensor.Float64: uniformFloat[float64],
	tensor.Int32:   uniformInt[int32],
	tensor.Int64:   uniformInt[int64],
	tensor.Uint8:   uniformInt[uint8],
}

type multinomialKernel func(g *rng.Generator, input, out *tensor.RawTensor, numSamples, dimC int, cfg parallel.Config)

type dtypePair struct {
	in, out tensor.DataType
}

var multinomialKernels = map[dtypePair]multinomialKernel{
	{tensor.Float16, tensor.Int32}: multinomialFill[float16.Float16, int32],
	{tensor.Float16, tensor.Int64}: multinomialFill[float16.Float16, int64],
	{tensor.Float32, tensor.Int32}: multinomialFill[float32, int32],
	{tensor.Float32, tensor.Int64}: multinomialFill[float32, int64],
	{tensor.Float64, tensor.Int32}: multinomialFill[float64, int32],
	{tensor.Float64, tensor.Int64}: multinomialFill[float64, int64],
}
