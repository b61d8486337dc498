package random

import (
	"fmt"
	"math"

	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Multinomial draws numSamples class indices per batch row with the Gumbel-max trick.
//
// input is a rank-2 tensor of logits and out a rank-2 Int32 or Int64 tensor. dimC is
// the batch axis of both tensors; the other input axis holds the classes and the other
// output axis holds the samples. For batch b, sample s and class c the draw is taken at
// index b*C*S + s*C + c in (smallest normal, 1), and the class maximizing
// input[b,c] - log(-log(u)) is written to out[b,s].
//
// Afterwards the generator advances by len(out)*C.
func (f *Filler) Multinomial(g *rng.Generator, input, out *tensor.RawTensor, numSamples, dimC int) error {
	if err := requireTensor("input", input); err != nil {
		return err
	}
	if err := requireTensor("out", out); err != nil {
		return err
	}
	if input.Rank() != 2 || out.Rank() != 2 {
		return fmt.Errorf("multinomial: input and out must have rank 2, got %d and %d: %w",
			input.Rank(), out.Rank(), tensor.ErrInvalidArgument)
	}
	if dimC != 0 && dimC != 1 {
		return fmt.Errorf("multinomial: dimC must be 0 or 1, got %d: %w", dimC, tensor.ErrInvalidArgument)
	}
	if numSamples < 1 {
		return fmt.Errorf("multinomial: numSamples must be positive, got %d: %w", numSamples, tensor.ErrInvalidArgument)
	}
	kernel, ok := multinomialKernels[dtypePair{input.DType(), out.DType()}]
	if !ok {
		return fmt.Errorf("multinomial: input %s, output %s: %w", input.DType(), out.DType(), tensor.ErrUnsupportedType)
	}
	dimA := 1 - dimC
	if out.Shape()[dimC] != input.Shape()[dimC] || out.Shape()[dimA] != numSamples {
		return fmt.Errorf("multinomial: output %v does not hold %d samples for input %v along axis %d: %w",
			out.Shape(), numSamples, input.Shape(), dimC, tensor.ErrShapeMismatch)
	}

	classes := input.Shape()[dimA]
	f.logCall("multinomial", out, input.Shape(), out.NumElements())
	kernel(g, input, out, numSamples, dimC, f.cfg)
	g.Advance(uint64(out.NumElements()) * uint64(classes))
	return nil
}

func multinomialFill[X tensor.Float, Z int32 | int64](g *rng.Generator, input, out *tensor.RawTensor, numSamples, dimC int, cfg parallel.Config) {
	x := tensor.NewAccessor[X](input)
	z := tensor.NewAccessor[Z](out)

	batch := out.Shape()[dimC]
	classes := input.Shape()[1-dimC]

	// Logical flat positions of input[b,c] and out[b,s].
	xAt := func(b, c int) int { return c*batch + b }
	zAt := func(b, s int) int { return s*batch + b }
	if dimC == 0 {
		xAt = func(b, c int) int { return b*classes + c }
		zAt = func(b, s int) int { return b*numSamples + s }
	}

	lo := tensor.FromFloat64[X](tensor.MinPositive(tensor.DataTypeOf[X]()))
	hi := tensor.FromFloat64[X](1)
	perBatch := classes * numSamples

	parallel.For2D(batch, numSamples, func(b, s int) {
		base := int64(b*perBatch + s*classes)
		best, arg := math.Inf(-1), 0
		for c := 0; c < classes; c++ {
			u := tensor.ToFloat64(rng.ValueAt(g, base+int64(c), lo, hi))
			score := tensor.ToFloat64(x.At(xAt(b, c))) - math.Log(-math.Log(u))
			if score > best {
				best, arg = score, c
			}
		}
		z.Set(zAt(b, s), Z(arg))
	}, cfg)
}
