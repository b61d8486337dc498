package random

import (
	"fmt"

	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Uniform fills out with values drawn from [low, high).
//
// low and high are optional single-element tensors of out's dtype. They default to 0
// and the largest finite value of the dtype. Every element i gets its own draw at
// index i. Floating outputs advance the generator by the number of elements written;
// integer outputs leave it where it was.
func (f *Filler) Uniform(g *rng.Generator, low, high, out *tensor.RawTensor) error {
	if err := requireTensor("out", out); err != nil {
		return err
	}
	kernel, ok := uniformKernels[out.DType()]
	if !ok {
		return fmt.Errorf("uniform: output dtype %s: %w", out.DType(), tensor.ErrUnsupportedType)
	}
	for _, p := range []struct {
		name string
		r    *tensor.RawTensor
	}{{"min", low}, {"max", high}} {
		if p.r == nil {
			continue
		}
		if n := p.r.NumElements(); n != 1 {
			return fmt.Errorf("uniform: %s must hold one element, got %d: %w", p.name, n, tensor.ErrInvalidArgument)
		}
		if err := requireDType("uniform "+p.name, p.r, out.DType()); err != nil {
			return err
		}
	}

	f.logCall("uniform", out, tensor.Shape{}, out.NumElements())
	return kernel(g, low, high, out, f.cfg)
}

// bounds reads the optional scalar bounds, applying the defaults, and rejects low > high.
func bounds[T tensor.Numeric](low, high *tensor.RawTensor) (lo, hi T, err error) {
	hi = tensor.Largest[T]()
	if low != nil {
		lo = tensor.NewAccessor[T](low).At(0)
	}
	if high != nil {
		hi = tensor.NewAccessor[T](high).At(0)
	}
	if tensor.ToFloat64(lo) > tensor.ToFloat64(hi) {
		return lo, hi, fmt.Errorf("uniform: min %v greater than max %v: %w",
			tensor.ToFloat64(lo), tensor.ToFloat64(hi), tensor.ErrInvalidArgument)
	}
	return lo, hi, nil
}

// uniformFloat is the dedicated float routine: one draw per element, then the
// generator moves past the consumed indices.
func uniformFloat[T tensor.Float](g *rng.Generator, low, high, out *tensor.RawTensor, cfg parallel.Config) error {
	lo, hi, err := bounds[T](low, high)
	if err != nil {
		return err
	}
	o := tensor.NewAccessor[T](out)
	parallel.For(o.Len(), func(i int) {
		o.Set(i, rng.ValueAt(g, int64(i), lo, hi))
	}, cfg)
	g.Advance(uint64(o.Len()))
	return nil
}

func uniformInt[T tensor.Integer](g *rng.Generator, low, high, out *tensor.RawTensor, cfg parallel.Config) error {
	lo, hi, err := bounds[T](low, high)
	if err != nil {
		return err
	}
	o := tensor.NewAccessor[T](out)
	parallel.For(o.Len(), func(i int) {
		o.Set(i, rng.ValueAt(g, int64(i), lo, hi))
	}, cfg)
	return nil
}
