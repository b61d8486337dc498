package random

import (
	"fmt"
	"math"

	"github.com/born-ml/tensorrand/internal/broadcast"
	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Poisson fills out by inverting the Poisson CDF of each lambda at one uniform draw
// per period repetition.
//
// The period is lambda's shape and the number of elements of out must be a multiple
// of it. Repetition k shares the draw at index k across the period. The generator is
// not advanced.
//
// The inversion is a sequential search with no iteration cap. Its cost grows with
// lambda, and once exp(-lambda) underflows (lambda above roughly 745) the search
// never terminates. Callers must bound lambda.
func (f *Filler) Poisson(g *rng.Generator, lambda, out *tensor.RawTensor) error {
	if err := requireTensor("lambda", lambda); err != nil {
		return err
	}
	if err := requireTensor("out", out); err != nil {
		return err
	}
	kernel, ok := poissonKernels[out.DType()]
	if !ok {
		return fmt.Errorf("poisson: output dtype %s: %w", out.DType(), tensor.ErrUnsupportedType)
	}
	if err := requireDType("poisson lambda", lambda, out.DType()); err != nil {
		return err
	}

	period := lambda.Shape()
	shift, err := broadcast.Shift(out, period)
	if err != nil {
		return fmt.Errorf("poisson: %w", err)
	}

	f.logCall("poisson", out, period, shift)
	kernel(g, lambda, out, shift, f.cfg)
	return nil
}

func poissonFill[T tensor.Float](g *rng.Generator, lambda, out *tensor.RawTensor, shift int, cfg parallel.Config) {
	l := tensor.NewAccessor[T](lambda)
	o := tensor.NewAccessor[T](out)

	step := l.Len()
	zero, one := tensor.FromFloat64[T](0), tensor.FromFloat64[T](1)

	parallel.For(shift, func(k int) {
		u := tensor.ToFloat64(rng.ValueAt(g, int64(k), zero, one))
		base := k * step
		for e := 0; e < step; e++ {
			o.Set(base+e, tensor.FromFloat64[T](poissonInverse(tensor.ToFloat64(l.At(e)), u)))
		}
	}, cfg)
}

// poissonInverse returns the smallest x with CDF(x; lambda) >= u.
func poissonInverse(lambda, u float64) float64 {
	p := math.Exp(-lambda)
	s := p
	x := 0.0
	for u > s {
		x++
		p *= lambda / x
		s += p
	}
	return x
}
