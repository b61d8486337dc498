package random

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/born-ml/tensorrand/internal/broadcast"
	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Gamma fills out by mapping one uniform draw per period repetition through the
// regularized lower incomplete gamma function of each alpha.
//
// beta is an optional scale and may be nil. The period is the broadcast shape of
// alpha and beta; the number of elements of out must be a multiple of it. For
// repetition k the draw u is taken at index k and
//
//	out[k*step+e] = P(alpha[e], beta[e]*u)
//
// Non-positive alpha yields NaN rather than an error. The generator is not advanced.
func (f *Filler) Gamma(g *rng.Generator, alpha, beta, out *tensor.RawTensor) error {
	if err := requireTensor("alpha", alpha); err != nil {
		return err
	}
	if err := requireTensor("out", out); err != nil {
		return err
	}
	if alpha.Rank() < 1 {
		return fmt.Errorf("gamma: alpha must have rank >= 1, got %d: %w", alpha.Rank(), tensor.ErrInvalidArgument)
	}
	kernel, ok := gammaKernels[out.DType()]
	if !ok {
		return fmt.Errorf("gamma: output dtype %s: %w", out.DType(), tensor.ErrUnsupportedType)
	}
	if err := requireDType("gamma alpha", alpha, out.DType()); err != nil {
		return err
	}
	if err := requireDType("gamma beta", beta, out.DType()); err != nil {
		return err
	}

	period, err := broadcast.Period(alpha, beta)
	if err != nil {
		return fmt.Errorf("gamma: %w", err)
	}
	shift, err := broadcast.Shift(out, period)
	if err != nil {
		return fmt.Errorf("gamma: %w", err)
	}

	a, releaseAlpha, err := broadcast.Align(alpha, period)
	if err != nil {
		return fmt.Errorf("gamma: %w", err)
	}
	defer releaseAlpha()
	f.logAligned("gamma", "alpha", alpha.Shape(), period)

	b, releaseBeta, err := broadcast.Align(beta, period)
	if err != nil {
		return fmt.Errorf("gamma: %w", err)
	}
	defer releaseBeta()
	if beta != nil {
		f.logAligned("gamma", "beta", beta.Shape(), period)
	}

	f.logCall("gamma", out, period, shift)
	kernel(g, a, b, out, shift, f.cfg)
	return nil
}

func gammaFill[T tensor.Float](g *rng.Generator, alpha, beta, out *tensor.RawTensor, shift int, cfg parallel.Config) {
	a := tensor.NewAccessor[T](alpha)
	var b tensor.Accessor[T]
	if beta != nil {
		b = tensor.NewAccessor[T](beta)
	}
	o := tensor.NewAccessor[T](out)

	step := a.Len()
	zero, one := tensor.FromFloat64[T](0), tensor.FromFloat64[T](1)

	parallel.For(shift, func(k int) {
		u := tensor.ToFloat64(rng.ValueAt(g, int64(k), zero, one))
		base := k * step
		for e := 0; e < step; e++ {
			x := u
			if b != nil {
				x = tensor.ToFloat64(b.At(e)) * u
			}
			o.Set(base+e, tensor.FromFloat64[T](igamma(tensor.ToFloat64(a.At(e)), x)))
		}
	}, cfg)
}

// igamma is the regularized lower incomplete gamma function P(a, x).
// Outside its domain (a <= 0, x < 0 or NaN input) it returns NaN.
func igamma(a, x float64) float64 {
	if math.IsNaN(a) || math.IsNaN(x) || a <= 0 || x < 0 {
		return math.NaN()
	}
	return mathext.GammaIncReg(a, x)
}
