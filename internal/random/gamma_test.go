package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mathext"

	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

func TestGammaBetaOneIsIdentity(t *testing.T) {
	f := New(WithWorkers(2))
	alpha := fromSlice(t, []float64{2}, 1)
	beta := fromSlice(t, []float64{1}, 1)

	scaled := zeros(t, tensor.Float64, 500)
	plain := zeros(t, tensor.Float64, 500)
	require.NoError(t, f.Gamma(rng.New(3), alpha, beta, scaled))
	require.NoError(t, f.Gamma(rng.New(3), alpha, nil, plain))

	assert.Equal(t, plain.AsFloat64(), scaled.AsFloat64())
}

func TestGammaMatchesIncompleteGamma(t *testing.T) {
	f := New(WithWorkers(3))
	g := rng.New(17)

	alpha := fromSlice(t, []float64{0.5, 1, 2}, 1, 3)
	beta := fromSlice(t, []float64{1, 2, 3, 4}, 4, 1)
	out := zeros(t, tensor.Float64, 5, 4, 3)
	require.NoError(t, f.Gamma(g, alpha, beta, out))

	got := out.AsFloat64()
	for k := 0; k < 5; k++ {
		u := rng.ValueAt(g, int64(k), 0.0, 1.0)
		for e := 0; e < 12; e++ {
			a := alpha.AsFloat64()[e%3]
			b := beta.AsFloat64()[e/3]
			want := mathext.GammaIncReg(a, b*u)
			assert.InDelta(t, want, got[k*12+e], 1e-15, "k=%d e=%d", k, e)
		}
	}
	assert.Zero(t, g.Offset(), "gamma does not advance the generator")
}

// One draw is shared by every element of a repetition.
func TestGammaSharesDrawAcrossPeriod(t *testing.T) {
	f := New()
	alpha := fromSlice(t, []float32{3, 3, 3, 3}, 4)
	out := zeros(t, tensor.Float32, 10, 4)
	require.NoError(t, f.Gamma(rng.New(8), alpha, nil, out))

	values := out.AsFloat32()
	for k := 0; k < 10; k++ {
		row := values[k*4 : k*4+4]
		for _, v := range row {
			assert.Equal(t, row[0], v, "repetition %d", k)
		}
		assert.GreaterOrEqual(t, row[0], float32(0))
		assert.LessOrEqual(t, row[0], float32(1))
	}
}

func TestGammaNonPositiveAlphaIsNaN(t *testing.T) {
	alpha := fromSlice(t, []float64{0, -1, 2}, 3)
	out := zeros(t, tensor.Float64, 3)
	require.NoError(t, New().Gamma(rng.New(1), alpha, nil, out))

	values := out.AsFloat64()
	assert.True(t, math.IsNaN(values[0]))
	assert.True(t, math.IsNaN(values[1]))
	assert.False(t, math.IsNaN(values[2]))
}

func TestGammaFloat16(t *testing.T) {
	alpha := fromSlice(t, []float16.Float16{float16.Fromfloat32(1), float16.Fromfloat32(2)}, 2)
	out := zeros(t, tensor.Float16, 8, 2)
	require.NoError(t, New().Gamma(rng.New(4), alpha, nil, out))

	for i, v := range out.AsFloat16() {
		assert.GreaterOrEqual(t, v.Float32(), float32(0), "element %d", i)
		assert.LessOrEqual(t, v.Float32(), float32(1), "element %d", i)
	}
}

func TestIgamma(t *testing.T) {
	assert.Equal(t, 0.0, igamma(2, 0))
	assert.InDelta(t, 1-math.Exp(-1), igamma(1, 1), 1e-15)
	assert.True(t, math.IsNaN(igamma(0, 1)))
	assert.True(t, math.IsNaN(igamma(1, -1)))
	assert.True(t, math.IsNaN(igamma(math.NaN(), 1)))
	assert.True(t, math.IsNaN(igamma(1, math.NaN())))
}

func TestGammaErrors(t *testing.T) {
	f := New()
	g := rng.New(1)
	alpha := fromSlice(t, []float64{1, 2, 3}, 3)

	tests := []struct {
		name  string
		alpha *tensor.RawTensor
		beta  *tensor.RawTensor
		out   *tensor.RawTensor
		want  error
	}{
		{"nil alpha", nil, nil, zeros(t, tensor.Float64, 3), tensor.ErrInvalidArgument},
		{"nil out", alpha, nil, nil, tensor.ErrInvalidArgument},
		{"scalar alpha", fromSlice(t, []float64{1}), nil, zeros(t, tensor.Float64, 3), tensor.ErrInvalidArgument},
		{"integer output", fromSlice(t, []int32{1, 2, 3}, 3), nil, zeros(t, tensor.Int32, 3), tensor.ErrUnsupportedType},
		{"alpha dtype", alpha, nil, zeros(t, tensor.Float32, 3), tensor.ErrUnsupportedType},
		{"beta dtype", alpha, fromSlice(t, []float32{1}, 1), zeros(t, tensor.Float64, 3), tensor.ErrUnsupportedType},
		{"incompatible beta", alpha, fromSlice(t, []float64{1, 2}, 2), zeros(t, tensor.Float64, 6), tensor.ErrShapeMismatch},
		{"partial period", alpha, nil, zeros(t, tensor.Float64, 10), tensor.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Gamma(g, tt.alpha, tt.beta, tt.out)
			assert.ErrorIs(t, err, tt.want)
			if tt.out != nil {
				for _, v := range tt.out.ToFloat64Slice() {
					require.Zero(t, v, "output must be untouched on error")
				}
			}
		})
	}
}

func BenchmarkGamma(b *testing.B) {
	alpha, _ := tensor.FromSlice([]float32{0.5, 1, 2, 4}, tensor.Shape{4})
	out, _ := tensor.NewRaw(tensor.Shape{4096, 4}, tensor.Float32)
	f := New()
	g := rng.New(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Gamma(g, alpha, nil, out)
	}
}
