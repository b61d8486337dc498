package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/tensorrand/internal/rng"
	"github.com/born-ml/tensorrand/internal/tensor"
)

func TestPoissonZeroRate(t *testing.T) {
	lambda := zeros(t, tensor.Float32, 5)
	out := zeros(t, tensor.Float32, 200, 5)
	// Poison the output so a skipped cell would show.
	for i := range out.AsFloat32() {
		out.AsFloat32()[i] = -1
	}

	require.NoError(t, New(WithWorkers(4)).Poisson(rng.New(12), lambda, out))
	for i, v := range out.AsFloat32() {
		require.Zero(t, v, "element %d", i)
	}
}

func TestPoissonMoments(t *testing.T) {
	g := rng.New(77)
	lambda := fromSlice(t, []float64{4}, 1)
	out := zeros(t, tensor.Float64, 20000)
	require.NoError(t, New().Poisson(g, lambda, out))

	values := out.AsFloat64()
	for _, v := range values {
		require.GreaterOrEqual(t, v, 0.0)
		require.Equal(t, float64(int64(v)), v, "samples are whole numbers")
	}
	mean, variance := stat.MeanVariance(values, nil)
	assert.InDelta(t, 4, mean, 0.1)
	assert.InDelta(t, 4, variance, 0.3)
	assert.Zero(t, g.Offset(), "poisson does not advance the generator")
}

func TestPoissonBroadcastsPeriod(t *testing.T) {
	g := rng.New(5)
	lambda := fromSlice(t, []float64{0.5, 2, 8}, 3)
	out := zeros(t, tensor.Float64, 4, 3)
	require.NoError(t, New(WithWorkers(2)).Poisson(g, lambda, out))

	want := make([]float64, 12)
	for k := 0; k < 4; k++ {
		u := rng.ValueAt(g, int64(k), 0.0, 1.0)
		for e, l := range lambda.AsFloat64() {
			want[k*3+e] = poissonInverse(l, u)
		}
	}
	assert.True(t, floats.Equal(want, out.AsFloat64()), "got %v want %v", out.AsFloat64(), want)
}

func TestPoissonInverse(t *testing.T) {
	assert.Equal(t, 0.0, poissonInverse(0, 0.999))
	assert.Equal(t, 0.0, poissonInverse(1, 0.1)) // P(0) = 0.368
	assert.Equal(t, 1.0, poissonInverse(1, 0.5)) // P(<=1) = 0.736
	assert.Equal(t, 2.0, poissonInverse(1, 0.8)) // P(<=2) = 0.920
	assert.Equal(t, 0.0, poissonInverse(-3, 0.9), "negative rate never enters the search")
}

func TestPoissonErrors(t *testing.T) {
	f := New()
	g := rng.New(1)

	err := f.Poisson(g, nil, zeros(t, tensor.Float32, 3))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	err = f.Poisson(g, fromSlice(t, []int64{1}, 1), zeros(t, tensor.Int64, 3))
	assert.ErrorIs(t, err, tensor.ErrUnsupportedType)

	err = f.Poisson(g, fromSlice(t, []float64{1}, 1), zeros(t, tensor.Float32, 3))
	assert.ErrorIs(t, err, tensor.ErrUnsupportedType)

	err = f.Poisson(g, fromSlice(t, []float32{1, 2}, 2), zeros(t, tensor.Float32, 3))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
