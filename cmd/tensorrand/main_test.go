package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorrand/internal/serialization"
	"github.com/born-ml/tensorrand/internal/tensor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level=error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tensorrand "+version+"\n", out)
}

func TestCommands(t *testing.T) {
	tests := map[string][]string{
		"gamma":              {"gamma", "--alpha=0.5,1,2", "--shape=4,3", "--seed=1"},
		"gamma broadcast":    {"gamma", "--alpha=1,2,3", "--alpha-shape=1,3", "--beta=1,2", "--beta-shape=2,1", "--shape=3,2,3"},
		"poisson":            {"poisson", "--lambda=2", "--shape=100", "--dtype=float64"},
		"uniform":            {"uniform", "--min=2", "--max=5", "--shape=50", "--workers=2"},
		"uniform int":        {"uniform", "--min=0", "--max=6", "--dtype=int32", "--order=f", "--shape=4,4"},
		"multinomial":        {"multinomial", "--logits=0,1,2,0,1,2", "--logits-shape=2,3", "--samples=5", "--shape=2,5"},
		"multinomial dim 1":  {"multinomial", "--logits=0,1,2,3", "--logits-shape=2,2", "--samples=3", "--dim-c=1", "--shape=3,2"},
		"float16 gamma":      {"gamma", "--dtype=float16", "--alpha=2", "--shape=8"},
		"sequential workers": {"poisson", "--lambda=0", "--workers=1", "--limit=3"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "INDEX")
			assert.Contains(t, out, "MEAN")
		})
	}
}

func TestUniformSummary(t *testing.T) {
	out, err := run(t, "uniform", "--shape=7", "--dtype=float64")
	require.NoError(t, err)
	assert.Contains(t, out, "[7]")
	assert.Contains(t, out, "OFFSET")
}

func TestCommandErrors(t *testing.T) {
	tests := map[string]struct {
		args []string
		want error
	}{
		"shape mismatch":   {[]string{"gamma", "--alpha=1,2,3", "--shape=10"}, tensor.ErrShapeMismatch},
		"bad dtype":        {[]string{"poisson", "--dtype=complex64"}, tensor.ErrUnsupportedType},
		"integer poisson":  {[]string{"poisson", "--dtype=int32"}, tensor.ErrUnsupportedType},
		"bad values":       {[]string{"gamma", "--alpha=one"}, tensor.ErrInvalidArgument},
		"values for shape": {[]string{"gamma", "--alpha=1,2", "--alpha-shape=3"}, tensor.ErrShapeMismatch},
		"reversed bounds":  {[]string{"uniform", "--min=5", "--max=2"}, tensor.ErrInvalidArgument},
		"bad axis":         {[]string{"multinomial", "--dim-c=2"}, tensor.ErrInvalidArgument},
		"bad order":        {[]string{"uniform", "--order=x"}, tensor.ErrInvalidArgument},
		"bad logits dtype": {[]string{"multinomial", "--logits-dtype=int8"}, tensor.ErrUnsupportedType},
		"output rank":      {[]string{"multinomial", "--shape=10"}, tensor.ErrInvalidArgument},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, test.args...)
			require.ErrorIs(t, err, test.want)
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "uniform", "--workers=-2")
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.safetensors")
	_, err := run(t, "uniform", "--min=0", "--max=6", "--dtype=int32", "--order=f", "--shape=3,4", "--seed=7", "--output="+path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	tensors, meta, err := serialization.ReadSafeTensors(f)
	require.NoError(t, err)
	require.Contains(t, tensors, samplesKey)

	samples := tensors[samplesKey]
	assert.Equal(t, tensor.Shape{3, 4}, samples.Shape())
	assert.Equal(t, tensor.Int32, samples.DType())
	for _, v := range samples.AsInt32() {
		assert.GreaterOrEqual(t, v, int32(0))
		assert.Less(t, v, int32(6))
	}
	assert.Equal(t, "uniform", meta["distribution"])
	assert.Equal(t, "7", meta["seed"])
}

func TestExportBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "samples.safetensors")
	_, err := run(t, "poisson", "--output="+path)
	require.Error(t, err)
}
