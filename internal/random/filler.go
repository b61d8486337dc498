// Package random implements the tensor random fill kernels.
//
// Each sampler fills a caller-owned output tensor from a distribution whose
// parameters are tensors broadcast against a repeating period of the output.
// All random draws are addressed by flat index through an rng.Generator, so the
// output is identical for any worker count.
//
// Preconditions are checked before any buffer is allocated and before any parallel
// work starts. On error the output is left untouched.
package random

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// Filler runs the sampling kernels with a fixed parallel configuration.
// A Filler holds no per-call state and is safe for concurrent use.
type Filler struct {
	cfg parallel.Config
	log *zap.Logger
}

// Option configures a Filler.
type Option func(*Filler)

// WithParallel sets the parallel configuration used by every kernel.
func WithParallel(cfg parallel.Config) Option {
	return func(f *Filler) {
		f.cfg = cfg
	}
}

// WithWorkers runs kernels on exactly n workers. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return WithParallel(parallel.Workers(n))
}

// WithLogger sets the logger. Kernels log at debug level only.
func WithLogger(l *zap.Logger) Option {
	return func(f *Filler) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a Filler. Defaults: parallel.DefaultConfig and a no-op logger.
func New(opts ...Option) *Filler {
	f := &Filler{
		cfg: parallel.DefaultConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Parallel returns the parallel configuration in use.
func (f *Filler) Parallel() parallel.Config {
	return f.cfg
}

func (f *Filler) logCall(dist string, out *tensor.RawTensor, period tensor.Shape, shift int) {
	f.log.Debug("random fill",
		zap.String("distribution", dist),
		zap.Stringer("dtype", out.DType()),
		zap.Stringer("shape", out.Shape()),
		zap.Stringer("period", period),
		zap.Int("shift", shift),
		zap.Int("partitions", f.cfg.Partitions(shift)),
	)
}

func (f *Filler) logAligned(dist, param string, from, to tensor.Shape) {
	if from.Equal(to) {
		return
	}
	f.log.Debug("broadcast parameter",
		zap.String("distribution", dist),
		zap.String("param", param),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
}

func requireTensor(name string, r *tensor.RawTensor) error {
	if r == nil {
		return fmt.Errorf("%s tensor is nil: %w", name, tensor.ErrInvalidArgument)
	}
	return nil
}

func requireDType(name string, r *tensor.RawTensor, want tensor.DataType) error {
	if r != nil && r.DType() != want {
		return fmt.Errorf("%s has dtype %s, want %s: %w", name, r.DType(), want, tensor.ErrUnsupportedType)
	}
	return nil
}
