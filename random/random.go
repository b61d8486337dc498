// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package random fills tensors with samples from Gamma, Poisson, bounded Uniform and
// Categorical distributions whose parameters are themselves tensors.
//
// # Overview
//
// Parameters broadcast against a repeating "period" of the output. Every random draw
// is addressed by a flat index through a Generator, so results are bit-identical for
// any number of workers.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorrand/random"
//	    "github.com/born-ml/tensorrand/tensor"
//	)
//
//	func main() {
//	    g := random.NewGenerator(42)
//	    f := random.New(random.WithWorkers(4))
//
//	    alpha, _ := tensor.FromSlice([]float32{0.5, 1, 2}, tensor.Shape{3})
//	    out, _ := tensor.NewRaw(tensor.Shape{100, 3}, tensor.Float32)
//	    if err := f.Gamma(g, alpha, nil, out); err != nil {
//	        // errors.Is(err, tensor.ErrShapeMismatch) ...
//	    }
//	}
//
// # Generator Position
//
// Gamma, Poisson and integer Uniform do not move the generator. Float Uniform moves it
// past one index per output element and Multinomial past len(out)*classes indices, so
// consecutive calls draw from fresh positions.
package random

import (
	"go.uber.org/zap"

	"github.com/born-ml/tensorrand/internal/parallel"
	"github.com/born-ml/tensorrand/internal/random"
	"github.com/born-ml/tensorrand/internal/rng"
)

// Filler runs the sampling kernels. It is safe for concurrent use.
type Filler = random.Filler

// Option configures a Filler.
type Option = random.Option

// Generator is the deterministic, index-addressable random source.
type Generator = rng.Generator

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// New creates a Filler.
//
// Example:
//
//	f := random.New(random.WithWorkers(8), random.WithLogger(logger))
func New(opts ...Option) *Filler {
	return random.New(opts...)
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return rng.New(seed)
}

// WithParallel sets the parallel configuration.
func WithParallel(cfg ParallelConfig) Option {
	return random.WithParallel(cfg)
}

// WithWorkers runs kernels on exactly n workers.
func WithWorkers(n int) Option {
	return random.WithWorkers(n)
}

// WithLogger sets a zap logger; kernels log at debug level.
func WithLogger(l *zap.Logger) Option {
	return random.WithLogger(l)
}

// DefaultParallel returns the CPU-count based parallel configuration.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}
