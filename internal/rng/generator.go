// Package rng provides the deterministic, index-addressable random source shared by
// the fill kernels.
//
// A Generator never hands out values in call order. Every draw is addressed by an
// explicit index relative to the generator's consumption offset, so any number of
// workers can draw concurrently and still produce the same values regardless of
// scheduling. Kernels advance the offset once, after their parallel region, by the
// number of indices they consumed.
package rng

import (
	"math"
	"sync/atomic"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/mathext/prng"

	"github.com/born-ml/tensorrand/internal/tensor"
)

// Generator is a counter-based Philox2x32-10 random source.
//
// ValueAt and the *At methods are pure functions of (seed, offset, index, range) and
// are safe for concurrent use. Seed must not run concurrently with draws.
type Generator struct {
	seed   uint64
	key    uint32
	root   uint64
	offset atomic.Uint64
}

// New returns a generator seeded with seed and a zero offset.
func New(seed uint64) *Generator {
	g := &Generator{}
	g.Seed(seed)
	return g
}

// Seed derives the Philox key and root counter from seed and rewinds the offset to 0.
func (g *Generator) Seed(seed uint64) {
	src := prng.NewSplitMix64(seed)
	g.seed = seed
	g.key = uint32(src.Uint64() >> 32)
	g.root = src.Uint64()
	g.offset.Store(0)
}

// SeedValue returns the seed the generator was last seeded with.
func (g *Generator) SeedValue() uint64 {
	return g.seed
}

// Offset returns the number of indices consumed so far.
func (g *Generator) Offset() uint64 {
	return g.offset.Load()
}

// Advance moves the consumption offset forward by count indices.
func (g *Generator) Advance(count uint64) {
	g.offset.Add(count)
}

// Clone returns an independent generator at the same seed and offset.
func (g *Generator) Clone() *Generator {
	c := &Generator{seed: g.seed, key: g.key, root: g.root}
	c.offset.Store(g.offset.Load())
	return c
}

// Uint64At returns 64 random bits for index.
func (g *Generator) Uint64At(index int64) uint64 {
	return philox2x32(g.root+g.offset.Load()+uint64(index), g.key)
}

// unitAt returns a value in [0, 1) with 53 random bits.
func (g *Generator) unitAt(index int64) float64 {
	return float64(g.Uint64At(index)>>11) * 0x1p-53
}

// Float64At returns a value in [low, high) for index. When high <= low it returns low.
func (g *Generator) Float64At(index int64, low, high float64) float64 {
	if !(high > low) {
		return low
	}
	u := g.unitAt(index)
	span := high - low
	v := low + u*span
	if math.IsInf(span, 0) {
		v = low*(1-u) + high*u
	}
	if v >= high {
		v = math.Nextafter(high, low)
	}
	return v
}

// Int64At returns an integer in [low, high) for index. When high <= low it returns low.
func (g *Generator) Int64At(index int64, low, high int64) int64 {
	if high <= low {
		return low
	}
	span := uint64(high) - uint64(low)
	f := g.unitAt(index) * float64(span)
	var v uint64
	if f >= float64(span) {
		v = span - 1
	} else {
		v = uint64(f)
		if v >= span {
			v = span - 1
		}
	}
	return int64(uint64(low) + v)
}

// ValueAt returns a value of type T in [low, high) for index.
// Floating results are rounded to T and stepped down if rounding reached high.
func ValueAt[T tensor.Numeric](g *Generator, index int64, low, high T) T {
	var v any
	switch lo := any(low).(type) {
	case float16.Float16:
		hi := any(high).(float16.Float16)
		f := g.Float64At(index, float64(lo.Float32()), float64(hi.Float32()))
		h := float16.Fromfloat32(float32(f))
		if hi.Float32() > lo.Float32() && h.Float32() >= hi.Float32() {
			h = below16(hi)
		}
		v = h
	case float32:
		hi := any(high).(float32)
		f := float32(g.Float64At(index, float64(lo), float64(hi)))
		if hi > lo && f >= hi {
			f = math.Nextafter32(hi, lo)
		}
		v = f
	case float64:
		v = g.Float64At(index, lo, any(high).(float64))
	case int32:
		v = int32(g.Int64At(index, int64(lo), int64(any(high).(int32))))
	case int64:
		v = g.Int64At(index, lo, any(high).(int64))
	case uint8:
		v = uint8(g.Int64At(index, int64(lo), int64(any(high).(uint8))))
	default:
		panic("unsupported type")
	}
	return v.(T)
}

// below16 returns the largest float16 strictly below h.
func below16(h float16.Float16) float16.Float16 {
	bits := h.Bits()
	switch {
	case bits == 0 || bits == 0x8000:
		return float16.Frombits(0x8001)
	case bits&0x8000 == 0:
		return float16.Frombits(bits - 1)
	default:
		return float16.Frombits(bits + 1)
	}
}
