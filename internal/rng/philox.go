package rng

// Philox2x32-10 constants (Salmon et al., "Parallel Random Numbers: As Easy as 1, 2, 3").
const (
	philoxMul  = 0xD256D193
	philoxBump = 0x9E3779B9
)

// philoxRound does one round of updating of the counter.
func philoxRound(lo, hi, key uint32) (uint32, uint32) {
	prod := uint64(philoxMul) * uint64(lo)
	return uint32(prod>>32) ^ key ^ hi, uint32(prod)
}

// philox2x32 is a stateless counter-based generator: the result depends only on
// the counter and key.
func philox2x32(counter uint64, key uint32) uint64 {
	lo, hi := uint32(counter), uint32(counter>>32)
	for i := 0; i < 9; i++ {
		lo, hi = philoxRound(lo, hi, key)
		key += philoxBump
	}
	lo, hi = philoxRound(lo, hi, key)
	return uint64(hi)<<32 | uint64(lo)
}
