package noise

// ChunkRand is a small deterministic LCG used by the structure and vegetation
// passes. It mixes the world seed with the chunk coordinate and a per-pass
// salt, so every pass gets an independent stream for the same chunk and the
// same stream on regeneration. It replaces any process-global seed state:
// all randomness is derived from explicit parameters.
type ChunkRand struct {
	state int64
}

// NewChunkRand derives a generator for one pass over one chunk.
func NewChunkRand(seed int64, chunkX, chunkZ int, salt int64) *ChunkRand {
	s := seed ^ (int64(chunkX)*341873128712 + int64(chunkZ)*132897987541 + salt)
	return &ChunkRand{state: s}
}

func (r *ChunkRand) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// IntN returns a value in [0, n). n must be positive.
func (r *ChunkRand) IntN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// Float64 returns a value in [0, 1).
func (r *ChunkRand) Float64() float64 {
	return float64(uint64(r.next())>>11) / (1 << 53)
}
