package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin shape parameters. alpha/beta control the weight and harmonic
// scaling of the internal octaves, n is their count. These match terrain-like
// noise and are fixed: changing them changes every world ever generated.
const (
	alpha = 2.0
	beta  = 2.0
	n     = 3
)

// Seed offsets for the independent fields derived from one world seed.
// Fixed forever as part of the determinism contract.
const (
	OffsetContinent     int64 = 0
	OffsetTerrain       int64 = 100
	OffsetErosion       int64 = 200
	OffsetRiver         int64 = 300
	OffsetMoisture      int64 = 400
	OffsetTemperature   int64 = 500
	OffsetCavePrimary   int64 = 600
	OffsetCaveSecondary int64 = 700
	OffsetClay          int64 = 800
	OffsetStrata        int64 = 900
	OffsetOre           int64 = 1000
)

// Field is a seeded, continuous scalar function over 2D or 3D space with
// values in roughly [-1, 1]. The gradient tables are derived once from the
// seed at construction; a Field is immutable afterwards and safe to share
// across goroutines without locking.
type Field struct {
	noise *perlin.Perlin
	seed  int64
}

// NewField creates a field seeded with seed+offset, so that multiple fields
// derived from the same world seed are statistically independent while two
// fields built from identical inputs are bit-for-bit identical.
func NewField(seed, offset int64) *Field {
	return &Field{
		noise: perlin.NewPerlin(alpha, beta, n, seed+offset),
		seed:  seed + offset,
	}
}

// Seed returns the effective seed (world seed plus offset).
func (f *Field) Seed() int64 {
	return f.seed
}

// Eval2 samples the field at a 2D point.
func (f *Field) Eval2(x, y float64) float64 {
	return f.noise.Noise2D(x, y)
}

// Eval3 samples the field at a 3D point.
func (f *Field) Eval3(x, y, z float64) float64 {
	return f.noise.Noise3D(x, y, z)
}

// Octave2 sums octaves octaves of the field, doubling frequency and halving
// amplitude each step, normalized by the total amplitude so the result stays
// in the field's value range.
func (f *Field) Octave2(x, y float64, octaves int) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0
	for i := 0; i < octaves; i++ {
		total += f.noise.Noise2D(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		frequency *= 2
		amplitude *= 0.5
	}
	return total / maxAmplitude
}
