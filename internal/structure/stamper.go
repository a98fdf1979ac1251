// Package structure stamps points of interest onto terrain-complete chunks.
// It runs strictly after terrain generation and before vegetation seeding,
// so vegetation never lands on ground a structure is about to occupy.
package structure

import (
	"github.com/voxelhaven/worldgen/internal/block"
	"github.com/voxelhaven/worldgen/internal/noise"
	"github.com/voxelhaven/worldgen/internal/terrain"
	"github.com/voxelhaven/worldgen/internal/world"
)

// randSalt separates the stamper's random stream from other passes over the
// same chunk.
const randSalt = 7001

// outcropChance is the per-chunk probability of a rock outcrop, applied
// per candidate biome column cluster.
const outcropChance = 0.06

// Stamper places rock outcrops on exposed land. All randomness comes from an
// explicit per-chunk generator derived from the world seed, never from
// process-global state, so stamping is reproducible per (seed, coordinate).
type Stamper struct {
	gen  *terrain.Generator
	seed int64
}

// NewStamper builds a stamper over the same generator the terrain pass used,
// so surface heights and biomes agree between passes.
func NewStamper(gen *terrain.Generator) *Stamper {
	return &Stamper{gen: gen, seed: gen.Seed()}
}

func (s *Stamper) Name() string { return "structures" }

// Stage reports the lifecycle tag a chunk carries after stamping.
func (s *Stamper) Stage() world.GenStage { return world.StageStructuresApplied }

// Populate stamps at most one outcrop per chunk, clear of the chunk border
// so the footprint never needs neighbor access.
func (s *Stamper) Populate(c *world.Chunk) {
	rng := noise.NewChunkRand(s.seed, c.X, c.Z, randSalt)
	if rng.Float64() >= outcropChance {
		return
	}

	lx := 3 + rng.IntN(world.ChunkSizeX-6)
	lz := 3 + rng.IntN(world.ChunkSizeZ-6)
	wx := c.X*world.ChunkSizeX + lx
	wz := c.Z*world.ChunkSizeZ + lz

	h := s.gen.HeightAt(wx, wz)
	if h < terrain.SeaLevel {
		return
	}
	b := s.gen.BiomeAt(wx, wz)
	if b == terrain.Ocean {
		return
	}
	if surf := c.Get(lx, h, lz); !surf.IsSolid() {
		return
	}

	s.stampOutcrop(c, rng, lx, h, lz)
}

// stampOutcrop builds a squat dome of mixed rock sitting on the surface.
func (s *Stamper) stampOutcrop(c *world.Chunk, rng *noise.ChunkRand, lx, surfaceY, lz int) {
	radius := 2 + rng.IntN(2)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			for dy := 0; dy <= radius; dy++ {
				// Squashed sphere: wider than tall.
				if dx*dx+dz*dz+2*dy*dy > radius*radius {
					continue
				}
				x, y, z := lx+dx, surfaceY+dy, lz+dz
				if target := c.Get(x, y, z); dy > 0 && target != block.Air {
					continue
				}
				c.Set(x, y, z, outcropMaterial(rng))
			}
		}
	}
}

// outcropMaterial mixes stone, cobble and granite for a weathered look.
func outcropMaterial(rng *noise.ChunkRand) block.Material {
	switch rng.IntN(10) {
	case 0, 1, 2, 3:
		return block.Stone
	case 4, 5, 6:
		return block.Cobblestone
	default:
		return block.Granite
	}
}
