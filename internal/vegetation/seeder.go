// Package vegetation seeds plant life onto chunks whose terrain and
// structures are already in place. It is the final mutating pass before a
// chunk is considered ready.
package vegetation

import (
	"github.com/voxelhaven/worldgen/internal/block"
	"github.com/voxelhaven/worldgen/internal/noise"
	"github.com/voxelhaven/worldgen/internal/terrain"
	"github.com/voxelhaven/worldgen/internal/world"
)

const randSalt = 9001

// treeDensity is the per-column planting probability by biome. Ocean and
// tundra grow nothing; deserts grow cactus instead of trees.
var treeDensity = map[terrain.Biome]float64{
	terrain.Boreal:    0.04,
	terrain.Temperate: 0.03,
	terrain.Tropical:  0.08,
	terrain.Desert:    0.008,
}

// Seeder plants biome vegetation. Like the structure pass, it draws from an
// explicit per-chunk random stream derived from the world seed.
type Seeder struct {
	gen  *terrain.Generator
	seed int64
}

// NewSeeder builds a seeder over the shared terrain generator.
func NewSeeder(gen *terrain.Generator) *Seeder {
	return &Seeder{gen: gen, seed: gen.Seed()}
}

func (s *Seeder) Name() string { return "vegetation" }

// Stage reports the lifecycle tag a chunk carries after seeding.
func (s *Seeder) Stage() world.GenStage { return world.StageVegetationApplied }

// Populate walks the interior columns of the chunk (canopies stay clear of
// the border) and plants according to biome density. Columns whose surface
// was altered by a structure are skipped via the surface-block check.
func (s *Seeder) Populate(c *world.Chunk) {
	rng := noise.NewChunkRand(s.seed, c.X, c.Z, randSalt)

	for lx := 2; lx < world.ChunkSizeX-2; lx++ {
		for lz := 2; lz < world.ChunkSizeZ-2; lz++ {
			wx := c.X*world.ChunkSizeX + lx
			wz := c.Z*world.ChunkSizeZ + lz

			b := s.gen.BiomeAt(wx, wz)
			density, ok := treeDensity[b]
			if !ok || rng.Float64() >= density {
				continue
			}

			h := s.gen.HeightAt(wx, wz)
			if h < terrain.SeaLevel || h > world.ChunkSizeY-12 {
				continue
			}

			switch surf := c.Get(lx, h, lz); {
			case b == terrain.Desert && surf == block.Sand:
				s.plantCactus(c, rng, lx, h+1, lz)
			case surf == block.Grass:
				s.plantTree(c, rng, b, lx, h+1, lz)
			}
		}
	}
}

// plantTree grows a trunk and a biome-shaped canopy. Existing non-air voxels
// are never overwritten, so trees yield to structures.
func (s *Seeder) plantTree(c *world.Chunk, rng *noise.ChunkRand, b terrain.Biome, lx, baseY, lz int) {
	trunk := 4 + rng.IntN(3)
	if b == terrain.Tropical {
		trunk += 2
	}
	top := baseY + trunk - 1

	for y := baseY; y <= top; y++ {
		if c.Get(lx, y, lz) != block.Air {
			return
		}
	}
	for y := baseY; y <= top; y++ {
		c.Set(lx, y, lz, block.Log)
	}

	switch b {
	case terrain.Boreal:
		s.conicalCanopy(c, lx, baseY, top, lz)
	default:
		s.roundedCanopy(c, lx, top, lz)
	}
}

// roundedCanopy is the broadleaf shape: two wide layers below the crown, a
// plus-shaped cap above it.
func (s *Seeder) roundedCanopy(c *world.Chunk, lx, top, lz int) {
	for dy := -1; dy <= 0; dy++ {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if (dx == -2 || dx == 2) && (dz == -2 || dz == 2) {
					continue
				}
				placeLeaf(c, lx+dx, top+dy, lz+dz)
			}
		}
	}
	for dy := 1; dy <= 2; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				if dy == 2 && dx != 0 && dz != 0 {
					continue
				}
				placeLeaf(c, lx+dx, top+dy, lz+dz)
			}
		}
	}
}

// conicalCanopy is the spruce shape: rings narrowing toward the tip.
func (s *Seeder) conicalCanopy(c *world.Chunk, lx, baseY, top, lz int) {
	height := top - baseY + 1
	for dy := 1; dy < height; dy++ {
		radius := 2
		if dy > height-2 {
			radius = 0
		} else if dy > height-4 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if radius > 1 && (dx == -radius || dx == radius) && (dz == -radius || dz == radius) {
					continue
				}
				placeLeaf(c, lx+dx, baseY+dy, lz+dz)
			}
		}
	}
	placeLeaf(c, lx, top+1, lz)
}

// plantCactus grows a short column; sand only, nothing overwritten.
func (s *Seeder) plantCactus(c *world.Chunk, rng *noise.ChunkRand, lx, baseY, lz int) {
	height := 1 + rng.IntN(3)
	for dy := 0; dy < height; dy++ {
		if c.Get(lx, baseY+dy, lz) != block.Air {
			return
		}
	}
	for dy := 0; dy < height; dy++ {
		c.Set(lx, baseY+dy, lz, block.Cactus)
	}
}

func placeLeaf(c *world.Chunk, x, y, z int) {
	if c.Get(x, y, z) == block.Air {
		c.Set(x, y, z, block.Leaves)
	}
}
