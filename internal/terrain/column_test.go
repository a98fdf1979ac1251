package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelhaven/worldgen/internal/block"
)

// columnGrid records writes the way a chunk would, for inspecting what the
// synthesizer produced without pulling in the chunk type.
type columnGrid struct {
	cells map[[3]int]block.Material
}

func newColumnGrid() *columnGrid {
	return &columnGrid{cells: make(map[[3]int]block.Material)}
}

func (g *columnGrid) SetFast(x, y, z int, m block.Material) {
	g.cells[[3]int{x, y, z}] = m
}

func (g *columnGrid) get(x, y, z int) block.Material {
	return g.cells[[3]int{x, y, z}]
}

func TestGenerator_MaterialAt_AboveSurface(t *testing.T) {
	g := NewGenerator(12345)

	tests := []struct {
		name    string
		y       int
		surface int
		biome   Biome
		want    block.Material
	}{
		{
			name:    "air above a land surface",
			y:       150,
			surface: 100,
			biome:   Temperate,
			want:    block.Air,
		},
		{
			name:    "salt water fills drowned ocean columns",
			y:       SeaLevel - 5,
			surface: SeaLevel - 20,
			biome:   Ocean,
			want:    block.SaltWater,
		},
		{
			name:    "fresh water fills drowned land columns",
			y:       SeaLevel - 1,
			surface: SeaLevel - 4,
			biome:   Temperate,
			want:    block.FreshWater,
		},
		{
			name:    "water stops exactly at sea level",
			y:       SeaLevel + 1,
			surface: SeaLevel - 20,
			biome:   Ocean,
			want:    block.Air,
		},
		{
			name:    "the sea level cell itself is water",
			y:       SeaLevel,
			surface: SeaLevel - 20,
			biome:   Ocean,
			want:    block.SaltWater,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.MaterialAt(0, tt.y, 0, tt.surface, tt.biome)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_MaterialAt_Surface(t *testing.T) {
	g := NewGenerator(12345)

	tests := []struct {
		name    string
		surface int
		biome   Biome
		want    block.Material
	}{
		{name: "temperate land grows grass", surface: 100, biome: Temperate, want: block.Grass},
		{name: "tundra land is gravel", surface: 100, biome: Tundra, want: block.Gravel},
		{name: "desert land is sand", surface: 100, biome: Desert, want: block.Sand},
		{name: "ocean floor is sand", surface: 40, biome: Ocean, want: block.Sand},
		{name: "drowned temperate floor is clay", surface: 60, biome: Temperate, want: block.Clay},
		{name: "drowned tropical floor is red clay", surface: 60, biome: Tropical, want: block.RedClay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.MaterialAt(0, tt.surface, 0, tt.surface, tt.biome)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_MaterialAt_Subsurface(t *testing.T) {
	g := NewGenerator(12345)
	const surface = 120

	for x := 0; x < 200; x += 5 {
		for depth := 1; depth <= 3; depth++ {
			m := g.MaterialAt(x, surface-depth, x*3, surface, Temperate)
			if depth == 1 {
				assert.Equal(t, block.Dirt, m, "the cell directly under the surface is always dirt")
			} else {
				assert.Contains(t, []block.Material{block.Dirt, ClayBlock(Temperate)}, m,
					"depth %d at x=%d may only be dirt or the biome clay", depth, x)
			}
		}
	}
}

func TestGenerator_MaterialAt_StrataBands(t *testing.T) {
	g := NewGenerator(12345)
	const surface = 200 // deep enough that every band is below the subsurface

	bands := []struct {
		name    string
		y       int
		allowed []block.Material
	}{
		{
			name:    "sedimentary band",
			y:       80,
			allowed: []block.Material{block.Limestone, block.Sandstone, block.CopperOre, block.CoalOre},
		},
		{
			name:    "metamorphic band",
			y:       35,
			allowed: []block.Material{block.Slate, block.Stone},
		},
		{
			name:    "igneous band",
			y:       18,
			allowed: []block.Material{block.Granite, block.Basalt, block.TinOre, block.IronOre},
		},
		{
			name:    "deep basalt band",
			y:       8,
			allowed: []block.Material{block.Basalt, block.IronOre},
		},
	}

	for _, band := range bands {
		t.Run(band.name, func(t *testing.T) {
			for x := 0; x < 400; x += 3 {
				m := g.MaterialAt(x, band.y, -x, surface, Temperate)
				if m == block.Air {
					continue // carved by a cave
				}
				assert.Contains(t, band.allowed, m, "x=%d y=%d", x, band.y)
			}
		})
	}
}

// An ore may only ever replace its own host rock inside its depth range, so a
// deep cell is always either the strata rock or the single ore bound to it.
func TestGenerator_DeepMaterial_OreRules(t *testing.T) {
	g := NewGenerator(12345)

	hosts := map[block.Material]block.Material{
		block.CopperOre: block.Limestone,
		block.TinOre:    block.Granite,
		block.IronOre:   block.Basalt,
		block.CoalOre:   block.Sandstone,
	}

	for x := 0; x < 500; x += 3 {
		for _, y := range []int{5, 15, 35, 60, 120} {
			rock := g.rockAt(x, y, -x)
			m := g.deepMaterial(x, y, -x)
			if m == rock {
				continue
			}
			host, isOre := hosts[m]
			require.True(t, isOre, "deep cell x=%d y=%d is neither rock nor ore: %s", x, y, m)
			assert.Equal(t, rock, host, "ore %s grew outside its host rock", m)
		}
	}
}

// Caves must never breach the surface crust or the bedrock floor.
func TestGenerator_MaterialAt_CaveContainment(t *testing.T) {
	g := NewGenerator(12345)
	const surface = 90

	for x := 0; x < 300; x += 2 {
		for y := 0; y <= surface; y++ {
			m := g.MaterialAt(x, y, -x*2, surface, Temperate)
			if m != block.Air {
				continue
			}
			assert.Greater(t, y, caveFloor, "carved cell at x=%d breaches the floor", x)
			assert.Less(t, y, surface-caveCeilingGap, "carved cell at x=%d breaches the crust", x)
		}
	}
}

func TestGenerator_FillColumn(t *testing.T) {
	g := NewGenerator(12345)

	const (
		wx, wz  = 37, -11
		surface = 80
	)
	grid := newColumnGrid()
	g.FillColumn(grid, 5, 9, wx, wz, surface, 256, Temperate)

	t.Run("never writes air", func(t *testing.T) {
		for coord, m := range grid.cells {
			require.NotEqual(t, block.Air, m, "air written at %v", coord)
		}
	})

	t.Run("matches per-cell evaluation", func(t *testing.T) {
		for y := 0; y < 256; y++ {
			want := g.MaterialAt(wx, y, wz, surface, Temperate)
			assert.Equal(t, want, grid.get(5, y, 9), "y=%d", y)
		}
	})

	t.Run("solid at the surface, air at the ceiling", func(t *testing.T) {
		assert.True(t, grid.get(5, surface, 9).IsSolid())
		assert.Equal(t, block.Air, grid.get(5, 255, 9))
	})
}
