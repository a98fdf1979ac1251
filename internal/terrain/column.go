package terrain

import (
	"github.com/voxelhaven/worldgen/internal/block"
)

// Depth bands for geological strata and the clay/cave rules, in world Y.
const (
	sedimentaryFloor = 45 // y > 45: limestone / sandstone
	metamorphicFloor = 25 // 25 < y <= 45: slate / stone
	igneousFloor     = 10 // 10 < y <= 25: granite / basalt; below: basalt

	caveCeilingGap = 3 // never carve within 3 of the surface
	caveFloor      = 5 // never carve at y <= 5

	subsurfaceDepth = 4 // dirt/clay band thickness below the surface
	clayFreq        = 1.0 / 48.0
	clayThreshold   = 0.6

	strataFreq = 1.0 / 64.0
	oreFreq    = 1.0 / 24.0
)

// oreRule gates one ore type on a depth range, a host rock and a noise
// threshold. Rules are checked in fixed order; the first satisfied rule wins,
// so overrides stay mutually exclusive per cell. The thresholds are tuned
// literals preserved for world compatibility.
type oreRule struct {
	ore       block.Material
	host      block.Material
	minY      int // exclusive
	maxY      int // inclusive, 256 = unbounded
	threshold float64
}

var oreRules = [...]oreRule{
	{ore: block.CopperOre, host: block.Limestone, minY: sedimentaryFloor, maxY: 256, threshold: 0.84},
	{ore: block.TinOre, host: block.Granite, minY: igneousFloor, maxY: metamorphicFloor, threshold: 0.85},
	{ore: block.IronOre, host: block.Basalt, minY: -1, maxY: metamorphicFloor, threshold: 0.86},
	{ore: block.CoalOre, host: block.Sandstone, minY: sedimentaryFloor, maxY: 256, threshold: 0.83},
}

// ColumnWriter is the chunk-local write contract the synthesizer fills
// through. Implementations must treat out-of-range writes as no-ops.
type ColumnWriter interface {
	SetFast(x, y, z int, m block.Material)
}

// rockAt picks the base rock for a deep cell: the depth band selects the
// rock pair, the sign of the strata field picks between them. The deepest
// band is always basalt.
func (g *Generator) rockAt(worldX, y, worldZ int) block.Material {
	s := g.strata.Eval3(float64(worldX)*strataFreq, float64(y)*strataFreq, float64(worldZ)*strataFreq)
	switch {
	case y > sedimentaryFloor:
		if s >= 0 {
			return block.Limestone
		}
		return block.Sandstone
	case y > metamorphicFloor:
		if s >= 0 {
			return block.Slate
		}
		return block.Stone
	case y > igneousFloor:
		if s >= 0 {
			return block.Granite
		}
		return block.Basalt
	default:
		return block.Basalt
	}
}

// deepMaterial resolves a deep-rock cell: base rock from the strata bands,
// then the ore rules may override it when the ore field spikes inside a
// matching depth range and host rock.
func (g *Generator) deepMaterial(worldX, y, worldZ int) block.Material {
	rock := g.rockAt(worldX, y, worldZ)
	v := g.ore.Eval3(float64(worldX)*oreFreq, float64(y)*oreFreq, float64(worldZ)*oreFreq)
	for _, r := range oreRules {
		if rock != r.host {
			continue
		}
		if y <= r.minY || y > r.maxY {
			continue
		}
		if v > r.threshold {
			return r.ore
		}
	}
	return rock
}

// surfaceMaterial resolves the cell at exactly the surface height.
func surfaceMaterial(surfaceHeight int, b Biome) block.Material {
	if surfaceHeight < SeaLevel {
		// Underwater surface: ocean floors are sand, drowned land
		// columns expose the biome clay.
		if b == Ocean {
			return block.Sand
		}
		return ClayBlock(b)
	}
	return SurfaceBlock(b)
}

// subsurfaceMaterial resolves the shallow band under the surface: dirt, with
// clay lenses substituted at exactly 2 and 3 below the surface where the
// clay field spikes.
func (g *Generator) subsurfaceMaterial(worldX, y, worldZ, surfaceHeight int, b Biome) block.Material {
	depth := surfaceHeight - y
	if depth == 2 || depth == 3 {
		c := g.clay.Eval2(float64(worldX)*clayFreq, float64(worldZ)*clayFreq)
		if c > clayThreshold {
			return ClayBlock(b)
		}
	}
	return block.Dirt
}

// MaterialAt resolves one voxel of a column whose surface height and biome
// are already known. It is total: every (y, surface, biome) input maps to
// exactly one material.
func (g *Generator) MaterialAt(worldX, y, worldZ, surfaceHeight int, b Biome) block.Material {
	switch {
	case y > surfaceHeight && y <= SeaLevel:
		if b == Ocean {
			return block.SaltWater
		}
		return block.FreshWater
	case y > surfaceHeight:
		return block.Air
	case y < surfaceHeight-caveCeilingGap && y > caveFloor &&
		g.caves.IsHollow(worldX, y, worldZ, surfaceHeight, b):
		return block.Air
	case y == surfaceHeight:
		return surfaceMaterial(surfaceHeight, b)
	case y > surfaceHeight-subsurfaceDepth:
		return g.subsurfaceMaterial(worldX, y, worldZ, surfaceHeight, b)
	default:
		return g.deepMaterial(worldX, y, worldZ)
	}
}

// FillColumn assigns a material to every vertical cell of one chunk-local
// column. Height and biome are computed once by the caller and reused down
// the column; cost is O(height). maxY is exclusive.
func (g *Generator) FillColumn(w ColumnWriter, localX, localZ, worldX, worldZ, surfaceHeight, maxY int, b Biome) {
	for y := 0; y < maxY; y++ {
		m := g.MaterialAt(worldX, y, worldZ, surfaceHeight, b)
		if m != block.Air {
			w.SetFast(localX, y, localZ, m)
		}
	}
}
