package terrain

import (
	"github.com/voxelhaven/worldgen/internal/noise"
)

// CaveCarver decides whether a sub-surface voxel is hollowed out. Two 3D
// fields are combined so caves branch instead of forming isolated bubbles;
// per-biome parameters control how aggressively each climate is carved.
type CaveCarver struct {
	primary   *noise.Field
	secondary *noise.Field
}

// NewCaveCarver derives the two cave fields from the world seed.
func NewCaveCarver(seed int64) *CaveCarver {
	return &CaveCarver{
		primary:   noise.NewField(seed, noise.OffsetCavePrimary),
		secondary: noise.NewField(seed, noise.OffsetCaveSecondary),
	}
}

// IsHollow reports whether the voxel at (worldX, y, worldZ) is carved out.
// Voxels closer to the surface than the biome's minimum depth are never
// hollow, which keeps cave ceilings from collapsing into the open air.
func (c *CaveCarver) IsHollow(worldX, y, worldZ int, surfaceHeight int, b Biome) bool {
	p := caveTable[b]
	if surfaceHeight-y < p.minDepth {
		return false
	}
	fx, fy, fz := float64(worldX), float64(y), float64(worldZ)
	n1 := c.primary.Eval3(fx*p.scale, fy*p.scale, fz*p.scale)
	n2 := c.secondary.Eval3(fx*p.scale*1.5, fy*p.scale*1.5, fz*p.scale*1.5)
	return (n1+0.5*n2)/1.5 > p.threshold
}
