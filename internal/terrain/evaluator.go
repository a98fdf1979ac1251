package terrain

import (
	"github.com/voxelhaven/worldgen/internal/noise"
)

// SeaLevel is the world water line. Columns lower than this fill with water
// above the surface.
const SeaLevel = 64

// Sampling frequencies and shaping constants. All of these are tuned
// literals carried over for world compatibility; they have no deeper
// derivation.
const (
	continentFreq = 1.0 / 512.0
	terrainFreq   = 1.0 / 128.0
	erosionFreq   = 1.0 / 256.0
	riverFreq     = 1.0 / 96.0
	climateFreq   = 1.0 / 384.0

	terrainOctaves = 3
	maxTerrainAmp  = 24.0

	// Continent shaping: three linear regimes meeting continuously at the
	// two thresholds. Values below continentLow are open ocean, the band up
	// to continentMid is continental shelf, above is land.
	continentLow   = -0.2
	continentMid   = 0.0
	slopeDeepOcean = 40.0
	slopeShelf     = 30.0
	slopeLand      = 18.0

	erosionMaxShrink = 0.3

	// Climate modifiers.
	moistureSeaBoost     = 0.3
	moistureCoastalBoost = 0.15
	coastalBand          = 3
	rainShadowPerBlock   = 0.01
	rainShadowCap        = 0.25
	lapsePerBlock        = 0.015
	lapseCap             = 0.5
)

// Generator owns the full set of noise fields derived from one world seed and
// evaluates terrain columns from them. It is immutable after construction and
// safe for concurrent use.
type Generator struct {
	seed int64

	continent   *noise.Field
	terrain     *noise.Field
	erosion     *noise.Field
	river       *noise.Field
	moisture    *noise.Field
	temperature *noise.Field
	clay        *noise.Field
	strata      *noise.Field
	ore         *noise.Field

	caves *CaveCarver
}

// NewGenerator derives every noise field from the world seed plus a fixed
// per-field offset. Identical seeds produce bit-identical generators.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		continent:   noise.NewField(seed, noise.OffsetContinent),
		terrain:     noise.NewField(seed, noise.OffsetTerrain),
		erosion:     noise.NewField(seed, noise.OffsetErosion),
		river:       noise.NewField(seed, noise.OffsetRiver),
		moisture:    noise.NewField(seed, noise.OffsetMoisture),
		temperature: noise.NewField(seed, noise.OffsetTemperature),
		clay:        noise.NewField(seed, noise.OffsetClay),
		strata:      noise.NewField(seed, noise.OffsetStrata),
		ore:         noise.NewField(seed, noise.OffsetOre),
		caves:       NewCaveCarver(seed),
	}
}

// Seed returns the world seed the generator was built from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// continentShape maps raw continent noise to a height contribution through
// three linear regimes. Each regime has its own slope and the pieces meet at
// the thresholds, so the surface stays continuous across regime boundaries.
func continentShape(c float64) float64 {
	switch {
	case c < continentLow:
		return (c-continentLow)*slopeDeepOcean + continentLow*slopeShelf
	case c < continentMid:
		return c * slopeShelf
	default:
		return c * slopeLand
	}
}

// detailHeight is the normalized multi-octave terrain contribution scaled to
// the maximum terrain amplitude.
func (g *Generator) detailHeight(fx, fz float64) float64 {
	return g.terrain.Octave2(fx*terrainFreq, fz*terrainFreq, terrainOctaves) * maxTerrainAmp
}

// erodedDetail shrinks the octave contribution by up to erosionMaxShrink
// based on a coarser erosion field clamped to [-0.5, 0.5].
func (g *Generator) erodedDetail(fx, fz float64) float64 {
	e := clamp(g.erosion.Eval2(fx*erosionFreq, fz*erosionFreq), -0.5, 0.5)
	return g.detailHeight(fx, fz) * (1 - (e+0.5)*erosionMaxShrink)
}

// riverCut returns the depth to carve for a river at this column, zero when
// the column is not inside a river band or the biome has no rivers. The cut
// falls off linearly from the river center line (triangular profile).
func (g *Generator) riverCut(fx, fz float64, b Biome) float64 {
	p := riverTable[b]
	if p.band <= 0 {
		return 0
	}
	r := g.river.Eval2(fx*riverFreq, fz*riverFreq)
	if r < 0 {
		r = -r
	}
	if r >= p.band {
		return 0
	}
	return p.depth * (1 - r/p.band)
}

// HeightAt computes the integer surface height of the column at a world
// position. The biome used for river carving is derived at the provisional
// (pre-river) height.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	fx, fz := float64(worldX), float64(worldZ)

	cont := continentShape(g.continent.Eval2(fx*continentFreq, fz*continentFreq))
	detail := g.erodedDetail(fx, fz)

	provisional := int(SeaLevel + cont + detail)
	m := g.MoistureAt(worldX, worldZ, provisional)
	t := g.TemperatureAt(worldX, worldZ, provisional)
	b := ClassifyBiome(m, t, provisional)

	// Rivers only carve land columns.
	if provisional >= SeaLevel {
		detail -= g.riverCut(fx, fz, b)
	}

	h := int(SeaLevel + cont + detail)
	if h < 1 {
		h = 1
	}
	if h > 255 {
		h = 255
	}
	return h
}

// MoistureAt samples the moisture field and applies height modifiers: a full
// boost at or below sea level, a partial boost in the coastal band just
// above it, and a capped rain-shadow penalty with altitude. Clamped to
// [-1, 1].
func (g *Generator) MoistureAt(worldX, worldZ, height int) float64 {
	m := g.moisture.Eval2(float64(worldX)*climateFreq, float64(worldZ)*climateFreq)
	switch {
	case height <= SeaLevel:
		m += moistureSeaBoost
	case height <= SeaLevel+coastalBand:
		m += moistureCoastalBoost
	default:
		penalty := float64(height-SeaLevel) * rainShadowPerBlock
		if penalty > rainShadowCap {
			penalty = rainShadowCap
		}
		m -= penalty
	}
	return clamp(m, -1, 1)
}

// TemperatureAt samples the temperature field and applies a capped lapse
// rate above sea level. Clamped to [-1, 1].
func (g *Generator) TemperatureAt(worldX, worldZ, height int) float64 {
	t := g.temperature.Eval2(float64(worldX)*climateFreq, float64(worldZ)*climateFreq)
	if height > SeaLevel {
		drop := float64(height-SeaLevel) * lapsePerBlock
		if drop > lapseCap {
			drop = lapseCap
		}
		t -= drop
	}
	return clamp(t, -1, 1)
}

// BiomeAt derives the biome of the column at a world position by evaluating
// height, moisture and temperature. Biomes are never cached or stored.
func (g *Generator) BiomeAt(worldX, worldZ int) Biome {
	h := g.HeightAt(worldX, worldZ)
	m := g.MoistureAt(worldX, worldZ, h)
	t := g.TemperatureAt(worldX, worldZ, h)
	return ClassifyBiome(m, t, h)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
