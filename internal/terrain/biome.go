package terrain

import (
	"github.com/voxelhaven/worldgen/internal/block"
)

// Biome classifies a world column by climate. Biomes are never stored: they
// are re-derived from moisture, temperature and height wherever needed, so
// classification must stay a pure function of those inputs.
type Biome uint8

const (
	Tundra Biome = iota
	Boreal
	Temperate
	Desert
	Tropical
	Ocean

	biomeCount
)

var biomeNames = [...]string{
	Tundra:    "tundra",
	Boreal:    "boreal",
	Temperate: "temperate",
	Desert:    "desert",
	Tropical:  "tropical",
	Ocean:     "ocean",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// ClassifyBiome maps a (moisture, temperature, height) triple to exactly one
// biome. The bands partition the input space: strict < comparisons, first
// match wins, checked coldest to warmest.
func ClassifyBiome(moisture, temperature float64, height int) Biome {
	if height < SeaLevel-2 {
		return Ocean
	}
	switch {
	case temperature < -0.5:
		return Tundra
	case temperature < -0.15:
		return Boreal
	case temperature < 0.4:
		if moisture < -0.2 {
			return Desert
		}
		return Temperate
	default:
		if moisture < 0.1 {
			return Desert
		}
		return Tropical
	}
}

// surfaceBlocks maps a biome to the block exposed at the surface on land.
var surfaceBlocks = [biomeCount]block.Material{
	Tundra:    block.Gravel,
	Boreal:    block.Grass,
	Temperate: block.Grass,
	Desert:    block.Sand,
	Tropical:  block.Grass,
	Ocean:     block.Sand,
}

// SurfaceBlock returns the surface material for a biome on dry land.
func SurfaceBlock(b Biome) block.Material {
	return surfaceBlocks[b]
}

// clayBlocks maps a biome to its clay variant, used both for underwater
// surfaces outside oceans and for subsurface clay lenses.
var clayBlocks = [biomeCount]block.Material{
	Tundra:    block.GrayClay,
	Boreal:    block.GrayClay,
	Temperate: block.Clay,
	Desert:    block.RedClay,
	Tropical:  block.RedClay,
	Ocean:     block.Clay,
}

// ClayBlock returns the clay variant for a biome.
func ClayBlock(b Biome) block.Material {
	return clayBlocks[b]
}

// riverParams shape river carving per biome: band is the half-width of the
// river-noise window, depth the maximum carve at the river center line.
type riverParams struct {
	band  float64
	depth float64
}

// Ocean carries a zero band: no rivers at sea.
var riverTable = [biomeCount]riverParams{
	Tundra:    {band: 0.015, depth: 3},
	Boreal:    {band: 0.02, depth: 4},
	Temperate: {band: 0.025, depth: 6},
	Desert:    {band: 0.02, depth: 4},
	Tropical:  {band: 0.03, depth: 8},
	Ocean:     {band: 0, depth: 0},
}

// caveParams tune the carver per biome. minDepth keeps caves from breaking
// through the surface; the ocean entry effectively disables carving.
type caveParams struct {
	scale     float64
	threshold float64
	minDepth  int
}

var caveTable = [biomeCount]caveParams{
	Tundra:    {scale: 0.045, threshold: 0.72, minDepth: 10},
	Boreal:    {scale: 0.05, threshold: 0.70, minDepth: 8},
	Temperate: {scale: 0.055, threshold: 0.68, minDepth: 7},
	Desert:    {scale: 0.06, threshold: 0.66, minDepth: 6},
	Tropical:  {scale: 0.065, threshold: 0.62, minDepth: 5},
	Ocean:     {scale: 0.05, threshold: 0.99, minDepth: 100},
}
