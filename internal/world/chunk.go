package world

import (
	"github.com/voxelhaven/worldgen/internal/block"
)

// Chunk dimensions. The horizontal footprint and height are fixed world
// constants; changing them invalidates every stored world.
const (
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16
)

// ChunkCoord addresses a chunk on the fixed horizontal grid.
type ChunkCoord struct {
	X, Z int
}

// GenStage tags how far a chunk has progressed through the generation
// pipeline. The stages are strictly ordered: terrain completes before
// structures, structures before vegetation.
type GenStage uint8

const (
	StageEmpty GenStage = iota
	StageTerrainReady
	StageStructuresApplied
	StageVegetationApplied
	StageReady
)

var stageNames = [...]string{
	StageEmpty:             "empty",
	StageTerrainReady:      "terrain_ready",
	StageStructuresApplied: "structures_applied",
	StageVegetationApplied: "vegetation_applied",
	StageReady:             "ready",
}

func (s GenStage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Chunk is a dense 16x256x16 voxel grid. It is created empty (all air) and
// filled exactly once by the generation pipeline. Accessors are total:
// out-of-range reads return air, out-of-range writes are dropped.
type Chunk struct {
	X, Z int

	voxels    [ChunkSizeX * ChunkSizeY * ChunkSizeZ]block.Material
	stage     GenStage
	meshDirty bool
}

// NewChunk allocates an empty, ungenerated chunk at the given chunk
// coordinates.
func NewChunk(x, z int) *Chunk {
	return &Chunk{X: x, Z: z}
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// Voxel order is row-major: x outer, y middle, z inner. Serializers rely on
// this order being fixed.
func voxelIndex(x, y, z int) int {
	return (x*ChunkSizeY+y)*ChunkSizeZ + z
}

// Get returns the material at chunk-local coordinates, or air when the
// coordinates fall outside the chunk.
func (c *Chunk) Get(x, y, z int) block.Material {
	if !inBounds(x, y, z) {
		return block.Air
	}
	return c.voxels[voxelIndex(x, y, z)]
}

// GetRaw is the serializer-facing read. It is identical to Get and exists so
// save/load consumers depend on a name that will not grow side effects.
func (c *Chunk) GetRaw(x, y, z int) block.Material {
	return c.Get(x, y, z)
}

// Set writes a material at chunk-local coordinates and flags the chunk for a
// mesh rebuild. Out-of-range writes are silently dropped.
func (c *Chunk) Set(x, y, z int, m block.Material) {
	if !inBounds(x, y, z) {
		return
	}
	c.voxels[voxelIndex(x, y, z)] = m
	c.meshDirty = true
}

// SetFast writes without touching the mesh-dirty flag. Used during bulk
// generation, which marks the chunk dirty once at the end instead of per
// voxel.
func (c *Chunk) SetFast(x, y, z int, m block.Material) {
	if !inBounds(x, y, z) {
		return
	}
	c.voxels[voxelIndex(x, y, z)] = m
}

// Stage returns the chunk's generation lifecycle tag.
func (c *Chunk) Stage() GenStage {
	return c.stage
}

// advance moves the lifecycle tag forward; it never moves backwards.
func (c *Chunk) advance(s GenStage) {
	if s > c.stage {
		c.stage = s
	}
}

// Generated reports whether the chunk has completed the full pipeline.
func (c *Chunk) Generated() bool {
	return c.stage == StageReady
}

// NeedsMeshRebuild reports whether voxels changed since the consumer last
// cleared the flag.
func (c *Chunk) NeedsMeshRebuild() bool {
	return c.meshDirty
}

// ClearMeshDirty is called by the mesher after consuming the chunk.
func (c *Chunk) ClearMeshDirty() {
	c.meshDirty = false
}

// MarkMeshDirty flags the chunk for a rebuild. The pipeline calls this once
// after bulk generation.
func (c *Chunk) MarkMeshDirty() {
	c.meshDirty = true
}

// TopSurface scans the column top-down and returns the height and material
// of the first non-air voxel, or (-1, air) for an all-air column.
func (c *Chunk) TopSurface(x, z int) (int, block.Material) {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		return -1, block.Air
	}
	for y := ChunkSizeY - 1; y >= 0; y-- {
		if m := c.voxels[voxelIndex(x, y, z)]; m != block.Air {
			return y, m
		}
	}
	return -1, block.Air
}
