package world

import (
	"sync"
	"time"

	"github.com/voxelhaven/worldgen/internal/block"
	"github.com/voxelhaven/worldgen/internal/logging"
	"github.com/voxelhaven/worldgen/internal/terrain"
)

const (
	// DefaultRenderDistance is the chunk radius kept generated around the
	// reference point.
	DefaultRenderDistance = 8

	// evictionSlack widens the retention radius beyond the render
	// distance so chunks on the boundary do not thrash as the reference
	// point moves back and forth.
	evictionSlack = 2
)

// Populator mutates a freshly generated chunk in place. Populators run
// strictly after terrain generation and strictly in registration order;
// each must complete before the next starts. Stage names the lifecycle tag
// the chunk carries once the populator has run.
type Populator interface {
	Name() string
	Stage() GenStage
	Populate(c *Chunk)
}

// Manager owns the coordinate-keyed chunk cache. At most one chunk instance
// exists per coordinate; a cache miss triggers exactly one generation pass
// before insertion. The cache is guarded by a mutex so a single generation
// discipline holds even when callers come from multiple goroutines; the
// underlying noise fields are immutable and shared freely.
type Manager struct {
	gen            *terrain.Generator
	populators     []Populator
	renderDistance int

	mu     sync.Mutex
	chunks map[ChunkCoord]*Chunk
}

// NewManager creates a chunk manager around a terrain generator. Populators
// run in the given order on every newly generated chunk (structure stamping
// before vegetation seeding).
func NewManager(gen *terrain.Generator, renderDistance int, populators ...Populator) *Manager {
	if renderDistance <= 0 {
		renderDistance = DefaultRenderDistance
	}
	return &Manager{
		gen:            gen,
		populators:     populators,
		renderDistance: renderDistance,
		chunks:         make(map[ChunkCoord]*Chunk),
	}
}

// Generator exposes the terrain generator for read-only column queries.
func (m *Manager) Generator() *terrain.Generator {
	return m.gen
}

// RenderDistance returns the configured load radius in chunks.
func (m *Manager) RenderDistance() int {
	return m.renderDistance
}

// GetOrCreate returns the cached chunk at (chunkX, chunkZ), generating it on
// first access. Repeated calls return the same instance until eviction.
func (m *Manager) GetOrCreate(chunkX, chunkZ int) *Chunk {
	coord := ChunkCoord{X: chunkX, Z: chunkZ}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.chunks[coord]; ok {
		return c
	}

	c := NewChunk(chunkX, chunkZ)
	m.generate(c)
	m.chunks[coord] = c
	return c
}

// Lookup returns the cached chunk and whether it exists, never generating.
func (m *Manager) Lookup(chunkX, chunkZ int) (*Chunk, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chunks[ChunkCoord{X: chunkX, Z: chunkZ}]
	return c, ok
}

// Evict removes the chunk at the given coordinate from the cache. The next
// GetOrCreate regenerates it; determinism guarantees identical content.
func (m *Manager) Evict(chunkX, chunkZ int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	coord := ChunkCoord{X: chunkX, Z: chunkZ}
	if _, ok := m.chunks[coord]; !ok {
		return false
	}
	delete(m.chunks, coord)
	return true
}

// Len returns the number of cached chunks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks)
}

// Coords returns the coordinates of all cached chunks.
func (m *Manager) Coords() []ChunkCoord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChunkCoord, 0, len(m.chunks))
	for coord := range m.chunks {
		out = append(out, coord)
	}
	return out
}

// generate runs the three-stage pipeline on a fresh chunk: terrain columns,
// then each populator in order. Height and biome are evaluated once per
// column and reused down it. Callers must hold m.mu.
func (m *Manager) generate(c *Chunk) {
	logger := logging.WithChunkCoords(c.X, c.Z)
	start := time.Now()

	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			wx := c.X*ChunkSizeX + lx
			wz := c.Z*ChunkSizeZ + lz
			h := m.gen.HeightAt(wx, wz)
			mo := m.gen.MoistureAt(wx, wz, h)
			t := m.gen.TemperatureAt(wx, wz, h)
			b := terrain.ClassifyBiome(mo, t, h)
			m.gen.FillColumn(c, lx, lz, wx, wz, h, ChunkSizeY, b)
		}
	}
	c.advance(StageTerrainReady)

	for _, p := range m.populators {
		p.Populate(c)
		c.advance(p.Stage())
	}
	c.advance(StageReady)
	c.MarkMeshDirty()

	logger.Debug("chunk generated", "duration", time.Since(start), "populators", len(m.populators))
}

// Update recenters the loaded region on a reference position in world block
// coordinates: every chunk within the render distance of the reference chunk
// is generated if absent, and chunks farther than renderDistance+2 are
// evicted. The hysteresis band between the two radii prevents churn at the
// boundary.
func (m *Manager) Update(referenceX, referenceZ int) {
	ref := WorldToChunk(referenceX, referenceZ)

	for dx := -m.renderDistance; dx <= m.renderDistance; dx++ {
		for dz := -m.renderDistance; dz <= m.renderDistance; dz++ {
			m.GetOrCreate(ref.X+dx, ref.Z+dz)
		}
	}

	evicted := 0
	m.mu.Lock()
	for coord := range m.chunks {
		if chebyshev(coord, ref) > m.renderDistance+evictionSlack {
			delete(m.chunks, coord)
			evicted++
		}
	}
	remaining := len(m.chunks)
	m.mu.Unlock()

	if evicted > 0 {
		logging.GetLogger().Debug("evicted distant chunks", "evicted", evicted, "cached", remaining, "ref_x", ref.X, "ref_z", ref.Z)
	}
}

// GetBlock reads a voxel by world coordinates, generating the backing chunk
// when absent.
func (m *Manager) GetBlock(worldX, worldY, worldZ int) block.Material {
	coord := WorldToChunk(worldX, worldZ)
	c := m.GetOrCreate(coord.X, coord.Z)
	lx, lz := WorldToLocal(worldX, worldZ)
	return c.Get(lx, worldY, lz)
}

// SetBlock writes a voxel by world coordinates, generating the backing chunk
// when absent. Out-of-range heights are dropped by the chunk accessor.
func (m *Manager) SetBlock(worldX, worldY, worldZ int, mat block.Material) {
	coord := WorldToChunk(worldX, worldZ)
	c := m.GetOrCreate(coord.X, coord.Z)
	lx, lz := WorldToLocal(worldX, worldZ)
	c.Set(lx, worldY, lz, mat)
}

// GetTopSurfaceBlock scans the column at (worldX, worldZ) top-down and
// returns the height and material of the first non-air voxel, generating the
// chunk when absent.
func (m *Manager) GetTopSurfaceBlock(worldX, worldZ int) (int, block.Material) {
	coord := WorldToChunk(worldX, worldZ)
	c := m.GetOrCreate(coord.X, coord.Z)
	lx, lz := WorldToLocal(worldX, worldZ)
	return c.TopSurface(lx, lz)
}

// GetTopSurfaceBlockLoaded is the non-generating variant: it returns
// (-1, air, false) when the backing chunk is not cached. Safe for map
// overlays that must never stall on generation.
func (m *Manager) GetTopSurfaceBlockLoaded(worldX, worldZ int) (int, block.Material, bool) {
	coord := WorldToChunk(worldX, worldZ)
	c, ok := m.Lookup(coord.X, coord.Z)
	if !ok {
		return -1, block.Air, false
	}
	lx, lz := WorldToLocal(worldX, worldZ)
	h, mat := c.TopSurface(lx, lz)
	return h, mat, true
}

// GetBiomeAt derives the biome of the column at world coordinates. Pure
// evaluation; no chunk is generated or consulted.
func (m *Manager) GetBiomeAt(worldX, worldZ int) terrain.Biome {
	return m.gen.BiomeAt(worldX, worldZ)
}
