package world

// floorDiv divides rounding toward negative infinity, so chunk indices stay
// consistent across the origin (world x -1 belongs to chunk -1, local 15).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv: always in [0, b).
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// WorldToChunk maps world block coordinates to the containing chunk
// coordinate.
func WorldToChunk(worldX, worldZ int) ChunkCoord {
	return ChunkCoord{X: floorDiv(worldX, ChunkSizeX), Z: floorDiv(worldZ, ChunkSizeZ)}
}

// WorldToLocal maps world block coordinates to chunk-local coordinates,
// always non-negative.
func WorldToLocal(worldX, worldZ int) (int, int) {
	return floorMod(worldX, ChunkSizeX), floorMod(worldZ, ChunkSizeZ)
}

// chebyshev is the chessboard distance between two chunk coordinates, the
// metric used for load and eviction radii.
func chebyshev(a, b ChunkCoord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}
