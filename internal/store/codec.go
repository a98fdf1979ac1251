package store

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/voxelhaven/worldgen/internal/block"
	"github.com/voxelhaven/worldgen/internal/world"
)

// Voxel payload codec: run-length pairs of (material, run) as uvarints,
// base64-encoded for storage in a TEXT column. Voxels are traversed in the
// chunk's documented row-major order (x outer, y middle, z inner), so a
// decoded grid reproduces the original cell for cell.

const chunkVolume = world.ChunkSizeX * world.ChunkSizeY * world.ChunkSizeZ

// EncodeChunk serializes a chunk's voxel grid to the RLE text payload.
func EncodeChunk(c *world.Chunk) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	current := c.GetRaw(0, 0, 0)
	run := 0
	flush := func() {
		n := binary.PutUvarint(tmp[:], uint64(current))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])
	}

	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				m := c.GetRaw(x, y, z)
				if m == current {
					run++
					continue
				}
				flush()
				current = m
				run = 1
			}
		}
	}
	flush()

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeChunk fills a chunk's voxel grid from an RLE text payload produced by
// EncodeChunk. The payload must decode to exactly one chunk volume.
func DecodeChunk(c *world.Chunk, payload string) error {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decode chunk payload: %w", err)
	}

	x, y, z := 0, 0, 0
	total := 0
	for i := 0; i < len(raw); {
		id, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return fmt.Errorf("bad material varint at offset %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return fmt.Errorf("bad run varint at offset %d", i)
		}
		i += n

		m := block.Material(id)
		if !m.Valid() {
			return fmt.Errorf("unknown material %d in payload", id)
		}
		if total+int(run) > chunkVolume {
			return fmt.Errorf("payload overflows chunk volume: %d", total+int(run))
		}

		for k := 0; k < int(run); k++ {
			c.SetFast(x, y, z, m)
			z++
			if z == world.ChunkSizeZ {
				z = 0
				y++
				if y == world.ChunkSizeY {
					y = 0
					x++
				}
			}
		}
		total += int(run)
	}

	if total != chunkVolume {
		return fmt.Errorf("payload underflows chunk volume: %d of %d", total, chunkVolume)
	}
	c.MarkMeshDirty()
	return nil
}
