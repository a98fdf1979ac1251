// Package store persists generated chunks in SQLite. It is a consumer of the
// generation core: it reads grids through GetRaw and writes them back through
// the chunk set accessors, and owns its own encoding. Generation itself never
// touches the database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"

	"github.com/voxelhaven/worldgen/internal/logging"
	"github.com/voxelhaven/worldgen/internal/world"
)

// ErrNotFound is returned when a world or chunk row does not exist.
var ErrNotFound = errors.New("store: not found")

// World is one persisted world row. The seed recorded here must be used for
// any regeneration, or loaded and fresh chunks would disagree.
type World struct {
	ID        string
	Name      string
	Seed      int64
	CreatedAt time.Time
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle. Run Migrate before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies pending schema migrations from the given source URL
// (typically file://.../internal/store/migrations).
func Migrate(db *sql.DB, sourceURL string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	logging.GetLogger().Debug("store migrations applied", "source", sourceURL)
	return nil
}

// GetOrCreateWorld returns the world row by name, inserting it with the given
// seed on first use. An existing row keeps its stored seed even if the
// configured seed changed; the caller must generate with the returned seed.
func (s *Store) GetOrCreateWorld(ctx context.Context, name string, seed int64) (World, error) {
	w, err := s.getWorldByName(ctx, name)
	if err == nil {
		if w.Seed != seed {
			logging.GetLogger().Warn("configured seed differs from stored world seed, using stored",
				"world", name, "configured", seed, "stored", w.Seed)
		}
		return w, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return World{}, err
	}

	w = World{
		ID:        uuid.New().String(),
		Name:      name,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO worlds (id, name, seed, created_at) VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Seed, w.CreatedAt)
	if err != nil {
		return World{}, fmt.Errorf("insert world %q: %w", name, err)
	}
	logging.WithWorldSeed(seed).Info("created world", "world", name, "id", w.ID)
	return w, nil
}

func (s *Store) getWorldByName(ctx context.Context, name string) (World, error) {
	var w World
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, seed, created_at FROM worlds WHERE name = ?`, name).
		Scan(&w.ID, &w.Name, &w.Seed, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return World{}, ErrNotFound
	}
	if err != nil {
		return World{}, fmt.Errorf("query world %q: %w", name, err)
	}
	return w, nil
}

// SaveChunk upserts one chunk's voxel grid for a world.
func (s *Store) SaveChunk(ctx context.Context, worldID string, c *world.Chunk) error {
	payload := EncodeChunk(c)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks (world_id, chunk_x, chunk_z, voxels, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (world_id, chunk_x, chunk_z)
		 DO UPDATE SET voxels = excluded.voxels, saved_at = excluded.saved_at`,
		worldID, c.X, c.Z, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save chunk (%d,%d): %w", c.X, c.Z, err)
	}
	return nil
}

// LoadChunk reads one chunk's voxel grid back into a fresh chunk instance.
// Returns ErrNotFound when the chunk was never saved.
func (s *Store) LoadChunk(ctx context.Context, worldID string, chunkX, chunkZ int) (*world.Chunk, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT voxels FROM chunks WHERE world_id = ? AND chunk_x = ? AND chunk_z = ?`,
		worldID, chunkX, chunkZ).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query chunk (%d,%d): %w", chunkX, chunkZ, err)
	}

	c := world.NewChunk(chunkX, chunkZ)
	if err := DecodeChunk(c, payload); err != nil {
		return nil, fmt.Errorf("chunk (%d,%d): %w", chunkX, chunkZ, err)
	}
	return c, nil
}

// CountChunks returns the number of saved chunks for a world.
func (s *Store) CountChunks(ctx context.Context, worldID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE world_id = ?`, worldID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}
