package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/voxelhaven/worldgen/internal/api"
	"github.com/voxelhaven/worldgen/internal/config"
	"github.com/voxelhaven/worldgen/internal/logging"
	"github.com/voxelhaven/worldgen/internal/store"
	"github.com/voxelhaven/worldgen/internal/structure"
	"github.com/voxelhaven/worldgen/internal/terrain"
	"github.com/voxelhaven/worldgen/internal/vegetation"
	"github.com/voxelhaven/worldgen/internal/world"
)

func main() {
	cfg := config.Load()

	logging.Init()
	logging.SetLevel(cfg.Logging.Level)
	logger := logging.GetLogger()
	logger.Debug("configuration loaded", "port", cfg.Server.Port, "db_path", cfg.Database.Path, "world", cfg.World.Name)

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	if err := store.Migrate(db, cfg.Database.MigrationsURL); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	chunkStore := store.New(db)
	worldRow, err := chunkStore.GetOrCreateWorld(context.Background(), cfg.World.Name, cfg.World.Seed)
	if err != nil {
		logger.Fatal("failed to resolve world", "error", err)
	}
	logger.Info("world resolved", "world", worldRow.Name, "seed", worldRow.Seed, "id", worldRow.ID)

	// The stored seed wins over configuration so a reopened world keeps
	// regenerating identical terrain.
	gen := terrain.NewGenerator(worldRow.Seed)
	manager := world.NewManager(gen, cfg.World.RenderDistance,
		structure.NewStamper(gen),
		vegetation.NewSeeder(gen),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go autosaveLoop(ctx, manager, chunkStore, worldRow.ID, cfg.World.AutosaveEvery)

	handler := api.NewHandler(manager, worldRow.Name)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting worldgen server", "port", cfg.Server.Port, "render_distance", cfg.World.RenderDistance)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Final flush so nothing generated this session is lost.
	if n, err := saveAll(shutdownCtx, manager, chunkStore, worldRow.ID); err != nil {
		logger.Error("final save failed", "error", err)
	} else {
		logger.Info("server exited", "chunks_saved", n)
	}
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// autosaveLoop periodically flushes every cached chunk to the store.
// Determinism makes losing a flush harmless, but saved chunks spare the
// server regenerating them after a restart with player edits applied.
func autosaveLoop(ctx context.Context, manager *world.Manager, chunkStore *store.Store, worldID string, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			n, err := saveAll(ctx, manager, chunkStore, worldID)
			if err != nil {
				log.Error("autosave failed", "error", err, "duration", time.Since(start))
				continue
			}
			log.Debug("autosave complete", "chunks", n, "duration", time.Since(start))
		}
	}
}

func saveAll(ctx context.Context, manager *world.Manager, chunkStore *store.Store, worldID string) (int, error) {
	saved := 0
	for _, coord := range manager.Coords() {
		c, ok := manager.Lookup(coord.X, coord.Z)
		if !ok {
			continue
		}
		if err := chunkStore.SaveChunk(ctx, worldID, c); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}
