package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/voxelhaven/worldgen/internal/logging"
	"github.com/voxelhaven/worldgen/internal/store"
	"github.com/voxelhaven/worldgen/internal/world"
)

// Handler serves the read-only generation surface consumed by renderers,
// map overlays and gameplay systems.
type Handler struct {
	manager   *world.Manager
	worldName string
}

func NewHandler(manager *world.Manager, worldName string) *Handler {
	return &Handler{manager: manager, worldName: worldName}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"status":    "healthy",
		"service":   "worldgen",
		"world":     h.worldName,
		"timestamp": time.Now().Unix(),
	})
}

// GetChunk returns one chunk as an RLE voxel payload, generating it on first
// access.
func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	chunkX, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk x coordinate")
		return
	}
	chunkZ, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk z coordinate")
		return
	}

	c := h.manager.GetOrCreate(chunkX, chunkZ)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, chunkResponse{
		ChunkX: c.X,
		ChunkZ: c.Z,
		Stage:  c.Stage().String(),
		Seed:   h.manager.Generator().Seed(),
		Voxels: store.EncodeChunk(c),
	})
}

// GetSurface probes the top surface of a world column. With ?loaded=true it
// never generates, answering from cache only.
func (h *Handler) GetSurface(w http.ResponseWriter, r *http.Request) {
	worldX, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world x coordinate")
		return
	}
	worldZ, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world z coordinate")
		return
	}

	resp := surfaceResponse{WorldX: worldX, WorldZ: worldZ, Loaded: true}
	if r.URL.Query().Get("loaded") == "true" {
		height, mat, ok := h.manager.GetTopSurfaceBlockLoaded(worldX, worldZ)
		if !ok {
			resp.Loaded = false
			render.Status(r, http.StatusOK)
			render.JSON(w, r, resp)
			return
		}
		resp.Height = height
		resp.Material = mat.String()
	} else {
		height, mat := h.manager.GetTopSurfaceBlock(worldX, worldZ)
		resp.Height = height
		resp.Material = mat.String()
	}
	resp.Biome = h.manager.GetBiomeAt(worldX, worldZ).String()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// GetBiome derives the biome of a world column without generating anything.
func (h *Handler) GetBiome(w http.ResponseWriter, r *http.Request) {
	worldX, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world x coordinate")
		return
	}
	worldZ, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world z coordinate")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"world_x": worldX,
		"world_z": worldZ,
		"biome":   h.manager.GetBiomeAt(worldX, worldZ).String(),
		"height":  h.manager.Generator().HeightAt(worldX, worldZ),
	})
}

// UpdateView recenters the loaded region on a reference position; chunks in
// range are generated, distant ones evicted.
func (h *Handler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorldX int `json:"world_x"`
		WorldZ int `json:"world_z"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	h.manager.Update(req.WorldX, req.WorldZ)
	logging.GetLogger().Info("view updated", "world_x", req.WorldX, "world_z", req.WorldZ,
		"cached", h.manager.Len(), "duration", time.Since(start))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"cached_chunks":   h.manager.Len(),
		"render_distance": h.manager.RenderDistance(),
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

type chunkResponse struct {
	ChunkX int    `json:"chunk_x"`
	ChunkZ int    `json:"chunk_z"`
	Stage  string `json:"stage"`
	Seed   int64  `json:"seed"`
	Voxels string `json:"voxels"`
}

type surfaceResponse struct {
	WorldX   int    `json:"world_x"`
	WorldZ   int    `json:"world_z"`
	Height   int    `json:"height"`
	Material string `json:"material,omitempty"`
	Biome    string `json:"biome,omitempty"`
	Loaded   bool   `json:"loaded"`
}
