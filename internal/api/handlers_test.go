package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelhaven/worldgen/internal/store"
	"github.com/voxelhaven/worldgen/internal/terrain"
	"github.com/voxelhaven/worldgen/internal/world"
)

func newTestServer(t *testing.T) (*httptest.Server, *world.Manager) {
	t.Helper()
	gen := terrain.NewGenerator(12345)
	manager := world.NewManager(gen, 1)
	srv := httptest.NewServer(SetupRoutes(NewHandler(manager, "testworld")))
	t.Cleanup(srv.Close)
	return srv, manager
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]interface{}
	resp := getJSON(t, srv.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "testworld", body["world"])
}

func TestGetChunk(t *testing.T) {
	srv, manager := newTestServer(t)

	var body struct {
		ChunkX int    `json:"chunk_x"`
		ChunkZ int    `json:"chunk_z"`
		Stage  string `json:"stage"`
		Seed   int64  `json:"seed"`
		Voxels string `json:"voxels"`
	}
	resp := getJSON(t, srv.URL+"/api/v1/chunks/2/-3", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, body.ChunkX)
	assert.Equal(t, -3, body.ChunkZ)
	assert.Equal(t, "ready", body.Stage)
	assert.Equal(t, int64(12345), body.Seed)
	require.NotEmpty(t, body.Voxels)

	// The payload decodes back into the chunk the manager is serving.
	c, ok := manager.Lookup(2, -3)
	require.True(t, ok, "serving a chunk caches it")
	decoded := world.NewChunk(2, -3)
	require.NoError(t, store.DecodeChunk(decoded, body.Voxels))
	h, mat := c.TopSurface(8, 8)
	dh, dmat := decoded.TopSurface(8, 8)
	assert.Equal(t, h, dh)
	assert.Equal(t, mat, dmat)
}

func TestGetChunk_BadCoordinates(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/v1/chunks/abc/0",
		"/api/v1/chunks/0/abc",
	} {
		var body map[string]string
		resp := getJSON(t, srv.URL+path, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.NotEmpty(t, body["error"])
	}
}

func TestGetSurface(t *testing.T) {
	srv, manager := newTestServer(t)

	t.Run("generating probe", func(t *testing.T) {
		var body struct {
			WorldX   int    `json:"world_x"`
			WorldZ   int    `json:"world_z"`
			Height   int    `json:"height"`
			Material string `json:"material"`
			Biome    string `json:"biome"`
			Loaded   bool   `json:"loaded"`
		}
		resp := getJSON(t, srv.URL+"/api/v1/surface/40/40", &body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 40, body.WorldX)
		assert.True(t, body.Loaded)
		assert.GreaterOrEqual(t, body.Height, 1)
		assert.NotEmpty(t, body.Material)
		assert.NotEmpty(t, body.Biome)
	})

	t.Run("cache-only probe misses on a cold column", func(t *testing.T) {
		_, ok := manager.Lookup(world.WorldToChunk(400, 400).X, world.WorldToChunk(400, 400).Z)
		require.False(t, ok)

		var body struct {
			Loaded bool `json:"loaded"`
		}
		resp := getJSON(t, srv.URL+"/api/v1/surface/400/400?loaded=true", &body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, body.Loaded)
	})
}

func TestGetBiome(t *testing.T) {
	srv, manager := newTestServer(t)

	var body struct {
		Biome  string `json:"biome"`
		Height int    `json:"height"`
	}
	resp := getJSON(t, srv.URL+"/api/v1/biomes/123/-456", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body.Biome)
	assert.GreaterOrEqual(t, body.Height, 1)
	assert.Equal(t, 0, manager.Len(), "biome queries must not generate chunks")
}

func TestUpdateView(t *testing.T) {
	srv, manager := newTestServer(t)

	payload, _ := json.Marshal(map[string]int{"world_x": 0, "world_z": 0})
	resp, err := http.Post(srv.URL+"/api/v1/view", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		CachedChunks   int `json:"cached_chunks"`
		RenderDistance int `json:"render_distance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, body.RenderDistance)
	assert.Equal(t, 9, body.CachedChunks)
	assert.Equal(t, 9, manager.Len())
}

func TestUpdateView_BadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/view", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
