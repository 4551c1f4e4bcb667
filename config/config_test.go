package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "spotify*", cfg.PrimaryPattern)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5000, cfg.ScatterMaxRows)
	assert.Equal(t, uint64(7), cfg.ScatterSeed)
	assert.Equal(t, 15, cfg.TopN)
	assert.Equal(t, 300, cfg.ArtistLimit)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "tracklens_tracks", cfg.MirrorTable)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRACKLENS_DATA_DIR", "/srv/tracks")
	t.Setenv("TRACKLENS_SCATTER_SEED", "42")
	t.Setenv("TRACKLENS_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/tracks", cfg.DataDir)
	assert.Equal(t, uint64(42), cfg.ScatterSeed)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("TRACKLENS_TOP_N", "many")
	_, err := Load()
	assert.Error(t, err)
}
