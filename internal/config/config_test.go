package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warpdrive.yaml")

	c := Default()
	c.Driver = "st7735"
	c.Scene.Seed = 42
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "st7735", got.Driver)
	assert.Equal(t, int64(42), got.Scene.Seed)
	assert.Equal(t, 160, got.Width)
}

// Partial files keep defaults for everything they omit.
func TestLoadMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: st7735\nscene:\n  seed: 7\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "st7735", got.Driver)
	assert.Equal(t, int64(7), got.Scene.Seed)
	assert.Equal(t, 16, got.FPS.WarpMs, "omitted fields keep defaults")
	assert.Equal(t, 32767, got.Input.FullScale)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
