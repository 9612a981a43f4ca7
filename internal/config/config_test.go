package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blockworld/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "world.yaml", `
world:
  width: 96
  depth: 80
  height: 40
  seed: 12345
  noise: fractal
  octaves: 3
client:
  fov: 90
metrics:
  addr: ":2112"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 96, cfg.World.Width)
	assert.Equal(t, 80, cfg.World.Depth)
	require.NotNil(t, cfg.World.Seed)
	assert.Equal(t, int64(12345), *cfg.World.Seed)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, world.DefaultRoughness, cfg.World.Roughness)

	opts, err := cfg.Options(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, world.NoiseFractal, opts.Noise)
	assert.Equal(t, 3, opts.Octaves)
	assert.Equal(t, 40, opts.Height)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "world.toml", `
[world]
width = 48
depth = 48
height = 32
seed = 7
roughness = 0.06
cave_threshold = 0.5

[client]
max_fps = 60
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.World.Width)
	assert.Equal(t, 32, cfg.World.Height)
	assert.InDelta(t, 0.06, cfg.World.Roughness, 1e-12)
	assert.InDelta(t, 0.5, cfg.World.CaveThreshold, 1e-12)
	require.NotNil(t, cfg.World.Seed)
	assert.Equal(t, int64(7), *cfg.World.Seed)
	assert.Equal(t, 60, cfg.Client.MaxFPS)
}

func TestLoadEnvFallback(t *testing.T) {
	path := writeFile(t, "env.yml", "world:\n  width: 20\n")
	t.Setenv(EnvPath, path)
	t.Setenv(EnvSeed, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.World.Width)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv(EnvSeed, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.World.Seed)
}

func TestLoadSeedOverride(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv(EnvSeed, "424242")
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg.World.Seed)
	assert.Equal(t, int64(424242), *cfg.World.Seed)

	t.Setenv(EnvSeed, "not-a-number")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "world.json", "{}"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "world: [1, 2"))
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	seed := int64(99)
	cfg.World.Seed = &seed
	cfg.World.Width = 72

	for _, name := range []string{"out.yaml", "out.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, cfg), name)
		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 72, got.World.Width, name)
		require.NotNil(t, got.World.Seed, name)
		assert.Equal(t, seed, *got.World.Seed, name)
	}
}

func TestSlidersMapping(t *testing.T) {
	o := Sliders{Size: 80, Height: 40, Roughness: 45, Caves: 50, Trees: 20}.Options()
	assert.Equal(t, 80, o.Width)
	assert.Equal(t, 80, o.Depth)
	assert.Equal(t, 40, o.Height)
	assert.InDelta(t, 0.045, o.Roughness, 1e-12)
	assert.InDelta(t, 0.08, o.CaveFrequency, 1e-12)
	assert.InDelta(t, 0.475, o.CaveThreshold, 1e-12)
	assert.InDelta(t, 0.10, o.TreeDensity, 1e-12)

	none := Sliders{Size: 32, Height: 32, Roughness: 30, Caves: 0, Trees: 0}.Options()
	assert.Equal(t, 0.0, none.CaveFrequency)
	assert.Equal(t, 1.0, none.CaveThreshold)
	assert.InDelta(t, 0.05, none.TreeDensity, 1e-12)
	assert.NoError(t, Validate(none))
}

func TestSlidersOverrideFileValues(t *testing.T) {
	cfg := Default()
	cfg.World.Sliders = &Sliders{Size: 24, Height: 24, Roughness: 60, Caves: 100, Trees: 100}
	seed := int64(5)
	cfg.World.Seed = &seed

	o, err := cfg.Options(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 24, o.Width)
	assert.InDelta(t, 0.12, o.CaveFrequency, 1e-12)
	assert.InDelta(t, 0.30, o.CaveThreshold, 1e-12)
	assert.InDelta(t, 0.30, o.TreeDensity, 1e-12)
	require.NotNil(t, o.Seed)
	assert.Equal(t, seed, *o.Seed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(world.Options{}))

	bad := []world.Options{
		{Width: -1},
		{Width: 2},
		{Depth: 5000},
		{Height: 1},
		{Roughness: -0.1},
		{CaveFrequency: -1},
		{CaveThreshold: 1.5},
		{TreeDensity: 2},
		{Octaves: 40},
		{Noise: world.NoiseKind(9)},
	}
	for _, o := range bad {
		err := Validate(o)
		require.Error(t, err, "%+v", o)
		assert.True(t, errors.Is(err, ErrInvalidOptions), "%+v", o)
	}

	cfg := Default()
	cfg.World.Noise = "simplex"
	_, err := cfg.Options(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestClientSettingsClamp(t *testing.T) {
	defer SetFOV(GetFOV())
	SetFOV(500)
	assert.Equal(t, float32(120), GetFOV())
	SetFOV(1)
	assert.Equal(t, float32(30), GetFOV())

	before := GetSensitivity()
	SetSensitivity(-1)
	assert.Equal(t, before, GetSensitivity())

	defer SetMaxFPS(GetMaxFPS())
	ApplyClient(ClientSection{FOV: 90, MaxFPS: 144})
	assert.Equal(t, float32(90), GetFOV())
	assert.Equal(t, 144, GetMaxFPS())
}
