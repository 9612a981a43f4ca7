package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"blockworld/internal/metrics"
	"blockworld/internal/world"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the config file when Load gets an empty path.
const EnvPath = "BLOCKWORLD_CONFIG"

// EnvSeed overrides the world seed from the environment.
const EnvSeed = "BLOCKWORLD_SEED"

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid world options")

// File is the on-disk configuration, readable as YAML or TOML.
type File struct {
	World   WorldSection   `yaml:"world" toml:"world"`
	Client  ClientSection  `yaml:"client" toml:"client"`
	Metrics MetricsSection `yaml:"metrics" toml:"metrics"`
}

// WorldSection mirrors world.Options. When Sliders is set it replaces the
// size and shape fields.
type WorldSection struct {
	Width         int      `yaml:"width" toml:"width"`
	Depth         int      `yaml:"depth" toml:"depth"`
	Height        int      `yaml:"height" toml:"height"`
	Seed          *int64   `yaml:"seed,omitempty" toml:"seed,omitempty"`
	Roughness     float64  `yaml:"roughness" toml:"roughness"`
	CaveFrequency float64  `yaml:"cave_frequency" toml:"cave_frequency"`
	CaveThreshold float64  `yaml:"cave_threshold" toml:"cave_threshold"`
	TreeDensity   float64  `yaml:"tree_density" toml:"tree_density"`
	Noise         string   `yaml:"noise" toml:"noise"`
	Octaves       int      `yaml:"octaves" toml:"octaves"`
	Sliders       *Sliders `yaml:"sliders,omitempty" toml:"sliders,omitempty"`
}

type ClientSection struct {
	FOV         float64 `yaml:"fov" toml:"fov"`
	Sensitivity float64 `yaml:"sensitivity" toml:"sensitivity"`
	MaxFPS      int     `yaml:"max_fps" toml:"max_fps"`
}

type MetricsSection struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Sliders are the raw settings form values: size and height in blocks,
// roughness in thousandths, caves and trees in percent.
type Sliders struct {
	Size      int `yaml:"size" toml:"size"`
	Height    int `yaml:"height" toml:"height"`
	Roughness int `yaml:"roughness" toml:"roughness"`
	Caves     int `yaml:"caves" toml:"caves"`
	Trees     int `yaml:"trees" toml:"trees"`
}

// DefaultSliders reproduce the default world.
func DefaultSliders() Sliders {
	return Sliders{Size: 64, Height: 48, Roughness: 45, Caves: 60, Trees: 20}
}

// Options maps slider values to world options. Zero caves disables carving
// entirely.
func (s Sliders) Options() world.Options {
	cave := float64(s.Caves) / 100
	tree := float64(s.Trees) / 100

	o := world.Options{
		Width:       s.Size,
		Depth:       s.Size,
		Height:      s.Height,
		Roughness:   float64(s.Roughness) / 1000,
		TreeDensity: 0.05 + tree*0.25,
	}
	if cave == 0 {
		o.CaveFrequency = 0
		o.CaveThreshold = 1
	} else {
		o.CaveFrequency = 0.04 + cave*0.08
		o.CaveThreshold = 0.65 - cave*0.35
	}
	return o
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		World: WorldSection{
			Width:         world.DefaultWidth,
			Depth:         world.DefaultDepth,
			Height:        world.DefaultHeight,
			Roughness:     world.DefaultRoughness,
			CaveFrequency: world.DefaultCaveFrequency,
			CaveThreshold: world.DefaultCaveThreshold,
			TreeDensity:   world.DefaultTreeDensity,
			Noise:         world.NoisePerlin.String(),
		},
		Client: ClientSection{FOV: 75, Sensitivity: 0.002},
	}
}

// Load reads a YAML or TOML file chosen by extension.
// If path is empty, it tries the BLOCKWORLD_CONFIG environment variable and
// otherwise returns Default(). BLOCKWORLD_SEED, when set, overrides the seed.
func Load(path string) (*File, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.World.Seed = &seed
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *File) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg *File) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ParseNoise maps a config name to a noise kind. Empty selects Perlin.
func ParseNoise(name string) (world.NoiseKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "perlin":
		return world.NoisePerlin, nil
	case "fractal":
		return world.NoiseFractal, nil
	default:
		return 0, fmt.Errorf("%w: unknown noise %q", ErrInvalidOptions, name)
	}
}

// Options converts the world section into validated world options.
func (f *File) Options(log *slog.Logger, rec *metrics.Recorder) (world.Options, error) {
	s := f.World
	kind, err := ParseNoise(s.Noise)
	if err != nil {
		return world.Options{}, err
	}

	o := world.Options{
		Width:         s.Width,
		Depth:         s.Depth,
		Height:        s.Height,
		Roughness:     s.Roughness,
		CaveFrequency: s.CaveFrequency,
		CaveThreshold: s.CaveThreshold,
		TreeDensity:   s.TreeDensity,
	}
	if s.Sliders != nil {
		o = s.Sliders.Options()
	}
	if s.Seed != nil {
		seed := *s.Seed
		o.Seed = &seed
	}
	o.Noise = kind
	o.Octaves = s.Octaves
	o.Log = log
	o.Metrics = rec

	if err := Validate(o); err != nil {
		return world.Options{}, err
	}
	return o, nil
}

const (
	minHorizontal = 4
	maxHorizontal = 1024
	minVertical   = 4
	maxVertical   = 256
)

// Validate rejects options world.New must not receive. Zero fields are
// accepted since they select defaults.
func Validate(o world.Options) error {
	check := func(name string, v, lo, hi int) error {
		if v == 0 {
			return nil
		}
		if v < lo || v > hi {
			return fmt.Errorf("%w: %s %d outside [%d,%d]", ErrInvalidOptions, name, v, lo, hi)
		}
		return nil
	}
	if err := check("width", o.Width, minHorizontal, maxHorizontal); err != nil {
		return err
	}
	if err := check("depth", o.Depth, minHorizontal, maxHorizontal); err != nil {
		return err
	}
	if err := check("height", o.Height, minVertical, maxVertical); err != nil {
		return err
	}
	if err := check("octaves", o.Octaves, 1, 16); err != nil {
		return err
	}
	if o.Roughness < 0 {
		return fmt.Errorf("%w: negative roughness %g", ErrInvalidOptions, o.Roughness)
	}
	if o.CaveFrequency < 0 {
		return fmt.Errorf("%w: negative cave frequency %g", ErrInvalidOptions, o.CaveFrequency)
	}
	if o.CaveThreshold < -1 || o.CaveThreshold > 1 {
		return fmt.Errorf("%w: cave threshold %g outside [-1,1]", ErrInvalidOptions, o.CaveThreshold)
	}
	if o.TreeDensity > 1 {
		return fmt.Errorf("%w: tree density %g above 1", ErrInvalidOptions, o.TreeDensity)
	}
	if o.Noise != world.NoisePerlin && o.Noise != world.NoiseFractal {
		return fmt.Errorf("%w: noise kind %d", ErrInvalidOptions, o.Noise)
	}
	return nil
}
