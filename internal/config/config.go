// Package config loads renderer settings for the voronoi command from
// an optional YAML file.
//
// Example file:
//
//	width: 1280
//	height: 720
//	seeds: 500
//	capacity: 2048
//	rng_seed: 42
//	backend: auto
//	workers: 0
//	output: diagram.png
//	background: "#000000"
//	store: ~/.voronoi/seeds.db
//
// Command-line flags override values loaded from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gogpu/voronoi"
	"gopkg.in/yaml.v3"
)

// MaxFileSize is the largest config file Load accepts.
const MaxFileSize = 1 << 20

var (
	// ErrWorldWritable is returned for config files any user can modify.
	ErrWorldWritable = errors.New("config: file is world-writable")

	// ErrTooLarge is returned for config files larger than MaxFileSize.
	ErrTooLarge = errors.New("config: file too large")

	// ErrInvalid is returned when a loaded or merged config fails validation.
	ErrInvalid = errors.New("config: invalid value")
)

// Backend selects where frames are evaluated.
type Backend string

const (
	BackendCPU  Backend = "cpu"
	BackendGPU  Backend = "gpu"
	BackendAuto Backend = "auto" // GPU if available, else CPU
)

// Config holds the settings for one run of the voronoi command.
type Config struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Seeds    int     `yaml:"seeds"`
	Capacity int     `yaml:"capacity"`
	RNGSeed  *uint64 `yaml:"rng_seed"` // nil draws from the global source
	Backend  Backend `yaml:"backend"`
	Workers  int     `yaml:"workers"`
	Output   string  `yaml:"output"`

	// Background is a hex color used when no seeds are active.
	Background string `yaml:"background"`

	// Store is the path of the SQLite seed snapshot database.
	Store string `yaml:"store"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:      800,
		Height:     600,
		Seeds:      voronoi.DefaultCapacity,
		Capacity:   voronoi.DefaultCapacity,
		Backend:    BackendAuto,
		Output:     "voronoi.png",
		Background: "#000000",
		Store:      "voronoi.db",
	}
}

// Load reads path and overlays it on Default. Keys missing from the
// file keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	// Windows permission bits do not reflect ACLs.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		return Config{}, fmt.Errorf("%w: %s (mode %s)", ErrWorldWritable, path, info.Mode())
	}
	if info.Size() > MaxFileSize {
		return Config{}, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, Default())
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	voronoi.Logger().Debug("config: loaded", "path", path, "size", info.Size())
	return cfg, nil
}

// Parse decodes YAML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ExpandPaths replaces a leading "~" in Output and Store with the
// user's home directory.
func (c *Config) ExpandPaths() error {
	var err error
	if c.Output, err = ExpandHome(c.Output); err != nil {
		return err
	}
	c.Store, err = ExpandHome(c.Store)
	return err
}

// ExpandHome expands "~" and "~/..." to the user's home directory.
// Other paths, including "~user/...", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalid, c.Capacity)
	case c.Seeds < 0:
		return fmt.Errorf("%w: seeds %d", ErrInvalid, c.Seeds)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	switch c.Backend {
	case BackendCPU, BackendGPU, BackendAuto:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (voronoi.RGBA, error) {
	col, err := voronoi.ParseHex(c.Background)
	if err != nil {
		return voronoi.RGBA{}, fmt.Errorf("%w: background %q", ErrInvalid, c.Background)
	}
	return col, nil
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	seed := "random"
	if c.RNGSeed != nil {
		seed = fmt.Sprint(*c.RNGSeed)
	}
	return slog.GroupValue(
		slog.String("size", fmt.Sprintf("%dx%d", c.Width, c.Height)),
		slog.Int("seeds", c.Seeds),
		slog.Int("capacity", c.Capacity),
		slog.String("rng_seed", seed),
		slog.String("backend", string(c.Backend)),
	)
}
