package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds teapa configuration.
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Viewport   ViewportConfig   `toml:"viewport"`
	Loop       LoopConfig       `toml:"loop"`
	Log        LogConfig        `toml:"log"`
	UI         UIConfig         `toml:"ui"`
}

// SimulationConfig tunes the force layout.
type SimulationConfig struct {
	LinkDistance    float64 `toml:"link_distance"`
	LinkStrength    float64 `toml:"link_strength"`
	ChargeStrength  float64 `toml:"charge_strength"` // negative repels
	CollideRadius   float64 `toml:"collide_radius"`
	CollideStrength float64 `toml:"collide_strength"`
	CenterStrength  float64 `toml:"center_strength"`
	AlphaMin        float64 `toml:"alpha_min"`
	AlphaDecay      float64 `toml:"alpha_decay"`
	VelocityDecay   float64 `toml:"velocity_decay"`
	DragAlphaTarget float64 `toml:"drag_alpha_target"`
	InitialSpread   float64 `toml:"initial_spread"`
	Seed            int64   `toml:"seed"` // 0 seeds from the clock
	MaxTicks        int     `toml:"max_ticks"`
}

// ViewportConfig describes the drawing surface.
type ViewportConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	MinScale   float64 `toml:"min_scale"`
	MaxScale   float64 `toml:"max_scale"`
	NodeRadius float64 `toml:"node_radius"`
}

// LoopConfig controls the interactive frame loop.
type LoopConfig struct {
	FPS int `toml:"fps"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			LinkDistance:    80,
			LinkStrength:    0.8,
			ChargeStrength:  -260,
			CollideRadius:   18,
			CollideStrength: 1,
			CenterStrength:  1,
			AlphaMin:        0.001,
			AlphaDecay:      0.0228,
			VelocityDecay:   0.4,
			DragAlphaTarget: 0.3,
			InitialSpread:   100,
			MaxTicks:        600,
		},
		Viewport: ViewportConfig{
			Width:      960,
			Height:     600,
			MinScale:   0.25,
			MaxScale:   3,
			NodeRadius: 10,
		},
		Loop: LoopConfig{FPS: 60},
		Log:  LogConfig{Level: "info", Format: "text"},
		UI:   UIConfig{Color: true},
	}
}

// ConfigDir returns the teapa config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "teapa")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file. A missing, unreadable or invalid file yields
// defaults.
func Load() *Config {
	cfg, _ := LoadChecked()
	return cfg
}

// LoadChecked is Load that also reports why the file at Path was rejected.
// The returned config is always usable; a missing file is not an error.
func LoadChecked() (*Config, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFile reads a config from an explicit path, starting from defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}

// Validate reports values the view cannot work with.
func (c *Config) Validate() error {
	v := c.Viewport
	switch {
	case v.MinScale <= 0:
		return fmt.Errorf("viewport.min_scale must be positive, got %v", v.MinScale)
	case v.MaxScale < v.MinScale:
		return fmt.Errorf("viewport.max_scale (%v) is below min_scale (%v)", v.MaxScale, v.MinScale)
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("viewport size must be positive, got %vx%v", v.Width, v.Height)
	case v.NodeRadius <= 0:
		return fmt.Errorf("viewport.node_radius must be positive, got %v", v.NodeRadius)
	}

	s := c.Simulation
	switch {
	case s.AlphaMin <= 0 || s.AlphaMin >= 1:
		return fmt.Errorf("simulation.alpha_min must be in (0, 1), got %v", s.AlphaMin)
	case s.AlphaDecay <= 0 || s.AlphaDecay >= 1:
		return fmt.Errorf("simulation.alpha_decay must be in (0, 1), got %v", s.AlphaDecay)
	case s.VelocityDecay < 0 || s.VelocityDecay > 1:
		return fmt.Errorf("simulation.velocity_decay must be in [0, 1], got %v", s.VelocityDecay)
	case s.CollideRadius < 0 || s.LinkDistance < 0:
		return fmt.Errorf("simulation distances must not be negative")
	case s.MaxTicks <= 0:
		return fmt.Errorf("simulation.max_ticks must be positive, got %d", s.MaxTicks)
	}

	if c.Loop.FPS <= 0 {
		return fmt.Errorf("loop.fps must be positive, got %d", c.Loop.FPS)
	}
	return nil
}
