package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World   WorldConfig   `toml:"world"`
	Atlas   AtlasConfig   `toml:"atlas"`
	Loop    LoopConfig    `toml:"loop"`
	Player  PlayerConfig  `toml:"player"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
	Audio   AudioConfig   `toml:"audio"`
	Paths   PathsConfig   `toml:"paths"`
}

type WorldConfig struct {
	CellSize   int    `toml:"cell_size"`
	Chunk      [3]int `toml:"chunk"`
	Seed       uint32 `toml:"seed"`
	BaseHeight int    `toml:"base_height"` // world y of the lowest surface
	Amplitude  int    `toml:"amplitude"`
	Period     int    `toml:"period"` // height lattice spacing in cells
}

type AtlasConfig struct {
	TileSize int `toml:"tile_size"`
	Width    int `toml:"width"`
	Height   int `toml:"height"`
}

type LoopConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
}

type PlayerConfig struct {
	Speed           float64 `toml:"speed"`
	JumpSpeed       float64 `toml:"jump_speed"`
	Reach           float64 `toml:"reach"`
	EyeHeight       float64 `toml:"eye_height"`
	LookSensitivity float64 `toml:"look_sensitivity"` // radians per pointer cell
}

type PhysicsConfig struct {
	Gravity float64 `toml:"gravity"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

type PathsConfig struct {
	Palette string `toml:"palette"` // empty uses the built-in palette
	Script  string `toml:"script"`  // empty runs the built-in sample script
}

// Load reads path over Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load that falls back to Default when path does not exist
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML over Default and validates the result
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects sizes and rates the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.World.CellSize <= 0:
		return fmt.Errorf("world.cell_size must be positive, got %d", c.World.CellSize)
	case c.World.Amplitude < 0:
		return fmt.Errorf("world.amplitude must not be negative, got %d", c.World.Amplitude)
	case c.Atlas.TileSize <= 0 || c.Atlas.Width <= 0 || c.Atlas.Height <= 0:
		return fmt.Errorf("atlas dimensions must be positive")
	case c.Atlas.Width%c.Atlas.TileSize != 0 || c.Atlas.Height%c.Atlas.TileSize != 0:
		return fmt.Errorf("atlas %dx%d is not a multiple of tile %d", c.Atlas.Width, c.Atlas.Height, c.Atlas.TileSize)
	case c.Loop.FrameInterval <= 0:
		return fmt.Errorf("loop.frame_interval must be positive")
	case c.Player.Reach <= 0:
		return fmt.Errorf("player.reach must be positive")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume must be within 0..1, got %g", c.Audio.Volume)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate must be positive")
	}
	return nil
}

// Default mirrors asset.DefaultConfig
func Default() *Config {
	return &Config{
		World: WorldConfig{
			CellSize:   32,
			Seed:       1337,
			BaseHeight: 6,
			Amplitude:  8,
			Period:     12,
		},
		Atlas: AtlasConfig{
			TileSize: 16,
			Width:    256,
			Height:   64,
		},
		Loop: LoopConfig{
			FrameInterval: 33 * time.Millisecond,
		},
		Player: PlayerConfig{
			Speed:           5,
			JumpSpeed:       8,
			Reach:           6,
			EyeHeight:       1.6,
			LookSensitivity: 0.05,
		},
		Physics: PhysicsConfig{
			Gravity: -24,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "voxelworld.log",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.3,
			SampleRate: 44100,
		},
	}
}
