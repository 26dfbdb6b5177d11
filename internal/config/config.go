package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/san-kum/plexus/internal/field"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	DefaultPath       = "plexus.yaml"
	DefaultDataDir    = ".plexus"
	DefaultTheme      = "neon"
	DefaultFPS        = 30
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
	DefaultAddr       = ":8080"
	DefaultZone       = "Asia/Kolkata"
	DefaultZoneLabel  = "IST"

	// EnvPrefix marks environment overrides. Nested keys use a double
	// underscore: PLEXUS_FIELD__DENSITY -> field.density.
	EnvPrefix = "PLEXUS_"
)

type Config struct {
	Theme      string           `yaml:"theme" koanf:"theme"`
	FPS        int              `yaml:"fps" koanf:"fps"`
	Seed       int64            `yaml:"seed" koanf:"seed"`
	DataDir    string           `yaml:"data_dir" koanf:"data_dir"`
	Profile    string           `yaml:"profile" koanf:"profile"`
	Field      field.Params     `yaml:"field" koanf:"field"`
	Terminal   TerminalConfig   `yaml:"terminal" koanf:"terminal"`
	Window     WindowConfig     `yaml:"window" koanf:"window"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Clock      ClockConfig      `yaml:"clock" koanf:"clock"`
	Typewriter TypewriterConfig `yaml:"typewriter" koanf:"typewriter"`
}

// TerminalConfig holds the terminal page layout. Distances are in rows.
type TerminalConfig struct {
	CellWidth       float64 `yaml:"cell_width" koanf:"cell_width"`
	CellHeight      float64 `yaml:"cell_height" koanf:"cell_height"`
	ScrolledAfter   int     `yaml:"scrolled_after" koanf:"scrolled_after"`
	ActiveOffset    int     `yaml:"active_offset" koanf:"active_offset"`
	ScrollOffset    int     `yaml:"scroll_offset" koanf:"scroll_offset"`
	RevealThreshold float64 `yaml:"reveal_threshold" koanf:"reveal_threshold"`
	RevealMargin    int     `yaml:"reveal_margin" koanf:"reveal_margin"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" koanf:"width"`
	Height int    `yaml:"height" koanf:"height"`
	Title  string `yaml:"title" koanf:"title"`
}

type ServerConfig struct {
	Addr   string  `yaml:"addr" koanf:"addr"`
	FPS    int     `yaml:"fps" koanf:"fps"`
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
	// MaxWidth and MaxHeight bound the surface a client may resize to.
	MaxWidth  float64 `yaml:"max_width" koanf:"max_width"`
	MaxHeight float64 `yaml:"max_height" koanf:"max_height"`
}

type ClockConfig struct {
	Zone     string        `yaml:"zone" koanf:"zone"`
	Label    string        `yaml:"label" koanf:"label"`
	Interval time.Duration `yaml:"interval" koanf:"interval"`
}

type TypewriterConfig struct {
	TypeDelay   time.Duration `yaml:"type_delay" koanf:"type_delay"`
	DeleteDelay time.Duration `yaml:"delete_delay" koanf:"delete_delay"`
	HoldDelay   time.Duration `yaml:"hold_delay" koanf:"hold_delay"`
	NextDelay   time.Duration `yaml:"next_delay" koanf:"next_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:   DefaultTheme,
		FPS:     DefaultFPS,
		DataDir: DefaultDataDir,
		Field:   field.DefaultParams(),
		Terminal: TerminalConfig{
			CellWidth:       DefaultCellWidth,
			CellHeight:      DefaultCellHeight,
			ScrolledAfter:   6,
			ActiveOffset:    6,
			ScrollOffset:    5,
			RevealThreshold: 0.1,
			RevealMargin:    6,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "plexus",
		},
		Server: ServerConfig{
			Addr:   DefaultAddr,
			FPS:    DefaultFPS,
			Width:     1280,
			Height:    2400,
			MaxWidth:  3840,
			MaxHeight: 8640,
		},
		Clock: ClockConfig{
			Zone:     DefaultZone,
			Label:    DefaultZoneLabel,
			Interval: time.Second,
		},
		Typewriter: TypewriterConfig{
			TypeDelay:   50 * time.Millisecond,
			DeleteDelay: 25 * time.Millisecond,
			HoldDelay:   1500 * time.Millisecond,
			NextDelay:   300 * time.Millisecond,
		},
	}
}

// Load reads configuration from the given YAML file, if present, then
// overlays PLEXUS_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if c.FPS < 0 || c.Server.FPS < 0 {
		return fmt.Errorf("fps must be non-negative")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive")
	}
	if c.Terminal.ScrollOffset >= c.Terminal.ActiveOffset {
		return fmt.Errorf("terminal scroll offset must be below the active offset")
	}
	if c.Server.Width <= 0 || c.Server.Height <= 0 {
		return fmt.Errorf("server surface size must be positive")
	}
	if c.Server.Width > c.Server.MaxWidth || c.Server.Height > c.Server.MaxHeight {
		return fmt.Errorf("server surface %vx%v exceeds max %vx%v",
			c.Server.Width, c.Server.Height, c.Server.MaxWidth, c.Server.MaxHeight)
	}
	if c.Clock.Interval <= 0 {
		return fmt.Errorf("clock interval must be positive")
	}
	return nil
}

// ApplyPreset replaces the field parameters with a named preset, keeping colors.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	colors := [3]field.Color{c.Field.PointColor, c.Field.LinkColor, c.Field.PointerColor}
	c.Field = *p
	c.Field.PointColor, c.Field.LinkColor, c.Field.PointerColor = colors[0], colors[1], colors[2]
	return nil
}
