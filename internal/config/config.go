// Package config holds the viewer settings loaded from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given
const DefaultFileName = "goanatomy.yaml"

type Config struct {
	// Metadata source: local path or http(s) URL, JSON or YAML
	Metadata string `yaml:"metadata"`
	// Model file: .glb, .gltf or .stl
	Model string `yaml:"model"`

	Window     WindowConfig   `yaml:"window"`
	Camera     CameraConfig   `yaml:"camera"`
	Lighting   LightingConfig `yaml:"lighting"`
	Background [3]uint8       `yaml:"background"`
	Picking    PickingConfig  `yaml:"picking"`
	Watch      WatchConfig    `yaml:"watch"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	// Frame the loaded model instead of using Position
	AutoFit bool `yaml:"auto_fit"`
}

type LightingConfig struct {
	Ambient     float64    `yaml:"ambient"`
	Directional float64    `yaml:"directional"`
	Position    [3]float64 `yaml:"position"`
}

type PickingConfig struct {
	SkipHidden bool `yaml:"skip_hidden"`
}

type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Metadata: "data.json",
		Model:    "muscles.glb",
		Window: WindowConfig{
			Width:  1400,
			Height: 900,
			Title:  "GoAnatomy",
			FPS:    60,
		},
		Camera: CameraConfig{
			Position: [3]float64{0, 1, 3},
			Target:   [3]float64{0, 0, 0},
			FOV:      45,
			Near:     0.1,
			Far:      1000,
		},
		Lighting: LightingConfig{
			Ambient:     0.6,
			Directional: 0.8,
			Position:    [3]float64{5, 5, 5},
		},
		Background: [3]uint8{30, 30, 35},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
	}
}

// Load reads configuration from the specified file path. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills essential values a config file left empty or invalid
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Metadata == "" {
		c.Metadata = def.Metadata
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = def.Window.FPS
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = def.Camera.Far
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = def.Watch.DebounceMS
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
