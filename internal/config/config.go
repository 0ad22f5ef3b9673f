package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultFrameRate   = 120.0
	DefaultSensitivity = 0.8
	DefaultRadius      = 2.0
	DefaultTheta       = 1.5707963267948966
	DefaultPhi         = 1.5707963267948966
	DefaultLibraryDir  = "savedAnimations"
	DefaultAppName     = "rigposer"
)

type Config struct {
	Window    WindowConfig            `yaml:"window"`
	Animation AnimationConfig         `yaml:"animation"`
	Drag      DragConfig              `yaml:"drag"`
	Camera    CameraConfig            `yaml:"camera"`
	Storage   StorageConfig           `yaml:"storage"`
	Prefs     PrefsConfig             `yaml:"prefs"`
	TUI       TUIConfig               `yaml:"tui"`
	Presets   map[string]PoseSettings `yaml:"presets,omitempty"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
	Theme  string `yaml:"theme"`
}

type AnimationConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
	Loop      bool    `yaml:"loop"`
	Speed     float64 `yaml:"speed"`
}

type DragConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`
}

type CameraConfig struct {
	Radius float64    `yaml:"radius"`
	Theta  float64    `yaml:"theta"`
	Phi    float64    `yaml:"phi"`
	Target [3]float64 `yaml:"target,flow"`
	Fovy   float64    `yaml:"fovy"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type PrefsConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"app_name"`
}

type TUIConfig struct {
	FPS        int    `yaml:"fps"`
	Theme      string `yaml:"theme"`
	PlotWidth  int    `yaml:"plot_width"`
	PlotHeight int    `yaml:"plot_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  "rigposer",
			Theme:  "dark",
		},
		Animation: AnimationConfig{
			FrameRate: DefaultFrameRate,
			Loop:      true,
			Speed:     1.0,
		},
		Drag: DragConfig{Sensitivity: DefaultSensitivity},
		Camera: CameraConfig{
			Radius: DefaultRadius,
			Theta:  DefaultTheta,
			Phi:    DefaultPhi,
			Target: [3]float64{0, 1, 0},
			Fovy:   45,
		},
		Storage: StorageConfig{Dir: DefaultLibraryDir},
		Prefs:   PrefsConfig{Enabled: true, AppName: DefaultAppName},
		TUI: TUIConfig{
			FPS:        30,
			Theme:      "neon",
			PlotWidth:  60,
			PlotHeight: 10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// LoadOrDefault loads path when it is set, the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = def.Window.Width, def.Window.Height
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = def.Window.FPS
	}
	if c.Animation.FrameRate <= 0 {
		c.Animation.FrameRate = def.Animation.FrameRate
	}
	if c.Animation.Speed < 0 {
		c.Animation.Speed = 0
	}
	if c.Drag.Sensitivity <= 0 {
		c.Drag.Sensitivity = def.Drag.Sensitivity
	}
	if c.Camera.Radius <= 0 {
		c.Camera.Radius = def.Camera.Radius
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		c.Camera.Fovy = def.Camera.Fovy
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = def.Storage.Dir
	}
	if c.Prefs.AppName == "" {
		c.Prefs.AppName = def.Prefs.AppName
	}
	if c.TUI.FPS <= 0 {
		c.TUI.FPS = def.TUI.FPS
	}
}
