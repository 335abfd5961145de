package viewer

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig controls the native window the viewer opens.
type WindowConfig struct {
	// Title is the window title bar text.
	Title string `yaml:"title"`

	// Width and Height are the initial window dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Resizable allows the user to resize the window. The surface and camera
	// aspect follow automatically.
	Resizable bool `yaml:"resizable"`
}

// CameraConfig sets the initial view. The viewer's orbit controls mutate the
// eye position afterwards; target, fov and clip planes stay fixed.
type CameraConfig struct {
	// Eye is the initial camera position in world space.
	Eye [3]float32 `yaml:"eye"`

	// Target is the orbit center the camera looks at.
	Target [3]float32 `yaml:"target"`

	// FovDegrees is the vertical field of view in degrees.
	FovDegrees float32 `yaml:"fov_degrees"`

	// Near and Far are the clip plane distances.
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// LightConfig sets the single directional-style light's colors and its
// world-space position.
type LightConfig struct {
	Ambient  [3]float32 `yaml:"ambient"`
	Diffuse  [3]float32 `yaml:"diffuse"`
	Specular [3]float32 `yaml:"specular"`
	Position [3]float32 `yaml:"position"`
}

// RenderConfig controls surface presentation and which passes run.
type RenderConfig struct {
	// ClearColor is the RGBA clear color, each channel in [0, 1].
	ClearColor [4]float64 `yaml:"clear_color"`

	// MSAA is the multisample count: 1, 4, 8 or 16.
	MSAA int `yaml:"msaa"`

	// VSync locks presentation to the display refresh rate.
	VSync bool `yaml:"vsync"`

	// EdgePass draws the inverted-hull outlines after the color pass.
	EdgePass bool `yaml:"edge_pass"`

	// DepthView starts the viewer in the grayscale linearized-depth
	// visualization instead of the lit color output.
	DepthView bool `yaml:"depth_view"`
}

// Config is the root viewer configuration, loadable from YAML.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`
	Render RenderConfig `yaml:"render"`
}

// DefaultConfig returns a configuration that renders a model centered at the
// origin with MMD-style neutral lighting on a white background.
//
// Returns:
//   - Config: the default viewer configuration
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "mmd viewer",
			Width:     800,
			Height:    600,
			Resizable: true,
		},
		Camera: CameraConfig{
			Eye:        [3]float32{0, 10, -30},
			Target:     [3]float32{0, 10, 0},
			FovDegrees: 45,
			Near:       0.1,
			Far:        200,
		},
		Light: LightConfig{
			Ambient:  [3]float32{1, 1, 1},
			Diffuse:  [3]float32{0.6, 0.6, 0.6},
			Specular: [3]float32{0.95, 0.95, 0.95},
			Position: [3]float32{-0.5, 1.0, -0.5},
		},
		Render: RenderConfig{
			ClearColor: [4]float64{1, 1, 1, 1},
			MSAA:       4,
			VSync:      true,
			EdgePass:   true,
			DepthView:  false,
		},
	}
}

// LoadConfig reads a YAML configuration file, layering it over the defaults
// so a partial file only overrides what it names.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed, or validated
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the viewer cannot run with.
//
// Returns:
//   - error: the first problem found, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("fov %.1f degrees must be in (0, 180)", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 {
		return fmt.Errorf("near plane %.3f must be positive", c.Camera.Near)
	}
	if c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("far plane %.3f must be beyond near plane %.3f", c.Camera.Far, c.Camera.Near)
	}
	switch c.Render.MSAA {
	case 1, 4, 8, 16:
	default:
		return fmt.Errorf("msaa %d must be 1, 4, 8 or 16", c.Render.MSAA)
	}
	for i, ch := range c.Render.ClearColor {
		if ch < 0 || ch > 1 || math.IsNaN(ch) {
			return fmt.Errorf("clear color channel %d value %.3f must be in [0, 1]", i, ch)
		}
	}
	return nil
}

// FovRadians converts the configured vertical field of view to radians.
//
// Returns:
//   - float32: the field of view in radians
func (c *CameraConfig) FovRadians() float32 {
	return c.FovDegrees * math.Pi / 180
}
