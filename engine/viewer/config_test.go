package viewer

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero fov", func(c *Config) { c.Camera.FovDegrees = 0 }},
		{"fov at half turn", func(c *Config) { c.Camera.FovDegrees = 180 }},
		{"zero near plane", func(c *Config) { c.Camera.Near = 0 }},
		{"far behind near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"unsupported msaa", func(c *Config) { c.Render.MSAA = 2 }},
		{"clear channel above one", func(c *Config) { c.Render.ClearColor[1] = 1.5 }},
		{"clear channel negative", func(c *Config) { c.Render.ClearColor[3] = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := "window:\n  title: partial\n  width: 1280\n  height: 720\nrender:\n  msaa: 8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Window.Title != "partial" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %+v, want overridden title and size", cfg.Window)
	}
	if cfg.Render.MSAA != 8 {
		t.Errorf("msaa = %d, want 8", cfg.Render.MSAA)
	}

	def := DefaultConfig()
	if cfg.Camera != def.Camera {
		t.Errorf("camera = %+v, want defaults %+v", cfg.Camera, def.Camera)
	}
	if cfg.Light != def.Light {
		t.Errorf("light = %+v, want defaults %+v", cfg.Light, def.Light)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing file) = nil, want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("window: [not, a, mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig(malformed yaml) = nil, want error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("render:\n  msaa: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("LoadConfig(invalid msaa) = nil, want error")
	}
}

func TestFovRadians(t *testing.T) {
	c := CameraConfig{FovDegrees: 90}
	if got := c.FovRadians(); math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("FovRadians() = %v, want pi/2", got)
	}
}
