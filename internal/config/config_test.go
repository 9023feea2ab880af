package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Window.MaxPixelRatio != 2 {
		t.Errorf("expected max pixel ratio 2, got %f", cfg.Window.MaxPixelRatio)
	}

	if len(cfg.Scene.Zones) != 4 {
		t.Fatalf("expected 4 zones, got %d", len(cfg.Scene.Zones))
	}
	if cfg.Scene.Zones[0].Key != "Eka" || cfg.Scene.Zones[3].Path != "textures/room/TextureSetFour.webp" {
		t.Errorf("unexpected zone table: %+v", cfg.Scene.Zones)
	}
	if len(cfg.Scene.SkyboxFaces) != 6 {
		t.Errorf("expected 6 skybox faces, got %d", len(cfg.Scene.SkyboxFaces))
	}

	if cfg.Markers.Glass != "Glass" || cfg.Markers.Screen != "Screen" {
		t.Errorf("unexpected material markers: %+v", cfg.Markers)
	}
	if cfg.Markers.Interactive != "Raycaster" || cfg.Markers.Clickable != "Pointer" || cfg.Markers.Fan != "Fan" {
		t.Errorf("unexpected behavior markers: %+v", cfg.Markers)
	}

	if cfg.Camera.FOV != 35 {
		t.Errorf("expected fov 35, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Damping != 0.05 {
		t.Errorf("expected damping 0.05, got %f", cfg.Camera.Damping)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Debug.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Debug.ScreenshotDir)
	}
	if cfg.Scene.OverrideRoot != "" {
		t.Errorf("expected no override root, got %s", cfg.Scene.OverrideRoot)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  asset_root: "/srv/room"
  model_path: "models/Other.glb"
  zones:
    - key: "Desk"
      path: "textures/desk.webp"

markers:
  glass: "Lasi"
  screen: "Naytto"
  interactive: "Hit"
  clickable: "Click"
  fan: "Tuuletin"

modals:
  - marker: "Work"
    modal: "work"

animation:
  fan_step: 0.05
  fan_axis: [1, 0, 0]

logging:
  level: "debug"
  log_file: "room.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Scene.AssetRoot != "/srv/room" || cfg.Scene.ModelPath != "models/Other.glb" {
		t.Errorf("unexpected scene paths: %+v", cfg.Scene)
	}
	if len(cfg.Scene.Zones) != 1 || cfg.Scene.Zones[0].Key != "Desk" {
		t.Errorf("zones should be replaced by file, got %+v", cfg.Scene.Zones)
	}
	// Untouched keys keep their defaults
	if cfg.Scene.VideoPath != "textures/video/Kavelija_animaatio.mp4" {
		t.Errorf("expected default video path, got %s", cfg.Scene.VideoPath)
	}
	if cfg.Markers.Fan != "Tuuletin" {
		t.Errorf("expected fan marker 'Tuuletin', got %s", cfg.Markers.Fan)
	}
	if len(cfg.Modals) != 1 || cfg.Modals[0].Modal != "work" {
		t.Errorf("unexpected modals: %+v", cfg.Modals)
	}
	if cfg.Animation.FanStep != 0.05 || cfg.Animation.FanAxis != [3]float32{1, 0, 0} {
		t.Errorf("unexpected animation: %+v", cfg.Animation)
	}
	if cfg.Logging.LogFile != "room.log" {
		t.Errorf("expected log file 'room.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty glass marker", func(c *Config) { c.Markers.Glass = "" }, ErrEmptyMarker},
		{"empty fan marker", func(c *Config) { c.Markers.Fan = "" }, ErrEmptyMarker},
		{"empty zone key", func(c *Config) { c.Scene.Zones[1].Key = "" }, ErrEmptyZoneKey},
		{"duplicate zone key", func(c *Config) { c.Scene.Zones[1].Key = "Eka" }, ErrDuplicateKey},
		{"half modal rule", func(c *Config) { c.Modals[0].Modal = "" }, ErrModalRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "asset flags",
			setup: func() {
				*flagRoot = "/assets"
				*flagModel = "models/Test.glb"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.AssetRoot != "/assets" {
					t.Errorf("expected root /assets, got %s", cfg.Scene.AssetRoot)
				}
				if cfg.Scene.ModelPath != "models/Test.glb" {
					t.Errorf("expected model models/Test.glb, got %s", cfg.Scene.ModelPath)
				}
			},
			teardown: func() {
				*flagRoot = ""
				*flagModel = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsEmptyMarker(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("markers:\n  screen: \"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrEmptyMarker) {
		t.Errorf("Load() error = %v, want %v", err, ErrEmptyMarker)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Markers.Clickable = "Hover"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Window.Width != 1024 || loaded.Markers.Clickable != "Hover" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
