// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     SceneConfig     `yaml:"scene"`
	Markers   MarkerConfig    `yaml:"markers"`
	Modals    []ModalRule     `yaml:"modals"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MaxPixelRatio float32 `yaml:"max_pixel_ratio"`
}

// SceneConfig describes the room asset and the textures bound to it.
type SceneConfig struct {
	AssetRoot    string       `yaml:"asset_root"`    // Directory all asset paths are relative to
	OverrideRoot string       `yaml:"override_root"` // Optional directory shadowing AssetRoot
	ModelPath    string       `yaml:"model_path"`    // glTF/GLB room model
	Zones        []ZoneConfig `yaml:"zones"`         // Ordered: first substring match wins
	VideoPath    string       `yaml:"video_path"`    // Looping screen video
	SkyboxDir    string       `yaml:"skybox_dir"`    // Environment map for glass
	SkyboxFaces  []string     `yaml:"skybox_faces"`  // px, nx, py, ny, pz, nz
}

// ZoneConfig maps a zone key (mesh name substring) to its texture.
type ZoneConfig struct {
	Key  string `yaml:"key"`
	Path string `yaml:"path"`
}

// MarkerConfig holds the mesh-name substrings that carry authoring intent.
type MarkerConfig struct {
	Glass       string `yaml:"glass"`
	Screen      string `yaml:"screen"`
	Interactive string `yaml:"interactive"`
	Clickable   string `yaml:"clickable"`
	Fan         string `yaml:"fan"`
}

// ModalRule opens Modal when the clicked mesh name contains Marker.
type ModalRule struct {
	Marker string `yaml:"marker"`
	Modal  string `yaml:"modal"`
}

// AnimationConfig holds per-frame animation settings.
type AnimationConfig struct {
	FanStep float32    `yaml:"fan_step"` // Radians per frame
	FanAxis [3]float32 `yaml:"fan_axis"`
}

// CameraConfig holds the initial viewpoint and orbit control settings.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"` // Vertical, degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Damping  float32    `yaml:"damping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures
}

// Default returns a Config with the room's stock settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Portfolio Room",
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
		},
		Scene: SceneConfig{
			AssetRoot: "public",
			ModelPath: "models/Portfolio_Room.glb",
			Zones: []ZoneConfig{
				{Key: "Eka", Path: "textures/room/TextureOne.webp"},
				{Key: "Toka", Path: "textures/room/TextureTwo.webp"},
				{Key: "Kolmas", Path: "textures/room/TextureThree.webp"},
				{Key: "Neljas", Path: "textures/room/TextureSetFour.webp"},
			},
			VideoPath:   "textures/video/Kavelija_animaatio.mp4",
			SkyboxDir:   "textures/skybox",
			SkyboxFaces: []string{"px.webp", "nx.webp", "py.webp", "ny.webp", "pz.webp", "nz.webp"},
		},
		Markers: MarkerConfig{
			Glass:       "Glass",
			Screen:      "Screen",
			Interactive: "Raycaster",
			Clickable:   "Pointer",
			Fan:         "Fan",
		},
		Modals: []ModalRule{
			{Marker: "Projects", Modal: "projects"},
			{Marker: "About", Modal: "about"},
			{Marker: "Contact", Modal: "contact"},
		},
		Animation: AnimationConfig{
			FanStep: 0.01,
			FanAxis: [3]float32{0, 1, 0},
		},
		Camera: CameraConfig{
			FOV:      35,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{18.308497815998255, 8.340313483552896, 16.733946926439422},
			Target:   [3]float32{-0.04451427016691359, 1.992258015338971, -0.2691980867402935},
			Damping:  0.05,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
