// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	World    WorldConfig    `yaml:"world"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`
	NearPlane  float32 `yaml:"near_plane"`
	FarPlane   float32 `yaml:"far_plane"`
	ShowDebug  bool    `yaml:"show_debug"`
}

// CameraConfig holds orbit camera input sensitivities.
type CameraConfig struct {
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"` // degrees per pixel
	PitchSensitivity float32 `yaml:"pitch_sensitivity"` // degrees per pixel
	ZoomSensitivity  float32 `yaml:"zoom_sensitivity"`  // units per wheel notch
}

// AudioConfig holds ambient sound settings.
type AudioConfig struct {
	Enabled        bool    `yaml:"enabled"`
	MasterVolume   float64 `yaml:"master_volume"`
	AmbienceVolume float64 `yaml:"ambience_volume"`
	DayTrack       string  `yaml:"day_track"`
	NightTrack     string  `yaml:"night_track"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root         string `yaml:"root"`
	ShaderDir    string `yaml:"shader_dir"`    // overrides embedded shaders when set
	WatchShaders bool   `yaml:"watch_shaders"` // recompile on change
}

// WorldConfig controls the demo scene.
type WorldConfig struct {
	Seed    int64 `yaml:"seed"`
	Trees   int   `yaml:"trees"`
	LowPoly int   `yaml:"low_poly_trees"`
	Grass   int   `yaml:"grass"`
	Flowers int   `yaml:"flowers"`
	Ferns   int   `yaml:"ferns"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        70,
			NearPlane:  0.1,
			FarPlane:   1000,
		},
		Camera: CameraConfig{
			OrbitSensitivity: 0.1,
			PitchSensitivity: 0.1,
			ZoomSensitivity:  1.1,
		},
		Audio: AudioConfig{
			Enabled:        true,
			MasterVolume:   0.8,
			AmbienceVolume: 0.6,
			DayTrack:       "audio/day.wav",
			NightTrack:     "audio/night.wav",
		},
		Assets: AssetsConfig{
			Root: "res",
		},
		World: WorldConfig{
			Seed:    1,
			Trees:   500,
			LowPoly: 500,
			Grass:   500,
			Flowers: 500,
			Ferns:   500,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
