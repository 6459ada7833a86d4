package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and overlay")
	flagAssets     = flag.String("assets", "", "Asset root directory")
	flagShaders    = flag.String("shaders", "", "Load shaders from this directory and watch for changes")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMute       = flag.Bool("mute", false, "Disable ambient audio")
	flagSeed       = flag.Int64("seed", 0, "World placement seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowDebug = true
	}
	if *flagAssets != "" {
		cfg.Assets.Root = *flagAssets
	}
	if *flagShaders != "" {
		cfg.Assets.ShaderDir = *flagShaders
		cfg.Assets.WatchShaders = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
}
