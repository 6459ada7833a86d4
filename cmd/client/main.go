// Package main is the entry point for the Lowpoly demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/game"
	"github.com/Faultbox/lowpoly/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		}
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	defer logger.Sync()

	logger.Info("=== Lowpoly ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		// Fatal exits without running deferred calls
		logger.Sync()
		logger.Fatal("failed to start", zap.Error(err))
	}

	if err := g.Run(); err != nil {
		g.Close()
		logger.Sync()
		logger.Fatal("game error", zap.Error(err))
	}
	g.Close()

	logger.Info("game closed normally")
}
