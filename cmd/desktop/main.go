package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/asset"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/desktop"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spaceship",
	})
	if err := run(logger); err != nil {
		logger.Error("game error", "error", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Load(config.GetEnv(config.EnvConfigPath, ""))
	if err != nil {
		return err
	}

	assets, err := asset.Load(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load assets from %s: %w", cfg.Assets.Dir, err)
	}

	seed := time.Now().UnixNano()
	music, err := desktop.NewMusic(cfg.Audio, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return err
	}
	if c, ok := music.(io.Closer); ok {
		defer c.Close()
	}

	return desktop.Run(desktop.New(cfg, assets, music, seed, logger))
}
