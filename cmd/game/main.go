package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/spaceship/internal/asset"
	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/loop"
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
	music, err := audio.New(cfg.Audio, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return err
	}
	if c, ok := music.(io.Closer); ok {
		defer c.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// The screen belongs to the game until it exits.
	logger.SetLevel(log.ErrorLevel)

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.Options{
		Config: cfg,
		Assets: assets,
		Music:  music,
		Logger: logger,
		Seed:   seed,
	})
}
