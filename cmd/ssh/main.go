package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/spaceship/internal/asset"
	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spaceship-ssh",
	})
	if err := run(logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Load(config.GetEnv(config.EnvConfigPath, ""))
	if err != nil {
		return err
	}
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "error", workErr)
	}
	logger.Info("ssh config", "host", cfg.SSH.Host, "port", cfg.SSH.Port,
		"hostKeyPath", cfg.SSH.HostKeyPath, "workingDir", workingDir)

	// Assets are read-only after loading and shared by every session.
	assets, err := asset.Load(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load assets from %s: %w", cfg.Assets.Dir, err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware(cfg, assets, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.SSH.IdleTimeout))
	}
	if cfg.SSH.HostKeyPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SSH.HostKeyPath), 0o700); err != nil {
			return fmt.Errorf("cannot create host key directory: %w", err)
		}
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting SSH server", "address", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("failed to serve: %w", err)
	}
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Warn("sessions still open at shutdown, closing them", "error", err)
		return s.Close()
	}
	return nil
}

// gameMiddleware runs an independent game for every SSH session.
func gameMiddleware(cfg config.Config, assets *asset.Store, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLogger := logger.With("user", sess.User())
			sessLogger.Info("new game session", "terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			err := loop.Run(bufio.NewReader(sess), sess, loop.Options{
				Config:       cfg,
				Assets:       assets,
				Music:        audio.NewSilent(cfg.Audio.Volume),
				TermSizeFunc: sizeTracker.getSize,
				Renderer:     bubbletea.MakeRenderer(sess),
				Logger:       sessLogger,
				Seed:         time.Now().UnixNano(),
			})
			if err != nil {
				sessLogger.Error("game error", "error", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
