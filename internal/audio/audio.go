// Package audio plays the looping soundtrack.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/config"
)

// Player controls the soundtrack. Volume is on a 0..100 scale.
type Player interface {
	Play()
	Stop()
	SetVolume(v float64)
	Volume() float64
	Seek(offset time.Duration) error
}

// TrackOffsets are the start times of the pieces in the soundtrack file.
var TrackOffsets = []time.Duration{
	0, 239 * time.Second, 461 * time.Second, 572 * time.Second,
	811 * time.Second, 920 * time.Second, 1160 * time.Second, 1390 * time.Second,
	1625 * time.Second, 1800 * time.Second, 2039 * time.Second, 2261 * time.Second,
	2372 * time.Second, 2611 * time.Second, 2720 * time.Second, 2960 * time.Second,
	3190 * time.Second, 3425 * time.Second,
}

// RandomOffset picks one of the track offsets.
func RandomOffset(rng *rand.Rand) time.Duration {
	return TrackOffsets[rng.Intn(len(TrackOffsets))]
}

// ClampVolume limits v to 0..100.
func ClampVolume(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Silent is a Player that makes no sound but remembers its settings.
type Silent struct {
	mu      sync.Mutex
	volume  float64
	playing bool
	offset  time.Duration
}

// NewSilent returns a silent player at the given volume.
func NewSilent(volume float64) *Silent {
	return &Silent{volume: ClampVolume(volume)}
}

// Play marks the player as playing.
func (s *Silent) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Stop marks the player as stopped.
func (s *Silent) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// SetVolume stores v clamped to 0..100.
func (s *Silent) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = ClampVolume(v)
	s.mu.Unlock()
}

// Volume returns the stored volume.
func (s *Silent) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Seek records offset and always succeeds.
func (s *Silent) Seek(offset time.Duration) error {
	s.mu.Lock()
	s.offset = offset
	s.mu.Unlock()
	return nil
}

// Playing reports whether Play was called more recently than Stop.
func (s *Silent) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// New opens the configured soundtrack on the system speaker, starts it at a
// random track offset and loops it. Without a configured soundtrack it
// returns a Silent player.
func New(cfg config.AudioConfig, rng *rand.Rand, logger *log.Logger) (Player, error) {
	if cfg.MusicPath == "" {
		logger.Info("no soundtrack configured, playing silently")
		return NewSilent(cfg.Volume), nil
	}

	p, err := OpenSpeaker(cfg.MusicPath)
	if err != nil {
		logger.Error("could not start soundtrack", "path", cfg.MusicPath, "error", err)
		return nil, err
	}
	if err := Start(p, cfg.Volume, rng); err != nil {
		logger.Error("could not seek soundtrack", "path", cfg.MusicPath, "error", err)
		return nil, err
	}
	logger.Info("soundtrack started", "path", cfg.MusicPath)
	return p, nil
}

// Start seeks p to a random track, sets the volume and plays.
func Start(p Player, volume float64, rng *rand.Rand) error {
	if err := p.Seek(RandomOffset(rng)); err != nil {
		return err
	}
	p.SetVolume(volume)
	p.Play()
	return nil
}
