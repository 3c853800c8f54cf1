package desktop

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
)

const (
	sampleRate     = 44100
	bytesPerSecond = sampleRate * 4 // 16-bit stereo
)

// MusicPlayer loops an Ogg Vorbis soundtrack through ebiten's audio context.
type MusicPlayer struct {
	file   *os.File
	player *eaudio.Player
	length time.Duration
	volume float64
}

var _ audio.Player = (*MusicPlayer)(nil)

// OpenMusic decodes the soundtrack at path into a paused, endlessly looping player.
func OpenMusic(path string) (*MusicPlayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open soundtrack %s: %w", path, err)
	}
	stream, err := vorbis.DecodeWithSampleRate(sampleRate, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode soundtrack %s: %w", path, err)
	}

	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(sampleRate)
	}
	player, err := ctx.NewPlayer(eaudio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create audio player: %w", err)
	}

	return &MusicPlayer{
		file:   f,
		player: player,
		length: time.Duration(stream.Length()) * time.Second / bytesPerSecond,
		volume: 100,
	}, nil
}

// Play starts or resumes playback.
func (m *MusicPlayer) Play() {
	m.player.Play()
}

// Stop pauses playback.
func (m *MusicPlayer) Stop() {
	m.player.Pause()
}

// SetVolume sets the volume on a 0 to 100 scale.
func (m *MusicPlayer) SetVolume(v float64) {
	m.volume = audio.ClampVolume(v)
	m.player.SetVolume(m.volume / 100)
}

// Volume returns the current volume on a 0 to 100 scale.
func (m *MusicPlayer) Volume() float64 {
	return m.volume
}

// Seek moves playback to offset, wrapping around the end of the track.
func (m *MusicPlayer) Seek(offset time.Duration) error {
	if m.length > 0 {
		offset %= m.length
	}
	if err := m.player.SetPosition(offset); err != nil {
		return fmt.Errorf("failed to seek soundtrack to %v: %w", offset, err)
	}
	return nil
}

// Close stops playback and releases the file.
func (m *MusicPlayer) Close() error {
	if err := m.player.Close(); err != nil {
		m.file.Close()
		return err
	}
	return m.file.Close()
}

// NewMusic opens the configured soundtrack and starts it at a random track
// offset. Without a configured soundtrack it returns a silent player.
func NewMusic(cfg config.AudioConfig, rng *rand.Rand, logger *log.Logger) (audio.Player, error) {
	if cfg.MusicPath == "" {
		logger.Info("no soundtrack configured, playing silently")
		return audio.NewSilent(cfg.Volume), nil
	}

	m, err := OpenMusic(cfg.MusicPath)
	if err != nil {
		logger.Error("could not start soundtrack", "path", cfg.MusicPath, "error", err)
		return nil, err
	}
	if err := audio.Start(m, cfg.Volume, rng); err != nil {
		logger.Error("could not seek soundtrack", "path", cfg.MusicPath, "error", err)
		return nil, err
	}
	logger.Info("soundtrack started", "path", cfg.MusicPath)
	return m, nil
}
