package audio

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// SpeakerPlayer streams an Ogg Vorbis file to the system speaker.
type SpeakerPlayer struct {
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	gain   *effects.Volume
	volume float64
}

// OpenSpeaker decodes the file at path and attaches it, paused, to the speaker.
func OpenSpeaker(path string) (*SpeakerPlayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open soundtrack %s: %w", path, err)
	}
	stream, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode soundtrack %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond)); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to initialise speaker: %w", err)
	}

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, stream), Paused: true}
	gain := &effects.Volume{Streamer: ctrl, Base: 2}
	speaker.Play(gain)

	return &SpeakerPlayer{
		stream: stream,
		format: format,
		ctrl:   ctrl,
		gain:   gain,
		volume: 100,
	}, nil
}

// Play starts or resumes playback.
func (p *SpeakerPlayer) Play() {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

// Stop pauses playback.
func (p *SpeakerPlayer) Stop() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// SetVolume sets the volume on a 0 to 100 scale.
func (p *SpeakerPlayer) SetVolume(v float64) {
	v = ClampVolume(v)
	exp, silent := gainExponent(v)
	speaker.Lock()
	p.volume = v
	p.gain.Volume = exp
	p.gain.Silent = silent
	speaker.Unlock()
}

// Volume returns the current volume on a 0 to 100 scale.
func (p *SpeakerPlayer) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return p.volume
}

// Seek moves playback to offset, wrapping around the end of the track.
func (p *SpeakerPlayer) Seek(offset time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()

	n := p.stream.Len()
	if n <= 0 {
		return nil
	}
	pos := p.format.SampleRate.N(offset) % n
	if err := p.stream.Seek(pos); err != nil {
		return fmt.Errorf("failed to seek soundtrack to %v: %w", offset, err)
	}
	return nil
}

// Close stops playback and releases the speaker and the file.
func (p *SpeakerPlayer) Close() error {
	speaker.Clear()
	speaker.Close()
	return p.stream.Close()
}

// gainExponent maps a 0..100 volume onto a base-2 exponent for
// effects.Volume. Zero is silence.
func gainExponent(v float64) (float64, bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(v / 100), false
}
