package object

import (
	"math/rand"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// AsteroidSpawner launches asteroids from the arena edges on a fixed cadence.
type AsteroidSpawner struct {
	cfg      config.AsteroidConfig
	step     float64
	arena    arena
	sheets   Sheets
	rng      *rand.Rand
	cooldown float64
	counter  int
}

// NewAsteroidSpawner creates a spawner. rng drives every random choice.
func NewAsteroidSpawner(cfg config.Config, sheets Sheets, rng *rand.Rand) *AsteroidSpawner {
	return &AsteroidSpawner{
		cfg:      cfg.Asteroids,
		step:     cfg.Arena.CooldownStep,
		arena:    arena{width: cfg.Arena.Width, height: cfg.Arena.Height, margin: cfg.Asteroids.PruneMargin},
		sheets:   sheets,
		rng:      rng,
		cooldown: cfg.Asteroids.SpawnInterval,
	}
}

// Tick advances the spawn cooldown by one frame and returns a new asteroid
// when it expires, or nil.
func (s *AsteroidSpawner) Tick() *Asteroid {
	if !tickCooldown(&s.cooldown, s.step) {
		return nil
	}
	s.cooldown = s.cfg.SpawnInterval
	return s.Spawn()
}

// Spawn creates the next asteroid in the tier cycle immediately.
func (s *AsteroidSpawner) Spawn() *Asteroid {
	s.counter++
	tier := TierFor(s.counter)

	w, h := s.arena.width, s.arena.height
	var pos physics.Vec
	switch s.rng.Intn(4) {
	case 0: // top
		pos = physics.Vec{X: s.rng.Float64() * w, Y: 0}
	case 1: // right
		pos = physics.Vec{X: w, Y: s.rng.Float64() * h}
	case 2: // bottom
		pos = physics.Vec{X: s.rng.Float64() * w, Y: h}
	default: // left
		pos = physics.Vec{X: 0, Y: s.rng.Float64() * h}
	}

	j := s.cfg.SpawnJitter
	target := physics.Vec{
		X: w/2 + (s.rng.Float64()*2-1)*j,
		Y: h/2 + (s.rng.Float64()*2-1)*j,
	}
	speed := (s.cfg.SpeedMin + s.rng.Float64()*s.cfg.SpeedSpread) * s.cfg.SpeedMultiplier

	spin := float64(s.rng.Intn(s.cfg.MaxSpin) + 1)
	if s.rng.Intn(2) == 0 {
		spin = -spin
	}

	return &Asteroid{
		Position: pos,
		Velocity: target.Sub(pos).Normalize().Scale(speed),
		Spin:     spin,
		Tier:     tier,
		Large:    tier == TierLarge,
		sheet:    s.sheets.SheetFor(tier),
		scale:    physics.Vec{X: s.cfg.ScaleX, Y: s.cfg.ScaleY},
		arena:    s.arena,
	}
}

// Count returns how many asteroids have been spawned since the last reset.
func (s *AsteroidSpawner) Count() int {
	return s.counter
}

// Cooldown returns the time left before the next spawn, in cooldown units.
func (s *AsteroidSpawner) Cooldown() float64 {
	return s.cooldown
}

// Reset restarts the cadence and the tier cycle.
func (s *AsteroidSpawner) Reset() {
	s.cooldown = s.cfg.SpawnInterval
	s.counter = 0
}
