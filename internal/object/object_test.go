package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/physics"
)

func testSheets() Sheets {
	return Sheets{
		Ship:           Sheet{Name: "ship", FrameWidth: 16, FrameHeight: 16, Frames: 1},
		AsteroidSmall:  Sheet{Name: "asteroid-small", FrameWidth: 16, FrameHeight: 16, Frames: 1},
		AsteroidMedium: Sheet{Name: "asteroid-medium", FrameWidth: 24, FrameHeight: 24, Frames: 1},
		AsteroidLarge:  Sheet{Name: "asteroid-large", FrameWidth: 32, FrameHeight: 32, Frames: 1},
		Projectile:     Sheet{Name: "projectile", FrameWidth: 4, FrameHeight: 8, Frames: 1},
		Explosion:      Sheet{Name: "explosion", FrameWidth: 25, FrameHeight: 25, Frames: 6},
		Life:           Sheet{Name: "life", FrameWidth: 10, FrameHeight: 10, Frames: 1},
		LifeLoss:       Sheet{Name: "life-loss", FrameWidth: 10, FrameHeight: 10, Frames: 5},
	}
}

// recordingSurface keeps everything drawn onto it.
type recordingSurface struct {
	sprites []Sprite
	texts   []Text
}

func (r *recordingSurface) DrawSprite(s Sprite) { r.sprites = append(r.sprites, s) }
func (r *recordingSurface) DrawText(t Text)     { r.texts = append(r.texts, t) }
func (r *recordingSurface) MeasureText(s string, size float64) (float64, float64) {
	return float64(len(s)) * size / 2, size
}

const frame = time.Second / 60

func TestShipHitNeverNegative(t *testing.T) {
	cfg := config.Default()
	for lives := 1; lives <= 5; lives++ {
		s := NewShip(cfg, testSheets().Ship)
		s.Lives = lives
		s.Hit()
		if s.Lives != lives-1 {
			t.Errorf("lives %d after hit = %d, want %d", lives, s.Lives, lives-1)
		}
	}

	s := NewShip(cfg, testSheets().Ship)
	s.Lives = 0
	s.Hit()
	if s.Lives != 0 {
		t.Errorf("lives went negative: %d", s.Lives)
	}
}

func TestShipImmunityWindow(t *testing.T) {
	cfg := config.Default()
	s := NewShip(cfg, testSheets().Ship)

	s.Hit()
	if s.CanCollide() {
		t.Fatal("ship should be immune right after a hit")
	}
	if s.Alpha() != cfg.Ship.ImmuneAlpha {
		t.Errorf("alpha = %d, want %d", s.Alpha(), cfg.Ship.ImmuneAlpha)
	}

	ctx := UpdateContext{Delta: 100 * time.Millisecond}
	for i := 0; i < 19; i++ {
		s.Update(ctx)
	}
	if s.CanCollide() {
		t.Fatalf("immunity ended early, %v left", s.Immunity())
	}
	s.Update(ctx)
	if !s.CanCollide() {
		t.Errorf("immunity should end after %v", cfg.Ship.Immunity)
	}
	if s.Alpha() != 255 {
		t.Errorf("alpha = %d, want 255", s.Alpha())
	}
}

func TestShipSteering(t *testing.T) {
	cfg := config.Default()
	s := NewShip(cfg, testSheets().Ship)

	s.Steer(Input{Right: true})
	if want := cfg.Ship.Acceleration - cfg.Ship.Drag; math.Abs(s.Velocity.X-want) > 1e-9 {
		t.Errorf("vx = %v, want %v", s.Velocity.X, want)
	}

	// Drag never flips the sign
	s.Velocity = physics.Vec{X: 0.01, Y: -0.01}
	s.Steer(Input{})
	if s.Velocity != (physics.Vec{}) {
		t.Errorf("drag overshot: %v", s.Velocity)
	}

	// Speed is capped along the current angle
	s.Velocity = physics.Vec{}
	for i := 0; i < 200; i++ {
		s.Steer(Input{Right: true, Down: true})
	}
	if got := s.Velocity.Len(); math.Abs(got-cfg.Ship.MaxSpeed) > 1e-9 {
		t.Errorf("speed = %v, want %v", got, cfg.Ship.MaxSpeed)
	}
	if math.Abs(s.Velocity.X-s.Velocity.Y) > 1e-9 {
		t.Errorf("cap changed direction: %v", s.Velocity)
	}
}

func TestShipWraps(t *testing.T) {
	cfg := config.Default()
	s := NewShip(cfg, testSheets().Ship)

	s.Position = physics.Vec{X: 0.5, Y: 400}
	s.Velocity = physics.Vec{X: -1.5}
	s.Update(UpdateContext{Delta: frame})
	if s.Position.X != cfg.Arena.Width {
		t.Errorf("x = %v, want %v", s.Position.X, cfg.Arena.Width)
	}

	s.Position = physics.Vec{X: 400, Y: cfg.Arena.Height - 0.5}
	s.Velocity = physics.Vec{Y: 1.5}
	s.Update(UpdateContext{Delta: frame})
	if s.Position.Y != 0 {
		t.Errorf("y = %v, want 0", s.Position.Y)
	}
}

func TestShipAimsAtCursor(t *testing.T) {
	s := NewShip(config.Default(), testSheets().Ship)
	s.Update(UpdateContext{Input: Input{Cursor: physics.Vec{X: 400, Y: 0}, HasCursor: true}})
	if math.Abs(s.Facing) > 1e-9 {
		t.Errorf("facing = %v, want 0 (up)", s.Facing)
	}

	// Without a cursor the facing is kept
	s.Facing = 45
	s.Update(UpdateContext{})
	if s.Facing != 45 {
		t.Errorf("facing changed to %v", s.Facing)
	}
}

func TestShipReset(t *testing.T) {
	cfg := config.Default()
	s := NewShip(cfg, testSheets().Ship)
	s.Position = physics.Vec{X: 12, Y: 34}
	s.Velocity = physics.Vec{X: 3}
	s.Facing = 10
	s.Hit()
	s.Reset()

	if s.Position != (physics.Vec{X: 400, Y: 400}) || s.Velocity != (physics.Vec{}) {
		t.Errorf("position/velocity not reset: %v %v", s.Position, s.Velocity)
	}
	if s.Lives != cfg.Ship.Lives || !s.CanCollide() || s.Facing != 90 {
		t.Errorf("state not reset: lives=%d immune=%v facing=%v", s.Lives, !s.CanCollide(), s.Facing)
	}
}

func TestTierCycle(t *testing.T) {
	want := []Tier{TierMedium, TierLarge, TierSmall, TierMedium, TierLarge, TierSmall}
	for i, w := range want {
		if got := TierFor(i + 1); got != w {
			t.Errorf("TierFor(%d) = %v, want %v", i+1, got, w)
		}
	}
}

func TestSpawnerCadenceAndTiers(t *testing.T) {
	cfg := config.Default()
	s := NewAsteroidSpawner(cfg, testSheets(), rand.New(rand.NewSource(1)))

	var spawned []*Asteroid
	for f := 1; f <= 90; f++ {
		if a := s.Tick(); a != nil {
			if len(spawned) == 0 && f != 30 {
				t.Errorf("first spawn on frame %d, want 30", f)
			}
			spawned = append(spawned, a)
		}
	}
	if len(spawned) != 3 {
		t.Fatalf("spawned %d asteroids in 90 frames, want 3", len(spawned))
	}
	for i, want := range []Tier{TierMedium, TierLarge, TierSmall} {
		if spawned[i].Tier != want {
			t.Errorf("spawn %d tier = %v, want %v", i+1, spawned[i].Tier, want)
		}
		if spawned[i].Large != (want == TierLarge) {
			t.Errorf("spawn %d Large = %v", i+1, spawned[i].Large)
		}
	}
	if s.Cooldown() < -cfg.Arena.CooldownStep {
		t.Errorf("cooldown fell too far: %v", s.Cooldown())
	}

	s.Reset()
	if s.Count() != 0 || s.Cooldown() != cfg.Asteroids.SpawnInterval {
		t.Errorf("reset left count=%d cooldown=%v", s.Count(), s.Cooldown())
	}
}

func TestSpawnedAsteroidHeadsInward(t *testing.T) {
	cfg := config.Default()
	s := NewAsteroidSpawner(cfg, testSheets(), rand.New(rand.NewSource(7)))
	center := physics.Vec{X: cfg.Arena.Width / 2, Y: cfg.Arena.Height / 2}

	for i := 0; i < 50; i++ {
		a := s.Spawn()
		onEdge := a.Position.X == 0 || a.Position.X == cfg.Arena.Width ||
			a.Position.Y == 0 || a.Position.Y == cfg.Arena.Height
		if !onEdge {
			t.Fatalf("asteroid spawned off the edge at %v", a.Position)
		}

		speed := a.Velocity.Len()
		min := cfg.Asteroids.SpeedMin * cfg.Asteroids.SpeedMultiplier
		max := (cfg.Asteroids.SpeedMin + cfg.Asteroids.SpeedSpread) * cfg.Asteroids.SpeedMultiplier
		if speed < min-1e-9 || speed >= max {
			t.Errorf("speed %v outside [%v, %v)", speed, min, max)
		}

		// Moving toward the centre shortens the distance to it
		next := a.Position.Add(a.Velocity)
		if physics.Distance(next, center) >= physics.Distance(a.Position, center) {
			t.Errorf("asteroid at %v moves away from the centre", a.Position)
		}

		spin := math.Abs(a.Spin)
		if spin < 1 || spin > float64(cfg.Asteroids.MaxSpin) || spin != math.Trunc(spin) {
			t.Errorf("spin = %v", a.Spin)
		}
	}
}

func TestAsteroidPruneAndDestroy(t *testing.T) {
	cfg := config.Default()
	s := NewAsteroidSpawner(cfg, testSheets(), rand.New(rand.NewSource(3)))
	a := s.Spawn()

	a.Position = physics.Vec{X: -49, Y: 400}
	a.Velocity = physics.Vec{X: -0.5}
	if a.Update(UpdateContext{}) {
		t.Fatal("asteroid pruned inside the margin")
	}
	a.Velocity = physics.Vec{X: -2}
	if !a.Update(UpdateContext{}) {
		t.Fatal("asteroid not pruned past the margin")
	}

	a.Position = physics.Vec{X: 100, Y: 100}
	a.MarkDestroyed()
	before := a.Position
	if !a.Update(UpdateContext{}) || a.Position != before {
		t.Error("destroyed asteroid was updated")
	}
}

func TestGunCooldown(t *testing.T) {
	cfg := config.Default()
	ship := NewShip(cfg, testSheets().Ship)
	g := NewGun(cfg, testSheets().Projectile)

	var shots []int
	for f := 1; f <= 20; f++ {
		if p := g.Tick(true, ship); p != nil {
			shots = append(shots, f)
		}
	}
	want := []int{5, 10, 15, 20}
	if len(shots) != len(want) {
		t.Fatalf("shots on frames %v, want %v", shots, want)
	}
	for i := range want {
		if shots[i] != want[i] {
			t.Fatalf("shots on frames %v, want %v", shots, want)
		}
	}

	// Not firing lets the gun sit ready without draining further
	for f := 0; f < 20; f++ {
		g.Tick(false, ship)
	}
	if g.cooldown < -cfg.Arena.CooldownStep {
		t.Errorf("cooldown drained to %v", g.cooldown)
	}
	if g.Tick(true, ship) == nil {
		t.Error("ready gun did not fire")
	}
}

func TestProjectileLeavesNose(t *testing.T) {
	cfg := config.Default()
	ship := NewShip(cfg, testSheets().Ship)
	ship.Facing = 90
	g := NewGun(cfg, testSheets().Projectile)
	g.cooldown = 0

	p := g.Tick(true, ship)
	if p == nil {
		t.Fatal("gun did not fire")
	}
	// Facing right, the rotated box is 96 wide and 64 tall: nose is 32 px right
	if math.Abs(p.Position.X-432) > 1e-9 || math.Abs(p.Position.Y-400) > 1e-9 {
		t.Errorf("projectile at %v, want (432, 400)", p.Position)
	}
	if math.Abs(p.Velocity.X-cfg.Projectiles.Speed) > 1e-9 || math.Abs(p.Velocity.Y) > 1e-9 {
		t.Errorf("velocity = %v", p.Velocity)
	}
	if p.Rotation != 90 {
		t.Errorf("rotation = %v", p.Rotation)
	}

	p.Position = physics.Vec{X: cfg.Arena.Width + 45, Y: 400}
	if !p.Update(UpdateContext{}) {
		t.Error("projectile past the margin was kept")
	}
}

func TestAnimationLifecycle(t *testing.T) {
	a := NewAnimation(testSheets().Explosion, physics.Vec{X: 10, Y: 10}, 100*time.Millisecond, 4)
	ctx := UpdateContext{Delta: 100 * time.Millisecond}

	for i := 1; i < 6; i++ {
		if a.Update(ctx) {
			t.Fatalf("finished early after %d updates", i)
		}
		if a.Frame != i {
			t.Fatalf("frame = %d, want %d", a.Frame, i)
		}
	}
	if !a.Update(ctx) || !a.Finished() {
		t.Fatal("animation should finish after the last frame")
	}

	frame := a.Frame
	if !a.Update(ctx) || a.Frame != frame || !a.Finished() {
		t.Error("finished animation changed on update")
	}

	var surface recordingSurface
	a.Draw(&surface)
	if len(surface.sprites) != 0 {
		t.Error("finished animation was drawn")
	}
}

func TestAnimationWaitsForFrameTime(t *testing.T) {
	a := NewAnimation(testSheets().LifeLoss, physics.Vec{}, 100*time.Millisecond, 4)
	a.Update(UpdateContext{Delta: 60 * time.Millisecond})
	if a.Frame != 0 {
		t.Fatalf("advanced after 60ms")
	}
	// A long frame still advances only once
	a.Update(UpdateContext{Delta: 500 * time.Millisecond})
	if a.Frame != 1 {
		t.Errorf("frame = %d, want 1", a.Frame)
	}
}

func TestAnimationLoops(t *testing.T) {
	a := NewAnimation(testSheets().LifeLoss, physics.Vec{}, time.Millisecond, 1)
	a.Loop = true
	for i := 0; i < 12; i++ {
		if a.Update(UpdateContext{Delta: time.Millisecond}) {
			t.Fatal("looping animation finished")
		}
	}
	if a.Frame != 12%5 {
		t.Errorf("frame = %d, want %d", a.Frame, 12%5)
	}
}

func TestCheckCollision(t *testing.T) {
	sheets := testSheets()
	ship := Sprite{Sheet: sheets.Ship, Position: physics.Vec{X: 400, Y: 400}, Scale: physics.Vec{X: 4, Y: 6}}
	rock := Sprite{Sheet: sheets.AsteroidSmall, Position: physics.Vec{X: 400, Y: 400}, Scale: physics.Vec{X: 3.5, Y: 4.5}}
	if !CheckCollision(ship, rock, 0.65) {
		t.Error("coincident sprites should collide")
	}
	rock.Position = physics.Vec{X: 700, Y: 700}
	if CheckCollision(ship, rock, 0.65) {
		t.Error("distant sprites should not collide")
	}
}

func TestSurvivalTimer(t *testing.T) {
	var timer SurvivalTimer
	timer.Add(83*time.Second + 900*time.Millisecond)
	if got := timer.String(); got != "01:23" {
		t.Errorf("timer = %q, want 01:23", got)
	}
	timer.Reset()
	if got := timer.String(); got != "00:00" {
		t.Errorf("reset timer = %q", got)
	}
}

func TestHUDDraw(t *testing.T) {
	cfg := config.Default()
	h := NewHUD(cfg, testSheets().Life)
	var timer SurvivalTimer
	var surface recordingSurface

	h.Draw(&surface, 3, &timer)
	if len(surface.sprites) != 3 {
		t.Fatalf("drew %d life icons, want 3", len(surface.sprites))
	}
	if p := surface.sprites[2].Position; p != (physics.Vec{X: 100, Y: 750}) {
		t.Errorf("third icon at %v, want (100, 750)", p)
	}
	if len(surface.texts) != 1 || surface.texts[0].Value != "00:00" || !surface.texts[0].Centered {
		t.Errorf("timer text = %+v", surface.texts)
	}
}
