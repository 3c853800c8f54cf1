package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds every tuning value of the game. It is built once at startup
// and passed by value to constructors.
type Config struct {
	Arena       ArenaConfig      `yaml:"arena"`
	Ship        ShipConfig       `yaml:"ship"`
	Asteroids   AsteroidConfig   `yaml:"asteroids"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Animation   AnimationConfig  `yaml:"animation"`
	HUD         HUDConfig        `yaml:"hud"`
	Audio       AudioConfig      `yaml:"audio"`
	Assets      AssetConfig      `yaml:"assets"`
	SSH         SSHConfig        `yaml:"ssh"`
}

// ArenaConfig describes the logical play field and frame timing.
type ArenaConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	FPS            int     `yaml:"fps"`
	CooldownStep   float64 `yaml:"cooldown_step"`   // subtracted from every cooldown once per frame
	CollisionScale float64 `yaml:"collision_scale"` // bounding boxes shrink by this factor before testing
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	ScaleX       float64       `yaml:"scale_x"`
	ScaleY       float64       `yaml:"scale_y"`
	StartFacing  float64       `yaml:"start_facing"`
	Lives        int           `yaml:"lives"`
	Acceleration float64       `yaml:"acceleration"`
	Drag         float64       `yaml:"drag"`
	MaxSpeed     float64       `yaml:"max_speed"`
	Immunity     time.Duration `yaml:"immunity"`
	ImmuneAlpha  uint8         `yaml:"immune_alpha"`
}

// AsteroidConfig defines asteroid spawning and motion.
type AsteroidConfig struct {
	SpawnInterval   float64 `yaml:"spawn_interval"`
	SpawnJitter     float64 `yaml:"spawn_jitter"`
	SpeedMin        float64 `yaml:"speed_min"`
	SpeedSpread     float64 `yaml:"speed_spread"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxSpin         int     `yaml:"max_spin"`
	ScaleX          float64 `yaml:"scale_x"`
	ScaleY          float64 `yaml:"scale_y"`
	PruneMargin     float64 `yaml:"prune_margin"`
}

// ProjectileConfig defines the ship's gun.
type ProjectileConfig struct {
	Cooldown float64 `yaml:"cooldown"`
	Speed    float64 `yaml:"speed"`
	Scale    float64 `yaml:"scale"`
}

// AnimationConfig defines sprite sheet playback.
type AnimationConfig struct {
	FrameTime       time.Duration `yaml:"frame_time"`
	Scale           float64       `yaml:"scale"`
	ExplosionFrames int           `yaml:"explosion_frames"`
	LifeLossFrames  int           `yaml:"life_loss_frames"`
}

// HUDConfig positions the heads-up display and menu text.
type HUDConfig struct {
	LifeIconX       float64 `yaml:"life_icon_x"`
	LifeIconSpacing float64 `yaml:"life_icon_spacing"`
	LifeIconBottom  float64 `yaml:"life_icon_bottom"`
	LifeIconScale   float64 `yaml:"life_icon_scale"`
	TimerY          float64 `yaml:"timer_y"`
	TimerSize       float64 `yaml:"timer_size"`
	TitleSize       float64 `yaml:"title_size"`
	ButtonSize      float64 `yaml:"button_size"`
	CaptionSize     float64 `yaml:"caption_size"`
	HoverScale      float64 `yaml:"hover_scale"`
}

// AudioConfig configures the soundtrack.
type AudioConfig struct {
	MusicPath     string  `yaml:"music_path"` // empty disables music
	Volume        float64 `yaml:"volume"`
	PlayingVolume float64 `yaml:"playing_volume"`
}

// AssetConfig locates sprite sheets and the font.
type AssetConfig struct {
	Dir      string `yaml:"dir"`
	FontPath string `yaml:"font_path"` // empty uses the bundled Go font
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"` // connections without traffic are closed after this
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:          800,
			Height:         800,
			FPS:            60,
			CooldownStep:   0.1,
			CollisionScale: 0.65,
		},
		Ship: ShipConfig{
			ScaleX:       4,
			ScaleY:       6,
			StartFacing:  90,
			Lives:        5,
			Acceleration: 0.2,
			Drag:         0.02,
			MaxSpeed:     6,
			Immunity:     2 * time.Second,
			ImmuneAlpha:  120,
		},
		Asteroids: AsteroidConfig{
			SpawnInterval:   3.0,
			SpawnJitter:     150,
			SpeedMin:        0.8,
			SpeedSpread:     0.5,
			SpeedMultiplier: 1.5,
			MaxSpin:         5,
			ScaleX:          3.5,
			ScaleY:          4.5,
			PruneMargin:     50,
		},
		Projectiles: ProjectileConfig{
			Cooldown: 0.5,
			Speed:    10,
			Scale:    1,
		},
		Animation: AnimationConfig{
			FrameTime:       100 * time.Millisecond,
			Scale:           4,
			ExplosionFrames: 6,
			LifeLossFrames:  5,
		},
		HUD: HUDConfig{
			LifeIconX:       20,
			LifeIconSpacing: 40,
			LifeIconBottom:  50,
			LifeIconScale:   3,
			TimerY:          55,
			TimerSize:       48,
			TitleSize:       70,
			ButtonSize:      45,
			CaptionSize:     20,
			HoverScale:      1.2,
		},
		Audio: AudioConfig{
			Volume:        100,
			PlayingVolume: 70,
		},
		Assets: AssetConfig{
			Dir: "assets",
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
			IdleTimeout: 2 * time.Minute,
		},
	}
}

// Validate reports every value that would break the simulation.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	check(c.Arena.FPS > 0, "arena fps must be positive, got %d", c.Arena.FPS)
	check(c.Arena.CooldownStep > 0, "cooldown step must be positive, got %v", c.Arena.CooldownStep)
	check(c.Arena.CollisionScale > 0 && c.Arena.CollisionScale <= 1, "collision scale must be in (0, 1], got %v", c.Arena.CollisionScale)

	check(c.Ship.Lives > 0, "ship lives must be positive, got %d", c.Ship.Lives)
	check(c.Ship.ScaleX > 0 && c.Ship.ScaleY > 0, "ship scale must be positive")
	check(c.Ship.MaxSpeed > 0, "ship max speed must be positive, got %v", c.Ship.MaxSpeed)
	check(c.Ship.Drag >= 0, "ship drag must not be negative, got %v", c.Ship.Drag)
	check(c.Ship.Immunity >= 0, "ship immunity must not be negative, got %v", c.Ship.Immunity)

	check(c.Asteroids.SpawnInterval > 0, "asteroid spawn interval must be positive, got %v", c.Asteroids.SpawnInterval)
	check(c.Asteroids.SpawnJitter >= 0, "asteroid spawn jitter must not be negative, got %v", c.Asteroids.SpawnJitter)
	check(c.Asteroids.SpeedSpread >= 0, "asteroid speed spread must not be negative, got %v", c.Asteroids.SpeedSpread)
	check(c.Asteroids.MaxSpin > 0, "asteroid max spin must be positive, got %d", c.Asteroids.MaxSpin)
	check(c.Asteroids.ScaleX > 0 && c.Asteroids.ScaleY > 0, "asteroid scale must be positive")
	check(c.Asteroids.PruneMargin >= 0, "asteroid prune margin must not be negative, got %v", c.Asteroids.PruneMargin)

	check(c.Projectiles.Cooldown > 0, "projectile cooldown must be positive, got %v", c.Projectiles.Cooldown)
	check(c.Projectiles.Scale > 0, "projectile scale must be positive, got %v", c.Projectiles.Scale)

	check(c.Animation.FrameTime > 0, "animation frame time must be positive, got %v", c.Animation.FrameTime)
	check(c.Animation.Scale > 0, "animation scale must be positive, got %v", c.Animation.Scale)
	check(c.Animation.ExplosionFrames > 0 && c.Animation.LifeLossFrames > 0, "animation frame counts must be positive")

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 100, "audio volume must be in [0, 100], got %v", c.Audio.Volume)
	check(c.Audio.PlayingVolume >= 0 && c.Audio.PlayingVolume <= 100, "playing volume must be in [0, 100], got %v", c.Audio.PlayingVolume)

	check(c.Assets.Dir != "", "asset directory must be set")
	check(c.SSH.IdleTimeout >= 0, "ssh idle timeout must not be negative, got %v", c.SSH.IdleTimeout)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// FrameTime returns the duration of one frame at the configured rate.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.Arena.FPS)
}
