package object

import (
	"fmt"
	"time"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// SurvivalTimer measures how long the current run has lasted.
type SurvivalTimer struct {
	elapsed time.Duration
}

// Add accumulates frame time.
func (t *SurvivalTimer) Add(d time.Duration) {
	t.elapsed += d
}

// Reset starts the timer over.
func (t *SurvivalTimer) Reset() {
	t.elapsed = 0
}

// Elapsed returns the time survived so far.
func (t *SurvivalTimer) Elapsed() time.Duration {
	return t.elapsed
}

// String formats the elapsed time as MM:SS.
func (t *SurvivalTimer) String() string {
	secs := int(t.elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// HUD draws the life icons and the survival timer.
type HUD struct {
	cfg    config.HUDConfig
	width  float64
	height float64
	life   Sheet
}

// NewHUD creates a HUD for the arena in cfg.
func NewHUD(cfg config.Config, life Sheet) *HUD {
	return &HUD{cfg: cfg.HUD, width: cfg.Arena.Width, height: cfg.Arena.Height, life: life}
}

// LifeIconPosition returns the centre of the i-th life icon, counting from zero.
func (h *HUD) LifeIconPosition(i int) physics.Vec {
	return physics.Vec{
		X: h.cfg.LifeIconX + float64(i)*h.cfg.LifeIconSpacing,
		Y: h.height - h.cfg.LifeIconBottom,
	}
}

// Draw renders one icon per remaining life and the timer at the top centre.
func (h *HUD) Draw(s Surface, lives int, timer *SurvivalTimer) {
	for i := 0; i < lives; i++ {
		s.DrawSprite(Sprite{
			Sheet:    h.life,
			Position: h.LifeIconPosition(i),
			Scale:    physics.Vec{X: h.cfg.LifeIconScale, Y: h.cfg.LifeIconScale},
			Alpha:    opaque,
		})
	}
	s.DrawText(Text{
		Value:    timer.String(),
		Position: physics.Vec{X: h.width / 2, Y: h.cfg.TimerY},
		Size:     h.cfg.TimerSize,
		Centered: true,
	})
}
