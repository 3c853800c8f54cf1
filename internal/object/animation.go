package object

import (
	"time"

	"github.com/tomz197/spaceship/internal/physics"
)

// Animation plays the frames of a sheet at a fixed rate.
type Animation struct {
	Sheet     Sheet
	Frame     int
	FrameTime time.Duration
	Loop      bool
	Position  physics.Vec
	Scale     float64

	elapsed  time.Duration
	finished bool
}

// NewAnimation creates a one-shot animation centred on pos.
func NewAnimation(sheet Sheet, pos physics.Vec, frameTime time.Duration, scale float64) *Animation {
	return &Animation{
		Sheet:     sheet,
		FrameTime: frameTime,
		Position:  pos,
		Scale:     scale,
	}
}

// Finished reports whether a one-shot animation has played its last frame.
func (a *Animation) Finished() bool {
	return a.finished
}

// Update accumulates time and advances at most one frame per call.
// Past the last frame a looping animation restarts and a one-shot animation
// finishes. A finished animation never changes again.
func (a *Animation) Update(ctx UpdateContext) bool {
	if a.finished {
		return true
	}
	a.elapsed += ctx.Delta
	if a.elapsed < a.FrameTime {
		return false
	}
	a.elapsed = 0
	a.Frame++
	if a.Frame >= a.Sheet.Frames {
		if a.Loop {
			a.Frame = 0
		} else {
			a.Frame = a.Sheet.Frames - 1
			a.finished = true
		}
	}
	return a.finished
}

// Draw renders the current frame.
func (a *Animation) Draw(s Surface) {
	if a.finished {
		return
	}
	s.DrawSprite(Sprite{
		Sheet:    a.Sheet,
		Frame:    a.Frame,
		Position: a.Position,
		Scale:    physics.Vec{X: a.Scale, Y: a.Scale},
		Alpha:    opaque,
	})
}
