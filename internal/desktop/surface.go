package desktop

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// Surface draws sprites and text onto the ebiten screen.
type Surface struct {
	source     draw.ImageSource
	hoverScale float64
	logger     *log.Logger

	target *ebiten.Image            // set for the duration of Draw
	sheets map[string]*ebiten.Image // uploaded on first use
	faces  map[float64]font.Face
}

var _ object.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing the images and fonts of source.
// Highlighted text is enlarged by hoverScale.
func NewSurface(source draw.ImageSource, hoverScale float64, logger *log.Logger) *Surface {
	return &Surface{
		source:     source,
		hoverScale: hoverScale,
		logger:     logger,
		sheets:     make(map[string]*ebiten.Image),
		faces:      make(map[float64]font.Face),
	}
}

func (s *Surface) sheet(name string) *ebiten.Image {
	if img, ok := s.sheets[name]; ok {
		return img
	}
	var img *ebiten.Image
	if src := s.source.Image(name); src != nil {
		img = ebiten.NewImageFromImage(src)
	} else {
		s.logger.Warn("no image for sprite sheet", "sheet", name)
	}
	s.sheets[name] = img
	return img
}

func (s *Surface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := s.source.NewFace(size)
	if err != nil {
		s.logger.Error("could not create font face", "size", size, "error", err)
		f = nil
	}
	s.faces[size] = f
	return f
}

// DrawSprite draws the sprite's frame rotated and scaled about its centre.
func (s *Surface) DrawSprite(sp object.Sprite) {
	if s.target == nil {
		return
	}
	img := s.sheet(sp.Sheet.Name)
	if img == nil {
		return
	}
	frame := sp.Sheet.FrameRect(sp.Frame).Add(img.Bounds().Min)
	sub, ok := img.SubImage(frame).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(frame.Dx())/2, -float64(frame.Dy())/2)
	op.GeoM.Scale(sp.Scale.X, sp.Scale.Y)
	op.GeoM.Rotate(physics.DegToRad(sp.Rotation))
	op.GeoM.Translate(sp.Position.X, sp.Position.Y)
	op.ColorScale.ScaleAlpha(float32(sp.Alpha) / 255)
	s.target.DrawImage(sub, op)
}

// DrawText draws t in white, enlarged by the hover scale when highlighted.
func (s *Surface) DrawText(t object.Text) {
	if s.target == nil || t.Value == "" {
		return
	}
	size := t.Size
	if t.Highlighted {
		size *= s.hoverScale
	}
	face := s.face(size)
	if face == nil {
		return
	}

	b := text.BoundString(face, t.Value)
	x, y := t.Position.X, t.Position.Y
	if t.Centered {
		x -= float64(b.Dx()) / 2
		y -= float64(b.Dy()) / 2
	}
	// text.Draw places the dot, not the top-left corner.
	text.Draw(s.target, t.Value, face, int(math.Round(x))-b.Min.X, int(math.Round(y))-b.Min.Y, color.White)
}

// MeasureText returns the size of the glyph bounds at the unhighlighted
// size, so hover does not change hit-testing.
func (s *Surface) MeasureText(str string, size float64) (w, h float64) {
	face := s.face(size)
	if face == nil {
		return 0, 0
	}
	b := text.BoundString(face, str)
	return float64(b.Dx()), float64(b.Dy())
}
