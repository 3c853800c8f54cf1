package draw

import (
	"image"
	"math"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// minRasterPixels is the smallest glyph height, in canvas pixels, that is
// still legible when text is rasterised into the canvas. Smaller text is
// written as terminal characters instead.
const minRasterPixels = 10

// ImageSource provides sprite sheet images and font faces.
type ImageSource interface {
	Image(name string) image.Image
	NewFace(size float64) (font.Face, error)
}

type label struct {
	col, row int
	text     string
}

// Surface draws sprites and text onto a Canvas. Sprites become half-block
// pixels; text is rasterised when it is large enough and otherwise printed
// as characters on top of the canvas.
type Surface struct {
	canvas    *Canvas
	images    ImageSource
	highlight lipgloss.Style
	logger    *log.Logger

	faces  map[int]font.Face // by pixel size, nil when the face failed
	labels []label
}

var _ object.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing onto canvas. renderer styles
// highlighted labels for the client's terminal and may be nil.
func NewSurface(canvas *Canvas, images ImageSource, renderer *lipgloss.Renderer, logger *log.Logger) *Surface {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Surface{
		canvas:    canvas,
		images:    images,
		highlight: renderer.NewStyle().Bold(true).Reverse(true),
		logger:    logger,
		faces:     make(map[int]font.Face),
	}
}

// Canvas returns the canvas the surface draws on.
func (s *Surface) Canvas() *Canvas {
	return s.canvas
}

// Begin starts a new frame.
func (s *Surface) Begin() {
	s.canvas.Clear()
	s.labels = s.labels[:0]
}

// Render writes the border, the canvas and then the character labels.
func (s *Surface) Render(cw *ChunkWriter) {
	s.canvas.RenderBorder(cw)
	s.canvas.Render(cw)
	for _, l := range s.labels {
		cw.WriteAt(l.col, l.row, l.text)
	}
}

// Close releases the cached font faces.
func (s *Surface) Close() error {
	for size, f := range s.faces {
		if f != nil {
			f.Close()
		}
		delete(s.faces, size)
	}
	return nil
}

// DrawSprite blits the sprite's frame into the canvas. Without an image
// for the sheet only the centre pixel is lit.
func (s *Surface) DrawSprite(sp object.Sprite) {
	img := s.images.Image(sp.Sheet.Name)
	if img == nil {
		s.canvas.SetFloat(sp.Position.X, sp.Position.Y)
		return
	}
	sr := sp.Sheet.FrameRect(sp.Frame).Add(img.Bounds().Min)
	s.canvas.DrawImage(img, sr, sp.Position, sp.Scale, sp.Rotation, sp.Alpha)
}

// DrawText rasterises t into the canvas, or queues it as a character label
// on the cells its bounds cover when the text is too small to rasterise.
func (s *Surface) DrawText(t object.Text) {
	if t.Value == "" {
		return
	}
	b := t.Bounds(s)

	face := s.face(t.Size)
	if face == nil {
		col, row := s.canvas.LabelCell(b)
		text := t.Value
		if t.Highlighted {
			text = s.highlight.Render(text)
		}
		s.labels = append(s.labels, label{col: col, row: row, text: text})
		return
	}

	sx, sy := s.canvas.PixelScale()
	m := image.NewAlpha(image.Rect(0, 0, int(math.Ceil(b.Width*sx)), int(math.Ceil(b.Height*sy))))
	d := font.Drawer{
		Dst:  m,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{Y: face.Metrics().Ascent},
	}
	d.DrawString(t.Value)
	s.canvas.DrawMask(m, physics.Vec{X: b.Left, Y: b.Top})

	if t.Highlighted {
		s.canvas.DrawHLine(b.Left, b.Right(), b.Bottom())
	}
}

// MeasureText returns the logical size of text. Rasterised text is measured
// with the font; character text takes one cell per rune and one row.
func (s *Surface) MeasureText(text string, size float64) (w, h float64) {
	sx, sy := s.canvas.PixelScale()
	if face := s.face(size); face != nil {
		adv := font.MeasureString(face, text)
		return float64(adv.Ceil()) / sx, float64(face.Metrics().Height.Ceil()) / sy
	}
	return float64(utf8.RuneCountInString(text)) / sx, 2 / sy
}

// face returns a cached face for text of the given logical size, or nil if
// the text should be printed as characters.
func (s *Surface) face(size float64) font.Face {
	_, sy := s.canvas.PixelScale()
	px := int(math.Round(size * sy))
	if px < minRasterPixels || s.images == nil {
		return nil
	}
	if f, ok := s.faces[px]; ok {
		return f
	}
	f, err := s.images.NewFace(float64(px))
	if err != nil {
		s.logger.Warn("falling back to character text", "size", px, "error", err)
		f = nil
	}
	s.faces[px] = f
	return f
}
