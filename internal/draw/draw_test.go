package draw

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/menu"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

func TestFitArena(t *testing.T) {
	tests := []struct {
		name                       string
		termW, termH               int
		cols, rows, offCol, offRow int
	}{
		{"exact", 82, 42, 80, 40, 1, 1},
		{"wide terminal", 120, 42, 80, 40, 20, 1},
		{"tall terminal", 82, 100, 80, 40, 1, 30},
		{"tiny", 1, 1, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offCol, offRow := fitArena(tt.termW, tt.termH, 800, 800)
			if cols != tt.cols || rows != tt.rows || offCol != tt.offCol || offRow != tt.offRow {
				t.Errorf("fitArena(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, cols, rows, offCol, offRow,
					tt.cols, tt.rows, tt.offCol, tt.offRow)
			}
		})
	}
}

func TestTerminalRoundTrip(t *testing.T) {
	c := NewCanvas(120, 42, 800, 800)
	for col := 21; col <= 100; col += 7 {
		for row := 2; row <= 41; row += 3 {
			p := c.TerminalToLogical(col, row)
			gotCol, gotRow := c.LogicalToTerminal(p.X, p.Y)
			if gotCol != col || gotRow != row {
				t.Fatalf("cell (%d,%d) -> %v -> (%d,%d)", col, row, p, gotCol, gotRow)
			}
		}
	}
}

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestDrawImage(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	img := solid(4, 4)
	c.DrawImage(img, img.Bounds(), physics.Vec{X: 400, Y: 400}, physics.Vec{X: 10, Y: 10}, 0, 255)

	for _, p := range []image.Point{{38, 38}, {41, 41}, {38, 41}, {40, 39}} {
		if !c.Pixel(p.X, p.Y) {
			t.Errorf("pixel %v not set", p)
		}
	}
	for _, p := range []image.Point{{37, 38}, {42, 42}, {40, 37}, {40, 42}} {
		if c.Pixel(p.X, p.Y) {
			t.Errorf("pixel %v set outside sprite", p)
		}
	}
}

func TestDrawImageRotated(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	img := solid(2, 4)
	c.DrawImage(img, img.Bounds(), physics.Vec{X: 400, Y: 400}, physics.Vec{X: 10, Y: 10}, 90, 255)

	for _, p := range []image.Point{{38, 39}, {41, 40}, {39, 40}} {
		if !c.Pixel(p.X, p.Y) {
			t.Errorf("pixel %v not set", p)
		}
	}
	for _, p := range []image.Point{{40, 38}, {40, 41}, {37, 39}, {42, 40}} {
		if c.Pixel(p.X, p.Y) {
			t.Errorf("pixel %v set outside rotated sprite", p)
		}
	}
}

func TestDrawImageTranslucentIsDithered(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	img := solid(4, 4)
	c.DrawImage(img, img.Bounds(), physics.Vec{X: 400, Y: 400}, physics.Vec{X: 10, Y: 10}, 0, 120)

	if !c.Pixel(38, 38) {
		t.Error("even pixel not set")
	}
	if c.Pixel(39, 38) {
		t.Error("odd pixel set for translucent sprite")
	}
}

func TestDrawImageTinySpriteKeepsCentre(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	img := solid(1, 1)
	c.DrawImage(img, img.Bounds(), physics.Vec{X: 405, Y: 405}, physics.Vec{X: 1, Y: 1}, 0, 255)
	if !c.Pixel(40, 40) {
		t.Error("centre pixel not set for sub-pixel sprite")
	}
}

func TestRender(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	c.SetFloat(0, 0)
	c.SetFloat(0, 10)
	c.SetFloat(15, 0)
	c.SetFloat(25, 15)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	for _, want := range []string{"\033[2;2H█", "\033[2;3H▀", "\033[2;4H▄"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output %q missing %q", out, want)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	long := strings.Repeat("x", 3*maxChunkSize+17)
	cw.WriteString(long)
	cw.WriteAt(3, 4, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), long+"\033[4;3Hhi"; got != want {
		t.Errorf("flushed %d bytes, want %d", len(got), len(want))
	}
}

type testImages struct {
	images map[string]image.Image
	font   *opentype.Font
}

func (ti testImages) Image(name string) image.Image {
	return ti.images[name]
}

func (ti testImages) NewFace(size float64) (font.Face, error) {
	return opentype.NewFace(ti.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	images := testImages{
		images: map[string]image.Image{"box": solid(4, 4)},
		font:   f,
	}
	s := NewSurface(NewCanvas(82, 42, 800, 800), images, lipgloss.NewRenderer(io.Discard), log.New(io.Discard))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSurfaceCharacterText(t *testing.T) {
	s := newTestSurface(t)

	w, h := s.MeasureText("abc", 20)
	if w != 30 || h != 20 {
		t.Errorf("MeasureText = %v x %v, want 30 x 20", w, h)
	}

	s.Begin()
	s.DrawText(object.Text{Value: "abc", Position: physics.Vec{X: 400, Y: 400}, Size: 20, Centered: true, Highlighted: true})

	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	s.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[21;40H") || !strings.Contains(out.String(), "abc") {
		t.Errorf("label not written at its cell: %q", out.String())
	}

	s.Begin()
	if len(s.labels) != 0 {
		t.Error("Begin kept labels from the previous frame")
	}
}

func TestSurfaceRasterText(t *testing.T) {
	s := newTestSurface(t)

	w, h := s.MeasureText("II", 200)
	if w <= 0 || h <= 0 {
		t.Fatalf("MeasureText = %v x %v", w, h)
	}
	if _, ok := s.faces[20]; !ok {
		t.Error("face for 20px text not cached")
	}

	s.Begin()
	s.DrawText(object.Text{Value: "II", Position: physics.Vec{X: 400, Y: 400}, Size: 200, Centered: true})
	if len(s.labels) != 0 {
		t.Error("large text was written as characters")
	}

	lit := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if s.canvas.Pixel(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no glyph pixels drawn")
	}
}

func TestSurfaceDrawSprite(t *testing.T) {
	s := newTestSurface(t)
	s.Begin()
	s.DrawSprite(object.Sprite{
		Sheet:    object.Sheet{Name: "box", FrameWidth: 4, FrameHeight: 4, Frames: 1},
		Position: physics.Vec{X: 400, Y: 400},
		Scale:    physics.Vec{X: 10, Y: 10},
		Alpha:    255,
	})
	if !s.canvas.Pixel(38, 38) || !s.canvas.Pixel(41, 41) {
		t.Error("sprite not drawn")
	}

	s.DrawSprite(object.Sprite{
		Sheet:    object.Sheet{Name: "missing", FrameWidth: 4, FrameHeight: 4, Frames: 1},
		Position: physics.Vec{X: 100, Y: 100},
		Scale:    physics.Vec{X: 1, Y: 1},
	})
	if !s.canvas.Pixel(10, 10) {
		t.Error("missing image did not fall back to a dot")
	}
}

type fixedVolume float64

func (v *fixedVolume) SetVolume(f float64) { *v = fixedVolume(f) }
func (v *fixedVolume) Volume() float64     { return float64(*v) }

func TestCharacterLabelIsClickable(t *testing.T) {
	sizes := []struct{ w, h int }{
		{80, 24}, {100, 30}, {120, 40}, {82, 42}, {97, 33},
	}
	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%d", sz.w, sz.h), func(t *testing.T) {
			canvas := NewCanvas(sz.w, sz.h, 800, 800)
			s := NewSurface(canvas, nil, lipgloss.NewRenderer(io.Discard), log.New(io.Discard))
			vol := fixedVolume(100)
			newMenu := func() *menu.Menu {
				return menu.New(config.Default(), &vol, log.New(io.Discard))
			}

			s.Begin()
			newMenu().Draw(s)
			var start *label
			for i := range s.labels {
				if s.labels[i].text == menu.LabelStart {
					start = &s.labels[i]
				}
			}
			if start == nil {
				t.Fatalf("no %q label drawn", menu.LabelStart)
			}

			for i := range len(menu.LabelStart) {
				m := newMenu()
				m.HandleInput(input.Input{
					MouseDown: true,
					HasCursor: true,
					Cursor:    canvas.TerminalToLogical(start.col+i, start.row),
				}, s)
				if !m.Started() {
					t.Errorf("click on drawn cell (%d,%d) missed the button", start.col+i, start.row)
				}
			}
		})
	}
}

func TestLabelCell(t *testing.T) {
	c := NewCanvas(82, 42, 800, 800)
	tests := []struct {
		name     string
		r        physics.Rect
		col, row int
	}{
		{"aligned", physics.Rect{Left: 385, Top: 390, Width: 30, Height: 20}, 40, 21},
		{"top past cell centre", physics.Rect{Left: 385, Top: 398, Width: 30, Height: 20}, 40, 22},
		{"left past cell centre", physics.Rect{Left: 387, Top: 390, Width: 30, Height: 20}, 41, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := c.LabelCell(tt.r)
			if col != tt.col || row != tt.row {
				t.Errorf("LabelCell(%v) = (%d,%d), want (%d,%d)", tt.r, col, row, tt.col, tt.row)
			}
			if p := c.TerminalToLogical(col, row); !tt.r.Contains(p) {
				t.Errorf("cell centre %v outside %v", p, tt.r)
			}
		})
	}
}
