// Package draw renders the arena into a terminal with half-block characters.
package draw

import (
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/tomz197/spaceship/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// alphaThreshold is the coverage above which a sub-pixel is lit.
const alphaThreshold = 0x80

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps a fixed logical arena onto the largest centred area of the
// terminal that keeps the arena's aspect ratio.
type Canvas struct {
	termWidth      int    // Columns used by the arena
	termHeight     int    // Rows used by the arena
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset of the arena inside the terminal, 0-based columns/rows to skip.
	offsetCol int
	offsetRow int

	mask      *image.Alpha    // Reusable coverage buffer for sprite blits
	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte
}

// NewCanvas creates a canvas fitting a logical arena into a terminal of the
// given size.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// fitArena returns the arena size in cells and its centring offsets. One
// cell on each side is kept free for the border. A cell is one pixel wide and
// two pixels tall, and pixels are treated as square.
func fitArena(termWidth, termHeight int, logicalWidth, logicalHeight float64) (cols, rows, offCol, offRow int) {
	aspect := logicalWidth / logicalHeight
	availW := float64(max(termWidth-2, 1))
	availH := float64(max(termHeight-2, 1) * 2)

	pw := math.Min(availW, availH*aspect)
	cols = max(int(pw), 1)
	rows = max(int(pw/aspect/2), 1)
	offCol = max((termWidth-cols)/2, 0)
	offRow = max((termHeight-rows)/2, 0)
	return cols, rows, offCol, offRow
}

// Resize refits the arena for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	cols, rows, offCol, offRow := fitArena(termWidth, termHeight, c.logicalWidth, c.logicalHeight)

	if cols != c.termWidth || rows != c.termHeight {
		c.termWidth = cols
		c.termHeight = rows
		c.subPixelHeight = rows * 2
		c.pixels = make([]bool, c.subPixelHeight*cols)
		c.mask = image.NewAlpha(image.Rect(0, 0, cols, c.subPixelHeight))
	}
	c.offsetCol = offCol
	c.offsetRow = offRow
	c.scaleX = float64(cols) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py)
}

// pixelRect converts a logical rectangle to the covering pixel rectangle,
// clipped to the canvas.
func (c *Canvas) pixelRect(r physics.Rect) image.Rectangle {
	pr := image.Rect(
		int(math.Floor(r.Left*c.scaleX)), int(math.Floor(r.Top*c.scaleY)),
		int(math.Ceil(r.Right()*c.scaleX))+1, int(math.Ceil(r.Bottom()*c.scaleY))+1,
	)
	return pr.Intersect(c.mask.Bounds())
}

// DrawImage blits the sr region of src centred on center (logical
// coordinates), stretched by scale and rotated clockwise by rotation degrees.
// Translucent sprites are dithered on a checkerboard. At least the centre
// pixel is always lit so tiny sprites stay visible.
func (c *Canvas) DrawImage(src image.Image, sr image.Rectangle, center, scale physics.Vec, rotation float64, alpha uint8) {
	size := physics.Vec{X: float64(sr.Dx()) * scale.X, Y: float64(sr.Dy()) * scale.Y}
	dr := c.pixelRect(physics.SpriteBounds(center, size, rotation))

	if !dr.Empty() {
		xdraw.Draw(c.mask, dr, image.Transparent, image.Point{}, xdraw.Src)

		rad := physics.DegToRad(rotation)
		cos, sin := math.Cos(rad), math.Sin(rad)
		cx := float64(sr.Min.X) + float64(sr.Dx())/2
		cy := float64(sr.Min.Y) + float64(sr.Dy())/2

		// Source pixel -> canvas pixel: translate to the frame centre, scale,
		// rotate, then place at center in canvas space.
		a := c.scaleX * cos * scale.X
		b := -c.scaleX * sin * scale.Y
		d := c.scaleY * sin * scale.X
		e := c.scaleY * cos * scale.Y
		m := f64.Aff3{
			a, b, c.scaleX*center.X - (a*cx + b*cy),
			d, e, c.scaleY*center.Y - (d*cx + e*cy),
		}
		xdraw.NearestNeighbor.Transform(c.mask, m, src, sr, xdraw.Over, nil)

		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if c.mask.AlphaAt(x, y).A < alphaThreshold {
					continue
				}
				if alpha < 0xff && (x+y)%2 != 0 {
					continue
				}
				c.setPixel(x, y)
			}
		}
	}

	c.SetFloat(center.X, center.Y)
}

// DrawMask lights every pixel of m above the threshold, with m's origin at
// the logical point topLeft.
func (c *Canvas) DrawMask(m *image.Alpha, topLeft physics.Vec) {
	ox := int(math.Floor(topLeft.X * c.scaleX))
	oy := int(math.Floor(topLeft.Y * c.scaleY))
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.AlphaAt(x, y).A >= alphaThreshold {
				c.setPixel(ox+x-b.Min.X, oy+y-b.Min.Y)
			}
		}
	}
}

// DrawHLine lights a horizontal run of pixels between two logical points.
func (c *Canvas) DrawHLine(x1, x2, y float64) {
	py := int(math.Floor(y * c.scaleY))
	for px := int(math.Floor(x1 * c.scaleX)); px <= int(math.Floor(x2*c.scaleX)); px++ {
		c.setPixel(px, py)
	}
}

// maxChunkSize is the maximum bytes to write at once. It stays under a
// typical 1500 byte MTU once SSH framing is added.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}

			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.renderBuf.WriteRune(ch)
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the arena when there is room.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	bar := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + bar + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + bar + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + bar)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + bar)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

// PixelScale returns how many canvas pixels one logical unit spans on each axis.
func (c *Canvas) PixelScale() (sx, sy float64) {
	return c.scaleX, c.scaleY
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// LabelCell returns the 1-based terminal cell where a character label
// covering r starts: the first cell whose centre lies inside r. A label one
// row tall and one column per rune then has every cell centre inside r, so
// clicks on the drawn text land in its bounds.
func (c *Canvas) LabelCell(r physics.Rect) (col, row int) {
	px := int(math.Ceil(r.Left*c.scaleX - 0.5))
	py := int(math.Ceil((r.Top*c.scaleY - 1) / 2))
	col, row = px+1+c.offsetCol, py+1+c.offsetRow

	// Correct rounding at the edges against the mapping clicks go through.
	p := c.TerminalToLogical(col, row)
	if p.X < r.Left {
		col++
	}
	if p.Y < r.Top {
		row++
	} else if p.Y >= r.Bottom() {
		row--
	}
	return col, row
}

// TerminalToLogical converts a 1-based terminal cell to the logical point at
// the centre of that cell.
func (c *Canvas) TerminalToLogical(col, row int) physics.Vec {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return physics.Vec{X: px / c.scaleX, Y: py / c.scaleY}
}
