// Package display is the pixel boundary of the animation engine: a small
// primitive set with RGB565 color, implemented by an in-memory framebuffer
// and by the ST7735 TFT driver. Coordinates are top-left origin; pixels
// outside the panel are silently clipped.
package display

// Color is a packed 5-6-5 RGB value, the panel's native pixel format.
type Color uint16

const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// RGB565 packs 8-bit channels into 5-6-5.
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// Gray packs an 8-bit gray level.
func Gray(v uint8) Color { return RGB565(v, v, v) }

// R8, G8 and B8 expand a packed channel back to 8 bits.
func (c Color) R8() uint8 { return uint8((c >> 11) & 0x1F << 3) }
func (c Color) G8() uint8 { return uint8((c >> 5) & 0x3F << 2) }
func (c Color) B8() uint8 { return uint8(c & 0x1F << 3) }

// Scale multiplies each channel by f (clamped to [0,1]).
func (c Color) Scale(f float64) Color {
	if f <= 0 {
		return Black
	}
	if f >= 1 {
		return c
	}
	return RGB565(
		uint8(float64(c.R8())*f),
		uint8(float64(c.G8())*f),
		uint8(float64(c.B8())*f),
	)
}

// Surface is the minimal pixel sink the shared rasterizers need.
type Surface interface {
	Size() (w, h int)
	DrawPixel(x, y int, c Color)
	DrawFastHLine(x, y, w int, c Color)
}

// Display is the full primitive set the effects draw against.
type Display interface {
	Surface
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawCircle(cx, cy, r int, c Color)
	FillCircle(cx, cy, r int, c Color)
	DrawRect(x, y, w, h int, c Color)
	FillRect(x, y, w, h int, c Color)
	Fill(c Color)
}

// Line draws with Bresenham's algorithm.
func Line(s Surface, x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.DrawPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a midpoint circle outline. The same recurrence drives Disc,
// so Disc(r) always covers every pixel Circle(r') touches for r' <= r.
func Circle(s Surface, cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	if r == 0 {
		s.DrawPixel(cx, cy, c)
		return
	}
	x, y := 0, r
	d := 1 - r
	for x <= y {
		s.DrawPixel(cx+x, cy+y, c)
		s.DrawPixel(cx-x, cy+y, c)
		s.DrawPixel(cx+x, cy-y, c)
		s.DrawPixel(cx-x, cy-y, c)
		s.DrawPixel(cx+y, cy+x, c)
		s.DrawPixel(cx-y, cy+x, c)
		s.DrawPixel(cx+y, cy-x, c)
		s.DrawPixel(cx-y, cy-x, c)
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}
}

// Disc fills a circle with horizontal spans derived from the same midpoint
// recurrence as Circle.
func Disc(s Surface, cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	s.DrawFastHLine(cx-r, cy, 2*r+1, c)
	x, y := 0, r
	d := 1 - r
	for x <= y {
		s.DrawFastHLine(cx-x, cy+y, 2*x+1, c)
		s.DrawFastHLine(cx-x, cy-y, 2*x+1, c)
		s.DrawFastHLine(cx-y, cy+x, 2*y+1, c)
		s.DrawFastHLine(cx-y, cy-x, 2*y+1, c)
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}
}

// Rect draws a rectangle outline.
func Rect(s Surface, x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	s.DrawFastHLine(x, y, w, c)
	s.DrawFastHLine(x, y+h-1, w, c)
	for yy := y + 1; yy < y+h-1; yy++ {
		s.DrawPixel(x, yy, c)
		s.DrawPixel(x+w-1, yy, c)
	}
}

// FillRectSpans fills a rectangle with horizontal spans.
func FillRectSpans(s Surface, x, y, w, h int, c Color) {
	for yy := y; yy < y+h; yy++ {
		s.DrawFastHLine(x, yy, w, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
