package display

// Framebuffer is an in-memory Display used by tests, the simulator and the
// websocket preview. Out-of-bounds writes are dropped.
type Framebuffer struct {
	w, h int
	pix  []Color
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{w: w, h: h, pix: make([]Color, w*h)}
}

func (f *Framebuffer) Size() (int, int) { return f.w, f.h }

// At returns the pixel at (x,y); out-of-bounds reads return Black.
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return Black
	}
	return f.pix[y*f.w+x]
}

// Pixels exposes the backing store in raster order. Callers must not resize it.
func (f *Framebuffer) Pixels() []Color { return f.pix }

// Snapshot copies the current frame.
func (f *Framebuffer) Snapshot() []Color {
	out := make([]Color, len(f.pix))
	copy(out, f.pix)
	return out
}

// Count returns the number of pixels that differ from c.
func (f *Framebuffer) Count(c Color) int {
	n := 0
	for _, p := range f.pix {
		if p != c {
			n++
		}
	}
	return n
}

func (f *Framebuffer) DrawPixel(x, y int, c Color) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.pix[y*f.w+x] = c
}

func (f *Framebuffer) DrawFastHLine(x, y, w int, c Color) {
	if y < 0 || y >= f.h || w <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > f.w {
		w = f.w - x
	}
	for i := 0; i < w; i++ {
		f.pix[y*f.w+x+i] = c
	}
}

func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) { Line(f, x0, y0, x1, y1, c) }
func (f *Framebuffer) DrawCircle(cx, cy, r int, c Color)    { Circle(f, cx, cy, r, c) }
func (f *Framebuffer) FillCircle(cx, cy, r int, c Color)    { Disc(f, cx, cy, r, c) }
func (f *Framebuffer) DrawRect(x, y, w, h int, c Color)     { Rect(f, x, y, w, h, c) }
func (f *Framebuffer) FillRect(x, y, w, h int, c Color)     { FillRectSpans(f, x, y, w, h, c) }

func (f *Framebuffer) Fill(c Color) {
	for i := range f.pix {
		f.pix[i] = c
	}
}
