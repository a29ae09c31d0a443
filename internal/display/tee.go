package display

// Tee fans every draw out to two displays, typically the panel and the
// framebuffer mirrored to preview clients.
type Tee struct {
	a, b Display
}

func NewTee(a, b Display) *Tee { return &Tee{a: a, b: b} }

func (t *Tee) Size() (int, int) { return t.a.Size() }

func (t *Tee) DrawPixel(x, y int, c Color) {
	t.a.DrawPixel(x, y, c)
	t.b.DrawPixel(x, y, c)
}

func (t *Tee) DrawFastHLine(x, y, w int, c Color) {
	t.a.DrawFastHLine(x, y, w, c)
	t.b.DrawFastHLine(x, y, w, c)
}

func (t *Tee) DrawLine(x0, y0, x1, y1 int, c Color) {
	t.a.DrawLine(x0, y0, x1, y1, c)
	t.b.DrawLine(x0, y0, x1, y1, c)
}

func (t *Tee) DrawCircle(cx, cy, r int, c Color) {
	t.a.DrawCircle(cx, cy, r, c)
	t.b.DrawCircle(cx, cy, r, c)
}

func (t *Tee) FillCircle(cx, cy, r int, c Color) {
	t.a.FillCircle(cx, cy, r, c)
	t.b.FillCircle(cx, cy, r, c)
}

func (t *Tee) DrawRect(x, y, w, h int, c Color) {
	t.a.DrawRect(x, y, w, h, c)
	t.b.DrawRect(x, y, w, h, c)
}

func (t *Tee) FillRect(x, y, w, h int, c Color) {
	t.a.FillRect(x, y, w, h, c)
	t.b.FillRect(x, y, w, h, c)
}

func (t *Tee) Fill(c Color) {
	t.a.Fill(c)
	t.b.Fill(c)
}
