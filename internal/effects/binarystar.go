package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

// BinaryStar is two unequal stars orbiting a shared barycenter with a faint
// mass-transfer stream from the larger to the smaller. Each star erases its
// previous glow disc before moving.
type BinaryStar struct {
	env    Env
	pl     Placement
	orbitA float64 // primary orbit radius
	orbitB float64
	radA   int
	radB   int
	prevA  point
	prevB  point
	stream []point
	inited bool
}

func NewBinaryStar(env Env, pl Placement) *BinaryStar {
	b := &BinaryStar{env: env, pl: pl, prevA: noPoint, prevB: noPoint}
	b.radA = roundi(4 * pl.Scale)
	b.radB = roundi(2.5 * pl.Scale)
	if b.radA < 2 {
		b.radA = 2
	}
	if b.radB < 1 {
		b.radB = 1
	}
	// heavier star sits closer to the barycenter
	b.orbitA = 5 * pl.Scale
	b.orbitB = 11 * pl.Scale
	return b
}

func (b *BinaryStar) Draw(d display.Display) {
	if b.prevA.X >= 0 {
		d.FillCircle(b.prevA.X, b.prevA.Y, b.radA+1, b.env.BG)
	}
	if b.prevB.X >= 0 {
		d.FillCircle(b.prevB.X, b.prevB.Y, b.radB+1, b.env.BG)
	}
	erasePoints(d, b.env.BG, b.stream)
	b.stream = b.stream[:0]

	t := float64(b.env.Millis()) / 1000.0
	a := t * 1.2
	ax := b.pl.X + roundi(b.orbitA*math.Cos(a))
	ay := b.pl.Y + roundi(b.orbitA*math.Sin(a)*0.6)
	bx := b.pl.X + roundi(b.orbitB*math.Cos(a+math.Pi))
	by := b.pl.Y + roundi(b.orbitB*math.Sin(a+math.Pi)*0.6)

	// mass transfer stream, drawn under both stars
	for i := 1; i < 8; i++ {
		f := float64(i) / 8
		// sag the stream toward the barycenter
		sx := roundi(float64(ax) + (float64(bx)-float64(ax))*f)
		sy := roundi(float64(ay) + (float64(by)-float64(ay))*f)
		if !b.env.inBounds(sx, sy) {
			continue
		}
		g := uint8(clampf(150*(1-f)+50, 0, 255))
		d.DrawPixel(sx, sy, display.RGB565(g, uint8(float64(g)*0.8), uint8(float64(g)*0.5)))
		b.stream = append(b.stream, point{sx, sy})
	}

	pulse := 0.9 + 0.1*math.Sin(t*4)
	d.FillCircle(ax, ay, b.radA+1, display.RGB565(120, 60, 20))
	d.FillCircle(ax, ay, b.radA, display.RGB565(255, uint8(170*pulse), 60))
	b.prevA = point{ax, ay}

	d.FillCircle(bx, by, b.radB+1, display.RGB565(40, 60, 120))
	d.FillCircle(bx, by, b.radB, display.RGB565(uint8(190*pulse), uint8(220*pulse), 255))
	b.prevB = point{bx, by}
	b.inited = true
}

func (b *BinaryStar) Erase(d display.Display) {
	if !b.inited {
		return
	}
	if b.prevA.X >= 0 {
		d.FillCircle(b.prevA.X, b.prevA.Y, b.radA+1, b.env.BG)
		b.prevA = noPoint
	}
	if b.prevB.X >= 0 {
		d.FillCircle(b.prevB.X, b.prevB.Y, b.radB+1, b.env.BG)
		b.prevB = noPoint
	}
	erasePoints(d, b.env.BG, b.stream)
	b.stream = b.stream[:0]
	b.inited = false
}
