package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	galaxyArms      = 2
	galaxyArmPoints = 55
)

// Galaxy draws a rotating two-armed log spiral around a warm core. The arm
// point pattern is seeded once and only the rotation angle animates, so the
// arms read as a rigid disc spinning.
type Galaxy struct {
	env    Env
	pl     Placement
	coreR  int
	maxR   float64
	armPts []struct{ r, a, b float64 } // radius, base angle, brightness
	prev   []point
	inited bool
}

func NewGalaxy(env Env, pl Placement) *Galaxy {
	g := &Galaxy{env: env, pl: pl}
	g.coreR = roundi(4 * pl.Scale)
	if g.coreR < 2 {
		g.coreR = 2
	}
	g.maxR = 20 * pl.Scale

	for arm := 0; arm < galaxyArms; arm++ {
		base := float64(arm) * math.Pi
		for i := 0; i < galaxyArmPoints; i++ {
			f := float64(i) / float64(galaxyArmPoints)
			r := float64(g.coreR) + f*(g.maxR-float64(g.coreR))
			// log-spiral winding plus per-point jitter
			a := base + f*2.6 + env.randFloat(-0.12, 0.12)
			g.armPts = append(g.armPts, struct{ r, a, b float64 }{
				r: r + env.randFloat(-1, 1),
				a: a,
				b: 1 - f*0.7,
			})
		}
	}
	return g
}

func (g *Galaxy) Draw(d display.Display) {
	erasePoints(d, g.env.BG, g.prev)
	g.prev = g.prev[:0]

	rot := float64(g.env.Millis()) / 4000.0 * 2 * math.Pi

	for _, p := range g.armPts {
		a := p.a + rot
		x := g.pl.X + roundi(p.r*math.Cos(a))
		y := g.pl.Y + roundi(p.r*math.Sin(a)*0.6) // tilt the disc
		if !g.env.inBounds(x, y) {
			continue
		}
		b := uint8(clampf(255*p.b, 60, 255))
		d.DrawPixel(x, y, display.RGB565(b, b, uint8(clampf(float64(b)*0.8+40, 0, 255))))
		g.prev = append(g.prev, point{x, y})
	}

	// warm core over the arms
	for r := g.coreR; r > 0; r-- {
		in := mapRange(float64(r), 0, float64(g.coreR), 255, 90) / 255
		d.DrawCircle(g.pl.X, g.pl.Y, r, display.RGB565(
			uint8(255*in), uint8(230*in), uint8(170*in)))
	}
	d.DrawPixel(g.pl.X, g.pl.Y, display.White)
	g.inited = true
}

func (g *Galaxy) Erase(d display.Display) {
	if !g.inited {
		return
	}
	erasePoints(d, g.env.BG, g.prev)
	g.prev = g.prev[:0]
	d.FillCircle(g.pl.X, g.pl.Y, g.coreR+1, g.env.BG)
	g.inited = false
}
