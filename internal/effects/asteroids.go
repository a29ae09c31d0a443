package effects

import (
	"github.com/tejaspatelll/warpdrive/internal/display"
)

const asteroidCount = 12

type asteroid struct {
	x, y   float64
	vx, vy float64
	radius int
	c      display.Color
	prev   point
	prevR  int
}

// AsteroidField is a drifting belt of small rocks that wrap around a box
// centered on the placement. Each rock erases its previous disc before
// moving, so the field needs no bounding erase.
type AsteroidField struct {
	env    Env
	pl     Placement
	halfW  int
	halfH  int
	rocks  [asteroidCount]asteroid
	inited bool
}

func NewAsteroidField(env Env, pl Placement) *AsteroidField {
	f := &AsteroidField{env: env, pl: pl}
	f.halfW = roundi(26 * pl.Scale)
	f.halfH = roundi(16 * pl.Scale)
	for i := range f.rocks {
		r := &f.rocks[i]
		r.x = env.randFloat(-float64(f.halfW), float64(f.halfW))
		r.y = env.randFloat(-float64(f.halfH), float64(f.halfH))
		r.vx = env.randFloat(0.1, 0.5)
		r.vy = env.randFloat(-0.1, 0.1)
		r.radius = env.Rng.Intn(2) // 0 is a single pixel
		g := uint8(env.randRange(90, 170))
		r.c = display.RGB565(g, uint8(float64(g)*0.9), uint8(float64(g)*0.75))
		r.prev = noPoint
	}
	return f
}

func (f *AsteroidField) Draw(d display.Display) {
	for i := range f.rocks {
		r := &f.rocks[i]
		if r.prev.X >= 0 {
			if r.prevR > 0 {
				d.FillCircle(r.prev.X, r.prev.Y, r.prevR, f.env.BG)
			} else {
				d.DrawPixel(r.prev.X, r.prev.Y, f.env.BG)
			}
		}

		r.x += r.vx
		r.y += r.vy
		if r.x > float64(f.halfW) {
			r.x = -float64(f.halfW)
			r.y = f.env.randFloat(-float64(f.halfH), float64(f.halfH))
		}
		if r.y > float64(f.halfH) {
			r.y = -float64(f.halfH)
		} else if r.y < -float64(f.halfH) {
			r.y = float64(f.halfH)
		}

		x, y := f.pl.X+roundi(r.x), f.pl.Y+roundi(r.y)
		if !f.env.inBounds(x, y) {
			r.prev = noPoint
			continue
		}
		if r.radius > 0 {
			d.FillCircle(x, y, r.radius, r.c)
		} else {
			d.DrawPixel(x, y, r.c)
		}
		r.prev = point{x, y}
		r.prevR = r.radius
	}
	f.inited = true
}

func (f *AsteroidField) Erase(d display.Display) {
	if !f.inited {
		return
	}
	for i := range f.rocks {
		r := &f.rocks[i]
		if r.prev.X >= 0 {
			if r.prevR > 0 {
				d.FillCircle(r.prev.X, r.prev.Y, r.prevR, f.env.BG)
			} else {
				d.DrawPixel(r.prev.X, r.prev.Y, f.env.BG)
			}
			r.prev = noPoint
		}
	}
	f.inited = false
}
