package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	nebulaWisps      = 4
	nebulaWispPoints = 40
)

type wisp struct {
	offX, offY float64 // wisp center relative to the nebula center
	driftA     float64 // drift phase
	pts        []point // seeded point cloud, wisp-local
	c          display.Color
}

// Nebula is a slow-breathing cloud of tinted point wisps around a handful of
// embedded stars. Wisp shapes are seeded once; motion comes from drifting the
// whole cloud, so the texture holds still while the wisps sway.
type Nebula struct {
	env    Env
	pl     Placement
	span   float64
	wisps  [nebulaWisps]wisp
	stars  []point
	prev   []point
	inited bool
}

var nebulaTints = [nebulaWisps][3]uint8{
	{170, 80, 200}, // violet
	{220, 90, 150}, // pink
	{90, 120, 220}, // blue
	{150, 100, 210},
}

func NewNebula(env Env, pl Placement) *Nebula {
	n := &Nebula{env: env, pl: pl, span: 18 * pl.Scale}
	for i := range n.wisps {
		w := &n.wisps[i]
		w.offX = env.randFloat(-n.span/2, n.span/2)
		w.offY = env.randFloat(-n.span/2, n.span/2)
		w.driftA = env.randFloat(0, 2*math.Pi)
		t := nebulaTints[i]
		f := 0.6 + env.Rng.Float64()*0.4
		w.c = display.RGB565(uint8(float64(t[0])*f), uint8(float64(t[1])*f), uint8(float64(t[2])*f))
		for j := 0; j < nebulaWispPoints; j++ {
			// two uniform draws biased toward the wisp center
			r := n.span / 2 * env.Rng.Float64() * env.Rng.Float64()
			a := env.randFloat(0, 2*math.Pi)
			w.pts = append(w.pts, point{roundi(r * math.Cos(a)), roundi(r * math.Sin(a) * 0.7)})
		}
	}
	nStars := env.randRange(3, 6)
	for i := 0; i < nStars; i++ {
		n.stars = append(n.stars, point{
			env.randRange(-roundi(n.span*0.6), roundi(n.span*0.6)+1),
			env.randRange(-roundi(n.span*0.5), roundi(n.span*0.5)+1),
		})
	}
	return n
}

func (n *Nebula) Draw(d display.Display) {
	erasePoints(d, n.env.BG, n.prev)
	n.prev = n.prev[:0]

	t := float64(n.env.Millis()) / 1000.0
	breath := 0.85 + 0.15*math.Sin(t*0.8)

	for i := range n.wisps {
		w := &n.wisps[i]
		dx := 2 * math.Cos(t*0.3+w.driftA)
		dy := 1.5 * math.Sin(t*0.25+w.driftA)
		c := w.c.Scale(breath)
		for _, p := range w.pts {
			x := n.pl.X + roundi(w.offX+dx) + p.X
			y := n.pl.Y + roundi(w.offY+dy) + p.Y
			if n.env.inBounds(x, y) {
				d.DrawPixel(x, y, c)
				n.prev = append(n.prev, point{x, y})
			}
		}
	}
	for _, s := range n.stars {
		x, y := n.pl.X+s.X, n.pl.Y+s.Y
		if n.env.inBounds(x, y) {
			d.DrawPixel(x, y, display.White)
			n.prev = append(n.prev, point{x, y})
		}
	}
	n.inited = true
}

func (n *Nebula) Erase(d display.Display) {
	if !n.inited {
		return
	}
	erasePoints(d, n.env.BG, n.prev)
	n.prev = n.prev[:0]
	n.inited = false
}
