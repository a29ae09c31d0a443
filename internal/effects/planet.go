package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

var planetPalettes = [][3]uint8{
	{210, 160, 90},  // sandy
	{120, 150, 210}, // ice giant
	{190, 90, 60},   // rust
	{110, 180, 140}, // green-blue
	{200, 180, 150}, // pale
}

type speckle struct {
	dx, dy int
	c      display.Color
}

// Planet is a banded disc with seeded surface noise and an optional ring.
// The surface is generated once per instance so repeated draws are stable.
type Planet struct {
	env      Env
	pl       Placement
	radius   int
	bands    []display.Color
	speckles []speckle
	hasRing  bool
	ringCol  display.Color
	inited   bool
}

func NewPlanet(env Env, pl Placement) *Planet {
	p := &Planet{env: env, pl: pl, radius: roundi(10 * pl.Scale)}
	if p.radius < 3 {
		p.radius = 3
	}
	base := planetPalettes[env.Rng.Intn(len(planetPalettes))]
	nBands := env.randRange(5, 9)
	for i := 0; i < nBands; i++ {
		f := 0.7 + env.Rng.Float64()*0.5
		p.bands = append(p.bands, display.RGB565(
			uint8(clampf(float64(base[0])*f, 0, 255)),
			uint8(clampf(float64(base[1])*f, 0, 255)),
			uint8(clampf(float64(base[2])*f, 0, 255))))
	}
	nSpeckles := p.radius * 3
	for i := 0; i < nSpeckles; i++ {
		dx := env.randRange(-p.radius+1, p.radius)
		dy := env.randRange(-p.radius+1, p.radius)
		if dx*dx+dy*dy >= p.radius*p.radius {
			continue
		}
		f := 0.5 + env.Rng.Float64()*0.4
		p.speckles = append(p.speckles, speckle{dx, dy, display.RGB565(
			uint8(float64(base[0])*f), uint8(float64(base[1])*f), uint8(float64(base[2])*f))})
	}
	p.hasRing = env.Rng.Intn(2) == 0
	p.ringCol = display.RGB565(200, 190, 160)
	return p
}

func (p *Planet) Draw(d display.Display) {
	cx, cy, r := p.pl.X, p.pl.Y, p.radius
	t := float64(p.env.Millis()) / 800.0

	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		band := p.bands[(dy+r)*len(p.bands)/(2*r+1)]
		// slow terminator shimmer, bounded so bands stay recognizable
		f := 0.9 + 0.1*math.Sin(t+float64(dy)*0.35)
		d.DrawFastHLine(cx-half, cy+dy, 2*half+1, band.Scale(f))
	}
	for _, s := range p.speckles {
		d.DrawPixel(cx+s.dx, cy+s.dy, s.c)
	}

	if p.hasRing {
		rx := float64(r) * 1.8
		ry := float64(r) * 0.5
		for a := 0; a < 360; a += 2 {
			rad := float64(a) * math.Pi / 180
			dx := rx * math.Cos(rad)
			dy := ry * math.Sin(rad)
			// hide the arc that passes behind the upper hemisphere
			if dy < 0 && dx*dx+dy*dy < float64((r+1)*(r+1)) {
				continue
			}
			d.DrawPixel(cx+roundi(dx), cy+roundi(dy), p.ringCol)
		}
	}
	p.inited = true
}

func (p *Planet) Erase(d display.Display) {
	if !p.inited {
		return
	}
	bound := p.radius + 2
	if p.hasRing {
		bound = roundi(float64(p.radius)*1.8) + 2
	}
	d.FillCircle(p.pl.X, p.pl.Y, bound, p.env.BG)
	p.inited = false
}
