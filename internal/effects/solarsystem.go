package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

type orbiter struct {
	orbitR float64
	radius int
	angle  float64
	speed  float64 // radians per second
	c      display.Color
	prev   point
}

// SolarSystem is a glowing sun with a few planets tracked along dotted
// orbits. Each planet erases its own previous disc before moving; the sun
// and orbit dots are static and simply redrawn.
type SolarSystem struct {
	env     Env
	pl      Placement
	sunR    int
	planets []orbiter
	inited  bool
}

var orbiterTints = [][3]uint8{
	{170, 170, 180},
	{200, 140, 80},
	{90, 140, 220},
	{190, 90, 70},
}

func NewSolarSystem(env Env, pl Placement) *SolarSystem {
	s := &SolarSystem{env: env, pl: pl, sunR: roundi(4 * pl.Scale)}
	if s.sunR < 2 {
		s.sunR = 2
	}
	n := env.randRange(2, 5)
	for i := 0; i < n; i++ {
		t := orbiterTints[i%len(orbiterTints)]
		orbit := float64(s.sunR) + (6+float64(i)*6)*pl.Scale
		s.planets = append(s.planets, orbiter{
			orbitR: orbit,
			radius: 1 + env.Rng.Intn(2),
			angle:  env.randFloat(0, 2*math.Pi),
			// inner planets sweep faster, loosely Keplerian
			speed: 1.6 / math.Sqrt(orbit/10),
			c:     display.RGB565(t[0], t[1], t[2]),
			prev:  noPoint,
		})
	}
	return s
}

func (s *SolarSystem) Draw(d display.Display) {
	t := float64(s.env.Millis()) / 1000.0

	// faint dotted orbit tracks
	for _, p := range s.planets {
		for a := 0; a < 360; a += 12 {
			rad := float64(a) * math.Pi / 180
			x := s.pl.X + roundi(p.orbitR*math.Cos(rad))
			y := s.pl.Y + roundi(p.orbitR*math.Sin(rad))
			d.DrawPixel(x, y, display.Gray(50))
		}
	}

	for i := range s.planets {
		p := &s.planets[i]
		if p.prev.X >= 0 {
			d.FillCircle(p.prev.X, p.prev.Y, p.radius, s.env.BG)
		}
		a := p.angle + t*p.speed
		x := s.pl.X + roundi(p.orbitR*math.Cos(a))
		y := s.pl.Y + roundi(p.orbitR*math.Sin(a))
		d.FillCircle(x, y, p.radius, p.c)
		p.prev = point{x, y}
	}

	// sun over everything
	for r := s.sunR; r > 0; r-- {
		in := mapRange(float64(r), 0, float64(s.sunR), 255, 110) / 255
		d.DrawCircle(s.pl.X, s.pl.Y, r, display.RGB565(
			uint8(255*in), uint8(210*in), uint8(60*in)))
	}
	d.DrawPixel(s.pl.X, s.pl.Y, display.RGB565(255, 240, 200))
	s.inited = true
}

func (s *SolarSystem) Erase(d display.Display) {
	if !s.inited {
		return
	}
	outer := 0
	for i := range s.planets {
		b := roundi(s.planets[i].orbitR) + s.planets[i].radius
		if b > outer {
			outer = b
		}
		s.planets[i].prev = noPoint
	}
	d.FillCircle(s.pl.X, s.pl.Y, outer+2, s.env.BG)
	s.inited = false
}
