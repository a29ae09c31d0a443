package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	supernovaParticles = 60
	supernovaBuildMs   = 1000
	supernovaFadeMs    = 3000
	supernovaWaveEndMs = 5000
)

type ember struct {
	x, y       float64
	vx, vy     float64
	brightness int
	active     bool
}

// Supernova runs a fixed timeline from creation: a swelling core, then a
// detonation that flings embers outward behind an expanding shockwave ring,
// then a long fade. Embers and the ring are point-cached; the core disc is
// erased by bound.
type Supernova struct {
	env    Env
	pl     Placement
	born   int64
	coreR  int
	embers [supernovaParticles]ember
	fired  bool
	prev   []point
	inited bool
}

func NewSupernova(env Env, pl Placement) *Supernova {
	s := &Supernova{env: env, pl: pl, born: env.Millis(), coreR: roundi(5 * pl.Scale)}
	if s.coreR < 3 {
		s.coreR = 3
	}
	return s
}

func (s *Supernova) detonate() {
	for i := range s.embers {
		e := &s.embers[i]
		a := s.env.randFloat(0, 2*math.Pi)
		sp := s.env.randFloat(1.0, 2.0) * s.pl.Scale
		e.x, e.y = float64(s.pl.X), float64(s.pl.Y)
		e.vx, e.vy = math.Cos(a)*sp, math.Sin(a)*sp
		e.brightness = 255
		e.active = true
	}
	s.fired = true
}

func emberColor(b int) display.Color {
	switch {
	case b > 200:
		return display.RGB565(255, 255, uint8(b))
	case b > 140:
		return display.RGB565(255, uint8(b), 60)
	case b > 80:
		return display.RGB565(uint8(b+80), uint8(b/2), 20)
	default:
		return display.RGB565(uint8(b+60), uint8(b/3), 10)
	}
}

func (s *Supernova) Draw(d display.Display) {
	erasePoints(d, s.env.BG, s.prev)
	s.prev = s.prev[:0]
	d.FillCircle(s.pl.X, s.pl.Y, s.coreR+2, s.env.BG)

	elapsed := s.env.Millis() - s.born

	if elapsed < supernovaBuildMs {
		pulse := 0.8 + 0.2*math.Sin(float64(elapsed)/200)
		r := roundi(float64(s.coreR) * (0.6 + 0.4*float64(elapsed)/supernovaBuildMs))
		c := uint8(clampf(255*pulse, 0, 255))
		d.FillCircle(s.pl.X, s.pl.Y, r, display.RGB565(c, c, uint8(clampf(float64(c)*0.85, 0, 255))))
		s.inited = true
		return
	}

	if !s.fired {
		s.detonate()
	}

	fading := elapsed >= supernovaFadeMs
	for i := range s.embers {
		e := &s.embers[i]
		if !e.active {
			continue
		}
		e.x += e.vx
		e.y += e.vy
		if fading {
			e.brightness -= 2
		}
		x, y := roundi(e.x), roundi(e.y)
		if e.brightness <= 0 || !s.env.inBounds(x, y) {
			e.active = false
			continue
		}
		d.DrawPixel(x, y, emberColor(e.brightness))
		s.prev = append(s.prev, point{x, y})
	}

	if elapsed < supernovaWaveEndMs {
		waveR := 5 + float64(elapsed-supernovaBuildMs)/100*s.pl.Scale
		width := roundi(3 * s.pl.Scale)
		fade := 1 - float64(elapsed-supernovaBuildMs)/float64(supernovaWaveEndMs-supernovaBuildMs)
		for w := 0; w < width; w++ {
			r := roundi(waveR) - w
			if r <= 0 {
				break
			}
			b := uint8(clampf(200*fade*(1-float64(w)/float64(width)), 0, 255))
			s.ring(d, r, display.RGB565(b, uint8(float64(b)*0.7), uint8(float64(b)*0.3)))
		}
	}

	// residual core glows until most embers are gone
	live := 0
	for i := range s.embers {
		if s.embers[i].active {
			live++
		}
	}
	if live > 10 {
		g := uint8(clampf(float64(live)*2, 0, 200))
		d.FillCircle(s.pl.X, s.pl.Y, s.coreR/2, display.RGB565(g, g, uint8(float64(g)*0.8)))
	}
	s.inited = true
}

// Done reports whether the detonation has burned out.
func (s *Supernova) Done() bool {
	if !s.fired {
		return false
	}
	live := 0
	for i := range s.embers {
		if s.embers[i].active {
			live++
		}
	}
	return live <= 10
}

// ring draws a circle outline through the point cache so the wave erases
// exactly.
func (s *Supernova) ring(d display.Display, r int, c display.Color) {
	x, y, dd := 0, r, 1-r
	plot := func(px, py int) {
		if s.env.inBounds(px, py) {
			d.DrawPixel(px, py, c)
			s.prev = append(s.prev, point{px, py})
		}
	}
	for x <= y {
		cx, cy := s.pl.X, s.pl.Y
		plot(cx+x, cy+y)
		plot(cx-x, cy+y)
		plot(cx+x, cy-y)
		plot(cx-x, cy-y)
		plot(cx+y, cy+x)
		plot(cx-y, cy+x)
		plot(cx+y, cy-x)
		plot(cx-y, cy-x)
		if dd < 0 {
			dd += 2*x + 3
		} else {
			dd += 2*(x-y) + 5
			y--
		}
		x++
	}
}

func (s *Supernova) Erase(d display.Display) {
	if !s.inited {
		return
	}
	erasePoints(d, s.env.BG, s.prev)
	s.prev = s.prev[:0]
	d.FillCircle(s.pl.X, s.pl.Y, s.coreR+2, s.env.BG)
	s.inited = false
}
