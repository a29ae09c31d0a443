package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

// Star is the showcase star: a glowing core with four gradient flares.
type Star struct {
	env    Env
	pl     Placement
	radius int
	inited bool
}

func NewStar(env Env, pl Placement) *Star {
	return &Star{env: env, pl: pl, radius: roundi(8 * pl.Scale)}
}

func (s *Star) Draw(d display.Display) {
	cx, cy := s.pl.X, s.pl.Y

	// core glow: concentric rings fading outward
	for r := s.radius; r > 0; r-- {
		in := mapRange(float64(r), 0, float64(s.radius), 255, 50) / 255
		d.DrawCircle(cx, cy, r, display.RGB565(
			uint8(255*in), uint8(255*in), uint8(240*in)))
	}
	d.FillCircle(cx, cy, s.radius/2, display.White)

	// four flares with a brightness gradient
	flareLen := s.radius * 3 / 2
	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		for j := 0; j < flareLen; j++ {
			x := cx + roundi(float64(j)*math.Cos(angle))
			y := cy + roundi(float64(j)*math.Sin(angle))
			b := 1 - float64(j)/float64(flareLen)
			d.DrawPixel(x, y, display.RGB565(
				uint8(255*b), uint8(255*b), uint8(240*b)))
		}
	}
	s.inited = true
}

func (s *Star) Erase(d display.Display) {
	if !s.inited {
		return
	}
	d.FillCircle(s.pl.X, s.pl.Y, roundi(float64(s.radius)*1.6)+2, s.env.BG)
	s.inited = false
}
