package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

// SpaceStation is a slowly rotating wheel: a hub, an outer ring, four
// spokes, and navigation lights that blink out of phase. Rotating parts are
// point-cached; the hub is erased by bound.
type SpaceStation struct {
	env    Env
	pl     Placement
	hubR   int
	ringR  float64
	prev   []point
	inited bool
}

func NewSpaceStation(env Env, pl Placement) *SpaceStation {
	s := &SpaceStation{env: env, pl: pl, hubR: roundi(3 * pl.Scale)}
	if s.hubR < 2 {
		s.hubR = 2
	}
	s.ringR = 14 * pl.Scale
	return s
}

func (s *SpaceStation) Draw(d display.Display) {
	erasePoints(d, s.env.BG, s.prev)
	s.prev = s.prev[:0]

	cx, cy := s.pl.X, s.pl.Y
	now := s.env.Millis()
	rot := float64(now) / 6000.0 * 2 * math.Pi

	hull := display.Gray(150)
	dark := display.Gray(90)

	// outer ring, squashed for perspective
	for a := 0; a < 360; a += 2 {
		rad := float64(a)*math.Pi/180 + rot
		x := cx + roundi(s.ringR*math.Cos(rad))
		y := cy + roundi(s.ringR*math.Sin(rad)*0.55)
		if !s.env.inBounds(x, y) {
			continue
		}
		c := hull
		if math.Sin(rad) < 0 {
			c = dark
		}
		d.DrawPixel(x, y, c)
		s.prev = append(s.prev, point{x, y})
	}

	// four spokes
	for i := 0; i < 4; i++ {
		a := rot + float64(i)*math.Pi/2
		for r := float64(s.hubR); r < s.ringR; r += 1 {
			x := cx + roundi(r*math.Cos(a))
			y := cy + roundi(r*math.Sin(a)*0.55)
			if !s.env.inBounds(x, y) {
				continue
			}
			d.DrawPixel(x, y, dark)
			s.prev = append(s.prev, point{x, y})
		}
	}

	// navigation lights on opposite rim points, blinking out of phase
	for i := 0; i < 2; i++ {
		a := rot + float64(i)*math.Pi
		on := (now/400+int64(i))%2 == 0
		x := cx + roundi(s.ringR*math.Cos(a))
		y := cy + roundi(s.ringR*math.Sin(a)*0.55)
		if !s.env.inBounds(x, y) {
			continue
		}
		if on {
			c := display.RGB565(255, 60, 60)
			if i == 1 {
				c = display.RGB565(60, 255, 60)
			}
			d.DrawPixel(x, y, c)
		}
		s.prev = append(s.prev, point{x, y})
	}

	// hub with a lit window band
	d.FillCircle(cx, cy, s.hubR, hull)
	d.DrawFastHLine(cx-s.hubR+1, cy, 2*s.hubR-1, display.RGB565(230, 220, 150))
	s.inited = true
}

func (s *SpaceStation) Erase(d display.Display) {
	if !s.inited {
		return
	}
	erasePoints(d, s.env.BG, s.prev)
	s.prev = s.prev[:0]
	d.FillCircle(s.pl.X, s.pl.Y, s.hubR+1, s.env.BG)
	s.inited = false
}
