package effects

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const starCount = 60

type star struct {
	realX, realY float64 // float position for smooth warp movement
	brightness   int     // 150..255
	increasing   bool
}

// Starfield is the ambient background layer: twinkling points in idle and
// showcase, radial motion streaks while accelerating. When the warp input
// disengages the streaks retract over a short tween instead of vanishing.
type Starfield struct {
	env       Env
	stars     [starCount]star
	prevHead  [starCount]point
	prevTail  [starCount]point
	warping   bool
	intensity float64
	retract   *gween.Tween
}

func NewStarfield(env Env) *Starfield {
	s := &Starfield{env: env}
	for i := range s.stars {
		s.stars[i] = star{
			realX:      float64(env.Rng.Intn(env.W)),
			realY:      float64(env.Rng.Intn(env.H)),
			brightness: env.randRange(150, 256),
			increasing: env.Rng.Intn(2) == 0,
		}
		s.prevHead[i] = noPoint
		s.prevTail[i] = noPoint
	}
	return s
}

// Update erases last frame's points and streaks, advances the field and
// redraws. dt is the frame delta in seconds (drives the retraction tween).
func (s *Starfield) Update(d display.Display, warping bool, intensity float64, dt float64) {
	for i := range s.stars {
		s.erasePrev(d, i)
	}

	streak := 0.0
	switch {
	case warping:
		streak = 1
		s.retract = nil
		s.intensity = intensity
	case s.warping:
		// falling edge: retract streaks instead of snapping to points
		s.retract = gween.New(1, 0, 0.5, ease.OutCubic)
	}
	if !warping && s.retract != nil {
		v, done := s.retract.Update(float32(dt))
		streak = float64(v)
		if done {
			s.retract = nil
			streak = 0
		}
	}
	s.warping = warping

	cx, cy := float64(s.env.W)/2, float64(s.env.H)/2
	maxDist := math.Hypot(cx, cy)

	for i := range s.stars {
		st := &s.stars[i]
		if warping {
			dx, dy := st.realX-cx, st.realY-cy
			dist := math.Hypot(dx, dy)
			if dist < 1 {
				dist = 1 // zero-length vector guard
			}
			speed := (0.4 + 3.0*dist/maxDist) * (0.5 + 2.5*intensity)
			st.realX += dx / dist * speed
			st.realY += dy / dist * speed
			if !s.env.inBounds(roundi(st.realX), roundi(st.realY)) {
				s.recycle(st)
			}
		} else {
			step := 5
			if st.increasing {
				st.brightness += step
				if st.brightness >= 255 {
					st.brightness = 255
					st.increasing = false
				}
			} else {
				st.brightness -= step
				if st.brightness <= 150 {
					st.brightness = 150
					st.increasing = true
				}
			}
		}

		x, y := roundi(st.realX), roundi(st.realY)
		head := display.Gray(uint8(st.brightness))
		if streak > 0 {
			dx, dy := st.realX-cx, st.realY-cy
			dist := math.Hypot(dx, dy)
			if dist < 1 {
				dist = 1
			}
			length := streak * (2 + 14*dist/maxDist) * (0.3 + 0.7*s.intensity)
			tx := roundi(st.realX - dx/dist*length)
			ty := roundi(st.realY - dy/dist*length)
			b := uint8(clampf(float64(st.brightness)*0.7, 0, 255))
			d.DrawLine(x, y, tx, ty, display.RGB565(b, b, 255))
			d.DrawPixel(x, y, head)
			s.prevHead[i] = point{x, y}
			s.prevTail[i] = point{tx, ty}
		} else {
			d.DrawPixel(x, y, head)
			s.prevHead[i] = point{x, y}
			s.prevTail[i] = point{x, y}
		}
	}
}

// Erase clears everything the field has on screen (used on power-off).
func (s *Starfield) Erase(d display.Display) {
	for i := range s.stars {
		s.erasePrev(d, i)
	}
	s.retract = nil
	s.warping = false
}

func (s *Starfield) erasePrev(d display.Display, i int) {
	h, t := s.prevHead[i], s.prevTail[i]
	if h.X < 0 {
		return
	}
	if h == t {
		d.DrawPixel(h.X, h.Y, s.env.BG)
	} else {
		d.DrawLine(h.X, h.Y, t.X, t.Y, s.env.BG)
	}
	s.prevHead[i] = noPoint
	s.prevTail[i] = noPoint
}

// recycle respawns an off-screen star near the center so the warp tunnel
// keeps feeding.
func (s *Starfield) recycle(st *star) {
	cx, cy := float64(s.env.W)/2, float64(s.env.H)/2
	angle := s.env.Rng.Float64() * 2 * math.Pi
	dist := 1 + s.env.Rng.Float64()*float64(min(s.env.W, s.env.H))/6
	st.realX = cx + math.Cos(angle)*dist
	st.realY = cy + math.Sin(angle)*dist
	st.brightness = s.env.randRange(150, 256)
}
