package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	cometTailCap = 180
	cometTailMs  = 2000
	cometEmitMs  = 5
)

type tailMote struct {
	x, y   float64
	born   int64
	active bool
}

// Comet flies from a screen edge across the center, shedding a cooling dust
// tail. The nucleus erases its previous disc; tail motes are point-cached.
// When the nucleus leaves the screen the comet re-launches from a new edge.
type Comet struct {
	env      Env
	pl       Placement
	x, y     float64
	vx, vy   float64
	nucleusR int
	tail     [cometTailCap]tailMote
	lastEmit int64
	prevNuc  point
	prevTail []point
	inited   bool
}

func NewComet(env Env, pl Placement) *Comet {
	c := &Comet{env: env, pl: pl, nucleusR: roundi(2 * pl.Scale), prevNuc: noPoint}
	if c.nucleusR < 1 {
		c.nucleusR = 1
	}
	c.launch()
	return c
}

// launch places the nucleus on a random edge aimed near the screen center.
func (c *Comet) launch() {
	w, h := float64(c.env.W), float64(c.env.H)
	switch c.env.Rng.Intn(4) {
	case 0:
		c.x, c.y = c.env.randFloat(0, w), -2
	case 1:
		c.x, c.y = c.env.randFloat(0, w), h+2
	case 2:
		c.x, c.y = -2, c.env.randFloat(0, h)
	default:
		c.x, c.y = w+2, c.env.randFloat(0, h)
	}
	tx := w/2 + c.env.randFloat(-20, 20)
	ty := h/2 + c.env.randFloat(-20, 20)
	dx, dy := tx-c.x, ty-c.y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		dist = 1
	}
	speed := (0.3 + float64(c.env.Rng.Intn(500))/500) * c.pl.Scale
	c.vx, c.vy = dx/dist*speed, dy/dist*speed
	for i := range c.tail {
		c.tail[i].active = false
	}
	c.lastEmit = 0
}

func (c *Comet) Draw(d display.Display) {
	now := c.env.Millis()

	erasePoints(d, c.env.BG, c.prevTail)
	c.prevTail = c.prevTail[:0]
	if c.prevNuc.X >= 0 {
		d.FillCircle(c.prevNuc.X, c.prevNuc.Y, c.nucleusR+1, c.env.BG)
		c.prevNuc = noPoint
	}

	c.x += c.vx
	c.y += c.vy
	c.vx *= 1.001
	c.vy *= 1.001

	margin := 10.0
	if c.x < -margin || c.x > float64(c.env.W)+margin ||
		c.y < -margin || c.y > float64(c.env.H)+margin {
		c.launch()
	}

	if now-c.lastEmit >= cometEmitMs {
		c.emit(now)
		c.lastEmit = now
	}

	for i := range c.tail {
		m := &c.tail[i]
		if !m.active {
			continue
		}
		age := now - m.born
		if age > cometTailMs {
			m.active = false
			continue
		}
		x, y := roundi(m.x), roundi(m.y)
		if !c.env.inBounds(x, y) {
			m.active = false
			continue
		}
		fade := 1 - float64(age)/cometTailMs
		b := uint8(clampf(220*fade, 0, 255))
		d.DrawPixel(x, y, display.RGB565(
			uint8(clampf(float64(b)*0.6, 0, 255)), uint8(clampf(float64(b)*0.8, 0, 255)), b))
		c.prevTail = append(c.prevTail, point{x, y})
	}

	nx, ny := roundi(c.x), roundi(c.y)
	if c.env.inBounds(nx, ny) {
		d.FillCircle(nx, ny, c.nucleusR+1, display.RGB565(120, 170, 230))
		d.FillCircle(nx, ny, c.nucleusR, display.White)
		c.prevNuc = point{nx, ny}
	}
	c.inited = true
}

// emit drops a tail mote just behind the nucleus with a little angular
// spread.
func (c *Comet) emit(now int64) {
	speed := math.Hypot(c.vx, c.vy)
	if speed < 0.01 {
		return
	}
	base := math.Atan2(-c.vy, -c.vx)
	a := base + c.env.randFloat(-math.Pi/6, math.Pi/6)
	dist := float64(c.nucleusR) + c.env.randFloat(1, 4)
	for i := range c.tail {
		if c.tail[i].active {
			continue
		}
		c.tail[i] = tailMote{
			x:      c.x + math.Cos(a)*dist,
			y:      c.y + math.Sin(a)*dist,
			born:   now,
			active: true,
		}
		return
	}
}

func (c *Comet) Erase(d display.Display) {
	if !c.inited {
		return
	}
	erasePoints(d, c.env.BG, c.prevTail)
	c.prevTail = c.prevTail[:0]
	if c.prevNuc.X >= 0 {
		d.FillCircle(c.prevNuc.X, c.prevNuc.Y, c.nucleusR+1, c.env.BG)
		c.prevNuc = noPoint
	}
	c.inited = false
}
