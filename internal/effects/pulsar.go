package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const pulsarRotationMs = 2000

// Pulsar is a pulsing core sweeping two opposed radiation beams, with ripple
// arcs riding outward along the beams. Beam and ripple pixels are cached per
// frame; the core and its corona are erased by a bounding disc.
type Pulsar struct {
	env       Env
	pl        Placement
	coreR     int
	maxLen    float64
	intensity [128]uint8 // falloff along the beam
	prev      []point
	inited    bool
}

func NewPulsar(env Env, pl Placement) *Pulsar {
	p := &Pulsar{env: env, pl: pl, coreR: roundi(4 * pl.Scale)}
	if p.coreR < 2 {
		p.coreR = 2
	}
	p.maxLen = 26 * pl.Scale
	for i := range p.intensity {
		f := float64(i) / 127
		p.intensity[i] = uint8(255 * (1 - f*f))
	}
	return p
}

func (p *Pulsar) Draw(d display.Display) {
	erasePoints(d, p.env.BG, p.prev)
	p.prev = p.prev[:0]

	now := p.env.Millis()
	angle := float64(now%pulsarRotationMs) / pulsarRotationMs * 2 * math.Pi
	t := float64(now) / 1000.0
	pulse := 0.8 + 0.2*math.Sin(t*3)

	for _, a := range [2]float64{angle, angle + math.Pi} {
		ca, sa := math.Cos(a), math.Sin(a)
		for dist := float64(p.coreR); dist < p.maxLen; dist++ {
			f := dist / p.maxLen
			b := float64(p.intensity[int(f*127)]) * pulse
			x := p.pl.X + roundi(dist*ca)
			y := p.pl.Y + roundi(dist*sa)
			if !p.env.inBounds(x, y) {
				break
			}
			d.DrawPixel(x, y, display.RGB565(
				uint8(clampf(b*0.7, 0, 255)), uint8(clampf(b*0.85, 0, 255)), uint8(clampf(b, 0, 255))))
			p.prev = append(p.prev, point{x, y})
		}

		// ripple arcs riding out along the beam
		phase := float64(now%450) / 450 * 15
		for r := float64(p.coreR) + phase; r < p.maxLen; r += 15 {
			distF := 1 - r/p.maxLen
			halfW := 3 * p.pl.Scale * distF
			if halfW < 0.5 {
				continue
			}
			for da := -halfW / r; da <= halfW/r; da += 0.5 / r {
				x := p.pl.X + roundi(r*math.Cos(a+da))
				y := p.pl.Y + roundi(r*math.Sin(a+da))
				if !p.env.inBounds(x, y) {
					continue
				}
				b := uint8(clampf(160*distF*pulse, 0, 255))
				d.DrawPixel(x, y, display.RGB565(b, b, uint8(clampf(float64(b)*1.2, 0, 255))))
				p.prev = append(p.prev, point{x, y})
			}
		}
	}

	// corona rings then the pulsing core over the beam roots
	for i := 1; i <= 3; i++ {
		b := uint8(clampf(90*pulse/float64(i), 0, 255))
		d.DrawCircle(p.pl.X, p.pl.Y, p.coreR+i, display.RGB565(b, b, uint8(clampf(float64(b)*1.3, 0, 255))))
	}
	core := uint8(clampf(255*pulse, 0, 255))
	d.FillCircle(p.pl.X, p.pl.Y, p.coreR, display.RGB565(core, core, core))
	p.inited = true
}

func (p *Pulsar) Erase(d display.Display) {
	if !p.inited {
		return
	}
	erasePoints(d, p.env.BG, p.prev)
	p.prev = p.prev[:0]
	d.FillCircle(p.pl.X, p.pl.Y, p.coreR+4, p.env.BG)
	p.inited = false
}
