package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	accretionCount    = 450
	accretionTrailCap = 8
	fallingStarMax    = 6
	fallingTrailCap   = 10
)

type accretionParticle struct {
	angle, distance float64
	speed           float64
	relFactor       float64
	color           display.Color
	active          bool
	prev            point
	trail           [accretionTrailCap]point
	trailColors     [accretionTrailCap]display.Color
	trailLen        int
}

type fallingStar struct {
	x, y       float64
	vx, vy     float64
	brightness int
	spin       float64
	active     bool
	trail      [fallingTrailCap]point
	trailLen   int
}

// BlackHole is the centerpiece: a black event horizon ringed by photon
// rings, a Keplerian accretion disk of point particles split into halves in
// front of and behind the horizon, inner swirl motes, and stars that fall
// in under gravity with frame dragging and tidal stretching. Everything
// drawn outside the horizon disc is point-cached so erase is exact.
type BlackHole struct {
	env        Env
	pl         Placement
	radius     float64 // event horizon
	diskInner  float64
	diskOuter  float64
	disk       [accretionCount]accretionParticle
	stars      [fallingStarMax]fallingStar
	inner      [4]point // swirl motes inside the horizon
	flash      []point  // consumption flash pixels from last frame
	lastUpdate int64
	inited     bool
}

func NewBlackHole(env Env, pl Placement) *BlackHole {
	b := &BlackHole{env: env, pl: pl}
	b.radius = 14 * pl.Scale
	b.diskInner = b.radius * 1.2
	b.diskOuter = b.radius * 2.0
	for i := range b.disk {
		b.seedParticle(i)
	}
	for i := range b.stars {
		b.stars[i].active = false
	}
	for i := range b.inner {
		b.inner[i] = noPoint
	}
	b.lastUpdate = env.Millis()
	return b
}

// seedParticle places a disk particle with a density profile skewed toward
// the inner edge and a blackbody-ish color shifted by Doppler beaming.
func (b *BlackHole) seedParticle(i int) {
	p := &b.disk[i]
	inner := math.Max(1, b.radius*1.2)
	outer := math.Max(inner+1, b.radius*2.5)

	p.angle = b.env.randFloat(0, 2*math.Pi)
	f := b.env.Rng.Float64()
	p.distance = inner + f*f*(outer-inner)

	orbital := math.Sqrt(b.radius / p.distance)
	p.relFactor = math.Min(orbital, 0.9)
	doppler := 1 / (1 - p.relFactor*math.Sin(p.angle))

	tempRatio := math.Pow(inner/p.distance, 0.75) * doppler
	var r, g, bl float64
	switch {
	case tempRatio > 1.2:
		r, g, bl = 255, 255, 255
	case tempRatio > 0.8:
		r, g, bl = 255, 255, 220
	case tempRatio > 0.6:
		r, g, bl = 255, 240, 150
	default:
		r, g, bl = 255, 200, 100
	}
	intensity := clampf(math.Pow(doppler, 4), 0.1, 3.0)
	p.color = display.RGB565(
		uint8(clampf(r*intensity, 0, 255)),
		uint8(clampf(g*intensity, 0, 255)),
		uint8(clampf(bl*intensity, 0, 255)))

	p.speed = 0.04 * math.Sqrt(inner/p.distance)
	p.active = true
	p.prev = noPoint
	p.trailLen = 0
	for t := range p.trail {
		p.trail[t] = noPoint
	}
	for t := range p.trailColors {
		fade := 1 - float64(t)*0.12
		p.trailColors[t] = p.color.Scale(fade)
	}
}

func (b *BlackHole) Draw(d display.Display) {
	cx, cy := b.pl.X, b.pl.Y
	now := b.env.Millis()

	dt := float64(now-b.lastUpdate) / 1000
	if dt > 0.1 {
		dt = 0.1
	}
	if dt <= 0 {
		dt = 0.016
	}
	b.lastUpdate = now

	b.eraseFrame(d)

	// advance disk particles
	for i := range b.disk {
		p := &b.disk[i]
		if !p.active {
			b.seedParticle(i)
		}
		inner := math.Max(1, b.radius*1.2)
		spin := math.Sqrt(inner / math.Max(p.distance, inner*0.5))
		p.angle = math.Mod(p.angle+p.speed*spin*dt*60, 2*math.Pi)
		if p.angle < 0 {
			p.angle += 2 * math.Pi
		}
		p.distance = clampf(p.distance, inner*0.1, b.diskOuter*1.1)

		vc := 0.5 - 0.3*math.Cos(p.angle) // perspective squash
		x := cx + roundi(math.Cos(p.angle)*p.distance)
		y := cy + roundi(math.Sin(p.angle)*p.distance*vc)

		if p.prev.X >= 0 {
			moved := math.Hypot(float64(x-p.prev.X), float64(y-p.prev.Y))
			if moved > 0.5+p.relFactor*0.5 {
				copy(p.trail[1:], p.trail[:accretionTrailCap-1])
				p.trail[0] = p.prev
				if p.trailLen < accretionTrailCap {
					p.trailLen++
				}
			}
		}
		p.prev = point{x, y}
	}

	b.updateFallingStars(cx, cy, dt, now)

	// back half of the disk first so the horizon covers it
	b.drawDiskHalf(d, cx, cy, false)

	rbh := roundi(b.radius)
	if rbh >= 1 {
		d.FillCircle(cx, cy, rbh, display.Black)
	}

	// inner swirl motes ride on top of the horizon
	for i := range b.inner {
		a := math.Mod(float64(now)/90+float64(i)*math.Pi/2, 2*math.Pi)
		df := math.Min(0.15+0.6*float64(i)/4, 0.9)
		x := cx + roundi(math.Cos(a)*b.radius*df)
		y := cy + roundi(math.Sin(a)*b.radius*df)
		if b.env.inBounds(x, y) {
			g := uint8(max(10, 50-12*i))
			d.DrawPixel(x, y, display.Gray(g))
			b.inner[i] = point{x, y}
		} else {
			b.inner[i] = noPoint
		}
	}

	// photon rings with a Doppler highlight on the near side
	if rbh >= 1 {
		d.DrawCircle(cx, cy, rbh, display.RGB565(255, 230, 180))
		for a := math.Pi * 0.75; a < math.Pi*1.25; a += 0.04 {
			x := cx + roundi(float64(rbh)*math.Cos(a))
			y := cy + roundi(float64(rbh)*math.Sin(a))
			if b.env.inBounds(x, y) {
				d.DrawPixel(x, y, display.White)
			}
		}
		d.DrawCircle(cx, cy, rbh+1, display.RGB565(200, 180, 150))
		d.DrawCircle(cx, cy, rbh+2, display.RGB565(150, 140, 120))
	}

	b.drawFallingStars(d, cx, cy)
	b.drawDiskHalf(d, cx, cy, true)
	for _, p := range b.flash {
		d.DrawPixel(p.X, p.Y, display.White)
	}
	b.inited = true
}

// eraseFrame clears everything the previous frame cached.
func (b *BlackHole) eraseFrame(d display.Display) {
	for i := range b.disk {
		p := &b.disk[i]
		if p.prev.X >= 0 {
			d.DrawPixel(p.prev.X, p.prev.Y, b.env.BG)
		}
		for t := 0; t < p.trailLen; t++ {
			if p.trail[t].X >= 0 {
				d.DrawPixel(p.trail[t].X, p.trail[t].Y, b.env.BG)
			}
		}
	}
	for i := range b.stars {
		s := &b.stars[i]
		for t := 0; t < s.trailLen; t++ {
			if s.trail[t].X >= 0 {
				d.DrawPixel(s.trail[t].X, s.trail[t].Y, b.env.BG)
			}
			s.trail[t] = noPoint
		}
		s.trailLen = 0
	}
	for i := range b.inner {
		if b.inner[i].X >= 0 {
			d.DrawPixel(b.inner[i].X, b.inner[i].Y, b.env.BG)
			b.inner[i] = noPoint
		}
	}
	erasePoints(d, b.env.BG, b.flash)
	b.flash = b.flash[:0]
}

func (b *BlackHole) updateFallingStars(cx, cy int, dt float64, now int64) {
	for i := range b.stars {
		s := &b.stars[i]
		if !s.active {
			continue
		}
		dx := float64(cx) - s.x
		dy := float64(cy) - s.y
		distSq := dx*dx + dy*dy
		dist := math.Sqrt(distSq)
		if dist > 0.1 {
			gravity := math.Min((b.radius*b.radius*150)/math.Max(distSq, b.radius*0.5), 50)
			ax := dx / dist * gravity
			ay := dy / dist * gravity

			// frame dragging near the hole
			if dist < b.radius*8 {
				spinR := b.radius * 4
				eff := math.Max(dist, spinR*0.1)
				strength := math.Min(s.spin*1.5*(spinR/eff), 8)
				ax += -dy / dist * strength
				ay += dx / dist * strength
			}
			s.vx += ax * dt
			s.vy += ay * dt
			if sp := s.vx*s.vx + s.vy*s.vy; sp > 400 {
				k := math.Sqrt(400 / sp)
				s.vx *= k
				s.vy *= k
			}
		}
		s.x += s.vx * dt * 60
		s.y += s.vy * dt * 60

		x, y := roundi(s.x), roundi(s.y)
		out := x < -10 || x >= b.env.W+10 || y < -10 || y >= b.env.H+10
		if dist <= b.radius || out {
			s.active = false
			if dist <= b.radius*1.5 {
				b.consumptionFlash(cx, cy)
			}
		}
	}

	if b.env.Rng.Intn(100) < 4 {
		b.spawnFallingStar(cx, cy, now)
	}
}

// consumptionFlash rings the horizon with white sparks for one frame; the
// pixels go into the flash cache so they vanish next frame.
func (b *BlackHole) consumptionFlash(cx, cy int) {
	for r := 0; r <= 2; r++ {
		for j := 0; j < 8; j++ {
			a := float64(j) * math.Pi / 4
			x := cx + roundi(math.Cos(a)*(b.radius+float64(r)))
			y := cy + roundi(math.Sin(a)*(b.radius+float64(r)))
			if b.env.inBounds(x, y) {
				b.flash = append(b.flash, point{x, y})
			}
		}
	}
}

func (b *BlackHole) spawnFallingStar(cx, cy int, now int64) {
	for i := range b.stars {
		s := &b.stars[i]
		if s.active {
			continue
		}
		switch b.env.Rng.Intn(4) {
		case 0:
			s.x, s.y = float64(b.env.Rng.Intn(b.env.W)), -5
		case 1:
			s.x, s.y = float64(b.env.W)+4, float64(b.env.Rng.Intn(b.env.H))
		case 2:
			s.x, s.y = float64(b.env.Rng.Intn(b.env.W)), float64(b.env.H)+4
		default:
			s.x, s.y = -5, float64(b.env.Rng.Intn(b.env.H))
		}
		dx, dy := float64(cx)-s.x, float64(cy)-s.y
		a := math.Atan2(dy, dx) + b.env.randFloat(-10, 10)*math.Pi/180
		speed := float64(b.env.randRange(4, 10)) / 10
		s.vx, s.vy = math.Cos(a)*speed, math.Sin(a)*speed
		s.brightness = b.env.randRange(180, 256)
		s.spin = float64(b.env.randRange(50, 200)) / 100
		s.trailLen = 0
		s.active = true
		return
	}
}

func (b *BlackHole) drawFallingStars(d display.Display, cx, cy int) {
	for i := range b.stars {
		s := &b.stars[i]
		if !s.active {
			continue
		}
		x, y := roundi(s.x), roundi(s.y)
		if !b.env.inBounds(x, y) {
			continue
		}
		dx := float64(cx) - s.x
		dy := float64(cy) - s.y
		distSq := dx*dx + dy*dy
		dist := math.Sqrt(distSq)

		gf := math.Min(3, b.radius*20/math.Max(distSq, 1))
		bright := clampi(s.brightness+int(200*gf), 20, 255)
		d.DrawPixel(x, y, display.Gray(uint8(bright)))
		s.pushTrail(point{x, y})

		// tidal stretching along the line to the center
		if dist < b.radius*2 {
			stretch := math.Atan2(dy, dx)
			tidal := math.Min((b.radius*b.radius*b.radius*50)/math.Max(distSq*dist, 1), 6)
			n := max(1, int(tidal))
			for j := 1; j <= n && s.trailLen < fallingTrailCap; j++ {
				spacing := float64(j) * (0.4 + float64(j)*0.05)
				ax := x + roundi(math.Cos(stretch)*spacing)
				ay := y + roundi(math.Sin(stretch)*spacing)
				if b.env.inBounds(ax, ay) &&
					math.Hypot(float64(ax-cx), float64(ay-cy)) > b.radius {
					f := 1 / (float64(j)*0.7 + 1)
					d.DrawPixel(ax, ay, display.RGB565(
						uint8(clampf(float64(bright)*1.2*f, 0, 255)),
						uint8(clampf(float64(bright)*1.1*f, 0, 255)),
						uint8(clampf(float64(bright)*f, 0, 255))))
					s.pushTrail(point{ax, ay})
				}
				bx := x - roundi(math.Cos(stretch)*spacing*1.1)
				by := y - roundi(math.Sin(stretch)*spacing*1.1)
				if b.env.inBounds(bx, by) && s.trailLen < fallingTrailCap {
					f := 1 / (float64(j) + 1)
					d.DrawPixel(bx, by, display.RGB565(
						uint8(clampf(float64(bright)*1.1*f, 0, 255)),
						uint8(clampf(float64(bright)*0.8*f, 0, 255)),
						uint8(clampf(float64(bright)*0.6*f, 0, 255))))
					s.pushTrail(point{bx, by})
				}
			}
		}
	}
}

func (s *fallingStar) pushTrail(p point) {
	if s.trailLen < fallingTrailCap {
		s.trail[s.trailLen] = p
		s.trailLen++
	}
}

// drawDiskHalf draws either the front (sin > 0) or back half of the disk.
// Back-half pixels inside the horizon stay hidden.
func (b *BlackHole) drawDiskHalf(d display.Display, cx, cy int, front bool) {
	rbhSq := float64(roundi(b.radius) * roundi(b.radius))
	for i := range b.disk {
		p := &b.disk[i]
		if !p.active || p.prev.X < 0 {
			continue
		}
		sa := math.Sin(p.angle)
		if front != (sa > 0) {
			continue
		}
		x, y := p.prev.X, p.prev.Y
		if !b.env.inBounds(x, y) {
			continue
		}
		ddx, ddy := float64(x-cx), float64(y-cy)
		distSq := ddx*ddx + ddy*ddy
		if !front && distSq <= rbhSq {
			continue
		}

		vis := math.Max(0.8+0.4*sa, 0.1)
		r := float64(p.color.R8())
		g := float64(p.color.G8())
		bl := float64(p.color.B8())

		if front {
			dist := math.Sqrt(distSq)
			if dist < b.radius*1.6 && b.radius > 0 {
				boost := 1 + math.Max(0, (b.radius*1.6-dist)/(b.radius*0.6))*0.9
				r = math.Min(255, r*boost)
				g = math.Min(255, g*boost)
				bl = math.Min(255, bl*boost)
			}
		} else {
			r = math.Max(r*vis, 30)
			g = math.Max(g*vis, 25)
			bl = math.Max(bl*vis, 20)
			vis = 1
		}
		d.DrawPixel(x, y, display.RGB565(
			uint8(clampf(r*vis, 0, 255)),
			uint8(clampf(g*vis, 0, 255)),
			uint8(clampf(bl*vis, 0, 255))))

		for t := 0; t < p.trailLen; t++ {
			tp := p.trail[t]
			if tp.X < 0 || !b.env.inBounds(tp.X, tp.Y) {
				continue
			}
			tdx, tdy := float64(tp.X-cx), float64(tp.Y-cy)
			if tdx*tdx+tdy*tdy <= rbhSq {
				continue
			}
			d.DrawPixel(tp.X, tp.Y, p.trailColors[t])
		}
	}
}

func (b *BlackHole) Erase(d display.Display) {
	if !b.inited {
		return
	}
	b.eraseFrame(d)
	for i := range b.disk {
		b.disk[i].prev = noPoint
		b.disk[i].trailLen = 0
	}
	for i := range b.stars {
		b.stars[i].active = false
	}
	bound := math.Max(b.radius*2.5, b.diskOuter*1.1) + 5
	d.FillCircle(b.pl.X, b.pl.Y, roundi(bound), b.env.BG)
	b.inited = false
}
