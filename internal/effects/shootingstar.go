package effects

import (
	"math"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

const (
	maxShootingStars = 3
	shootingTrailLen = 6
	shootingSpawnPct = 2 // percent chance per frame
)

type meteor struct {
	x, y   float64
	vx, vy float64
	born   int64 // ms
	life   int64 // ms
	active bool
	prev   [shootingTrailLen + 1]point // head + trail drawn last frame
}

// ShootingStars owns a small pool of transient streaks that cross the idle
// and showcase scenes. Spawn is probabilistic; a full pool drops the spawn.
type ShootingStars struct {
	env  Env
	pool [maxShootingStars]meteor
}

func NewShootingStars(env Env) *ShootingStars {
	s := &ShootingStars{env: env}
	for i := range s.pool {
		for j := range s.pool[i].prev {
			s.pool[i].prev[j] = noPoint
		}
	}
	return s
}

func (s *ShootingStars) Update(d display.Display) {
	now := s.env.Millis()

	if s.env.Rng.Intn(100) < shootingSpawnPct {
		s.spawn(now)
	}

	for i := range s.pool {
		m := &s.pool[i]
		if !m.active {
			continue
		}
		erasePoints(d, s.env.BG, m.prev[:])

		m.x += m.vx
		m.y += m.vy
		x, y := roundi(m.x), roundi(m.y)
		expired := now-m.born > m.life
		offscreen := x < -shootingTrailLen*4 || x >= s.env.W+shootingTrailLen*4 ||
			y < -shootingTrailLen*4 || y >= s.env.H+shootingTrailLen*4
		if expired || offscreen {
			m.active = false
			continue
		}

		speed := math.Hypot(m.vx, m.vy)
		if speed < 0.1 {
			speed = 0.1
		}
		ux, uy := m.vx/speed, m.vy/speed
		age := float64(now-m.born) / float64(m.life)
		fade := clampf(1-age, 0, 1)

		if s.env.inBounds(x, y) {
			d.DrawPixel(x, y, display.Gray(uint8(255*fade)))
		}
		m.prev[0] = point{x, y}
		for t := 1; t <= shootingTrailLen; t++ {
			tx := roundi(m.x - ux*float64(t)*2)
			ty := roundi(m.y - uy*float64(t)*2)
			b := uint8(clampf(fade*float64(220-t*35), 0, 255))
			if s.env.inBounds(tx, ty) {
				d.DrawPixel(tx, ty, display.RGB565(b, b, uint8(clampf(float64(b)+30, 0, 255))))
			}
			m.prev[t] = point{tx, ty}
		}
	}
}

// Erase clears all live meteors and their trails.
func (s *ShootingStars) Erase(d display.Display) {
	for i := range s.pool {
		erasePoints(d, s.env.BG, s.pool[i].prev[:])
		s.pool[i].active = false
	}
}

func (s *ShootingStars) spawn(now int64) {
	for i := range s.pool {
		m := &s.pool[i]
		if m.active {
			continue
		}
		// start along the top or left edge, flying down-right
		if s.env.Rng.Intn(2) == 0 {
			m.x = float64(s.env.Rng.Intn(s.env.W))
			m.y = 0
		} else {
			m.x = 0
			m.y = float64(s.env.Rng.Intn(s.env.H / 2))
		}
		m.vx = s.env.randFloat(1.5, 3.5)
		m.vy = s.env.randFloat(0.7, 1.7)
		m.born = now
		m.life = int64(s.env.randRange(800, 1600))
		m.active = true
		return
	}
}
