// Package effects holds the per-frame animation routines: the ambient
// starfield, transient shooting stars, and the twelve showcase objects.
//
// Every effect follows the same two-phase contract. Draw first erases the
// pixels the previous frame left behind (from cached previous positions),
// then advances its simulation and draws at the new positions, refreshing
// the caches. Erase removes everything the effect has on screen and resets
// its initialized flag; the next Draw re-seeds. There is no framebuffer
// between the effects and the panel, so erase coverage is the correctness
// property here: Erase must clear a bounded superset of everything drawn
// since init.
package effects

import (
	"math"
	"math/rand"
	"time"

	"github.com/tejaspatelll/warpdrive/internal/display"
)

// Env is the world an effect lives in: screen bounds, the engine's random
// source and clock, and the background color erases restore.
type Env struct {
	W, H int
	Rng  *rand.Rand
	Now  func() time.Time
	BG   display.Color
}

// Millis returns the clock in milliseconds, the unit the hand-tuned effect
// timings are expressed in.
func (e Env) Millis() int64 { return e.Now().UnixMilli() }

// Placement is where a showcase object was dropped and how big it is.
type Placement struct {
	X, Y  int
	Scale float64
}

// Effect is one showcase object.
type Effect interface {
	Draw(d display.Display)
	Erase(d display.Display)
}

// Kind enumerates the showcase objects.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindNebula
	KindGalaxy
	KindSolarSystem
	KindAsteroidField
	KindBlackHole
	KindPulsar
	KindSupernova
	KindComet
	KindBinaryStar
	KindSpaceStation

	KindCount = 12
)

var kindNames = [KindCount]string{
	"star", "planet", "nebula", "galaxy", "solar_system", "asteroid_field",
	"black_hole", "pulsar", "supernova", "comet", "binary_star", "space_station",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// New builds the effect for a kind at a placement.
func New(k Kind, env Env, pl Placement) Effect {
	switch k {
	case KindStar:
		return NewStar(env, pl)
	case KindPlanet:
		return NewPlanet(env, pl)
	case KindNebula:
		return NewNebula(env, pl)
	case KindGalaxy:
		return NewGalaxy(env, pl)
	case KindSolarSystem:
		return NewSolarSystem(env, pl)
	case KindAsteroidField:
		return NewAsteroidField(env, pl)
	case KindBlackHole:
		return NewBlackHole(env, pl)
	case KindPulsar:
		return NewPulsar(env, pl)
	case KindSupernova:
		return NewSupernova(env, pl)
	case KindComet:
		return NewComet(env, pl)
	case KindBinaryStar:
		return NewBinaryStar(env, pl)
	case KindSpaceStation:
		return NewSpaceStation(env, pl)
	}
	return nil
}

// point is a cached drawn position; X < 0 marks an empty slot.
type point struct{ X, Y int }

var noPoint = point{X: -1, Y: -1}

func (e Env) inBounds(x, y int) bool {
	return x >= 0 && x < e.W && y >= 0 && y < e.H
}

// erasePoints restores the background at each cached position and empties
// the cache.
func erasePoints(d display.Display, bg display.Color, pts []point) {
	for i, p := range pts {
		if p.X >= 0 {
			d.DrawPixel(p.X, p.Y, bg)
		}
		pts[i] = noPoint
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mapRange is an Arduino-style linear remap.
func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

func roundi(v float64) int { return int(math.Round(v)) }

// randRange returns a uniform int in [lo, hi), mirroring random(lo, hi).
func (e Env) randRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.Rng.Intn(hi-lo)
}

func (e Env) randFloat(lo, hi float64) float64 {
	return lo + e.Rng.Float64()*(hi-lo)
}
