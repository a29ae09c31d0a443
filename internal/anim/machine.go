// Package anim owns the scene state machine and the frame loop that drives
// it. The scene is always in one of three modes: drifting idle, warping
// under the knob, or showcasing a celestial object after a warp ends.
package anim

import (
	"github.com/rs/zerolog"

	"github.com/tejaspatelll/warpdrive/internal/display"
	"github.com/tejaspatelll/warpdrive/internal/effects"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeWarp
	ModeShowcase
)

func (m Mode) String() string {
	switch m {
	case ModeWarp:
		return "warp"
	case ModeShowcase:
		return "showcase"
	default:
		return "idle"
	}
}

// doneEffect is implemented by effects with a natural end, like a supernova
// burning out; the machine ends their showcase early.
type doneEffect interface {
	Done() bool
}

type MachineConfig struct {
	ShowcaseProb float64 `yaml:"showcase_prob"` // chance a warp ends in a showcase
	ShowcaseMs   int64   `yaml:"showcase_ms"`
}

func (c MachineConfig) withDefaults() MachineConfig {
	if c.ShowcaseProb == 0 {
		c.ShowcaseProb = 0.8
	}
	if c.ShowcaseMs <= 0 {
		c.ShowcaseMs = 10000
	}
	return c
}

// Machine advances the scene one frame at a time. Transitions are edge
// triggered on the warp engagement flag.
type Machine struct {
	env  effects.Env
	cfg  MachineConfig
	log  zerolog.Logger
	mode Mode

	field   *effects.Starfield
	meteors *effects.ShootingStars
	sel     *Selector

	object     effects.Effect
	objectKind effects.Kind
	showUntil  int64
	engaged    bool
}

func NewMachine(env effects.Env, cfg MachineConfig, log zerolog.Logger) *Machine {
	return &Machine{
		env:     env,
		cfg:     cfg.withDefaults(),
		log:     log,
		field:   effects.NewStarfield(env),
		meteors: effects.NewShootingStars(env),
		sel:     NewSelector(env.Rng),
	}
}

func (m *Machine) Mode() Mode { return m.mode }

// ObjectKind reports the showcased object; only meaningful in ModeShowcase.
func (m *Machine) ObjectKind() effects.Kind { return m.objectKind }

// Step runs one frame: handle engagement edges, then update the layers.
// dt is the frame delta in seconds.
func (m *Machine) Step(d display.Display, engaged bool, intensity float64, dt float64) {
	now := m.env.Millis()

	if engaged && !m.engaged {
		if m.object != nil {
			m.object.Erase(d)
			m.object = nil
		}
		// Meteors pause during warp, so any live trail would otherwise
		// stay frozen on the panel until the knob releases.
		m.meteors.Erase(d)
		m.mode = ModeWarp
		m.log.Debug().Msg("warp engaged")
	}
	if !engaged && m.engaged && m.mode == ModeWarp {
		if m.env.Rng.Float64() < m.cfg.ShowcaseProb {
			m.startShowcase(now)
		} else {
			m.mode = ModeIdle
			m.log.Debug().Msg("warp ended, empty space")
		}
	}
	m.engaged = engaged

	m.field.Update(d, m.mode == ModeWarp, intensity, dt)
	if m.mode != ModeWarp {
		m.meteors.Update(d)
	}

	if m.mode == ModeShowcase {
		m.object.Draw(d)
		expired := now >= m.showUntil
		if fin, ok := m.object.(doneEffect); ok && fin.Done() {
			expired = true
		}
		if expired {
			m.endShowcase(d)
		}
	}
}

func (m *Machine) startShowcase(now int64) {
	m.objectKind = m.sel.Next()
	pl := m.place(m.objectKind)
	m.object = effects.New(m.objectKind, m.env, pl)
	m.showUntil = now + m.cfg.ShowcaseMs
	m.mode = ModeShowcase
	m.log.Info().
		Stringer("object", m.objectKind).
		Int("x", pl.X).Int("y", pl.Y).
		Float64("scale", pl.Scale).
		Msg("showcase")
}

func (m *Machine) endShowcase(d display.Display) {
	m.object.Erase(d)
	m.object = nil
	m.mode = ModeIdle
}

// Skip ends the current showcase immediately (short press).
func (m *Machine) Skip(d display.Display) {
	if m.mode == ModeShowcase {
		m.endShowcase(d)
	}
}

// Park erases the whole scene for power-off. The next Step rebuilds it.
func (m *Machine) Park(d display.Display) {
	if m.object != nil {
		m.object.Erase(d)
		m.object = nil
	}
	m.meteors.Erase(d)
	m.field.Erase(d)
	m.mode = ModeIdle
	m.engaged = false
}

// place positions an object. The black hole hugs the center so its disk
// fits; everything else lands anywhere inside a 20px inset.
func (m *Machine) place(k effects.Kind) effects.Placement {
	if k == effects.KindBlackHole {
		return effects.Placement{
			X:     m.env.W/2 + m.env.Rng.Intn(17) - 8,
			Y:     m.env.H/2 + m.env.Rng.Intn(17) - 8,
			Scale: 1.5 + m.env.Rng.Float64(),
		}
	}
	const inset = 20
	return effects.Placement{
		X:     inset + m.env.Rng.Intn(m.env.W-2*inset),
		Y:     inset + m.env.Rng.Intn(m.env.H-2*inset),
		Scale: 0.8 + m.env.Rng.Float64(),
	}
}
