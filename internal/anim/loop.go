package anim

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejaspatelll/warpdrive/internal/display"
	"github.com/tejaspatelll/warpdrive/internal/input"
	"github.com/tejaspatelll/warpdrive/internal/power"
)

// FrameBudgets are the per-mode frame periods. Warp runs fast for smooth
// streaks; idle can amble.
type FrameBudgets struct {
	Idle     time.Duration
	Warp     time.Duration
	Showcase time.Duration
}

func (b FrameBudgets) withDefaults() FrameBudgets {
	if b.Idle <= 0 {
		b.Idle = 50 * time.Millisecond
	}
	if b.Warp <= 0 {
		b.Warp = 16 * time.Millisecond
	}
	if b.Showcase <= 0 {
		b.Showcase = 33 * time.Millisecond
	}
	return b
}

func (b FrameBudgets) forMode(m Mode) time.Duration {
	switch m {
	case ModeWarp:
		return b.Warp
	case ModeShowcase:
		return b.Showcase
	default:
		return b.Idle
	}
}

// Loop paces the machine against the wall clock, feeds it input samples,
// and routes button events. Now and Sleep are injectable so the simulator
// can run on a synthetic clock.
type Loop struct {
	Machine *Machine
	Display display.Display
	Input   *input.Reader
	Power   *power.Controller
	Budgets FrameBudgets
	Log     zerolog.Logger

	Now   func() time.Time
	Sleep func(time.Duration)

	// StartAsleep parks the scene until the first short press.
	StartAsleep bool

	// OnFrame runs after each drawn frame (frame push, diagnostics).
	OnFrame func()
	// OnEvent runs for each classified button event.
	OnEvent func(power.Event)
}

// Run drives frames until the context is canceled.
func (l *Loop) Run(ctx context.Context) error {
	if l.Now == nil {
		l.Now = time.Now
	}
	if l.Sleep == nil {
		l.Sleep = time.Sleep
	}
	budgets := l.Budgets.withDefaults()

	awake := !l.StartAsleep
	if !awake {
		l.Log.Info().Msg("starting asleep, waiting for button")
	}
	last := l.Now()
	lastEngaged, lastIntensity := false, 0.0

	for {
		select {
		case <-ctx.Done():
			l.Machine.Park(l.Display)
			return ctx.Err()
		default:
		}

		start := l.Now()
		dt := start.Sub(last).Seconds()
		if dt > 0.1 {
			dt = 0.1
		}
		last = start

		if l.Power != nil {
			ev, err := l.Power.Poll(start)
			if err != nil {
				return fmt.Errorf("anim: %w", err)
			}
			if ev != power.EventNone {
				awake = l.handleEvent(ev, awake)
			}
		}

		if awake {
			if l.Input != nil {
				s, err := l.Input.Sample()
				if err != nil {
					// A flaky ADC read keeps the previous sample rather
					// than dropping the scene.
					l.Log.Warn().Err(err).Msg("input read failed")
				} else {
					lastEngaged, lastIntensity = s.Engaged, s.Intensity
				}
			}
			l.Machine.Step(l.Display, lastEngaged, lastIntensity, dt)
			if l.OnFrame != nil {
				l.OnFrame()
			}
		}

		if rest := budgets.forMode(l.Machine.Mode()) - l.Now().Sub(start); rest > 0 {
			l.Sleep(rest)
		}
	}
}

func (l *Loop) handleEvent(ev power.Event, awake bool) bool {
	if l.OnEvent != nil {
		l.OnEvent(ev)
	}
	switch ev {
	case power.EventPowerOff:
		if awake {
			l.Log.Info().Msg("power off")
			l.Machine.Park(l.Display)
			l.Display.Fill(display.Black)
			if l.OnFrame != nil {
				l.OnFrame()
			}
		}
		return false
	case power.EventShortPress:
		if !awake {
			l.Log.Info().Msg("waking up")
			return true
		}
		l.Machine.Skip(l.Display)
	}
	return awake
}
