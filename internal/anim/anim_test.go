package anim

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejaspatelll/warpdrive/internal/display"
	"github.com/tejaspatelll/warpdrive/internal/effects"
	"github.com/tejaspatelll/warpdrive/internal/input"
	"github.com/tejaspatelll/warpdrive/internal/power"
)

const (
	testW = 160
	testH = 128
)

type testClock struct{ t time.Time }

func newTestClock() *testClock      { return &testClock{t: time.UnixMilli(0)} }
func (c *testClock) now() time.Time { return c.t }
func (c *testClock) sleep(d time.Duration) {
	if d > 0 {
		c.t = c.t.Add(d)
	}
}
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testEnv(seed int64, clk *testClock) effects.Env {
	return effects.Env{
		W:   testW,
		H:   testH,
		Rng: rand.New(rand.NewSource(seed)),
		Now: clk.now,
		BG:  display.Black,
	}
}

func TestSelectorDealsFullCyclesWithoutRepeats(t *testing.T) {
	s := NewSelector(rand.New(rand.NewSource(1)))

	last := effects.Kind(-1)
	for cycle := 0; cycle < 20; cycle++ {
		seen := map[effects.Kind]bool{}
		for i := 0; i < effects.KindCount; i++ {
			k := s.Next()
			assert.False(t, seen[k], "kind %s repeated within a cycle", k)
			seen[k] = true
			if i == 0 {
				assert.NotEqual(t, last, k, "cycle %d starts with the previous cycle's last kind", cycle)
			}
			last = k
		}
		assert.Len(t, seen, effects.KindCount)
	}
}

func TestPlacementBounds(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(2, clk), MachineConfig{}, zerolog.Nop())

	for i := 0; i < 500; i++ {
		pl := m.place(effects.KindBlackHole)
		assert.InDelta(t, testW/2, pl.X, 8)
		assert.InDelta(t, testH/2, pl.Y, 8)
		assert.GreaterOrEqual(t, pl.Scale, 1.5)
		assert.Less(t, pl.Scale, 2.5)

		pl = m.place(effects.KindPlanet)
		assert.GreaterOrEqual(t, pl.X, 20)
		assert.Less(t, pl.X, testW-20)
		assert.GreaterOrEqual(t, pl.Y, 20)
		assert.Less(t, pl.Y, testH-20)
		assert.GreaterOrEqual(t, pl.Scale, 0.8)
		assert.Less(t, pl.Scale, 1.8)
	}
}

func TestEngagementStartsWarp(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(3, clk), MachineConfig{}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, false, 0, 0.033)
	assert.Equal(t, ModeIdle, m.Mode())

	m.Step(fb, true, 0.5, 0.016)
	assert.Equal(t, ModeWarp, m.Mode())

	// staying engaged stays in warp
	m.Step(fb, true, 0.9, 0.016)
	assert.Equal(t, ModeWarp, m.Mode())
}

func TestWarpEndAlwaysShowcasesAtFullProbability(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(4, clk), MachineConfig{ShowcaseProb: 1}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, true, 1, 0.016)
	m.Step(fb, false, 0, 0.016)
	assert.Equal(t, ModeShowcase, m.Mode())
}

func TestWarpEndCanReturnToIdle(t *testing.T) {
	clk := newTestClock()
	// probability below Float64 resolution forces the empty-space branch
	m := NewMachine(testEnv(4, clk), MachineConfig{ShowcaseProb: 1e-18}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, true, 1, 0.016)
	m.Step(fb, false, 0, 0.016)
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestShowcaseExpires(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(5, clk), MachineConfig{ShowcaseProb: 1, ShowcaseMs: 500}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, true, 1, 0.016)
	m.Step(fb, false, 0, 0.016)
	require.Equal(t, ModeShowcase, m.Mode())

	for i := 0; i < 20 && m.Mode() == ModeShowcase; i++ {
		clk.advance(33 * time.Millisecond)
		m.Step(fb, false, 0, 0.033)
	}
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestReengagingCutsShowcaseShort(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(6, clk), MachineConfig{ShowcaseProb: 1}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, true, 1, 0.016)
	m.Step(fb, false, 0, 0.016)
	require.Equal(t, ModeShowcase, m.Mode())

	m.Step(fb, true, 0.7, 0.016)
	assert.Equal(t, ModeWarp, m.Mode())
}

func TestSkipEndsShowcase(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(7, clk), MachineConfig{ShowcaseProb: 1}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	m.Step(fb, true, 1, 0.016)
	m.Step(fb, false, 0, 0.016)
	require.Equal(t, ModeShowcase, m.Mode())

	m.Skip(fb)
	assert.Equal(t, ModeIdle, m.Mode())
}

// Park must leave the panel fully dark no matter what was on screen.
func TestParkLeavesPanelClean(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(8, clk), MachineConfig{ShowcaseProb: 1}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	for i := 0; i < 30; i++ {
		m.Step(fb, true, 0.8, 0.016)
		clk.advance(16 * time.Millisecond)
	}
	m.Step(fb, false, 0, 0.016)
	for i := 0; i < 30; i++ {
		clk.advance(33 * time.Millisecond)
		m.Step(fb, false, 0, 0.033)
	}
	m.Park(fb)
	assert.Zero(t, fb.Count(display.Black))
}

// Same seed, same input trace, same frames.
func TestMachineDeterminism(t *testing.T) {
	run := func() []display.Color {
		clk := newTestClock()
		m := NewMachine(testEnv(9, clk), MachineConfig{ShowcaseProb: 1}, zerolog.Nop())
		fb := display.NewFramebuffer(testW, testH)
		for i := 0; i < 20; i++ {
			m.Step(fb, true, 0.6, 0.016)
			clk.advance(16 * time.Millisecond)
		}
		for i := 0; i < 40; i++ {
			m.Step(fb, false, 0, 0.033)
			clk.advance(33 * time.Millisecond)
		}
		return fb.Snapshot()
	}
	assert.Equal(t, run(), run())
}

// A meteor crossing the scene when the knob engages must not leave a frozen
// trail behind for the duration of the warp: meteors pause in warp mode, so
// the rising edge has to erase them.
func TestEngagingWarpClearsMeteorTrails(t *testing.T) {
	clk := newTestClock()
	m := NewMachine(testEnv(12, clk), MachineConfig{ShowcaseProb: 1e-18}, zerolog.Nop())
	fb := display.NewFramebuffer(testW, testH)

	for trial := 0; trial < 60; trial++ {
		for i := 0; i < 15; i++ {
			m.Step(fb, false, 0, 0.033)
			clk.advance(33 * time.Millisecond)
		}
		for i := 0; i < 4; i++ {
			m.Step(fb, true, 1, 0.016)
			clk.advance(16 * time.Millisecond)
		}
		require.Equal(t, ModeWarp, m.Mode())

		// No showcase object lives through a rising edge and meteors do not
		// update in warp, so once the starfield is cleared any lit pixel is
		// a stale meteor trail.
		m.field.Erase(fb)
		require.Zerof(t, fb.Count(display.Black), "trial %d left meteor pixels during warp", trial)

		m.Step(fb, false, 0, 0.033)
		clk.advance(33 * time.Millisecond)
	}
}

// scheduledButton reads as pressed inside a window of the synthetic clock,
// so the loop goroutine drives it deterministically.
type scheduledButton struct {
	clk      *testClock
	from, to time.Time
}

func (b *scheduledButton) Pressed() (bool, error) {
	return !b.clk.t.Before(b.from) && b.clk.t.Before(b.to), nil
}

func TestLoopPacesAndPowersOff(t *testing.T) {
	clk := newTestClock()
	env := testEnv(10, clk)
	fb := display.NewFramebuffer(testW, testH)
	src := input.NewFakeSource(1023)
	// hold the button for 2s starting at t=3s
	btn := &scheduledButton{clk: clk, from: atMs(3000), to: atMs(5000)}

	frames := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events []power.Event
	l := &Loop{
		Machine: NewMachine(env, MachineConfig{ShowcaseProb: 1}, zerolog.Nop()),
		Display: fb,
		Input:   input.NewReader(src, input.Config{FullScale: 1023}),
		Power:   power.NewController(btn, power.Config{}),
		Log:     zerolog.Nop(),
		Now:     clk.now,
		Sleep:   clk.sleep,
		OnFrame: func() {
			frames++
			switch frames {
			case 5:
				src.SetNormalized(1, 1023) // engage the warp
			case 20:
				src.SetNormalized(0, 1023)
			}
		},
		OnEvent: func(ev power.Event) {
			events = append(events, ev)
			if ev == power.EventPowerOff {
				cancel()
			}
		},
	}

	err := l.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Contains(t, events, power.EventPowerOff)
	assert.Zero(t, fb.Count(display.Black), "panel must be dark after power off")
	assert.Greater(t, frames, 20)
}

func TestLoopStartAsleepWakesOnShortPress(t *testing.T) {
	clk := newTestClock()
	env := testEnv(11, clk)
	fb := display.NewFramebuffer(testW, testH)
	// a 200ms tap at t=1s
	btn := &scheduledButton{clk: clk, from: atMs(1000), to: atMs(1200)}

	frames := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := &Loop{
		Machine:     NewMachine(env, MachineConfig{}, zerolog.Nop()),
		Display:     fb,
		Power:       power.NewController(btn, power.Config{}),
		Log:         zerolog.Nop(),
		Now:         clk.now,
		Sleep:       clk.sleep,
		StartAsleep: true,
		OnFrame: func() {
			frames++
			if frames >= 3 {
				cancel()
			}
		},
	}

	err := l.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, frames, 3, "loop never woke up")
	assert.True(t, clk.t.After(atMs(1200)), "frames before the tap released")
}

func atMs(ms int64) time.Time { return time.UnixMilli(ms) }
