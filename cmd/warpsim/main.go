package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejaspatelll/warpdrive/internal/anim"
	"github.com/tejaspatelll/warpdrive/internal/display"
	"github.com/tejaspatelll/warpdrive/internal/effects"
	"github.com/tejaspatelll/warpdrive/internal/input"
	"github.com/tejaspatelll/warpdrive/internal/power"
	"github.com/tejaspatelll/warpdrive/internal/script"
)

// simClock advances only when the frame loop sleeps, so a minute of scene
// time simulates in milliseconds of wall time.
type simClock struct{ t time.Time }

func (c *simClock) now() time.Time        { return c.t }
func (c *simClock) sleep(d time.Duration) { c.t = c.t.Add(d) }

type simButton struct{ pressed atomic.Bool }

func (b *simButton) Pressed() (bool, error) { return b.pressed.Load(), nil }

func main() {
	var (
		programPath = flag.String("program", "", "control program YAML; empty runs the built-in attract loop")
		duration    = flag.Float64("duration", 60, "scene seconds to simulate")
		seed        = flag.Int64("seed", 1, "scene seed")
		width       = flag.Int("w", 160, "panel width")
		height      = flag.Int("h", 128, "panel height")
		every       = flag.Int("every", 10, "print a summary every N frames")
	)
	flag.Parse()

	prog := script.AttractProgram()
	if *programPath != "" {
		p, err := script.LoadProgram(*programPath)
		if err != nil {
			log.Fatalf("load program: %v", err)
		}
		prog = p
	}

	clk := &simClock{t: time.UnixMilli(0)}
	fb := display.NewFramebuffer(*width, *height)
	knob := input.NewFakeSource(1023)
	btn := &simButton{}

	machine := anim.NewMachine(effects.Env{
		W:   *width,
		H:   *height,
		Rng: rand.New(rand.NewSource(*seed)),
		Now: clk.now,
		BG:  display.Black,
	}, anim.MachineConfig{}, zerolog.Nop())

	player := script.NewPlayer(script.Hooks{
		SetKnob:   func(v float64) { knob.SetNormalized(v, 1023) },
		SetButton: func(p bool) { btn.pressed.Store(p) },
		ClipStarted: func(name string) {
			fmt.Printf("[clip] %-10s t=%6.1fs\n", name, clk.t.Sub(time.UnixMilli(0)).Seconds())
		},
	})
	if err := player.Load(prog); err != nil {
		log.Fatalf("load: %v", err)
	}
	player.Start()

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	lastTick := clk.now()

	loop := &anim.Loop{
		Machine: machine,
		Display: fb,
		Input:   input.NewReader(knob, input.Config{FullScale: 1023}),
		Power:   power.NewController(btn, power.Config{}),
		Log:     zerolog.Nop(),
		Now:     clk.now,
		Sleep:   clk.sleep,
		OnFrame: func() {
			now := clk.now()
			player.Tick(now.Sub(lastTick).Seconds())
			lastTick = now

			frames++
			if frames%*every == 0 {
				lit := fb.Count(display.Black)
				obj := "-"
				if machine.Mode() == anim.ModeShowcase {
					obj = machine.ObjectKind().String()
				}
				fmt.Printf("t=%6.1fs mode=%-8s object=%-14s lit=%d\n",
					now.Sub(time.UnixMilli(0)).Seconds(), machine.Mode(), obj, lit)
			}

			elapsed := now.Sub(time.UnixMilli(0)).Seconds()
			if elapsed >= *duration || (!prog.Loop && player.State == script.Idle) {
				cancel()
			}
		},
	}

	_ = loop.Run(ctx)
	fmt.Printf("done: %d frames over %.1fs of scene time\n", frames, clk.t.Sub(time.UnixMilli(0)).Seconds())
}
