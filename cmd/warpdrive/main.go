package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/tejaspatelll/warpdrive/internal/anim"
	"github.com/tejaspatelll/warpdrive/internal/config"
	diag "github.com/tejaspatelll/warpdrive/internal/diagnostics"
	"github.com/tejaspatelll/warpdrive/internal/display"
	"github.com/tejaspatelll/warpdrive/internal/effects"
	"github.com/tejaspatelll/warpdrive/internal/input"
	"github.com/tejaspatelll/warpdrive/internal/power"
	"github.com/tejaspatelll/warpdrive/internal/script"
	"github.com/tejaspatelll/warpdrive/internal/ws"
)

func main() {
	var (
		driver      = flag.String("driver", "", "driver: st7735 | sim (default from config)")
		addr        = flag.String("addr", "", "preview listen address (default from config)")
		configPath  = flag.String("config", "warpdrive.yaml", "path to config file")
		programPath = flag.String("program", "", "scripted control program (sim driver); empty runs the built-in attract loop")
		seed        = flag.Int64("seed", 0, "scene seed; 0 uses the config, then the clock")
		simOnly     = flag.Bool("sim-only", false, "force simulation (no hardware output)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
	} else {
		cfg = c
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if cfg.Scene.Seed == 0 {
		cfg.Scene.Seed = time.Now().UnixNano()
	}

	fb := display.NewFramebuffer(cfg.Width, cfg.Height)
	state := ws.NewState(fb, 33*time.Millisecond, log.Logger)

	var (
		disp   display.Display = fb
		panel  *display.ST7735
		src    input.Source
		button power.Button
	)

	switch cfg.Driver {
	case "st7735":
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("periph host init failed")
		}
		p, err := display.NewST7735(display.ST7735Opts{
			Port:         cfg.SPI.Dev,
			SpeedHz:      cfg.SPI.SpeedHz,
			DCPin:        cfg.SPI.DCPin,
			ResetPin:     cfg.SPI.ResetPin,
			BacklightPin: cfg.SPI.Backlight,
			Width:        cfg.Width,
			Height:       cfg.Height,
		})
		if err != nil {
			log.Warn().Err(err).Msg("st7735 init failed; falling back to sim")
			cfg.Driver = "sim"
			break
		}
		panel = p
		disp = display.NewTee(panel, fb)

		adc, err := input.NewADS1x15Source(cfg.Input.I2CBus)
		if err != nil {
			log.Warn().Err(err).Msg("adc init failed; warp knob disabled")
		} else {
			src = adc
			defer adc.Close()
		}
		btn, err := power.NewGPIOButton(cfg.Button.Pin)
		if err != nil {
			log.Warn().Err(err).Str("pin", cfg.Button.Pin).Msg("button init failed; power button disabled")
		} else {
			button = btn
		}
	case "sim":
	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using sim")
		cfg.Driver = "sim"
	}

	if cfg.Driver == "sim" {
		fake := input.NewFakeSource(cfg.Input.FullScale)
		sbtn := &scriptedButton{}
		src = fake
		button = sbtn
		go runScript(*programPath, cfg, fake, sbtn)
	}

	env := effects.Env{
		W:   cfg.Width,
		H:   cfg.Height,
		Rng: rand.New(rand.NewSource(cfg.Scene.Seed)),
		Now: time.Now,
		BG:  display.Black,
	}
	machine := anim.NewMachine(env, anim.MachineConfig{
		ShowcaseProb: cfg.Scene.ShowcaseProb,
		ShowcaseMs:   cfg.Scene.ShowcaseMs,
	}, log.Logger)

	var reader *input.Reader
	if src != nil {
		reader = input.NewReader(src, input.Config{
			FullScale: cfg.Input.FullScale,
			Threshold: cfg.Input.Threshold,
			Samples:   cfg.Input.Samples,
		})
	}
	var pc *power.Controller
	if button != nil {
		pc = power.NewController(button, power.Config{
			DebounceWindow: time.Duration(cfg.Button.DebounceMs) * time.Millisecond,
			LongPress:      time.Duration(cfg.Button.LongPressMs) * time.Millisecond,
		})
	}

	loop := &anim.Loop{
		Machine: machine,
		Display: disp,
		Input:   reader,
		Power:   pc,
		Budgets: anim.FrameBudgets{
			Idle:     time.Duration(cfg.FPS.IdleMs) * time.Millisecond,
			Warp:     time.Duration(cfg.FPS.WarpMs) * time.Millisecond,
			Showcase: time.Duration(cfg.FPS.ShowcaseMs) * time.Millisecond,
		},
		Log:         log.Logger,
		StartAsleep: cfg.Scene.StartAsleep,
		OnFrame: func() {
			obj := ""
			if machine.Mode() == anim.ModeShowcase {
				obj = machine.ObjectKind().String()
			}
			state.SetScene(machine.Mode().String(), obj)
			state.PushFrame()
		},
		OnEvent: func(ev power.Event) {
			state.PushDiag(diag.Diagnostic{
				Severity: diag.Info,
				Code:     "BUTTON." + ev.String(),
				Summary:  "button " + ev.String(),
			})
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/health", state.HandleHealth)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", cfg.Driver).Msg("preview server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("preview server crashed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int64("seed", cfg.Scene.Seed).
		Int("w", cfg.Width).Int("h", cfg.Height).
		Msg("scene starting")
	if err := loop.Run(ctx); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("frame loop stopped")
	}

	_ = srv.Close()
	if panel != nil {
		if err := panel.Close(); err != nil {
			log.Warn().Err(err).Msg("panel close")
		}
	}
	log.Info().Msg("shut down")
}

// scriptedButton is driven by the control program in sim mode.
type scriptedButton struct{ pressed atomic.Bool }

func (b *scriptedButton) Pressed() (bool, error) { return b.pressed.Load(), nil }

// runScript feeds the fake knob and button from a control program so the
// sim shows the whole scene unattended.
func runScript(path string, cfg *config.Config, fake *input.FakeSource, btn *scriptedButton) {
	prog := script.AttractProgram()
	if path != "" {
		p, err := script.LoadProgram(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("program load failed; using attract loop")
		} else {
			prog = p
		}
	}

	player := script.NewPlayer(script.Hooks{
		SetKnob:   func(v float64) { fake.SetNormalized(v, cfg.Input.FullScale) },
		SetButton: func(p bool) { btn.pressed.Store(p) },
		ClipStarted: func(name string) {
			log.Debug().Str("clip", name).Msg("script clip")
		},
	})
	if err := player.Load(prog); err != nil {
		log.Warn().Err(err).Msg("program rejected")
		return
	}
	player.Start()

	const dt = 50 * time.Millisecond
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	for range ticker.C {
		player.Tick(dt.Seconds())
		if player.State == script.Idle {
			return
		}
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
