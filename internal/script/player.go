package script

import (
	"errors"
	"math"
)

// Player owns the current Program timeline and drives the control hooks.
type Player struct {
	State PlayerState

	prog Program
	nowS float64
	idx  int

	hooks Hooks
}

func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return errors.New("script: program has no clips")
	}
	for _, c := range prog.Clips {
		if c.DurationS <= 0 {
			return errors.New("script: clip " + c.Name + " has no duration")
		}
	}
	p.prog = prog
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	return nil
}

// Start moves to Running and primes the first clip.
func (p *Player) Start() {
	if p.State == Running {
		return
	}
	p.State = Running
	if p.hooks.ClipStarted != nil {
		p.hooks.ClipStarted(p.prog.Clips[p.idx].Name)
	}
}

func (p *Player) Pause() { p.State = Paused }

func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to start, releasing both controls.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
	p.release()
}

// Seek jumps to absolute program time t. Clamps into [0, totalDur).
func (p *Player) Seek(t float64) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	total := p.totalDuration()
	if total > 0 && t >= total {
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := 0
	for i, c := range p.prog.Clips {
		if t < acc+c.DurationS {
			idx = i
			break
		}
		acc += c.DurationS
	}
	p.idx = idx
	p.nowS = t
	if p.hooks.ClipStarted != nil {
		p.hooks.ClipStarted(p.prog.Clips[p.idx].Name)
	}
}

// Tick advances playback by dt seconds and pushes the control values.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.prog.Clips) == 0 {
		return
	}
	if dt <= 0 {
		return
	}
	p.nowS += dt

	clip, localT := p.currentClipAndLocalT()
	if p.hooks.SetKnob != nil {
		p.hooks.SetKnob(clamp01(clip.Knob.Eval(localT)))
	}
	if p.hooks.SetButton != nil {
		p.hooks.SetButton(clip.Button.BoolEval(localT))
	}

	if localT >= clip.DurationS {
		p.advanceClip()
	}
}

// Pos reports the current clip name and program time.
func (p *Player) Pos() (string, float64) {
	if len(p.prog.Clips) == 0 {
		return "", 0
	}
	return p.prog.Clips[p.idx].Name, p.nowS
}

func (p *Player) currentClipAndLocalT() (Clip, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.prog.Clips[i].DurationS
	}
	return p.prog.Clips[p.idx], p.nowS - acc
}

func (p *Player) totalDuration() float64 {
	total := 0.0
	for _, c := range p.prog.Clips {
		total += c.DurationS
	}
	return total
}

func (p *Player) advanceClip() {
	ni := p.idx + 1
	if ni >= len(p.prog.Clips) {
		if !p.prog.Loop {
			p.State = Idle
			p.release()
			return
		}
		ni = 0
		p.nowS = 0
	}
	p.idx = ni
	if p.hooks.ClipStarted != nil {
		p.hooks.ClipStarted(p.prog.Clips[p.idx].Name)
	}
}

func (p *Player) release() {
	if p.hooks.SetKnob != nil {
		p.hooks.SetKnob(0)
	}
	if p.hooks.SetButton != nil {
		p.hooks.SetButton(false)
	}
}
