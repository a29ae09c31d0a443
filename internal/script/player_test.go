package script

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	if v := env.Eval(-1); v != 0 {
		t.Fatalf("expected 0 before start, got %v", v)
	}
	if v := env.Eval(5); v != 5 {
		t.Fatalf("expected 5 at t=5, got %v", v)
	}
	if v := env.Eval(11); v != 10 {
		t.Fatalf("expected 10 after end, got %v", v)
	}
}

func TestEnvelopeEases(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "smooth"},
		{T: 1, V: 1},
	}}
	mid := env.Eval(0.5)
	if mid != 0.5 {
		t.Fatalf("smoothstep midpoint should be 0.5, got %v", mid)
	}
	early := env.Eval(0.1)
	if early >= 0.1 {
		t.Fatalf("smoothstep should lag linear early on, got %v", early)
	}
}

func TestPlayerDrivesControls(t *testing.T) {
	var knob float64
	var pressed bool
	var clips []string
	p := NewPlayer(Hooks{
		SetKnob:     func(v float64) { knob = v },
		SetButton:   func(b bool) { pressed = b },
		ClipStarted: func(name string) { clips = append(clips, name) },
	})

	prog := Program{
		Version: "warp.v1",
		Clips: []Clip{
			{
				Name:      "ramp",
				DurationS: 4,
				Knob: Envelope{Keys: []Keyframe{
					{T: 0, V: 0, Ease: "linear"},
					{T: 4, V: 1},
				}},
			},
			{
				Name:      "tap",
				DurationS: 2,
				Button: Envelope{Keys: []Keyframe{
					{T: 0, V: 1},
					{T: 1, V: 1},
					{T: 1.1, V: 0},
				}},
			},
		},
	}
	if err := p.Load(prog); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()

	p.Tick(2) // halfway through ramp
	if knob != 0.5 {
		t.Fatalf("expected knob 0.5, got %v", knob)
	}
	p.Tick(2.5) // ramp ends, advances into the tap clip
	p.Tick(0.4) // tap clip at 0.9s, button held
	if !pressed {
		t.Fatal("expected button held in tap clip")
	}
	p.Tick(1.2) // past the release and the clip end
	if pressed {
		t.Fatal("expected button released")
	}
	p.Tick(1) // past the end, non-looping
	if p.State != Idle {
		t.Fatalf("expected idle at end, got %v", p.State)
	}
	if knob != 0 || pressed {
		t.Fatal("controls must release when the program ends")
	}
	want := []string{"ramp", "tap"}
	if len(clips) != len(want) || clips[0] != want[0] || clips[1] != want[1] {
		t.Fatalf("unexpected clip order: %#v", clips)
	}
}

func TestPlayerLoops(t *testing.T) {
	var clips []string
	p := NewPlayer(Hooks{ClipStarted: func(name string) { clips = append(clips, name) }})
	prog := Program{
		Loop: true,
		Clips: []Clip{
			{Name: "a", DurationS: 1},
			{Name: "b", DurationS: 1},
		},
	}
	if err := p.Load(prog); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	for i := 0; i < 5; i++ {
		p.Tick(1.01)
	}
	if p.State != Running {
		t.Fatalf("looping program must keep running, got %v", p.State)
	}
	if len(clips) < 4 {
		t.Fatalf("expected repeated clips, got %#v", clips)
	}
}

func TestLoadRejectsEmptyProgram(t *testing.T) {
	p := NewPlayer(Hooks{})
	if err := p.Load(Program{}); err == nil {
		t.Fatal("expected error for empty program")
	}
	if err := p.Load(Program{Clips: []Clip{{Name: "x"}}}); err == nil {
		t.Fatal("expected error for zero-duration clip")
	}
}

func TestProgramYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attract.yaml")
	if err := SaveProgram(path, AttractProgram()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Loop || len(got.Clips) != 5 {
		t.Fatalf("round trip lost structure: %+v", got)
	}
	if got.Clips[1].Knob.Keys[1].V != 0.5 {
		t.Fatalf("round trip lost keyframes: %+v", got.Clips[1])
	}
}

func TestLoadProgramMissingFile(t *testing.T) {
	_, err := LoadProgram(filepath.Join(os.TempDir(), "definitely-not-here.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
