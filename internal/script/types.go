// Package script plays scripted control programs against the animation
// loop. A program is a list of clips, each automating the warp knob and the
// power button over time, so the full scene can run unattended in the
// simulator or as a shop-window attract mode.
package script

// Keyframe is a value at time T (seconds) with an easing function applying
// to the segment that starts here.
type Keyframe struct {
	T    float64 `yaml:"t"`
	V    float64 `yaml:"v"`
	Ease string  `yaml:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a sorted list of keyframes; Eval(t) interpolates a value.
type Envelope struct {
	Keys []Keyframe `yaml:"keys"`
}

// Clip automates the two physical controls for a stretch of time.
type Clip struct {
	Name      string   `yaml:"name"`
	DurationS float64  `yaml:"durationS"`
	Knob      Envelope `yaml:"knob"`   // warp engagement level 0..1
	Button    Envelope `yaml:"button"` // 0..1, thresholded to pressed
}

// Program is a full scripted run.
type Program struct {
	Version string `yaml:"version"` // "warp.v1"
	Loop    bool   `yaml:"loop,omitempty"`
	Seed    int64  `yaml:"seed,omitempty"`
	Clips   []Clip `yaml:"clips"`
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected setters for the simulated controls.
type Hooks struct {
	SetKnob   func(level float64)
	SetButton func(pressed bool)
	// ClipStarted fires when playback enters a clip.
	ClipStarted func(name string)
}
