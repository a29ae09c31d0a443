package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProgram reads a program from a YAML file.
func LoadProgram(path string) (Program, error) {
	var prog Program
	b, err := os.ReadFile(path)
	if err != nil {
		return prog, fmt.Errorf("script: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &prog); err != nil {
		return prog, fmt.Errorf("script: parse %s: %w", path, err)
	}
	if prog.Version == "" {
		prog.Version = "warp.v1"
	}
	return prog, nil
}

// SaveProgram writes a program to a YAML file.
func SaveProgram(path string, prog Program) error {
	b, err := yaml.Marshal(prog)
	if err != nil {
		return fmt.Errorf("script: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("script: write %s: %w", path, err)
	}
	return nil
}

// AttractProgram is the built-in looping demo: idle drift, a slow warp that
// should land on a showcase, a hard warp, and a button tap to skip.
func AttractProgram() Program {
	return Program{
		Version: "warp.v1",
		Loop:    true,
		Clips: []Clip{
			{
				Name:      "drift",
				DurationS: 6,
				Knob:      Envelope{Keys: []Keyframe{{T: 0, V: 0}}},
			},
			{
				Name:      "slow-warp",
				DurationS: 8,
				Knob: Envelope{Keys: []Keyframe{
					{T: 0, V: 0, Ease: "smooth"},
					{T: 2, V: 0.5, Ease: "smooth"},
					{T: 5, V: 0.5, Ease: "smooth"},
					{T: 7, V: 0},
				}},
			},
			{
				Name:      "admire",
				DurationS: 12,
				Knob:      Envelope{Keys: []Keyframe{{T: 0, V: 0}}},
			},
			{
				Name:      "hard-warp",
				DurationS: 6,
				Knob: Envelope{Keys: []Keyframe{
					{T: 0, V: 0, Ease: "cubic"},
					{T: 1, V: 1, Ease: "linear"},
					{T: 4, V: 1, Ease: "cubic"},
					{T: 5, V: 0},
				}},
			},
			{
				Name:      "skip",
				DurationS: 5,
				Button: Envelope{Keys: []Keyframe{
					{T: 2, V: 0},
					{T: 2.1, V: 1},
					{T: 2.4, V: 1},
					{T: 2.5, V: 0},
				}},
			},
		},
	}
}
