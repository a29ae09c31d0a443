// Package input turns a raw analog reading into the warp control signal:
// a debounced engagement flag and an eased intensity in [0,1].
package input

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Source delivers one raw ADC reading per call.
type Source interface {
	Read() (int, error)
}

// Config shapes the raw-to-intensity mapping. The potentiometer is wired so
// that zero raw counts means fully engaged, hence the inversion.
type Config struct {
	FullScale int     `yaml:"full_scale"`
	Threshold float64 `yaml:"threshold"`
	Samples   int     `yaml:"samples"`
}

func (c Config) withDefaults() Config {
	if c.FullScale <= 0 {
		c.FullScale = 1023
	}
	if c.Samples <= 0 {
		c.Samples = 8
	}
	if c.Threshold == 0 {
		c.Threshold = 0.05
	}
	return c
}

// Sample is one processed control reading.
type Sample struct {
	Raw        int     // averaged raw counts, clamped to [0, FullScale]
	Normalized float64 // 1 at raw 0, 0 at full scale
	Engaged    bool    // strictly above threshold
	Intensity  float64 // cubic-eased normalized value
}

type Reader struct {
	src Source
	cfg Config
}

func NewReader(src Source, cfg Config) *Reader {
	return &Reader{src: src, cfg: cfg.withDefaults()}
}

// Sample averages a burst of raw readings and maps them to the control
// signal. The cubic ease keeps the low end of the knob gentle and the top
// end dramatic.
func (r *Reader) Sample() (Sample, error) {
	sum := 0
	for i := 0; i < r.cfg.Samples; i++ {
		v, err := r.src.Read()
		if err != nil {
			return Sample{}, fmt.Errorf("input: read sample %d: %w", i, err)
		}
		sum += v
	}
	raw := sum / r.cfg.Samples
	if raw < 0 {
		raw = 0
	}
	if raw > r.cfg.FullScale {
		raw = r.cfg.FullScale
	}

	norm := 1 - float64(raw)/float64(r.cfg.FullScale)
	s := Sample{
		Raw:        raw,
		Normalized: norm,
		Engaged:    norm > r.cfg.Threshold,
		Intensity:  float64(ease.InOutCubic(float32(norm), 0, 1, 1)),
	}
	return s, nil
}
