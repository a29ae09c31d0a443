package input

import "sync"

// FakeSource is a settable Source for the simulator and tests.
type FakeSource struct {
	mu  sync.Mutex
	raw int
}

func NewFakeSource(raw int) *FakeSource { return &FakeSource{raw: raw} }

func (f *FakeSource) Set(raw int) {
	f.mu.Lock()
	f.raw = raw
	f.mu.Unlock()
}

// SetNormalized sets the raw value from a [0,1] engagement level against a
// full scale, with 1 meaning fully engaged (raw 0).
func (f *FakeSource) SetNormalized(level float64, fullScale int) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	f.Set(int((1 - level) * float64(fullScale)))
}

func (f *FakeSource) Read() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw, nil
}
