package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errSource struct{ err error }

func (e errSource) Read() (int, error) { return 0, e.err }

func TestSampleEndpoints(t *testing.T) {
	cfg := Config{FullScale: 1023, Threshold: 0.05, Samples: 8}

	r := NewReader(NewFakeSource(0), cfg)
	s, err := r.Sample()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Raw)
	assert.InDelta(t, 1.0, s.Normalized, 1e-9)
	assert.InDelta(t, 1.0, s.Intensity, 1e-6, "full engagement maps to full intensity")
	assert.True(t, s.Engaged)

	r = NewReader(NewFakeSource(1023), cfg)
	s, err = r.Sample()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, s.Normalized, 1e-9)
	assert.InDelta(t, 0.0, s.Intensity, 1e-6)
	assert.False(t, s.Engaged)
}

func TestSampleClampsOverrange(t *testing.T) {
	r := NewReader(NewFakeSource(5000), Config{FullScale: 1023, Samples: 4})
	s, err := r.Sample()
	require.NoError(t, err)
	assert.Equal(t, 1023, s.Raw)
	assert.False(t, s.Engaged)
}

// Engagement requires strictly exceeding the threshold; sitting exactly on
// it stays idle so ADC noise at rest cannot flicker the warp on.
func TestThresholdBoundary(t *testing.T) {
	// Power-of-two full scale so the boundary value is exact in float64.
	cfg := Config{FullScale: 1024, Threshold: 0.25, Samples: 1}

	atThreshold := NewReader(NewFakeSource(768), cfg) // normalized exactly 0.25
	s, err := atThreshold.Sample()
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.Normalized)
	assert.False(t, s.Engaged)

	above := NewReader(NewFakeSource(767), cfg)
	s, err = above.Sample()
	require.NoError(t, err)
	assert.True(t, s.Engaged)
}

func TestIntensityEasingIsMonotonic(t *testing.T) {
	cfg := Config{FullScale: 1000, Samples: 1}
	prev := -1.0
	for raw := 1000; raw >= 0; raw -= 50 {
		s, err := NewReader(NewFakeSource(raw), cfg).Sample()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.Intensity, prev, "raw %d", raw)
		assert.GreaterOrEqual(t, s.Intensity, 0.0)
		assert.LessOrEqual(t, s.Intensity, 1.0)
		prev = s.Intensity
	}
}

// The cubic ease should suppress the low end relative to a linear map.
func TestIntensityCubicShape(t *testing.T) {
	cfg := Config{FullScale: 1000, Samples: 1}
	s, err := NewReader(NewFakeSource(800), cfg).Sample() // normalized 0.2
	require.NoError(t, err)
	assert.Less(t, s.Intensity, 0.2)

	s, err = NewReader(NewFakeSource(200), cfg).Sample() // normalized 0.8
	require.NoError(t, err)
	assert.Greater(t, s.Intensity, 0.8)
}

func TestAveraging(t *testing.T) {
	src := &steppingSource{values: []int{100, 200, 300, 400}}
	r := NewReader(src, Config{FullScale: 1023, Samples: 4})
	s, err := r.Sample()
	require.NoError(t, err)
	assert.Equal(t, 250, s.Raw)
}

func TestSampleReadError(t *testing.T) {
	wantErr := errors.New("bus gone")
	_, err := NewReader(errSource{wantErr}, Config{}).Sample()
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

type steppingSource struct {
	values []int
	i      int
}

func (s *steppingSource) Read() (int, error) {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v, nil
}
