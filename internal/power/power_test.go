package power

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeButton struct {
	pressed bool
	err     error
}

func (b *fakeButton) Pressed() (bool, error) { return b.pressed, b.err }

var t0 = time.UnixMilli(0)

func at(ms int64) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

// poll drives the controller through a raw state change at startMs and a
// confirming poll after the debounce window.
func confirm(t *testing.T, c *Controller, b *fakeButton, pressed bool, startMs int64) Event {
	t.Helper()
	b.pressed = pressed
	ev, err := c.Poll(at(startMs))
	require.NoError(t, err)
	require.Equal(t, EventNone, ev, "state change must not fire before debounce")
	ev, err = c.Poll(at(startMs + 30))
	require.NoError(t, err)
	return ev
}

func TestShortPress(t *testing.T) {
	b := &fakeButton{}
	c := NewController(b, Config{})

	require.Equal(t, EventNone, confirm(t, c, b, true, 0))
	ev := confirm(t, c, b, false, 200)
	assert.Equal(t, EventShortPress, ev)
}

func TestLongPressPowersOff(t *testing.T) {
	b := &fakeButton{}
	c := NewController(b, Config{})

	require.Equal(t, EventNone, confirm(t, c, b, true, 0))
	ev := confirm(t, c, b, false, 2000)
	assert.Equal(t, EventPowerOff, ev)
}

// Exactly the long-press duration counts as a power-off.
func TestLongPressBoundaryIsInclusive(t *testing.T) {
	b := &fakeButton{}
	c := NewController(b, Config{})

	require.Equal(t, EventNone, confirm(t, c, b, true, 0))
	// press confirmed at 30ms; release confirmed at 1530ms, held exactly 1500ms
	b.pressed = false
	ev, err := c.Poll(at(1500))
	require.NoError(t, err)
	require.Equal(t, EventNone, ev)
	ev, err = c.Poll(at(1530))
	require.NoError(t, err)
	assert.Equal(t, EventPowerOff, ev)

	// one millisecond shorter is a short press
	c2 := NewController(b, Config{})
	b.pressed = true
	_, err = c2.Poll(at(0))
	require.NoError(t, err)
	_, err = c2.Poll(at(30))
	require.NoError(t, err)
	b.pressed = false
	_, err = c2.Poll(at(1499))
	require.NoError(t, err)
	ev, err = c2.Poll(at(1529))
	require.NoError(t, err)
	assert.Equal(t, EventShortPress, ev)
}

// A glitch shorter than the debounce window never becomes a press.
func TestBounceIsIgnored(t *testing.T) {
	b := &fakeButton{}
	c := NewController(b, Config{})

	b.pressed = true
	ev, err := c.Poll(at(0))
	require.NoError(t, err)
	assert.Equal(t, EventNone, ev)

	b.pressed = false
	ev, err = c.Poll(at(10))
	require.NoError(t, err)
	assert.Equal(t, EventNone, ev)

	ev, err = c.Poll(at(100))
	require.NoError(t, err)
	assert.Equal(t, EventNone, ev, "bounce must not register as a press")
}

func TestChatterResetsDebounce(t *testing.T) {
	b := &fakeButton{}
	c := NewController(b, Config{})

	// contact chatter: each flip restarts the window
	times := []struct {
		ms      int64
		pressed bool
	}{{0, true}, {10, false}, {20, true}, {28, false}, {40, true}}
	for _, step := range times {
		b.pressed = step.pressed
		ev, err := c.Poll(at(step.ms))
		require.NoError(t, err)
		require.Equal(t, EventNone, ev)
	}
	// stable from 40ms; confirmed at 70ms
	ev, err := c.Poll(at(70))
	require.NoError(t, err)
	assert.Equal(t, EventNone, ev)

	b.pressed = false
	_, err = c.Poll(at(100))
	require.NoError(t, err)
	ev, err = c.Poll(at(130))
	require.NoError(t, err)
	assert.Equal(t, EventShortPress, ev)
}

func TestPollError(t *testing.T) {
	wantErr := errors.New("pin fault")
	c := NewController(&fakeButton{err: wantErr}, Config{})
	_, err := c.Poll(at(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "short_press", EventShortPress.String())
	assert.Equal(t, "power_off", EventPowerOff.String())
	assert.Equal(t, "none", EventNone.String())
}
