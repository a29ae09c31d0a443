// Package power watches the front button and classifies presses. A short
// press wakes the scene or skips the current showcase object; holding for
// the long-press window shuts the display down.
package power

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Event is the classified result of one Poll.
type Event int

const (
	EventNone Event = iota
	EventShortPress
	EventPowerOff
)

func (e Event) String() string {
	switch e {
	case EventShortPress:
		return "short_press"
	case EventPowerOff:
		return "power_off"
	default:
		return "none"
	}
}

// Button reports the instantaneous pressed state.
type Button interface {
	Pressed() (bool, error)
}

type Config struct {
	DebounceWindow time.Duration
	LongPress      time.Duration
}

func (c Config) withDefaults() Config {
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = 30 * time.Millisecond
	}
	if c.LongPress <= 0 {
		c.LongPress = 1500 * time.Millisecond
	}
	return c
}

// Controller debounces the raw button and emits an event on each release.
// Events fire on release so a hold can still become a power-off.
type Controller struct {
	btn Button
	cfg Config

	raw        bool
	stable     bool
	lastChange time.Time
	hasChange  bool
	pressStart time.Time
}

func NewController(btn Button, cfg Config) *Controller {
	return &Controller{btn: btn, cfg: cfg.withDefaults()}
}

// Poll reads the button once and returns the event the reading completes,
// if any. A raw state must hold for the debounce window before it counts.
func (c *Controller) Poll(now time.Time) (Event, error) {
	raw, err := c.btn.Pressed()
	if err != nil {
		return EventNone, fmt.Errorf("power: read button: %w", err)
	}

	if raw != c.raw || !c.hasChange {
		c.raw = raw
		c.lastChange = now
		c.hasChange = true
	}
	if raw == c.stable || now.Sub(c.lastChange) < c.cfg.DebounceWindow {
		return EventNone, nil
	}

	c.stable = raw
	if raw {
		c.pressStart = now
		return EventNone, nil
	}

	if now.Sub(c.pressStart) >= c.cfg.LongPress {
		return EventPowerOff, nil
	}
	return EventShortPress, nil
}

// GPIOButton is an active-low button on a pulled-up GPIO pin.
type GPIOButton struct {
	pin gpio.PinIO
}

func NewGPIOButton(name string) (*GPIOButton, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("power: gpio pin %q not found", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("power: configure pin %q: %w", name, err)
	}
	return &GPIOButton{pin: pin}, nil
}

func (b *GPIOButton) Pressed() (bool, error) {
	return b.pin.Read() == gpio.Low, nil
}
