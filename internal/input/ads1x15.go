package input

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADS1x15Source reads the potentiometer through an ADS1115 on I2C. The
// 16-bit converter replaces the bare 10-bit pin the first build used, so
// FullScale should be configured to 32767 with this source.
type ADS1x15Source struct {
	bus i2c.BusCloser
	pin ads1x15.PinADC
}

// NewADS1x15Source opens the named I2C bus ("" picks the first available)
// and configures channel 0 for single-ended reads.
func NewADS1x15Source(busName string) (*ADS1x15Source, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("input: open i2c bus %q: %w", busName, err)
	}
	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("input: init ads1115: %w", err)
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0, 3300*physic.MilliVolt, 860*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("input: configure channel 0: %w", err)
	}
	return &ADS1x15Source{bus: bus, pin: pin}, nil
}

func (s *ADS1x15Source) Read() (int, error) {
	sample, err := s.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("input: adc read: %w", err)
	}
	raw := int(sample.Raw)
	if raw < 0 {
		raw = 0
	}
	return raw, nil
}

func (s *ADS1x15Source) Close() error {
	if err := s.pin.Halt(); err != nil {
		s.bus.Close()
		return err
	}
	return s.bus.Close()
}
