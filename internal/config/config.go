package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FPSCfg struct {
	IdleMs     int `yaml:"idle_ms"`
	WarpMs     int `yaml:"warp_ms"`
	ShowcaseMs int `yaml:"showcase_ms"`
}

type InputCfg struct {
	I2CBus    string  `yaml:"i2c_bus"`    // "" picks the first bus
	FullScale int     `yaml:"full_scale"` // 32767 for the ADS1115
	Threshold float64 `yaml:"threshold"`
	Samples   int     `yaml:"samples"`
}

type ButtonCfg struct {
	Pin         string `yaml:"pin"` // e.g. GPIO17
	DebounceMs  int    `yaml:"debounce_ms"`
	LongPressMs int    `yaml:"long_press_ms"`
}

type SPICfg struct {
	Dev       string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz   int    `yaml:"speed_hz"` // e.g. 32000000
	DCPin     string `yaml:"dc_pin"`
	ResetPin  string `yaml:"reset_pin"`
	Backlight string `yaml:"backlight_pin"`
}

type SceneCfg struct {
	Seed         int64   `yaml:"seed"` // 0 seeds from the clock
	ShowcaseProb float64 `yaml:"showcase_prob"`
	ShowcaseMs   int64   `yaml:"showcase_ms"`
	StartAsleep  bool    `yaml:"start_asleep"`
}

type Config struct {
	Driver string `yaml:"driver"` // "st7735" | "sim"
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Addr   string `yaml:"addr"` // preview listen address

	FPS    FPSCfg    `yaml:"fps"`
	Input  InputCfg  `yaml:"input"`
	Button ButtonCfg `yaml:"button"`
	SPI    SPICfg    `yaml:"spi,omitempty"`
	Scene  SceneCfg  `yaml:"scene"`
}

// Default is the out-of-the-box setup: a 160x128 panel on the first SPI
// port, preview on :8099.
func Default() *Config {
	return &Config{
		Driver: "sim",
		Width:  160,
		Height: 128,
		Addr:   ":8099",
		FPS:    FPSCfg{IdleMs: 50, WarpMs: 16, ShowcaseMs: 33},
		Input:  InputCfg{FullScale: 32767, Threshold: 0.05, Samples: 8},
		Button: ButtonCfg{Pin: "GPIO17", DebounceMs: 30, LongPressMs: 1500},
		SPI: SPICfg{
			Dev:       "",
			SpeedHz:   32000000,
			DCPin:     "GPIO24",
			ResetPin:  "GPIO25",
			Backlight: "GPIO18",
		},
		Scene: SceneCfg{ShowcaseProb: 0.8, ShowcaseMs: 10000},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
