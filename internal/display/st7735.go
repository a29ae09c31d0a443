package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// ST7735 command set (subset used here).
const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVOFF  = 0x20
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

const spiChunk = 2048 // keep transfers under common spidev buffer limits

// ST7735Opts configures the TFT driver.
type ST7735Opts struct {
	Port         string // e.g. "SPI0.0"
	SpeedHz      int    // e.g. 16000000
	DCPin        string // data/command select
	ResetPin     string // hardware reset, optional ("" to skip)
	BacklightPin string // optional
	Width        int    // panel width after rotation, default 160
	Height       int    // panel height after rotation, default 128
	ColOffset    int    // RAM offset for offset panels
	RowOffset    int
}

// ST7735 drives a 16-bit color TFT over SPI. The scattered-pixel primitives
// go through the shared rasterizers; rect and hline fills use a RAM window
// for one burst write.
type ST7735 struct {
	port spi.PortCloser
	c    spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	bl   gpio.PinOut
	w, h int
	xOff int
	yOff int
}

// NewST7735 opens the SPI port and GPIO lines and runs the panel init
// sequence.
func NewST7735(o ST7735Opts) (*ST7735, error) {
	if o.Port == "" {
		o.Port = "SPI0.0"
	}
	if o.SpeedHz <= 0 {
		o.SpeedHz = 16000000
	}
	port, err := spireg.Open(o.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", o.Port, err)
	}
	c, err := port.Connect(physic.Frequency(o.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("spi connect: %w", err)
	}
	dc := gpioreg.ByName(o.DCPin)
	if dc == nil {
		_ = port.Close()
		return nil, fmt.Errorf("dc pin %q not found", o.DCPin)
	}
	var rst, bl gpio.PinOut
	if o.ResetPin != "" {
		if rst = gpioreg.ByName(o.ResetPin); rst == nil {
			_ = port.Close()
			return nil, fmt.Errorf("reset pin %q not found", o.ResetPin)
		}
	}
	if o.BacklightPin != "" {
		if bl = gpioreg.ByName(o.BacklightPin); bl == nil {
			_ = port.Close()
			return nil, fmt.Errorf("backlight pin %q not found", o.BacklightPin)
		}
	}
	d := newST7735(c, dc, rst, bl, o)
	d.port = port
	if err := d.init(); err != nil {
		_ = port.Close()
		return nil, err
	}
	return d, nil
}

// newST7735 wires a driver over an existing connection; tests use this with
// a spitest record and gpiotest pins.
func newST7735(c spi.Conn, dc, rst, bl gpio.PinOut, o ST7735Opts) *ST7735 {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 160
	}
	if h <= 0 {
		h = 128
	}
	return &ST7735{
		c:    c,
		dc:   dc,
		rst:  rst,
		bl:   bl,
		w:    w,
		h:    h,
		xOff: o.ColOffset,
		yOff: o.RowOffset,
	}
}

func (d *ST7735) init() error {
	if d.rst != nil {
		_ = d.rst.Out(gpio.High)
		time.Sleep(5 * time.Millisecond)
		_ = d.rst.Out(gpio.Low)
		time.Sleep(20 * time.Millisecond)
		_ = d.rst.Out(gpio.High)
		time.Sleep(150 * time.Millisecond)
	}
	steps := []struct {
		cmd   byte
		data  []byte
		delay time.Duration
	}{
		{cmd: cmdSWRESET, delay: 150 * time.Millisecond},
		{cmd: cmdSLPOUT, delay: 120 * time.Millisecond},
		{cmd: cmdCOLMOD, data: []byte{0x05}, delay: 10 * time.Millisecond}, // 16-bit color
		{cmd: cmdMADCTL, data: []byte{0x60}},                               // landscape
		{cmd: cmdINVOFF},
		{cmd: cmdNORON, delay: 10 * time.Millisecond},
		{cmd: cmdDISPON, delay: 100 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	if d.bl != nil {
		_ = d.bl.Out(gpio.High)
	}
	d.Fill(Black)
	return nil
}

func (d *ST7735) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("cmd 0x%02x: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

func (d *ST7735) writeData(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(b) > 0 {
		n := len(b)
		if n > spiChunk {
			n = spiChunk
		}
		if err := d.c.Tx(b[:n], nil); err != nil {
			return fmt.Errorf("spi data: %w", err)
		}
		b = b[n:]
	}
	return nil
}

func (d *ST7735) setWindow(x0, y0, x1, y1 int) error {
	x0 += d.xOff
	x1 += d.xOff
	y0 += d.yOff
	y1 += d.yOff
	if err := d.command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.command(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return d.command(cmdRAMWR)
}

func (d *ST7735) Size() (int, int) { return d.w, d.h }

func (d *ST7735) DrawPixel(x, y int, c Color) {
	if x < 0 || x >= d.w || y < 0 || y >= d.h {
		return
	}
	if err := d.setWindow(x, y, x, y); err != nil {
		return
	}
	_ = d.writeData([]byte{byte(c >> 8), byte(c)})
}

func (d *ST7735) DrawFastHLine(x, y, w int, c Color) {
	if y < 0 || y >= d.h || w <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > d.w {
		w = d.w - x
	}
	if w <= 0 {
		return
	}
	if err := d.setWindow(x, y, x+w-1, y); err != nil {
		return
	}
	_ = d.writeData(repeatColor(c, w))
}

func (d *ST7735) FillRect(x, y, w, h int, c Color) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > d.w {
		w = d.w - x
	}
	if y+h > d.h {
		h = d.h - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return
	}
	_ = d.writeData(repeatColor(c, w*h))
}

func (d *ST7735) Fill(c Color) { d.FillRect(0, 0, d.w, d.h, c) }

func (d *ST7735) DrawLine(x0, y0, x1, y1 int, c Color) { Line(d, x0, y0, x1, y1, c) }
func (d *ST7735) DrawCircle(cx, cy, r int, c Color)    { Circle(d, cx, cy, r, c) }
func (d *ST7735) FillCircle(cx, cy, r int, c Color)    { Disc(d, cx, cy, r, c) }
func (d *ST7735) DrawRect(x, y, w, h int, c Color)     { Rect(d, x, y, w, h, c) }

// Close blanks the panel, drops the backlight and releases the port.
func (d *ST7735) Close() error {
	d.Fill(Black)
	_ = d.command(cmdDISPOFF)
	if d.bl != nil {
		_ = d.bl.Out(gpio.Low)
	}
	if d.port != nil {
		return d.port.Close()
	}
	return nil
}

func repeatColor(c Color, n int) []byte {
	b := make([]byte, 2*n)
	hi, lo := byte(c>>8), byte(c)
	for i := 0; i < n; i++ {
		b[2*i] = hi
		b[2*i+1] = lo
	}
	return b
}
