package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

var rgb565Cases = []struct {
	r, g, b uint8
	want    Color
}{
	{0x00, 0x00, 0x00, 0x0000},
	{0xFF, 0xFF, 0xFF, 0xFFFF},
	{0xFF, 0x00, 0x00, 0xF800},
	{0x00, 0xFF, 0x00, 0x07E0},
	{0x00, 0x00, 0xFF, 0x001F},
	{0x08, 0x04, 0x08, 0x0821},
}

func TestRGB565Packing(t *testing.T) {
	for _, tc := range rgb565Cases {
		assert.Equal(t, tc.want, RGB565(tc.r, tc.g, tc.b))
	}
	// round trip keeps the high bits
	c := RGB565(200, 100, 50)
	assert.Equal(t, uint8(200&0xF8), c.R8())
	assert.Equal(t, uint8(100&0xFC), c.G8())
	assert.Equal(t, uint8(50&0xF8), c.B8())
}

func TestFramebufferClipping(t *testing.T) {
	f := NewFramebuffer(8, 8)
	f.DrawPixel(-1, 0, White)
	f.DrawPixel(0, 8, White)
	f.DrawFastHLine(-4, 3, 20, White)
	assert.Equal(t, 8, f.Count(Black), "hline must clip to row width")
	f.Fill(Black)
	f.FillRect(-2, -2, 4, 4, White)
	assert.Equal(t, 4, f.Count(Black))
}

// Disc(r) must cover every pixel Circle(r') draws for r' <= r; the erase
// logic of every effect depends on this.
func TestDiscCoversCircleOutlines(t *testing.T) {
	for r := 0; r <= 14; r++ {
		f := NewFramebuffer(40, 40)
		for rr := 0; rr <= r; rr++ {
			f.DrawCircle(20, 20, rr, White)
		}
		f.FillCircle(20, 20, r, Black)
		assert.Zerof(t, f.Count(Black), "radius %d leaves stale outline pixels", r)
	}
}

func TestLineEndpoints(t *testing.T) {
	f := NewFramebuffer(16, 16)
	f.DrawLine(2, 3, 12, 9, White)
	assert.Equal(t, White, f.At(2, 3))
	assert.Equal(t, White, f.At(12, 9))
}

func TestST7735InitAndPixel(t *testing.T) {
	var buf bytes.Buffer
	port := spitest.NewRecordRaw(&buf)
	c, err := port.Connect(16*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	dc := &gpiotest.Pin{N: "DC"}
	d := newST7735(c, dc, nil, nil, ST7735Opts{Width: 4, Height: 4})
	if err := d.init(); err != nil {
		t.Fatal(err)
	}
	// init prologue: SWRESET, SLPOUT, COLMOD 16-bit, MADCTL landscape
	prologue := []byte{cmdSWRESET, cmdSLPOUT, cmdCOLMOD, 0x05, cmdMADCTL, 0x60}
	assert.True(t, bytes.HasPrefix(buf.Bytes(), prologue), "unexpected init stream: % x", buf.Bytes())

	before := buf.Len()
	d.DrawPixel(1, 2, White)
	assert.Greater(t, buf.Len(), before)
	assert.Equal(t, []byte{0xFF, 0xFF}, buf.Bytes()[buf.Len()-2:], "pixel payload must be big-endian 565")

	d.DrawPixel(-1, 0, White) // clipped, no traffic
	after := buf.Len()
	d.DrawPixel(99, 0, White)
	assert.Equal(t, after, buf.Len())
}
