// Package ls013b7 controls a Sharp LS013B7 memory LCD.
//
// The LS013B7 is a 128x128 reflective LCD with one bit per pixel, written
// row by row over a write-only serial link.
//
// See the examples for how to use this package.
package ls013b7

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/flavioheleno/ls013b7/image1bit"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"tinygo.org/x/drivers"
)

const (
	// DefaultWidth and DefaultHeight are the LS013B7DH03 panel size.
	DefaultWidth  = 128
	DefaultHeight = 128

	maxWidth  = 400
	maxHeight = 255 // gate line addresses are row+1 in a single byte
)

var debug bool

func init() {
	debug = os.Getenv("LS013B7_DEBUG") != ""
}

// Opts is the configuration for the LS013B7 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be a multiple of 8 and ≤400)
	H int // Height (default: 128, must be ≤255)

	// Disp drives the DISP signal that turns the panel on and off (optional, nil if not wired)
	Disp OutPin

	// ToggleVCOM alternates the VCOM bit of every command. Set it when EXTMODE
	// is tied low and no external COM inversion clock is provided.
	ToggleVCOM bool

	// DisableBursts sends every dirty row in its own transaction.
	DisableBursts bool
}

// Dev is the device handle for the LS013B7 display.
type Dev struct {
	// Communication
	bus  Bus
	disp OutPin

	// Display geometry
	rect image.Rectangle

	// Pixel buffers
	fb   *FrameBuffer
	mask []byte // row mask scratch
	prev []byte // row snapshot scratch
	tx   []byte // transaction body, sized for a full frame burst

	// Protocol
	toggleVCOM    bool
	vcom          byte
	disableBursts bool
	sent          int

	// State
	halted bool
}

// New creates a new LS013B7 device on an already configured bus.
//
// Nothing is sent to the panel until Init is called.
//
// opts can be nil to use defaults (128x128 display).
func New(bus Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	w, h := opts.W, opts.H
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	if w < 0 || w%8 != 0 || w > maxWidth {
		return nil, errors.New("ls013b7: width must be a multiple of 8 between 8 and 400")
	}
	if h < 0 || h > maxHeight {
		return nil, errors.New("ls013b7: height must be between 1 and 255")
	}

	fb := NewFrameBuffer(w, h)
	stride := fb.Stride()
	return &Dev{
		bus:           bus,
		disp:          opts.Disp,
		rect:          image.Rect(0, 0, w, h),
		fb:            fb,
		mask:          make([]byte, stride),
		prev:          make([]byte, stride),
		tx:            make([]byte, 0, h*(stride+2)+1),
		toggleVCOM:    opts.ToggleVCOM,
		disableBursts: opts.DisableBursts,
	}, nil
}

// NewSPI creates a new LS013B7 device connected via SPI with a GPIO chip select.
//
// The SPI port is configured with DefaultBusConfig: 1MHz, Mode0, 8-bit
// transfers and an active-high chip select driven by this package.
func NewSPI(p spi.Port, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	bus, err := NewSPIBus(p, cs, nil)
	if err != nil {
		return nil, err
	}
	return New(bus, opts)
}

// Init clears the panel memory and the frame buffer together.
//
// The frame buffer is only cleared when nothing went wrong on the bus; on
// error both are left as they were. Init also resumes a halted device.
//
// Init does not touch the DISP signal. Call DisplayOn once the panel is clear
// so no stale content shows at power up.
func (d *Dev) Init() error {
	if err := d.allClear(); err != nil {
		return err
	}
	d.fb.Reset()
	d.halted = false
	return nil
}

// DisplayOn drives the DISP signal high.
func (d *Dev) DisplayOn() error {
	return d.setDisp(gpio.High)
}

// DisplayOff drives the DISP signal low. The panel memory is retained.
func (d *Dev) DisplayOff() error {
	return d.setDisp(gpio.Low)
}

func (d *Dev) setDisp(l gpio.Level) error {
	if d.disp == nil {
		return nil
	}
	if err := d.disp.Out(l); err != nil {
		return fmt.Errorf("ls013b7: failed to drive DISP %s: %w", l, err)
	}
	return nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw pixel data to the display in HorizontalLSB format.
// The data must be exactly Stride * Height bytes. Only changed rows are sent.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	stride := d.fb.Stride()
	if len(pixels) != stride*d.fb.Height() {
		return 0, errors.New("ls013b7: invalid buffer size")
	}
	for y := 0; y < d.fb.Height(); y++ {
		line := pixels[y*stride : (y+1)*stride]
		if !bytes.Equal(d.fb.Row(y), line) {
			d.fb.SetRow(y, line)
		}
	}
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display and flushes the rows that changed.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	// Clip to display bounds, keeping src aligned
	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))
	dst = clipped

	// Fast path: if source is already HorizontalLSB at full size
	if srcImg, ok := src.(*image1bit.HorizontalLSB); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			_, err := d.Write(srcImg.Pix)
			return err
		}
	}

	// Slow path: render row by row, marking only the rows that changed
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		row := d.fb.Row(y)
		copy(d.prev, row)
		line := image.Rect(dst.Min.X, y, dst.Max.X, y+1)
		draw.Draw(d.fb.img, line, src, image.Pt(sp.X, sp.Y+y-dst.Min.Y), draw.Src)
		if !bytes.Equal(d.prev, row) {
			d.fb.MarkDirty(y)
		}
	}
	return d.Flush()
}

// Pixel returns the frame buffer pixel at (x, y).
func (d *Dev) Pixel(x, y int) (image1bit.Bit, error) {
	if err := d.checkPoint(x, y); err != nil {
		return image1bit.Off, err
	}
	return d.fb.Bit(x, y), nil
}

// Row returns a copy of the packed frame buffer row r.
func (d *Dev) Row(r int) ([]byte, error) {
	if err := d.checkPoint(0, r); err != nil {
		return nil, err
	}
	return append([]byte(nil), d.fb.Row(r)...), nil
}

// IsDirty reports whether row r differs from what the panel last received.
func (d *Dev) IsDirty(r int) (bool, error) {
	if err := d.checkPoint(0, r); err != nil {
		return false, err
	}
	return d.fb.IsDirty(r), nil
}

// BytesSent returns the number of bytes successfully transmitted since the device was created.
func (d *Dev) BytesSent() int {
	return d.sent
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. Like image.Image Set, pixels outside
// the display are ignored.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}.In(d.rect)) {
		return
	}
	b := image1bit.BitModel.Convert(c).(image1bit.Bit)
	if d.fb.Bit(int(x), int(y)) != b {
		d.fb.img.SetBit(int(x), int(y), b)
		d.fb.MarkDirty(int(y))
	}
}

// Display implements drivers.Displayer.
func (d *Dev) Display() error {
	return d.Flush()
}

// Halt turns the display off.
// After calling Halt, Flush, Refresh, Draw and Write fail until Init is called.
func (d *Dev) Halt() error {
	d.halted = true
	return d.DisplayOff()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ls013b7.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

var (
	_ display.Drawer   = (*Dev)(nil)
	_ drivers.Displayer = (*Dev)(nil)
)
