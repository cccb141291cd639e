// Package image1bit provides a 1-bit image format optimized for the LS013B7 display.
//
// Pixels are stored 8 per byte, least significant bit first within each byte.
// This package provides the Bit color type and the HorizontalLSB image implementation.
package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a 1-bit color.
type Bit bool

const (
	// On is the set pixel value.
	On = Bit(true)
	// Off is the cleared pixel value.
	Off = Bit(false)
)

// RGBA converts the Bit to standard RGBA. On is white, Off is black.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// Luma returns the 8-bit weighted luma of a 24-bit RGB color.
// Red is bits 16-23, green bits 8-15 and blue bits 0-7.
//
// The weights add up to 65536 so no floating point is needed.
func Luma(rgb uint32) uint8 {
	return uint8(weigh(rgb) >> 16)
}

// Quantize reduces a 24-bit RGB color to the single bit the display can show.
// Any color whose luma is in the upper half of the range is On.
func Quantize(rgb uint32) Bit {
	return weigh(rgb)/(65536*128) != 0
}

func weigh(rgb uint32) uint32 {
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF
	return r*19661 + g*38666 + b*7209
}

// RGB24 packs the 8 most significant bits of each channel of c into a 24-bit RGB value.
func RGB24(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (r>>8)<<16 | (g>>8)<<8 | b>>8
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	return Quantize(RGB24(c))
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// HorizontalLSB is a 1-bit image where pixels are packed 8 per byte along each row.
// Bit 0 of a byte is its leftmost pixel.
type HorizontalLSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalLSB creates a new HorizontalLSB image with the specified bounds.
// Rows are padded to a whole number of bytes.
func NewHorizontalLSB(r image.Rectangle) *HorizontalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalLSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &HorizontalLSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *HorizontalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *HorizontalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y). Pixels outside the bounds are Off.
func (p *HorizontalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the color of the pixel at (x, y).
func (p *HorizontalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, toBit(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *HorizontalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Row returns the packed bytes of row y. The slice aliases Pix.
func (p *HorizontalLSB) Row(y int) []byte {
	i := (y - p.Rect.Min.Y) * p.Stride
	return p.Pix[i : i+p.Stride : i+p.Stride]
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *HorizontalLSB) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 1 << uint(dx%8)
	return
}
