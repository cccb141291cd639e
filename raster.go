package ls013b7

import (
	"fmt"

	"github.com/flavioheleno/ls013b7/image1bit"
)

// Rasterizer is the set of drawing primitives a graphics library needs from a
// display to render widgets, text and images onto it.
type Rasterizer interface {
	DrawPoint(x, y int, c image1bit.Bit) error
	DrawLineH(x1, x2, y int, c image1bit.Bit) error
	DrawLineV(x, y1, y2 int, c image1bit.Bit) error
	FillRect(r Rect, c image1bit.Bit) error
	BlitMultiple(x, y, srcBitOffset, count, bitsPerPixel int, src []byte, palette Palette) error
	ColorTranslate(rgb uint32) image1bit.Bit
	Flush() error
}

var _ Rasterizer = (*Dev)(nil)

// Rect is a rectangle with inclusive bounds.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Palette maps the pixel values of a BlitMultiple source to colors.
//
// For 1 bit per pixel sources the entries are already display colors: any
// non zero entry is On. For 4 and 8 bits per pixel sources the entries are
// 24-bit RGB colors (0xRRGGBB) reduced with image1bit.Quantize.
type Palette []uint32

// PaletteFromRGB decodes a packed palette of 3 bytes per entry, blue first.
func PaletteFromRGB(p []byte) Palette {
	out := make(Palette, len(p)/3)
	for i := range out {
		out[i] = uint32(p[3*i]) | uint32(p[3*i+1])<<8 | uint32(p[3*i+2])<<16
	}
	return out
}

// ColorTranslate reduces a 24-bit RGB color to a display color.
func (d *Dev) ColorTranslate(rgb uint32) image1bit.Bit {
	return image1bit.Quantize(rgb)
}

// DrawPoint sets or clears the pixel at (x, y).
func (d *Dev) DrawPoint(x, y int, c image1bit.Bit) error {
	if err := d.checkPoint(x, y); err != nil {
		return err
	}
	row := d.fb.Row(y)
	if c {
		row[x/8] |= 1 << uint(x%8)
	} else {
		row[x/8] &^= 1 << uint(x%8)
	}
	d.fb.MarkDirty(y)
	return nil
}

// DrawLineH draws the pixels from (x1, y) to (x2, y) inclusive.
//
// Pixels outside [x1, x2] keep their value, so successive strokes composite.
func (d *Dev) DrawLineH(x1, x2, y int, c image1bit.Bit) error {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if err := d.checkRect(Rect{x1, y, x2, y}); err != nil {
		return err
	}
	compose(d.fb.Row(y), d.rowMask(x1, x2), c)
	d.fb.MarkDirty(y)
	return nil
}

// DrawLineV draws the pixels from (x, y1) to (x, y2) inclusive.
func (d *Dev) DrawLineV(x, y1, y2 int, c image1bit.Bit) error {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if err := d.checkRect(Rect{x, y1, x, y2}); err != nil {
		return err
	}
	mask := byte(1) << uint(x%8)
	for y := y1; y <= y2; y++ {
		row := d.fb.Row(y)
		if c {
			row[x/8] |= mask
		} else {
			row[x/8] &^= mask
		}
		d.fb.MarkDirty(y)
	}
	return nil
}

// FillRect draws every row of r the way DrawLineH does.
func (d *Dev) FillRect(r Rect, c image1bit.Bit) error {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	if err := d.checkRect(r); err != nil {
		return err
	}
	mask := d.rowMask(r.X1, r.X2)
	for y := r.Y1; y <= r.Y2; y++ {
		compose(d.fb.Row(y), mask, c)
		d.fb.MarkDirty(y)
	}
	return nil
}

// BlitMultiple copies count pixels of a packed source into row y starting at
// column x.
//
// Source pixels are bitsPerPixel wide (1, 4 or 8), stored most significant
// first within each byte, and the first one starts srcBitOffset bits into src.
// Each pixel value indexes palette. Nothing is written unless the whole source
// range and every index it holds are valid.
func (d *Dev) BlitMultiple(x, y, srcBitOffset, count, bitsPerPixel int, src []byte, palette Palette) error {
	switch bitsPerPixel {
	case 1, 4, 8:
	default:
		return fmt.Errorf("%w: %d", ErrBitsPerPixel, bitsPerPixel)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative pixel count %d", ErrBounds, count)
	}
	if count == 0 {
		return nil
	}
	if err := d.checkRect(Rect{x, y, x + count - 1, y}); err != nil {
		return err
	}
	if srcBitOffset < 0 || srcBitOffset%bitsPerPixel != 0 {
		return fmt.Errorf("%w: source bit offset %d for %d bpp", ErrBounds, srcBitOffset, bitsPerPixel)
	}
	if srcBitOffset > len(src)*8 || (len(src)*8-srcBitOffset)/bitsPerPixel < count {
		return fmt.Errorf("%w: %d pixels at bit %d overrun %d source bytes", ErrBounds, count, srcBitOffset, len(src))
	}

	for i := 0; i < count; i++ {
		if idx := sourceIndex(src, srcBitOffset+i*bitsPerPixel, bitsPerPixel); idx >= len(palette) {
			return fmt.Errorf("%w: %d >= %d", ErrPalette, idx, len(palette))
		}
	}

	row := d.fb.Row(y)
	for i := 0; i < count; i++ {
		entry := palette[sourceIndex(src, srcBitOffset+i*bitsPerPixel, bitsPerPixel)]
		on := entry != 0
		if bitsPerPixel != 1 {
			on = bool(image1bit.Quantize(entry))
		}
		col := x + i
		if on {
			row[col/8] |= 1 << uint(col%8)
		} else {
			row[col/8] &^= 1 << uint(col%8)
		}
	}
	d.fb.MarkDirty(y)
	return nil
}

// sourceIndex extracts the bpp wide value starting at bit of src.
func sourceIndex(src []byte, bit, bpp int) int {
	shift := uint(8 - bpp - bit%8)
	return int(src[bit/8]>>shift) & (1<<uint(bpp) - 1)
}

// rowMask returns a row with exactly the bits of columns [x1, x2] set.
// The returned slice is reused by the next call.
func (d *Dev) rowMask(x1, x2 int) []byte {
	m := d.mask
	for i := range m {
		m[i] = 0
	}
	first, last := x1/8, x2/8
	lo := byte(0xFF) << uint(x1%8)
	hi := byte(0xFF) >> uint(7-x2%8)
	if first == last {
		m[first] = lo & hi
		return m
	}
	m[first] = lo
	for i := first + 1; i < last; i++ {
		m[i] = 0xFF
	}
	m[last] = hi
	return m
}

// compose sets (c On) or clears (c Off) the mask bits of row.
func compose(row, mask []byte, c image1bit.Bit) {
	for i, m := range mask {
		if c {
			row[i] |= m
		} else {
			row[i] &^= m
		}
	}
}

func (d *Dev) checkPoint(x, y int) error {
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return fmt.Errorf("%w: point (%d,%d) outside %dx%d", ErrBounds, x, y, d.fb.Width(), d.fb.Height())
	}
	return nil
}

func (d *Dev) checkRect(r Rect) error {
	if r.X1 < 0 || r.X2 >= d.fb.Width() || r.Y1 < 0 || r.Y2 >= d.fb.Height() {
		return fmt.Errorf("%w: rect (%d,%d)-(%d,%d) outside %dx%d", ErrBounds, r.X1, r.Y1, r.X2, r.Y2, d.fb.Width(), d.fb.Height())
	}
	return nil
}
