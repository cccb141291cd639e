package ls013b7

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/ls013b7/image1bit"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawString renders s with face into the frame buffer, with the baseline of
// the first glyph at (x, y). Glyph pixels whose coverage is at least half are
// painted with c; the rest of the frame buffer is left untouched.
//
// Text running off the display is clipped. The rows that were touched are
// marked dirty; call Flush to send them.
func (d *Dev) DrawString(x, y int, s string, face font.Face, c image1bit.Bit) error {
	if err := d.checkPoint(x, y); err != nil {
		return err
	}
	dr := &font.Drawer{
		Dst:  &textTarget{dev: d, c: c},
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	bounds, _ := dr.BoundString(s)
	dr.DrawString(s)

	top := bounds.Min.Y.Floor()
	bottom := bounds.Max.Y.Ceil()
	if top < 0 {
		top = 0
	}
	if bottom > d.fb.Height() {
		bottom = d.fb.Height()
	}
	for r := top; r < bottom; r++ {
		d.fb.MarkDirty(r)
	}
	return nil
}

// textTarget adapts the frame buffer to the draw.Image a font.Drawer paints
// on. At reports every pixel as transparent so that compositing an opaque
// source over it yields the glyph coverage as alpha.
type textTarget struct {
	dev *Dev
	c   image1bit.Bit
}

func (t *textTarget) ColorModel() color.Model {
	return image1bit.BitModel
}

func (t *textTarget) Bounds() image.Rectangle {
	return t.dev.rect
}

func (t *textTarget) At(x, y int) color.Color {
	return color.Transparent
}

func (t *textTarget) Set(x, y int, c color.Color) {
	if _, _, _, a := c.RGBA(); a >= 0x8000 {
		t.dev.fb.img.SetBit(x, y, t.c)
	}
}

var _ draw.Image = (*textTarget)(nil)
