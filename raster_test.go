package ls013b7

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/flavioheleno/ls013b7/image1bit"
)

func TestDrawPointPacking(t *testing.T) {
	d, _ := newTestDev(t, nil)
	for _, x := range []int{0, 2, 3, 7} {
		if err := d.DrawPoint(x, 0, image1bit.On); err != nil {
			t.Fatal(err)
		}
	}
	if got := d.fb.Row(0)[0]; got != 0x8D {
		t.Errorf("row 0 byte 0 = 0x%02X, want 0x8D", got)
	}
}

func TestDrawPointRoundTrip(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 24, H: 3})
	for y := 0; y < 3; y++ {
		for x := 0; x < 24; x++ {
			for _, c := range []image1bit.Bit{image1bit.On, image1bit.Off} {
				if err := d.DrawPoint(x, y, c); err != nil {
					t.Fatal(err)
				}
				if got, _ := d.Pixel(x, y); got != c {
					t.Fatalf("Pixel(%d, %d) = %v after DrawPoint(%v)", x, y, got, c)
				}
			}
		}
	}
}

func TestDrawPointDirty(t *testing.T) {
	d, _ := newTestDev(t, nil)
	d.fb.MarkDirty(10)
	if err := d.DrawPoint(3, 40, image1bit.Off); err != nil {
		t.Fatal(err)
	}
	for r := 0; r < d.fb.Height(); r++ {
		want := r == 10 || r == 40
		if got, _ := d.IsDirty(r); got != want {
			t.Errorf("IsDirty(%d) = %v, want %v", r, got, want)
		}
	}
}

func TestDrawLineHCompositing(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 32, H: 1})
	if err := d.DrawLineH(2, 10, 0, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if err := d.DrawLineH(20, 6, 0, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if err := d.DrawLineH(12, 13, 0, image1bit.Off); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 32; x++ {
		want := image1bit.Bit(x >= 2 && x <= 20 && (x < 12 || x > 13))
		if got, _ := d.Pixel(x, 0); got != want {
			t.Errorf("Pixel(%d, 0) = %v, want %v", x, got, want)
		}
	}
}

func TestDrawLineHMasks(t *testing.T) {
	tests := []struct {
		name   string
		x1, x2 int
		want   []byte
	}{
		{"single pixel", 3, 3, []byte{0x08, 0x00, 0x00}},
		{"within one byte", 1, 6, []byte{0x7E, 0x00, 0x00}},
		{"whole byte", 8, 15, []byte{0x00, 0xFF, 0x00}},
		{"across two bytes", 6, 9, []byte{0xC0, 0x03, 0x00}},
		{"across three bytes", 4, 19, []byte{0xF0, 0xFF, 0x0F}},
		{"full row", 0, 23, []byte{0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDev(t, &Opts{W: 24, H: 1})
			if err := d.DrawLineH(tt.x1, tt.x2, 0, image1bit.On); err != nil {
				t.Fatal(err)
			}
			if got := d.fb.Row(0); !bytes.Equal(got, tt.want) {
				t.Errorf("row = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestDrawLineV(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 16, H: 8})
	if err := d.DrawLineV(9, 6, 2, image1bit.On); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		want := y >= 2 && y <= 6
		if got, _ := d.Pixel(9, y); bool(got) != want {
			t.Errorf("Pixel(9, %d) = %v, want %v", y, got, want)
		}
		if got, _ := d.Pixel(8, y); got {
			t.Errorf("Pixel(8, %d) set", y)
		}
		if dirty, _ := d.IsDirty(y); dirty != want {
			t.Errorf("IsDirty(%d) = %v, want %v", y, dirty, want)
		}
	}
}

func TestFillRectMatchesDrawPoint(t *testing.T) {
	a, _ := newTestDev(t, nil)
	b, _ := newTestDev(t, nil)
	if err := a.FillRect(Rect{X1: 13, Y1: 0, X2: 13, Y2: 127}, image1bit.On); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 128; y++ {
		if err := b.DrawPoint(13, y, image1bit.On); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(a.fb.img.Pix, b.fb.img.Pix) {
		t.Error("FillRect() of one column differs from DrawPoint() per row")
	}
}

func TestFillRect(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 32, H: 8})
	if err := d.FillRect(Rect{X1: 30, Y1: 5, X2: 3, Y2: 1}, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if err := d.FillRect(Rect{X1: 8, Y1: 2, X2: 15, Y2: 3}, image1bit.Off); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 32; x++ {
			in := x >= 3 && x <= 30 && y >= 1 && y <= 5
			hole := x >= 8 && x <= 15 && y >= 2 && y <= 3
			if got, _ := d.Pixel(x, y); bool(got) != (in && !hole) {
				t.Fatalf("Pixel(%d, %d) = %v, want %v", x, y, got, in && !hole)
			}
		}
	}
}

func TestRasterBounds(t *testing.T) {
	tests := []struct {
		name string
		draw func(d *Dev) error
	}{
		{"point x", func(d *Dev) error { return d.DrawPoint(16, 0, image1bit.On) }},
		{"point y", func(d *Dev) error { return d.DrawPoint(0, -1, image1bit.On) }},
		{"line h", func(d *Dev) error { return d.DrawLineH(-1, 3, 0, image1bit.On) }},
		{"line h row", func(d *Dev) error { return d.DrawLineH(0, 3, 4, image1bit.On) }},
		{"line v", func(d *Dev) error { return d.DrawLineV(2, 0, 4, image1bit.On) }},
		{"rect", func(d *Dev) error { return d.FillRect(Rect{0, 0, 16, 3}, image1bit.On) }},
		{"blit overrun", func(d *Dev) error {
			return d.BlitMultiple(10, 0, 0, 7, 1, []byte{0xFF}, Palette{0, 1})
		}},
		{"blit negative count", func(d *Dev) error {
			return d.BlitMultiple(0, 0, 0, -1, 1, []byte{0xFF}, Palette{0, 1})
		}},
		{"blit source short", func(d *Dev) error {
			return d.BlitMultiple(0, 0, 4, 8, 1, []byte{0xFF}, Palette{0, 1})
		}},
		{"blit misaligned offset", func(d *Dev) error {
			return d.BlitMultiple(0, 0, 2, 1, 4, []byte{0xFF}, make(Palette, 16))
		}},
		{"string", func(d *Dev) error { return d.DrawString(0, 4, "x", nil, image1bit.On) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDev(t, &Opts{W: 16, H: 4})
			if err := tt.draw(d); !errors.Is(err, ErrBounds) {
				t.Fatalf("error = %v, want %v", err, ErrBounds)
			}
			for i, b := range d.fb.img.Pix {
				if b != 0 {
					t.Errorf("Pix[%d] = 0x%02X after rejected call", i, b)
				}
			}
			for r := 0; r < 4; r++ {
				if d.fb.IsDirty(r) {
					t.Errorf("row %d dirty after rejected call", r)
				}
			}
		})
	}
}

func TestBlitMultiple1bpp(t *testing.T) {
	tests := []struct {
		name   string
		x      int
		offset int
		count  int
		src    []byte
		want   []byte
	}{
		{"aligned byte", 0, 0, 8, []byte{0x80}, []byte{0x01, 0x00, 0x00}},
		{"msb first", 0, 0, 8, []byte{0xA0}, []byte{0x05, 0x00, 0x00}},
		{"destination across bytes", 5, 0, 8, []byte{0xFF}, []byte{0xE0, 0x1F, 0x00}},
		{"source offset", 0, 3, 5, []byte{0x1F}, []byte{0x1F, 0x00, 0x00}},
		{"both unaligned", 7, 6, 4, []byte{0x02, 0x80}, []byte{0x80, 0x02, 0x00}},
		{"long run", 2, 0, 20, []byte{0xFF, 0x00, 0xF0}, []byte{0xFC, 0x03, 0x3C}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDev(t, &Opts{W: 24, H: 2})
			if err := d.BlitMultiple(tt.x, 1, tt.offset, tt.count, 1, tt.src, Palette{0, 1}); err != nil {
				t.Fatal(err)
			}
			if got := d.fb.Row(1); !bytes.Equal(got, tt.want) {
				t.Errorf("row = % X, want % X", got, tt.want)
			}
			if dirty, _ := d.IsDirty(1); !dirty {
				t.Error("row 1 not dirty")
			}
			if dirty, _ := d.IsDirty(0); dirty {
				t.Error("row 0 dirty")
			}
		})
	}
}

func TestBlitMultipleOverwrites(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 16, H: 1})
	if err := d.FillRect(Rect{0, 0, 15, 0}, image1bit.On); err != nil {
		t.Fatal(err)
	}
	// Only columns 4 to 7 are written; 5 and 6 are cleared.
	if err := d.BlitMultiple(4, 0, 0, 4, 1, []byte{0x90}, Palette{0, 1}); err != nil {
		t.Fatal(err)
	}
	if got, want := d.fb.Row(0), []byte{0x9F, 0xFF}; !bytes.Equal(got, want) {
		t.Errorf("row = % X, want % X", got, want)
	}
}

func TestBlitMultiple8bpp(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 16, H: 1})
	pal := PaletteFromRGB([]byte{
		0x00, 0x00, 0x00, // black
		0xFF, 0xFF, 0xFF, // white
		0x00, 0xFF, 0x00, // green
		0xFF, 0x00, 0x00, // blue
	})
	src := []byte{9, 1, 2, 3, 0, 1}
	if err := d.BlitMultiple(6, 0, 8, 5, 8, src, pal); err != nil {
		t.Fatal(err)
	}
	// white, green, blue, black, white at columns 6 to 10.
	for x, want := range map[int]image1bit.Bit{6: true, 7: true, 8: false, 9: false, 10: true, 5: false, 11: false} {
		if got, _ := d.Pixel(x, 0); got != want {
			t.Errorf("Pixel(%d, 0) = %v, want %v", x, got, want)
		}
	}
}

func TestBlitMultiple4bpp(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 8, H: 1})
	pal := make(Palette, 16)
	pal[0xF] = 0xFFFFFF
	pal[0x8] = 0x808080
	if err := d.BlitMultiple(0, 0, 4, 3, 4, []byte{0xAF, 0x08}, pal); err != nil {
		t.Fatal(err)
	}
	if got := d.fb.Row(0)[0]; got != 0x05 {
		t.Errorf("row = 0x%02X, want 0x05", got)
	}
}

func TestBlitMultipleRejects(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		bpp     int
		src     []byte
		palette Palette
		wantErr error
	}{
		{"palette index 1bpp", 0, 1, []byte{0xFF}, Palette{0}, ErrPalette},
		{"palette index 8bpp", 0, 8, []byte{0, 0, 0, 7}, make(Palette, 4), ErrPalette},
		{"2 bpp", 0, 2, []byte{0xFF}, make(Palette, 4), ErrBitsPerPixel},
		{"16 bpp", 0, 16, []byte{0xFF, 0xFF, 0xFF, 0xFF}, nil, ErrBitsPerPixel},
		{"negative offset", -1, 1, []byte{0xFF}, Palette{0, 1}, ErrBounds},
		{"source overrun", 6, 1, []byte{0xFF}, Palette{0, 1}, ErrBounds},
		{"offset past source", 16, 1, []byte{0xFF}, Palette{0, 1}, ErrBounds},
		{"offset overflows", math.MaxInt - 7, 1, []byte{0xFF, 0xFF}, Palette{0, 1}, ErrBounds},
		{"offset overflows 8bpp", math.MaxInt - 7, 8, []byte{0xFF, 0xFF}, make(Palette, 256), ErrBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDev(t, &Opts{W: 16, H: 1})
			if err := d.BlitMultiple(0, 0, tt.offset, 4, tt.bpp, tt.src, tt.palette); !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if d.fb.Row(0)[0] != 0 || d.fb.IsDirty(0) {
				t.Error("rejected blit modified the frame buffer")
			}
		})
	}
}

func TestBlitMultipleZeroCount(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 16, H: 1})
	if err := d.BlitMultiple(15, 0, 0, 0, 8, nil, nil); err != nil {
		t.Errorf("zero count error = %v", err)
	}
	if d.fb.IsDirty(0) {
		t.Error("zero count dirtied the row")
	}
}

func TestPaletteFromRGB(t *testing.T) {
	got := PaletteFromRGB([]byte{0x01, 0x02, 0x03, 0xFF, 0x00, 0x80, 0x99})
	want := Palette{0x030201, 0x8000FF}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = 0x%06X, want 0x%06X", i, got[i], want[i])
		}
	}
}

func TestColorTranslate(t *testing.T) {
	d := &Dev{}
	tests := []struct {
		rgb  uint32
		want image1bit.Bit
	}{
		{0x000000, image1bit.Off},
		{0xFFFFFF, image1bit.On},
		{0x7F7F7F, image1bit.Off},
		{0x808080, image1bit.On},
		{0x0000FF, image1bit.Off},
		{0x00FF00, image1bit.On},
	}
	for _, tt := range tests {
		if got := d.ColorTranslate(tt.rgb); got != tt.want {
			t.Errorf("ColorTranslate(0x%06X) = %v, want %v", tt.rgb, got, tt.want)
		}
	}
}
