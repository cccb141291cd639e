package ls013b7

import (
	"image"

	"github.com/flavioheleno/ls013b7/image1bit"
)

// FrameBuffer is the only persistent copy of the panel image, plus one dirty
// flag per row.
//
// A row is dirty when its content may differ from what the panel last
// received. Row indices outside [0, Height) panic.
type FrameBuffer struct {
	img   *image1bit.HorizontalLSB
	dirty []bool
}

// NewFrameBuffer allocates a zeroed, clean frame buffer of w by h pixels.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		img:   image1bit.NewHorizontalLSB(image.Rect(0, 0, w, h)),
		dirty: make([]bool, h),
	}
}

// Width returns the row width in pixels.
func (f *FrameBuffer) Width() int {
	return f.img.Rect.Dx()
}

// Height returns the number of rows.
func (f *FrameBuffer) Height() int {
	return len(f.dirty)
}

// Stride returns the number of bytes per row.
func (f *FrameBuffer) Stride() int {
	return f.img.Stride
}

// Row returns the packed bytes of row r. The slice aliases the frame buffer.
func (f *FrameBuffer) Row(r int) []byte {
	return f.img.Row(r)
}

// SetRow overwrites row r with p and marks it dirty.
func (f *FrameBuffer) SetRow(r int, p []byte) {
	copy(f.img.Row(r), p)
	f.dirty[r] = true
}

// MarkDirty flags row r for the next flush.
func (f *FrameBuffer) MarkDirty(r int) {
	f.dirty[r] = true
}

// ClearDirty flags row r as matching the panel.
func (f *FrameBuffer) ClearDirty(r int) {
	f.dirty[r] = false
}

// IsDirty reports whether row r needs to be sent.
func (f *FrameBuffer) IsDirty(r int) bool {
	return f.dirty[r]
}

// Bit returns the pixel at (x, y).
func (f *FrameBuffer) Bit(x, y int) image1bit.Bit {
	return f.img.BitAt(x, y)
}

// Reset zeroes every pixel and clears every dirty flag.
func (f *FrameBuffer) Reset() {
	for i := range f.img.Pix {
		f.img.Pix[i] = 0
	}
	for i := range f.dirty {
		f.dirty[i] = false
	}
}

// nextDirtyRun returns the first run [start, end] of contiguous dirty rows
// at or after row from. ok is false when no dirty row remains.
func (f *FrameBuffer) nextDirtyRun(from int) (start, end int, ok bool) {
	start = from
	for start < len(f.dirty) && !f.dirty[start] {
		start++
	}
	if start == len(f.dirty) {
		return 0, 0, false
	}
	end = start
	for end+1 < len(f.dirty) && f.dirty[end+1] {
		end++
	}
	return start, end, true
}
