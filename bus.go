package ls013b7

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Errors
var (
	ErrBounds       = errors.New("ls013b7: out of display bounds")
	ErrPalette      = errors.New("ls013b7: palette index out of range")
	ErrBitsPerPixel = errors.New("ls013b7: unsupported bits per pixel")
	ErrHalted       = errors.New("ls013b7: halted")
	ErrReconfigure  = errors.New("ls013b7: bus already connected with a different configuration")
)

// Bus is the serial link to the panel.
//
// A transaction is framed by Assert and Deassert and no other transaction may
// be interleaved with it. The panel is write only: nothing is ever read back,
// so a write lost on the wire cannot be detected by this driver. Errors are
// returned to the caller as is and never retried.
type Bus interface {
	// Assert selects the panel and begins a transaction.
	Assert() error
	// Deassert ends the transaction.
	Deassert() error
	// WriteBytes streams p to the panel.
	WriteBytes(p []byte) error
	// ExchangeByte clocks out one byte and returns the byte clocked in.
	ExchangeByte(b byte) (byte, error)
}

// OutPin drives a digital output, such as the DISP signal of the panel.
//
// Any gpio.PinOut satisfies it.
type OutPin interface {
	Out(l gpio.Level) error
}
