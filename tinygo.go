package ls013b7

import (
	"tinygo.org/x/drivers"
)

// Pin is a TinyGo style output pin, such as machine.Pin.
type Pin interface {
	High()
	Low()
}

// TinyGoBus is a Bus over a TinyGo SPI peripheral and a chip select pin.
//
// The SPI bus must have already been configured.
type TinyGoBus struct {
	spi       drivers.SPI
	cs        Pin
	activeLow bool
}

// NewTinyGoBus returns a Bus on spi using cs as the chip select and drives it
// to its inactive level. The panel SCS input is active high; activeLow is for
// boards with an inverter on the line.
func NewTinyGoBus(spi drivers.SPI, cs Pin, activeLow bool) *TinyGoBus {
	b := &TinyGoBus{spi: spi, cs: cs, activeLow: activeLow}
	b.drive(false)
	return b
}

// Assert drives the chip select to its active level.
func (b *TinyGoBus) Assert() error {
	b.drive(true)
	return nil
}

// Deassert drives the chip select to its inactive level.
func (b *TinyGoBus) Deassert() error {
	b.drive(false)
	return nil
}

// WriteBytes writes p, discarding what is read back.
func (b *TinyGoBus) WriteBytes(p []byte) error {
	return b.spi.Tx(p, nil)
}

// ExchangeByte transfers a single byte.
func (b *TinyGoBus) ExchangeByte(v byte) (byte, error) {
	return b.spi.Transfer(v)
}

func (b *TinyGoBus) drive(active bool) {
	if active != b.activeLow {
		b.cs.High()
	} else {
		b.cs.Low()
	}
}

var _ Bus = (*TinyGoBus)(nil)
