package ls013b7

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// BusConfig is the SPI configuration of an SPIBus.
type BusConfig struct {
	Freq physic.Frequency
	Mode spi.Mode
	Bits int

	// CSActiveLow inverts the chip select. The panel SCS input is active high.
	CSActiveLow bool
}

// DefaultBusConfig matches the panel timing limits with some margin.
var DefaultBusConfig = BusConfig{
	Freq: physic.MegaHertz,
	Mode: spi.Mode0 | spi.NoCS,
	Bits: 8,
}

// SPIBus is a Bus over a periph.io SPI port with a GPIO chip select.
//
// The chip select is driven by SPIBus because the panel expects it high for
// the whole transaction, which most SPI controllers cannot do.
type SPIBus struct {
	port spi.Port
	cs   gpio.PinOut
	conn spi.Conn
	cfg  BusConfig

	w [1]byte
	r [1]byte
}

// NewSPIBus connects p and returns a Bus using cs as the chip select.
//
// cfg can be nil to use DefaultBusConfig.
func NewSPIBus(p spi.Port, cs gpio.PinOut, cfg *BusConfig) (*SPIBus, error) {
	if p == nil {
		return nil, errors.New("ls013b7: SPI port is required")
	}
	if cs == nil {
		return nil, errors.New("ls013b7: chip select pin is required")
	}
	if cfg == nil {
		cfg = &DefaultBusConfig
	}
	b := &SPIBus{port: p, cs: cs}
	if err := b.Configure(*cfg); err != nil {
		return nil, err
	}
	if err := b.Deassert(); err != nil {
		return nil, err
	}
	return b, nil
}

// Configure applies cfg to the port.
//
// A periph.io port can only be connected once, so after the first call only
// the frequency may change, and only when the port implements LimitSpeed.
// Applying the current configuration again does nothing.
func (b *SPIBus) Configure(cfg BusConfig) error {
	if b.conn != nil {
		if cfg == b.cfg {
			return nil
		}
		other := b.cfg
		other.Freq = cfg.Freq
		if other != cfg {
			return ErrReconfigure
		}
		pc, ok := b.port.(spi.PortCloser)
		if !ok {
			return fmt.Errorf("%w: %s cannot change speed", ErrReconfigure, b.port)
		}
		if err := pc.LimitSpeed(cfg.Freq); err != nil {
			return fmt.Errorf("ls013b7: failed to set SPI speed to %s: %w", cfg.Freq, err)
		}
		b.cfg = cfg
		return nil
	}
	c, err := b.port.Connect(cfg.Freq, cfg.Mode, cfg.Bits)
	if err != nil {
		return fmt.Errorf("ls013b7: failed to connect SPI: %w", err)
	}
	b.conn = c
	b.cfg = cfg
	return nil
}

// Config returns the configuration in effect.
func (b *SPIBus) Config() BusConfig {
	return b.cfg
}

// Assert drives the chip select to its active level.
func (b *SPIBus) Assert() error {
	return b.cs.Out(b.level(true))
}

// Deassert drives the chip select to its inactive level.
func (b *SPIBus) Deassert() error {
	return b.cs.Out(b.level(false))
}

// WriteBytes writes p in a single transfer.
func (b *SPIBus) WriteBytes(p []byte) error {
	return b.conn.Tx(p, nil)
}

// ExchangeByte writes v and returns the byte read at the same time.
func (b *SPIBus) ExchangeByte(v byte) (byte, error) {
	b.w[0] = v
	if err := b.conn.Tx(b.w[:], b.r[:]); err != nil {
		return 0, err
	}
	return b.r[0], nil
}

func (b *SPIBus) level(active bool) gpio.Level {
	return gpio.Level(active != b.cfg.CSActiveLow)
}

func (b *SPIBus) String() string {
	return fmt.Sprintf("ls013b7.SPIBus{%s, %s}", b.port, b.cs)
}

var _ Bus = (*SPIBus)(nil)
