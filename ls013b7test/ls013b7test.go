// Package ls013b7test provides a software model of the LS013B7 controller.
//
// Panel implements the ls013b7.Bus interface: it decodes every transaction
// into its own pixel memory exactly the way the panel would, so tests can
// compare what was sent with what was drawn.
package ls013b7test

import (
	"errors"
	"fmt"
	"image"
	"math/bits"

	"github.com/flavioheleno/ls013b7/image1bit"
)

// Command is the decoded kind of a transaction.
type Command int

const (
	Display Command = iota
	Update
	Clear
)

func (c Command) String() string {
	switch c {
	case Display:
		return "Display"
	case Update:
		return "Update"
	case Clear:
		return "Clear"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Tx is one chip select window as seen by the panel.
type Tx struct {
	Cmd  Command
	VCOM bool
	Rows []int  // rows written, in wire order; Update only
	Raw  []byte // every byte clocked in, mode byte first

	// Failed is set when Fail rejected a write of this transaction.
	Failed bool
}

// Panel is a software LS013B7 with a W by H pixel memory.
//
// The zero value is not usable; use NewPanel.
type Panel struct {
	// Mem holds the pixels in frame buffer packing.
	Mem *image1bit.HorizontalLSB

	// Txs lists every completed transaction, including failed ones.
	Txs []Tx

	// Fail, when set, is called before each WriteBytes with the index the
	// transaction will have in Txs. A non nil error is returned to the driver
	// and the transaction is not applied to Mem.
	Fail func(tx int) error

	// Err is the first protocol violation seen.
	Err error

	asserted bool
	failed   bool
	cur      []byte
}

// NewPanel returns a cleared panel of w by h pixels.
func NewPanel(w, h int) *Panel {
	return &Panel{Mem: image1bit.NewHorizontalLSB(image.Rect(0, 0, w, h))}
}

// Assert begins a transaction.
func (p *Panel) Assert() error {
	if p.asserted {
		p.violation(errors.New("assert while already asserted"))
	}
	p.asserted = true
	p.failed = false
	p.cur = p.cur[:0]
	return nil
}

// Deassert ends the transaction and applies it to Mem.
func (p *Panel) Deassert() error {
	if !p.asserted {
		p.violation(errors.New("deassert without assert"))
		return nil
	}
	p.asserted = false
	tx, err := p.decode(p.cur)
	switch {
	case p.failed:
		tx.Failed = true
	case err != nil:
		p.violation(err)
	default:
		p.apply(tx)
	}
	p.Txs = append(p.Txs, tx)
	return nil
}

// ExchangeByte clocks in b. The panel has no output so 0 is returned.
func (p *Panel) ExchangeByte(b byte) (byte, error) {
	if !p.asserted {
		p.violation(fmt.Errorf("byte 0x%02X outside a transaction", b))
	}
	p.cur = append(p.cur, b)
	return 0, nil
}

// WriteBytes clocks in b.
func (p *Panel) WriteBytes(b []byte) error {
	if !p.asserted {
		p.violation(fmt.Errorf("%d bytes outside a transaction", len(b)))
	}
	if p.Fail != nil {
		if err := p.Fail(len(p.Txs)); err != nil {
			p.failed = true
			return err
		}
	}
	p.cur = append(p.cur, b...)
	return nil
}

// Bytes returns the number of bytes received over all transactions.
func (p *Panel) Bytes() int {
	n := 0
	for _, tx := range p.Txs {
		n += len(tx.Raw)
	}
	return n
}

// Count returns the number of transactions of kind c.
func (p *Panel) Count(c Command) int {
	n := 0
	for _, tx := range p.Txs {
		if tx.Cmd == c {
			n++
		}
	}
	return n
}

// Reset forgets the recorded transactions and protocol errors. Mem is kept.
func (p *Panel) Reset() {
	p.Txs = nil
	p.Err = nil
}

func (p *Panel) violation(err error) {
	if p.Err == nil {
		p.Err = fmt.Errorf("ls013b7test: transaction %d: %w", len(p.Txs), err)
	}
}

func (p *Panel) decode(raw []byte) (Tx, error) {
	tx := Tx{Raw: append([]byte(nil), raw...)}
	if len(raw) == 0 {
		return tx, errors.New("empty transaction")
	}
	mode := raw[0]
	tx.VCOM = mode&0x40 != 0
	body := raw[1:]
	switch mode &^ 0x40 {
	case 0x00:
		tx.Cmd = Display
		return tx, expectTrailer(body)
	case 0x20:
		tx.Cmd = Clear
		return tx, expectTrailer(body)
	case 0x80:
		tx.Cmd = Update
	default:
		return tx, fmt.Errorf("unknown mode 0x%02X", mode)
	}

	stride := p.Mem.Stride
	for {
		if len(body) == 1 && body[0] == 0 {
			break
		}
		if len(body) < stride+2 {
			return tx, fmt.Errorf("truncated line after %d rows", len(tx.Rows))
		}
		row := int(bits.Reverse8(body[0])) - 1
		if row < 0 || row >= p.Mem.Rect.Dy() {
			return tx, fmt.Errorf("gate address 0x%02X out of range", body[0])
		}
		if n := len(tx.Rows); n > 0 && row != tx.Rows[n-1]+1 {
			return tx, fmt.Errorf("row %d does not follow row %d", row, tx.Rows[n-1])
		}
		if body[1+stride] != 0 {
			return tx, fmt.Errorf("row %d trailer 0x%02X", row, body[1+stride])
		}
		tx.Rows = append(tx.Rows, row)
		body = body[stride+2:]
	}
	if len(tx.Rows) == 0 {
		return tx, errors.New("update without rows")
	}
	return tx, nil
}

func (p *Panel) apply(tx Tx) {
	switch tx.Cmd {
	case Clear:
		for i := range p.Mem.Pix {
			p.Mem.Pix[i] = 0
		}
	case Update:
		stride := p.Mem.Stride
		body := tx.Raw[1:]
		for _, r := range tx.Rows {
			line := p.Mem.Row(r)
			for i := range line {
				line[i] = ^bits.Reverse8(body[1+i])
			}
			body = body[stride+2:]
		}
	}
}

func expectTrailer(body []byte) error {
	if len(body) != 1 || body[0] != 0 {
		return fmt.Errorf("bad trailer % X", body)
	}
	return nil
}
