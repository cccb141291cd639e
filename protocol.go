package ls013b7

import (
	"fmt"
)

// Mode byte bits, in the order the panel shifts them in.
const (
	modeUpdate  byte = 0x80 // M0: data update
	modeVCOM    byte = 0x40 // M1: VCOM level
	modeClear   byte = 0x20 // M2: all clear
	modeDisplay byte = 0x00 // display only, memory retained
)

// dummy is the filler byte clocked after addresses, lines and commands.
const dummy byte = 0x00

// Each command is a single chip select window:
//
//	all clear:   mode(clear)   dummy
//	update:      mode(update)  gate data[stride] dummy dummy
//	update N:    mode(update) {gate data[stride] dummy}*N dummy
//	display:     mode(display) dummy
//
// The mode byte goes out with ExchangeByte, everything after it with a single
// WriteBytes.

// allClear clears the panel memory.
func (d *Dev) allClear() error {
	d.tx = append(d.tx[:0], dummy)
	return d.transact(modeClear, d.tx)
}

// updateRow sends row r alone.
func (d *Dev) updateRow(r int) error {
	d.tx = d.appendLine(d.tx[:0], r)
	d.tx = append(d.tx, dummy, dummy)
	return d.transact(modeUpdate, d.tx)
}

// updateRows sends the contiguous rows [start, end] in one burst. The panel
// increments its line counter itself so rows must be strictly increasing.
func (d *Dev) updateRows(start, end int) error {
	d.tx = d.tx[:0]
	for r := start; r <= end; r++ {
		d.tx = d.appendLine(d.tx, r)
		d.tx = append(d.tx, dummy)
	}
	d.tx = append(d.tx, dummy)
	return d.transact(modeUpdate, d.tx)
}

// refresh tells the panel to keep showing its memory.
func (d *Dev) refresh() error {
	d.tx = append(d.tx[:0], dummy)
	return d.transact(modeDisplay, d.tx)
}

// appendLine appends the gate line address and the wire form of row r.
func (d *Dev) appendLine(p []byte, r int) []byte {
	p = append(p, GateLineAddress(r))
	for _, b := range d.fb.Row(r) {
		p = append(p, LineData(b))
	}
	return p
}

// transact sends mode then body inside one chip select window. Deassert is
// attempted even when a write fails; the first error wins. With ToggleVCOM the
// VCOM bit alternates between mode bytes that were actually sent.
func (d *Dev) transact(mode byte, body []byte) (err error) {
	if d.toggleVCOM {
		mode |= d.vcom
	}
	if err = d.bus.Assert(); err != nil {
		return fmt.Errorf("ls013b7: assert: %w", err)
	}
	defer func() {
		if derr := d.bus.Deassert(); derr != nil && err == nil {
			err = fmt.Errorf("ls013b7: deassert: %w", derr)
		}
	}()
	if _, err = d.bus.ExchangeByte(mode); err != nil {
		return fmt.Errorf("ls013b7: mode 0x%02X: %w", mode, err)
	}
	// The phase only advances once the mode byte went out.
	if d.toggleVCOM {
		d.vcom ^= modeVCOM
	}
	if err = d.bus.WriteBytes(body); err != nil {
		return fmt.Errorf("ls013b7: write %d bytes: %w", len(body), err)
	}
	d.sent += 1 + len(body)
	return nil
}
