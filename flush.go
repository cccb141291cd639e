package ls013b7

import (
	"log"
)

// Flush sends every dirty row to the panel, then a display pulse.
//
// Contiguous dirty rows are sent in a single burst unless bursts are disabled;
// a lone dirty row is sent on its own. A row is marked clean only once the
// transaction carrying it succeeded, so after an error the rows that did not
// make it stay dirty and the next Flush sends them again. With no dirty rows
// Flush only sends the display pulse.
func (d *Dev) Flush() error {
	if d.halted {
		return ErrHalted
	}
	var rows, bursts int
	sent := d.sent
	for r := 0; ; {
		start, end, ok := d.fb.nextDirtyRun(r)
		if !ok {
			break
		}
		if start == end || d.disableBursts {
			for i := start; i <= end; i++ {
				if err := d.updateRow(i); err != nil {
					return err
				}
				d.fb.ClearDirty(i)
				rows++
			}
		} else {
			if err := d.updateRows(start, end); err != nil {
				return err
			}
			for i := start; i <= end; i++ {
				d.fb.ClearDirty(i)
			}
			rows += end - start + 1
			bursts++
		}
		r = end + 1
	}
	if err := d.refresh(); err != nil {
		return err
	}
	if debug {
		log.Printf("ls013b7: flushed %d rows (%d bursts) in %d bytes", rows, bursts, d.sent-sent)
	}
	return nil
}

// Refresh sends the display pulse alone. Panels that need a periodic VCOM
// inversion should have it called at least once per second.
func (d *Dev) Refresh() error {
	if d.halted {
		return ErrHalted
	}
	return d.refresh()
}
