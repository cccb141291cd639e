package ls013b7

// The panel shifts bytes in with the opposite bit order to the frame buffer
// packing, and line data with inverted polarity. Gate line addresses are sent
// 1-based and bit reversed.

var reversedNibble = [16]byte{
	0x0, 0x8, 0x4, 0xc, 0x2, 0xa, 0x6, 0xe,
	0x1, 0x9, 0x5, 0xd, 0x3, 0xb, 0x7, 0xf,
}

var (
	bitReverseTable [256]byte
	lineDataTable   [256]byte
	gateLineTable   [maxHeight]byte
)

func init() {
	for i := range bitReverseTable {
		b := byte(i)
		bitReverseTable[i] = reversedNibble[b&0x0f]<<4 | reversedNibble[b>>4]
		lineDataTable[i] = ^bitReverseTable[i]
	}
	for row := range gateLineTable {
		gateLineTable[row] = bitReverseTable[row+1]
	}
}

// BitReverse returns b with its bit order reversed.
func BitReverse(b byte) byte {
	return bitReverseTable[b]
}

// LineData returns the on-wire form of a frame buffer byte: bit reversed and inverted.
func LineData(b byte) byte {
	return lineDataTable[b]
}

// GateLineAddress returns the on-wire address of a row.
//
// Rows are numbered from 0 but the panel numbers gate lines from 1 and reads
// the address least significant bit first. row must be in [0, 255).
func GateLineAddress(row int) byte {
	return gateLineTable[row]
}
