// Package image1bit provides a 1-bit image format for the LS013B7 memory LCD.
//
// The LS013B7 stores a single bit per pixel and has no gray levels. Pixels are
// packed horizontally, 8 per byte, least significant bit first: the pixel at
// column x lives in byte x/8 of its row, bit x%8.
//
// Memory layout example for a 10-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9
//	Values: 1 0 1 1 0 0 0 1 | 1 0
//	Bytes:  0x8D              0x01
//	        (0x8D = 0b10001101, bit 0 is pixel 0)
//
// This package provides:
//
// - Bit: a color type with two values, On and Off
// - BitModel: a color model quantizing any color.Color through Quantize
// - Quantize and Luma: the integer luma threshold used for 24-bit RGB colors
// - HorizontalLSB: an image.Image / draw.Image implementation of the layout above
//
// Example usage:
//
//	img := image1bit.NewHorizontalLSB(image.Rect(0, 0, 128, 128))
//	img.SetBit(10, 20, image1bit.On)
//	println(img.BitAt(10, 20)) // true
//
//	// 24-bit RGB colors are reduced to one bit by their luma.
//	println(image1bit.Quantize(0xFFFFFF)) // true
package image1bit
