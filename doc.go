// Package ls013b7 controls a Sharp LS013B7 memory LCD.
//
// The LS013B7DH03 is a 1.28" 128×128 reflective LCD with one bit per pixel.
// Every pixel has its own memory cell, so the panel keeps showing the last
// image without being refreshed and only the rows that changed ever need to be
// sent again. This driver keeps a frame buffer with a dirty flag per row and
// sends only dirty rows on Flush.
//
// # Display Characteristics
//
// - 1-bit monochrome, 128×128 by default, other sizes up to 400×255
// - Write only serial interface, nothing is ever read back
// - Row addressed memory: one gate line address and one full row per update
// - Rows are updated one at a time or in bursts of consecutive rows
// - Separate DISP signal to blank the panel without losing its memory
//
// # Hardware Connection
//
// Connect the LS013B7 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VDD/VDDA    → 3.3V
//	SCLK        → SPI Clock (SCLK)
//	SI          → SPI Data (MOSI)
//	SCS         → GPIO (any available pin, active high)
//	DISP        → Optional: GPIO to turn the display on and off
//	EXTCOMIN    → GND when ToggleVCOM is used, else a 1Hz clock
//	EXTMODE     → GND when ToggleVCOM is used, else VDD
//
// SCS must stay high for a whole command, which most SPI controllers cannot do
// with their own chip select, so the driver drives it as a plain GPIO.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"image"
//		"image/draw"
//
//		"github.com/flavioheleno/ls013b7"
//		"github.com/flavioheleno/ls013b7/image1bit"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get chip select and DISP GPIO pins
//		csPin := gpioreg.ByName("GPIO8")
//		dispPin := gpioreg.ByName("GPIO24")
//
//		// Create device
//		dev, _ := ls013b7.NewSPI(spiBus, csPin, &ls013b7.Opts{
//			Disp:       dispPin,
//			ToggleVCOM: true,
//		})
//		defer dev.Halt()
//
//		// Clear the panel and turn it on
//		dev.Init()
//		dev.DisplayOn()
//
//		// Draw a box
//		img := image1bit.NewHorizontalLSB(dev.Bounds())
//		draw.Draw(img, image.Rect(16, 16, 112, 112), image.White, image.Point{}, draw.Src)
//
//		// Display the image
//		dev.Draw(dev.Bounds(), img, image.Point{})
//	}
//
// Init sends the all clear command and zeroes the frame buffer. Nothing is sent
// before Init is called.
//
// # Drawing Primitives
//
// The Rasterizer methods draw straight into the frame buffer and mark the rows
// they touch. Nothing is sent until Flush:
//
//	dev.FillRect(ls013b7.Rect{X1: 0, Y1: 0, X2: 127, Y2: 15}, image1bit.On)
//	dev.DrawLineH(0, 127, 20, image1bit.On)
//	dev.DrawLineV(64, 20, 127, image1bit.On)
//	dev.DrawPoint(3, 3, image1bit.Off)
//	dev.DrawString(4, 12, "hello", basicfont.Face7x13, image1bit.Off)
//	dev.Flush()
//
// Lines and rectangles only change the pixels they cover, so strokes drawn on
// top of each other add up. Coordinates are inclusive and must be on the
// display: anything outside is rejected with ErrBounds before any pixel is
// changed.
//
// BlitMultiple copies a run of packed 1, 4 or 8 bits per pixel source pixels
// into a row, translating each through a palette:
//
//	// 16 pixels of a 1 bpp glyph row, starting 3 bits into src
//	dev.BlitMultiple(40, 60, 3, 16, 1, src, ls013b7.Palette{0, 1})
//
// # Drawing Images
//
// Draw renders any image.Image into the frame buffer and flushes the rows whose
// bytes changed. Colors are reduced to one bit by image1bit.BitModel: a color
// is On when its luma is at least half of the full scale.
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// Write takes a raw frame in image1bit.HorizontalLSB packing, Stride×Height
// bytes, and also sends only the rows that differ:
//
//	pixels := make([]byte, 128/8*128) // 2048 bytes for 128×128
//	// ... fill pixels ...
//	dev.Write(pixels)
//
// # Refresh and VCOM
//
// The panel needs its common electrode inverted at least once per second. If
// EXTMODE is tied high an external clock on EXTCOMIN does it; otherwise set
// Opts.ToggleVCOM and call Refresh periodically:
//
//	for range time.Tick(time.Second) {
//		dev.Refresh()
//	}
//
// Every Flush ends with the same display command Refresh sends.
//
// # Errors
//
// Bus errors are returned as is, wrapped with the command that failed. The
// rows of a failed update stay dirty and are sent again on the next Flush. The
// panel cannot be read back, so a write lost on the wire is not detected.
//
// Set LS013B7_DEBUG in the environment to log a summary of every Flush.
//
// # Other Buses
//
// New accepts any Bus. TinyGoBus drives the panel from a TinyGo
// drivers.SPI and a machine.Pin chip select, and Dev implements
// drivers.Displayer:
//
//	bus := ls013b7.NewTinyGoBus(machine.SPI0, machine.GPIO17, false)
//	dev, _ := ls013b7.New(bus, nil)
//
// The ls013b7test package has a software panel that decodes the protocol, for
// tests and simulators.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package ls013b7
