package chip8

// Display dimensions in pixels.
const (
	// ScreenWidth is the width of the CHIP-8 display.
	ScreenWidth = 64

	// ScreenHeight is the height of the CHIP-8 display.
	ScreenHeight = 32

	// ScreenSize is the total number of display pixels.
	ScreenSize = ScreenWidth * ScreenHeight
)

// displayBuffer is the monochrome framebuffer, stored row-major:
// the pixel at column x, row y lives at index y*ScreenWidth + x.
type displayBuffer [ScreenSize]bool

// clear switches every pixel off.
func (d *displayBuffer) clear() {
	*d = displayBuffer{}
}

// drawRow XORs one 8-pixel sprite row onto the buffer with the most
// significant bit leftmost. Coordinates wrap around the screen edges.
// It reports whether any pixel was switched from on to off.
func (d *displayBuffer) drawRow(x, y int, bits byte) bool {
	collision := false
	row := y % ScreenHeight

	for col := range 8 {
		if bits&(0b1000_0000>>col) == 0 {
			continue
		}
		index := row*ScreenWidth + (x+col)%ScreenWidth
		if d[index] {
			collision = true
		}
		d[index] = !d[index]
	}
	return collision
}
