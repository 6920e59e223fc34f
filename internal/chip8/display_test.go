package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayDrawRow(t *testing.T) {
	var d displayBuffer

	collision := d.drawRow(0, 0, 0b1010_0000)
	assert.False(t, collision)

	assert.True(t, d[0])
	assert.False(t, d[1])
	assert.True(t, d[2])
	assert.False(t, d[3])
}

// Drawing the same row twice XORs every pixel back off and reports the
// collision.
func TestDisplayDrawRowSelfInverse(t *testing.T) {
	var d displayBuffer

	assert.False(t, d.drawRow(12, 7, 0xFF))
	assert.True(t, d.drawRow(12, 7, 0xFF))

	for _, pixel := range d {
		assert.False(t, pixel)
	}
}

func TestDisplayDrawRowCollision(t *testing.T) {
	var d displayBuffer

	assert.False(t, d.drawRow(0, 0, 0b1000_0000))

	// Overlapping in a single pixel is enough to report a collision.
	collision := d.drawRow(0, 0, 0b1100_0000)
	assert.True(t, collision)

	assert.False(t, d[0])
	assert.True(t, d[1])
}

func TestDisplayDrawRowWrapsHorizontally(t *testing.T) {
	var d displayBuffer

	// Starting at column 60, the last four pixels wrap to columns 0-3.
	collision := d.drawRow(60, 5, 0xFF)
	assert.False(t, collision)

	row := 5 * ScreenWidth
	for col := 60; col < 64; col++ {
		assert.True(t, d[row+col])
	}
	for col := range 4 {
		assert.True(t, d[row+col])
	}
}

func TestDisplayDrawRowWrapsVertically(t *testing.T) {
	var d displayBuffer

	d.drawRow(0, ScreenHeight+2, 0b1000_0000)
	assert.True(t, d[2*ScreenWidth])
}

func TestDisplayClear(t *testing.T) {
	var d displayBuffer
	d.drawRow(10, 10, 0xFF)
	d.drawRow(40, 20, 0xFF)

	d.clear()

	for _, pixel := range d {
		assert.False(t, pixel)
	}
}
