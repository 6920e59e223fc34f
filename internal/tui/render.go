package tui

import (
	"strings"

	"github.com/sword-jin/shinobu8/internal/chip8"
)

const (
	pixelOn  = '█'
	pixelOff = ' '

	footer = "1234 qwer asdf zxcv - keypad   esc - quit"
)

// renderFrame builds the terminal text for one video frame. The cursor is
// moved to the home position first so each frame overdraws the previous
// one. Lines end in \r\n since the terminal is in raw mode.
func renderFrame(display *[chip8.ScreenSize]bool) string {
	var buf strings.Builder
	buf.Grow(chip8.ScreenSize*3 + chip8.ScreenHeight*2 + len(footer) + 8)

	buf.WriteString("\x1b[H")

	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if display[y*chip8.ScreenWidth+x] {
				buf.WriteRune(pixelOn)
			} else {
				buf.WriteRune(pixelOff)
			}
		}
		buf.WriteString("\r\n")
	}

	buf.WriteString(footer)
	buf.WriteString("\r\n")
	return buf.String()
}
